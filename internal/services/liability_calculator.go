package services

import (
	"github.com/cschleeper/hotel-rating-tool/internal/ratingconfig"
)

// liabilityResult keeps every revenue estimate and premium component, all
// additive into the single general liability line.
type liabilityResult struct {
	RoomRevenue int64
	GLRate      float64
	BasePremium int64

	FBRevenue           int64
	RestaurantComponent int64
	LiquorRevenue       int64
	LiquorComponent     int64
	ActivitiesRevenue   int64
	ActivitiesComponent int64

	Total int64
}

// calculateLiability prices general liability from estimated annual room
// revenue, with additive restaurant, liquor, and resort-activity exposures.
func calculateLiability(cfg *ratingconfig.PerRoomProfile, in *resolvedInput) liabilityResult {
	var r liabilityResult

	perRoom, ok := cfg.RoomRevenuePerRoom[in.ServiceType]
	if !ok {
		perRoom = cfg.DefaultRoomRevenuePerRoom
	}
	r.RoomRevenue = roundMoney(float64(in.RoomCount) * perRoom)

	r.GLRate = cfg.GLRates.HotelWithoutPool
	if in.Amenities.Pool {
		r.GLRate = cfg.GLRates.HotelWithPool
	}
	r.BasePremium = roundMoney(float64(r.RoomRevenue) / 1000 * r.GLRate)
	r.Total = r.BasePremium

	if in.Amenities.Restaurant {
		r.FBRevenue = roundMoney(float64(r.RoomRevenue) * cfg.GLRates.FBRevenuePercent)
		r.RestaurantComponent = roundMoney(float64(r.FBRevenue) / 1000 * cfg.GLRates.RestaurantWithLiquor)
		r.Total += r.RestaurantComponent

		// Liquor liability rides on the restaurant exposure: a share of
		// food-and-beverage revenue rated at the liquor rate.
		r.LiquorRevenue = roundMoney(float64(r.FBRevenue) * cfg.GLRates.LiquorSalesPercent)
		r.LiquorComponent = roundMoney(float64(r.LiquorRevenue) / 1000 * cfg.GLRates.LiquorLiability)
		r.Total += r.LiquorComponent
	}

	if in.HasResortActivities {
		r.ActivitiesRevenue = roundMoney(float64(r.RoomRevenue) * cfg.GLRates.ResortActivitiesRevenuePercent)
		r.ActivitiesComponent = roundMoney(float64(r.ActivitiesRevenue) / 1000 * cfg.GLRates.ResortActivitiesRate)
		r.Total += r.ActivitiesComponent
	}

	return r
}
