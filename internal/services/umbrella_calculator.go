package services

import (
	"github.com/cschleeper/hotel-rating-tool/internal/ratingconfig"
)

// umbrellaResult captures the tier resolution and each modifier applied so
// the quote response can itemize the umbrella build-up.
type umbrellaResult struct {
	Limit            string
	BasePremium      int64
	Surcharges       map[string]int64
	BeforeModifiers  int64
	LitigationFactor float64
	FleetFactor      float64
	SIRFactor        float64
	Total            int64
}

// resolveUmbrellaPerRoom walks an incremental tier chain down to its flat
// base and accumulates the per-room amounts. Chains are at most two
// incremental levels deep; the loop bound guards against a miswired table.
func resolveUmbrellaPerRoom(tiers map[string]ratingconfig.UmbrellaLimitTier, limit string) float64 {
	var perRoom float64
	for i := 0; i < 3; i++ {
		tier, ok := tiers[limit]
		if !ok {
			return perRoom
		}
		if !tier.Incremental {
			return perRoom + tier.PerRoom
		}
		perRoom += tier.IncrementalPerRoom
		limit = tier.BaseLimit
	}
	return perRoom
}

// calculateUmbrella prices the umbrella/excess line: per-room limit tier,
// flat per-room amenity surcharges, then litigation, fleet, and SIR
// modifiers over the combined subtotal.
func calculateUmbrella(cfg *ratingconfig.PerRoomProfile, in *resolvedInput) umbrellaResult {
	u := cfg.Umbrella
	r := umbrellaResult{
		Limit:      in.UmbrellaLimit,
		Surcharges: make(map[string]int64),
	}

	perRoom := resolveUmbrellaPerRoom(u.LimitTiers, in.UmbrellaLimit)
	r.BasePremium = roundMoney(float64(in.RoomCount) * perRoom)
	r.BeforeModifiers = r.BasePremium

	addSurcharge := func(name string) {
		s, ok := u.AmenitySurcharges[name]
		if !ok {
			return
		}
		amount := roundMoney(float64(in.RoomCount) * s)
		r.Surcharges[name] = amount
		r.BeforeModifiers += amount
	}

	if in.Amenities.Pool {
		addSurcharge("pool")
	}
	// Bar liquor subsumes the plain restaurant surcharge; never both.
	if in.HasBarLiquor {
		addSurcharge("bar_liquor")
	} else if in.Amenities.Restaurant {
		addSurcharge("restaurant")
	}
	if in.HasValet {
		addSurcharge("valet")
	}

	r.LitigationFactor = 1.0
	if f, ok := u.LitigationModifiers[in.Litigation]; ok {
		r.LitigationFactor = f
	}
	r.FleetFactor = resolveBracket(u.FleetModifiers, float64(in.FleetSize))
	r.SIRFactor = 1.0
	if f, ok := u.SIROptions[in.UmbrellaSIR]; ok {
		r.SIRFactor = f
	}

	r.Total = roundMoney(float64(r.BeforeModifiers) * r.LitigationFactor * r.FleetFactor * r.SIRFactor)
	return r
}
