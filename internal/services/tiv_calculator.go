package services

import (
	"math"

	"github.com/cschleeper/hotel-rating-tool/internal/ratingconfig"
)

// tivBreakdown carries the three insured-value buckets. Each bucket is
// rounded independently so summing never re-rounds.
type tivBreakdown struct {
	Building       int64
	Contents       int64
	BusinessIncome int64
	Total          int64
}

// estimateTIV computes the per-room Total Insurable Value. Age and
// construction affect the rate, not the value, in the per-room model.
func estimateTIV(cfg *ratingconfig.PerRoomProfile, in *resolvedInput) tivBreakdown {
	buildingPerRoom, ok := cfg.TIV.BuildingCostPerRoom[in.ServiceType]
	if !ok {
		buildingPerRoom = cfg.TIV.DefaultBuildingCostPerRoom
	}
	contentsPerRoom, ok := cfg.TIV.ContentsPerRoom[in.ServiceType]
	if !ok {
		contentsPerRoom = cfg.TIV.DefaultContentsPerRoom
	}
	biPerRoom, ok := cfg.TIV.BusinessIncomePerRoom[in.ServiceType]
	if !ok {
		biPerRoom = cfg.TIV.DefaultBIPerRoom
	}

	rooms := float64(in.RoomCount)
	b := tivBreakdown{
		Building:       roundMoney(rooms * buildingPerRoom),
		Contents:       roundMoney(rooms * contentsPerRoom),
		BusinessIncome: roundMoney(rooms * biPerRoom),
	}
	b.Total = b.Building + b.Contents + b.BusinessIncome
	return b
}

// roundMoney rounds to the nearest whole currency unit.
func roundMoney(v float64) int64 {
	return int64(math.Round(v))
}
