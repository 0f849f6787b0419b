package services

import (
	"github.com/cschleeper/hotel-rating-tool/internal/models"
	"github.com/cschleeper/hotel-rating-tool/internal/ratingconfig"
)

// propertyPremiumResult retains every rate and factor applied to the
// property buckets, for display and audit.
type propertyPremiumResult struct {
	BaseRatePer100        float64
	SprinklerAdjustedRate float64

	AgeFactor             float64
	StoriesFactor         float64
	RoofFactor            float64
	ProtectionClassFactor float64
	LocationTypeFactor    float64
	BrandTierFactor       float64
	GeoModifier           float64
	WindTierFactor        float64
	FloodZoneFactor       float64
	NamedStormFactor      float64
	LocationZoneApplied   bool

	BuildingModifiedRate float64
	ContentsRate         float64
	BIRate               float64

	BuildingPremium           int64
	ContentsPremium           int64
	BusinessIncomePremium     int64
	EquipmentBreakdownPremium int64
	PropertyPremium           int64
}

// calculatePropertyPremium applies the construction base rate, sprinkler
// surcharge, and the full multiplicative modifier stack to each TIV bucket.
func calculatePropertyPremium(cfg *ratingconfig.PerRoomProfile, in *resolvedInput, tiv tivBreakdown) propertyPremiumResult {
	var r propertyPremiumResult

	// Base rate per $100, Masonry Non-Combustible when the construction
	// class is unrecognized.
	base, ok := cfg.PropertyBaseRates[in.ConstructionType]
	if !ok {
		base = cfg.PropertyBaseRates[models.ConstructionMasonryNonCombustible]
	}
	r.BaseRatePer100 = base

	r.SprinklerAdjustedRate = base
	if !in.Sprinklered {
		r.SprinklerAdjustedRate = base * (1 + cfg.NonSprinkleredSurcharge)
	}

	r.AgeFactor = resolveBracket(cfg.BuildingAgeModifiers, float64(in.BuildingAge))
	r.StoriesFactor = resolveBracket(cfg.StoriesModifiers, float64(in.Stories))
	r.RoofFactor = resolveBracket(cfg.RoofAgeModifiers, float64(in.RoofAge))

	protection, ok := cfg.ProtectionClassModifiers[in.ProtectionClass]
	if !ok {
		protection, ok = cfg.ProtectionClassModifiers[cfg.DefaultProtectionClass]
		if !ok {
			protection = 1.0
		}
	}
	r.ProtectionClassFactor = protection

	location, ok := cfg.LocationTypeModifiers[in.LocationType]
	if !ok {
		location = 1.0
	}
	r.LocationTypeFactor = location

	brandTier, ok := cfg.BrandTierPropertyMultiplier[in.BrandTier]
	if !ok {
		brandTier = 1.0
	}
	r.BrandTierFactor = brandTier

	r.GeoModifier, r.WindTierFactor, r.LocationZoneApplied = resolveGeography(cfg, in)
	r.FloodZoneFactor, r.NamedStormFactor = resolveCoastalFactors(cfg, in)

	modifiers := r.AgeFactor * r.StoriesFactor * r.RoofFactor *
		r.ProtectionClassFactor * r.LocationTypeFactor * r.BrandTierFactor *
		r.GeoModifier * r.WindTierFactor * r.FloodZoneFactor * r.NamedStormFactor

	r.BuildingModifiedRate = r.SprinklerAdjustedRate * modifiers
	r.ContentsRate = r.BuildingModifiedRate * cfg.ContentsRateMultiplier
	r.BIRate = r.BuildingModifiedRate * cfg.BIRateMultiplier

	r.BuildingPremium = roundMoney(float64(tiv.Building) / 100 * r.BuildingModifiedRate)
	r.ContentsPremium = roundMoney(float64(tiv.Contents) / 100 * r.ContentsRate)
	r.BusinessIncomePremium = roundMoney(float64(tiv.BusinessIncome) / 100 * r.BIRate)

	// Equipment breakdown is a flat amount by service type, scaled only by
	// building age, not the full modifier stack.
	equipment, ok := cfg.EquipmentBreakdown[in.ServiceType]
	if !ok {
		equipment = cfg.DefaultEquipmentBreakdown
	}
	r.EquipmentBreakdownPremium = roundMoney(equipment * r.AgeFactor)

	r.PropertyPremium = r.BuildingPremium + r.ContentsPremium +
		r.BusinessIncomePremium + r.EquipmentBreakdownPremium
	return r
}

// resolveGeography picks the geography term, mutually exclusive and first
// match wins: 3-tier CAT-state table, then 2-tier coastal override, then the
// flat per-state modifier with a wind-tier factor for broader coastal states.
// The wind-tier factor is absorbed into the zone term for tiered states and
// is never double-applied.
func resolveGeography(cfg *ratingconfig.PerRoomProfile, in *resolvedInput) (geo, windTier float64, zoneApplied bool) {
	if tier, ok := cfg.GeoModifierTiers[in.State]; ok {
		switch in.LocationZone {
		case models.ZoneCoastal:
			geo = tier.Coastal
		case models.ZoneTWIA:
			geo = tier.TWIA
		default:
			geo = tier.Inland
		}
		return geo, 1.0, true
	}

	if override, ok := cfg.CoastalGeoOverrides[in.State]; ok {
		switch in.LocationZone {
		case models.ZoneCoastal, models.ZoneTWIA:
			geo = override.Coastal
		default:
			geo = override.Inland
		}
		return geo, 1.0, true
	}

	geo, ok := cfg.GeographicModifiers[in.State]
	if !ok {
		geo = cfg.DefaultGeoModifier
	}
	windTier = 1.0
	if containsState(cfg.CoastalStates, in.State) {
		if f, ok := cfg.WindTierModifiers[in.WindTier]; ok {
			windTier = f
		}
	}
	return geo, windTier, false
}

// resolveCoastalFactors gates the flood-zone factor and named-storm
// deductible credit: both apply only for coastal states with a non-Inland
// wind tier and default to 1.0 otherwise.
func resolveCoastalFactors(cfg *ratingconfig.PerRoomProfile, in *resolvedInput) (flood, namedStorm float64) {
	flood, namedStorm = 1.0, 1.0
	if !containsState(cfg.CoastalStates, in.State) || in.WindTier == models.WindInland {
		return flood, namedStorm
	}
	if f, ok := cfg.FloodZoneModifiers[in.FloodZone]; ok {
		flood = f
	}
	if c, ok := cfg.NamedStormDeductibleCredits[in.NamedStormDeductible]; ok {
		namedStorm = c
	}
	return flood, namedStorm
}

func containsState(states []string, state string) bool {
	for _, s := range states {
		if s == state {
			return true
		}
	}
	return false
}
