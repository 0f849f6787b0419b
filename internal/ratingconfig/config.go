// Package ratingconfig defines the external, hot-editable rating table set.
// Every numeric constant used by the rating engine lives here, never in
// engine code, so operators can recalibrate pricing without a deploy.
//
// Two incompatible rating models coexist in the calibration history: the
// current per-room direct-rate model and the legacy square-footage
// loss-cost model. A configuration document selects exactly one via its
// profile tag; fields from the two models are never mixed in one
// calculation.
package ratingconfig

import (
	"github.com/cschleeper/hotel-rating-tool/internal/models"
)

const (
	ProfilePerRoom  = "per-room"
	ProfileLossCost = "loss-cost"
)

// Bracket is one step of an ordered step-function table: the first bracket
// whose Max the input does not exceed supplies the modifier. Lists are
// ascending by Max and end in an effectively infinite catch-all.
type Bracket struct {
	Max      float64 `json:"max"`
	Modifier float64 `json:"modifier"`
	Label    string  `json:"label,omitempty"`
}

// RiskGradeBracket maps a premium-per-room ceiling (inclusive) to a letter
// grade and label.
type RiskGradeBracket struct {
	MaxPerRoom float64 `json:"max_per_room"`
	Grade      string  `json:"grade"`
	Label      string  `json:"label"`
}

// BrandTierEntry is one market-segment bucket with its member brands.
// Catalog order is significant: the first matching entry wins.
type BrandTierEntry struct {
	Tier   string   `json:"tier"`
	Brands []string `json:"brands"`
}

// BrandDefaults carries the auto-population characteristics of a catalog
// brand, applied by the lookup layer when a search leaves fields blank.
type BrandDefaults struct {
	ServiceType  models.ServiceType      `json:"service_type"`
	Construction models.ConstructionType `json:"construction"`
	Stories      int                     `json:"stories"`
	Rooms        int                     `json:"rooms"`
	Amenities    models.Amenities        `json:"amenities"`
}

// BrandDefaultsEntry keeps brand defaults in declaration order for the same
// first-match-wins semantics as the tier catalog.
type BrandDefaultsEntry struct {
	Brand    string        `json:"brand"`
	Defaults BrandDefaults `json:"defaults"`
}

// GeoTier is a zone-keyed geographic modifier set for designated CAT states.
type GeoTier struct {
	Inland  float64 `json:"inland"`
	Coastal float64 `json:"coastal"`
	TWIA    float64 `json:"twia,omitempty"`
}

// UmbrellaLimitTier prices one umbrella limit. A tier is either flat
// (PerRoom) or incremental: the resolved premium of BaseLimit plus
// IncrementalPerRoom. Incremental tiers may chain up to two levels deep.
type UmbrellaLimitTier struct {
	PerRoom            float64 `json:"per_room,omitempty"`
	Incremental        bool    `json:"incremental,omitempty"`
	BaseLimit          string  `json:"base_limit,omitempty"`
	IncrementalPerRoom float64 `json:"incremental_per_room,omitempty"`
	Label              string  `json:"label,omitempty"`
}

// UmbrellaTables groups the umbrella/excess rating inputs.
type UmbrellaTables struct {
	LimitTiers        map[string]UmbrellaLimitTier `json:"limit_tiers"`
	DefaultLimit      string                       `json:"default_limit"`
	AmenitySurcharges map[string]float64           `json:"amenity_surcharges"`
	LitigationModifiers map[models.LitigationEnvironment]float64 `json:"litigation_modifiers"`
	DefaultLitigation models.LitigationEnvironment `json:"default_litigation"`
	FleetModifiers    []Bracket                    `json:"fleet_modifiers"`
	SIROptions        map[string]float64           `json:"sir_options"`
	DefaultSIR        string                       `json:"default_sir"`
}

// GLRates are the per-$1,000-of-revenue general liability rates and the
// revenue-derivation percentages.
type GLRates struct {
	HotelWithPool        float64 `json:"hotel_with_pool"`
	HotelWithoutPool     float64 `json:"hotel_without_pool"`
	RestaurantWithLiquor float64 `json:"restaurant_with_liquor"`
	LiquorLiability      float64 `json:"liquor_liability"`
	FBRevenuePercent     float64 `json:"fb_revenue_percent"`
	LiquorSalesPercent   float64 `json:"liquor_sales_percent"`
	ResortActivitiesRate float64 `json:"resort_activities_rate"`
	ResortActivitiesRevenuePercent float64 `json:"resort_activities_revenue_percent"`
}

// TIVTables hold the per-room replacement values by service type.
type TIVTables struct {
	BuildingCostPerRoom        map[models.ServiceType]float64 `json:"building_cost_per_room"`
	DefaultBuildingCostPerRoom float64                        `json:"default_building_cost_per_room"`
	ContentsPerRoom            map[models.ServiceType]float64 `json:"contents_per_room"`
	DefaultContentsPerRoom     float64                        `json:"default_contents_per_room"`
	BusinessIncomePerRoom      map[models.ServiceType]float64 `json:"business_income_per_room"`
	DefaultBIPerRoom           float64                        `json:"default_bi_per_room"`
}

// WarningThresholds gate the underwriting alerts.
type WarningThresholds struct {
	CatZoneStates         []string `json:"cat_zone_states"`
	OldRoofAge            int      `json:"old_roof_age"`
	HighPPC               int      `json:"high_ppc"`
	HighTIV               float64  `json:"high_tiv"`
	NonSprinkleredWarning bool     `json:"non_sprinklered_warning"`
}

// PerRoomProfile is the current rating model: per-room TIV, direct admitted
// building rates with contents/BI priced off the building rate, room-revenue
// GL, and tiered umbrella.
type PerRoomProfile struct {
	PropertyBaseRates       map[models.ConstructionType]float64 `json:"property_base_rates"`
	ContentsRateMultiplier  float64                             `json:"contents_rate_multiplier"`
	BIRateMultiplier        float64                             `json:"bi_rate_multiplier"`
	EquipmentBreakdown      map[models.ServiceType]float64      `json:"equipment_breakdown"`
	DefaultEquipmentBreakdown float64                           `json:"default_equipment_breakdown"`
	NonSprinkleredSurcharge float64                             `json:"non_sprinklered_surcharge"`

	TIV TIVTables `json:"tiv"`

	BrandTiers                  []BrandTierEntry     `json:"brand_tiers"`
	BrandDefaults               []BrandDefaultsEntry `json:"brand_defaults"`
	FullServiceTiers            []string             `json:"full_service_tiers"`
	BrandTierPropertyMultiplier map[string]float64   `json:"brand_tier_property_multiplier"`

	GeographicModifiers map[string]float64 `json:"geographic_modifiers"`
	GeoModifierTiers    map[string]GeoTier `json:"geo_modifier_tiers"`
	CoastalGeoOverrides map[string]GeoTier `json:"coastal_geo_overrides"`
	DefaultGeoModifier  float64            `json:"default_geo_modifier"`
	TieredGeoStates     []string           `json:"tiered_geo_states"`

	LocationTypeModifiers map[models.LocationType]float64 `json:"location_type_modifiers"`

	BuildingAgeModifiers []Bracket `json:"building_age_modifiers"`
	RoofAgeModifiers     []Bracket `json:"roof_age_modifiers"`
	StoriesModifiers     []Bracket `json:"stories_modifiers"`

	ProtectionClassModifiers map[int]float64 `json:"protection_class_modifiers"`
	DefaultProtectionClass   int             `json:"default_protection_class"`

	GLRates                  GLRates                        `json:"gl_rates"`
	RoomRevenuePerRoom       map[models.ServiceType]float64 `json:"room_revenue_per_room"`
	DefaultRoomRevenuePerRoom float64                       `json:"default_room_revenue_per_room"`

	Umbrella UmbrellaTables `json:"umbrella"`

	WarningThresholds WarningThresholds `json:"warning_thresholds"`

	// Carried calibration data, not applied by the per-room model.
	CoinsuranceFactors map[int]float64 `json:"coinsurance_factors,omitempty"`

	WindTierModifiers map[models.WindTier]float64 `json:"wind_tier_modifiers"`
	CoastalStates     []string                    `json:"coastal_states"`

	FloodZoneModifiers map[models.FloodZone]float64 `json:"flood_zone_modifiers"`
	DefaultFloodZone   models.FloodZone             `json:"default_flood_zone"`

	NamedStormDeductibleCredits map[string]float64 `json:"named_storm_deductible_credits"`
	DefaultNamedStormDeductible string             `json:"default_named_storm_deductible"`

	FloodInsuranceEstimates map[models.FloodZone]float64 `json:"flood_insurance_estimates"`

	RiskGrades []RiskGradeBracket `json:"risk_grades"`
}

// LossCostTIV is the legacy square-footage TIV parameterization.
type LossCostTIV struct {
	BuildingCostPerSF        map[models.ConstructionType]float64 `json:"building_cost_per_sf"`
	DefaultBuildingCostPerSF float64                             `json:"default_building_cost_per_sf"`
	AgeAdjustments           []Bracket                           `json:"age_adjustments"`
	ContentsPerRoom          float64                             `json:"contents_per_room"`
	BusinessIncomePerRoom    float64                             `json:"business_income_per_room"`
}

// LossCostProfile is the legacy ISO-style model: loss cost x LCM rate
// derivation, square-footage building value, additive amenity factor, flat
// per-room GL, and umbrella as a factor of property+GL.
type LossCostProfile struct {
	BaseRatesPer100 struct {
		Sprinklered    map[models.ConstructionType]float64 `json:"sprinklered"`
		NonSprinklered map[models.ConstructionType]float64 `json:"non_sprinklered"`
	} `json:"base_rates_per_100"`
	DefaultBaseRate    float64 `json:"default_base_rate"`
	LossCostMultiplier float64 `json:"loss_cost_multiplier"`

	TIV LossCostTIV `json:"tiv"`

	BuildingAgeModifiers []Bracket `json:"building_age_modifiers"`
	RoofAgeModifiers     []Bracket `json:"roof_age_modifiers"`
	StoriesModifiers     []Bracket `json:"stories_modifiers"`

	GeographicModifiers map[string]float64 `json:"geographic_modifiers"`
	DefaultGeoModifier  float64            `json:"default_geo_modifier"`

	ProtectionClassModifiers map[int]float64 `json:"protection_class_modifiers"`
	DefaultProtectionClass   int             `json:"default_protection_class"`

	AmenityModifiers map[string]float64 `json:"amenity_modifiers"`

	LiabilityRates struct {
		GLPerRoom      float64 `json:"gl_per_room"`
		LiquorPerRoom  float64 `json:"liquor_per_room"`
		UmbrellaFactor float64 `json:"umbrella_factor"`
	} `json:"liability_rates"`

	RiskGrades []RiskGradeBracket `json:"risk_grades"`
}

// Config is the root configuration document. Exactly one profile section is
// populated, selected by Profile.
type Config struct {
	Profile    string           `json:"profile"`
	Version    string           `json:"version"`
	MarketNote string           `json:"market_note,omitempty"`
	PerRoom    *PerRoomProfile  `json:"per_room,omitempty"`
	LossCost   *LossCostProfile `json:"loss_cost,omitempty"`
}
