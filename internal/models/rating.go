package models

// RatingResult is the terminal output of one rating calculation: every
// intermediate and final monetary figure and factor, flat, plus the
// underwriting warnings and the letter risk grade. It is never mutated or
// merged after it is produced.
//
// Fields specific to one configuration profile are omitted when the other
// profile produced the result.
type RatingResult struct {
	// TIV breakdown
	BuildingValue       int64 `json:"building_value"`
	ContentsValue       int64 `json:"contents_value"`
	BusinessIncomeValue int64 `json:"business_income_value"`
	TotalInsurableValue int64 `json:"total_insurable_value"`

	// Rate derivation
	LossCostPer100  float64 `json:"loss_cost_per_100,omitempty"` // loss-cost profile only
	LCM             float64 `json:"lcm,omitempty"`               // loss-cost profile only
	BaseRatePer100  float64 `json:"base_rate_per_100"`
	SprinklerAdjustedRate float64 `json:"sprinkler_adjusted_rate,omitempty"`
	Sprinklered     bool    `json:"sprinklered"`

	// Applied factors
	AgeFactor             float64 `json:"age_factor"`
	StoriesFactor         float64 `json:"stories_factor"`
	RoofFactor            float64 `json:"roof_factor"`
	GeoModifier           float64 `json:"geo_modifier"`
	ProtectionClassFactor float64 `json:"protection_class_factor"`
	LocationTypeFactor    float64 `json:"location_type_factor,omitempty"`
	BrandTierFactor       float64 `json:"brand_tier_factor,omitempty"`
	WindTierFactor        float64 `json:"wind_tier_factor,omitempty"`
	FloodZoneFactor       float64 `json:"flood_zone_factor,omitempty"`
	NamedStormFactor      float64 `json:"named_storm_factor,omitempty"`
	LocationZoneApplied   bool    `json:"location_zone_applied,omitempty"`
	AmenitiesFactor       float64 `json:"amenities_factor,omitempty"` // loss-cost profile only

	// Resolved classification
	BrandTier            string      `json:"brand_tier,omitempty"`
	EffectiveServiceType ServiceType `json:"effective_service_type,omitempty"`

	// Per-bucket modified rates (per $100 of value)
	BuildingModifiedRate float64 `json:"building_modified_rate,omitempty"`
	ContentsRate         float64 `json:"contents_rate,omitempty"`
	BIRate               float64 `json:"bi_rate,omitempty"`

	// Property premium components
	BuildingPremium           int64 `json:"building_premium,omitempty"`
	ContentsPremium           int64 `json:"contents_premium,omitempty"`
	BusinessIncomePremium     int64 `json:"business_income_premium,omitempty"`
	EquipmentBreakdownPremium int64 `json:"equipment_breakdown_premium,omitempty"`
	PropertyPremium           int64 `json:"property_premium"`

	// General liability components (sub-components of one all-in GL line)
	RoomRevenue           int64   `json:"room_revenue,omitempty"`
	GLRate                float64 `json:"gl_rate,omitempty"`
	GLBasePremium         int64   `json:"gl_base_premium,omitempty"`
	FBRevenue             int64   `json:"fb_revenue,omitempty"`
	GLRestaurantComponent int64   `json:"gl_restaurant_component,omitempty"`
	LiquorRevenue         int64   `json:"liquor_revenue,omitempty"`
	GLLiquorComponent     int64   `json:"gl_liquor_component,omitempty"`
	ActivitiesRevenue     int64   `json:"activities_revenue,omitempty"`
	GLActivitiesComponent int64   `json:"gl_activities_component,omitempty"`
	GeneralLiabilityPremium int64 `json:"general_liability_premium"`
	LiquorLiabilityPremium  int64 `json:"liquor_liability_premium,omitempty"` // loss-cost profile only

	// Umbrella / excess audit trail
	UmbrellaLimit             string           `json:"umbrella_limit,omitempty"`
	UmbrellaBasePremium       int64            `json:"umbrella_base_premium,omitempty"`
	UmbrellaSurcharges        map[string]int64 `json:"umbrella_surcharges,omitempty"`
	UmbrellaSurchargeTotal    int64            `json:"umbrella_surcharge_total,omitempty"`
	UmbrellaBeforeModifiers   int64            `json:"umbrella_before_modifiers,omitempty"`
	LitigationFactor          float64          `json:"litigation_factor,omitempty"`
	FleetFactor               float64          `json:"fleet_factor,omitempty"`
	SIRFactor                 float64          `json:"sir_factor,omitempty"`
	UmbrellaExcessPremium     int64            `json:"umbrella_excess_premium"`

	// Flood
	FloodZone    FloodZone `json:"flood_zone,omitempty"`
	FloodPremium int64     `json:"flood_premium,omitempty"`

	// Totals and display metrics
	TotalEstimatedPremium int64   `json:"total_estimated_premium"`
	PremiumPerRoom        int64   `json:"premium_per_room"`
	PremiumPerSF          float64 `json:"premium_per_sf"`
	// EffectiveRatePer100 is recomputed from already-rounded totals and is
	// informational only; it is never an input to further calculation.
	EffectiveRatePer100 float64 `json:"effective_rate_per_100,omitempty"`

	Warnings  []string `json:"warnings"`
	RiskGrade string   `json:"risk_grade"`
}
