package services

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cschleeper/hotel-rating-tool/internal/models"
	"github.com/cschleeper/hotel-rating-tool/internal/ratingconfig"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func loadPerRoomConfig(t *testing.T) *ratingconfig.Config {
	t.Helper()
	cfg, err := ratingconfig.Load("../../configs/rating_config.json")
	require.NoError(t, err)
	require.Equal(t, ratingconfig.ProfilePerRoom, cfg.Profile)
	return cfg
}

func newTestRatingService(t *testing.T) *RatingService {
	t.Helper()
	svc := NewRatingService(loadPerRoomConfig(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
	// Pin the clock so building-age factors do not drift with the calendar.
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func boolPtr(b bool) *bool { return &b }

// roundTripProperty is the reference scenario: 200-room full-service coastal
// Florida hotel with pool and restaurant.
func roundTripProperty() *models.Property {
	return &models.Property{
		RoomCount:        200,
		Stories:          8,
		YearBuilt:        2010,
		ConstructionType: models.ConstructionMasonryNonCombustible,
		Sprinklered:      boolPtr(true),
		State:            "FL",
		LocationZone:     models.ZoneCoastal,
		RoofAge:          8,
		ProtectionClass:  4,
		ServiceType:      models.ServiceFullService,
		Amenities:        models.Amenities{Pool: true, Restaurant: true},
	}
}

// ============================================================================
// TEST SUITE 1: DETERMINISM AND DEFAULTS
// ============================================================================

func TestCalculate_Deterministic(t *testing.T) {
	svc := newTestRatingService(t)
	property := roundTripProperty()

	first := svc.Calculate(property)
	second := svc.Calculate(property)

	assert.Equal(t, first, second, "identical input and config must produce identical results")
}

func TestCalculate_EmptyPropertyAppliesAllDefaults(t *testing.T) {
	svc := newTestRatingService(t)

	result := svc.Calculate(&models.Property{})

	// 100 rooms at the default (full-service) per-room values.
	assert.Equal(t, int64(32_300_000), result.BuildingValue)
	assert.Equal(t, int64(1_900_000), result.ContentsValue)
	assert.Equal(t, int64(2_400_000), result.BusinessIncomeValue)
	assert.Equal(t, int64(36_600_000), result.TotalInsurableValue)

	// Masonry Non-Combustible, sprinklered.
	assert.Equal(t, 0.14, result.BaseRatePer100)
	assert.True(t, result.Sprinklered)
	assert.Equal(t, 0.14, result.SprinklerAdjustedRate)

	// Unrecognized state: flat default geography, no wind or flood loading.
	assert.Equal(t, 1.0, result.GeoModifier)
	assert.Equal(t, 1.0, result.WindTierFactor)
	assert.Equal(t, 1.0, result.FloodZoneFactor)
	assert.False(t, result.LocationZoneApplied)

	// Default umbrella election: $25M at 200/room for 100 rooms.
	assert.Equal(t, "$25M", result.UmbrellaLimit)
	assert.Equal(t, int64(20_000), result.UmbrellaBasePremium)
	assert.Equal(t, 1.0, result.LitigationFactor)
	assert.Equal(t, 1.0, result.SIRFactor)

	assert.Equal(t, models.FloodZoneX, result.FloodZone)
	assert.Equal(t, int64(0), result.FloodPremium)

	assert.Empty(t, result.Warnings, "a default property should trip no underwriting alerts")
	assert.NotEmpty(t, result.RiskGrade)
	assert.Positive(t, result.TotalEstimatedPremium)
	assert.Positive(t, result.PremiumPerRoom)
}

func TestCalculate_ZeroNumericsDegradeToDefaults(t *testing.T) {
	svc := newTestRatingService(t)

	zeroed := svc.Calculate(&models.Property{
		RoomCount: 0,
		Stories:   0,
		YearBuilt: 0,
		RoofAge:   0,
	})
	defaulted := svc.Calculate(&models.Property{})

	assert.Equal(t, defaulted.TotalInsurableValue, zeroed.TotalInsurableValue)
	assert.Equal(t, defaulted.TotalEstimatedPremium, zeroed.TotalEstimatedPremium)
}

// ============================================================================
// TEST SUITE 2: TIV ESTIMATION
// ============================================================================

func TestEstimateTIV_PerServiceTypeTables(t *testing.T) {
	svc := newTestRatingService(t)

	result := svc.Calculate(&models.Property{
		RoomCount:   120,
		ServiceType: models.ServiceLimitedService,
	})

	assert.Equal(t, int64(120*150_000), result.BuildingValue)
	assert.Equal(t, int64(120*10_000), result.ContentsValue)
	assert.Equal(t, int64(120*14_000), result.BusinessIncomeValue)
}

func TestEstimateTIV_UnrecognizedServiceTypeFallsBack(t *testing.T) {
	svc := newTestRatingService(t)

	result := svc.Calculate(&models.Property{
		RoomCount:   100,
		ServiceType: models.ServiceType("boutique"),
	})

	// Unrecognized service type takes the default per-room values.
	assert.Equal(t, int64(100*323_000), result.BuildingValue)
}

// ============================================================================
// TEST SUITE 3: PROPERTY PREMIUM MODIFIERS
// ============================================================================

func TestCalculate_NonSprinkleredSurcharge(t *testing.T) {
	svc := newTestRatingService(t)

	sprinklered := svc.Calculate(&models.Property{Sprinklered: boolPtr(true)})
	bare := svc.Calculate(&models.Property{Sprinklered: boolPtr(false)})

	assert.Equal(t, 0.14, sprinklered.SprinklerAdjustedRate)
	assert.InDelta(t, 0.14*1.6, bare.SprinklerAdjustedRate, 1e-9)
	assert.Greater(t, bare.PropertyPremium, sprinklered.PropertyPremium)
}

func TestCalculate_UnknownConstructionUsesMasonryNonCombustibleRate(t *testing.T) {
	svc := newTestRatingService(t)

	result := svc.Calculate(&models.Property{
		ConstructionType: models.ConstructionType("Igloo"),
	})

	assert.Equal(t, 0.14, result.BaseRatePer100)
}

func TestCalculate_BrandTierMultiplier(t *testing.T) {
	svc := newTestRatingService(t)

	luxury := svc.Calculate(&models.Property{Brand: "Ritz-Carlton"})
	baseline := svc.Calculate(&models.Property{Brand: "Comfort Inn"})

	assert.Equal(t, "luxury", luxury.BrandTier)
	assert.Equal(t, 1.5, luxury.BrandTierFactor)
	assert.Equal(t, "economy", baseline.BrandTier)
	assert.Equal(t, 1.0, baseline.BrandTierFactor)
}

func TestBracketResolution_RoofAgeBoundaries(t *testing.T) {
	cfg := loadPerRoomConfig(t)
	brackets := cfg.PerRoom.RoofAgeModifiers

	assert.Equal(t, 0.95, resolveBracket(brackets, 5), "inclusive upper bound")
	assert.Equal(t, 1.0, resolveBracket(brackets, 6))
	assert.Equal(t, 1.05, resolveBracket(brackets, 15))
	assert.Equal(t, 1.1, resolveBracket(brackets, 16))
	assert.Equal(t, 1.2, resolveBracket(brackets, 999))
	assert.Equal(t, 1.2, resolveBracket(brackets, 999999), "past every threshold resolves to the ceiling tier")
	assert.Equal(t, 0.95, resolveBracket(brackets, -3), "negative inputs land in the lowest bracket")
}

func TestBracketResolution_Monotonic(t *testing.T) {
	cfg := loadPerRoomConfig(t)

	for _, brackets := range [][]ratingconfig.Bracket{
		cfg.PerRoom.BuildingAgeModifiers,
		cfg.PerRoom.RoofAgeModifiers,
		cfg.PerRoom.StoriesModifiers,
	} {
		prev := 0.0
		for input := 0; input <= 1100; input++ {
			got := resolveBracket(brackets, float64(input))
			assert.GreaterOrEqual(t, got, prev, "factor must be non-decreasing at input %d", input)
			prev = got
		}
	}
}

// ============================================================================
// TEST SUITE 4: GEOGRAPHY RESOLUTION
// ============================================================================

func TestGeography_ThreeTierStateZonesAreDistinct(t *testing.T) {
	svc := newTestRatingService(t)

	base := &models.Property{State: "FL", WindTier: models.WindTier1}

	inland := base
	inland.LocationZone = models.ZoneInland
	inlandResult := svc.Calculate(inland)

	coastal := *base
	coastal.LocationZone = models.ZoneCoastal
	coastalResult := svc.Calculate(&coastal)

	twia := *base
	twia.LocationZone = models.ZoneTWIA
	twiaResult := svc.Calculate(&twia)

	assert.Equal(t, 1.45, inlandResult.GeoModifier)
	assert.Equal(t, 1.75, coastalResult.GeoModifier)
	assert.Equal(t, 2.1, twiaResult.GeoModifier)

	// Zone pricing absorbs the wind tier; it is never double-applied.
	for _, r := range []*models.RatingResult{inlandResult, coastalResult, twiaResult} {
		assert.True(t, r.LocationZoneApplied)
		assert.Equal(t, 1.0, r.WindTierFactor)
	}
}

func TestGeography_TwoTierStateMapsTWIAToCoastal(t *testing.T) {
	svc := newTestRatingService(t)

	coastal := svc.Calculate(&models.Property{State: "SC", LocationZone: models.ZoneCoastal})
	twia := svc.Calculate(&models.Property{State: "SC", LocationZone: models.ZoneTWIA})
	inland := svc.Calculate(&models.Property{State: "SC"})

	assert.Equal(t, 1.5, coastal.GeoModifier)
	assert.Equal(t, 1.5, twia.GeoModifier, "twia maps to coastal in two-tier states")
	assert.Equal(t, 1.2, inland.GeoModifier)
}

func TestGeography_FlatStateIgnoresZonesAndWindWhenNotCoastal(t *testing.T) {
	svc := newTestRatingService(t)

	result := svc.Calculate(&models.Property{
		State:        "OH",
		LocationZone: models.ZoneCoastal,
		WindTier:     models.WindTier1,
	})

	assert.Equal(t, 1.0, result.GeoModifier)
	assert.False(t, result.LocationZoneApplied)
	assert.Equal(t, 1.0, result.WindTierFactor, "wind tier never applies outside the coastal-states list")
}

func TestGeography_FlatCoastalStateAppliesWindTier(t *testing.T) {
	svc := newTestRatingService(t)

	// VA is in the coastal-states list but carries only a flat modifier.
	result := svc.Calculate(&models.Property{State: "VA", WindTier: models.WindTier3})

	assert.Equal(t, 1.05, result.GeoModifier)
	assert.Equal(t, 1.6, result.WindTierFactor)
	assert.False(t, result.LocationZoneApplied)
}

func TestGeography_FloodAndNamedStormGatedOnWindTier(t *testing.T) {
	svc := newTestRatingService(t)

	inlandTier := svc.Calculate(&models.Property{
		State:     "VA",
		WindTier:  models.WindInland,
		FloodZone: models.FloodZoneVE,
	})
	exposedTier := svc.Calculate(&models.Property{
		State:                "VA",
		WindTier:             models.WindTier2,
		FloodZone:            models.FloodZoneVE,
		NamedStormDeductible: "5%",
	})

	assert.Equal(t, 1.0, inlandTier.FloodZoneFactor, "flood factor requires a non-inland wind tier")
	assert.Equal(t, 1.0, inlandTier.NamedStormFactor)
	assert.Equal(t, 1.35, exposedTier.FloodZoneFactor)
	assert.Equal(t, 0.8, exposedTier.NamedStormFactor)
}

// ============================================================================
// TEST SUITE 5: LIABILITY
// ============================================================================

func TestLiability_RestaurantAddsComponentsIntoSingleGLLine(t *testing.T) {
	svc := newTestRatingService(t)

	result := svc.Calculate(&models.Property{
		RoomCount:   200,
		ServiceType: models.ServiceFullService,
		Amenities:   models.Amenities{Pool: true, Restaurant: true},
	})

	// 200 rooms x 33,500 revenue at the with-pool rate.
	assert.Equal(t, int64(6_700_000), result.RoomRevenue)
	assert.Equal(t, 9.5, result.GLRate)
	assert.Equal(t, int64(63_650), result.GLBasePremium)

	assert.Equal(t, int64(871_000), result.FBRevenue)
	assert.Positive(t, result.GLRestaurantComponent)
	assert.Positive(t, result.GLLiquorComponent)

	expected := result.GLBasePremium + result.GLRestaurantComponent + result.GLLiquorComponent
	assert.Equal(t, expected, result.GeneralLiabilityPremium,
		"restaurant and liquor are sub-components of one GL line")
}

func TestLiability_NoRestaurantNoComponents(t *testing.T) {
	svc := newTestRatingService(t)

	result := svc.Calculate(&models.Property{
		RoomCount:   100,
		ServiceType: models.ServiceSelectService,
	})

	assert.Equal(t, 6.5, result.GLRate)
	assert.Zero(t, result.GLRestaurantComponent)
	assert.Zero(t, result.GLLiquorComponent)
	assert.Equal(t, result.GLBasePremium, result.GeneralLiabilityPremium)
}

func TestLiability_ResortActivitiesSurcharge(t *testing.T) {
	svc := newTestRatingService(t)

	without := svc.Calculate(&models.Property{RoomCount: 150, ServiceType: models.ServiceFullService})
	with := svc.Calculate(&models.Property{
		RoomCount:           150,
		ServiceType:         models.ServiceFullService,
		HasResortActivities: true,
	})

	assert.Positive(t, with.GLActivitiesComponent)
	assert.Greater(t, with.GeneralLiabilityPremium, without.GeneralLiabilityPremium)
}

// ============================================================================
// TEST SUITE 6: UMBRELLA
// ============================================================================

func TestUmbrella_IncrementalTierStacking(t *testing.T) {
	svc := newTestRatingService(t)

	result := svc.Calculate(&models.Property{
		RoomCount:     200,
		UmbrellaLimit: "$125M",
	})

	// $50M flat 220 + $100M incremental 65 + $125M incremental 10, per room.
	assert.Equal(t, int64(200*(220+65+10)), result.UmbrellaBasePremium)
}

func TestUmbrella_BarLiquorReplacesRestaurantSurcharge(t *testing.T) {
	svc := newTestRatingService(t)

	result := svc.Calculate(&models.Property{
		RoomCount:    100,
		HasBarLiquor: true,
		Amenities:    models.Amenities{Restaurant: true},
	})

	assert.Contains(t, result.UmbrellaSurcharges, "bar_liquor")
	assert.NotContains(t, result.UmbrellaSurcharges, "restaurant",
		"bar_liquor strictly replaces the restaurant surcharge")
	assert.Equal(t, int64(100*45), result.UmbrellaSurcharges["bar_liquor"])
	assert.Equal(t, int64(100*45), result.UmbrellaSurchargeTotal)
}

func TestUmbrella_ModifiersApplyToSubtotal(t *testing.T) {
	svc := newTestRatingService(t)

	result := svc.Calculate(&models.Property{
		RoomCount:             100,
		UmbrellaLimit:         "$10M",
		UmbrellaSIR:           "$50K",
		FleetSize:             12,
		LitigationEnvironment: models.LitigationHigh,
		HasValet:              true,
	})

	assert.Equal(t, int64(15_000), result.UmbrellaBasePremium)
	assert.Equal(t, int64(1_500), result.UmbrellaSurcharges["valet"])
	assert.Equal(t, int64(16_500), result.UmbrellaBeforeModifiers)
	assert.Equal(t, 1.15, result.LitigationFactor)
	assert.Equal(t, 1.05, result.FleetFactor)
	assert.Equal(t, 0.9, result.SIRFactor)
	assert.Equal(t, int64(17_931), result.UmbrellaExcessPremium,
		"round(16500 x 1.15 x 1.05 x 0.9)")
}

// ============================================================================
// TEST SUITE 7: WARNINGS AND RISK GRADE
// ============================================================================

func TestWarnings_FixedOrderAndGating(t *testing.T) {
	svc := newTestRatingService(t)

	result := svc.Calculate(&models.Property{
		RoomCount:        300,
		Stories:          12,
		ConstructionType: models.ConstructionFrame,
		Sprinklered:      boolPtr(false),
		State:            "TX",
		LocationZone:     models.ZoneTWIA,
		RoofAge:          18,
		ProtectionClass:  9,
		ServiceType:      models.ServiceFullService,
	})

	require.Len(t, result.Warnings, 8, "every alert condition is tripped")
	assert.Contains(t, result.Warnings[0], "catastrophe-exposed state")
	assert.Contains(t, result.Warnings[1], "TWIA")
	assert.Contains(t, result.Warnings[2], "Roof age")
	assert.Contains(t, result.Warnings[3], "Protection class")
	assert.Contains(t, result.Warnings[4], "sprinklered")
	assert.Contains(t, result.Warnings[5], "insurable value")
	assert.Contains(t, result.Warnings[6], "Frame")
	assert.Contains(t, result.Warnings[7], "High-rise")
}

func TestRiskGrade_InclusiveUpperBound(t *testing.T) {
	cfg := loadPerRoomConfig(t)

	assert.Equal(t, "A - Preferred", resolveRiskGrade(cfg.PerRoom.RiskGrades, 1000),
		"a per-room value exactly at the threshold takes that grade")
	assert.Equal(t, "B - Good", resolveRiskGrade(cfg.PerRoom.RiskGrades, 1000.01))
	assert.Equal(t, "E - Poor", resolveRiskGrade(cfg.PerRoom.RiskGrades, 10_000_000))
}

// A per-room quotient fractionally over a grade bound must take the next
// grade even when the displayed premium_per_room rounds back down onto the
// bound. The tables here are pinned so 100 rooms price to exactly $100,040:
// quotient 1000.40, displayed per-room figure 1000.
func TestRiskGrade_FollowsExactQuotientNotRoundedPerRoom(t *testing.T) {
	cfg := &ratingconfig.Config{
		Profile: ratingconfig.ProfilePerRoom,
		Version: "test",
		PerRoom: &ratingconfig.PerRoomProfile{
			PropertyBaseRates: map[models.ConstructionType]float64{
				models.ConstructionMasonryNonCombustible: 10.004,
			},
			TIV:                    ratingconfig.TIVTables{DefaultBuildingCostPerRoom: 10_000},
			BuildingAgeModifiers:   []ratingconfig.Bracket{{Max: 999_999, Modifier: 1.0}},
			RoofAgeModifiers:       []ratingconfig.Bracket{{Max: 999_999, Modifier: 1.0}},
			StoriesModifiers:       []ratingconfig.Bracket{{Max: 999_999, Modifier: 1.0}},
			DefaultGeoModifier:     1.0,
			DefaultProtectionClass: 5,
			Umbrella: ratingconfig.UmbrellaTables{
				DefaultLimit:   "$5M",
				FleetModifiers: []ratingconfig.Bracket{{Max: 999_999, Modifier: 1.0}},
			},
			WarningThresholds: ratingconfig.WarningThresholds{OldRoofAge: 999, HighPPC: 999, HighTIV: 1e12},
			DefaultFloodZone:  models.FloodZoneX,
			RiskGrades: []ratingconfig.RiskGradeBracket{
				{MaxPerRoom: 1000, Grade: "A", Label: "Preferred"},
				{MaxPerRoom: 999_999_999, Grade: "B", Label: "Good"},
			},
		},
	}
	svc := NewRatingService(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	result := svc.Calculate(&models.Property{
		RoomCount:   100,
		Sprinklered: boolPtr(true),
	})

	require.Equal(t, int64(100_040), result.TotalEstimatedPremium)
	assert.Equal(t, int64(1000), result.PremiumPerRoom)
	assert.Equal(t, "B - Good", result.RiskGrade)
}

// ============================================================================
// TEST SUITE 8: ROUND-TRIP SCENARIO
// ============================================================================

func TestRoundTrip_CoastalFloridaFullService(t *testing.T) {
	svc := newTestRatingService(t)

	result := svc.Calculate(roundTripProperty())

	assert.Equal(t, int64(200*(323_000+19_000+24_000)), result.TotalInsurableValue)
	assert.Positive(t, result.PropertyPremium)
	assert.Positive(t, result.GLRestaurantComponent)
	assert.Positive(t, result.GLLiquorComponent)

	inlandScenario := roundTripProperty()
	inlandScenario.LocationZone = models.ZoneInland
	inland := svc.Calculate(inlandScenario)
	assert.Greater(t, result.PropertyPremium, inland.PropertyPremium,
		"coastal zone must price above inland for the same risk")

	foundCAT, foundTWIA := false, false
	for _, w := range result.Warnings {
		if strings.Contains(w, "catastrophe-exposed state") {
			foundCAT = true
		}
		if strings.Contains(w, "TWIA") {
			foundTWIA = true
		}
	}
	assert.True(t, foundCAT, "FL is in the CAT-exposed list")
	assert.False(t, foundTWIA, "coastal zone is not twia")

	total := result.PropertyPremium + result.GeneralLiabilityPremium +
		result.UmbrellaExcessPremium + result.FloodPremium
	assert.Equal(t, total, result.TotalEstimatedPremium)
	assert.Equal(t, roundMoney(float64(total)/200), result.PremiumPerRoom)
}
