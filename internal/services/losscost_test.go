package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cschleeper/hotel-rating-tool/internal/models"
	"github.com/cschleeper/hotel-rating-tool/internal/ratingconfig"
)

// ============================================================================
// TEST SUITE: LEGACY LOSS-COST PROFILE
// ============================================================================

func newLossCostRatingService(t *testing.T) *RatingService {
	t.Helper()
	cfg, err := ratingconfig.Load("../../configs/rating_config_losscost.json")
	require.NoError(t, err)
	require.Equal(t, ratingconfig.ProfileLossCost, cfg.Profile)
	svc := NewRatingService(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestLossCost_RateIsLossCostTimesLCM(t *testing.T) {
	svc := newLossCostRatingService(t)

	result := svc.Calculate(&models.Property{})

	assert.Equal(t, 0.09, result.LossCostPer100)
	assert.Equal(t, 1.55, result.LCM)
	assert.InDelta(t, 0.09*1.55, result.BaseRatePer100, 1e-9)
}

func TestLossCost_NonSprinkleredUsesSeparateRateTable(t *testing.T) {
	svc := newLossCostRatingService(t)

	result := svc.Calculate(&models.Property{Sprinklered: boolPtr(false)})

	assert.Equal(t, 0.14, result.LossCostPer100)
	assert.InDelta(t, 0.14*1.55, result.BaseRatePer100, 1e-9)
}

func TestLossCost_BuildingValueFromSquareFootage(t *testing.T) {
	svc := newLossCostRatingService(t)

	result := svc.Calculate(&models.Property{
		RoomCount:     100,
		YearBuilt:     2020,
		SquareFootage: 60_000,
	})

	// 60,000 sf x $230/sf with no age adjustment (5 years old).
	assert.Equal(t, int64(60_000*230), result.BuildingValue)
	assert.Equal(t, int64(100*15_000), result.ContentsValue)
	assert.Equal(t, int64(100*18_000), result.BusinessIncomeValue)
}

func TestLossCost_AmenitiesFactorAppliesToGLOnly(t *testing.T) {
	svc := newLossCostRatingService(t)

	bare := svc.Calculate(&models.Property{RoomCount: 100})
	loaded := svc.Calculate(&models.Property{
		RoomCount: 100,
		Amenities: models.Amenities{Pool: true, Restaurant: true},
	})

	assert.Equal(t, 1.0, bare.AmenitiesFactor)
	assert.InDelta(t, 1.08, loaded.AmenitiesFactor, 1e-9, "pool 0.03 plus restaurant 0.05")

	// GL scales with the amenity factor; the property premium does not.
	assert.Equal(t, int64(100*95), bare.GeneralLiabilityPremium)
	assert.Equal(t, roundMoney(100*95*1.08), loaded.GeneralLiabilityPremium)
	assert.Equal(t, bare.PropertyPremium, loaded.PropertyPremium,
		"amenities never touch the property premium in this profile")
}

func TestLossCost_LiquorLiabilityGatedOnRestaurant(t *testing.T) {
	svc := newLossCostRatingService(t)

	with := svc.Calculate(&models.Property{
		RoomCount: 100,
		Amenities: models.Amenities{Restaurant: true},
	})
	without := svc.Calculate(&models.Property{RoomCount: 100})

	assert.Equal(t, int64(100*30), with.LiquorLiabilityPremium)
	assert.Zero(t, without.LiquorLiabilityPremium)
}

func TestLossCost_UmbrellaIsFactorOfPropertyPlusGL(t *testing.T) {
	svc := newLossCostRatingService(t)

	result := svc.Calculate(&models.Property{RoomCount: 150})

	expected := roundMoney(float64(result.PropertyPremium+result.GeneralLiabilityPremium) * 0.35)
	assert.Equal(t, expected, result.UmbrellaExcessPremium)
}

func TestLossCost_NoWarningsAndLegacyGrades(t *testing.T) {
	svc := newLossCostRatingService(t)

	// A risk that would trip several alerts under the per-room model.
	result := svc.Calculate(&models.Property{
		RoomCount:        300,
		Stories:          15,
		ConstructionType: models.ConstructionFrame,
		Sprinklered:      boolPtr(false),
		State:            "FL",
		RoofAge:          20,
	})

	assert.NotNil(t, result.Warnings)
	assert.Empty(t, result.Warnings, "the legacy profile produces no underwriting alerts")
	assert.NotEmpty(t, result.RiskGrade)
}

func TestLossCost_PerRoomFieldsStayZero(t *testing.T) {
	svc := newLossCostRatingService(t)

	result := svc.Calculate(&models.Property{
		RoomCount:    100,
		State:        "FL",
		LocationZone: models.ZoneCoastal,
		Amenities:    models.Amenities{Restaurant: true},
	})

	assert.Zero(t, result.RoomRevenue)
	assert.Zero(t, result.GLRestaurantComponent)
	assert.Zero(t, result.UmbrellaBasePremium)
	assert.Empty(t, result.UmbrellaLimit)
	assert.Zero(t, result.WindTierFactor)
	assert.False(t, result.LocationZoneApplied)
}
