package ratingconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cschleeper/hotel-rating-tool/internal/models"
)

// ============================================================================
// TEST SUITE: CONFIG LOADING AND VALIDATION
// ============================================================================

func TestLoad_PerRoomConfig(t *testing.T) {
	cfg, err := Load("../../configs/rating_config.json")
	require.NoError(t, err)

	assert.Equal(t, ProfilePerRoom, cfg.Profile)
	assert.Equal(t, "2025.2", cfg.Version)
	require.NotNil(t, cfg.PerRoom)
	assert.Nil(t, cfg.LossCost)
	assert.NotEmpty(t, cfg.PerRoom.PropertyBaseRates)
	assert.NotEmpty(t, cfg.PerRoom.Umbrella.LimitTiers)
}

func TestLoad_LossCostConfig(t *testing.T) {
	cfg, err := Load("../../configs/rating_config_losscost.json")
	require.NoError(t, err)

	assert.Equal(t, ProfileLossCost, cfg.Profile)
	assert.Equal(t, "2024.1-legacy", cfg.Version)
	require.NotNil(t, cfg.LossCost)
	assert.Nil(t, cfg.PerRoom)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("../../configs/no_such_config.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read rating config")
}

func TestParse_RejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"profile": "per-room"`))
	require.Error(t, err)
}

func TestValidate_UnknownProfile(t *testing.T) {
	cfg := &Config{Profile: "experimental"}
	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown configuration profile")
}

func TestValidate_ProfileSectionMismatch(t *testing.T) {
	perRoomMissing := &Config{Profile: ProfilePerRoom}
	require.Error(t, perRoomMissing.validate())

	bothPresent := &Config{
		Profile:  ProfilePerRoom,
		PerRoom:  &PerRoomProfile{},
		LossCost: &LossCostProfile{},
	}
	require.Error(t, bothPresent.validate())

	lossCostMissing := &Config{Profile: ProfileLossCost}
	require.Error(t, lossCostMissing.validate())
}

func TestValidateBrackets(t *testing.T) {
	valid := []Bracket{{Max: 10, Modifier: 1.0}, {Max: 20, Modifier: 1.1}, {Max: 999, Modifier: 1.2}}
	assert.NoError(t, validateBrackets("t", valid))

	assert.Error(t, validateBrackets("t", nil), "empty list")

	notAscending := []Bracket{{Max: 20, Modifier: 1.0}, {Max: 10, Modifier: 1.1}, {Max: 999, Modifier: 1.2}}
	assert.Error(t, validateBrackets("t", notAscending))

	duplicate := []Bracket{{Max: 10, Modifier: 1.0}, {Max: 10, Modifier: 1.1}, {Max: 999, Modifier: 1.2}}
	assert.Error(t, validateBrackets("t", duplicate), "thresholds must be strictly ascending")

	noCatchAll := []Bracket{{Max: 10, Modifier: 1.0}, {Max: 20, Modifier: 1.1}}
	assert.Error(t, validateBrackets("t", noCatchAll), "final bracket must be open-ended")
}

func TestValidateRiskGrades(t *testing.T) {
	valid := []RiskGradeBracket{
		{MaxPerRoom: 1000, Grade: "A", Label: "Preferred"},
		{MaxPerRoom: 999999, Grade: "E", Label: "Poor"},
	}
	assert.NoError(t, validateRiskGrades(valid))

	assert.Error(t, validateRiskGrades(nil))

	descending := []RiskGradeBracket{
		{MaxPerRoom: 2000, Grade: "A", Label: "Preferred"},
		{MaxPerRoom: 1000, Grade: "B", Label: "Good"},
	}
	assert.Error(t, validateRiskGrades(descending))
}

func TestValidate_UmbrellaTierReferences(t *testing.T) {
	profile := validPerRoomProfile()
	profile.Umbrella.LimitTiers["$100M"] = UmbrellaLimitTier{
		Incremental:        true,
		BaseLimit:          "$75M",
		IncrementalPerRoom: 65,
	}

	err := profile.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown base limit")
}

func TestValidate_UmbrellaDefaultLimitMustExist(t *testing.T) {
	profile := validPerRoomProfile()
	profile.Umbrella.DefaultLimit = "$500M"

	err := profile.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a configured tier")
}

// validPerRoomProfile builds the smallest profile that passes structural
// validation, for mutation in the failure tests.
func validPerRoomProfile() *PerRoomProfile {
	brackets := []Bracket{{Max: 10, Modifier: 1.0}, {Max: 999, Modifier: 1.1}}
	return &PerRoomProfile{
		PropertyBaseRates: map[models.ConstructionType]float64{
			models.ConstructionMasonryNonCombustible: 0.14,
		},
		BuildingAgeModifiers: brackets,
		RoofAgeModifiers:     brackets,
		StoriesModifiers:     brackets,
		Umbrella: UmbrellaTables{
			LimitTiers: map[string]UmbrellaLimitTier{
				"$25M": {PerRoom: 200},
			},
			DefaultLimit:   "$25M",
			FleetModifiers: brackets,
		},
		RiskGrades: []RiskGradeBracket{
			{MaxPerRoom: 1000, Grade: "A", Label: "Preferred"},
			{MaxPerRoom: 999999, Grade: "E", Label: "Poor"},
		},
	}
}
