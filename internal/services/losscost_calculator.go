package services

import (
	"math"

	"github.com/cschleeper/hotel-rating-tool/internal/models"
	"github.com/cschleeper/hotel-rating-tool/internal/ratingconfig"
)

// calculateLossCost is the legacy ISO-style rating model: loss cost times
// loss cost multiplier for the rate, square-footage building value, additive
// amenity factor applied to a flat per-room GL, and umbrella as a factor of
// property plus GL. Kept as an alternate configuration profile; it never
// shares fields with the per-room model.
func (s *RatingService) calculateLossCost(p *models.Property) *models.RatingResult {
	cfg := s.cfg.LossCost
	in := s.resolveLossCostInput(p)

	rateTable := cfg.BaseRatesPer100.Sprinklered
	if !in.Sprinklered {
		rateTable = cfg.BaseRatesPer100.NonSprinklered
	}
	lossCost, ok := rateTable[in.ConstructionType]
	if !ok {
		lossCost = cfg.DefaultBaseRate
	}
	baseRate := lossCost * cfg.LossCostMultiplier

	costPerSF, ok := cfg.TIV.BuildingCostPerSF[in.ConstructionType]
	if !ok {
		costPerSF = cfg.TIV.DefaultBuildingCostPerSF
	}
	ageAdjustment := resolveBracket(cfg.TIV.AgeAdjustments, float64(in.BuildingAge))
	building := roundMoney(in.SquareFootage * costPerSF * ageAdjustment)
	contents := roundMoney(float64(in.RoomCount) * cfg.TIV.ContentsPerRoom)
	bi := roundMoney(float64(in.RoomCount) * cfg.TIV.BusinessIncomePerRoom)
	totalTIV := building + contents + bi

	ageFactor := resolveBracket(cfg.BuildingAgeModifiers, float64(in.BuildingAge))
	storiesFactor := resolveBracket(cfg.StoriesModifiers, float64(in.Stories))
	roofFactor := resolveBracket(cfg.RoofAgeModifiers, float64(in.RoofAge))
	geoModifier, ok := cfg.GeographicModifiers[in.State]
	if !ok {
		geoModifier = cfg.DefaultGeoModifier
	}
	protectionFactor, ok := cfg.ProtectionClassModifiers[in.ProtectionClass]
	if !ok {
		protectionFactor, ok = cfg.ProtectionClassModifiers[cfg.DefaultProtectionClass]
		if !ok {
			protectionFactor = 1.0
		}
	}

	amenitiesFactor := 1.0
	for name, addend := range cfg.AmenityModifiers {
		if amenityPresent(in.Amenities, name) {
			amenitiesFactor += addend
		}
	}

	propertyPremium := roundMoney(float64(totalTIV) / 100 * baseRate *
		ageFactor * storiesFactor * roofFactor * geoModifier * protectionFactor)

	glPremium := roundMoney(float64(in.RoomCount) * cfg.LiabilityRates.GLPerRoom * amenitiesFactor)
	var liquorLiability int64
	if in.Amenities.Restaurant {
		liquorLiability = roundMoney(float64(in.RoomCount) * cfg.LiabilityRates.LiquorPerRoom)
	}
	umbrellaPremium := roundMoney(float64(propertyPremium+glPremium) * cfg.LiabilityRates.UmbrellaFactor)

	total := propertyPremium + glPremium + liquorLiability + umbrellaPremium

	rooms := in.RoomCount
	if rooms < 1 {
		rooms = 1
	}
	perRoomExact := float64(total) / float64(rooms)
	perRoom := roundMoney(perRoomExact)
	perSF := math.Round(float64(total)/in.SquareFootage*100) / 100

	result := &models.RatingResult{
		BuildingValue:       building,
		ContentsValue:       contents,
		BusinessIncomeValue: bi,
		TotalInsurableValue: totalTIV,

		LossCostPer100: lossCost,
		LCM:            cfg.LossCostMultiplier,
		BaseRatePer100: baseRate,
		Sprinklered:    in.Sprinklered,

		AgeFactor:             ageFactor,
		StoriesFactor:         storiesFactor,
		RoofFactor:            roofFactor,
		GeoModifier:           geoModifier,
		ProtectionClassFactor: protectionFactor,
		AmenitiesFactor:       amenitiesFactor,

		PropertyPremium:         propertyPremium,
		GeneralLiabilityPremium: glPremium,
		LiquorLiabilityPremium:  liquorLiability,
		UmbrellaExcessPremium:   umbrellaPremium,

		TotalEstimatedPremium: total,
		PremiumPerRoom:        perRoom,
		PremiumPerSF:          perSF,

		Warnings:  []string{},
		RiskGrade: resolveRiskGrade(cfg.RiskGrades, perRoomExact),
	}

	s.logger.Debug("rating calculated",
		"profile", ratingconfig.ProfileLossCost,
		"rooms", in.RoomCount,
		"state", in.State,
		"total_premium", total,
		"risk_grade", result.RiskGrade)

	return result
}

// resolveLossCostInput defaults the subset of fields the legacy model reads.
func (s *RatingService) resolveLossCostInput(p *models.Property) *resolvedInput {
	cfg := s.cfg.LossCost
	in := &resolvedInput{
		RoomCount:        intOrDefault(int(p.RoomCount), defaultRoomCount),
		Stories:          intOrDefault(int(p.Stories), defaultStories),
		YearBuilt:        intOrDefault(int(p.YearBuilt), defaultYearBuilt),
		ConstructionType: p.ConstructionType,
		SquareFootage:    floatOrDefault(float64(p.SquareFootage), defaultSquareFootage),
		Sprinklered:      p.IsSprinklered(),
		State:            normalizeState(p.State),
		RoofAge:          intOrDefault(int(p.RoofAge), defaultRoofAge),
		ProtectionClass:  intOrDefault(int(p.ProtectionClass), cfg.DefaultProtectionClass),
		Amenities:        p.Amenities,
	}
	if in.ConstructionType == "" {
		in.ConstructionType = models.ConstructionMasonryNonCombustible
	}
	in.BuildingAge = s.now().Year() - in.YearBuilt
	if in.BuildingAge < 0 {
		in.BuildingAge = 0
	}
	return in
}

func amenityPresent(a models.Amenities, name string) bool {
	switch name {
	case "pool":
		return a.Pool
	case "restaurant":
		return a.Restaurant
	case "fitness_center":
		return a.FitnessCenter
	case "spa":
		return a.Spa
	case "business_center":
		return a.BusinessCenter
	case "meeting_space":
		return a.MeetingSpace
	}
	return false
}
