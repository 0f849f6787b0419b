package services

import (
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cschleeper/hotel-rating-tool/internal/models"
	"github.com/cschleeper/hotel-rating-tool/internal/ratingconfig"
)

// Input defaults applied when a field is missing, zero, or unparseable.
const (
	defaultRoomCount     = 100
	defaultStories       = 3
	defaultYearBuilt     = 2000
	defaultSquareFootage = 50000
	defaultRoofAge       = 10
)

// resolvedInput is the fully-defaulted view of a Property that the
// calculators operate on. Building it up front keeps every downstream stage
// free of nil checks and zero-value special cases.
type resolvedInput struct {
	RoomCount        int
	Stories          int
	YearBuilt        int
	BuildingAge      int
	ConstructionType models.ConstructionType
	SquareFootage    float64
	Sprinklered      bool
	State            string
	Brand            string
	BrandTier        string
	ServiceType      models.ServiceType
	RoofAge          int
	ProtectionClass  int
	LocationType     models.LocationType
	LocationZone     models.LocationZone
	WindTier         models.WindTier
	FloodZone        models.FloodZone
	NamedStormDeductible string

	Amenities models.Amenities

	UmbrellaLimit       string
	UmbrellaSIR         string
	FleetSize           int
	Litigation          models.LitigationEnvironment
	HasValet            bool
	HasBarLiquor        bool
	HasResortActivities bool
}

// RatingService runs the deterministic rating pipeline. It is safe for
// concurrent use: the configuration is read-only after load and each
// calculation is a pure function of its input.
type RatingService struct {
	cfg    *ratingconfig.Config
	brands *BrandService
	logger *slog.Logger
	now    func() time.Time
}

func NewRatingService(cfg *ratingconfig.Config, logger *slog.Logger) *RatingService {
	s := &RatingService{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
	if cfg.PerRoom != nil {
		s.brands = NewBrandService(cfg.PerRoom)
	}
	return s
}

// ConfigVersion returns the version tag of the loaded rating tables.
func (s *RatingService) ConfigVersion() string {
	return s.cfg.Version
}

// Profile returns the active configuration profile tag.
func (s *RatingService) Profile() string {
	return s.cfg.Profile
}

// Calculate rates one property. It never fails: malformed or missing input
// fields degrade to documented defaults, and the active profile selects the
// calculation model.
func (s *RatingService) Calculate(p *models.Property) *models.RatingResult {
	if s.cfg.Profile == ratingconfig.ProfileLossCost {
		return s.calculateLossCost(p)
	}
	return s.calculatePerRoom(p)
}

func (s *RatingService) calculatePerRoom(p *models.Property) *models.RatingResult {
	cfg := s.cfg.PerRoom
	in := s.resolveInput(p)

	tiv := estimateTIV(cfg, in)
	prop := calculatePropertyPremium(cfg, in, tiv)
	gl := calculateLiability(cfg, in)
	umb := calculateUmbrella(cfg, in)

	var flood int64
	if f, ok := cfg.FloodInsuranceEstimates[in.FloodZone]; ok {
		flood = roundMoney(f)
	}

	total := prop.PropertyPremium + gl.Total + umb.Total + flood

	rooms := in.RoomCount
	if rooms < 1 {
		rooms = 1
	}
	perRoomExact := float64(total) / float64(rooms)
	perRoom := roundMoney(perRoomExact)

	var perSF float64
	if in.SquareFootage > 0 {
		perSF = math.Round(float64(total)/in.SquareFootage*100) / 100
	}

	var effectiveRate float64
	if tiv.Total > 0 {
		effectiveRate = math.Round(float64(prop.PropertyPremium)/float64(tiv.Total)*100*1000) / 1000
	}

	var surchargeTotal int64
	for _, v := range umb.Surcharges {
		surchargeTotal += v
	}

	result := &models.RatingResult{
		BuildingValue:       tiv.Building,
		ContentsValue:       tiv.Contents,
		BusinessIncomeValue: tiv.BusinessIncome,
		TotalInsurableValue: tiv.Total,

		BaseRatePer100:        prop.BaseRatePer100,
		SprinklerAdjustedRate: prop.SprinklerAdjustedRate,
		Sprinklered:           in.Sprinklered,

		AgeFactor:             prop.AgeFactor,
		StoriesFactor:         prop.StoriesFactor,
		RoofFactor:            prop.RoofFactor,
		GeoModifier:           prop.GeoModifier,
		ProtectionClassFactor: prop.ProtectionClassFactor,
		LocationTypeFactor:    prop.LocationTypeFactor,
		BrandTierFactor:       prop.BrandTierFactor,
		WindTierFactor:        prop.WindTierFactor,
		FloodZoneFactor:       prop.FloodZoneFactor,
		NamedStormFactor:      prop.NamedStormFactor,
		LocationZoneApplied:   prop.LocationZoneApplied,

		BrandTier:            in.BrandTier,
		EffectiveServiceType: in.ServiceType,

		BuildingModifiedRate: prop.BuildingModifiedRate,
		ContentsRate:         prop.ContentsRate,
		BIRate:               prop.BIRate,

		BuildingPremium:           prop.BuildingPremium,
		ContentsPremium:           prop.ContentsPremium,
		BusinessIncomePremium:     prop.BusinessIncomePremium,
		EquipmentBreakdownPremium: prop.EquipmentBreakdownPremium,
		PropertyPremium:           prop.PropertyPremium,

		RoomRevenue:             gl.RoomRevenue,
		GLRate:                  gl.GLRate,
		GLBasePremium:           gl.BasePremium,
		FBRevenue:               gl.FBRevenue,
		GLRestaurantComponent:   gl.RestaurantComponent,
		LiquorRevenue:           gl.LiquorRevenue,
		GLLiquorComponent:       gl.LiquorComponent,
		ActivitiesRevenue:       gl.ActivitiesRevenue,
		GLActivitiesComponent:   gl.ActivitiesComponent,
		GeneralLiabilityPremium: gl.Total,

		UmbrellaLimit:           umb.Limit,
		UmbrellaBasePremium:     umb.BasePremium,
		UmbrellaSurcharges:      umb.Surcharges,
		UmbrellaSurchargeTotal:  surchargeTotal,
		UmbrellaBeforeModifiers: umb.BeforeModifiers,
		LitigationFactor:        umb.LitigationFactor,
		FleetFactor:             umb.FleetFactor,
		SIRFactor:               umb.SIRFactor,
		UmbrellaExcessPremium:   umb.Total,

		FloodZone:    in.FloodZone,
		FloodPremium: flood,

		TotalEstimatedPremium: total,
		PremiumPerRoom:        perRoom,
		PremiumPerSF:          perSF,
		EffectiveRatePer100:   effectiveRate,
	}

	result.Warnings = buildWarnings(cfg, in, tiv.Total)
	// Grading uses the exact quotient, not the rounded display figure, so a
	// value a few cents over a bracket bound lands in the next grade.
	result.RiskGrade = resolveRiskGrade(cfg.RiskGrades, perRoomExact)

	s.logger.Debug("rating calculated",
		"profile", ratingconfig.ProfilePerRoom,
		"rooms", in.RoomCount,
		"state", in.State,
		"total_premium", total,
		"risk_grade", result.RiskGrade)

	return result
}

// resolveInput applies every documented default to a raw property. Zero and
// missing numerics take their defaults; unrecognized enum values pass through
// to the per-table fallback branches.
func (s *RatingService) resolveInput(p *models.Property) *resolvedInput {
	cfg := s.cfg.PerRoom

	in := &resolvedInput{
		RoomCount:        intOrDefault(int(p.RoomCount), defaultRoomCount),
		Stories:          intOrDefault(int(p.Stories), defaultStories),
		YearBuilt:        intOrDefault(int(p.YearBuilt), defaultYearBuilt),
		ConstructionType: p.ConstructionType,
		SquareFootage:    floatOrDefault(float64(p.SquareFootage), defaultSquareFootage),
		Sprinklered:      p.IsSprinklered(),
		State:            normalizeState(p.State),
		Brand:            p.Brand,
		RoofAge:          intOrDefault(int(p.RoofAge), defaultRoofAge),
		ProtectionClass:  intOrDefault(int(p.ProtectionClass), cfg.DefaultProtectionClass),
		LocationType:     p.LocationType,
		LocationZone:     p.LocationZone,
		WindTier:         p.WindTier,
		FloodZone:        p.FloodZone,
		NamedStormDeductible: p.NamedStormDeductible,
		Amenities:        p.Amenities,
		UmbrellaLimit:    p.UmbrellaLimit,
		UmbrellaSIR:      p.UmbrellaSIR,
		FleetSize:        int(p.FleetSize),
		Litigation:       p.LitigationEnvironment,
		HasValet:         p.HasValet,
		HasBarLiquor:     p.HasBarLiquor,
		HasResortActivities: p.HasResortActivities,
	}

	if in.ConstructionType == "" {
		in.ConstructionType = models.ConstructionMasonryNonCombustible
	}
	if in.LocationType == "" {
		in.LocationType = models.LocationSuburban
	}
	if in.LocationZone == "" {
		in.LocationZone = models.ZoneInland
	}
	if in.WindTier == "" {
		in.WindTier = models.WindInland
	}
	if in.FloodZone == "" {
		in.FloodZone = cfg.DefaultFloodZone
	}
	if in.NamedStormDeductible == "" {
		in.NamedStormDeductible = cfg.DefaultNamedStormDeductible
	}
	if in.UmbrellaLimit == "" {
		in.UmbrellaLimit = cfg.Umbrella.DefaultLimit
	}
	if in.UmbrellaSIR == "" {
		in.UmbrellaSIR = cfg.Umbrella.DefaultSIR
	}
	if in.Litigation == "" {
		in.Litigation = cfg.Umbrella.DefaultLitigation
	}
	if in.FleetSize < 0 {
		in.FleetSize = 0
	}

	in.BuildingAge = s.now().Year() - in.YearBuilt
	if in.BuildingAge < 0 {
		in.BuildingAge = 0
	}

	in.BrandTier = s.brands.ResolveTier(in.Brand)
	in.ServiceType = p.ServiceType
	if !models.ValidServiceType(in.ServiceType) {
		in.ServiceType = s.brands.DefaultServiceType(in.BrandTier)
	}

	return in
}

func normalizeState(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func intOrDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func floatOrDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
