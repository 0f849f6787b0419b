package models

type ConstructionType string

const (
	ConstructionFrame                 ConstructionType = "Frame"
	ConstructionJoistedMasonry        ConstructionType = "Joisted Masonry"
	ConstructionNonCombustible        ConstructionType = "Non-Combustible"
	ConstructionMasonryNonCombustible ConstructionType = "Masonry Non-Combustible"
	ConstructionModifiedFireResistive ConstructionType = "Modified Fire Resistive"
	ConstructionFireResistive         ConstructionType = "Fire Resistive"
)

type ServiceType string

const (
	ServiceFullService    ServiceType = "full-service"
	ServiceSelectService  ServiceType = "select-service"
	ServiceLimitedService ServiceType = "limited-service"
	ServiceExtendedStay   ServiceType = "extended-stay"
)

type LocationType string

const (
	LocationUrban         LocationType = "urban"
	LocationSuburban      LocationType = "suburban"
	LocationRural         LocationType = "rural"
	LocationResortCoastal LocationType = "resort-coastal"
)

type LocationZone string

const (
	ZoneInland  LocationZone = "inland"
	ZoneCoastal LocationZone = "coastal"
	ZoneTWIA    LocationZone = "twia"
)

type WindTier string

const (
	WindInland WindTier = "Inland"
	WindTier1  WindTier = "Tier 1"
	WindTier2  WindTier = "Tier 2"
	WindTier3  WindTier = "Tier 3"
	WindTier4  WindTier = "Tier 4"
	WindTier5  WindTier = "Tier 5"
)

type FloodZone string

const (
	FloodZoneX       FloodZone = "X"
	FloodZoneXShaded FloodZone = "X-shaded"
	FloodZoneAE      FloodZone = "AE"
	FloodZoneA       FloodZone = "A"
	FloodZoneAH      FloodZone = "AH"
	FloodZoneAO      FloodZone = "AO"
	FloodZoneVE      FloodZone = "VE"
	FloodZoneV       FloodZone = "V"
)

type LitigationEnvironment string

const (
	LitigationLow      LitigationEnvironment = "low"
	LitigationModerate LitigationEnvironment = "moderate"
	LitigationHigh     LitigationEnvironment = "high"
	LitigationVeryHigh LitigationEnvironment = "very-high"
)

type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// ValidServiceType reports whether s is one of the recognized service types.
// Unrecognized values are left as-is so every downstream table lookup takes
// its documented default-fallback branch.
func ValidServiceType(s ServiceType) bool {
	switch s {
	case ServiceFullService, ServiceSelectService, ServiceLimitedService, ServiceExtendedStay:
		return true
	}
	return false
}
