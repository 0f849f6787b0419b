package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexInt unmarshals from a JSON number, a numeric string, or anything else
// (which becomes zero). Lookup responses and hand-edited payloads routinely
// carry "8" where 8 is meant; the rating engine must degrade to defaults
// rather than reject the request.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*f = FlexInt(v)
			return nil
		}
	}
	*f = 0
	return nil
}

// FlexFloat is FlexInt's fractional counterpart.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*f = FlexFloat(v)
			return nil
		}
	}
	*f = 0
	return nil
}

// Amenities is the on-premise amenity checklist used by both the property
// and liability calculations.
type Amenities struct {
	Pool          bool `json:"pool"`
	Restaurant    bool `json:"restaurant"`
	FitnessCenter bool `json:"fitness_center"`
	Spa           bool `json:"spa"`
	BusinessCenter bool `json:"business_center"`
	MeetingSpace  bool `json:"meeting_space"`
}

// PhotoAnalysis carries the vision pass results attached to a lookup response.
type PhotoAnalysis struct {
	RoofType           *string `json:"roof_type"`
	ExteriorMaterial   *string `json:"exterior_material"`
	EstimatedCondition *string `json:"estimated_condition"`
	PhotoNotes         *string `json:"photo_notes"`
	ImagesAnalyzed     int     `json:"images_analyzed"`
}

// Property is the rating engine input. Every field is optional; the engine
// fills documented defaults for anything missing, zero, or non-numeric.
type Property struct {
	PropertyName string `json:"property_name,omitempty"`
	FullAddress  string `json:"full_address,omitempty"`
	Brand        string `json:"brand,omitempty"`

	RoomCount        FlexInt          `json:"room_count"`
	Stories          FlexInt          `json:"stories"`
	YearBuilt        FlexInt          `json:"year_built"`
	ConstructionType ConstructionType `json:"construction_type"`
	SquareFootage    FlexFloat        `json:"square_footage"`
	LotSize          *FlexFloat       `json:"lot_size,omitempty"`
	Sprinklered      *bool            `json:"sprinklered"`
	State            string           `json:"state"`
	ServiceType      ServiceType      `json:"service_type,omitempty"`
	RoofAge          FlexInt          `json:"roof_age"`
	ProtectionClass  FlexInt          `json:"protection_class"`
	LocationType     LocationType     `json:"location_type,omitempty"`
	LocationZone     LocationZone     `json:"location_zone,omitempty"`
	WindTier         WindTier         `json:"wind_tier,omitempty"`
	FloodZone        FloodZone        `json:"flood_zone,omitempty"`
	NamedStormDeductible string       `json:"named_storm_deductible,omitempty"`
	CoinsurancePercent   FlexInt      `json:"coinsurance_percent,omitempty"`

	Amenities Amenities `json:"amenities"`

	// Umbrella / excess inputs
	UmbrellaLimit         string                `json:"umbrella_limit,omitempty"`
	UmbrellaSIR           string                `json:"umbrella_sir,omitempty"`
	FleetSize             FlexInt               `json:"fleet_size,omitempty"`
	LitigationEnvironment LitigationEnvironment `json:"litigation_environment,omitempty"`
	HasValet              bool                  `json:"has_valet,omitempty"`
	HasBarLiquor          bool                  `json:"has_bar_liquor,omitempty"`
	HasResortActivities   bool                  `json:"has_resort_activities,omitempty"`

	// Lookup metadata (pass-through, not rated)
	DataSources     []string        `json:"data_sources,omitempty"`
	ConfidenceLevel ConfidenceLevel `json:"confidence_level,omitempty"`
	PhotoAnalysis   *PhotoAnalysis  `json:"photo_analysis,omitempty"`
}

// IsSprinklered resolves the tri-state sprinkler flag; absent means true.
func (p *Property) IsSprinklered() bool {
	if p.Sprinklered == nil {
		return true
	}
	return *p.Sprinklered
}
