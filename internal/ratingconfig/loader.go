package ratingconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaDocument string

// catchAllFloor is the smallest threshold accepted for a bracket list's final
// open-ended tier. The calibration files use 999/999999 style sentinels.
const catchAllFloor = 999

// Load reads, schema-validates, and structurally validates a configuration
// document. Any failure here is a fatal startup defect, never a per-request
// error: the engine assumes a well-formed, immutable table set.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rating config %s: %w", path, err)
	}
	cfg, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid rating config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates and decodes a configuration document from raw JSON.
func Parse(raw []byte) (*Config, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("rating_config_schema.json", strings.NewReader(schemaDocument)); err != nil {
		return nil, fmt.Errorf("failed to register config schema: %w", err)
	}
	schema, err := compiler.Compile("rating_config_schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile config schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("config is not valid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("config schema validation failed: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate enforces the invariants the schema cannot express: one coherent
// profile, ascending bracket thresholds, and a catch-all final bracket on
// every step-function table.
func (c *Config) validate() error {
	switch c.Profile {
	case ProfilePerRoom:
		if c.PerRoom == nil || c.LossCost != nil {
			return fmt.Errorf("profile %q must carry exactly the per_room section", c.Profile)
		}
		return c.PerRoom.validate()
	case ProfileLossCost:
		if c.LossCost == nil || c.PerRoom != nil {
			return fmt.Errorf("profile %q must carry exactly the loss_cost section", c.Profile)
		}
		return c.LossCost.validate()
	default:
		return fmt.Errorf("unknown configuration profile %q", c.Profile)
	}
}

func (p *PerRoomProfile) validate() error {
	for name, brackets := range map[string][]Bracket{
		"building_age_modifiers":  p.BuildingAgeModifiers,
		"roof_age_modifiers":      p.RoofAgeModifiers,
		"stories_modifiers":       p.StoriesModifiers,
		"umbrella.fleet_modifiers": p.Umbrella.FleetModifiers,
	} {
		if err := validateBrackets(name, brackets); err != nil {
			return err
		}
	}
	if err := validateRiskGrades(p.RiskGrades); err != nil {
		return err
	}
	if len(p.PropertyBaseRates) == 0 {
		return fmt.Errorf("property_base_rates must not be empty")
	}
	for limit, tier := range p.Umbrella.LimitTiers {
		if !tier.Incremental {
			continue
		}
		if _, ok := p.Umbrella.LimitTiers[tier.BaseLimit]; !ok {
			return fmt.Errorf("umbrella tier %q references unknown base limit %q", limit, tier.BaseLimit)
		}
	}
	if p.Umbrella.DefaultLimit != "" {
		if _, ok := p.Umbrella.LimitTiers[p.Umbrella.DefaultLimit]; !ok {
			return fmt.Errorf("umbrella default limit %q is not a configured tier", p.Umbrella.DefaultLimit)
		}
	}
	return nil
}

func (l *LossCostProfile) validate() error {
	for name, brackets := range map[string][]Bracket{
		"building_age_modifiers": l.BuildingAgeModifiers,
		"roof_age_modifiers":     l.RoofAgeModifiers,
		"stories_modifiers":      l.StoriesModifiers,
		"tiv.age_adjustments":    l.TIV.AgeAdjustments,
	} {
		if err := validateBrackets(name, brackets); err != nil {
			return err
		}
	}
	if err := validateRiskGrades(l.RiskGrades); err != nil {
		return err
	}
	if len(l.BaseRatesPer100.Sprinklered) == 0 || len(l.BaseRatesPer100.NonSprinklered) == 0 {
		return fmt.Errorf("base_rates_per_100 tables must not be empty")
	}
	if l.LossCostMultiplier <= 0 {
		return fmt.Errorf("loss_cost_multiplier must be positive, got %v", l.LossCostMultiplier)
	}
	return nil
}

func validateBrackets(name string, brackets []Bracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("%s: bracket list must not be empty", name)
	}
	for i := 1; i < len(brackets); i++ {
		if brackets[i].Max <= brackets[i-1].Max {
			return fmt.Errorf("%s: bracket thresholds must be strictly ascending (index %d: %v <= %v)",
				name, i, brackets[i].Max, brackets[i-1].Max)
		}
	}
	if last := brackets[len(brackets)-1].Max; last < catchAllFloor {
		return fmt.Errorf("%s: final bracket threshold %v is not an open-ended catch-all", name, last)
	}
	return nil
}

func validateRiskGrades(grades []RiskGradeBracket) error {
	if len(grades) == 0 {
		return fmt.Errorf("risk_grades must not be empty")
	}
	for i := 1; i < len(grades); i++ {
		if grades[i].MaxPerRoom <= grades[i-1].MaxPerRoom {
			return fmt.Errorf("risk_grades thresholds must be strictly ascending (index %d)", i)
		}
	}
	return nil
}
