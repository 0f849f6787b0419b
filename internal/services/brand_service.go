package services

import (
	"strings"

	"github.com/cschleeper/hotel-rating-tool/internal/models"
	"github.com/cschleeper/hotel-rating-tool/internal/ratingconfig"
)

// BrandService resolves free-text hotel brands against the configured
// catalog. It is an injected read-only table, not package state, so tests
// can substitute catalogs freely.
type BrandService struct {
	tiers            []ratingconfig.BrandTierEntry
	defaults         []ratingconfig.BrandDefaultsEntry
	fullServiceTiers map[string]bool
}

func NewBrandService(cfg *ratingconfig.PerRoomProfile) *BrandService {
	// The brand catalog lives in the per-room profile; a loss-cost
	// deployment gets an empty catalog and every brand resolves unmatched.
	if cfg == nil {
		return &BrandService{fullServiceTiers: map[string]bool{}}
	}
	fullService := make(map[string]bool, len(cfg.FullServiceTiers))
	for _, t := range cfg.FullServiceTiers {
		fullService[t] = true
	}
	return &BrandService{
		tiers:            cfg.BrandTiers,
		defaults:         cfg.BrandDefaults,
		fullServiceTiers: fullService,
	}
}

// brandMatches is case-insensitive substring containment in both directions:
// the input may contain the catalog key ("Courtyard by Marriott Downtown"
// matches "Courtyard") or the catalog key may contain the input ("Ritz"
// matches "Ritz-Carlton").
func brandMatches(input, catalog string) bool {
	in := strings.ToLower(strings.TrimSpace(input))
	cat := strings.ToLower(catalog)
	if in == "" {
		return false
	}
	return strings.Contains(in, cat) || strings.Contains(cat, in)
}

// ResolveTier returns the market-segment tier for a brand, or "" when the
// brand is not in the catalog. Catalog declaration order is the tie-break:
// the first matching entry wins.
func (s *BrandService) ResolveTier(brand string) string {
	for _, entry := range s.tiers {
		for _, name := range entry.Brands {
			if brandMatches(brand, name) {
				return entry.Tier
			}
		}
	}
	return ""
}

// ResolveDefaults returns the auto-population defaults for a catalog brand,
// or nil when unmatched.
func (s *BrandService) ResolveDefaults(brand string) *ratingconfig.BrandDefaults {
	for _, entry := range s.defaults {
		if brandMatches(brand, entry.Brand) {
			d := entry.Defaults
			return &d
		}
	}
	return nil
}

// DefaultServiceType derives the service type from a brand tier: the
// configured full-service tiers map to full-service, every other recognized
// tier defaults to select-service. An unrecognized tier resolves to "" so
// downstream lookups fall through to their own defaults.
func (s *BrandService) DefaultServiceType(tier string) models.ServiceType {
	if tier == "" {
		return ""
	}
	if s.fullServiceTiers[tier] {
		return models.ServiceFullService
	}
	return models.ServiceSelectService
}
