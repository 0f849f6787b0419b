package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/cschleeper/hotel-rating-tool/internal/ai/gemini"
	miniodb "github.com/cschleeper/hotel-rating-tool/internal/database/minio"
	redisdb "github.com/cschleeper/hotel-rating-tool/internal/database/redis"
	"github.com/cschleeper/hotel-rating-tool/internal/models"
)

// LookupService resolves a free-text hotel query into a partially-populated
// property record: a web-search pass for listing and tax-record data, then an
// optional vision pass over fetched exterior photos. Cache and photo archive
// are best-effort; only the AI calls can fail the lookup.
type LookupService struct {
	selector *gemini.GeminiClientSelector
	photos   *PhotoFetcher
	brands   *BrandService
	cache    *redisdb.Client
	store    *miniodb.MinioClient
	logger   *slog.Logger
}

func NewLookupService(selector *gemini.GeminiClientSelector, photos *PhotoFetcher, brands *BrandService, cache *redisdb.Client, store *miniodb.MinioClient, logger *slog.Logger) *LookupService {
	return &LookupService{
		selector: selector,
		photos:   photos,
		brands:   brands,
		cache:    cache,
		store:    store,
		logger:   logger,
	}
}

// Lookup runs the full pipeline for one query.
func (s *LookupService) Lookup(ctx context.Context, query string) (*models.Property, error) {
	query = strings.TrimSpace(query)

	if s.cache != nil {
		if cached := s.cache.GetCachedLookup(ctx, query); cached != "" {
			var property models.Property
			if err := json.Unmarshal([]byte(cached), &property); err == nil {
				s.logger.Info("lookup cache hit", "query", query)
				return &property, nil
			}
		}
	}

	s.logger.Info("lookup step 1: web search", "query", query)
	prompt := fmt.Sprintf(gemini.PropertyLookupPromptTemplate, query)
	searchResult, err := gemini.SendAIWithWebSearchAndRetry(ctx, prompt, s.selector)
	if err != nil {
		return nil, fmt.Errorf("property search failed: %w", err)
	}

	imageURLs := extractImageURLs(searchResult)
	delete(searchResult, "image_urls")

	property, err := decodeProperty(searchResult)
	if err != nil {
		return nil, err
	}

	s.logger.Info("lookup step 1 complete", "image_urls", len(imageURLs))

	if len(imageURLs) > 0 {
		s.analyzePhotos(ctx, property, imageURLs)
	}

	s.applyBrandDefaults(property)

	if s.cache != nil {
		if payload, err := json.Marshal(property); err == nil {
			if err := s.cache.SetCachedLookup(ctx, query, string(payload)); err != nil {
				s.logger.Warn("lookup cache write failed", "error", err)
			}
		}
	}

	return property, nil
}

// analyzePhotos fetches candidate photos and runs the vision pass, merging
// results into the property. Vision failures degrade to the text-search data.
func (s *LookupService) analyzePhotos(ctx context.Context, property *models.Property, urls []string) {
	images := s.photos.FetchAll(ctx, urls)
	if len(images) == 0 {
		return
	}

	if s.store != nil {
		s.store.ArchiveLookupPhotos(ctx, uuid.NewString(), images)
	}

	prompt := fmt.Sprintf(gemini.VisionAnalysisPromptTemplate,
		property.PropertyName, property.FullAddress,
		int(property.Stories), property.ConstructionType)

	s.logger.Info("lookup step 2: vision analysis", "images", len(images))
	visionResult, err := gemini.SendAIWithImagesAndRetry(ctx, prompt, images, s.selector)
	if err != nil {
		s.logger.Warn("vision analysis failed, keeping text-search data", "error", err)
		return
	}

	// Vision overrides the text search for what it can actually see.
	if stories := asInt(visionResult["stories"]); stories > 0 {
		property.Stories = models.FlexInt(stories)
	}
	if ct := asString(visionResult["construction_type"]); ct != "" {
		property.ConstructionType = models.ConstructionType(ct)
	}

	property.PhotoAnalysis = &models.PhotoAnalysis{
		RoofType:           asStringPtr(visionResult["roof_type"]),
		ExteriorMaterial:   asStringPtr(visionResult["exterior_material"]),
		EstimatedCondition: asStringPtr(visionResult["estimated_condition"]),
		PhotoNotes:         asStringPtr(visionResult["photo_notes"]),
		ImagesAnalyzed:     len(images),
	}

	if visible, ok := visionResult["visible_amenities"].(map[string]any); ok {
		if pool, _ := visible["pool"].(bool); pool {
			property.Amenities.Pool = true
		}
	}
}

// applyBrandDefaults fills fields the search left blank from the brand
// catalog defaults.
func (s *LookupService) applyBrandDefaults(property *models.Property) {
	defaults := s.brands.ResolveDefaults(property.Brand)
	if defaults == nil {
		return
	}
	if property.ServiceType == "" {
		property.ServiceType = defaults.ServiceType
	}
	if property.ConstructionType == "" {
		property.ConstructionType = defaults.Construction
	}
	if property.Stories == 0 && defaults.Stories > 0 {
		property.Stories = models.FlexInt(defaults.Stories)
	}
	if property.RoomCount == 0 && defaults.Rooms > 0 {
		property.RoomCount = models.FlexInt(defaults.Rooms)
	}
}

// decodeProperty round-trips the model's reply through JSON so the tolerant
// numeric types absorb strings-where-numbers and similar malformations.
func decodeProperty(result map[string]any) (*models.Property, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gemini.ErrResponseExtract, err)
	}
	var property models.Property
	if err := json.Unmarshal(raw, &property); err != nil {
		return nil, fmt.Errorf("%w: %v", gemini.ErrResponseExtract, err)
	}
	return &property, nil
}

func extractImageURLs(result map[string]any) []string {
	rawURLs, ok := result["image_urls"].([]any)
	if !ok {
		return nil
	}
	var urls []string
	for _, raw := range rawURLs {
		if url, ok := raw.(string); ok && url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}

func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStringPtr(v any) *string {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}
