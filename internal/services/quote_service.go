package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	miniodb "github.com/cschleeper/hotel-rating-tool/internal/database/minio"
	"github.com/cschleeper/hotel-rating-tool/internal/event"
	"github.com/cschleeper/hotel-rating-tool/internal/models"
	"github.com/cschleeper/hotel-rating-tool/internal/repository"
)

// ErrExportUnavailable means no object storage is configured, so quote
// export documents cannot be written.
var ErrExportUnavailable = errors.New("quote export storage unavailable")

// exportURLTTL bounds how long an export download link stays valid.
const exportURLTTL = 15 * time.Minute

// QuoteService persists rating calculations and announces them on the event
// bus. The stored documents are the exact request and response JSON, so a
// saved quote replays byte-identically after any configuration change.
type QuoteService struct {
	repo      *repository.QuoteRepository
	publisher *event.QuotePublisher
	store     *miniodb.MinioClient
	logger    *slog.Logger
}

func NewQuoteService(repo *repository.QuoteRepository, publisher *event.QuotePublisher, store *miniodb.MinioClient, logger *slog.Logger) *QuoteService {
	return &QuoteService{
		repo:      repo,
		publisher: publisher,
		store:     store,
		logger:    logger,
	}
}

// Save stores one quote and publishes a quote.created event. Publishing is
// best-effort: a bus failure is logged, the stored quote stands.
func (s *QuoteService) Save(ctx context.Context, property *models.Property, rating *models.RatingResult, profile, configVersion string, createdBy *string) (*models.Quote, error) {
	propertyJSON, err := json.Marshal(property)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal property: %w", err)
	}
	ratingJSON, err := json.Marshal(rating)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rating: %w", err)
	}

	quote := &models.Quote{
		ID:             uuid.New(),
		Profile:        profile,
		ConfigVersion:  configVersion,
		Property:       propertyJSON,
		Rating:         ratingJSON,
		TotalPremium:   rating.TotalEstimatedPremium,
		PremiumPerRoom: rating.PremiumPerRoom,
		RiskGrade:      rating.RiskGrade,
		WarningCount:   len(rating.Warnings),
		CreatedAt:      time.Now(),
		CreatedBy:      createdBy,
	}
	if property.PropertyName != "" {
		name := property.PropertyName
		quote.PropertyName = &name
	}
	quote.State = quoteState(property.State)

	if err := s.repo.Create(ctx, quote); err != nil {
		return nil, err
	}

	s.logger.Info("quote saved",
		"quote_id", quote.ID,
		"total_premium", quote.TotalPremium,
		"risk_grade", quote.RiskGrade)

	if s.publisher != nil {
		evt := event.QuoteCreatedEvent{
			EventType:     "quote.created",
			QuoteID:       quote.ID.String(),
			TotalPremium:  quote.TotalPremium,
			RiskGrade:     quote.RiskGrade,
			ConfigVersion: quote.ConfigVersion,
			CreatedAt:     quote.CreatedAt.Format(time.RFC3339),
		}
		if quote.PropertyName != nil {
			evt.PropertyName = *quote.PropertyName
		}
		if quote.State != nil {
			evt.State = *quote.State
		}
		if err := s.publisher.PublishQuoteCreated(ctx, evt); err != nil {
			s.logger.Warn("failed to publish quote event", "quote_id", quote.ID, "error", err)
		}
	}

	return quote, nil
}

func (s *QuoteService) GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *QuoteService) List(ctx context.Context, state string, limit, offset int) ([]models.Quote, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if state != "" {
		return s.repo.ListByState(ctx, normalizeState(state), limit, offset)
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *QuoteService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Export writes the full quote document to the export bucket and returns a
// presigned download URL. Each export overwrites the previous object for the
// same quote, so the link always serves the stored record.
func (s *QuoteService) Export(ctx context.Context, id uuid.UUID) (string, error) {
	if s.store == nil {
		return "", ErrExportUnavailable
	}

	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	doc, err := json.Marshal(quote)
	if err != nil {
		return "", fmt.Errorf("failed to marshal quote for export: %w", err)
	}

	objectName := quote.ID.String() + ".json"
	if err := s.store.UploadBytes(ctx, miniodb.Storage.QuoteExports, objectName, doc, "application/json"); err != nil {
		return "", err
	}

	url, err := s.store.GetPresignedURL(ctx, miniodb.Storage.QuoteExports, objectName, exportURLTTL)
	if err != nil {
		return "", err
	}

	s.logger.Info("quote exported", "quote_id", quote.ID, "object", objectName)
	return url, nil
}

// quoteState reduces a free-form state value to the two-letter code the
// quotes table stores. Anything else is dropped rather than persisted,
// since the column is CHAR(2) and a spelled-out name would fail the insert.
func quoteState(raw string) *string {
	st := normalizeState(raw)
	if len(st) != 2 {
		return nil
	}
	return &st
}
