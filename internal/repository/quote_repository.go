package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cschleeper/hotel-rating-tool/internal/models"
)

// ErrDatabaseUnavailable means no live database connection exists yet.
// Handlers translate it into a 503 rather than treating it as a query error.
var ErrDatabaseUnavailable = errors.New("quote database unavailable")

// QuoteRepository resolves its connection per call. The database may come up
// after the service does, so holding a handle captured at construction time
// would pin a nil connection forever.
type QuoteRepository struct {
	db func() *sqlx.DB
}

func NewQuoteRepository(db func() *sqlx.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) conn() (*sqlx.DB, error) {
	if r.db == nil {
		return nil, ErrDatabaseUnavailable
	}
	db := r.db()
	if db == nil {
		return nil, ErrDatabaseUnavailable
	}
	return db, nil
}

func (r *QuoteRepository) Create(ctx context.Context, quote *models.Quote) error {
	db, err := r.conn()
	if err != nil {
		return err
	}

	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	if quote.CreatedAt.IsZero() {
		quote.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO quotes (
			id, property_name, state, profile, config_version,
			property, rating, total_premium, premium_per_room,
			risk_grade, warning_count, created_at, created_by
		) VALUES (
			:id, :property_name, :state, :profile, :config_version,
			:property, :rating, :total_premium, :premium_per_room,
			:risk_grade, :warning_count, :created_at, :created_by
		)`

	if _, err := db.NamedExecContext(ctx, query, quote); err != nil {
		return fmt.Errorf("failed to create quote: %w", err)
	}

	return nil
}

func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}

	var quote models.Quote
	query := `
		SELECT id, property_name, state, profile, config_version,
			property, rating, total_premium, premium_per_room,
			risk_grade, warning_count, created_at, created_by
		FROM quotes
		WHERE id = $1`

	if err := db.GetContext(ctx, &quote, query, id); err != nil {
		return nil, fmt.Errorf("failed to get quote by id: %w", err)
	}

	return &quote, nil
}

func (r *QuoteRepository) List(ctx context.Context, limit, offset int) ([]models.Quote, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}

	var quotes []models.Quote
	query := `
		SELECT id, property_name, state, profile, config_version,
			property, rating, total_premium, premium_per_room,
			risk_grade, warning_count, created_at, created_by
		FROM quotes
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	if err := db.SelectContext(ctx, &quotes, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	return quotes, nil
}

func (r *QuoteRepository) ListByState(ctx context.Context, state string, limit, offset int) ([]models.Quote, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}

	var quotes []models.Quote
	query := `
		SELECT id, property_name, state, profile, config_version,
			property, rating, total_premium, premium_per_room,
			risk_grade, warning_count, created_at, created_by
		FROM quotes
		WHERE state = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	if err := db.SelectContext(ctx, &quotes, query, state, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list quotes by state: %w", err)
	}

	return quotes, nil
}

func (r *QuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db, err := r.conn()
	if err != nil {
		return err
	}

	result, err := db.ExecContext(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("quote not found: %s", id)
	}

	return nil
}
