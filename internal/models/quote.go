package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// STORED QUOTE
// ============================================================================

// Quote is one persisted rating calculation. Property and rating are stored
// as the exact JSON documents that went in and came out, so a stored quote
// replays byte-identically regardless of later configuration changes.
type Quote struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	PropertyName    *string         `json:"property_name,omitempty" db:"property_name"`
	State           *string         `json:"state,omitempty" db:"state"`
	Profile         string          `json:"profile" db:"profile"`
	ConfigVersion   string          `json:"config_version" db:"config_version"`
	Property        json.RawMessage `json:"property" db:"property"`
	Rating          json.RawMessage `json:"rating" db:"rating"`
	TotalPremium    int64           `json:"total_premium" db:"total_premium"`
	PremiumPerRoom  int64           `json:"premium_per_room" db:"premium_per_room"`
	RiskGrade       string          `json:"risk_grade" db:"risk_grade"`
	WarningCount    int             `json:"warning_count" db:"warning_count"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	CreatedBy       *string         `json:"created_by,omitempty" db:"created_by"`
}
