package activity

import (
	"time"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/activity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest represents a manually logged activity
type CreateEntryRequest struct {
	Action     string           `json:"action" binding:"required,min=1,max=100"`
	EntityType string           `json:"entity_type" binding:"max=100"`
	EntityID   *uuid.UUID       `json:"entity_id"`
	Details    map[string]any   `json:"details"`
	Amount     *decimal.Decimal `json:"amount"`
}

// EntryQuery holds the activity filters. The camelCase names are accepted as
// aliases of the snake_case ones.
type EntryQuery struct {
	common.ListQuery
	Action          string `form:"action"`
	EntityType      string `form:"entity_type"`
	EntityTypeCamel string `form:"entityType"`
	From            string `form:"from"`
	StartDate       string `form:"startDate"`
	To              string `form:"to"`
	EndDate         string `form:"endDate"`
}

// EntryResponse represents an activity log entry
type EntryResponse struct {
	ID         uuid.UUID        `json:"id"`
	Action     string           `json:"action"`
	EntityType string           `json:"entity_type"`
	EntityID   *uuid.UUID       `json:"entity_id"`
	Details    map[string]any   `json:"details"`
	Amount     *decimal.Decimal `json:"amount"`
	CreatedAt  time.Time        `json:"created_at"`
}

// ToEntryResponse converts an entry
func ToEntryResponse(e *activity.Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Details:    e.Details,
		Amount:     e.Amount,
		CreatedAt:  e.CreatedAt,
	}
}

// ClearResult reports how many entries a clear removed
type ClearResult struct {
	Deleted int64 `json:"deleted"`
}
