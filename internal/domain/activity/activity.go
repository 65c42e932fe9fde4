// Package activity is the append-only audit trail of user actions.
package activity

import (
	"context"
	"strings"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is one activity log record. Entries are never updated.
type Entry struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Action     string
	EntityType string
	EntityID   *uuid.UUID
	Details    map[string]any
	Amount     *decimal.Decimal
	CreatedAt  time.Time
}

// GetUserID returns the owner
func (e *Entry) GetUserID() uuid.UUID {
	return e.UserID
}

// NewEntry builds an entry
func NewEntry(userID uuid.UUID, action, entityType string, entityID *uuid.UUID, details map[string]any, amount *decimal.Decimal) (*Entry, error) {
	action = strings.TrimSpace(action)
	if action == "" {
		return nil, shared.NewDomainError("INVALID_ACTION", "Action cannot be empty")
	}
	if len(action) > 100 || len(entityType) > 100 {
		return nil, shared.NewDomainError("INVALID_ACTION", "Action and entity type cannot exceed 100 characters")
	}
	if details == nil {
		details = map[string]any{}
	}
	return &Entry{
		ID:         uuid.New(),
		UserID:     userID,
		Action:     action,
		EntityType: strings.TrimSpace(entityType),
		EntityID:   entityID,
		Details:    details,
		Amount:     amount,
		CreatedAt:  time.Now(),
	}, nil
}

// FromEvent converts an audited domain event into an entry
func FromEvent(event shared.AuditableEvent) (*Entry, error) {
	id := event.AggregateID()
	entry, err := NewEntry(event.UserID(), event.Action(), event.AggregateType(), &id, event.Details(), event.Amount())
	if err != nil {
		return nil, err
	}
	entry.CreatedAt = event.OccurredAt()
	return entry, nil
}

// Filter narrows listings and bulk deletes. Dates apply to CreatedAt.
type Filter struct {
	shared.Filter
	Action     string
	EntityType string
	From       *time.Time
	To         *time.Time
}

// Repository persists entries
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter Filter) ([]Entry, int64, error)
	FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]Entry, error)
	Create(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteMatching removes the user's entries matching filter and returns the count
	DeleteMatching(ctx context.Context, userID uuid.UUID, filter Filter) (int64, error)
}
