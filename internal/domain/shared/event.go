package shared

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DomainEvent represents an event that occurred in the domain
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	AggregateType() string
	UserID() uuid.UUID
}

// AuditableEvent is implemented by events that should land in the activity log.
// Action is a short verb ("created", "repaid"), Amount the money moved, if any.
type AuditableEvent interface {
	DomainEvent
	Action() string
	Amount() *decimal.Decimal
	Details() map[string]any
}

// BaseDomainEvent provides common fields for all domain events
type BaseDomainEvent struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggID       uuid.UUID `json:"aggregate_id"`
	AggType     string    `json:"aggregate_type"`
	UserIDValue uuid.UUID `json:"user_id"`
}

// EventID returns the unique event identifier
func (e *BaseDomainEvent) EventID() uuid.UUID {
	return e.ID
}

// EventType returns the type of the event
func (e *BaseDomainEvent) EventType() string {
	return e.Type
}

// OccurredAt returns when the event occurred
func (e *BaseDomainEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID returns the ID of the aggregate that produced this event
func (e *BaseDomainEvent) AggregateID() uuid.UUID {
	return e.AggID
}

// AggregateType returns the type of the aggregate
func (e *BaseDomainEvent) AggregateType() string {
	return e.AggType
}

// UserID returns the owner of the aggregate
func (e *BaseDomainEvent) UserID() uuid.UUID {
	return e.UserIDValue
}

// NewBaseDomainEvent creates a new base domain event
func NewBaseDomainEvent(eventType, aggType string, aggID, userID uuid.UUID) BaseDomainEvent {
	return BaseDomainEvent{
		ID:          uuid.New(),
		Type:        eventType,
		Timestamp:   time.Now(),
		AggID:       aggID,
		AggType:     aggType,
		UserIDValue: userID,
	}
}

// LifecycleEvent is the generic audited event emitted by aggregates on
// create/update/delete and on domain-specific transitions.
type LifecycleEvent struct {
	BaseDomainEvent
	ActionName  string           `json:"action"`
	AmountValue *decimal.Decimal `json:"amount,omitempty"`
	Payload     map[string]any   `json:"details,omitempty"`
}

// Action returns the audited verb
func (e *LifecycleEvent) Action() string {
	return e.ActionName
}

// Amount returns the money involved, or nil
func (e *LifecycleEvent) Amount() *decimal.Decimal {
	return e.AmountValue
}

// Details returns additional audit information
func (e *LifecycleEvent) Details() map[string]any {
	return e.Payload
}

// NewLifecycleEvent builds an audited event. The event type is "<aggType>.<action>".
func NewLifecycleEvent(aggType, action string, aggID, userID uuid.UUID, amount *decimal.Decimal, details map[string]any) *LifecycleEvent {
	return &LifecycleEvent{
		BaseDomainEvent: NewBaseDomainEvent(aggType+"."+action, aggType, aggID, userID),
		ActionName:      action,
		AmountValue:     amount,
		Payload:         details,
	}
}

// AmountRef returns a pointer to a copy of d, for event payloads
func AmountRef(d decimal.Decimal) *decimal.Decimal {
	return &d
}
