package shared

import "github.com/google/uuid"

// AggregateRoot buffers the domain events raised while it was changed.
// The service that saved it publishes and clears them.
type AggregateRoot interface {
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// Owned is implemented by every record that belongs to exactly one user
type Owned interface {
	GetUserID() uuid.UUID
}

type BaseAggregateRoot struct {
	BaseEntity
	events []DomainEvent
}

func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity()}
}

func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// GetDomainEvents returns the pending events in the order they were raised
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.events
}

func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.events = nil
}

// OwnedAggregateRoot is the base of every user-owned record
type OwnedAggregateRoot struct {
	BaseAggregateRoot
	UserID uuid.UUID
}

func NewOwnedAggregateRoot(userID uuid.UUID) OwnedAggregateRoot {
	return OwnedAggregateRoot{BaseAggregateRoot: NewBaseAggregateRoot(), UserID: userID}
}

func (o *OwnedAggregateRoot) GetUserID() uuid.UUID {
	return o.UserID
}

// EnsureOwner is ErrNotFound for a nil record and ErrForbidden for one
// owned by someone other than userID.
func EnsureOwner(record Owned, userID uuid.UUID) error {
	switch {
	case record == nil:
		return ErrNotFound
	case record.GetUserID() != userID:
		return ErrForbidden
	}
	return nil
}
