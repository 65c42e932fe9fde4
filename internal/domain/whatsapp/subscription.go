// Package whatsapp tracks paid WhatsApp business subscriptions.
package whatsapp

import (
	"context"
	"strings"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateTypeSubscription is the aggregate type name used in events and the activity log
const AggregateTypeSubscription = "whatsapp_subscription"

// SubscriptionDetails holds the user-editable fields of a subscription
type SubscriptionDetails struct {
	PhoneNumber string
	Plan        string
	Amount      decimal.Decimal
	StartDate   *time.Time
	EndDate     *time.Time
	IsActive    bool
	Notes       string
}

// Subscription is a recurring WhatsApp plan
type Subscription struct {
	shared.OwnedAggregateRoot
	SubscriptionDetails
}

// NewSubscription creates a subscription
func NewSubscription(userID uuid.UUID, details SubscriptionDetails) (*Subscription, error) {
	details, err := normalize(details)
	if err != nil {
		return nil, err
	}
	s := &Subscription{OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID), SubscriptionDetails: details}
	s.AddDomainEvent(s.event("created"))
	return s, nil
}

// Update replaces the editable fields
func (s *Subscription) Update(details SubscriptionDetails) error {
	details, err := normalize(details)
	if err != nil {
		return err
	}
	s.SubscriptionDetails = details
	s.Touch()
	s.AddDomainEvent(s.event("updated"))
	return nil
}

// MarkDeleted records the deletion event
func (s *Subscription) MarkDeleted() {
	s.AddDomainEvent(s.event("deleted"))
}

func (s *Subscription) event(action string) shared.DomainEvent {
	return shared.NewLifecycleEvent(AggregateTypeSubscription, action, s.ID, s.UserID, shared.AmountRef(s.Amount), map[string]any{
		"phone_number": s.PhoneNumber,
		"plan":         s.Plan,
	})
}

func normalize(d SubscriptionDetails) (SubscriptionDetails, error) {
	d.PhoneNumber = strings.TrimSpace(d.PhoneNumber)
	d.Plan = strings.TrimSpace(d.Plan)
	if d.PhoneNumber == "" {
		return d, shared.NewDomainError("INVALID_PHONE", "Phone number cannot be empty")
	}
	if len(d.PhoneNumber) > 32 {
		return d, shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 32 characters")
	}
	if d.Amount.IsNegative() {
		return d, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if d.StartDate != nil {
		t := shared.DateOf(*d.StartDate)
		d.StartDate = &t
	}
	if d.EndDate != nil {
		t := shared.DateOf(*d.EndDate)
		d.EndDate = &t
	}
	if d.StartDate != nil && d.EndDate != nil && d.EndDate.Before(*d.StartDate) {
		return d, shared.NewDomainError("INVALID_DATE", "End date cannot precede the start date")
	}
	return d, nil
}

// SubscriptionFilter narrows subscription listings
type SubscriptionFilter struct {
	shared.Filter
	IsActive *bool
}

// SubscriptionRepository persists subscriptions
type SubscriptionRepository interface {
	shared.OwnedRepository[Subscription, SubscriptionFilter]
	CountActive(ctx context.Context, userID uuid.UUID) (int64, error)
}
