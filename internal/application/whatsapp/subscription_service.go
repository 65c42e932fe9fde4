// Package whatsapp provides the application service for WhatsApp subscriptions.
package whatsapp

import (
	"context"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/domain/whatsapp"
	"github.com/fintrack/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubscriptionService handles subscription operations
type SubscriptionService struct {
	common.EventSupport
	repo whatsapp.SubscriptionRepository
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(repo whatsapp.SubscriptionRepository) *SubscriptionService {
	return &SubscriptionService{repo: repo}
}

// Create creates a subscription. New subscriptions are active unless stated otherwise.
func (s *SubscriptionService) Create(ctx context.Context, userID uuid.UUID, req CreateSubscriptionRequest) (*SubscriptionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "whatsapp", "create")
	defer span.End()

	details := whatsapp.SubscriptionDetails{
		PhoneNumber: req.PhoneNumber,
		Plan:        req.Plan,
		Amount:      decimal.Zero,
		StartDate:   req.StartDate.TimePtr(),
		EndDate:     req.EndDate.TimePtr(),
		IsActive:    true,
		Notes:       req.Notes,
	}
	if req.Amount != nil {
		details.Amount = *req.Amount
	}
	if req.IsActive != nil {
		details.IsActive = *req.IsActive
	}

	sub, err := whatsapp.NewSubscription(userID, details)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, sub); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.PublishEvents(ctx, sub)

	resp := ToSubscriptionResponse(sub)
	return &resp, nil
}

// GetByID retrieves one subscription
func (s *SubscriptionService) GetByID(ctx context.Context, userID, id uuid.UUID) (*SubscriptionResponse, error) {
	sub, err := shared.FindOwned[whatsapp.Subscription](ctx, s.repo, id, userID)
	if err != nil {
		return nil, err
	}
	resp := ToSubscriptionResponse(sub)
	return &resp, nil
}

// List retrieves a page of the user's subscriptions
func (s *SubscriptionService) List(ctx context.Context, userID uuid.UUID, q SubscriptionListQuery) ([]SubscriptionResponse, int64, error) {
	subs, total, err := s.repo.FindAllForUser(ctx, userID, whatsapp.SubscriptionFilter{
		Filter:   q.Filter("created_at", "desc"),
		IsActive: q.IsActive,
	})
	if err != nil {
		return nil, 0, err
	}
	items := make([]SubscriptionResponse, len(subs))
	for i := range subs {
		items[i] = ToSubscriptionResponse(&subs[i])
	}
	return items, total, nil
}

// Update applies the present fields of req to a subscription
func (s *SubscriptionService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateSubscriptionRequest) (*SubscriptionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "whatsapp", "update")
	defer span.End()

	sub, err := shared.FindOwned[whatsapp.Subscription](ctx, s.repo, id, userID)
	if err != nil {
		return nil, err
	}

	details := sub.SubscriptionDetails
	if req.PhoneNumber != nil {
		details.PhoneNumber = *req.PhoneNumber
	}
	if req.Plan != nil {
		details.Plan = *req.Plan
	}
	if req.Amount != nil {
		details.Amount = *req.Amount
	}
	if req.StartDate != nil {
		details.StartDate = req.StartDate.TimePtr()
	}
	if req.EndDate != nil {
		details.EndDate = req.EndDate.TimePtr()
	}
	if req.IsActive != nil {
		details.IsActive = *req.IsActive
	}
	if req.Notes != nil {
		details.Notes = *req.Notes
	}

	if err := sub.Update(details); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, sub); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.PublishEvents(ctx, sub)

	resp := ToSubscriptionResponse(sub)
	return &resp, nil
}

// Delete removes a subscription
func (s *SubscriptionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	sub, err := shared.FindOwned[whatsapp.Subscription](ctx, s.repo, id, userID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	sub.MarkDeleted()
	s.PublishEvents(ctx, sub)
	return nil
}
