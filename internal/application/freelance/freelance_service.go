// Package freelance provides the application services for freelance revenue
// and the payments received against it.
package freelance

import (
	"context"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/freelance"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// FreelanceService handles revenue and payment operations
type FreelanceService struct {
	common.EventSupport
	revenueRepo freelance.RevenueRepository
	paymentRepo freelance.PaymentRepository
}

// NewFreelanceService creates a new FreelanceService
func NewFreelanceService(revenueRepo freelance.RevenueRepository, paymentRepo freelance.PaymentRepository) *FreelanceService {
	return &FreelanceService{
		revenueRepo: revenueRepo,
		paymentRepo: paymentRepo,
	}
}

// CreateRevenue records a revenue
func (s *FreelanceService) CreateRevenue(ctx context.Context, userID uuid.UUID, req CreateRevenueRequest) (*RevenueResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "freelance", "create_revenue")
	defer span.End()

	r, err := freelance.NewRevenue(userID, freelance.RevenueDetails{
		Title:  req.Title,
		Client: req.Client,
		Amount: *req.Amount,
		Date:   req.Date.Time,
		Notes:  req.Notes,
	})
	if err != nil {
		return nil, err
	}
	if err := s.revenueRepo.Save(ctx, r); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.PublishEvents(ctx, r)

	resp := ToRevenueResponse(r, nil)
	return &resp, nil
}

// GetRevenue retrieves a revenue with its balance
func (s *FreelanceService) GetRevenue(ctx context.Context, userID, id uuid.UUID) (*RevenueResponse, error) {
	r, err := shared.FindOwned[freelance.Revenue](ctx, s.revenueRepo, id, userID)
	if err != nil {
		return nil, err
	}
	return s.balanced(ctx, r)
}

// ListRevenues retrieves a page of the user's revenues
func (s *FreelanceService) ListRevenues(ctx context.Context, userID uuid.UUID, q RevenueListQuery) ([]RevenueResponse, int64, error) {
	from, err := common.ParseOptionalDate(q.From)
	if err != nil {
		return nil, 0, err
	}
	to, err := common.ParseOptionalDate(q.To)
	if err != nil {
		return nil, 0, err
	}

	revenues, total, err := s.revenueRepo.FindAllForUser(ctx, userID, freelance.RevenueFilter{
		Filter: q.Filter("date", "desc"),
		Client: q.Client,
		From:   from,
		To:     to,
	})
	if err != nil {
		return nil, 0, err
	}
	if len(revenues) == 0 {
		return []RevenueResponse{}, total, nil
	}

	ids := make([]uuid.UUID, len(revenues))
	for i := range revenues {
		ids[i] = revenues[i].ID
	}
	payments, err := s.paymentRepo.FindByRevenues(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	items := make([]RevenueResponse, len(revenues))
	for i := range revenues {
		items[i] = ToRevenueResponse(&revenues[i], payments)
	}
	return items, total, nil
}

// UpdateRevenue applies the present fields of req to a revenue
func (s *FreelanceService) UpdateRevenue(ctx context.Context, userID, id uuid.UUID, req UpdateRevenueRequest) (*RevenueResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "freelance", "update_revenue")
	defer span.End()

	r, err := shared.FindOwned[freelance.Revenue](ctx, s.revenueRepo, id, userID)
	if err != nil {
		return nil, err
	}

	details := r.RevenueDetails
	if req.Title != nil {
		details.Title = *req.Title
	}
	if req.Client != nil {
		details.Client = *req.Client
	}
	if req.Amount != nil {
		details.Amount = *req.Amount
	}
	if req.Date != nil {
		details.Date = req.Date.Time
	}
	if req.Notes != nil {
		details.Notes = *req.Notes
	}

	if err := r.Update(details); err != nil {
		return nil, err
	}
	if err := s.revenueRepo.Save(ctx, r); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.PublishEvents(ctx, r)
	return s.balanced(ctx, r)
}

// DeleteRevenue removes a revenue and its payments
func (s *FreelanceService) DeleteRevenue(ctx context.Context, userID, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "freelance", "delete_revenue")
	defer span.End()

	r, err := shared.FindOwned[freelance.Revenue](ctx, s.revenueRepo, id, userID)
	if err != nil {
		return err
	}
	if err := s.revenueRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	r.MarkDeleted()
	s.PublishEvents(ctx, r)
	return nil
}

// CreatePayment records a payment against one of the user's revenues
func (s *FreelanceService) CreatePayment(ctx context.Context, userID uuid.UUID, req CreatePaymentRequest) (*PaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "freelance", "create_payment")
	defer span.End()

	r, err := shared.FindOwned[freelance.Revenue](ctx, s.revenueRepo, req.RevenueID, userID)
	if err != nil {
		return nil, err
	}
	p, err := freelance.NewPayment(r, *req.Amount, req.Date.Time, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, p); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.PublishEvents(ctx, p)

	resp := ToPaymentResponse(p)
	return &resp, nil
}

// GetPayment retrieves one payment
func (s *FreelanceService) GetPayment(ctx context.Context, userID, id uuid.UUID) (*PaymentResponse, error) {
	p, err := shared.FindOwned[freelance.Payment](ctx, s.paymentRepo, id, userID)
	if err != nil {
		return nil, err
	}
	resp := ToPaymentResponse(p)
	return &resp, nil
}

// ListPayments retrieves a page of the user's payments, optionally for one revenue
func (s *FreelanceService) ListPayments(ctx context.Context, userID uuid.UUID, q PaymentListQuery) ([]PaymentResponse, int64, error) {
	revenueID, err := common.ParseOptionalID("revenue_id", common.FirstNonEmpty(q.RevenueID, q.RevenueIDCamel))
	if err != nil {
		return nil, 0, err
	}
	if revenueID != nil {
		if _, err := shared.FindOwned[freelance.Revenue](ctx, s.revenueRepo, *revenueID, userID); err != nil {
			return nil, 0, err
		}
	}

	payments, total, err := s.paymentRepo.FindAllForUser(ctx, userID, freelance.PaymentFilter{
		Filter:    q.Filter("date", "desc"),
		RevenueID: revenueID,
	})
	if err != nil {
		return nil, 0, err
	}
	items := make([]PaymentResponse, len(payments))
	for i := range payments {
		items[i] = ToPaymentResponse(&payments[i])
	}
	return items, total, nil
}

// DeletePayment removes one payment
func (s *FreelanceService) DeletePayment(ctx context.Context, userID, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "freelance", "delete_payment")
	defer span.End()

	p, err := shared.FindOwned[freelance.Payment](ctx, s.paymentRepo, id, userID)
	if err != nil {
		return err
	}
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	p.MarkDeleted()
	s.PublishEvents(ctx, p)
	return nil
}

func (s *FreelanceService) balanced(ctx context.Context, r *freelance.Revenue) (*RevenueResponse, error) {
	payments, err := s.paymentRepo.FindByRevenues(ctx, []uuid.UUID{r.ID})
	if err != nil {
		return nil, err
	}
	resp := ToRevenueResponse(r, payments)
	return &resp, nil
}
