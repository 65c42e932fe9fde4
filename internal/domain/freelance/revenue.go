// Package freelance tracks freelance work billed to clients and the
// payments received against it.
package freelance

import (
	"strings"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type names used in events and the activity log
const (
	AggregateTypeRevenue = "freelance_revenue"
	AggregateTypePayment = "freelance_payment"
)

// RevenueDetails holds the user-editable fields of a revenue
type RevenueDetails struct {
	Title  string
	Client string
	Amount decimal.Decimal
	Date   time.Time
	Notes  string
}

// Revenue is an amount billed for freelance work
type Revenue struct {
	shared.OwnedAggregateRoot
	RevenueDetails
}

// NewRevenue creates a revenue
func NewRevenue(userID uuid.UUID, details RevenueDetails) (*Revenue, error) {
	details, err := normalizeRevenue(details)
	if err != nil {
		return nil, err
	}
	r := &Revenue{OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID), RevenueDetails: details}
	r.AddDomainEvent(r.event("created"))
	return r, nil
}

// Update replaces the editable fields
func (r *Revenue) Update(details RevenueDetails) error {
	details, err := normalizeRevenue(details)
	if err != nil {
		return err
	}
	r.RevenueDetails = details
	r.Touch()
	r.AddDomainEvent(r.event("updated"))
	return nil
}

// MarkDeleted records the deletion event
func (r *Revenue) MarkDeleted() {
	r.AddDomainEvent(r.event("deleted"))
}

// Balance returns the paid and outstanding amounts given the revenue's
// payments. Overpayment is reported as a zero outstanding amount.
func (r *Revenue) Balance(payments []Payment) (paid, outstanding decimal.Decimal) {
	paid = decimal.Zero
	for i := range payments {
		if payments[i].RevenueID == r.ID {
			paid = paid.Add(payments[i].Amount)
		}
	}
	return paid, decimal.Max(decimal.Zero, r.Amount.Sub(paid))
}

func (r *Revenue) event(action string) shared.DomainEvent {
	return shared.NewLifecycleEvent(AggregateTypeRevenue, action, r.ID, r.UserID, shared.AmountRef(r.Amount), map[string]any{
		"title":  r.Title,
		"client": r.Client,
	})
}

func normalizeRevenue(d RevenueDetails) (RevenueDetails, error) {
	d.Title = strings.TrimSpace(d.Title)
	d.Client = strings.TrimSpace(d.Client)
	if d.Title == "" {
		return d, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(d.Title) > 255 || len(d.Client) > 255 {
		return d, shared.NewDomainError("INVALID_TITLE", "Title and client cannot exceed 255 characters")
	}
	if d.Amount.IsNegative() {
		return d, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if d.Date.IsZero() {
		return d, shared.NewDomainError("INVALID_DATE", "Date is required")
	}
	d.Date = shared.DateOf(d.Date)
	return d, nil
}

// Payment is money received against a revenue
type Payment struct {
	shared.OwnedAggregateRoot
	RevenueID uuid.UUID
	Amount    decimal.Decimal
	Date      time.Time
	Notes     string
}

// NewPayment records a payment for revenue
func NewPayment(revenue *Revenue, amount decimal.Decimal, date time.Time, notes string) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Date is required")
	}
	p := &Payment{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(revenue.UserID),
		RevenueID:          revenue.ID,
		Amount:             amount,
		Date:               shared.DateOf(date),
		Notes:              notes,
	}
	p.AddDomainEvent(p.event("created"))
	return p, nil
}

// MarkDeleted records the deletion event
func (p *Payment) MarkDeleted() {
	p.AddDomainEvent(p.event("deleted"))
}

func (p *Payment) event(action string) shared.DomainEvent {
	return shared.NewLifecycleEvent(AggregateTypePayment, action, p.ID, p.UserID, shared.AmountRef(p.Amount), map[string]any{
		"revenue_id": p.RevenueID.String(),
	})
}
