// Package gold tracks gold bought and sold by weight.
package gold

import (
	"strings"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateTypePurchase is the aggregate type name used in events and the activity log
const AggregateTypePurchase = "gold_purchase"

// PurchaseDetails holds the user-editable fields of a purchase
type PurchaseDetails struct {
	Grams        decimal.Decimal
	PricePerGram decimal.Decimal
	// InvoiceValue defaults to Grams * PricePerGram when nil
	InvoiceValue *decimal.Decimal
	Purity       string
	Type         string
	PurchaseDate time.Time
	Notes        string
}

// Purchase is a quantity of gold bought at a price per gram
type Purchase struct {
	shared.OwnedAggregateRoot
	Grams        decimal.Decimal
	PricePerGram decimal.Decimal
	InvoiceValue decimal.Decimal
	Purity       string
	Type         string
	PurchaseDate time.Time
	Notes        string
}

// NewPurchase records a purchase
func NewPurchase(userID uuid.UUID, details PurchaseDetails) (*Purchase, error) {
	p := &Purchase{OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID)}
	if err := p.apply(details); err != nil {
		return nil, err
	}
	p.AddDomainEvent(p.event("created", p.InvoiceValue))
	return p, nil
}

// Update replaces the editable fields
func (p *Purchase) Update(details PurchaseDetails) error {
	if err := p.apply(details); err != nil {
		return err
	}
	p.Touch()
	p.AddDomainEvent(p.event("updated", p.InvoiceValue))
	return nil
}

// MarkDeleted records the deletion event
func (p *Purchase) MarkDeleted() {
	p.AddDomainEvent(p.event("deleted", p.InvoiceValue))
}

// CostOf returns the purchase cost of the given weight
func (p *Purchase) CostOf(grams decimal.Decimal) decimal.Decimal {
	return p.PricePerGram.Mul(grams)
}

func (p *Purchase) apply(d PurchaseDetails) error {
	if !d.Grams.IsPositive() {
		return shared.NewDomainError("INVALID_GRAMS", "Grams must be positive")
	}
	if !d.PricePerGram.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Price per gram must be positive")
	}
	if d.PurchaseDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Purchase date is required")
	}
	invoice := d.Grams.Mul(d.PricePerGram)
	if d.InvoiceValue != nil {
		if d.InvoiceValue.IsNegative() {
			return shared.NewDomainError("INVALID_AMOUNT", "Invoice value cannot be negative")
		}
		invoice = *d.InvoiceValue
	}

	p.Grams = d.Grams
	p.PricePerGram = d.PricePerGram
	p.InvoiceValue = invoice
	p.Purity = strings.TrimSpace(d.Purity)
	p.Type = strings.TrimSpace(d.Type)
	p.PurchaseDate = shared.DateOf(d.PurchaseDate)
	p.Notes = d.Notes
	return nil
}

func (p *Purchase) event(action string, amount decimal.Decimal) shared.DomainEvent {
	return shared.NewLifecycleEvent(AggregateTypePurchase, action, p.ID, p.UserID, shared.AmountRef(amount), map[string]any{
		"grams":  p.Grams.String(),
		"purity": p.Purity,
	})
}
