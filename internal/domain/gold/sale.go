package gold

import (
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateTypeSale is the aggregate type name used in events and the activity log
const AggregateTypeSale = "gold_sale"

// ErrInsufficientGold is returned when a sale would sell more grams than remain
var ErrInsufficientGold = shared.NewDomainError("INSUFFICIENT_GOLD", "Sale exceeds the remaining grams of the purchase")

// SaleDetails holds the fields supplied when recording a sale
type SaleDetails struct {
	PurchaseID   *uuid.UUID
	SaleValue    decimal.Decimal
	PricePerGram *decimal.Decimal
	SaleDate     time.Time
	// ProfitLoss is only used for sales not linked to a purchase
	ProfitLoss *decimal.Decimal
	Notes      string
}

// Sale is gold sold for a value. The weight sold is SaleValue / PricePerGram.
type Sale struct {
	shared.OwnedAggregateRoot
	PurchaseID   *uuid.UUID
	SaleValue    decimal.Decimal
	PricePerGram *decimal.Decimal
	SaleDate     time.Time
	ProfitLoss   decimal.Decimal
	Notes        string
}

// NewSale records a sale. When the sale is linked, purchase must be the linked
// purchase and sales its existing sales; the sale is rejected if it oversells.
func NewSale(userID uuid.UUID, details SaleDetails, purchase *Purchase, sales []Sale) (*Sale, error) {
	if !details.SaleValue.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Sale value must be positive")
	}
	if details.SaleDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Sale date is required")
	}
	if details.PricePerGram != nil && !details.PricePerGram.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price per gram must be positive")
	}

	s := &Sale{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		PurchaseID:         details.PurchaseID,
		SaleValue:          details.SaleValue,
		PricePerGram:       details.PricePerGram,
		SaleDate:           shared.DateOf(details.SaleDate),
		ProfitLoss:         decimal.Zero,
		Notes:              details.Notes,
	}

	if details.PurchaseID == nil {
		if details.ProfitLoss != nil {
			s.ProfitLoss = *details.ProfitLoss
		}
	} else {
		if purchase == nil || purchase.ID != *details.PurchaseID {
			return nil, shared.ErrNotFound
		}
		if s.PricePerGram == nil {
			return nil, shared.NewDomainError("INVALID_PRICE", "Price per gram is required for a linked sale")
		}
		holding := Valuate(purchase, sales)
		if s.Grams().GreaterThan(holding.RemainingGrams) {
			return nil, ErrInsufficientGold
		}
		s.ProfitLoss = s.SaleValue.Sub(purchase.CostOf(s.Grams())).Round(2)
	}

	s.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeSale, "sold", s.ID, userID, shared.AmountRef(s.SaleValue), map[string]any{
		"grams":       s.Grams().String(),
		"profit_loss": s.ProfitLoss.String(),
	}))
	return s, nil
}

// Grams is the weight sold, or zero when no price per gram is known
func (s *Sale) Grams() decimal.Decimal {
	if s.PricePerGram == nil || !s.PricePerGram.IsPositive() {
		return decimal.Zero
	}
	return s.SaleValue.Div(*s.PricePerGram)
}

// MarkDeleted records the deletion event
func (s *Sale) MarkDeleted() {
	s.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeSale, "deleted", s.ID, s.UserID, shared.AmountRef(s.SaleValue), nil))
}
