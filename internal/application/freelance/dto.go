package freelance

import (
	"time"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/freelance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateRevenueRequest represents a request to record freelance revenue
type CreateRevenueRequest struct {
	Title  string           `json:"title" binding:"required,min=1,max=255"`
	Client string           `json:"client" binding:"max=255"`
	Amount *decimal.Decimal `json:"amount" binding:"required"`
	Date   *common.Date     `json:"date" binding:"required"`
	Notes  string           `json:"notes" binding:"max=2000"`
}

// UpdateRevenueRequest represents a partial revenue update
type UpdateRevenueRequest struct {
	Title  *string          `json:"title" binding:"omitempty,min=1,max=255"`
	Client *string          `json:"client" binding:"omitempty,max=255"`
	Amount *decimal.Decimal `json:"amount"`
	Date   *common.Date     `json:"date"`
	Notes  *string          `json:"notes" binding:"omitempty,max=2000"`
}

// RevenueListQuery holds the revenue list filters
type RevenueListQuery struct {
	common.ListQuery
	Client string `form:"client"`
	From   string `form:"from"`
	To     string `form:"to"`
}

// RevenueResponse represents a revenue with its payment balance
type RevenueResponse struct {
	ID                uuid.UUID       `json:"id"`
	Title             string          `json:"title"`
	Client            string          `json:"client"`
	Amount            decimal.Decimal `json:"amount"`
	Date              common.Date     `json:"date"`
	Notes             string          `json:"notes"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToRevenueResponse converts a revenue, balancing it against payments
func ToRevenueResponse(r *freelance.Revenue, payments []freelance.Payment) RevenueResponse {
	paid, outstanding := r.Balance(payments)
	return RevenueResponse{
		ID:                r.ID,
		Title:             r.Title,
		Client:            r.Client,
		Amount:            r.Amount,
		Date:              common.NewDate(r.Date),
		Notes:             r.Notes,
		PaidAmount:        paid,
		OutstandingAmount: outstanding,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// CreatePaymentRequest represents a payment received against a revenue
type CreatePaymentRequest struct {
	RevenueID uuid.UUID        `json:"revenue_id" binding:"required"`
	Amount    *decimal.Decimal `json:"amount" binding:"required"`
	Date      *common.Date     `json:"date" binding:"required"`
	Notes     string           `json:"notes" binding:"max=2000"`
}

// PaymentListQuery holds the payment list filters. revenueId is accepted as
// an alias of revenue_id.
type PaymentListQuery struct {
	common.ListQuery
	RevenueID      string `form:"revenue_id"`
	RevenueIDCamel string `form:"revenueId"`
}

// PaymentResponse represents a payment
type PaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	RevenueID uuid.UUID       `json:"revenue_id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      common.Date     `json:"date"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToPaymentResponse converts a payment
func ToPaymentResponse(p *freelance.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		RevenueID: p.RevenueID,
		Amount:    p.Amount,
		Date:      common.NewDate(p.Date),
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}
