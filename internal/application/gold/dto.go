package gold

import (
	"time"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/gold"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest represents a request to record a gold purchase
type CreatePurchaseRequest struct {
	Grams        *decimal.Decimal `json:"grams" binding:"required,gt=0"`
	PricePerGram *decimal.Decimal `json:"price_per_gram" binding:"required,gt=0"`
	InvoiceValue *decimal.Decimal `json:"invoice_value" binding:"omitempty,gte=0"`
	Purity       string           `json:"purity" binding:"max=20"`
	Type         string           `json:"type" binding:"max=50"`
	PurchaseDate *common.Date     `json:"purchase_date" binding:"required"`
	Notes        string           `json:"notes" binding:"max=2000"`
}

// UpdatePurchaseRequest represents a partial purchase update
type UpdatePurchaseRequest struct {
	Grams        *decimal.Decimal `json:"grams"`
	PricePerGram *decimal.Decimal `json:"price_per_gram"`
	InvoiceValue *decimal.Decimal `json:"invoice_value"`
	Purity       *string          `json:"purity" binding:"omitempty,max=20"`
	Type         *string          `json:"type" binding:"omitempty,max=50"`
	PurchaseDate *common.Date     `json:"purchase_date"`
	Notes        *string          `json:"notes" binding:"omitempty,max=2000"`
}

// PurchaseListQuery holds the purchase list filters
type PurchaseListQuery struct {
	common.ListQuery
	From string `form:"from"`
	To   string `form:"to"`
}

// PurchaseResponse represents a purchase with its remaining holding
type PurchaseResponse struct {
	ID             uuid.UUID       `json:"id"`
	Grams          decimal.Decimal `json:"grams"`
	PricePerGram   decimal.Decimal `json:"price_per_gram"`
	InvoiceValue   decimal.Decimal `json:"invoice_value"`
	Purity         string          `json:"purity"`
	Type           string          `json:"type"`
	PurchaseDate   common.Date     `json:"purchase_date"`
	Notes          string          `json:"notes"`
	SoldGrams      decimal.Decimal `json:"sold_grams"`
	RemainingGrams decimal.Decimal `json:"remaining_grams"`
	RemainingValue decimal.Decimal `json:"remaining_value"`
	FullySold      bool            `json:"fully_sold"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToPurchaseResponse converts a purchase and its holding
func ToPurchaseResponse(p *gold.Purchase, h gold.Holding) PurchaseResponse {
	return PurchaseResponse{
		ID:             p.ID,
		Grams:          p.Grams,
		PricePerGram:   p.PricePerGram,
		InvoiceValue:   p.InvoiceValue,
		Purity:         p.Purity,
		Type:           p.Type,
		PurchaseDate:   common.NewDate(p.PurchaseDate),
		Notes:          p.Notes,
		SoldGrams:      h.SoldGrams.Round(3),
		RemainingGrams: h.RemainingGrams.Round(3),
		RemainingValue: h.RemainingValue.Round(2),
		FullySold:      h.FullySold,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// CreateSaleRequest represents a request to record a gold sale
type CreateSaleRequest struct {
	PurchaseID   *uuid.UUID       `json:"purchase_id"`
	SaleValue    *decimal.Decimal `json:"sale_value" binding:"required"`
	PricePerGram *decimal.Decimal `json:"price_per_gram"`
	SaleDate     *common.Date     `json:"sale_date" binding:"required"`
	ProfitLoss   *decimal.Decimal `json:"profit_loss"`
	Notes        string           `json:"notes" binding:"max=2000"`
}

// SaleListQuery holds the sale list filters
type SaleListQuery struct {
	common.ListQuery
	PurchaseID string `form:"purchase_id"`
}

// SaleResponse represents a gold sale
type SaleResponse struct {
	ID           uuid.UUID        `json:"id"`
	PurchaseID   *uuid.UUID       `json:"purchase_id"`
	SaleValue    decimal.Decimal  `json:"sale_value"`
	PricePerGram *decimal.Decimal `json:"price_per_gram"`
	Grams        decimal.Decimal  `json:"grams"`
	SaleDate     common.Date      `json:"sale_date"`
	ProfitLoss   decimal.Decimal  `json:"profit_loss"`
	Notes        string           `json:"notes"`
	CreatedAt    time.Time        `json:"created_at"`
}

// ToSaleResponse converts a sale
func ToSaleResponse(s *gold.Sale) SaleResponse {
	return SaleResponse{
		ID:           s.ID,
		PurchaseID:   s.PurchaseID,
		SaleValue:    s.SaleValue,
		PricePerGram: s.PricePerGram,
		Grams:        s.Grams().Round(3),
		SaleDate:     common.NewDate(s.SaleDate),
		ProfitLoss:   s.ProfitLoss,
		Notes:        s.Notes,
		CreatedAt:    s.CreatedAt,
	}
}

// SummaryResponse totals the user's gold position
type SummaryResponse struct {
	TotalGrams     decimal.Decimal `json:"total_grams"`
	RemainingGrams decimal.Decimal `json:"remaining_grams"`
	InvestedAmount decimal.Decimal `json:"invested_amount"`
	RemainingValue decimal.Decimal `json:"remaining_value"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	RealizedProfit decimal.Decimal `json:"realized_profit"`
	PurchaseCount  int             `json:"purchase_count"`
	SaleCount      int             `json:"sale_count"`
}

// ToSummaryResponse converts a summary
func ToSummaryResponse(s gold.Summary) SummaryResponse {
	return SummaryResponse{
		TotalGrams:     s.TotalGrams.Round(3),
		RemainingGrams: s.RemainingGrams.Round(3),
		InvestedAmount: s.InvestedAmount.Round(2),
		RemainingValue: s.RemainingValue.Round(2),
		TotalSales:     s.TotalSales.Round(2),
		RealizedProfit: s.RealizedProfit.Round(2),
		PurchaseCount:  s.PurchaseCount,
		SaleCount:      s.SaleCount,
	}
}
