package whatsapp

import (
	"time"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/whatsapp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSubscriptionRequest represents a request to create a subscription
type CreateSubscriptionRequest struct {
	PhoneNumber string           `json:"phone_number" binding:"required,max=32"`
	Plan        string           `json:"plan" binding:"max=100"`
	Amount      *decimal.Decimal `json:"amount"`
	StartDate   *common.Date     `json:"start_date"`
	EndDate     *common.Date     `json:"end_date"`
	IsActive    *bool            `json:"is_active"`
	Notes       string           `json:"notes" binding:"max=2000"`
}

// UpdateSubscriptionRequest represents a partial subscription update
type UpdateSubscriptionRequest struct {
	PhoneNumber *string          `json:"phone_number" binding:"omitempty,max=32"`
	Plan        *string          `json:"plan" binding:"omitempty,max=100"`
	Amount      *decimal.Decimal `json:"amount"`
	StartDate   *common.Date     `json:"start_date"`
	EndDate     *common.Date     `json:"end_date"`
	IsActive    *bool            `json:"is_active"`
	Notes       *string          `json:"notes" binding:"omitempty,max=2000"`
}

// SubscriptionListQuery holds the subscription list filters
type SubscriptionListQuery struct {
	common.ListQuery
	IsActive *bool `form:"is_active"`
}

// SubscriptionResponse represents a subscription
type SubscriptionResponse struct {
	ID          uuid.UUID       `json:"id"`
	PhoneNumber string          `json:"phone_number"`
	Plan        string          `json:"plan"`
	Amount      decimal.Decimal `json:"amount"`
	StartDate   *common.Date    `json:"start_date"`
	EndDate     *common.Date    `json:"end_date"`
	IsActive    bool            `json:"is_active"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToSubscriptionResponse converts a subscription
func ToSubscriptionResponse(s *whatsapp.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:          s.ID,
		PhoneNumber: s.PhoneNumber,
		Plan:        s.Plan,
		Amount:      s.Amount,
		StartDate:   common.DatePtr(s.StartDate),
		EndDate:     common.DatePtr(s.EndDate),
		IsActive:    s.IsActive,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
