package freelance

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RevenueFilter narrows revenue listings
type RevenueFilter struct {
	shared.Filter
	Client string
	From   *time.Time
	To     *time.Time
}

// PaymentFilter narrows payment listings
type PaymentFilter struct {
	shared.Filter
	RevenueID *uuid.UUID
}

// RevenueRepository persists revenues
type RevenueRepository interface {
	shared.OwnedRepository[Revenue, RevenueFilter]
	SumByRange(ctx context.Context, userID uuid.UUID, r shared.DateRange) (decimal.Decimal, error)
}

// PaymentRepository persists payments
type PaymentRepository interface {
	shared.OwnedRepository[Payment, PaymentFilter]
	FindByRevenues(ctx context.Context, revenueIDs []uuid.UUID) ([]Payment, error)
}
