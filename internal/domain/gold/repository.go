package gold

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseFilter narrows purchase listings
type PurchaseFilter struct {
	shared.Filter
	From *time.Time
	To   *time.Time
}

// SaleFilter narrows sale listings
type SaleFilter struct {
	shared.Filter
	PurchaseID *uuid.UUID
}

// PurchaseRepository persists gold purchases
type PurchaseRepository interface {
	shared.OwnedRepository[Purchase, PurchaseFilter]
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]Purchase, error)
}

// SaleRepository persists gold sales
type SaleRepository interface {
	shared.OwnedRepository[Sale, SaleFilter]
	FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]Sale, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]Sale, error)
}
