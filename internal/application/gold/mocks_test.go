package gold

import (
	"context"

	"github.com/fintrack/backend/internal/domain/gold"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// purchaseStore is an in-memory gold.PurchaseRepository
type purchaseStore struct {
	rows map[uuid.UUID]gold.Purchase
}

func (s *purchaseStore) FindByID(_ context.Context, id uuid.UUID) (*gold.Purchase, error) {
	p, ok := s.rows[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (s *purchaseStore) FindAllForUser(ctx context.Context, userID uuid.UUID, _ gold.PurchaseFilter) ([]gold.Purchase, int64, error) {
	out, err := s.FindAllByUser(ctx, userID)
	return out, int64(len(out)), err
}

func (s *purchaseStore) FindAllByUser(_ context.Context, userID uuid.UUID) ([]gold.Purchase, error) {
	out := make([]gold.Purchase, 0)
	for _, p := range s.rows {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *purchaseStore) Save(_ context.Context, p *gold.Purchase) error {
	row := *p
	row.ClearDomainEvents()
	s.rows[p.ID] = row
	return nil
}

func (s *purchaseStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

// saleStore is an in-memory gold.SaleRepository
type saleStore struct {
	rows map[uuid.UUID]gold.Sale
}

func (s *saleStore) FindByID(_ context.Context, id uuid.UUID) (*gold.Sale, error) {
	sale, ok := s.rows[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &sale, nil
}

func (s *saleStore) FindAllForUser(_ context.Context, userID uuid.UUID, filter gold.SaleFilter) ([]gold.Sale, int64, error) {
	out := make([]gold.Sale, 0)
	for _, sale := range s.rows {
		if sale.UserID != userID {
			continue
		}
		if filter.PurchaseID != nil && (sale.PurchaseID == nil || *sale.PurchaseID != *filter.PurchaseID) {
			continue
		}
		out = append(out, sale)
	}
	return out, int64(len(out)), nil
}

func (s *saleStore) FindByPurchase(_ context.Context, purchaseID uuid.UUID) ([]gold.Sale, error) {
	out := make([]gold.Sale, 0)
	for _, sale := range s.rows {
		if sale.PurchaseID != nil && *sale.PurchaseID == purchaseID {
			out = append(out, sale)
		}
	}
	return out, nil
}

func (s *saleStore) FindAllByUser(_ context.Context, userID uuid.UUID) ([]gold.Sale, error) {
	out := make([]gold.Sale, 0)
	for _, sale := range s.rows {
		if sale.UserID == userID {
			out = append(out, sale)
		}
	}
	return out, nil
}

func (s *saleStore) Save(_ context.Context, sale *gold.Sale) error {
	row := *sale
	row.ClearDomainEvents()
	s.rows[sale.ID] = row
	return nil
}

func (s *saleStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}
