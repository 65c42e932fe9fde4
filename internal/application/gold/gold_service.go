// Package gold provides the application services for gold purchases and sales.
package gold

import (
	"context"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/gold"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// GoldService handles gold purchase and sale operations
type GoldService struct {
	common.EventSupport
	purchaseRepo gold.PurchaseRepository
	saleRepo     gold.SaleRepository
}

// NewGoldService creates a new GoldService
func NewGoldService(purchaseRepo gold.PurchaseRepository, saleRepo gold.SaleRepository) *GoldService {
	return &GoldService{
		purchaseRepo: purchaseRepo,
		saleRepo:     saleRepo,
	}
}

// CreatePurchase records a purchase
func (s *GoldService) CreatePurchase(ctx context.Context, userID uuid.UUID, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "gold", "create_purchase")
	defer span.End()

	p, err := gold.NewPurchase(userID, gold.PurchaseDetails{
		Grams:        *req.Grams,
		PricePerGram: *req.PricePerGram,
		InvoiceValue: req.InvoiceValue,
		Purity:       req.Purity,
		Type:         req.Type,
		PurchaseDate: req.PurchaseDate.Time,
		Notes:        req.Notes,
	})
	if err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.Save(ctx, p); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.PublishEvents(ctx, p)

	resp := ToPurchaseResponse(p, gold.Valuate(p, nil))
	return &resp, nil
}

// GetPurchase retrieves a purchase with its remaining holding
func (s *GoldService) GetPurchase(ctx context.Context, userID, id uuid.UUID) (*PurchaseResponse, error) {
	p, err := shared.FindOwned[gold.Purchase](ctx, s.purchaseRepo, id, userID)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.FindByPurchase(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseResponse(p, gold.Valuate(p, sales))
	return &resp, nil
}

// ListPurchases retrieves a page of the user's purchases
func (s *GoldService) ListPurchases(ctx context.Context, userID uuid.UUID, q PurchaseListQuery) ([]PurchaseResponse, int64, error) {
	from, err := common.ParseOptionalDate(q.From)
	if err != nil {
		return nil, 0, err
	}
	to, err := common.ParseOptionalDate(q.To)
	if err != nil {
		return nil, 0, err
	}

	purchases, total, err := s.purchaseRepo.FindAllForUser(ctx, userID, gold.PurchaseFilter{
		Filter: q.Filter("purchase_date", "desc"),
		From:   from,
		To:     to,
	})
	if err != nil {
		return nil, 0, err
	}
	if len(purchases) == 0 {
		return []PurchaseResponse{}, total, nil
	}

	sales, err := s.saleRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	items := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		items[i] = ToPurchaseResponse(&purchases[i], gold.Valuate(&purchases[i], sales))
	}
	return items, total, nil
}

// UpdatePurchase applies the present fields of req to a purchase. The new
// weight cannot drop below what was already sold.
func (s *GoldService) UpdatePurchase(ctx context.Context, userID, id uuid.UUID, req UpdatePurchaseRequest) (*PurchaseResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "gold", "update_purchase")
	defer span.End()

	p, err := shared.FindOwned[gold.Purchase](ctx, s.purchaseRepo, id, userID)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.FindByPurchase(ctx, p.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	details := gold.PurchaseDetails{
		Grams:        p.Grams,
		PricePerGram: p.PricePerGram,
		Purity:       p.Purity,
		Type:         p.Type,
		PurchaseDate: p.PurchaseDate,
		Notes:        p.Notes,
	}
	if req.InvoiceValue != nil {
		details.InvoiceValue = req.InvoiceValue
	} else if req.Grams == nil && req.PricePerGram == nil {
		invoice := p.InvoiceValue
		details.InvoiceValue = &invoice
	}
	if req.Grams != nil {
		details.Grams = *req.Grams
	}
	if req.PricePerGram != nil {
		details.PricePerGram = *req.PricePerGram
	}
	if req.Purity != nil {
		details.Purity = *req.Purity
	}
	if req.Type != nil {
		details.Type = *req.Type
	}
	if req.PurchaseDate != nil {
		details.PurchaseDate = req.PurchaseDate.Time
	}
	if req.Notes != nil {
		details.Notes = *req.Notes
	}

	if sold := gold.Valuate(p, sales).SoldGrams; details.Grams.LessThan(sold) {
		return nil, gold.ErrInsufficientGold
	}
	if err := p.Update(details); err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.Save(ctx, p); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.PublishEvents(ctx, p)

	resp := ToPurchaseResponse(p, gold.Valuate(p, sales))
	return &resp, nil
}

// DeletePurchase removes a purchase. Its sales stay, unlinked.
func (s *GoldService) DeletePurchase(ctx context.Context, userID, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "gold", "delete_purchase")
	defer span.End()

	p, err := shared.FindOwned[gold.Purchase](ctx, s.purchaseRepo, id, userID)
	if err != nil {
		return err
	}
	if err := s.purchaseRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	p.MarkDeleted()
	s.PublishEvents(ctx, p)
	return nil
}

// CreateSale records a sale. A linked sale is checked against the remaining
// grams of its purchase.
func (s *GoldService) CreateSale(ctx context.Context, userID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "gold", "create_sale")
	defer span.End()

	var (
		purchase *gold.Purchase
		sales    []gold.Sale
		err      error
	)
	if req.PurchaseID != nil {
		purchase, err = shared.FindOwned[gold.Purchase](ctx, s.purchaseRepo, *req.PurchaseID, userID)
		if err != nil {
			return nil, err
		}
		sales, err = s.saleRepo.FindByPurchase(ctx, purchase.ID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		span.SetAttributes(attribute.String("gold.purchase_id", purchase.ID.String()))
	}

	sale, err := gold.NewSale(userID, gold.SaleDetails{
		PurchaseID:   req.PurchaseID,
		SaleValue:    *req.SaleValue,
		PricePerGram: req.PricePerGram,
		SaleDate:     req.SaleDate.Time,
		ProfitLoss:   req.ProfitLoss,
		Notes:        req.Notes,
	}, purchase, sales)
	if err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.PublishEvents(ctx, sale)

	resp := ToSaleResponse(sale)
	return &resp, nil
}

// GetSale retrieves one sale
func (s *GoldService) GetSale(ctx context.Context, userID, id uuid.UUID) (*SaleResponse, error) {
	sale, err := shared.FindOwned[gold.Sale](ctx, s.saleRepo, id, userID)
	if err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// ListSales retrieves a page of the user's sales
func (s *GoldService) ListSales(ctx context.Context, userID uuid.UUID, q SaleListQuery) ([]SaleResponse, int64, error) {
	purchaseID, err := common.ParseOptionalID("purchase_id", q.PurchaseID)
	if err != nil {
		return nil, 0, err
	}
	sales, total, err := s.saleRepo.FindAllForUser(ctx, userID, gold.SaleFilter{
		Filter:     q.Filter("sale_date", "desc"),
		PurchaseID: purchaseID,
	})
	if err != nil {
		return nil, 0, err
	}
	items := make([]SaleResponse, len(sales))
	for i := range sales {
		items[i] = ToSaleResponse(&sales[i])
	}
	return items, total, nil
}

// DeleteSale removes a sale, returning its grams to the linked purchase
func (s *GoldService) DeleteSale(ctx context.Context, userID, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "gold", "delete_sale")
	defer span.End()

	sale, err := shared.FindOwned[gold.Sale](ctx, s.saleRepo, id, userID)
	if err != nil {
		return err
	}
	if err := s.saleRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	sale.MarkDeleted()
	s.PublishEvents(ctx, sale)
	return nil
}

// Summary totals every purchase and sale of the user
func (s *GoldService) Summary(ctx context.Context, userID uuid.UUID) (*SummaryResponse, error) {
	purchases, err := s.purchaseRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToSummaryResponse(gold.Summarize(purchases, sales))
	return &resp, nil
}
