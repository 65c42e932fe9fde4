package gold

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/gold"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tradeDay = common.Date{Time: time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)}

func newTestService() (*GoldService, *purchaseStore, *saleStore, *testutil.EventRecorder) {
	purchases := &purchaseStore{rows: make(map[uuid.UUID]gold.Purchase)}
	sales := &saleStore{rows: make(map[uuid.UUID]gold.Sale)}
	pub := testutil.NewEventRecorder()
	svc := NewGoldService(purchases, sales)
	svc.SetEventPublisher(pub)
	return svc, purchases, sales, pub
}

func buy(t *testing.T, svc *GoldService, userID uuid.UUID, grams, price int64) *PurchaseResponse {
	t.Helper()
	resp, err := svc.CreatePurchase(context.Background(), userID, CreatePurchaseRequest{
		Grams:        decPtr(grams),
		PricePerGram: decPtr(price),
		Purity:       "21K",
		PurchaseDate: &tradeDay,
	})
	require.NoError(t, err)
	return resp
}

func TestGoldService_SellFromPurchase(t *testing.T) {
	svc, _, _, pub := newTestService()
	ctx := context.Background()
	userID := uuid.New()

	p := buy(t, svc, userID, 50, 500)
	assert.True(t, decimal.NewFromInt(25000).Equal(p.InvoiceValue))
	assert.True(t, decimal.NewFromInt(50).Equal(p.RemainingGrams))

	sale, err := svc.CreateSale(ctx, userID, CreateSaleRequest{
		PurchaseID:   &p.ID,
		SaleValue:    decPtr(5000),
		PricePerGram: decPtr(500),
		SaleDate:     &tradeDay,
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(sale.Grams))
	assert.True(t, sale.ProfitLoss.IsZero())

	after, err := svc.GetPurchase(ctx, userID, p.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(40).Equal(after.RemainingGrams))
	assert.True(t, decimal.NewFromInt(20000).Equal(after.RemainingValue))
	assert.False(t, after.FullySold)

	summary, err := svc.Summary(ctx, userID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(40).Equal(summary.RemainingGrams))
	assert.True(t, summary.RealizedProfit.IsZero())
	assert.Equal(t, 1, summary.SaleCount)

	assert.Equal(t, []string{"gold_purchase.created", "gold_sale.sold"}, pub.Types())
}

func TestGoldService_CreateSale_Oversell(t *testing.T) {
	svc, _, sales, _ := newTestService()
	userID := uuid.New()
	p := buy(t, svc, userID, 10, 500)

	_, err := svc.CreateSale(context.Background(), userID, CreateSaleRequest{
		PurchaseID:   &p.ID,
		SaleValue:    decPtr(6000),
		PricePerGram: decPtr(500),
		SaleDate:     &tradeDay,
	})
	assert.ErrorIs(t, err, gold.ErrInsufficientGold)
	assert.Empty(t, sales.rows)
}

func TestGoldService_CreateSale_Profit(t *testing.T) {
	svc, _, _, _ := newTestService()
	userID := uuid.New()
	p := buy(t, svc, userID, 10, 500)

	sale, err := svc.CreateSale(context.Background(), userID, CreateSaleRequest{
		PurchaseID:   &p.ID,
		SaleValue:    decPtr(3000),
		PricePerGram: decPtr(600),
		SaleDate:     &tradeDay,
	})
	require.NoError(t, err)
	// 5g sold at 600 against a cost of 500
	assert.True(t, decimal.NewFromInt(500).Equal(sale.ProfitLoss))
}

func TestGoldService_CreateSale_Unlinked(t *testing.T) {
	svc, _, _, _ := newTestService()

	sale, err := svc.CreateSale(context.Background(), uuid.New(), CreateSaleRequest{
		SaleValue:  decPtr(1000),
		SaleDate:   &tradeDay,
		ProfitLoss: decPtr(-50),
	})
	require.NoError(t, err)
	assert.Nil(t, sale.PurchaseID)
	assert.True(t, decimal.NewFromInt(-50).Equal(sale.ProfitLoss))
}

func TestGoldService_CreateSale_ForeignPurchase(t *testing.T) {
	svc, _, _, _ := newTestService()
	p := buy(t, svc, uuid.New(), 10, 500)

	_, err := svc.CreateSale(context.Background(), uuid.New(), CreateSaleRequest{
		PurchaseID:   &p.ID,
		SaleValue:    decPtr(500),
		PricePerGram: decPtr(500),
		SaleDate:     &tradeDay,
	})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestGoldService_UpdatePurchase(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	userID := uuid.New()
	p := buy(t, svc, userID, 20, 500)

	_, err := svc.CreateSale(ctx, userID, CreateSaleRequest{
		PurchaseID:   &p.ID,
		SaleValue:    decPtr(5000),
		PricePerGram: decPtr(500),
		SaleDate:     &tradeDay,
	})
	require.NoError(t, err)

	_, err = svc.UpdatePurchase(ctx, userID, p.ID, UpdatePurchaseRequest{Grams: decPtr(5)})
	assert.ErrorIs(t, err, gold.ErrInsufficientGold)

	purity := "24K"
	updated, err := svc.UpdatePurchase(ctx, userID, p.ID, UpdatePurchaseRequest{Purity: &purity})
	require.NoError(t, err)
	assert.Equal(t, "24K", updated.Purity)
	assert.True(t, decimal.NewFromInt(10000).Equal(updated.InvoiceValue))
	assert.True(t, decimal.NewFromInt(10).Equal(updated.RemainingGrams))

	updated, err = svc.UpdatePurchase(ctx, userID, p.ID, UpdatePurchaseRequest{Grams: decPtr(30)})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(15000).Equal(updated.InvoiceValue))
}

func TestGoldService_DeleteAndList(t *testing.T) {
	svc, _, _, pub := newTestService()
	ctx := context.Background()
	userID := uuid.New()
	p := buy(t, svc, userID, 10, 500)
	buy(t, svc, uuid.New(), 10, 500)

	sale, err := svc.CreateSale(ctx, userID, CreateSaleRequest{
		PurchaseID:   &p.ID,
		SaleValue:    decPtr(500),
		PricePerGram: decPtr(500),
		SaleDate:     &tradeDay,
	})
	require.NoError(t, err)

	items, total, err := svc.ListPurchases(ctx, userID, PurchaseListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.True(t, decimal.NewFromInt(9).Equal(items[0].RemainingGrams))

	sales, _, err := svc.ListSales(ctx, userID, SaleListQuery{PurchaseID: p.ID.String()})
	require.NoError(t, err)
	assert.Len(t, sales, 1)

	_, _, err = svc.ListSales(ctx, userID, SaleListQuery{PurchaseID: "nope"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	require.NoError(t, svc.DeleteSale(ctx, userID, sale.ID))
	_, err = svc.GetSale(ctx, userID, sale.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, svc.DeletePurchase(ctx, userID, p.ID))
	assert.Contains(t, pub.Types(), "gold_purchase.deleted")
	assert.Contains(t, pub.Types(), "gold_sale.deleted")
}
