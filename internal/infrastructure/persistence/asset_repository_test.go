package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack/backend/internal/domain/certificate"
	"github.com/fintrack/backend/internal/domain/finance"
	"github.com/fintrack/backend/internal/domain/gold"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCertificateRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	certs := NewGormCertificateRepository(db)
	withdrawals := NewGormWithdrawalRepository(db)
	salaries := NewGormSalaryRepository(db)
	userID := uuid.New()

	limit := decimal.NewFromInt(50000)
	cert, err := certificate.NewCertificate(userID, certificate.CertificateDetails{
		BankName:           "National Bank",
		CertificateName:    "Three-year",
		Amount:             decimal.NewFromInt(100000),
		MonthlyReturn:      decimal.NewFromInt(1500),
		MaxWithdrawalLimit: &limit,
		DepositDate:        datePtr(2024, time.January, 1),
	})
	require.NoError(t, err)
	require.NoError(t, certs.Save(ctx, cert))

	found, err := certs.FindByID(ctx, cert.ID)
	require.NoError(t, err)
	require.NotNil(t, found.MaxWithdrawalLimit)
	assert.True(t, found.WithdrawalLimit().Equal(limit))

	w, err := certificate.NewWithdrawal(userID, cert.ID, decimal.NewFromInt(10000), date(2024, time.March, 1), nil, false, 0)
	require.NoError(t, err)
	require.NoError(t, withdrawals.Save(ctx, w))
	installment, err := certificate.NewWithdrawal(userID, cert.ID, decimal.NewFromInt(6000), date(2024, time.March, 2), nil, true, 3)
	require.NoError(t, err)
	require.NoError(t, withdrawals.Save(ctx, installment))

	salary, err := finance.NewSalary(userID, finance.SalaryDetails{
		Company: "Acme", Amount: decimal.NewFromInt(3000), ReceivedDate: datePtr(2024, time.March, 25), CertificateID: &cert.ID,
	})
	require.NoError(t, err)
	require.NoError(t, salaries.Save(ctx, salary))

	list, err := withdrawals.FindByCertificate(ctx, cert.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	page, total, err := withdrawals.FindAllForUser(ctx, userID, certificate.WithdrawalFilter{
		Filter:   shared.Filter{Page: 1, PageSize: 10},
		IsRepaid: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, page, 2)

	require.NoError(t, certs.Delete(ctx, cert.ID))

	list, err = withdrawals.FindByCertificate(ctx, cert.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	kept, err := salaries.FindByID(ctx, salary.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.CertificateID)

	assert.ErrorIs(t, certs.Delete(ctx, cert.ID), shared.ErrNotFound)
}

func TestGormGoldRepositories(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	purchases := NewGormGoldPurchaseRepository(db)
	sales := NewGormGoldSaleRepository(db)
	userID := uuid.New()

	purchase, err := gold.NewPurchase(userID, gold.PurchaseDetails{
		Grams:        decimal.NewFromInt(10),
		PricePerGram: decimal.NewFromInt(100),
		Purity:       "21K",
		Type:         "bar",
		PurchaseDate: date(2024, time.January, 10),
	})
	require.NoError(t, err)
	require.NoError(t, purchases.Save(ctx, purchase))

	price := decimal.NewFromInt(120)
	sale, err := gold.NewSale(userID, gold.SaleDetails{
		PurchaseID:   &purchase.ID,
		SaleValue:    decimal.NewFromInt(480),
		PricePerGram: &price,
		SaleDate:     date(2024, time.May, 1),
	}, purchase, nil)
	require.NoError(t, err)
	require.NoError(t, sales.Save(ctx, sale))

	loaded, err := purchases.FindByID(ctx, purchase.ID)
	require.NoError(t, err)
	assert.True(t, loaded.InvoiceValue.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "21K", loaded.Purity)

	linked, err := sales.FindByPurchase(ctx, purchase.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.True(t, linked[0].ProfitLoss.Equal(decimal.NewFromInt(80)), linked[0].ProfitLoss.String())

	require.NoError(t, purchases.Delete(ctx, purchase.ID))

	orphan, err := sales.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.PurchaseID)

	all, err := sales.FindAllByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
