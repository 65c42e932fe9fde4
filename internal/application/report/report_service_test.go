package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fintrack/backend/internal/application/activity"
	"github.com/fintrack/backend/internal/application/certificate"
	"github.com/fintrack/backend/internal/application/reminder"
	domaincert "github.com/fintrack/backend/internal/domain/certificate"
	"github.com/fintrack/backend/internal/domain/finance"
	"github.com/fintrack/backend/internal/domain/freelance"
	"github.com/fintrack/backend/internal/domain/gold"
	domainreport "github.com/fintrack/backend/internal/domain/report"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportNow = time.Date(2024, time.March, 14, 12, 0, 0, 0, time.UTC)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

type expenseStub struct {
	finance.ExpenseRepository
	total      decimal.Decimal
	categories []finance.CategoryTotal
	months     map[int]decimal.Decimal
	lastRange  shared.DateRange
	err        error
}

func (s *expenseStub) SumByRange(_ context.Context, _ uuid.UUID, r shared.DateRange) (decimal.Decimal, error) {
	s.lastRange = r
	return s.total, s.err
}

func (s *expenseStub) SumByCategory(context.Context, uuid.UUID, shared.DateRange) ([]finance.CategoryTotal, error) {
	return s.categories, nil
}

func (s *expenseStub) SumByMonth(context.Context, uuid.UUID, int) (map[int]decimal.Decimal, error) {
	return s.months, nil
}

type salaryStub struct {
	finance.SalaryRepository
	total    decimal.Decimal
	months   map[int]decimal.Decimal
	lastYear int
}

func (s *salaryStub) SumByRange(context.Context, uuid.UUID, shared.DateRange) (decimal.Decimal, error) {
	return s.total, nil
}

func (s *salaryStub) SumByMonth(_ context.Context, _ uuid.UUID, year int) (map[int]decimal.Decimal, error) {
	s.lastYear = year
	return s.months, nil
}

type revenueStub struct {
	freelance.RevenueRepository
	total decimal.Decimal
}

func (s *revenueStub) SumByRange(context.Context, uuid.UUID, shared.DateRange) (decimal.Decimal, error) {
	return s.total, nil
}

type goalStub struct {
	finance.GoalRepository
	current decimal.Decimal
}

func (s *goalStub) SumCurrent(context.Context, uuid.UUID) (decimal.Decimal, error) {
	return s.current, nil
}

type certificateStub struct {
	domaincert.CertificateRepository
	certs []domaincert.Certificate
}

func (s *certificateStub) FindAllByUser(context.Context, uuid.UUID) ([]domaincert.Certificate, error) {
	return s.certs, nil
}

type withdrawalStub struct {
	domaincert.WithdrawalRepository
	withdrawals []domaincert.Withdrawal
}

func (s *withdrawalStub) FindAllByUser(context.Context, uuid.UUID) ([]domaincert.Withdrawal, error) {
	return s.withdrawals, nil
}

type purchaseStub struct {
	gold.PurchaseRepository
	purchases []gold.Purchase
}

func (s *purchaseStub) FindAllByUser(context.Context, uuid.UUID) ([]gold.Purchase, error) {
	return s.purchases, nil
}

type saleStub struct {
	gold.SaleRepository
	sales []gold.Sale
}

func (s *saleStub) FindAllByUser(context.Context, uuid.UUID) ([]gold.Sale, error) {
	return s.sales, nil
}

type fixture struct {
	expenses *expenseStub
	salaries *salaryStub
	svc      *ReportService
}

func newFixture(t *testing.T, userID uuid.UUID) *fixture {
	t.Helper()

	limit := d(50000)
	cert, err := domaincert.NewCertificate(userID, domaincert.CertificateDetails{
		BankName:           "National Bank",
		CertificateName:    "Platinum",
		Amount:             d(200000),
		MaxWithdrawalLimit: &limit,
	})
	require.NoError(t, err)
	w, err := domaincert.NewWithdrawal(userID, cert.ID, d(10000), reportNow, nil, false, 0)
	require.NoError(t, err)

	purchase, err := gold.NewPurchase(userID, gold.PurchaseDetails{Grams: d(50), PricePerGram: d(500), PurchaseDate: reportNow})
	require.NoError(t, err)
	price := d(500)
	sale, err := gold.NewSale(userID, gold.SaleDetails{PurchaseID: &purchase.ID, SaleValue: d(5000), PricePerGram: &price, SaleDate: reportNow}, purchase, nil)
	require.NoError(t, err)

	f := &fixture{
		expenses: &expenseStub{total: d(700), months: map[int]decimal.Decimal{3: d(700)}},
		salaries: &salaryStub{total: d(1000), months: map[int]decimal.Decimal{1: d(1000), 3: d(1000)}},
	}
	f.svc = NewReportService(Repositories{
		Expenses:     f.expenses,
		Salaries:     f.salaries,
		Goals:        &goalStub{current: d(1500)},
		Revenues:     &revenueStub{total: d(200)},
		Certificates: &certificateStub{certs: []domaincert.Certificate{*cert}},
		Withdrawals:  &withdrawalStub{withdrawals: []domaincert.Withdrawal{*w}},
		Purchases:    &purchaseStub{purchases: []gold.Purchase{*purchase}},
		Sales:        &saleStub{sales: []gold.Sale{*sale}},
	})
	f.svc.now = func() time.Time { return reportNow }
	return f
}

func TestReportService_Overview_DefaultRange(t *testing.T) {
	f := newFixture(t, uuid.New())

	resp, err := f.svc.Overview(context.Background(), uuid.New(), RangeQuery{})
	require.NoError(t, err)

	assert.Equal(t, shared.RangeThisMonth, resp.Range)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), resp.From.Time)
	assert.Equal(t, time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), resp.To.Time)
	assert.True(t, d(500).Equal(resp.Net))
	assert.True(t, d(200).Equal(resp.TotalFreelance))
}

func TestReportService_Overview_UnboundedRange(t *testing.T) {
	f := newFixture(t, uuid.New())

	resp, err := f.svc.Overview(context.Background(), uuid.New(), RangeQuery{Range: "all"})
	require.NoError(t, err)

	assert.Equal(t, "all", resp.Range)
	assert.Nil(t, resp.From)
	assert.Nil(t, resp.To)
	assert.False(t, f.expenses.lastRange.IsBounded())
}

func TestReportService_Stats_SavingsFund(t *testing.T) {
	userID := uuid.New()
	f := newFixture(t, userID)

	resp, err := f.svc.Stats(context.Background(), userID, RangeQuery{Range: shared.RangeThisMonth})
	require.NoError(t, err)

	assert.True(t, d(500).Equal(resp.Balance))
	assert.True(t, d(40000).Equal(resp.SavingsBreakdown.Certificates))
	assert.True(t, d(1500).Equal(resp.SavingsBreakdown.Goals))
	assert.True(t, d(20000).Equal(resp.SavingsBreakdown.Gold))
	assert.True(t, d(61500).Equal(resp.SavingsFund))
}

func TestReportService_Stats_PropagatesErrors(t *testing.T) {
	f := newFixture(t, uuid.New())
	f.expenses.err = errors.New("connection reset")

	_, err := f.svc.Stats(context.Background(), uuid.New(), RangeQuery{})
	assert.EqualError(t, err, "connection reset")
}

func TestReportService_MonthlyComparison(t *testing.T) {
	f := newFixture(t, uuid.New())

	resp, err := f.svc.MonthlyComparison(context.Background(), uuid.New(), YearQuery{})
	require.NoError(t, err)

	assert.Equal(t, 2024, resp.Year)
	assert.Equal(t, 2024, f.salaries.lastYear)
	assert.Len(t, resp.Expenses, 12)
	assert.Len(t, resp.Salaries, 12)
	assert.True(t, resp.Expenses[1].IsZero())
	assert.True(t, d(700).Equal(resp.Expenses[3]))

	resp, err = f.svc.MonthlyComparison(context.Background(), uuid.New(), YearQuery{Year: 2020})
	require.NoError(t, err)
	assert.Equal(t, 2020, resp.Year)
}

func TestReportService_ExpensesByCategory(t *testing.T) {
	f := newFixture(t, uuid.New())
	food := uuid.New()
	f.expenses.categories = []finance.CategoryTotal{
		{CategoryID: &food, CategoryName: "Food", Total: d(500), Count: 4},
		{CategoryName: "", Total: d(200), Count: 1},
	}

	rows, err := f.svc.ExpensesByCategory(context.Background(), uuid.New(), RangeQuery{Range: shared.RangeThisYear})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, &food, rows[0].CategoryID)
	assert.Equal(t, int64(4), rows[0].Count)
}

func TestReportService_Recommendations(t *testing.T) {
	f := newFixture(t, uuid.New())
	f.expenses.total = d(1100)
	f.expenses.categories = []finance.CategoryTotal{{CategoryName: "Rent", Total: d(900)}}

	resp, err := f.svc.Recommendations(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.True(t, d(1200).Equal(resp.Income))
	assert.True(t, decimal.RequireFromString("0.08").Equal(resp.SavingsRate), resp.SavingsRate.String())
	types := make([]string, len(resp.Recommendations))
	for i, r := range resp.Recommendations {
		types[i] = r.Type
	}
	assert.Equal(t, []string{domainreport.RecommendationLowSavingsRate, domainreport.RecommendationCategoryConcentration}, types)
}

type dashboardStubs struct {
	reminders   []reminder.ReminderResponse
	withdrawals []certificate.WithdrawalResponse
	entries     []activity.EntryResponse
	limit       int
}

func (s *dashboardStubs) Upcoming(context.Context, uuid.UUID) ([]reminder.ReminderResponse, error) {
	return s.reminders, nil
}

func (s *dashboardStubs) DangerousWithdrawals(context.Context, uuid.UUID) ([]certificate.WithdrawalResponse, error) {
	return s.withdrawals, nil
}

func (s *dashboardStubs) Recent(_ context.Context, _ uuid.UUID, limit int) ([]activity.EntryResponse, error) {
	s.limit = limit
	return s.entries, nil
}

func TestDashboardService_Get(t *testing.T) {
	userID := uuid.New()
	f := newFixture(t, userID)
	stubs := &dashboardStubs{
		reminders:   []reminder.ReminderResponse{{Title: "Pay rent"}},
		withdrawals: []certificate.WithdrawalResponse{{ID: uuid.New()}},
		entries:     []activity.EntryResponse{{Action: "created"}},
	}

	resp, err := NewDashboardService(f.svc, stubs, stubs, stubs).Get(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, shared.RangeThisMonth, resp.Stats.Range)
	assert.True(t, d(61500).Equal(resp.Stats.SavingsFund))
	assert.Len(t, resp.UpcomingReminders, 1)
	assert.Len(t, resp.DangerousWithdrawals, 1)
	assert.Len(t, resp.RecentActivity, 1)
	assert.Equal(t, RecentActivityLimit, stubs.limit)
}
