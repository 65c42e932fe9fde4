package freelance

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/freelance"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRevenueRepository is a mock implementation of freelance.RevenueRepository
type MockRevenueRepository struct {
	mock.Mock
}

func (m *MockRevenueRepository) FindByID(ctx context.Context, id uuid.UUID) (*freelance.Revenue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*freelance.Revenue), args.Error(1)
}

func (m *MockRevenueRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter freelance.RevenueFilter) ([]freelance.Revenue, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]freelance.Revenue), args.Get(1).(int64), args.Error(2)
}

func (m *MockRevenueRepository) Save(ctx context.Context, r *freelance.Revenue) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRevenueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRevenueRepository) SumByRange(ctx context.Context, userID uuid.UUID, r shared.DateRange) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, r)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockPaymentRepository is a mock implementation of freelance.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*freelance.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*freelance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter freelance.PaymentFilter) ([]freelance.Payment, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]freelance.Payment), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentRepository) FindByRevenues(ctx context.Context, revenueIDs []uuid.UUID) ([]freelance.Payment, error) {
	args := m.Called(ctx, revenueIDs)
	return args.Get(0).([]freelance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, p *freelance.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

var workDay = time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)

func newTestRevenue(t *testing.T, userID uuid.UUID, amount int64) *freelance.Revenue {
	t.Helper()
	r, err := freelance.NewRevenue(userID, freelance.RevenueDetails{
		Title:  "Website redesign",
		Client: "Acme",
		Amount: decimal.NewFromInt(amount),
		Date:   workDay,
	})
	require.NoError(t, err)
	r.ClearDomainEvents()
	return r
}

func newTestPayment(t *testing.T, r *freelance.Revenue, amount int64) freelance.Payment {
	t.Helper()
	p, err := freelance.NewPayment(r, decimal.NewFromInt(amount), workDay, "")
	require.NoError(t, err)
	p.ClearDomainEvents()
	return *p
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestFreelanceService_GetRevenue_Balance(t *testing.T) {
	userID := uuid.New()
	r := newTestRevenue(t, userID, 5000)

	revenues := new(MockRevenueRepository)
	payments := new(MockPaymentRepository)
	revenues.On("FindByID", mock.Anything, r.ID).Return(r, nil)
	payments.On("FindByRevenues", mock.Anything, []uuid.UUID{r.ID}).Return([]freelance.Payment{
		newTestPayment(t, r, 2000),
		newTestPayment(t, r, 1000),
	}, nil)

	svc := NewFreelanceService(revenues, payments)
	resp, err := svc.GetRevenue(context.Background(), userID, r.ID)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(3000).Equal(resp.PaidAmount))
	assert.True(t, decimal.NewFromInt(2000).Equal(resp.OutstandingAmount))
}

func TestFreelanceService_ListRevenues_BatchesPayments(t *testing.T) {
	userID := uuid.New()
	a := newTestRevenue(t, userID, 1000)
	b := newTestRevenue(t, userID, 800)

	revenues := new(MockRevenueRepository)
	payments := new(MockPaymentRepository)
	revenues.On("FindAllForUser", mock.Anything, userID, mock.Anything).Return([]freelance.Revenue{*a, *b}, int64(2), nil)
	payments.On("FindByRevenues", mock.Anything, []uuid.UUID{a.ID, b.ID}).Return([]freelance.Payment{
		newTestPayment(t, b, 1000),
	}, nil).Once()

	svc := NewFreelanceService(revenues, payments)
	items, total, err := svc.ListRevenues(context.Background(), userID, RevenueListQuery{Client: "Acme"})

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.True(t, items[0].PaidAmount.IsZero())
	assert.True(t, decimal.NewFromInt(1000).Equal(items[0].OutstandingAmount))
	assert.True(t, items[1].OutstandingAmount.IsZero(), "overpayment clamps to zero")
	payments.AssertExpectations(t)
}

func TestFreelanceService_CreatePayment(t *testing.T) {
	userID := uuid.New()
	r := newTestRevenue(t, userID, 5000)

	revenues := new(MockRevenueRepository)
	payments := new(MockPaymentRepository)
	revenues.On("FindByID", mock.Anything, r.ID).Return(r, nil)
	payments.On("Save", mock.Anything, mock.AnythingOfType("*freelance.Payment")).Return(nil)

	svc := NewFreelanceService(revenues, payments)
	req := CreatePaymentRequest{RevenueID: r.ID, Amount: decPtr(1500), Date: &common.Date{Time: workDay}}

	resp, err := svc.CreatePayment(context.Background(), userID, req)
	require.NoError(t, err)
	assert.Equal(t, r.ID, resp.RevenueID)

	_, err = svc.CreatePayment(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, shared.ErrForbidden)
	payments.AssertNumberOfCalls(t, "Save", 1)
}

func TestFreelanceService_ListPayments_RevenueAlias(t *testing.T) {
	userID := uuid.New()
	r := newTestRevenue(t, userID, 5000)

	revenues := new(MockRevenueRepository)
	payments := new(MockPaymentRepository)
	revenues.On("FindByID", mock.Anything, r.ID).Return(r, nil)
	payments.On("FindAllForUser", mock.Anything, userID, mock.MatchedBy(func(f freelance.PaymentFilter) bool {
		return f.RevenueID != nil && *f.RevenueID == r.ID
	})).Return([]freelance.Payment{newTestPayment(t, r, 100)}, int64(1), nil)

	svc := NewFreelanceService(revenues, payments)

	items, total, err := svc.ListPayments(context.Background(), userID, PaymentListQuery{RevenueIDCamel: r.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)

	_, _, err = svc.ListPayments(context.Background(), uuid.New(), PaymentListQuery{RevenueID: r.ID.String()})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestFreelanceService_UpdateAndDeleteRevenue(t *testing.T) {
	userID := uuid.New()
	r := newTestRevenue(t, userID, 5000)

	revenues := new(MockRevenueRepository)
	payments := new(MockPaymentRepository)
	revenues.On("FindByID", mock.Anything, r.ID).Return(r, nil)
	revenues.On("Save", mock.Anything, r).Return(nil)
	revenues.On("Delete", mock.Anything, r.ID).Return(nil)
	payments.On("FindByRevenues", mock.Anything, []uuid.UUID{r.ID}).Return([]freelance.Payment{}, nil)

	pub := testutil.NewEventRecorder()
	svc := NewFreelanceService(revenues, payments)
	svc.SetEventPublisher(pub)

	client := "Globex"
	resp, err := svc.UpdateRevenue(context.Background(), userID, r.ID, UpdateRevenueRequest{Client: &client, Amount: decPtr(6000)})
	require.NoError(t, err)
	assert.Equal(t, "Globex", resp.Client)
	assert.Equal(t, "Website redesign", resp.Title)
	assert.True(t, decimal.NewFromInt(6000).Equal(resp.OutstandingAmount))

	require.NoError(t, svc.DeleteRevenue(context.Background(), userID, r.ID))
	assert.Equal(t, []string{"freelance_revenue.updated", "freelance_revenue.deleted"}, pub.Types())
}
