package finance

import (
	"context"

	"github.com/fintrack/backend/internal/domain/certificate"
	"github.com/fintrack/backend/internal/domain/finance"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockExpenseRepository is a mock implementation of finance.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter finance.ExpenseFilter) ([]finance.Expense, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]finance.Expense), args.Get(1).(int64), args.Error(2)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	return m.Called(ctx, expense).Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockExpenseRepository) SumByRange(ctx context.Context, userID uuid.UUID, r shared.DateRange) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, r)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExpenseRepository) SumByCategory(ctx context.Context, userID uuid.UUID, r shared.DateRange) ([]finance.CategoryTotal, error) {
	args := m.Called(ctx, userID, r)
	return args.Get(0).([]finance.CategoryTotal), args.Error(1)
}

func (m *MockExpenseRepository) SumByMonth(ctx context.Context, userID uuid.UUID, year int) (map[int]decimal.Decimal, error) {
	args := m.Called(ctx, userID, year)
	return args.Get(0).(map[int]decimal.Decimal), args.Error(1)
}

func (m *MockExpenseRepository) FindTemplates(ctx context.Context, userID uuid.UUID) ([]finance.Expense, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SaveGenerated(ctx context.Context, expense *finance.Expense) (bool, error) {
	args := m.Called(ctx, expense)
	if fn, ok := args.Get(0).(func(context.Context, *finance.Expense) bool); ok {
		return fn(ctx, expense), args.Error(1)
	}
	return args.Bool(0), args.Error(1)
}

// MockSalaryRepository is a mock implementation of finance.SalaryRepository
type MockSalaryRepository struct {
	mock.Mock
}

func (m *MockSalaryRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Salary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Salary), args.Error(1)
}

func (m *MockSalaryRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter finance.SalaryFilter) ([]finance.Salary, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]finance.Salary), args.Get(1).(int64), args.Error(2)
}

func (m *MockSalaryRepository) Save(ctx context.Context, salary *finance.Salary) error {
	return m.Called(ctx, salary).Error(0)
}

func (m *MockSalaryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSalaryRepository) SumByRange(ctx context.Context, userID uuid.UUID, r shared.DateRange) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, r)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSalaryRepository) SumByMonth(ctx context.Context, userID uuid.UUID, year int) (map[int]decimal.Decimal, error) {
	args := m.Called(ctx, userID, year)
	return args.Get(0).(map[int]decimal.Decimal), args.Error(1)
}

func (m *MockSalaryRepository) FindTemplates(ctx context.Context, userID uuid.UUID) ([]finance.Salary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]finance.Salary), args.Error(1)
}

func (m *MockSalaryRepository) SaveGenerated(ctx context.Context, salary *finance.Salary) (bool, error) {
	args := m.Called(ctx, salary)
	if fn, ok := args.Get(0).(func(context.Context, *finance.Salary) bool); ok {
		return fn(ctx, salary), args.Error(1)
	}
	return args.Bool(0), args.Error(1)
}

// MockCategoryRepository is a mock implementation of finance.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]finance.Category, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]finance.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, userID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *finance.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) SaveBatch(ctx context.Context, categories []*finance.Category) error {
	return m.Called(ctx, categories).Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockGoalRepository is a mock implementation of finance.GoalRepository
type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Goal), args.Error(1)
}

func (m *MockGoalRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]finance.Goal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]finance.Goal), args.Error(1)
}

func (m *MockGoalRepository) Save(ctx context.Context, goal *finance.Goal) error {
	return m.Called(ctx, goal).Error(0)
}

func (m *MockGoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGoalRepository) SumCurrent(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockCertificateRepository is a mock implementation of certificate.CertificateRepository
type MockCertificateRepository struct {
	mock.Mock
}

func (m *MockCertificateRepository) FindByID(ctx context.Context, id uuid.UUID) (*certificate.Certificate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*certificate.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter certificate.CertificateFilter) ([]certificate.Certificate, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]certificate.Certificate), args.Get(1).(int64), args.Error(2)
}

func (m *MockCertificateRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]certificate.Certificate, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]certificate.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) Save(ctx context.Context, c *certificate.Certificate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCertificateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func intPtr(v int) *int { return &v }
