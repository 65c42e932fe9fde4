package finance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fintrack/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type generatedCounter struct {
	byKind map[string]int
}

func (c *generatedCounter) RecordGenerated(_ context.Context, kind string, n int) {
	if c.byKind == nil {
		c.byKind = map[string]int{}
	}
	c.byKind[kind] += n
}

// occurrenceStore mimics the unique (user, template, period) index
type occurrenceStore struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (s *occurrenceStore) insert(templateID *uuid.UUID, period string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen == nil {
		s.seen = map[string]bool{}
	}
	key := templateID.String() + "/" + period
	if s.seen[key] {
		return false
	}
	s.seen[key] = true
	return true
}

func TestRecurringService_GenerateIsIdempotent(t *testing.T) {
	userID := uuid.New()
	rent, err := finance.NewExpense(userID, finance.ExpenseDetails{Name: "Rent", Amount: dec(900), IsMonthly: true, AutoAdd: true, DayOfMonth: intPtr(31)})
	require.NoError(t, err)
	pay, err := finance.NewSalary(userID, finance.SalaryDetails{Company: "Acme", Amount: dec(5000), IsRecurring: true, DayOfMonth: intPtr(30)})
	require.NoError(t, err)

	store := &occurrenceStore{}
	var generatedDates []time.Time

	expenseRepo := new(MockExpenseRepository)
	expenseRepo.On("FindTemplates", mock.Anything, userID).Return([]finance.Expense{*rent}, nil)
	expenseRepo.On("SaveGenerated", mock.Anything, mock.AnythingOfType("*finance.Expense")).
		Return(func(_ context.Context, e *finance.Expense) bool {
			generatedDates = append(generatedDates, *e.Date)
			return store.insert(e.TemplateID, e.Period)
		}, nil)

	salaryRepo := new(MockSalaryRepository)
	salaryRepo.On("FindTemplates", mock.Anything, userID).Return([]finance.Salary{*pay}, nil)
	salaryRepo.On("SaveGenerated", mock.Anything, mock.AnythingOfType("*finance.Salary")).
		Return(func(_ context.Context, s *finance.Salary) bool {
			return store.insert(s.TemplateID, s.Period)
		}, nil)

	metrics := &generatedCounter{}
	svc := NewRecurringService(expenseRepo, salaryRepo, zap.NewNop())
	svc.SetMetrics(metrics)

	first, err := svc.Generate(context.Background(), userID, GenerateRequest{Period: "2024-02"})
	require.NoError(t, err)
	assert.Equal(t, GenerateResult{Period: "2024-02", ExpensesCreated: 1, SalariesCreated: 1}, *first)
	require.NotEmpty(t, generatedDates)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), generatedDates[0], "day is clamped to the month")

	second, err := svc.Generate(context.Background(), userID, GenerateRequest{Period: "2024-02"})
	require.NoError(t, err)
	assert.Equal(t, GenerateResult{Period: "2024-02", Skipped: 2}, *second)

	assert.Equal(t, 1, metrics.byKind[KindExpense])
	assert.Equal(t, 1, metrics.byKind[KindSalary])
}

func TestRecurringService_DefaultsToCurrentMonth(t *testing.T) {
	userID := uuid.New()
	expenseRepo := new(MockExpenseRepository)
	expenseRepo.On("FindTemplates", mock.Anything, userID).Return([]finance.Expense{}, nil)
	salaryRepo := new(MockSalaryRepository)
	salaryRepo.On("FindTemplates", mock.Anything, userID).Return([]finance.Salary{}, nil)

	svc := NewRecurringService(expenseRepo, salaryRepo, nil)
	svc.now = func() time.Time { return time.Date(2025, time.November, 14, 9, 0, 0, 0, time.UTC) }

	result, err := svc.Generate(context.Background(), userID, GenerateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2025-11", result.Period)
}

func TestRecurringService_Errors(t *testing.T) {
	userID := uuid.New()
	svc := NewRecurringService(new(MockExpenseRepository), new(MockSalaryRepository), nil)

	_, err := svc.Generate(context.Background(), userID, GenerateRequest{Period: "2024-13"})
	assert.Error(t, err)

	expenseRepo := new(MockExpenseRepository)
	expenseRepo.On("FindTemplates", mock.Anything, userID).Return([]finance.Expense{}, errors.New("db down"))
	svc = NewRecurringService(expenseRepo, new(MockSalaryRepository), nil)
	_, err = svc.Generate(context.Background(), userID, GenerateRequest{Period: "2024-01"})
	assert.EqualError(t, err, "db down")
}
