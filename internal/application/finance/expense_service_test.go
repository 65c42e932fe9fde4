package finance

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/finance"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var expenseDay = time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)

func newTestExpense(t *testing.T, userID uuid.UUID) *finance.Expense {
	t.Helper()
	e, err := finance.NewExpense(userID, finance.ExpenseDetails{Name: "Groceries", Amount: dec(120), Date: &expenseDay})
	require.NoError(t, err)
	e.ClearDomainEvents()
	return e
}

func TestExpenseService_Create_RoundTrip(t *testing.T) {
	userID := uuid.New()
	category, err := finance.NewCategory(userID, "Food", "utensils", "#f97316")
	require.NoError(t, err)

	expenseRepo := new(MockExpenseRepository)
	categoryRepo := new(MockCategoryRepository)
	categoryRepo.On("FindByID", mock.Anything, category.ID).Return(category, nil)
	expenseRepo.On("Save", mock.Anything, mock.AnythingOfType("*finance.Expense")).Return(nil)

	pub := testutil.NewEventRecorder()
	svc := NewExpenseService(expenseRepo, categoryRepo)
	svc.SetEventPublisher(pub)

	resp, err := svc.Create(context.Background(), userID, CreateExpenseRequest{
		Name:       "Groceries",
		Amount:     decPtr(120),
		CategoryID: &category.ID,
		Date:       &common.Date{Time: expenseDay},
	})

	require.NoError(t, err)
	assert.True(t, dec(120).Equal(resp.Amount))
	assert.Equal(t, category.ID, *resp.CategoryID)
	assert.Equal(t, expenseDay, resp.Date.Time)
	assert.Equal(t, []string{"expense.created"}, pub.Types())
	expenseRepo.AssertExpectations(t)
}

func TestExpenseService_Create_ForeignCategory(t *testing.T) {
	category, err := finance.NewCategory(uuid.New(), "Food", "", "")
	require.NoError(t, err)

	expenseRepo := new(MockExpenseRepository)
	categoryRepo := new(MockCategoryRepository)
	categoryRepo.On("FindByID", mock.Anything, category.ID).Return(category, nil)

	svc := NewExpenseService(expenseRepo, categoryRepo)
	_, err = svc.Create(context.Background(), uuid.New(), CreateExpenseRequest{
		Name:       "Lunch",
		Amount:     decPtr(10),
		CategoryID: &category.ID,
		Date:       &common.Date{Time: expenseDay},
	})

	assert.ErrorIs(t, err, ErrInvalidCategory)
	expenseRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestExpenseService_Create_Validation(t *testing.T) {
	svc := NewExpenseService(new(MockExpenseRepository), new(MockCategoryRepository))

	t.Run("date required for one-off expenses", func(t *testing.T) {
		_, err := svc.Create(context.Background(), uuid.New(), CreateExpenseRequest{Name: "Taxi", Amount: decPtr(5)})
		assert.Error(t, err)
	})

	t.Run("day of month required for templates", func(t *testing.T) {
		_, err := svc.Create(context.Background(), uuid.New(), CreateExpenseRequest{Name: "Rent", Amount: decPtr(900), IsMonthly: true, AutoAdd: true})
		assert.Error(t, err)
	})

	t.Run("negative amount", func(t *testing.T) {
		_, err := svc.Create(context.Background(), uuid.New(), CreateExpenseRequest{Name: "Refund", Amount: decPtr(-1), Date: &common.Date{Time: expenseDay}})
		assert.Error(t, err)
	})
}

func TestExpenseService_Ownership(t *testing.T) {
	owner := uuid.New()
	expense := newTestExpense(t, owner)

	repo := new(MockExpenseRepository)
	repo.On("FindByID", mock.Anything, expense.ID).Return(expense, nil)
	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
	svc := NewExpenseService(repo, new(MockCategoryRepository))

	_, err := svc.GetByID(context.Background(), owner, expense.ID)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), uuid.New(), expense.ID)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = svc.Update(context.Background(), uuid.New(), expense.ID, UpdateExpenseRequest{})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.New(), expense.ID), shared.ErrForbidden)

	_, err = svc.GetByID(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestExpenseService_Update_Partial(t *testing.T) {
	owner := uuid.New()
	expense := newTestExpense(t, owner)

	repo := new(MockExpenseRepository)
	repo.On("FindByID", mock.Anything, expense.ID).Return(expense, nil)
	repo.On("Save", mock.Anything, expense).Return(nil)
	pub := testutil.NewEventRecorder()
	svc := NewExpenseService(repo, new(MockCategoryRepository))
	svc.SetEventPublisher(pub)

	resp, err := svc.Update(context.Background(), owner, expense.ID, UpdateExpenseRequest{Amount: decPtr(150)})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", resp.Name, "absent fields stay unchanged")
	assert.True(t, dec(150).Equal(resp.Amount))
	assert.Equal(t, expenseDay, resp.Date.Time)
	assert.Equal(t, []string{"expense.updated"}, pub.Types())

	t.Run("turning into a template requires a day", func(t *testing.T) {
		yes := true
		_, err := svc.Update(context.Background(), owner, expense.ID, UpdateExpenseRequest{IsMonthly: &yes, AutoAdd: &yes})
		assert.Error(t, err)

		resp, err := svc.Update(context.Background(), owner, expense.ID, UpdateExpenseRequest{IsMonthly: &yes, AutoAdd: &yes, DayOfMonth: intPtr(28)})
		require.NoError(t, err)
		assert.Equal(t, 28, *resp.DayOfMonth)
	})
}

func TestExpenseService_Delete(t *testing.T) {
	owner := uuid.New()
	expense := newTestExpense(t, owner)

	repo := new(MockExpenseRepository)
	repo.On("FindByID", mock.Anything, expense.ID).Return(expense, nil)
	repo.On("Delete", mock.Anything, expense.ID).Return(nil)
	pub := testutil.NewEventRecorder()
	svc := NewExpenseService(repo, new(MockCategoryRepository))
	svc.SetEventPublisher(pub)

	require.NoError(t, svc.Delete(context.Background(), owner, expense.ID))
	assert.Equal(t, []string{"expense.deleted"}, pub.Types())
	repo.AssertExpectations(t)
}

func TestExpenseService_List(t *testing.T) {
	owner := uuid.New()
	expense := newTestExpense(t, owner)
	categoryID := uuid.New()

	repo := new(MockExpenseRepository)
	repo.On("FindAllForUser", mock.Anything, owner, mock.MatchedBy(func(f finance.ExpenseFilter) bool {
		return f.OrderBy == "date" && f.OrderDir == "desc" &&
			f.CategoryID != nil && *f.CategoryID == categoryID &&
			f.From != nil && f.From.Equal(expenseDay) && f.To == nil &&
			f.PageSize == 50
	})).Return([]finance.Expense{*expense}, int64(1), nil)

	svc := NewExpenseService(repo, new(MockCategoryRepository))
	items, total, err := svc.List(context.Background(), owner, ExpenseListQuery{
		ListQuery:  common.ListQuery{Page: 1, PageSize: 50},
		CategoryID: categoryID.String(),
		From:       "2024-04-02",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, expense.ID, items[0].ID)

	_, _, err = svc.List(context.Background(), owner, ExpenseListQuery{CategoryID: "x"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
