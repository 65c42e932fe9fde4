package finance

import (
	"context"
	"errors"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/finance"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// ErrInvalidCategory is returned when an expense references a category the user does not own
var ErrInvalidCategory = shared.NewDomainError("INVALID_CATEGORY", "Category not found")

// ExpenseService handles expense operations
type ExpenseService struct {
	common.EventSupport
	expenseRepo  finance.ExpenseRepository
	categoryRepo finance.CategoryRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRepository, categoryRepo finance.CategoryRepository) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

// Create records an expense
func (s *ExpenseService) Create(ctx context.Context, userID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "expense", "create")
	defer span.End()

	if err := s.ensureCategory(ctx, userID, req.CategoryID); err != nil {
		return nil, err
	}

	expense, err := finance.NewExpense(userID, finance.ExpenseDetails{
		Name:       req.Name,
		Amount:     *req.Amount,
		CategoryID: req.CategoryID,
		Date:       req.Date.TimePtr(),
		IsMonthly:  req.IsMonthly,
		AutoAdd:    req.AutoAdd,
		DayOfMonth: req.DayOfMonth,
	})
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.PublishEvents(ctx, expense)

	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// GetByID retrieves one of the user's expenses
func (s *ExpenseService) GetByID(ctx context.Context, userID, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := shared.FindOwned[finance.Expense](ctx, s.expenseRepo, id, userID)
	if err != nil {
		return nil, err
	}
	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// List retrieves a page of the user's expenses, newest first by default
func (s *ExpenseService) List(ctx context.Context, userID uuid.UUID, q ExpenseListQuery) ([]ExpenseResponse, int64, error) {
	categoryID, err := common.ParseOptionalID("category_id", q.CategoryID)
	if err != nil {
		return nil, 0, err
	}
	from, err := common.ParseOptionalDate(q.From)
	if err != nil {
		return nil, 0, err
	}
	to, err := common.ParseOptionalDate(q.To)
	if err != nil {
		return nil, 0, err
	}

	expenses, total, err := s.expenseRepo.FindAllForUser(ctx, userID, finance.ExpenseFilter{
		Filter:     q.Filter("date", "desc"),
		CategoryID: categoryID,
		From:       from,
		To:         to,
		IsMonthly:  q.IsMonthly,
	})
	if err != nil {
		return nil, 0, err
	}

	items := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		items[i] = ToExpenseResponse(&expenses[i])
	}
	return items, total, nil
}

// Update applies the present fields of req to an expense
func (s *ExpenseService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "expense", "update")
	defer span.End()

	expense, err := shared.FindOwned[finance.Expense](ctx, s.expenseRepo, id, userID)
	if err != nil {
		return nil, err
	}

	details := expense.ExpenseDetails
	if req.Name != nil {
		details.Name = *req.Name
	}
	if req.Amount != nil {
		details.Amount = *req.Amount
	}
	if req.CategoryID != nil {
		if err := s.ensureCategory(ctx, userID, req.CategoryID); err != nil {
			return nil, err
		}
		details.CategoryID = req.CategoryID
	}
	if req.Date != nil {
		details.Date = req.Date.TimePtr()
	}
	if req.IsMonthly != nil {
		details.IsMonthly = *req.IsMonthly
	}
	if req.AutoAdd != nil {
		details.AutoAdd = *req.AutoAdd
	}
	if req.DayOfMonth != nil {
		details.DayOfMonth = req.DayOfMonth
	}

	if err := expense.Update(details); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.PublishEvents(ctx, expense)

	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// Delete removes an expense
func (s *ExpenseService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "expense", "delete")
	defer span.End()

	expense, err := shared.FindOwned[finance.Expense](ctx, s.expenseRepo, id, userID)
	if err != nil {
		return err
	}
	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return err
	}
	expense.MarkDeleted()
	s.PublishEvents(ctx, expense)
	return nil
}

func (s *ExpenseService) ensureCategory(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	_, err := shared.FindOwned[finance.Category](ctx, s.categoryRepo, *categoryID, userID)
	if errors.Is(err, shared.ErrNotFound) || errors.Is(err, shared.ErrForbidden) {
		return ErrInvalidCategory
	}
	return err
}
