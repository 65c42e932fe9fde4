package finance

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseFilter narrows expense listings
type ExpenseFilter struct {
	shared.Filter
	CategoryID *uuid.UUID
	From       *time.Time
	To         *time.Time
	IsMonthly  *bool
}

// SalaryFilter narrows salary listings
type SalaryFilter struct {
	shared.Filter
	From        *time.Time
	To          *time.Time
	IsRecurring *bool
}

// CategoryTotal is one row of the expenses-by-category report
type CategoryTotal struct {
	CategoryID   *uuid.UUID
	CategoryName string
	Total        decimal.Decimal
	Count        int64
}

// ExpenseRepository persists expenses
type ExpenseRepository interface {
	shared.OwnedRepository[Expense, ExpenseFilter]

	// SumByRange totals expense amounts whose date falls within r
	SumByRange(ctx context.Context, userID uuid.UUID, r shared.DateRange) (decimal.Decimal, error)
	// SumByCategory groups totals by category, largest first
	SumByCategory(ctx context.Context, userID uuid.UUID, r shared.DateRange) ([]CategoryTotal, error)
	// SumByMonth returns the totals of a year keyed by month number
	SumByMonth(ctx context.Context, userID uuid.UUID, year int) (map[int]decimal.Decimal, error)
	FindTemplates(ctx context.Context, userID uuid.UUID) ([]Expense, error)
	// SaveGenerated inserts an occurrence unless one already exists for its
	// template and period. It reports whether a row was written.
	SaveGenerated(ctx context.Context, expense *Expense) (bool, error)
}

// SalaryRepository persists salaries
type SalaryRepository interface {
	shared.OwnedRepository[Salary, SalaryFilter]

	SumByRange(ctx context.Context, userID uuid.UUID, r shared.DateRange) (decimal.Decimal, error)
	SumByMonth(ctx context.Context, userID uuid.UUID, year int) (map[int]decimal.Decimal, error)
	FindTemplates(ctx context.Context, userID uuid.UUID) ([]Salary, error)
	SaveGenerated(ctx context.Context, salary *Salary) (bool, error)
}

// CategoryRepository persists expense categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID) ([]Category, error)
	ExistsByName(ctx context.Context, userID uuid.UUID, name string) (bool, error)
	Save(ctx context.Context, category *Category) error
	SaveBatch(ctx context.Context, categories []*Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// GoalRepository persists financial goals
type GoalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Goal, error)
	// FindAllForUser lists goals ordered by deadline, undated goals last
	FindAllForUser(ctx context.Context, userID uuid.UUID) ([]Goal, error)
	Save(ctx context.Context, goal *Goal) error
	Delete(ctx context.Context, id uuid.UUID) error
	SumCurrent(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}
