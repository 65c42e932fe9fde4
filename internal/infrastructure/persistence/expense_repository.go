package persistence

import (
	"context"

	"github.com/fintrack/backend/internal/domain/finance"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	model, err := findByID[models.ExpenseModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser lists the user's expenses, newest date first by default
func (r *GormExpenseRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter finance.ExpenseFilter) ([]finance.Expense, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).Where("user_id = ?", userID)
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.IsMonthly != nil {
		query = query.Where("is_monthly = ?", *filter.IsMonthly)
	}
	query = applyDateRange(query, "date", filter.From, filter.To)
	query = applySearch(query, filter.Search, "name")

	rows, total, err := listPage[models.ExpenseModel](query, filter.Filter, func(q *gorm.DB) *gorm.DB {
		return expenseSort.apply(q, filter.Filter)
	})
	if err != nil {
		return nil, 0, err
	}
	return toDomainSlice(rows, (*models.ExpenseModel).ToDomain), total, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	return r.db.WithContext(ctx).Save(models.ExpenseModelFromDomain(expense)).Error
}

// SaveGenerated inserts a generated occurrence unless its (template, period) exists
func (r *GormExpenseRepository) SaveGenerated(ctx context.Context, expense *finance.Expense) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(models.ExpenseModelFromDomain(expense))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete deletes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.ExpenseModel{}, id)
}

// FindTemplates returns the user's monthly auto-add templates
func (r *GormExpenseRepository) FindTemplates(ctx context.Context, userID uuid.UUID) ([]finance.Expense, error) {
	var rows []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_monthly = ? AND auto_add = ? AND template_id IS NULL", userID, true, true).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.ExpenseModel).ToDomain), nil
}

// SumByRange totals the user's dated expenses within r
func (r *GormExpenseRepository) SumByRange(ctx context.Context, userID uuid.UUID, rng shared.DateRange) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Where("user_id = ? AND date IS NOT NULL", userID)
	return sumColumn(applyDateRange(query, "date", rng.From, rng.To), "amount")
}

// SumByCategory groups the user's expenses in r by category, largest total first
func (r *GormExpenseRepository) SumByCategory(ctx context.Context, userID uuid.UUID, rng shared.DateRange) ([]finance.CategoryTotal, error) {
	query := r.db.WithContext(ctx).
		Table("expenses AS e").
		Joins("LEFT JOIN expense_categories AS c ON c.id = e.category_id").
		Where("e.user_id = ? AND e.date IS NOT NULL", userID)
	query = applyDateRange(query, "e.date", rng.From, rng.To)

	var rows []struct {
		CategoryID   *uuid.UUID
		CategoryName *string
		Total        decimal.Decimal
		Count        int64
	}
	err := query.
		Select("e.category_id AS category_id, c.name AS category_name, COALESCE(SUM(e.amount), 0) AS total, COUNT(*) AS count").
		Group("e.category_id, c.name").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make([]finance.CategoryTotal, 0, len(rows))
	for _, row := range rows {
		name := "Uncategorized"
		if row.CategoryName != nil {
			name = *row.CategoryName
		}
		totals = append(totals, finance.CategoryTotal{
			CategoryID:   row.CategoryID,
			CategoryName: name,
			Total:        row.Total,
			Count:        row.Count,
		})
	}
	return totals, nil
}

// SumByMonth returns the user's expense totals per month of year
func (r *GormExpenseRepository) SumByMonth(ctx context.Context, userID uuid.UUID, year int) (map[int]decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).Where("user_id = ? AND date IS NOT NULL", userID)
	return sumByMonth(query, "date", "amount", year)
}

var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)
