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

// GormSalaryRepository implements SalaryRepository using GORM
type GormSalaryRepository struct {
	db *gorm.DB
}

// NewGormSalaryRepository creates a new GormSalaryRepository
func NewGormSalaryRepository(db *gorm.DB) *GormSalaryRepository {
	return &GormSalaryRepository{db: db}
}

// FindByID finds a salary by its ID
func (r *GormSalaryRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Salary, error) {
	model, err := findByID[models.SalaryModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser lists the user's salaries, latest received first
func (r *GormSalaryRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter finance.SalaryFilter) ([]finance.Salary, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SalaryModel{}).Where("user_id = ?", userID)
	if filter.IsRecurring != nil {
		query = query.Where("is_recurring = ?", *filter.IsRecurring)
	}
	query = applyDateRange(query, "received_date", filter.From, filter.To)
	query = applySearch(query, filter.Search, "company", "notes")

	rows, total, err := listPage[models.SalaryModel](query, filter.Filter, func(q *gorm.DB) *gorm.DB {
		return salarySort.apply(q, filter.Filter)
	})
	if err != nil {
		return nil, 0, err
	}
	return toDomainSlice(rows, (*models.SalaryModel).ToDomain), total, nil
}

// Save creates or updates a salary
func (r *GormSalaryRepository) Save(ctx context.Context, salary *finance.Salary) error {
	return r.db.WithContext(ctx).Save(models.SalaryModelFromDomain(salary)).Error
}

// SaveGenerated inserts a generated occurrence unless its (template, period) exists
func (r *GormSalaryRepository) SaveGenerated(ctx context.Context, salary *finance.Salary) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(models.SalaryModelFromDomain(salary))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete deletes a salary
func (r *GormSalaryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.SalaryModel{}, id)
}

// FindTemplates returns the user's recurring salary templates
func (r *GormSalaryRepository) FindTemplates(ctx context.Context, userID uuid.UUID) ([]finance.Salary, error) {
	var rows []models.SalaryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_recurring = ? AND template_id IS NULL", userID, true).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.SalaryModel).ToDomain), nil
}

// SumByRange totals salaries received within r. Templates have no received
// date and never count.
func (r *GormSalaryRepository) SumByRange(ctx context.Context, userID uuid.UUID, rng shared.DateRange) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&models.SalaryModel{}).
		Where("user_id = ? AND received_date IS NOT NULL", userID)
	return sumColumn(applyDateRange(query, "received_date", rng.From, rng.To), "amount")
}

// SumByMonth returns the user's salary totals per month of year
func (r *GormSalaryRepository) SumByMonth(ctx context.Context, userID uuid.UUID, year int) (map[int]decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&models.SalaryModel{}).Where("user_id = ? AND received_date IS NOT NULL", userID)
	return sumByMonth(query, "received_date", "amount", year)
}

var _ finance.SalaryRepository = (*GormSalaryRepository)(nil)
