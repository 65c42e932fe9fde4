package persistence

import (
	"context"

	"github.com/fintrack/backend/internal/domain/finance"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormGoalRepository implements GoalRepository using GORM
type GormGoalRepository struct {
	db *gorm.DB
}

// NewGormGoalRepository creates a new GormGoalRepository
func NewGormGoalRepository(db *gorm.DB) *GormGoalRepository {
	return &GormGoalRepository{db: db}
}

// FindByID finds a goal by its ID
func (r *GormGoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Goal, error) {
	model, err := findByID[models.GoalModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser lists goals by deadline; goals without one come last
func (r *GormGoalRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]finance.Goal, error) {
	var rows []models.GoalModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("CASE WHEN deadline IS NULL THEN 1 ELSE 0 END").
		Order("deadline ASC").
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.GoalModel).ToDomain), nil
}

// Save creates or updates a goal
func (r *GormGoalRepository) Save(ctx context.Context, goal *finance.Goal) error {
	return r.db.WithContext(ctx).Save(models.GoalModelFromDomain(goal)).Error
}

// Delete deletes a goal
func (r *GormGoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.GoalModel{}, id)
}

// SumCurrent totals the saved amounts of all the user's goals
func (r *GormGoalRepository) SumCurrent(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	return sumColumn(r.db.WithContext(ctx).Model(&models.GoalModel{}).Where("user_id = ?", userID), "current_amount")
}

var _ finance.GoalRepository = (*GormGoalRepository)(nil)
