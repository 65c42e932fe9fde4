package persistence

import (
	"context"
	"strings"

	"github.com/fintrack/backend/internal/domain/finance"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Category, error) {
	model, err := findByID[models.CategoryModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser lists the user's categories ordered by name
func (r *GormCategoryRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]finance.Category, error) {
	var rows []models.CategoryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.CategoryModel).ToDomain), nil
}

// ExistsByName checks whether the user already has a category with this name, ignoring case
func (r *GormCategoryRepository) ExistsByName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CategoryModel{}).
		Where("user_id = ? AND LOWER(name) = ?", userID, strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *finance.Category) error {
	return r.db.WithContext(ctx).Save(models.CategoryModelFromDomain(category)).Error
}

// SaveBatch creates multiple categories
func (r *GormCategoryRepository) SaveBatch(ctx context.Context, categories []*finance.Category) error {
	if len(categories) == 0 {
		return nil
	}
	rows := make([]*models.CategoryModel, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, models.CategoryModelFromDomain(c))
	}
	return r.db.WithContext(ctx).Create(rows).Error
}

// Delete deletes a category and detaches its expenses
func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ExpenseModel{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return deleteByID(ctx, tx, &models.CategoryModel{}, id)
	})
}

var _ finance.CategoryRepository = (*GormCategoryRepository)(nil)
