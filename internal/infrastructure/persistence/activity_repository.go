package persistence

import (
	"context"

	"github.com/fintrack/backend/internal/domain/activity"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormActivityRepository implements activity.Repository using GORM
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// FindByID finds an entry by its ID
func (r *GormActivityRepository) FindByID(ctx context.Context, id uuid.UUID) (*activity.Entry, error) {
	model, err := findByID[models.ActivityLogModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// scoped applies the user and filter conditions shared by list and clear
func (r *GormActivityRepository) scoped(ctx context.Context, userID uuid.UUID, filter activity.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.ActivityLogModel{}).Where("user_id = ?", userID)
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", shared.DateOf(*filter.From))
	}
	if filter.To != nil {
		// To is a calendar date; include the whole day
		rng := shared.DateRange{To: filter.To}
		query = query.Where("created_at < ?", shared.DateOf(*rng.ToExclusive()))
	}
	return query
}

// FindAllForUser lists entries, newest first
func (r *GormActivityRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter activity.Filter) ([]activity.Entry, int64, error) {
	rows, total, err := listPage[models.ActivityLogModel](r.scoped(ctx, userID, filter), filter.Filter, func(q *gorm.DB) *gorm.DB {
		return activitySort.apply(q, filter.Filter)
	})
	if err != nil {
		return nil, 0, err
	}
	return toDomainSlice(rows, (*models.ActivityLogModel).ToDomain), total, nil
}

// FindRecent returns the user's latest entries
func (r *GormActivityRepository) FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]activity.Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []models.ActivityLogModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(rows, (*models.ActivityLogModel).ToDomain), nil
}

// Create appends an entry
func (r *GormActivityRepository) Create(ctx context.Context, entry *activity.Entry) error {
	return r.db.WithContext(ctx).Create(models.ActivityLogModelFromDomain(entry)).Error
}

// Delete deletes one entry
func (r *GormActivityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.ActivityLogModel{}, id)
}

// DeleteMatching removes the user's entries matching filter
func (r *GormActivityRepository) DeleteMatching(ctx context.Context, userID uuid.UUID, filter activity.Filter) (int64, error) {
	result := r.scoped(ctx, userID, filter).Delete(&models.ActivityLogModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

var _ activity.Repository = (*GormActivityRepository)(nil)
