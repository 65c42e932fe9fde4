package persistence

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/domain/setting"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingRepository implements setting.Repository using GORM
type GormSettingRepository struct {
	db *gorm.DB
}

// NewGormSettingRepository creates a new GormSettingRepository
func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// FindAllForUser returns every setting of the user ordered by key
func (r *GormSettingRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]setting.Setting, error) {
	var rows []models.SettingModel
	if err := r.db.WithContext(ctx).
		Where(&models.SettingModel{UserID: userID}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	settings := make([]setting.Setting, 0, len(rows))
	for i := range rows {
		settings = append(settings, rows[i].ToDomain())
	}
	return settings, nil
}

// FindByKey returns one setting
func (r *GormSettingRepository) FindByKey(ctx context.Context, userID uuid.UUID, key string) (*setting.Setting, error) {
	var model models.SettingModel
	if err := r.db.WithContext(ctx).
		Where(&models.SettingModel{UserID: userID, Key: key}).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	s := model.ToDomain()
	return &s, nil
}

// Upsert writes every setting in one transaction, replacing existing values
func (r *GormSettingRepository) Upsert(ctx context.Context, settings []setting.Setting) error {
	if len(settings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range settings {
			model := models.SettingModelFromDomain(s)
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
				DoUpdates: clause.Assignments(map[string]any{"value": model.Value, "updated_at": time.Now()}),
			}).Create(model).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes one setting
func (r *GormSettingRepository) Delete(ctx context.Context, userID uuid.UUID, key string) error {
	result := r.db.WithContext(ctx).Where(&models.SettingModel{UserID: userID, Key: key}).Delete(&models.SettingModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ setting.Repository = (*GormSettingRepository)(nil)
