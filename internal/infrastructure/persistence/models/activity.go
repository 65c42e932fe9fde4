package models

import (
	"time"

	"github.com/fintrack/backend/internal/domain/activity"
	"github.com/fintrack/backend/internal/domain/setting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ActivityLogModel is the persistence model for activity log entries.
// Rows are append-only.
type ActivityLogModel struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;index:idx_activity_logs_user_created,priority:1"`
	Action      string           `gorm:"type:varchar(100);not null;index"`
	EntityType  string           `gorm:"type:varchar(100);index"`
	EntityID    *uuid.UUID       `gorm:"type:uuid"`
	DetailsJSON string           `gorm:"column:details;type:jsonb;not null;default:'{}'"`
	Amount      *decimal.Decimal `gorm:"type:decimal(18,4)"`
	CreatedAt   time.Time        `gorm:"not null;index:idx_activity_logs_user_created,priority:2"`
}

// TableName returns the table name for GORM
func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

// ToDomain converts the persistence model to a domain Entry.
func (m *ActivityLogModel) ToDomain() *activity.Entry {
	return &activity.Entry{
		ID:         m.ID,
		UserID:     m.UserID,
		Action:     m.Action,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Details:    decodeJSON(m.DetailsJSON),
		Amount:     m.Amount,
		CreatedAt:  m.CreatedAt,
	}
}

// ActivityLogModelFromDomain creates a new persistence model from a domain Entry.
func ActivityLogModelFromDomain(e *activity.Entry) *ActivityLogModel {
	return &ActivityLogModel{
		ID:          e.ID,
		UserID:      e.UserID,
		Action:      e.Action,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		DetailsJSON: encodeJSON(e.Details),
		Amount:      e.Amount,
		CreatedAt:   e.CreatedAt.UTC(),
	}
}

// SettingModel is the persistence model for user settings, one row per (user, key).
type SettingModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key       string    `gorm:"type:varchar(100);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SettingModel) TableName() string {
	return "settings"
}

// ToDomain converts the persistence model to a domain Setting.
func (m *SettingModel) ToDomain() setting.Setting {
	return setting.Setting{UserID: m.UserID, Key: m.Key, Value: m.Value}
}

// SettingModelFromDomain creates a new persistence model from a domain Setting.
func SettingModelFromDomain(s setting.Setting) *SettingModel {
	now := time.Now()
	return &SettingModel{
		UserID:    s.UserID,
		Key:       s.Key,
		Value:     s.Value,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
