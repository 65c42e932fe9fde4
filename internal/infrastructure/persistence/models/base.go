package models

import (
	"encoding/json"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel holds the columns every table shares
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// Entity rebuilds the domain identity and timestamps
func (m *BaseModel) Entity() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// SetEntity copies identity and timestamps from e
func (m *BaseModel) SetEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// OwnedModel is the base of every user-owned table
type OwnedModel struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// SetOwned copies identity, timestamps and owner from o
func (m *OwnedModel) SetOwned(o shared.OwnedAggregateRoot) {
	m.SetEntity(o.BaseEntity)
	m.UserID = o.UserID
}

// ToOwned rebuilds the domain OwnedAggregateRoot
func (m *OwnedModel) ToOwned() shared.OwnedAggregateRoot {
	return shared.OwnedAggregateRoot{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.Entity()},
		UserID:            m.UserID,
	}
}

// encodeJSON renders a map for a jsonb column. Nil maps are stored as "{}".
func encodeJSON(v map[string]any) string {
	if len(v) == 0 {
		return "{}"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// decodeJSON parses a jsonb column. Invalid or empty payloads decode to an empty map.
func decodeJSON(raw string) map[string]any {
	v := map[string]any{}
	if raw == "" || raw == "{}" || raw == "null" {
		return v
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil || v == nil {
		return map[string]any{}
	}
	return v
}

// All returns every model, in dependency order, for AutoMigrate
func All() []any {
	return []any{
		&UserModel{},
		&CategoryModel{},
		&CertificateModel{},
		&ExpenseModel{},
		&SalaryModel{},
		&GoalModel{},
		&WithdrawalModel{},
		&GoldPurchaseModel{},
		&GoldSaleModel{},
		&RevenueModel{},
		&PaymentModel{},
		&SubscriptionModel{},
		&ReminderModel{},
		&NotificationModel{},
		&ActivityLogModel{},
		&SettingModel{},
	}
}
