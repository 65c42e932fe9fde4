package models

import (
	"time"

	"github.com/fintrack/backend/internal/domain/notification"
	"github.com/fintrack/backend/internal/domain/reminder"
	"github.com/fintrack/backend/internal/domain/whatsapp"
	"github.com/shopspring/decimal"
)

// SubscriptionModel is the persistence model for WhatsApp subscriptions.
type SubscriptionModel struct {
	OwnedModel
	PhoneNumber string          `gorm:"type:varchar(30);not null"`
	Plan        string          `gorm:"type:varchar(100)"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StartDate   *time.Time      `gorm:"type:date"`
	EndDate     *time.Time      `gorm:"type:date"`
	IsActive    bool            `gorm:"not null;default:true;index"`
	Notes       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SubscriptionModel) TableName() string {
	return "whatsapp_subscriptions"
}

// ToDomain converts the persistence model to a domain Subscription.
func (m *SubscriptionModel) ToDomain() *whatsapp.Subscription {
	return &whatsapp.Subscription{
		OwnedAggregateRoot: m.ToOwned(),
		SubscriptionDetails: whatsapp.SubscriptionDetails{
			PhoneNumber: m.PhoneNumber,
			Plan:        m.Plan,
			Amount:      m.Amount,
			StartDate:   m.StartDate,
			EndDate:     m.EndDate,
			IsActive:    m.IsActive,
			Notes:       m.Notes,
		},
	}
}

// SubscriptionModelFromDomain creates a new persistence model from a domain Subscription.
func SubscriptionModelFromDomain(s *whatsapp.Subscription) *SubscriptionModel {
	m := &SubscriptionModel{
		PhoneNumber: s.PhoneNumber,
		Plan:        s.Plan,
		Amount:      s.Amount,
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		IsActive:    s.IsActive,
		Notes:       s.Notes,
	}
	m.SetOwned(s.OwnedAggregateRoot)
	return m
}

// ReminderModel is the persistence model for reminders.
type ReminderModel struct {
	OwnedModel
	Title   string     `gorm:"type:varchar(255);not null"`
	Notes   string     `gorm:"type:text"`
	DueDate *time.Time `gorm:"type:date;index"`
	IsDone  bool       `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ReminderModel) TableName() string {
	return "reminders"
}

// ToDomain converts the persistence model to a domain Reminder.
func (m *ReminderModel) ToDomain() *reminder.Reminder {
	return &reminder.Reminder{
		OwnedAggregateRoot: m.ToOwned(),
		Title:              m.Title,
		Notes:              m.Notes,
		DueDate:            m.DueDate,
		IsDone:             m.IsDone,
	}
}

// ReminderModelFromDomain creates a new persistence model from a domain Reminder.
func ReminderModelFromDomain(r *reminder.Reminder) *ReminderModel {
	m := &ReminderModel{
		Title:   r.Title,
		Notes:   r.Notes,
		DueDate: r.DueDate,
		IsDone:  r.IsDone,
	}
	m.SetOwned(r.OwnedAggregateRoot)
	return m
}

// NotificationModel is the persistence model for notifications.
type NotificationModel struct {
	OwnedModel
	Title    string `gorm:"type:varchar(255);not null"`
	Body     string `gorm:"type:text"`
	DataJSON string `gorm:"column:data;type:jsonb;not null;default:'{}'"`
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification.
func (m *NotificationModel) ToDomain() *notification.Notification {
	return &notification.Notification{
		OwnedAggregateRoot: m.ToOwned(),
		Title:              m.Title,
		Body:               m.Body,
		Data:               decodeJSON(m.DataJSON),
	}
}

// NotificationModelFromDomain creates a new persistence model from a domain Notification.
func NotificationModelFromDomain(n *notification.Notification) *NotificationModel {
	m := &NotificationModel{
		Title:    n.Title,
		Body:     n.Body,
		DataJSON: encodeJSON(n.Data),
	}
	m.SetOwned(n.OwnedAggregateRoot)
	return m
}
