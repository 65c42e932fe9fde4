package models

import (
	"time"

	"github.com/fintrack/backend/internal/domain/freelance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RevenueModel is the persistence model for freelance revenues.
type RevenueModel struct {
	OwnedModel
	Title  string          `gorm:"type:varchar(255);not null"`
	Client string          `gorm:"type:varchar(255)"`
	Amount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Date   time.Time       `gorm:"type:date;not null;index"`
	Notes  string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RevenueModel) TableName() string {
	return "freelance_revenues"
}

// ToDomain converts the persistence model to a domain Revenue.
func (m *RevenueModel) ToDomain() *freelance.Revenue {
	return &freelance.Revenue{
		OwnedAggregateRoot: m.ToOwned(),
		RevenueDetails: freelance.RevenueDetails{
			Title:  m.Title,
			Client: m.Client,
			Amount: m.Amount,
			Date:   m.Date,
			Notes:  m.Notes,
		},
	}
}

// RevenueModelFromDomain creates a new persistence model from a domain Revenue.
func RevenueModelFromDomain(r *freelance.Revenue) *RevenueModel {
	m := &RevenueModel{
		Title:  r.Title,
		Client: r.Client,
		Amount: r.Amount,
		Date:   r.Date,
		Notes:  r.Notes,
	}
	m.SetOwned(r.OwnedAggregateRoot)
	return m
}

// PaymentModel is the persistence model for freelance payments.
type PaymentModel struct {
	OwnedModel
	RevenueID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Date      time.Time       `gorm:"type:date;not null"`
	Notes     string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "freelance_payments"
}

// ToDomain converts the persistence model to a domain Payment.
func (m *PaymentModel) ToDomain() *freelance.Payment {
	return &freelance.Payment{
		OwnedAggregateRoot: m.ToOwned(),
		RevenueID:          m.RevenueID,
		Amount:             m.Amount,
		Date:               m.Date,
		Notes:              m.Notes,
	}
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *freelance.Payment) *PaymentModel {
	m := &PaymentModel{
		RevenueID: p.RevenueID,
		Amount:    p.Amount,
		Date:      p.Date,
		Notes:     p.Notes,
	}
	m.SetOwned(p.OwnedAggregateRoot)
	return m
}
