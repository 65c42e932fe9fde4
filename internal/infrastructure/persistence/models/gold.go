package models

import (
	"time"

	"github.com/fintrack/backend/internal/domain/gold"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoldPurchaseModel is the persistence model for gold purchases.
type GoldPurchaseModel struct {
	OwnedModel
	Grams        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PricePerGram decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	InvoiceValue decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Purity       string          `gorm:"type:varchar(20)"`
	Type         string          `gorm:"type:varchar(50)"`
	PurchaseDate time.Time       `gorm:"type:date;not null;index"`
	Notes        string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (GoldPurchaseModel) TableName() string {
	return "gold_purchases"
}

// ToDomain converts the persistence model to a domain Purchase.
func (m *GoldPurchaseModel) ToDomain() *gold.Purchase {
	return &gold.Purchase{
		OwnedAggregateRoot: m.ToOwned(),
		Grams:              m.Grams,
		PricePerGram:       m.PricePerGram,
		InvoiceValue:       m.InvoiceValue,
		Purity:             m.Purity,
		Type:               m.Type,
		PurchaseDate:       m.PurchaseDate,
		Notes:              m.Notes,
	}
}

// GoldPurchaseModelFromDomain creates a new persistence model from a domain Purchase.
func GoldPurchaseModelFromDomain(p *gold.Purchase) *GoldPurchaseModel {
	m := &GoldPurchaseModel{
		Grams:        p.Grams,
		PricePerGram: p.PricePerGram,
		InvoiceValue: p.InvoiceValue,
		Purity:       p.Purity,
		Type:         p.Type,
		PurchaseDate: p.PurchaseDate,
		Notes:        p.Notes,
	}
	m.SetOwned(p.OwnedAggregateRoot)
	return m
}

// GoldSaleModel is the persistence model for gold sales.
type GoldSaleModel struct {
	OwnedModel
	PurchaseID   *uuid.UUID       `gorm:"type:uuid;index"`
	SaleValue    decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	PricePerGram *decimal.Decimal `gorm:"type:decimal(18,4)"`
	SaleDate     time.Time        `gorm:"type:date;not null;index"`
	ProfitLoss   decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Notes        string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (GoldSaleModel) TableName() string {
	return "gold_sales"
}

// ToDomain converts the persistence model to a domain Sale.
func (m *GoldSaleModel) ToDomain() *gold.Sale {
	return &gold.Sale{
		OwnedAggregateRoot: m.ToOwned(),
		PurchaseID:         m.PurchaseID,
		SaleValue:          m.SaleValue,
		PricePerGram:       m.PricePerGram,
		SaleDate:           m.SaleDate,
		ProfitLoss:         m.ProfitLoss,
		Notes:              m.Notes,
	}
}

// GoldSaleModelFromDomain creates a new persistence model from a domain Sale.
func GoldSaleModelFromDomain(s *gold.Sale) *GoldSaleModel {
	m := &GoldSaleModel{
		PurchaseID:   s.PurchaseID,
		SaleValue:    s.SaleValue,
		PricePerGram: s.PricePerGram,
		SaleDate:     s.SaleDate,
		ProfitLoss:   s.ProfitLoss,
		Notes:        s.Notes,
	}
	m.SetOwned(s.OwnedAggregateRoot)
	return m
}
