package models

import (
	"time"

	"github.com/fintrack/backend/internal/domain/certificate"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CertificateModel is the persistence model for bank certificates.
type CertificateModel struct {
	OwnedModel
	BankName           string          `gorm:"type:varchar(255);not null"`
	CertificateName    string          `gorm:"type:varchar(255)"`
	CertificateNumber  string          `gorm:"type:varchar(100)"`
	Amount             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	MonthlyReturn      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReturnDayOfMonth   *int
	LastReturnDate     *time.Time       `gorm:"type:date"`
	MaxWithdrawalLimit *decimal.Decimal `gorm:"type:decimal(18,4)"`
	DepositDate        *time.Time       `gorm:"type:date"`
	MaturityDate       *time.Time       `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (CertificateModel) TableName() string {
	return "bank_certificates"
}

// ToDomain converts the persistence model to a domain Certificate.
func (m *CertificateModel) ToDomain() *certificate.Certificate {
	return &certificate.Certificate{
		OwnedAggregateRoot: m.ToOwned(),
		CertificateDetails: certificate.CertificateDetails{
			BankName:           m.BankName,
			CertificateName:    m.CertificateName,
			CertificateNumber:  m.CertificateNumber,
			Amount:             m.Amount,
			MonthlyReturn:      m.MonthlyReturn,
			ReturnDayOfMonth:   m.ReturnDayOfMonth,
			LastReturnDate:     m.LastReturnDate,
			MaxWithdrawalLimit: m.MaxWithdrawalLimit,
			DepositDate:        m.DepositDate,
			MaturityDate:       m.MaturityDate,
		},
	}
}

// CertificateModelFromDomain creates a new persistence model from a domain Certificate.
func CertificateModelFromDomain(c *certificate.Certificate) *CertificateModel {
	m := &CertificateModel{
		BankName:           c.BankName,
		CertificateName:    c.CertificateName,
		CertificateNumber:  c.CertificateNumber,
		Amount:             c.Amount,
		MonthlyReturn:      c.MonthlyReturn,
		ReturnDayOfMonth:   c.ReturnDayOfMonth,
		LastReturnDate:     c.LastReturnDate,
		MaxWithdrawalLimit: c.MaxWithdrawalLimit,
		DepositDate:        c.DepositDate,
		MaturityDate:       c.MaturityDate,
	}
	m.SetOwned(c.OwnedAggregateRoot)
	return m
}

// WithdrawalModel is the persistence model for certificate withdrawals.
type WithdrawalModel struct {
	OwnedModel
	CertificateID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Date             time.Time       `gorm:"type:date;not null"`
	RepaymentDate    *time.Time      `gorm:"type:date"`
	IsRepaid         bool            `gorm:"not null;default:false"`
	IsInstallment    bool            `gorm:"not null;default:false"`
	InstallmentCount int             `gorm:"not null;default:1"`
	PaidInstallments int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (WithdrawalModel) TableName() string {
	return "certificate_withdrawals"
}

// ToDomain converts the persistence model to a domain Withdrawal.
func (m *WithdrawalModel) ToDomain() *certificate.Withdrawal {
	return &certificate.Withdrawal{
		OwnedAggregateRoot: m.ToOwned(),
		CertificateID:      m.CertificateID,
		Amount:             m.Amount,
		Date:               m.Date,
		RepaymentDate:      m.RepaymentDate,
		IsRepaid:           m.IsRepaid,
		IsInstallment:      m.IsInstallment,
		InstallmentCount:   m.InstallmentCount,
		PaidInstallments:   m.PaidInstallments,
	}
}

// WithdrawalModelFromDomain creates a new persistence model from a domain Withdrawal.
func WithdrawalModelFromDomain(w *certificate.Withdrawal) *WithdrawalModel {
	m := &WithdrawalModel{
		CertificateID:    w.CertificateID,
		Amount:           w.Amount,
		Date:             w.Date,
		RepaymentDate:    w.RepaymentDate,
		IsRepaid:         w.IsRepaid,
		IsInstallment:    w.IsInstallment,
		InstallmentCount: w.InstallmentCount,
		PaidInstallments: w.PaidInstallments,
	}
	m.SetOwned(w.OwnedAggregateRoot)
	return m
}
