package certificate

import (
	"time"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/certificate"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCertificateRequest represents a request to create a certificate
type CreateCertificateRequest struct {
	BankName           string           `json:"bank_name" binding:"required,min=1,max=255"`
	CertificateName    string           `json:"certificate_name" binding:"required,min=1,max=255"`
	CertificateNumber  string           `json:"certificate_number" binding:"max=100"`
	Amount             *decimal.Decimal `json:"amount" binding:"required"`
	MonthlyReturn      *decimal.Decimal `json:"monthly_return"`
	ReturnDayOfMonth   *int             `json:"return_day_of_month" binding:"omitempty,min=1,max=31"`
	LastReturnDate     *common.Date     `json:"last_return_date"`
	MaxWithdrawalLimit *decimal.Decimal `json:"max_withdrawal_limit"`
	DepositDate        *common.Date     `json:"deposit_date"`
	MaturityDate       *common.Date     `json:"maturity_date"`
}

// UpdateCertificateRequest represents a partial certificate update
type UpdateCertificateRequest struct {
	BankName           *string          `json:"bank_name" binding:"omitempty,min=1,max=255"`
	CertificateName    *string          `json:"certificate_name" binding:"omitempty,min=1,max=255"`
	CertificateNumber  *string          `json:"certificate_number" binding:"omitempty,max=100"`
	Amount             *decimal.Decimal `json:"amount"`
	MonthlyReturn      *decimal.Decimal `json:"monthly_return"`
	ReturnDayOfMonth   *int             `json:"return_day_of_month" binding:"omitempty,min=1,max=31"`
	LastReturnDate     *common.Date     `json:"last_return_date"`
	MaxWithdrawalLimit *decimal.Decimal `json:"max_withdrawal_limit"`
	DepositDate        *common.Date     `json:"deposit_date"`
	MaturityDate       *common.Date     `json:"maturity_date"`
}

// CertificateListQuery holds the certificate list filters
type CertificateListQuery struct {
	common.ListQuery
	BankName string `form:"bank_name"`
}

// CertificateResponse represents a certificate with its withdrawal accounting
type CertificateResponse struct {
	ID                   uuid.UUID            `json:"id"`
	BankName             string               `json:"bank_name"`
	CertificateName      string               `json:"certificate_name"`
	CertificateNumber    string               `json:"certificate_number"`
	Amount               decimal.Decimal      `json:"amount"`
	MonthlyReturn        decimal.Decimal      `json:"monthly_return"`
	ReturnDayOfMonth     *int                 `json:"return_day_of_month"`
	LastReturnDate       *common.Date         `json:"last_return_date"`
	MaxWithdrawalLimit   *decimal.Decimal     `json:"max_withdrawal_limit"`
	DepositDate          *common.Date         `json:"deposit_date"`
	MaturityDate         *common.Date         `json:"maturity_date"`
	WithdrawalLimit      decimal.Decimal      `json:"withdrawal_limit"`
	RemainingAmount      decimal.Decimal      `json:"remaining_amount"`
	TotalUnpaid          decimal.Decimal      `json:"total_unpaid"`
	TotalRepaid          decimal.Decimal      `json:"total_repaid"`
	DangerousWithdrawals []WithdrawalResponse `json:"dangerous_withdrawals"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

// ToCertificateResponse combines a certificate and its summary
func ToCertificateResponse(c *certificate.Certificate, s certificate.Summary, today time.Time) CertificateResponse {
	dangerous := make([]WithdrawalResponse, len(s.DangerousWithdrawals))
	for i := range s.DangerousWithdrawals {
		dangerous[i] = ToWithdrawalResponse(&s.DangerousWithdrawals[i], today)
	}
	return CertificateResponse{
		ID:                   c.ID,
		BankName:             c.BankName,
		CertificateName:      c.CertificateName,
		CertificateNumber:    c.CertificateNumber,
		Amount:               c.Amount,
		MonthlyReturn:        c.MonthlyReturn,
		ReturnDayOfMonth:     c.ReturnDayOfMonth,
		LastReturnDate:       common.DatePtr(c.LastReturnDate),
		MaxWithdrawalLimit:   c.MaxWithdrawalLimit,
		DepositDate:          common.DatePtr(c.DepositDate),
		MaturityDate:         common.DatePtr(c.MaturityDate),
		WithdrawalLimit:      s.WithdrawalLimit,
		RemainingAmount:      s.RemainingAmount,
		TotalUnpaid:          s.TotalUnpaid,
		TotalRepaid:          s.TotalRepaid,
		DangerousWithdrawals: dangerous,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

// CreateWithdrawalRequest represents a request to draw against a certificate
type CreateWithdrawalRequest struct {
	Amount           *decimal.Decimal `json:"amount" binding:"required"`
	Date             *common.Date     `json:"date" binding:"required"`
	RepaymentDate    *common.Date     `json:"repayment_date"`
	IsInstallment    bool             `json:"is_installment"`
	InstallmentCount int              `json:"installment_count" binding:"omitempty,min=1,max=120"`
}

// WithdrawalListQuery holds the withdrawal list filters
type WithdrawalListQuery struct {
	common.ListQuery
	IsRepaid *bool `form:"is_repaid"`
}

// WithdrawalResponse represents a withdrawal with its derived repayment state
type WithdrawalResponse struct {
	ID                uuid.UUID       `json:"id"`
	CertificateID     uuid.UUID       `json:"certificate_id"`
	Amount            decimal.Decimal `json:"amount"`
	Date              common.Date     `json:"date"`
	RepaymentDate     *common.Date    `json:"repayment_date"`
	IsRepaid          bool            `json:"is_repaid"`
	IsInstallment     bool            `json:"is_installment"`
	InstallmentCount  int             `json:"installment_count"`
	PaidInstallments  int             `json:"paid_installments"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	UnpaidAmount      decimal.Decimal `json:"unpaid_amount"`
	DueDate           *common.Date    `json:"due_date"`
	DaysLeft          *int            `json:"days_left"`
	Dangerous         bool            `json:"dangerous"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ToWithdrawalResponse converts a withdrawal. Installment withdrawals have no due date.
func ToWithdrawalResponse(w *certificate.Withdrawal, today time.Time) WithdrawalResponse {
	resp := WithdrawalResponse{
		ID:                w.ID,
		CertificateID:     w.CertificateID,
		Amount:            w.Amount,
		Date:              common.NewDate(w.Date),
		RepaymentDate:     common.DatePtr(w.RepaymentDate),
		IsRepaid:          w.IsRepaid,
		IsInstallment:     w.IsInstallment,
		InstallmentCount:  w.InstallmentCount,
		PaidInstallments:  w.PaidInstallments,
		InstallmentAmount: w.InstallmentAmount(),
		UnpaidAmount:      w.UnpaidPortion(),
		Dangerous:         w.IsDangerous(today),
		CreatedAt:         w.CreatedAt,
	}
	if !w.IsInstallment {
		due := common.NewDate(w.DueDate())
		left := w.DaysLeft(today)
		resp.DueDate = &due
		resp.DaysLeft = &left
	}
	return resp
}
