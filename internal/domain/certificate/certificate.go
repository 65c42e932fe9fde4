// Package certificate models bank certificates and the withdrawals drawn
// against them.
package certificate

import (
	"strings"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateTypeCertificate is the aggregate type name used in events and the activity log
const AggregateTypeCertificate = "bank_certificate"

// CertificateDetails holds the user-editable fields of a certificate
type CertificateDetails struct {
	BankName           string
	CertificateName    string
	CertificateNumber  string
	Amount             decimal.Decimal
	MonthlyReturn      decimal.Decimal
	ReturnDayOfMonth   *int
	LastReturnDate     *time.Time
	MaxWithdrawalLimit *decimal.Decimal
	DepositDate        *time.Time
	MaturityDate       *time.Time
}

// Certificate is a fixed deposit that allows short-term withdrawals up to a limit
type Certificate struct {
	shared.OwnedAggregateRoot
	CertificateDetails
}

// NewCertificate creates a certificate
func NewCertificate(userID uuid.UUID, details CertificateDetails) (*Certificate, error) {
	details, err := normalizeCertificate(details)
	if err != nil {
		return nil, err
	}
	c := &Certificate{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		CertificateDetails: details,
	}
	c.AddDomainEvent(c.event("created"))
	return c, nil
}

// Update replaces the editable fields
func (c *Certificate) Update(details CertificateDetails) error {
	details, err := normalizeCertificate(details)
	if err != nil {
		return err
	}
	c.CertificateDetails = details
	c.Touch()
	c.AddDomainEvent(c.event("updated"))
	return nil
}

// MarkDeleted records the deletion event
func (c *Certificate) MarkDeleted() {
	c.AddDomainEvent(c.event("deleted"))
}

// WithdrawalLimit is the configured maximum, or the full amount when none is set
func (c *Certificate) WithdrawalLimit() decimal.Decimal {
	if c.MaxWithdrawalLimit != nil && c.MaxWithdrawalLimit.IsPositive() {
		return *c.MaxWithdrawalLimit
	}
	return c.Amount
}

func (c *Certificate) event(action string) shared.DomainEvent {
	return shared.NewLifecycleEvent(AggregateTypeCertificate, action, c.ID, c.UserID, shared.AmountRef(c.Amount), map[string]any{
		"bank_name":        c.BankName,
		"certificate_name": c.CertificateName,
	})
}

func normalizeCertificate(d CertificateDetails) (CertificateDetails, error) {
	d.BankName = strings.TrimSpace(d.BankName)
	d.CertificateName = strings.TrimSpace(d.CertificateName)
	d.CertificateNumber = strings.TrimSpace(d.CertificateNumber)

	if d.BankName == "" {
		return d, shared.NewDomainError("INVALID_BANK_NAME", "Bank name cannot be empty")
	}
	if d.CertificateName == "" {
		return d, shared.NewDomainError("INVALID_CERTIFICATE_NAME", "Certificate name cannot be empty")
	}
	if !d.Amount.IsPositive() {
		return d, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if d.MonthlyReturn.IsNegative() {
		return d, shared.NewDomainError("INVALID_AMOUNT", "Monthly return cannot be negative")
	}
	if d.ReturnDayOfMonth != nil && (*d.ReturnDayOfMonth < 1 || *d.ReturnDayOfMonth > 31) {
		return d, shared.NewDomainError("INVALID_DAY_OF_MONTH", "Return day of month must be between 1 and 31")
	}
	if d.MaxWithdrawalLimit != nil {
		if d.MaxWithdrawalLimit.IsNegative() {
			return d, shared.NewDomainError("INVALID_WITHDRAWAL_LIMIT", "Withdrawal limit cannot be negative")
		}
		if d.MaxWithdrawalLimit.GreaterThan(d.Amount) {
			return d, shared.NewDomainError("INVALID_WITHDRAWAL_LIMIT", "Withdrawal limit cannot exceed the certificate amount")
		}
	}
	if d.DepositDate != nil && d.MaturityDate != nil && d.MaturityDate.Before(*d.DepositDate) {
		return d, shared.NewDomainError("INVALID_DATE", "Maturity date cannot precede the deposit date")
	}

	for _, p := range []**time.Time{&d.LastReturnDate, &d.DepositDate, &d.MaturityDate} {
		if *p != nil {
			t := shared.DateOf(**p)
			*p = &t
		}
	}
	return d, nil
}
