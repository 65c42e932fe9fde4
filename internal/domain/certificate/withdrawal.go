package certificate

import (
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateTypeWithdrawal is the aggregate type name used in events and the activity log
const AggregateTypeWithdrawal = "certificate_withdrawal"

// RepaymentWindowDays is the number of days a single withdrawal may stay unpaid
const RepaymentWindowDays = 55

// DangerWindowDays flags withdrawals this close to their due date
const DangerWindowDays = 10

// Withdrawal errors
var (
	ErrLimitExceeded        = shared.NewDomainError("WITHDRAWAL_LIMIT_EXCEEDED", "Withdrawal exceeds the remaining certificate limit")
	ErrAlreadyRepaid        = shared.NewDomainError("INVALID_STATE", "Withdrawal is already repaid")
	ErrNotInstallment       = shared.NewDomainError("NOT_INSTALLMENT", "Withdrawal is not paid in installments")
	ErrInstallmentsComplete = shared.NewDomainError("INSTALLMENTS_COMPLETE", "All installments are already paid")
)

// Withdrawal is money drawn against a certificate. A single withdrawal is due
// RepaymentWindowDays after its date; installment withdrawals have no deadline.
type Withdrawal struct {
	shared.OwnedAggregateRoot
	CertificateID    uuid.UUID
	Amount           decimal.Decimal
	Date             time.Time
	RepaymentDate    *time.Time
	IsRepaid         bool
	IsInstallment    bool
	InstallmentCount int
	PaidInstallments int
}

// NewWithdrawal opens a withdrawal. The certificate's accounting is checked by
// Summary.CanWithdraw before calling this.
func NewWithdrawal(userID, certificateID uuid.UUID, amount decimal.Decimal, date time.Time, repaymentDate *time.Time, isInstallment bool, installmentCount int) (*Withdrawal, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Date is required")
	}
	if !isInstallment || installmentCount < 1 {
		if isInstallment {
			return nil, shared.NewDomainError("INVALID_INSTALLMENT_COUNT", "Installment count must be at least 1")
		}
		installmentCount = 1
	}

	w := &Withdrawal{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		CertificateID:      certificateID,
		Amount:             amount,
		Date:               shared.DateOf(date),
		IsInstallment:      isInstallment,
		InstallmentCount:   installmentCount,
	}
	switch {
	case repaymentDate != nil:
		d := shared.DateOf(*repaymentDate)
		w.RepaymentDate = &d
	case !isInstallment:
		due := w.DueDate()
		w.RepaymentDate = &due
	}

	w.AddDomainEvent(w.event("created", w.Amount))
	return w, nil
}

// DueDate is the last day to repay a single withdrawal
func (w *Withdrawal) DueDate() time.Time {
	return w.Date.AddDate(0, 0, RepaymentWindowDays)
}

// DaysLeft counts the days from today until the due date. Negative once overdue.
func (w *Withdrawal) DaysLeft(today time.Time) int {
	return int(w.DueDate().Sub(shared.DateOf(today)).Hours() / 24)
}

// IsUnpaid reports whether any part of the withdrawal is still owed
func (w *Withdrawal) IsUnpaid() bool {
	if w.IsRepaid {
		return false
	}
	return !w.IsInstallment || w.PaidInstallments < w.InstallmentCount
}

// IsDangerous reports whether an unpaid single withdrawal is due within the
// danger window. Overdue and installment withdrawals are never dangerous.
func (w *Withdrawal) IsDangerous(today time.Time) bool {
	if !w.IsUnpaid() || w.IsInstallment {
		return false
	}
	left := w.DaysLeft(today)
	return left >= 0 && left <= DangerWindowDays
}

// InstallmentAmount is the value of one installment in cents. The last
// installment takes whatever rounding left over.
func (w *Withdrawal) InstallmentAmount() decimal.Decimal {
	if w.InstallmentCount <= 1 {
		return w.Amount
	}
	return w.Amount.Div(decimal.NewFromInt(int64(w.InstallmentCount))).Round(2)
}

// UnpaidPortion is the amount still owed. It always adds up to Amount with
// RepaidPortion.
func (w *Withdrawal) UnpaidPortion() decimal.Decimal {
	if !w.IsUnpaid() {
		return decimal.Zero
	}
	return w.Amount.Sub(w.RepaidPortion())
}

// RepaidPortion is the amount already returned to the certificate
func (w *Withdrawal) RepaidPortion() decimal.Decimal {
	switch {
	case w.IsRepaid:
		return w.Amount
	case w.IsInstallment && w.PaidInstallments > 0:
		return w.InstallmentAmount().Mul(decimal.NewFromInt(int64(w.PaidInstallments)))
	default:
		return decimal.Zero
	}
}

// Repay settles the withdrawal in full
func (w *Withdrawal) Repay(today time.Time) error {
	if w.IsRepaid {
		return ErrAlreadyRepaid
	}
	owed := w.UnpaidPortion()
	d := shared.DateOf(today)
	w.IsRepaid = true
	w.RepaymentDate = &d
	if w.IsInstallment {
		w.PaidInstallments = w.InstallmentCount
	}
	w.Touch()
	w.AddDomainEvent(w.event("repaid", owed))
	return nil
}

// PayInstallment records one paid installment. Paying the last one settles
// the withdrawal.
func (w *Withdrawal) PayInstallment(today time.Time) error {
	if !w.IsInstallment {
		return ErrNotInstallment
	}
	if w.IsRepaid || w.PaidInstallments >= w.InstallmentCount {
		return ErrInstallmentsComplete
	}
	before := w.RepaidPortion()
	w.PaidInstallments++
	if w.PaidInstallments == w.InstallmentCount {
		d := shared.DateOf(today)
		w.IsRepaid = true
		w.RepaymentDate = &d
	}
	w.Touch()
	w.AddDomainEvent(w.event("installment_paid", w.RepaidPortion().Sub(before)))
	return nil
}

// MarkDeleted records the deletion event
func (w *Withdrawal) MarkDeleted() {
	w.AddDomainEvent(w.event("deleted", w.Amount))
}

func (w *Withdrawal) event(action string, amount decimal.Decimal) shared.DomainEvent {
	return shared.NewLifecycleEvent(AggregateTypeWithdrawal, action, w.ID, w.UserID, shared.AmountRef(amount), map[string]any{
		"certificate_id":    w.CertificateID.String(),
		"is_installment":    w.IsInstallment,
		"paid_installments": w.PaidInstallments,
	})
}
