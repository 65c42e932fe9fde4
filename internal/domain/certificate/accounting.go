package certificate

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary is the derived withdrawal accounting of one certificate
type Summary struct {
	WithdrawalLimit      decimal.Decimal
	RemainingAmount      decimal.Decimal
	TotalUnpaid          decimal.Decimal
	TotalRepaid          decimal.Decimal
	DangerousWithdrawals []Withdrawal
}

// Summarize computes the accounting of a certificate from its withdrawals.
// Withdrawals of other certificates are ignored.
func Summarize(c *Certificate, withdrawals []Withdrawal, today time.Time) Summary {
	s := Summary{
		WithdrawalLimit:      c.WithdrawalLimit(),
		TotalUnpaid:          decimal.Zero,
		TotalRepaid:          decimal.Zero,
		DangerousWithdrawals: make([]Withdrawal, 0),
	}
	for i := range withdrawals {
		w := &withdrawals[i]
		if w.CertificateID != c.ID {
			continue
		}
		s.TotalUnpaid = s.TotalUnpaid.Add(w.UnpaidPortion())
		s.TotalRepaid = s.TotalRepaid.Add(w.RepaidPortion())
		if w.IsDangerous(today) {
			s.DangerousWithdrawals = append(s.DangerousWithdrawals, *w)
		}
	}
	s.RemainingAmount = decimal.Max(decimal.Zero, s.WithdrawalLimit.Sub(s.TotalUnpaid))
	return s
}

// CanWithdraw returns ErrLimitExceeded when a new withdrawal of amount would
// exceed the remaining amount
func (s Summary) CanWithdraw(amount decimal.Decimal) error {
	if amount.GreaterThan(s.RemainingAmount) {
		return ErrLimitExceeded
	}
	return nil
}
