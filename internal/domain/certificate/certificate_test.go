package certificate

import (
	"testing"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newCertificate(t *testing.T, amount int64, limit *decimal.Decimal) *Certificate {
	t.Helper()
	c, err := NewCertificate(uuid.New(), CertificateDetails{
		BankName:           "National Bank",
		CertificateName:    "3 year",
		Amount:             dec(amount),
		MaxWithdrawalLimit: limit,
	})
	require.NoError(t, err)
	return c
}

func TestCertificate_WithdrawalLimit(t *testing.T) {
	limit := dec(50000)
	zero := decimal.Zero

	tests := []struct {
		name     string
		limit    *decimal.Decimal
		expected decimal.Decimal
	}{
		{"explicit limit", &limit, dec(50000)},
		{"no limit defaults to amount", nil, dec(200000)},
		{"zero limit defaults to amount", &zero, dec(200000)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newCertificate(t, 200000, tc.limit)
			assert.True(t, tc.expected.Equal(c.WithdrawalLimit()))
		})
	}
}

func TestNewCertificate_Validation(t *testing.T) {
	over := dec(300)
	_, err := NewCertificate(uuid.New(), CertificateDetails{BankName: "B", CertificateName: "C", Amount: dec(200), MaxWithdrawalLimit: &over})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INVALID_WITHDRAWAL_LIMIT", de.Code)

	_, err = NewCertificate(uuid.New(), CertificateDetails{BankName: "", CertificateName: "C", Amount: dec(200)})
	assert.Error(t, err)

	_, err = NewCertificate(uuid.New(), CertificateDetails{BankName: "B", CertificateName: "C", Amount: dec(0)})
	assert.Error(t, err)
}

func TestSummarize_RepayScenario(t *testing.T) {
	limit := dec(50000)
	c := newCertificate(t, 200000, &limit)
	today := day(2024, time.June, 1)

	w, err := NewWithdrawal(c.UserID, c.ID, dec(10000), today, nil, false, 0)
	require.NoError(t, err)

	s := Summarize(c, []Withdrawal{*w}, today)
	assert.True(t, dec(40000).Equal(s.RemainingAmount))
	assert.True(t, dec(10000).Equal(s.TotalUnpaid))
	assert.True(t, s.WithdrawalLimit.Equal(s.RemainingAmount.Add(s.TotalUnpaid)))

	require.NoError(t, w.Repay(today))
	s = Summarize(c, []Withdrawal{*w}, today)
	assert.True(t, dec(50000).Equal(s.RemainingAmount))
	assert.True(t, dec(10000).Equal(s.TotalRepaid))
	assert.True(t, s.TotalUnpaid.IsZero())
}

func TestSummarize_Installments(t *testing.T) {
	c := newCertificate(t, 12000, nil)
	today := day(2024, time.January, 10)

	w, err := NewWithdrawal(c.UserID, c.ID, dec(1200), today, nil, true, 4)
	require.NoError(t, err)
	assert.Nil(t, w.RepaymentDate, "installments have no due date")

	require.NoError(t, w.PayInstallment(today))
	s := Summarize(c, []Withdrawal{*w}, today)
	assert.True(t, dec(900).Equal(s.TotalUnpaid))
	assert.True(t, dec(300).Equal(s.TotalRepaid))
	assert.True(t, dec(11100).Equal(s.RemainingAmount))
}

func TestSummarize_UnevenInstallmentsKeepLimit(t *testing.T) {
	limit := dec(50000)
	c := newCertificate(t, 200000, &limit)
	today := day(2024, time.January, 10)

	w, err := NewWithdrawal(c.UserID, c.ID, dec(10000), today, nil, true, 3)
	require.NoError(t, err)
	for paid := 0; paid < 3; paid++ {
		s := Summarize(c, []Withdrawal{*w}, today)
		assert.True(t, limit.Equal(s.RemainingAmount.Add(s.TotalUnpaid)), "after %d payments", paid)
		assert.True(t, dec(10000).Equal(s.TotalRepaid.Add(s.TotalUnpaid)), "after %d payments", paid)
		require.NoError(t, w.PayInstallment(today))
	}
}

func TestSummarize_ClampsRemainingAtZero(t *testing.T) {
	limit := dec(1000)
	c := newCertificate(t, 5000, &limit)
	today := day(2024, time.March, 1)
	a, _ := NewWithdrawal(c.UserID, c.ID, dec(800), today, nil, false, 0)
	b, _ := NewWithdrawal(c.UserID, c.ID, dec(800), today, nil, false, 0)

	s := Summarize(c, []Withdrawal{*a, *b}, today)
	assert.True(t, s.RemainingAmount.IsZero())
	assert.ErrorIs(t, s.CanWithdraw(dec(1)), ErrLimitExceeded)
}

func TestSummarize_IgnoresOtherCertificates(t *testing.T) {
	c := newCertificate(t, 1000, nil)
	w, _ := NewWithdrawal(c.UserID, uuid.New(), dec(500), day(2024, 1, 1), nil, false, 0)
	s := Summarize(c, []Withdrawal{*w}, day(2024, 1, 1))
	assert.True(t, dec(1000).Equal(s.RemainingAmount))
}

func TestSummary_CanWithdraw(t *testing.T) {
	s := Summary{RemainingAmount: dec(100)}
	assert.NoError(t, s.CanWithdraw(dec(100)))
	assert.ErrorIs(t, s.CanWithdraw(dec(101)), ErrLimitExceeded)
}
