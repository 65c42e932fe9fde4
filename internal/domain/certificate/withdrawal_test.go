package certificate

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithdrawal(t *testing.T) {
	userID, certID := uuid.New(), uuid.New()

	t.Run("single withdrawal gets due date", func(t *testing.T) {
		w, err := NewWithdrawal(userID, certID, dec(100), day(2024, time.January, 1), nil, false, 5)
		require.NoError(t, err)
		assert.Equal(t, 1, w.InstallmentCount)
		require.NotNil(t, w.RepaymentDate)
		assert.Equal(t, day(2024, time.February, 25), *w.RepaymentDate)
		assert.Equal(t, day(2024, time.February, 25), w.DueDate())
	})

	t.Run("installment withdrawal needs a count", func(t *testing.T) {
		_, err := NewWithdrawal(userID, certID, dec(100), day(2024, 1, 1), nil, true, 0)
		assert.Error(t, err)
	})

	t.Run("amount must be positive", func(t *testing.T) {
		_, err := NewWithdrawal(userID, certID, dec(0), day(2024, 1, 1), nil, false, 0)
		assert.Error(t, err)
	})
}

func TestWithdrawal_IsDangerous(t *testing.T) {
	date := day(2024, time.January, 1)
	due := date.AddDate(0, 0, RepaymentWindowDays)

	tests := []struct {
		name     string
		today    time.Time
		expected bool
	}{
		{"far from due", date, false},
		{"eleven days left", due.AddDate(0, 0, -11), false},
		{"ten days left", due.AddDate(0, 0, -10), true},
		{"due today", due, true},
		{"overdue", due.AddDate(0, 0, 1), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, err := NewWithdrawal(uuid.New(), uuid.New(), dec(100), date, nil, false, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, w.IsDangerous(tc.today))
		})
	}

	t.Run("installments are never dangerous", func(t *testing.T) {
		w, err := NewWithdrawal(uuid.New(), uuid.New(), dec(100), date, nil, true, 2)
		require.NoError(t, err)
		assert.False(t, w.IsDangerous(due))
	})

	t.Run("repaid is never dangerous", func(t *testing.T) {
		w, err := NewWithdrawal(uuid.New(), uuid.New(), dec(100), date, nil, false, 0)
		require.NoError(t, err)
		require.NoError(t, w.Repay(due))
		assert.False(t, w.IsDangerous(due))
	})
}

func TestWithdrawal_Repay(t *testing.T) {
	w, err := NewWithdrawal(uuid.New(), uuid.New(), dec(100), day(2024, 1, 1), nil, false, 0)
	require.NoError(t, err)

	today := day(2024, time.January, 20)
	require.NoError(t, w.Repay(today))
	assert.True(t, w.IsRepaid)
	assert.Equal(t, today, *w.RepaymentDate)
	assert.False(t, w.IsUnpaid())

	assert.ErrorIs(t, w.Repay(today), ErrAlreadyRepaid)
}

func TestWithdrawal_PayInstallment(t *testing.T) {
	today := day(2024, time.March, 3)

	t.Run("caps at installment count", func(t *testing.T) {
		w, err := NewWithdrawal(uuid.New(), uuid.New(), dec(300), today, nil, true, 3)
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			require.NoError(t, w.PayInstallment(today))
		}
		assert.Equal(t, 3, w.PaidInstallments)
		assert.True(t, w.IsRepaid)
		assert.True(t, w.UnpaidPortion().IsZero())

		assert.ErrorIs(t, w.PayInstallment(today), ErrInstallmentsComplete)
		assert.Equal(t, 3, w.PaidInstallments)
	})

	t.Run("rejects single withdrawal", func(t *testing.T) {
		w, err := NewWithdrawal(uuid.New(), uuid.New(), dec(300), today, nil, false, 0)
		require.NoError(t, err)
		assert.ErrorIs(t, w.PayInstallment(today), ErrNotInstallment)
		assert.Equal(t, 0, w.PaidInstallments)
	})

	t.Run("emits events", func(t *testing.T) {
		w, err := NewWithdrawal(uuid.New(), uuid.New(), dec(300), today, nil, true, 2)
		require.NoError(t, err)
		w.ClearDomainEvents()
		require.NoError(t, w.PayInstallment(today))
		require.Len(t, w.GetDomainEvents(), 1)
		assert.Equal(t, "certificate_withdrawal.installment_paid", w.GetDomainEvents()[0].EventType())
	})
}

func TestWithdrawal_UnevenInstallments(t *testing.T) {
	today := day(2024, time.March, 3)
	w, err := NewWithdrawal(uuid.New(), uuid.New(), dec(10000), today, nil, true, 3)
	require.NoError(t, err)

	assert.Equal(t, "3333.33", w.InstallmentAmount().String())
	assert.Equal(t, "10000", w.UnpaidPortion().String())
	assert.True(t, w.RepaidPortion().IsZero())

	steps := []struct{ repaid, unpaid string }{
		{"3333.33", "6666.67"},
		{"6666.66", "3333.34"},
		{"10000", "0"},
	}
	for i, want := range steps {
		w.ClearDomainEvents()
		before := w.RepaidPortion()
		require.NoError(t, w.PayInstallment(today))

		assert.Equal(t, want.repaid, w.RepaidPortion().String(), "after payment %d", i+1)
		assert.Equal(t, want.unpaid, w.UnpaidPortion().String(), "after payment %d", i+1)
		assert.True(t, w.RepaidPortion().Add(w.UnpaidPortion()).Equal(dec(10000)))
		require.Len(t, w.GetDomainEvents(), 1)
		assert.True(t, w.RepaidPortion().Sub(before).GreaterThan(dec(3333)))
	}
}
