package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRange(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

	t.Run("this month", func(t *testing.T) {
		r := ResolveRange(RangeThisMonth, now)

		require.NotNil(t, r.From)
		require.NotNil(t, r.To)
		assert.Equal(t, "2024-03-01", r.From.Format(DateLayout))
		assert.Equal(t, "2024-03-31", r.To.Format(DateLayout))
	})

	t.Run("last month crosses into february of a leap year", func(t *testing.T) {
		r := ResolveRange(RangeLastMonth, now)

		assert.Equal(t, "2024-02-01", r.From.Format(DateLayout))
		assert.Equal(t, "2024-02-29", r.To.Format(DateLayout))
	})

	t.Run("last month in january wraps the year", func(t *testing.T) {
		r := ResolveRange(RangeLastMonth, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC))

		assert.Equal(t, "2023-12-01", r.From.Format(DateLayout))
		assert.Equal(t, "2023-12-31", r.To.Format(DateLayout))
	})

	t.Run("this year", func(t *testing.T) {
		r := ResolveRange(RangeThisYear, now)

		assert.Equal(t, "2024-01-01", r.From.Format(DateLayout))
		assert.Equal(t, "2024-12-31", r.To.Format(DateLayout))
	})

	t.Run("unknown range is unbounded", func(t *testing.T) {
		r := ResolveRange("sometime", now)

		assert.Nil(t, r.From)
		assert.Nil(t, r.To)
		assert.False(t, r.IsBounded())
	})
}

func TestDateRange_Contains(t *testing.T) {
	r := ResolveRange(RangeThisMonth, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))

	assert.True(t, r.Contains(time.Date(2024, time.March, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, DateRange{}.Contains(time.Now()))
	assert.Equal(t, "2024-04-01", r.ToExclusive().Format(DateLayout))
}

func TestPeriod(t *testing.T) {
	p, err := ParsePeriod("2023-02")
	require.NoError(t, err)

	assert.Equal(t, "2023-02", p.String())
	assert.Equal(t, "2023-02-28", p.DayDate(31).Format(DateLayout))
	assert.Equal(t, "2023-02-01", p.DayDate(0).Format(DateLayout))

	_, err = ParsePeriod("2023/02")
	assert.Error(t, err)
}
