package shared

import (
	"fmt"
	"time"
)

// Named report ranges
const (
	RangeThisMonth = "thisMonth"
	RangeLastMonth = "lastMonth"
	RangeThisYear  = "thisYear"
	RangeAll       = "all"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// DateRange is an inclusive calendar-date interval. A nil bound means unbounded.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// IsBounded reports whether either side restricts the range
func (r DateRange) IsBounded() bool {
	return r.From != nil || r.To != nil
}

// ToExclusive returns the instant just after To, for filtering timestamps.
func (r DateRange) ToExclusive() *time.Time {
	if r.To == nil {
		return nil
	}
	end := r.To.AddDate(0, 0, 1)
	return &end
}

// Contains reports whether the date of t falls inside the range
func (r DateRange) Contains(t time.Time) bool {
	d := DateOf(t)
	if r.From != nil && d.Before(*r.From) {
		return false
	}
	if r.To != nil && d.After(*r.To) {
		return false
	}
	return true
}

// ResolveRange maps a named range to a date interval relative to now.
// Unknown names resolve to an unbounded range.
func ResolveRange(name string, now time.Time) DateRange {
	switch name {
	case RangeThisMonth:
		from, to := MonthBounds(now)
		return DateRange{From: &from, To: &to}
	case RangeLastMonth:
		first, _ := MonthBounds(now)
		from, to := MonthBounds(first.AddDate(0, -1, 0))
		return DateRange{From: &from, To: &to}
	case RangeThisYear:
		from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
		return DateRange{From: &from, To: &to}
	default:
		return DateRange{}
	}
}

// MonthBounds returns the first and last calendar day of t's month
func MonthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// DaysIn returns the number of days in the given month
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateOf truncates t to its calendar date in UTC
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date
func Today() time.Time {
	return DateOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, Errorf("INVALID_DATE", "Invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// Period identifies a calendar month, formatted YYYY-MM
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the period containing t
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod parses a YYYY-MM string
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, Errorf("INVALID_PERIOD", "Invalid period %q, expected YYYY-MM", s)
	}
	return PeriodOf(t), nil
}

// String formats the period as YYYY-MM
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// DayDate returns the date for day in this period, clamped to the month length
func (p Period) DayDate(day int) time.Time {
	if day < 1 {
		day = 1
	}
	if last := DaysIn(p.Year, p.Month); day > last {
		day = last
	}
	return time.Date(p.Year, p.Month, day, 0, 0, 0, 0, time.UTC)
}
