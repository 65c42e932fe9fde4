// Package report holds the read models and calculations behind the finance
// reports. Nothing here is persisted; every figure is derived per request.
package report

import (
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Totals are the money flows of a date range
type Totals struct {
	Expenses  decimal.Decimal
	Salaries  decimal.Decimal
	Freelance decimal.Decimal
}

// Income is salaries plus freelance revenue
func (t Totals) Income() decimal.Decimal {
	return t.Salaries.Add(t.Freelance)
}

// Net is income minus expenses
func (t Totals) Net() decimal.Decimal {
	return t.Income().Sub(t.Expenses)
}

// SavingsBreakdown splits the savings fund by source
type SavingsBreakdown struct {
	Certificates decimal.Decimal
	Goals        decimal.Decimal
	Gold         decimal.Decimal
}

// Total is the savings fund: the remaining certificate limits, the goal
// balances and the value of unsold gold
func (b SavingsBreakdown) Total() decimal.Decimal {
	return b.Certificates.Add(b.Goals).Add(b.Gold)
}

// Months is a zero-filled series keyed by month number 1..12
type Months map[int]decimal.Decimal

// ZeroFill returns a series with every month of the year present
func ZeroFill(totals map[int]decimal.Decimal) Months {
	out := make(Months, 12)
	for m := 1; m <= 12; m++ {
		out[m] = decimal.Zero
		if v, ok := totals[m]; ok {
			out[m] = v
		}
	}
	return out
}

// RangeLabel returns the name echoed back for a requested range. An empty
// name means the default range.
func RangeLabel(name string) string {
	if name == "" {
		return shared.RangeThisMonth
	}
	return name
}
