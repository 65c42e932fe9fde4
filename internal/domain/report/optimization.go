package report

import (
	"fmt"

	"github.com/fintrack/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// Recommendation types
const (
	RecommendationLowSavingsRate        = "low_savings_rate"
	RecommendationOverspending          = "overspending"
	RecommendationCategoryConcentration = "category_concentration"
)

var (
	// TargetSavingsRate is the savings rate below which saving more is advised
	TargetSavingsRate = decimal.RequireFromString("0.2")
	// ConcentrationShare is the share of expenses above which one category is flagged
	ConcentrationShare = decimal.RequireFromString("0.4")
)

// Recommendation is one piece of advice
type Recommendation struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// SavingsRate is (income - expenses) / income clamped at 0 and rounded to two
// decimals. It is 0 when there is no income.
func SavingsRate(income, expenses decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	rate := income.Sub(expenses).Div(income)
	return decimal.Max(decimal.Zero, rate).Round(2)
}

// Recommend derives the advice for a month from its income, expenses and
// per-category expense totals
func Recommend(income, expenses decimal.Decimal, categories []finance.CategoryTotal) []Recommendation {
	recs := make([]Recommendation, 0, 3)

	if SavingsRate(income, expenses).LessThan(TargetSavingsRate) {
		recs = append(recs, Recommendation{
			Type:    RecommendationLowSavingsRate,
			Message: "Increase monthly savings to at least 20% by reducing variable expenses.",
		})
	}
	if expenses.GreaterThan(income) {
		recs = append(recs, Recommendation{
			Type:    RecommendationOverspending,
			Message: "Your expenses exceed income this month. Consider postponing non-essential purchases.",
		})
	}
	if expenses.IsPositive() {
		for _, c := range categories {
			share := c.Total.Div(expenses)
			if share.GreaterThan(ConcentrationShare) {
				name := c.CategoryName
				if name == "" {
					name = "Uncategorized"
				}
				recs = append(recs, Recommendation{
					Type: RecommendationCategoryConcentration,
					Message: fmt.Sprintf("%s takes %s%% of this month's expenses. Review it for savings.",
						name, share.Mul(decimal.NewFromInt(100)).Round(0).String()),
				})
				break
			}
		}
	}
	return recs
}
