package report

import (
	"context"

	"github.com/fintrack/backend/internal/domain/report"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Recommendations returns the savings rate and advice for the current month.
// Income is salaries plus freelance revenue.
func (s *ReportService) Recommendations(ctx context.Context, userID uuid.UUID) (*RecommendationsResponse, error) {
	rng := shared.ResolveRange(shared.RangeThisMonth, s.now())
	totals, err := s.totals(ctx, userID, rng)
	if err != nil {
		return nil, err
	}
	categories, err := s.repos.Expenses.SumByCategory(ctx, userID, rng)
	if err != nil {
		return nil, err
	}

	income := totals.Income()
	return &RecommendationsResponse{
		Income:          income,
		Expenses:        totals.Expenses,
		SavingsRate:     report.SavingsRate(income, totals.Expenses),
		Recommendations: report.Recommend(income, totals.Expenses, categories),
	}, nil
}
