// Package report provides the reporting, dashboard and optimisation services.
// Every figure is computed from the stored records on each request.
package report

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/certificate"
	"github.com/fintrack/backend/internal/domain/finance"
	"github.com/fintrack/backend/internal/domain/freelance"
	"github.com/fintrack/backend/internal/domain/gold"
	"github.com/fintrack/backend/internal/domain/report"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Repositories groups the stores the reports read from
type Repositories struct {
	Expenses     finance.ExpenseRepository
	Salaries     finance.SalaryRepository
	Goals        finance.GoalRepository
	Revenues     freelance.RevenueRepository
	Certificates certificate.CertificateRepository
	Withdrawals  certificate.WithdrawalRepository
	Purchases    gold.PurchaseRepository
	Sales        gold.SaleRepository
}

// ReportService computes the finance reports
type ReportService struct {
	repos Repositories
	now   func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(repos Repositories) *ReportService {
	return &ReportService{repos: repos, now: time.Now}
}

// Overview totals expenses, salaries and freelance revenue over a range
func (s *ReportService) Overview(ctx context.Context, userID uuid.UUID, q RangeQuery) (*OverviewResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "overview")
	defer span.End()

	label, rng := s.resolve(q.Range)
	totals, err := s.totals(ctx, userID, rng)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return &OverviewResponse{
		Range:          label,
		From:           common.DatePtr(rng.From),
		To:             common.DatePtr(rng.To),
		TotalExpenses:  totals.Expenses,
		TotalSalaries:  totals.Salaries,
		TotalFreelance: totals.Freelance,
		Net:            totals.Net(),
	}, nil
}

// ExpensesByCategory groups the expenses of a range by category, largest first
func (s *ReportService) ExpensesByCategory(ctx context.Context, userID uuid.UUID, q RangeQuery) ([]CategoryTotalResponse, error) {
	_, rng := s.resolve(q.Range)
	rows, err := s.repos.Expenses.SumByCategory(ctx, userID, rng)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryTotalResponse, len(rows))
	for i, r := range rows {
		out[i] = CategoryTotalResponse{
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			Total:        r.Total,
			Count:        r.Count,
		}
	}
	return out, nil
}

// MonthlyComparison returns the expense and salary totals of every month of a year
func (s *ReportService) MonthlyComparison(ctx context.Context, userID uuid.UUID, q YearQuery) (*MonthlyComparisonResponse, error) {
	year := q.Year
	if year == 0 {
		year = s.now().Year()
	}

	var expenses, salaries map[int]decimal.Decimal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.repos.Expenses.SumByMonth(gctx, userID, year)
		return err
	})
	g.Go(func() error {
		var err error
		salaries, err = s.repos.Salaries.SumByMonth(gctx, userID, year)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &MonthlyComparisonResponse{
		Year:     year,
		Expenses: report.ZeroFill(expenses),
		Salaries: report.ZeroFill(salaries),
	}, nil
}

// Stats returns the headline figures of a range and the current savings fund
func (s *ReportService) Stats(ctx context.Context, userID uuid.UUID, q RangeQuery) (*StatsResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "stats")
	defer span.End()

	label, rng := s.resolve(q.Range)

	var (
		totals  report.Totals
		savings report.SavingsBreakdown
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.totals(gctx, userID, rng)
		return err
	})
	g.Go(func() error {
		var err error
		savings, err = s.savings(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return &StatsResponse{
		Range:         label,
		From:          common.DatePtr(rng.From),
		To:            common.DatePtr(rng.To),
		Revenue:       totals.Freelance,
		TotalSalaries: totals.Salaries,
		Expenses:      totals.Expenses,
		Balance:       totals.Net(),
		SavingsFund:   savings.Total(),
		SavingsBreakdown: SavingsBreakdownResponse{
			Certificates: savings.Certificates,
			Goals:        savings.Goals,
			Gold:         savings.Gold,
		},
	}, nil
}

func (s *ReportService) resolve(name string) (string, shared.DateRange) {
	label := report.RangeLabel(name)
	return label, shared.ResolveRange(label, s.now())
}

func (s *ReportService) totals(ctx context.Context, userID uuid.UUID, rng shared.DateRange) (report.Totals, error) {
	var t report.Totals
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		t.Expenses, err = s.repos.Expenses.SumByRange(gctx, userID, rng)
		return err
	})
	g.Go(func() error {
		var err error
		t.Salaries, err = s.repos.Salaries.SumByRange(gctx, userID, rng)
		return err
	})
	g.Go(func() error {
		var err error
		t.Freelance, err = s.repos.Revenues.SumByRange(gctx, userID, rng)
		return err
	})
	if err := g.Wait(); err != nil {
		return report.Totals{}, err
	}
	return t, nil
}

func (s *ReportService) savings(ctx context.Context, userID uuid.UUID) (report.SavingsBreakdown, error) {
	b := report.SavingsBreakdown{
		Certificates: decimal.Zero,
		Goals:        decimal.Zero,
		Gold:         decimal.Zero,
	}
	today := shared.DateOf(s.now())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		certs, err := s.repos.Certificates.FindAllByUser(gctx, userID)
		if err != nil || len(certs) == 0 {
			return err
		}
		withdrawals, err := s.repos.Withdrawals.FindAllByUser(gctx, userID)
		if err != nil {
			return err
		}
		for i := range certs {
			b.Certificates = b.Certificates.Add(certificate.Summarize(&certs[i], withdrawals, today).RemainingAmount)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		b.Goals, err = s.repos.Goals.SumCurrent(gctx, userID)
		return err
	})
	g.Go(func() error {
		purchases, err := s.repos.Purchases.FindAllByUser(gctx, userID)
		if err != nil || len(purchases) == 0 {
			return err
		}
		sales, err := s.repos.Sales.FindAllByUser(gctx, userID)
		if err != nil {
			return err
		}
		b.Gold = gold.Summarize(purchases, sales).RemainingValue.Round(2)
		return nil
	})
	if err := g.Wait(); err != nil {
		return report.SavingsBreakdown{}, err
	}
	return b, nil
}
