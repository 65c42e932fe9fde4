package finance

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/finance"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Generated record kinds reported to GenerationMetrics
const (
	KindExpense = "expense"
	KindSalary  = "salary"
)

// GenerationMetrics counts records materialised from templates
type GenerationMetrics interface {
	RecordGenerated(ctx context.Context, kind string, n int)
}

// RecurringService materialises monthly expense and salary templates. A run is
// idempotent: the repositories skip occurrences that already exist for a
// (template, period) pair.
type RecurringService struct {
	common.EventSupport
	expenseRepo finance.ExpenseRepository
	salaryRepo  finance.SalaryRepository
	metrics     GenerationMetrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewRecurringService creates a new RecurringService
func NewRecurringService(expenseRepo finance.ExpenseRepository, salaryRepo finance.SalaryRepository, logger *zap.Logger) *RecurringService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecurringService{
		expenseRepo: expenseRepo,
		salaryRepo:  salaryRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// SetMetrics sets the optional generation metrics recorder
func (s *RecurringService) SetMetrics(m GenerationMetrics) {
	s.metrics = m
}

// Generate materialises every template of the user for the requested period
func (s *RecurringService) Generate(ctx context.Context, userID uuid.UUID, req GenerateRequest) (*GenerateResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "recurring", "generate")
	defer span.End()

	period := shared.PeriodOf(s.now())
	if req.Period != "" {
		p, err := shared.ParsePeriod(req.Period)
		if err != nil {
			return nil, err
		}
		period = p
	}
	result := &GenerateResult{Period: period.String()}
	telemetry.SetAttributes(span, telemetry.SpanAttrPeriod, result.Period)

	expenses, err := s.expenseRepo.FindTemplates(ctx, userID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	for i := range expenses {
		occurrence, err := expenses[i].Materialize(period)
		if err != nil {
			s.logger.Warn("Skipping expense template",
				zap.String("template_id", expenses[i].ID.String()),
				zap.Error(err))
			result.Skipped++
			continue
		}
		created, err := s.expenseRepo.SaveGenerated(ctx, occurrence)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		if !created {
			result.Skipped++
			continue
		}
		result.ExpensesCreated++
		s.PublishEvents(ctx, occurrence)
	}

	salaries, err := s.salaryRepo.FindTemplates(ctx, userID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	for i := range salaries {
		occurrence, err := salaries[i].Materialize(period)
		if err != nil {
			s.logger.Warn("Skipping salary template",
				zap.String("template_id", salaries[i].ID.String()),
				zap.Error(err))
			result.Skipped++
			continue
		}
		created, err := s.salaryRepo.SaveGenerated(ctx, occurrence)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		if !created {
			result.Skipped++
			continue
		}
		result.SalariesCreated++
		s.PublishEvents(ctx, occurrence)
	}

	if s.metrics != nil {
		s.metrics.RecordGenerated(ctx, KindExpense, result.ExpensesCreated)
		s.metrics.RecordGenerated(ctx, KindSalary, result.SalariesCreated)
	}
	s.logger.Info("Recurring records generated",
		zap.String("user_id", userID.String()),
		zap.String("period", result.Period),
		zap.Int("expenses", result.ExpensesCreated),
		zap.Int("salaries", result.SalariesCreated),
		zap.Int("skipped", result.Skipped))

	return result, nil
}
