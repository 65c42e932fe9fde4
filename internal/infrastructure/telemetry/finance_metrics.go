package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/fintrack/backend/internal/domain/certificate"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// FinanceMetrics records business metrics of the finance tracker. It is a
// domain event handler, so every audited change is counted without the
// services knowing about metrics.
type FinanceMetrics struct {
	logger *zap.Logger

	eventsTotal    *Counter
	amountTotal    *Counter
	authTotal      *Counter
	generatedTotal *Counter
	emailsTotal    *Counter

	unpaidGauge    *Gauge
	dangerousGauge *Gauge

	users       UserProvider
	withdrawals WithdrawalProvider
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once
}

// UserProvider lists users for periodic collection
type UserProvider interface {
	FindAllIDs(ctx context.Context) ([]uuid.UUID, error)
}

// WithdrawalProvider loads the withdrawals of one user
type WithdrawalProvider interface {
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]certificate.Withdrawal, error)
}

// FinanceMetricsConfig holds configuration for finance metrics.
type FinanceMetricsConfig struct {
	Meter       metric.Meter
	Logger      *zap.Logger
	Users       UserProvider
	Withdrawals WithdrawalProvider
}

// NewFinanceMetrics creates the instruments
func NewFinanceMetrics(cfg FinanceMetricsConfig) (*FinanceMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	fm := &FinanceMetrics{
		logger:      logger,
		users:       cfg.Users,
		withdrawals: cfg.Withdrawals,
		stopChan:    make(chan struct{}),
	}

	in := NewInstruments(cfg.Meter)
	fm.eventsTotal = in.Counter("fintrack_domain_events_total", "Domain events by entity type and action", "{events}")
	fm.amountTotal = in.Counter("fintrack_amount_recorded_total", "Money moved by recorded changes, in cents", "{cents}")
	fm.authTotal = in.Counter("fintrack_auth_attempts_total", "Authentication attempts by action and outcome", "{attempts}")
	fm.generatedTotal = in.Counter("fintrack_recurring_generated_total", "Records generated from monthly templates", "{records}")
	fm.emailsTotal = in.Counter("fintrack_emails_total", "Emails handed to the relay by outcome", "{emails}")
	fm.unpaidGauge = in.Gauge("fintrack_withdrawals_unpaid", "Certificate withdrawals not yet repaid", "{withdrawals}")
	fm.dangerousGauge = in.Gauge("fintrack_withdrawals_dangerous", "Single withdrawals due within the danger window", "{withdrawals}")
	if err := in.Err(); err != nil {
		return nil, err
	}
	return fm, nil
}

// Handle counts one domain event
func (fm *FinanceMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	action := event.EventType()
	var amount *decimal.Decimal
	if audited, ok := event.(shared.AuditableEvent); ok {
		action = audited.Action()
		amount = audited.Amount()
	}
	entity := AttrEntityType.String(event.AggregateType())
	fm.eventsTotal.Inc(ctx, entity, AttrAction.String(action))
	if amount != nil && amount.IsPositive() {
		fm.amountTotal.Add(ctx, amount.Shift(2).IntPart(), entity, AttrAction.String(action))
	}
	return nil
}

// EventTypes subscribes to every event
func (fm *FinanceMetrics) EventTypes() []string {
	return nil
}

// Outcome labels
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// RecordAuth counts a login, register or refresh attempt
func (fm *FinanceMetrics) RecordAuth(ctx context.Context, action string, success bool) {
	fm.authTotal.Inc(ctx, AttrAction.String(action), AttrOutcome.String(outcome(success)))
}

// RecordGenerated counts records materialised from templates
func (fm *FinanceMetrics) RecordGenerated(ctx context.Context, kind string, n int) {
	if n <= 0 {
		return
	}
	fm.generatedTotal.Add(ctx, int64(n), AttrKind.String(kind))
}

// RecordEmail counts one send attempt
func (fm *FinanceMetrics) RecordEmail(ctx context.Context, success bool) {
	fm.emailsTotal.Inc(ctx, AttrOutcome.String(outcome(success)))
}

func outcome(success bool) string {
	if success {
		return OutcomeSuccess
	}
	return OutcomeFailure
}

// StartPeriodicCollection samples the withdrawal gauges every interval
// (default 5 minutes) until Stop or ctx is done. Calling it again is a no-op.
func (fm *FinanceMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	fm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		go fm.runPeriodicCollection(ctx, interval)
	})
}

func (fm *FinanceMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	fm.Collect(ctx, shared.Today())

	for {
		select {
		case <-fm.stopChan:
			fm.logger.Info("Stopping periodic finance metrics collection")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			fm.Collect(ctx, shared.Today())
		}
	}
}

// Collect samples the withdrawal gauges across all users and returns the
// unpaid and dangerous counts it recorded
func (fm *FinanceMetrics) Collect(ctx context.Context, today time.Time) (unpaid, dangerous int64) {
	if fm.users == nil || fm.withdrawals == nil {
		return 0, 0
	}
	ids, err := fm.users.FindAllIDs(ctx)
	if err != nil {
		fm.logger.Error("Failed to list users for metrics collection", zap.Error(err))
		return 0, 0
	}
	for _, id := range ids {
		list, err := fm.withdrawals.FindAllByUser(ctx, id)
		if err != nil {
			fm.logger.Warn("Failed to load withdrawals for metrics",
				zap.String("user_id", id.String()),
				zap.Error(err),
			)
			continue
		}
		for i := range list {
			if list[i].IsUnpaid() {
				unpaid++
			}
			if list[i].IsDangerous(today) {
				dangerous++
			}
		}
	}
	fm.unpaidGauge.Record(ctx, unpaid)
	fm.dangerousGauge.Record(ctx, dangerous)
	return unpaid, dangerous
}

// Stop stops the periodic collection.
func (fm *FinanceMetrics) Stop() {
	fm.stopOnce.Do(func() {
		close(fm.stopChan)
	})
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewFinanceMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

var _ shared.EventHandler = (*FinanceMetrics)(nil)
