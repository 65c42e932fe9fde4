package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultSlowQuery = 200 * time.Millisecond

// DBMetricsConfig configures query and pool metrics
type DBMetricsConfig struct {
	Enabled            bool
	SlowQueryThreshold time.Duration
}

// DBMetrics records query counts, latencies and connection pool usage.
// Pool gauges are observed at export time, so there is no polling loop.
type DBMetrics struct {
	queries       *Counter
	queryErrors   *Counter
	slowQueries   *Counter
	queryDuration *Histogram

	meter        metric.Meter
	slowQuery    time.Duration
	logger       *zap.Logger
	registration metric.Registration
	stopOnce     sync.Once
}

// NewDBMetrics creates the query instruments on meter
func NewDBMetrics(meter metric.Meter, cfg DBMetricsConfig, logger *zap.Logger) (*DBMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &DBMetrics{meter: meter, slowQuery: cfg.SlowQueryThreshold, logger: logger}
	if m.slowQuery <= 0 {
		m.slowQuery = defaultSlowQuery
	}

	in := NewInstruments(meter)
	m.queries = in.Counter("db_query_total", "Database queries by operation", "{query}")
	m.queryErrors = in.Counter("db_query_errors_total", "Failed database queries by operation, not counting missing rows", "{query}")
	m.slowQueries = in.Counter("db_slow_query_total", "Queries slower than the slow query threshold, by table", "{query}")
	m.queryDuration = in.Histogram("db_query_duration_seconds", "Database query latency", "s", DBDurationBuckets...)
	if err := in.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// ObservePool reports sqlDB's connection counts on every metrics collection
func (m *DBMetrics) ObservePool(sqlDB *sql.DB) error {
	conns, err := m.meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return err
	}
	maxConns, err := m.meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum open connections allowed"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return err
	}

	m.registration, err = m.meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(maxConns, int64(stats.MaxOpenConnections))
		o.ObserveInt64(conns, int64(stats.Idle), metric.WithAttributes(AttrDBState.String("idle")))
		o.ObserveInt64(conns, int64(stats.InUse), metric.WithAttributes(AttrDBState.String("in_use")))
		o.ObserveInt64(conns, int64(stats.OpenConnections), metric.WithAttributes(AttrDBState.String("open")))
		return nil
	}, conns, maxConns)
	return err
}

// Stop unregisters the pool observer. Safe to call more than once.
func (m *DBMetrics) Stop() {
	m.stopOnce.Do(func() {
		if m.registration == nil {
			return
		}
		if err := m.registration.Unregister(); err != nil {
			m.logger.Warn("Failed to unregister pool metrics", zap.Error(err))
		}
	})
}

// RecordQuery counts one statement. Missing rows are not errors.
func (m *DBMetrics) RecordQuery(ctx context.Context, operation, table string, elapsed time.Duration, err error) {
	op := AttrDBOperation.String(strings.ToUpper(cmpOr(operation, "unknown")))

	m.queries.Inc(ctx, op)
	m.queryDuration.RecordDuration(ctx, elapsed, op)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		m.queryErrors.Inc(ctx, op)
	}
	if elapsed > m.slowQuery {
		m.slowQueries.Inc(ctx, AttrDBTable.String(cmpOr(table, "unknown")))
	}
}

func cmpOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// DBMetricsPlugin is a gorm plugin feeding DBMetrics
type DBMetricsPlugin struct {
	metrics *DBMetrics
	logger  *zap.Logger
}

// NewDBMetricsPlugin wraps metrics as a gorm plugin
func NewDBMetricsPlugin(metrics *DBMetrics, logger *zap.Logger) *DBMetricsPlugin {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBMetricsPlugin{metrics: metrics, logger: logger}
}

// Name implements gorm.Plugin
func (p *DBMetricsPlugin) Name() string {
	return "db_metrics"
}

// chainVerbs maps gorm callback chains to the SQL verb they run. Row and raw
// statements are classified from their SQL text.
var chainVerbs = map[string]string{
	"create": "INSERT",
	"query":  "SELECT",
	"update": "UPDATE",
	"delete": "DELETE",
	"row":    "",
	"raw":    "",
}

// Initialize implements gorm.Plugin
func (p *DBMetricsPlugin) Initialize(db *gorm.DB) error {
	chains := callbackChains(db)
	for op, verb := range chainVerbs {
		chain := chains[op]
		if err := chain.before("gorm:"+op).Register("db_metrics:before_"+op, markQueryStart); err != nil {
			return err
		}
		if err := chain.after("gorm:"+op).Register("db_metrics:after_"+op, p.afterStatement(verb)); err != nil {
			return err
		}
	}
	p.logger.Info("Database metrics plugin initialized")
	return nil
}

func (p *DBMetricsPlugin) afterStatement(verb string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		operation := verb
		if operation == "" {
			operation = detectOperationType(db.Statement.SQL.String())
		}
		elapsed, _ := QueryElapsed(ctx)
		p.metrics.RecordQuery(ctx, operation, db.Statement.Table, elapsed, db.Error)
	}
}

// detectOperationType classifies raw SQL by its leading keyword
func detectOperationType(query string) string {
	query = strings.ToUpper(strings.TrimSpace(query))
	for _, verb := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(query, verb) {
			return verb
		}
	}
	return "OTHER"
}

// RegisterDBMetrics installs query and pool metrics on db. It returns nil
// when metrics are disabled; otherwise call Stop on shutdown.
func RegisterDBMetrics(db *gorm.DB, meterProvider *MeterProvider, cfg DBMetricsConfig, logger *zap.Logger) (*DBMetrics, error) {
	if !cfg.Enabled || meterProvider == nil || !meterProvider.IsEnabled() {
		logger.Debug("Database metrics disabled")
		return nil, nil
	}

	metrics, err := NewDBMetrics(meterProvider.Meter("db.client"), cfg, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := metrics.ObservePool(sqlDB); err != nil {
		return nil, err
	}
	if err := db.Use(NewDBMetricsPlugin(metrics, logger)); err != nil {
		metrics.Stop()
		return nil, err
	}

	logger.Info("Database metrics registered", zap.Duration("slow_query_threshold", metrics.slowQuery))
	return metrics, nil
}
