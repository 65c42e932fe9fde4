package telemetry

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Settings selects the exported signals. Disabled signals get no-op
// providers, so callers never branch on them.
type Settings struct {
	Collector       Collector
	Traces          bool
	SamplingRatio   float64
	Metrics         bool
	MetricsInterval time.Duration
	Logs            bool
}

// Signals holds one provider per OpenTelemetry signal
type Signals struct {
	Traces  *TracerProvider
	Metrics *MeterProvider
	Logs    *LoggerProvider
}

// Setup starts the providers named by s and registers them globally. On
// failure the providers already started are shut down again.
func Setup(ctx context.Context, s Settings, log *zap.Logger) (*Signals, error) {
	sig := &Signals{}
	var err error
	if sig.Traces, err = NewTracerProvider(ctx, Config{
		Enabled:       s.Traces,
		SamplingRatio: s.SamplingRatio,
		Collector:     s.Collector,
	}, log); err != nil {
		return nil, err
	}
	if sig.Metrics, err = NewMeterProvider(ctx, MetricsConfig{
		Enabled:        s.Metrics,
		ExportInterval: s.MetricsInterval,
		Collector:      s.Collector,
	}, log); err != nil {
		_ = sig.Shutdown(ctx)
		return nil, err
	}
	if sig.Logs, err = NewLoggerProvider(ctx, LogsConfig{
		Enabled:   s.Logs,
		Collector: s.Collector,
	}, log); err != nil {
		_ = sig.Shutdown(ctx)
		return nil, err
	}
	return sig, nil
}

// Shutdown flushes logs first, then metrics and traces, so records emitted
// while the others stop are still exported. Nil providers are skipped.
func (s *Signals) Shutdown(ctx context.Context) error {
	var errs []error
	if s.Logs != nil {
		errs = append(errs, s.Logs.Shutdown(ctx))
	}
	if s.Metrics != nil {
		errs = append(errs, s.Metrics.Shutdown(ctx))
	}
	if s.Traces != nil {
		errs = append(errs, s.Traces.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
