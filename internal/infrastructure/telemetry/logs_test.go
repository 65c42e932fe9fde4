package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// memoryExporter keeps exported records in memory
type memoryExporter struct {
	records []sdklog.Record
}

func (e *memoryExporter) Export(_ context.Context, records []sdklog.Record) error {
	for _, r := range records {
		e.records = append(e.records, r.Clone())
	}
	return nil
}

func (e *memoryExporter) Shutdown(context.Context) error   { return nil }
func (e *memoryExporter) ForceFlush(context.Context) error { return nil }

func newMemoryLoggerProvider(t *testing.T) (*LoggerProvider, *memoryExporter) {
	t.Helper()
	exporter := &memoryExporter{}
	provider := sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return &LoggerProvider{
		provider: provider,
		logger:   zap.NewNop(),
	}, exporter
}

func TestNewLoggerProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	lp, err := NewLoggerProvider(ctx, LogsConfig{Collector: Collector{ServiceName: "fintrack-test"}}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, lp.IsEnabled())
	assert.NoError(t, lp.ForceFlush(ctx))
	assert.NoError(t, lp.Shutdown(ctx))
}

func TestNewZapOTELCore_Disabled(t *testing.T) {
	core := NewZapOTELCore(ZapBridgeConfig{ServiceName: "fintrack-test"})
	assert.False(t, core.Enabled(zapcore.ErrorLevel))

	lp, err := NewLoggerProvider(context.Background(), LogsConfig{}, zap.NewNop())
	require.NoError(t, err)
	core = NewZapOTELCore(ZapBridgeConfig{LoggerProvider: lp})
	assert.False(t, core.Enabled(zapcore.ErrorLevel))
}

func TestNewZapOTELCore_ExportsEntries(t *testing.T) {
	lp, exporter := newMemoryLoggerProvider(t)
	require.True(t, lp.IsEnabled())

	core := NewZapOTELCore(ZapBridgeConfig{
		ServiceName:    "fintrack-test",
		LoggerProvider: lp,
		Level:          zapcore.InfoLevel,
	})
	log := zap.New(core).With(zap.String("user_id", "u-1"))

	log.Debug("dropped")
	log.Info("expense created", zap.String("expense_id", "e-1"))
	log.Error("email failed")
	require.NoError(t, lp.ForceFlush(context.Background()))

	require.Len(t, exporter.records, 2)
	assert.Equal(t, "expense created", exporter.records[0].Body().AsString())
	assert.Equal(t, "email failed", exporter.records[1].Body().AsString())

	attrs := map[string]string{}
	exporter.records[0].WalkAttributes(func(kv otellog.KeyValue) bool {
		attrs[kv.Key] = kv.Value.AsString()
		return true
	})
	assert.Equal(t, "u-1", attrs["user_id"])
	assert.Equal(t, "e-1", attrs["expense_id"])
}

func TestMinLevelCore(t *testing.T) {
	lp, _ := newMemoryLoggerProvider(t)

	warn := NewZapOTELCore(ZapBridgeConfig{LoggerProvider: lp, Level: zapcore.WarnLevel})
	assert.False(t, warn.Enabled(zapcore.InfoLevel))
	assert.True(t, warn.Enabled(zapcore.WarnLevel))

	derived := warn.With([]zapcore.Field{zap.String("k", "v")})
	assert.False(t, derived.Enabled(zapcore.InfoLevel))
	assert.True(t, derived.Enabled(zapcore.ErrorLevel))

	assert.Nil(t, warn.Check(zapcore.Entry{Level: zapcore.InfoLevel}, nil))
	assert.NotNil(t, warn.Check(zapcore.Entry{Level: zapcore.ErrorLevel}, nil))

	debug := NewZapOTELCore(ZapBridgeConfig{LoggerProvider: lp, Level: zapcore.DebugLevel})
	_, filtered := debug.(*minLevelCore)
	assert.False(t, filtered)
}
