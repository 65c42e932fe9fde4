package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap/zaptest"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	tp, err := NewTracerProvider(ctx, Config{
		Enabled:       false,
		SamplingRatio: 1.0,
		Collector:     Collector{Endpoint: "localhost:14317", ServiceName: "fintrack-test"},
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, tp)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.ForceFlush(ctx))
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestNewTracerProvider_Enabled(t *testing.T) {
	// Needs a collector on localhost:14317
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	tp, err := NewTracerProvider(ctx, Config{
		Enabled:       true,
		SamplingRatio: 1.0,
		Collector:     Collector{Endpoint: "localhost:14317", ServiceName: "fintrack-test", Insecure: true},
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.True(t, tp.IsEnabled())

	_, span := tp.Tracer("test").Start(ctx, "test-span")
	span.End()

	assert.NoError(t, tp.ForceFlush(ctx))
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		name     string
		ratio    float64
		contains string
	}{
		{"always", 1.0, "AlwaysOnSampler"},
		{"above one", 2.5, "AlwaysOnSampler"},
		{"never", 0, "AlwaysOffSampler"},
		{"negative", -1, "AlwaysOffSampler"},
		{"ratio", 0.25, "TraceIDRatioBased"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := samplerFor(tc.ratio)
			assert.Contains(t, s.Description(), "ParentBased")
			assert.Contains(t, s.Description(), tc.contains)
		})
	}
}

func TestSamplerFor_ParentDecisionWins(t *testing.T) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(samplerFor(0)))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("test").Start(context.Background(), "root")
	defer span.End()
	assert.False(t, span.SpanContext().IsSampled())
}

func TestNewResource(t *testing.T) {
	t.Run("carries service name and version", func(t *testing.T) {
		res, err := Collector{ServiceName: "fintrack", ServiceVersion: "1.2.3"}.resource()
		require.NoError(t, err)

		name, ok := res.Set().Value(semconv.ServiceNameKey)
		require.True(t, ok)
		assert.Equal(t, "fintrack", name.AsString())

		version, ok := res.Set().Value(semconv.ServiceVersionKey)
		require.True(t, ok)
		assert.Equal(t, "1.2.3", version.AsString())
	})

	t.Run("defaults version", func(t *testing.T) {
		res, err := newResource("fintrack", "")
		require.NoError(t, err)

		version, ok := res.Set().Value(semconv.ServiceVersionKey)
		require.True(t, ok)
		assert.Equal(t, "dev", version.AsString())
	})
}
