package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := DefaultDBTracingConfig()

	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
	assert.Equal(t, "postgresql", cfg.DBSystem)
}

func TestNewDBTracingPlugin_DefaultsThreshold(t *testing.T) {
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, zap.NewNop())
	assert.Equal(t, 200*time.Millisecond, p.config.SlowQueryThresh)
}

func TestRegisterOtelGorm_Disabled(t *testing.T) {
	recorder := useRecorder(t)
	db := openSQLite(t)

	p := NewDBTracingPlugin(DBTracingConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, p.RegisterOtelGorm(db))

	require.NoError(t, db.Create(&probe{Name: "x"}).Error)
	assert.Empty(t, recorder.Ended())
}

func spanByTable(spans []tracetest.SpanStub, table string) []tracetest.SpanStub {
	var out []tracetest.SpanStub
	for _, s := range spans {
		for _, kv := range s.Attributes {
			if string(kv.Key) == "db.sql.table" && kv.Value.AsString() == table {
				out = append(out, s)
			}
		}
	}
	return out
}

func TestRegisterOtelGorm_Enabled(t *testing.T) {
	recorder := useRecorder(t)
	db := openSQLite(t)

	p := NewDBTracingPlugin(DBTracingConfig{
		Enabled:         true,
		SlowQueryThresh: time.Nanosecond,
		DBSystem:        "sqlite",
	}, zap.NewNop())
	require.NoError(t, p.RegisterOtelGorm(db))

	require.NoError(t, db.Create(&probe{Name: "traced"}).Error)

	var missing probe
	require.ErrorIs(t, db.First(&missing, 999).Error, gorm.ErrRecordNotFound)

	err := db.Table("no_such_table").Where("id = ?", 1).Find(&[]probe{}).Error
	require.Error(t, err)

	spans := tracetest.SpanStubsFromReadOnlySpans(recorder.Ended())
	require.NotEmpty(t, spans)

	probes := spanByTable(spans, "probes")
	require.Len(t, probes, 2)
	for _, s := range probes {
		attrs := attrMap(s.Attributes)
		assert.True(t, attrs["db.slow_query"].AsBool())
		assert.NotEqual(t, codes.Error, s.Status.Code, "not-found is not a failure")

		var events []string
		for _, e := range s.Events {
			events = append(events, e.Name)
		}
		assert.Contains(t, events, "slow_query_warning")
	}

	failed := spanByTable(spans, "no_such_table")
	require.Len(t, failed, 1)
	assert.Equal(t, codes.Error, failed[0].Status.Code)
}

func TestQueryElapsed(t *testing.T) {
	_, ok := QueryElapsed(context.Background())
	assert.False(t, ok)

	ctx := WithQueryStartTime(context.Background())
	time.Sleep(2 * time.Millisecond)
	elapsed, ok := QueryElapsed(ctx)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, elapsed, 2*time.Millisecond)
}
