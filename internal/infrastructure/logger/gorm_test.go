package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

var _ gormlogger.Interface = (*GormLogger)(nil)

func selectExpenses() (string, int64) {
	return "SELECT * FROM expenses WHERE user_id = ?", 3
}

func TestGormLogger_LogModeCopies(t *testing.T) {
	gormLog := NewGormLogger(zap.NewNop(), GormConfig{Level: "info", SlowThreshold: time.Second})
	changed, ok := gormLog.LogMode(gormlogger.Warn).(*GormLogger)
	require.True(t, ok)

	assert.Equal(t, gormlogger.Info, gormLog.level)
	assert.Equal(t, gormlogger.Warn, changed.level)
	assert.Equal(t, time.Second, changed.slowThreshold)
}

func TestGormLogger_Trace(t *testing.T) {
	tests := []struct {
		name    string
		cfg     GormConfig
		age     time.Duration
		err     error
		level   zapcore.Level
		message string
	}{
		{"error", GormConfig{Level: "error"}, 0, errors.New("boom"), zapcore.ErrorLevel, "SQL error"},
		{"not found is skipped", GormConfig{Level: "info"}, 0, gormlogger.ErrRecordNotFound, 0, ""},
		{"not found when asked", GormConfig{Level: "error", LogNotFound: true}, 0, gormlogger.ErrRecordNotFound, zapcore.ErrorLevel, "SQL error"},
		{"slow query", GormConfig{Level: "warn", SlowThreshold: time.Millisecond}, time.Second, nil, zapcore.WarnLevel, "Slow SQL query"},
		{"slow query below level", GormConfig{Level: "error", SlowThreshold: time.Millisecond}, time.Second, nil, 0, ""},
		{"normal query", GormConfig{Level: "debug"}, 0, nil, zapcore.DebugLevel, "SQL query"},
		{"normal query at warn", GormConfig{Level: "warn"}, 0, nil, 0, ""},
		{"silent", GormConfig{Level: "silent"}, 0, errors.New("boom"), 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.DebugLevel)
			gormLog := NewGormLogger(zap.New(core), tc.cfg)

			gormLog.Trace(context.Background(), time.Now().Add(-tc.age), selectExpenses, tc.err)

			if tc.message == "" {
				assert.Empty(t, recorded.All())
				return
			}
			logs := recorded.All()
			require.Len(t, logs, 1)
			assert.Equal(t, tc.message, logs[0].Message)
			assert.Equal(t, tc.level, logs[0].Level)
			assert.Equal(t, "gorm", logs[0].LoggerName)
		})
	}
}

func TestGormLogger_Trace_CarriesRequestFields(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gormLog := NewGormLogger(zap.New(core), GormConfig{Level: "info"})

	ctx := WithUserID(WithRequestID(context.Background(), "req-7"), "user-1")
	gormLog.Trace(ctx, time.Now(), selectExpenses, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	fields := logs[0].ContextMap()
	assert.Equal(t, "req-7", fields["request_id"])
	assert.Equal(t, "user-1", fields["user_id"])
	assert.Equal(t, int64(3), fields["rows"])
	assert.NotContains(t, fields, "trace_id")
}

func TestGormLevel(t *testing.T) {
	tests := map[string]gormlogger.LogLevel{
		"silent":  gormlogger.Silent,
		"error":   gormlogger.Error,
		"warn":    gormlogger.Warn,
		"info":    gormlogger.Info,
		"debug":   gormlogger.Info,
		"unknown": gormlogger.Warn,
	}
	for level, expected := range tests {
		t.Run(level, func(t *testing.T) {
			assert.Equal(t, expected, GormLevel(level))
		})
	}
}
