package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// GormConfig configures the gorm logger
type GormConfig struct {
	// Level is the application log level; debug and info log every statement
	Level         string
	SlowThreshold time.Duration
	// LogNotFound logs ErrRecordNotFound as an SQL error
	LogNotFound bool
}

// GormLogger writes gorm statements to zap, tagged with the request, user
// and trace of the calling context.
type GormLogger struct {
	log           *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
	logNotFound   bool
}

// NewGormLogger returns a gorm logger named "gorm" under log
func NewGormLogger(log *zap.Logger, cfg GormConfig) *GormLogger {
	return &GormLogger{
		log:           log.Named("gorm"),
		level:         GormLevel(cfg.Level),
		slowThreshold: cfg.SlowThreshold,
		logNotFound:   cfg.LogNotFound,
	}
}

// GormLevel maps an application log level to gorm's. Statements are only
// traced at debug and info; anything unknown keeps slow and failed queries.
func GormLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug", "info":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	case "silent":
		return gormlogger.Silent
	default:
		return gormlogger.Warn
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.log.Sugar().Infof(msg, args...)
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.log.Sugar().Warnf(msg, args...)
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.log.Sugar().Errorf(msg, args...)
	}
}

// Trace logs one finished statement: failures at error, slow statements at
// warn and everything else at debug when the level is Info.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	failed := err != nil && (l.logNotFound || !errors.Is(err, gormlogger.ErrRecordNotFound))
	slow := l.slowThreshold > 0 && elapsed > l.slowThreshold

	var (
		lvl = gormlogger.Info
		msg = "SQL query"
	)
	switch {
	case failed:
		lvl, msg = gormlogger.Error, "SQL error"
	case slow:
		lvl, msg = gormlogger.Warn, "Slow SQL query"
	case err != nil:
		return
	}
	if l.level < lvl {
		return
	}

	sql, rows := fc()
	fields := append(contextFields(ctx),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	)
	switch lvl {
	case gormlogger.Error:
		l.log.Error(msg, append(fields, zap.Error(err))...)
	case gormlogger.Warn:
		l.log.Warn(msg, append(fields, zap.Duration("threshold", l.slowThreshold))...)
	default:
		l.log.Debug(msg, fields...)
	}
}

// contextFields collects request_id, user_id and trace_id from ctx
func contextFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 6)
	if id := RequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if id := UserID(ctx); id != "" {
		fields = append(fields, zap.String("user_id", id))
	}
	if id := TraceID(ctx); id != "" {
		fields = append(fields, zap.String("trace_id", id))
	}
	return fields
}
