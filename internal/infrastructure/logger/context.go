package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type scopeKey struct{}

// scope is the request-scoped logging state carried on a context
type scope struct {
	log       *zap.Logger
	requestID string
	userID    string
}

func scopeOf(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

func withScope(ctx context.Context, s scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// WithContext stores log as the context logger
func WithContext(ctx context.Context, log *zap.Logger) context.Context {
	s := scopeOf(ctx)
	s.log = log
	return withScope(ctx, s)
}

// FromContext returns the context logger, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if s := scopeOf(ctx); s.log != nil {
		return s.log
	}
	return zap.NewNop()
}

// WithRequestID records the request id and adds it to the context logger
func WithRequestID(ctx context.Context, requestID string) context.Context {
	s := scopeOf(ctx)
	s.requestID = requestID
	if s.log != nil {
		s.log = s.log.With(zap.String("request_id", requestID))
	}
	return withScope(ctx, s)
}

// WithUserID records the authenticated user and adds it to the context logger
func WithUserID(ctx context.Context, userID string) context.Context {
	s := scopeOf(ctx)
	s.userID = userID
	if s.log != nil {
		s.log = s.log.With(zap.String("user_id", userID))
	}
	return withScope(ctx, s)
}

func RequestID(ctx context.Context) string { return scopeOf(ctx).requestID }

func UserID(ctx context.Context) string { return scopeOf(ctx).userID }

// TraceID is the id of the active span's trace, or ""
func TraceID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		return sc.TraceID().String()
	}
	return ""
}

// L returns the context logger with trace_id and span_id attached when a
// span is active.
//
//	logger.L(ctx).Info("Expense created", zap.String("expense_id", id))
func L(ctx context.Context) *zap.Logger {
	log := FromContext(ctx)
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return log
	}
	return log.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}
