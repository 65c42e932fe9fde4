package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracing opens a server span per request with otelgin and annotates it.
// Paths starting with one of untraced get no span. Install it after
// RequestID.
func Tracing(service string, untraced ...string) []gin.HandlerFunc {
	traced := func(r *http.Request) bool {
		for _, prefix := range untraced {
			if strings.HasPrefix(r.URL.Path, prefix) {
				return false
			}
		}
		return true
	}
	return []gin.HandlerFunc{
		otelgin.Middleware(service, otelgin.WithFilter(traced)),
		AnnotateSpan(),
	}
}

// AnnotateSpan tags the active span with the request ID and, once the
// handler chain has run, the authenticated user. Any 4xx or 5xx status
// marks the span as failed.
func AnnotateSpan() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}
		if id := getRequestIDFromContext(c); id != "" {
			span.SetAttributes(attribute.String("request_id", id))
		}

		c.Next()

		if id := c.GetString(UserIDKey); id != "" {
			span.SetAttributes(attribute.String("user_id", id))
		}
		status := c.Writer.Status()
		if status >= http.StatusBadRequest {
			span.SetAttributes(attribute.Int("http.status_code", status))
			span.SetStatus(codes.Error, http.StatusText(status))
		}
		if err := c.Errors.Last(); err != nil {
			span.RecordError(err.Err)
		}
	}
}
