package middleware

import (
	"time"

	"github.com/fintrack/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// unmatchedRoute labels requests no route matched, keeping raw paths out
// of the attribute set
const unmatchedRoute = "unmatched"

// HTTPMetrics counts requests by method, route and status and records
// latency and response size. A nil or disabled provider yields a
// pass-through handler.
func HTTPMetrics(mp *telemetry.MeterProvider) gin.HandlerFunc {
	if mp == nil || !mp.IsEnabled() {
		return passThrough
	}
	return HTTPMetricsWithMeter(mp.Meter("http.server"))
}

// HTTPMetricsWithMeter records onto meter directly
func HTTPMetricsWithMeter(meter metric.Meter) gin.HandlerFunc {
	in := telemetry.NewInstruments(meter)
	requests := in.Counter("http_server_request_total", "Total number of HTTP requests", "{request}")
	latency := in.Histogram("http_server_request_duration_seconds", "HTTP request latency distribution in seconds", "s", telemetry.HTTPDurationBuckets...)
	sizes := in.Histogram("http_server_response_size_bytes", "HTTP response body size distribution in bytes", "By", telemetry.ResponseSizeBuckets...)
	inflight := in.UpDown("http_server_active_requests", "Number of currently active HTTP requests", "{request}")
	if in.Err() != nil {
		return passThrough
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		began := time.Now()
		inflight.Add(ctx, 1)
		defer inflight.Add(ctx, -1)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		attrs := []attribute.KeyValue{
			telemetry.AttrHTTPMethod.String(c.Request.Method),
			telemetry.AttrHTTPRoute.String(route),
		}
		latency.RecordDuration(ctx, time.Since(began), attrs...)
		if n := c.Writer.Size(); n > 0 {
			sizes.Record(ctx, float64(n), attrs...)
		}
		requests.Inc(ctx, append(attrs, telemetry.AttrHTTPStatusCode.Int(c.Writer.Status()))...)
	}
}

func passThrough(c *gin.Context) { c.Next() }
