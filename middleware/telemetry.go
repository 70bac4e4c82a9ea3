package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/media-blog/api-go/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/media-blog/api-go/middleware"

// Telemetry opens a server span per request and records request count and
// latency. Without an installed SDK the global providers are no-ops.
func Telemetry() gin.HandlerFunc {
	tracer := otel.Tracer(instrumentationName)
	meter := otel.Meter(instrumentationName)

	requests, _ := meter.Int64Counter("http.server.request.count",
		metric.WithDescription("Total number of HTTP requests served"),
		metric.WithUnit("{request}"),
	)
	latency, _ := meter.Float64Histogram("http.server.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500),
	)

	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		ctx, span := tracer.Start(c.Request.Context(), c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", route),
			),
		)
		defer span.End()
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if user := utils.GetUser(c); user != nil {
			span.SetAttributes(attribute.Int("enduser.id", int(user.UserID)))
		}
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}

		attrs := metric.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		requests.Add(ctx, 1, attrs)
		latency.Record(ctx, float64(time.Since(start).Microseconds())/1000, attrs)
	}
}
