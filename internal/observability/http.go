package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// InstrumentationName scopes the HTTP server's tracer and meter.
const InstrumentationName = "github.com/d9705996/teamconnect/internal/api"

// HTTPMetrics records one counter increment and one duration sample per
// served request, labelled by method, route pattern and status.
type HTTPMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// NewHTTPMetrics registers the request instruments on mp.
func NewHTTPMetrics(mp metric.MeterProvider) (*HTTPMetrics, error) {
	meter := mp.Meter(InstrumentationName)
	requests, err := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Number of HTTP requests served."))
	if err != nil {
		return nil, fmt.Errorf("request counter: %w", err)
	}
	duration, err := meter.Float64Histogram("http.server.duration",
		metric.WithDescription("Duration of HTTP requests."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("duration histogram: %w", err)
	}
	return &HTTPMetrics{requests: requests, duration: duration}, nil
}

// RequestAttributes are the labels shared by spans and request metrics.
func RequestAttributes(method, route string, status int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
	}
}

// Record adds one served request.
func (m *HTTPMetrics) Record(ctx context.Context, elapsed time.Duration, attrs ...attribute.KeyValue) {
	set := metric.WithAttributes(attrs...)
	m.requests.Add(ctx, 1, set)
	m.duration.Record(ctx, elapsed.Seconds(), set)
}
