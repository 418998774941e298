package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/d9705996/teamconnect/internal/observability"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// RequestIDHeader is echoed on every response.
const RequestIDHeader = "X-Request-ID"

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Observe assigns a request id, opens a span, records request metrics and
// logs one line per request.
func Observe(log *slog.Logger) (func(http.Handler) http.Handler, error) {
	metrics, err := observability.NewHTTPMetrics(otel.GetMeterProvider())
	if err != nil {
		return nil, err
	}
	tracer := otel.Tracer(observability.InstrumentationName)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqID := r.Header.Get(RequestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, reqID)

			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, r.Method, trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			req := r.WithContext(ctx)
			next.ServeHTTP(rec, req)

			// Mux patterns already carry the method, e.g. "GET /api/posts".
			route := req.Pattern
			if route == "" {
				route = "unmatched"
			} else {
				span.SetName(route)
			}
			elapsed := time.Since(start)
			attrs := observability.RequestAttributes(r.Method, route, rec.status)
			span.SetAttributes(append(attrs, attribute.String("request.id", reqID))...)
			metrics.Record(ctx, elapsed, attrs...)

			log.InfoContext(ctx, "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"route", route,
				"status", rec.status,
				"duration_ms", elapsed.Milliseconds(),
				"request_id", reqID,
			)
		})
	}, nil
}
