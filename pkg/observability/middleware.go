package observability

import (
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const httpStatusServerError = 500

// RouteFunc resolves the route template of a handled request, such as
// "/api/facets/{field}". It is called after the handler ran.
type RouteFunc func(r *http.Request) string

// statusWriter wraps [http.ResponseWriter] to capture the status code.
type statusWriter struct {
	http.ResponseWriter

	statusCode int
	written    bool
}

// WriteHeader captures the status code before delegating to the wrapped writer.
func (sw *statusWriter) WriteHeader(code int) {
	if !sw.written {
		sw.statusCode = code
		sw.written = true
	}

	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(buf []byte) (int, error) {
	if !sw.written {
		sw.statusCode = http.StatusOK
		sw.written = true
	}

	n, err := sw.ResponseWriter.Write(buf)
	if err != nil {
		return n, fmt.Errorf("write response: %w", err)
	}

	return n, nil
}

// HTTPMiddleware creates a server span per request and, when red is
// non-nil, records RED metrics keyed by "METHOD route". A nil route uses
// the raw path.
func HTTPMiddleware(tracer trace.Tracer, red *REDMetrics, route RouteFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, hr *http.Request) {
			start := time.Now()
			parentCtx := otel.GetTextMapPropagator().Extract(hr.Context(), propagation.HeaderCarrier(hr.Header))

			ctx, span := tracer.Start(parentCtx, hr.Method+" "+hr.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(hr.Method),
					attribute.String("http.target", hr.URL.Path),
				),
			)
			defer span.End()

			sw := &statusWriter{ResponseWriter: rw, statusCode: http.StatusOK}
			req := hr.WithContext(ctx)
			next.ServeHTTP(sw, req)

			op := hr.Method + " " + hr.URL.Path
			if route != nil {
				if pattern := route(req); pattern != "" {
					op = hr.Method + " " + pattern
					span.SetName(op)
					span.SetAttributes(semconv.HTTPRoute(pattern))
				}
			}

			span.SetAttributes(semconv.HTTPResponseStatusCode(sw.statusCode))

			status := StatusOK
			if sw.statusCode >= httpStatusServerError {
				span.SetStatus(codes.Error, http.StatusText(sw.statusCode))

				status = StatusError
			}

			if red != nil {
				red.RecordRequest(ctx, op, status, time.Since(start))
			}
		})
	}
}
