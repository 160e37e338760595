// Package server exposes dataset analyses over HTTP.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/otel/trace"

	"github.com/jeffcwolf/metadata-explorer/pkg/dataset"
	"github.com/jeffcwolf/metadata-explorer/pkg/observability"
	"github.com/jeffcwolf/metadata-explorer/pkg/plotpage"
)

const corsMaxAge = 300

// Deps holds the collaborators of the HTTP API.
type Deps struct {
	Session *dataset.Session
	Logger  *slog.Logger

	// Tracer enables per-request spans. Nil disables tracing.
	Tracer trace.Tracer
	// RED records request metrics. Nil disables them.
	RED *observability.REDMetrics
	// Metrics serves /metrics. Nil leaves the route unmounted.
	Metrics http.Handler

	FacetLimit     int
	Workers        int
	QualityCeiling int
	Theme          plotpage.Theme
	CORSOrigins    []string
}

// NewRouter builds the API router.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	theme := deps.Theme
	if theme == "" {
		theme = plotpage.ThemeLight
	}

	h := &handler{
		session:        deps.Session,
		logger:         logger,
		facetLimit:     deps.FacetLimit,
		workers:        deps.Workers,
		qualityCeiling: deps.QualityCeiling,
		theme:          theme,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(accessLog(logger))

	if len(deps.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: deps.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         corsMaxAge,
		}))
	}

	if deps.Tracer != nil {
		r.Use(observability.HTTPMiddleware(deps.Tracer, deps.RED, routePattern))
	}

	r.Method(http.MethodGet, "/healthz", observability.HealthHandler())
	r.Method(http.MethodGet, "/readyz", observability.ReadyHandler(deps.Session.Ready))

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Get("/report", h.htmlReport)

	r.Route("/api", func(r chi.Router) {
		r.Get("/dataset", h.datasetInfo)
		r.Post("/dataset/load", h.load)
		r.Get("/schema", h.schema)
		r.Get("/issues", h.issues)
		r.Get("/facets/{field}", h.facets)
		r.Get("/patterns/{field}", h.patterns)
		r.Get("/numeric/{field}", h.numeric)
		r.Get("/records", h.records)
		r.Get("/records/{index}", h.recordDetail)
	})

	return r
}

// routePattern reports the matched chi route, e.g. "/api/facets/{field}".
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ""
	}

	return rctx.RoutePattern()
}

func accessLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(rw, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.DebugContext(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"request_id", middleware.GetReqID(r.Context()),
				"elapsed", time.Since(start),
			)
		})
	}
}
