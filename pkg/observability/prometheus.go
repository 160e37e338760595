package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Prometheus pairs an OTel metric reader with the /metrics scrape handler
// serving what that reader collects.
type Prometheus struct {
	// Reader is passed to [Init] so the meter provider feeds the registry.
	Reader sdkmetric.Reader
	// Handler serves the Prometheus text exposition format.
	Handler http.Handler
}

// NewPrometheus creates an exporter on a private registry, so repeated
// calls never collide on collector registration.
func NewPrometheus() (*Prometheus, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	return &Prometheus{
		Reader:  exporter,
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}, nil
}
