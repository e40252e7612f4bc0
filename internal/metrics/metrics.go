// Package metrics exposes request-level Prometheus instrumentation for the
// HTTP API. Collectors live in a private registry so tests can build isolated
// instances.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the request collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec
}

// New builds a metrics bundle backed by a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests processed, labeled by method, path and status code.",
		}, []string{"method", "path", "status_code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds, labeled by method and path.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.075, 0.1, 0.25, 0.5, 0.75, 1.0, 2.5, 5.0, 7.5, 10.0},
		}, []string{"method", "path"}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total HTTP responses with a 4xx or 5xx status, labeled by method, path and status code.",
		}, []string{"method", "path", "status_code"}),
	}

	registry.MustRegister(m.requestsTotal, m.requestDuration, m.errorsTotal)
	return m
}

// Observe records one completed request.
func (m *Metrics) Observe(method, path, statusCode string, seconds float64) {
	m.requestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(seconds)
	if len(statusCode) > 0 && (statusCode[0] == '4' || statusCode[0] == '5') {
		m.errorsTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// Handler serves the registry in the Prometheus text exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
