package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for inbound requests, upstream
// calls and the response cache.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec   // labels: method, route, status
	HTTPRequestDuration *prometheus.HistogramVec // labels: method, route

	UpstreamRequests *prometheus.CounterVec   // labels: service, outcome={success,error}
	UpstreamDuration *prometheus.HistogramVec // labels: service

	CacheLookups *prometheus.CounterVec // labels: result={hit,miss,error}
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hsviewer",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hsviewer",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"method", "route"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hsviewer",
			Name:      "upstream_requests_total",
			Help:      "Upstream requests by service and outcome.",
		}, []string{"service", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hsviewer",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"service"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hsviewer",
			Name:      "cache_lookups_total",
			Help:      "Upstream response cache lookups by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.CacheLookups,
	)

	return m
}

// NewMetricsForTesting registers the collectors with a private registry so
// tests can build as many as they need.
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
