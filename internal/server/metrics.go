package server

import (
	"net/http"

	"github.com/iwvelando/prequal/pkg/prequal"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the collectors exported on /metrics. Each handler owns its
// registry so handlers built in tests do not collide.
type metrics struct {
	registry *prometheus.Registry
	verdicts *prometheus.CounterVec
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prequal",
			Name:      "verdicts_total",
			Help:      "Pre-qualification verdicts by status and loan category.",
		}, []string{"status", "category"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prequal",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint and response code.",
		}, []string{"endpoint", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "prequal",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by endpoint.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
	m.registry.MustRegister(m.verdicts, m.requests, m.duration)
	return m
}

func (m *metrics) observeVerdict(result prequal.Result) {
	m.verdicts.WithLabelValues(string(result.Status), string(result.Category)).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
