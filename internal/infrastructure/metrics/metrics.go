package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "news_classifier"

// Outcome labels for classifier calls
const (
	OutcomeSuccess        = "success"
	OutcomeRemoteError    = "remote_error"
	OutcomeTransportError = "transport_error"
)

// Metrics groups the collectors exported on /metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	ClassifierRequests *prometheus.CounterVec
	ClassifierLatency  *prometheus.HistogramVec
	ActiveSessions     prometheus.Gauge
	HTTPRequests       *prometheus.CounterVec
	HTTPLatency        *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ClassifierRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifier_requests_total",
			Help:      "Calls made to the remote classification service.",
		}, []string{"endpoint", "outcome"}),
		ClassifierLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classifier_request_duration_seconds",
			Help:      "Latency of calls to the remote classification service.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Interaction sessions currently alive.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Inbound HTTP requests.",
		}, []string{"method", "route", "status"}),
		HTTPLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of inbound HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.ClassifierRequests,
		m.ClassifierLatency,
		m.ActiveSessions,
		m.HTTPRequests,
		m.HTTPLatency,
	)

	return m
}

// NewRegistry returns a registry with the Go runtime and process collectors
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ObserveClassifierCall records one call to the classification service
func (m *Metrics) ObserveClassifierCall(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ClassifierRequests.WithLabelValues(endpoint, outcome).Inc()
	m.ClassifierLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveHTTPRequest records one inbound request
func (m *Metrics) ObserveHTTPRequest(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// SessionOpened increments the active session gauge
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.ActiveSessions.Inc()
}

// SessionClosed decrements the active session gauge
func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.ActiveSessions.Dec()
}
