package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects application metrics on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	assistantAnswers *prometheus.CounterVec
	retrievalScore   prometheus.Histogram
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blog_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "blog_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		assistantAnswers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blog_assistant_answers_total",
				Help: "Support assistant answers by source",
			},
			[]string{"source"},
		),
		retrievalScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "blog_assistant_retrieval_score",
				Help:    "Best knowledge base retrieval score per question",
				Buckets: []float64{0, 0.2, 0.5, 1, 1.5, 2, 3, 5, 8},
			},
		),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.assistantAnswers,
		m.retrievalScore,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records one served request. route should be the router
// pattern, not the raw path.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAnswer counts an assistant answer. Sources of the form "kb:<id>" are
// collapsed to "kb".
func (m *Metrics) RecordAnswer(source string) {
	if m == nil {
		return
	}
	if strings.HasPrefix(source, "kb:") {
		source = "kb"
	}
	m.assistantAnswers.WithLabelValues(source).Inc()
}

// ObserveRetrievalScore records the best retrieval score for a question.
func (m *Metrics) ObserveRetrievalScore(score float64) {
	if m == nil {
		return
	}
	m.retrievalScore.Observe(score)
}
