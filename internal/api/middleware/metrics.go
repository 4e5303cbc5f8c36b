package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus collectors
type Metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	latency        *prometheus.HistogramVec
	transcriptions *prometheus.CounterVec
	cleanings      *prometheus.CounterVec
}

// NewMetrics registers the HTTP and pipeline collectors on a new registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tmate",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tmate",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"route", "method"}),
		transcriptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tmate",
			Name:      "transcriptions_total",
			Help:      "Transcription attempts by outcome.",
		}, []string{"outcome"}),
		cleanings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tmate",
			Name:      "cleanings_total",
			Help:      "Cleaning attempts by outcome; fallback and skipped return the original text.",
		}, []string{"outcome"}),
	}

	registry.MustRegister(
		m.requests,
		m.latency,
		m.transcriptions,
		m.cleanings,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records request counts and latency per matched route
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if route == "/metrics" {
			return
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// RecordTranscription counts a transcription outcome ("success" or "error")
func (m *Metrics) RecordTranscription(outcome string) {
	if m == nil {
		return
	}
	m.transcriptions.WithLabelValues(outcome).Inc()
}

// RecordCleaning counts a cleaning outcome ("success", "fallback" or "skipped")
func (m *Metrics) RecordCleaning(outcome string) {
	if m == nil {
		return
	}
	m.cleanings.WithLabelValues(outcome).Inc()
}
