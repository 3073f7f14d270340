// Package observability holds the Prometheus collectors for the API.
package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "wealthai"

const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeNotFound = "not_found"
)

type Metrics struct {
	// StoreOperations counts profile store calls.
	// Labels: operation (create_or_merge, read, update), outcome
	StoreOperations *prometheus.CounterVec

	// AssistantRequests counts generative-text calls.
	// Labels: outcome (success, error, unconfigured)
	AssistantRequests *prometheus.CounterVec

	AssistantDuration prometheus.Histogram

	// HTTPRequests counts handled requests. Labels: route, status
	HTTPRequests *prometheus.CounterVec

	// ActiveChatSessions tracks open in-memory chat sessions.
	ActiveChatSessions prometheus.Gauge
}

// NewMetrics registers all collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		StoreOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Profile store operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		AssistantRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "assistant",
			Name:      "requests_total",
			Help:      "Generative-text requests by outcome.",
		}, []string{"outcome"}),
		AssistantDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "assistant",
			Name:      "request_duration_seconds",
			Help:      "Latency of generative-text requests.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"route", "status"}),
		ActiveChatSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "chat",
			Name:      "active_sessions",
			Help:      "Open in-memory chat sessions.",
		}),
	}
}

// Default is used by packages that are wired without explicit metrics.
var Default = NewMetrics(prometheus.NewRegistry())

func (m *Metrics) ObserveStore(operation, outcome string) {
	m.StoreOperations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ObserveAssistant(outcome string, started time.Time) {
	m.AssistantRequests.WithLabelValues(outcome).Inc()
	m.AssistantDuration.Observe(time.Since(started).Seconds())
}

// Middleware counts requests by matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler serves the given gatherer in the Prometheus text format.
func Handler(g prometheus.Gatherer) gin.HandlerFunc {
	h := promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
