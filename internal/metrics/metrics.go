package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	registry *prometheus.Registry

	// Tool metrics
	ToolInvocationsTotal   *prometheus.CounterVec
	ToolInvocationDuration *prometheus.HistogramVec

	// Registry metrics
	AgentsCreatedTotal prometheus.Counter
	TransfersTotal     prometheus.Counter
	TransferredSOL     prometheus.Counter

	// Health metrics
	HealthChecksTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		ToolInvocationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tool_invocations_total",
				Help: "Total number of tool invocations",
			},
			[]string{"tool", "status"},
		),
		ToolInvocationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tool_invocation_duration_seconds",
				Help:    "Duration of tool invocations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool"},
		),

		AgentsCreatedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "agents_created_total",
				Help: "Total number of agents registered",
			},
		),
		TransfersTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "transfers_total",
				Help: "Total number of applied transfers",
			},
		),
		TransferredSOL: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "transferred_sol_total",
				Help: "Total volume moved by transfers, in SOL",
			},
		),

		HealthChecksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "health_checks_total",
				Help: "Total number of health checks by reported status",
			},
			[]string{"status"},
		),
	}

	registry.MustRegister(
		m.ToolInvocationsTotal,
		m.ToolInvocationDuration,
		m.AgentsCreatedTotal,
		m.TransfersTotal,
		m.TransferredSOL,
		m.HealthChecksTotal,
	)

	return m
}

// Handler returns an HTTP handler for the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
