// Package metrics exposes Prometheus instrumentation for the flow service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quotedeck/flowkit/internal/runtime"
	"github.com/quotedeck/flowkit/pkg/domain"
)

// Metrics holds the service-level instruments on a private registry, so tests
// can create instances without colliding on the global default.
type Metrics struct {
	registry *prometheus.Registry

	SessionsStarted  *prometheus.CounterVec
	AnswersSubmitted *prometheus.CounterVec
	EngineErrors     *prometheus.CounterVec
	NodeVisits       *prometheus.CounterVec
	FlowsValidated   prometheus.Counter
}

// New creates and registers the instruments.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SessionsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowkit_sessions_started_total",
				Help: "Total number of intake sessions started",
			},
			[]string{"flow_id"},
		),
		AnswersSubmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowkit_answers_submitted_total",
				Help: "Total number of answers submitted",
			},
			[]string{"flow_id"},
		),
		EngineErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowkit_engine_errors_total",
				Help: "Total number of execution errors surfaced to callers",
			},
			[]string{"kind"},
		),
		NodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowkit_node_visits_total",
				Help: "Total number of node entries, by node kind",
			},
			[]string{"kind"},
		),
		FlowsValidated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "flowkit_flows_validated_total",
				Help: "Total number of validation runs",
			},
		),
	}

	m.registry.MustRegister(
		m.SessionsStarted,
		m.AnswersSubmitted,
		m.EngineErrors,
		m.NodeVisits,
		m.FlowsValidated,
	)
	return m
}

// Handler returns the /metrics HTTP handler for the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// EngineHooks builds runtime lifecycle hooks that feed the instruments.
func (m *Metrics) EngineHooks() runtime.Hooks {
	return runtime.Hooks{
		OnNodeEnter: func(nodeID string, kind domain.NodeKind) {
			m.NodeVisits.WithLabelValues(string(kind)).Inc()
		},
	}
}
