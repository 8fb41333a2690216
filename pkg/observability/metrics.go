package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/trailhead/pkg/dispatcher"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "trailhead"

// Metrics holds the collectors for tool calls and exchanges.
type Metrics struct {
	ToolCalls      *prometheus.CounterVec
	ToolDuration   *prometheus.HistogramVec
	OpenSessions   prometheus.Gauge
	ProtocolErrors *prometheus.CounterVec
	UpstreamCalls  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ToolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tool_calls_total",
				Help:      "Total number of tool calls by tool and outcome.",
			},
			[]string{"tool", "outcome"},
		),
		ToolDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tool_duration_seconds",
				Help:      "Duration of tool calls.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		OpenSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_sessions",
			Help:      "Sessions created and not yet released.",
		}),
		ProtocolErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "protocol_errors_total",
				Help:      "JSON-RPC error replies by code.",
			},
			[]string{"code"},
		),
		UpstreamCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Requests to the parks API by endpoint and result.",
			},
			[]string{"endpoint", "result"},
		),
	}

	for _, c := range []prometheus.Collector{m.ToolCalls, m.ToolDuration, m.OpenSessions, m.ProtocolErrors, m.UpstreamCalls} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// DispatcherHooks returns hooks that record each completed call.
// A nil receiver yields empty hooks.
func (m *Metrics) DispatcherHooks() dispatcher.Hooks {
	if m == nil {
		return dispatcher.Hooks{}
	}
	return dispatcher.Hooks{
		OnComplete: func(_ context.Context, e dispatcher.CompletionEvent) {
			tool := e.Tool
			if e.Kind == dispatcher.KindUnknownTool || e.Kind == dispatcher.KindMissingArguments {
				// Caller-supplied names would give unbounded label cardinality.
				tool = "unknown"
			}
			m.ToolCalls.WithLabelValues(tool, e.Kind.Outcome()).Inc()
			m.ToolDuration.WithLabelValues(tool).Observe(e.Duration.Seconds())
		},
	}
}

// SessionOpened records a new session.
func (m *Metrics) SessionOpened() {
	if m != nil {
		m.OpenSessions.Inc()
	}
}

// SessionClosed records a released session.
func (m *Metrics) SessionClosed() {
	if m != nil {
		m.OpenSessions.Dec()
	}
}

// ProtocolError counts a JSON-RPC error reply.
func (m *Metrics) ProtocolError(code int) {
	if m != nil {
		m.ProtocolErrors.WithLabelValues(strconv.Itoa(code)).Inc()
	}
}

// UpstreamRequest counts one request to the parks API.
func (m *Metrics) UpstreamRequest(endpoint string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.UpstreamCalls.WithLabelValues(endpoint, result).Inc()
}
