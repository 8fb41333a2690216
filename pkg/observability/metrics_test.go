package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/trailhead/pkg/dispatcher"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err, "registering the same collectors twice must fail")
}

func TestDispatcherHooks_RecordsCompletion(t *testing.T) {
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	hooks := m.DispatcherHooks()
	require.NotNil(t, hooks.OnComplete)

	ctx := context.Background()
	hooks.OnComplete(ctx, dispatcher.CompletionEvent{Tool: "findParks", Kind: dispatcher.KindNone, Duration: 10 * time.Millisecond})
	hooks.OnComplete(ctx, dispatcher.CompletionEvent{Tool: "findParks", Kind: dispatcher.KindInvalidArguments})
	hooks.OnComplete(ctx, dispatcher.CompletionEvent{Tool: "whatever", Kind: dispatcher.KindUnknownTool})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolCalls.WithLabelValues("findParks", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolCalls.WithLabelValues("findParks", "invalid_arguments")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolCalls.WithLabelValues("unknown", "unknown_tool")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ToolCalls.WithLabelValues("whatever", "unknown_tool")))
}

func TestSessionGauge(t *testing.T) {
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OpenSessions))
}

func TestCounters(t *testing.T) {
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.ProtocolError(-32700)
	m.UpstreamRequest("/parks", nil)
	m.UpstreamRequest("/parks", errors.New("down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProtocolErrors.WithLabelValues("-32700")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamCalls.WithLabelValues("/parks", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamCalls.WithLabelValues("/parks", "error")))
}

func TestNilMetrics_IsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SessionOpened()
		m.SessionClosed()
		m.ProtocolError(1)
		m.UpstreamRequest("/x", nil)
		_ = m.DispatcherHooks()
	})
}
