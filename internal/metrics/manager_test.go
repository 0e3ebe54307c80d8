package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_ObserveFrame(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.ObserveFrame("squat", OutcomeCorrect, 90)
	m.ObserveFrame("squat", OutcomeCorrect, 80)
	m.ObserveFrame("squat", OutcomeOutOfView, 0)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.CounterFrames.WithLabelValues("squat", OutcomeCorrect)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterFrames.WithLabelValues("squat", OutcomeOutOfView)))

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "formcheck_test_server_frame_score" {
			h := mf.GetMetric()[0].GetHistogram()
			assert.Equal(t, uint64(2), h.GetSampleCount(), "out-of-view frames are not scored")
			assert.InDelta(t, 170, h.GetSampleSum(), 1e-9)
			return
		}
	}
	t.Fatal("frame_score histogram not registered")
}

func TestManager_RepsAndHold(t *testing.T) {
	m := NewTestManager()

	m.AddReps("pushup", 1)
	m.AddReps("pushup", 0)
	m.AddReps("pushup", -3)
	m.AddHoldSeconds("plank", 1.5)
	m.AddHoldSeconds("plank", 0)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterReps.WithLabelValues("pushup")))
	assert.InDelta(t, 1.5, testutil.ToFloat64(m.CounterHoldSeconds.WithLabelValues("plank")), 1e-9)
}

func TestManager_SessionEvents(t *testing.T) {
	m := NewTestManager()

	m.SessionEvent(EventStarted)
	m.SessionEvent(EventStarted)
	m.SessionEvent(EventSwitched)
	m.SessionEvent(EventEnded)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.GaugeActiveSessions))

	m.SessionEvent(EventEvicted)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.GaugeActiveSessions))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CounterSessions.WithLabelValues(EventStarted)))
}

func TestManager_NilIsNoop(t *testing.T) {
	var m *Manager
	assert.NotPanics(t, func() {
		m.ObserveFrame("squat", OutcomeCorrect, 50)
		m.AddReps("squat", 1)
		m.AddHoldSeconds("plank", 1)
		m.SessionEvent(EventStarted)
		m.ObserveRequest("GET", 200, time.Millisecond)
	})
}

func TestManager_ObserveRequest(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.ObserveRequest("POST", 201, 2*time.Millisecond)
	m.ObserveRequest("POST", 201, time.Millisecond)
	m.ObserveRequest("GET", 404, time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.CounterRequests.WithLabelValues("POST", "201")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterRequests.WithLabelValues("GET", "404")))

	n, err := testutil.GatherAndCount(reg, "formcheck_test_server_request_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSetupPrometheus(t *testing.T) {
	reg := SetupPrometheus()
	m := NewManager("formcheck", "server", reg)
	m.SessionEvent(EventStarted)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["go_goroutines"])
	assert.True(t, names["formcheck_server_active_sessions"])
}
