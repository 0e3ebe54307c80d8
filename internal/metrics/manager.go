package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Frame outcomes used as the "outcome" label.
const (
	OutcomeCorrect   = "correct"
	OutcomeIncorrect = "incorrect"
	OutcomeOutOfView = "out_of_view"
)

// Session lifecycle events used as the "event" label.
const (
	EventStarted  = "started"
	EventEnded    = "ended"
	EventEvicted  = "evicted"
	EventSwitched = "switched"
)

type Manager struct {
	// counters
	CounterFrames      *prometheus.CounterVec
	CounterReps        *prometheus.CounterVec
	CounterHoldSeconds *prometheus.CounterVec
	CounterSessions    *prometheus.CounterVec
	CounterRequests    *prometheus.CounterVec

	// gauges
	GaugeActiveSessions prometheus.Gauge

	// histograms
	HistScore           *prometheus.HistogramVec
	HistRequestDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("formcheck", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("formcheck", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterFrames := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "frames_analyzed",
		Help:      "The total number of analysed pose frames",
	}, []string{"exercise", "outcome"})
	counterReps := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "reps",
		Help:      "The total number of counted repetitions",
	}, []string{"exercise"})
	counterHoldSeconds := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "hold_seconds",
		Help:      "Total seconds of correctly held static exercises",
	}, []string{"exercise"})
	counterSessions := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "session_events",
		Help:      "Session lifecycle events",
	}, []string{"event"})
	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})

	gaugeActiveSessions := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "active_sessions",
		Help:      "Current number of live sessions",
	})

	histScore := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
			Name:      "frame_score",
			Help:      "Form score of in-view frames",
		},
		[]string{"exercise"},
	)
	histReqDuration := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets: []float64{
				0.00001, 0.0001, 0.0005, 0.001, 0.005,
				0.01, 0.05, 0.1, 0.5, 1, 5,
			},
			Name: "request_duration_seconds",
			Help: "Total duration of requests in seconds",
		},
	)

	return &Manager{
		CounterFrames:       counterFrames,
		CounterReps:         counterReps,
		CounterHoldSeconds:  counterHoldSeconds,
		CounterSessions:     counterSessions,
		CounterRequests:     counterRequests,
		GaugeActiveSessions: gaugeActiveSessions,
		HistScore:           histScore,
		HistRequestDuration: histReqDuration,
	}
}

// ObserveFrame records one analysed frame. Scores are only observed for
// in-view frames so occlusion does not drag the distribution to zero.
func (m *Manager) ObserveFrame(exercise, outcome string, score int) {
	if m == nil {
		return
	}
	m.CounterFrames.WithLabelValues(exercise, outcome).Inc()
	if outcome != OutcomeOutOfView {
		m.HistScore.WithLabelValues(exercise).Observe(float64(score))
	}
}

// AddReps records newly counted repetitions.
func (m *Manager) AddReps(exercise string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.CounterReps.WithLabelValues(exercise).Add(float64(n))
}

// AddHoldSeconds records newly accrued hold time.
func (m *Manager) AddHoldSeconds(exercise string, seconds float64) {
	if m == nil || seconds <= 0 {
		return
	}
	m.CounterHoldSeconds.WithLabelValues(exercise).Add(seconds)
}

// SessionEvent records a lifecycle event and keeps the active gauge in step.
func (m *Manager) SessionEvent(event string) {
	if m == nil {
		return
	}
	m.CounterSessions.WithLabelValues(event).Inc()
	switch event {
	case EventStarted:
		m.GaugeActiveSessions.Inc()
	case EventEnded, EventEvicted:
		m.GaugeActiveSessions.Dec()
	}
}

// ObserveRequest records one served HTTP request.
func (m *Manager) ObserveRequest(method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.CounterRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.HistRequestDuration.Observe(d.Seconds())
}
