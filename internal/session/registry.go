package session

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/formcheck/internal/exercise"
	"github.com/banshee-data/formcheck/internal/metrics"
	"github.com/banshee-data/formcheck/internal/monitoring"
	"github.com/banshee-data/formcheck/internal/pose"
	"github.com/banshee-data/formcheck/internal/timeutil"
)

// Registry holds live sessions keyed by ID. It is safe for concurrent use;
// frames for one session are analysed serially.
type Registry struct {
	cfg     exercise.Config
	clock   timeutil.Clock
	metrics *metrics.Manager

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewRegistry returns an empty registry. A nil clock uses the real clock and
// a nil metrics manager disables reporting.
func NewRegistry(cfg exercise.Config, clock timeutil.Clock, m *metrics.Manager) *Registry {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	if cfg.Clock == nil {
		cfg.Clock = clock
	}
	return &Registry{
		cfg:      cfg,
		clock:    clock,
		metrics:  m,
		sessions: make(map[string]*session),
	}
}

func (r *Registry) newTracker(name string) exercise.Tracker {
	t, ok := exercise.LookupType(name)
	if !ok {
		monitoring.Logf("session: unknown exercise type %q, using %s", name, t)
	}
	return exercise.New(t, r.cfg)
}

// Start creates a session for the named exercise. Unknown names fall back
// to squat.
func (r *Registry) Start(exerciseType string) Snapshot {
	now := r.clock.Now()
	s := &session{
		id:         uuid.NewString(),
		tracker:    r.newTracker(exerciseType),
		startedAt:  now,
		lastActive: now,
	}

	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()

	r.metrics.SessionEvent(metrics.EventStarted)
	monitoring.Logf("session %s started: %s", s.id, s.tracker.Type())
	return s.snapshot()
}

func (r *Registry) lookup(id string) (*session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// live returns the session locked. The caller must unlock it.
func (r *Registry) live(id string) (*session, error) {
	s, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return nil, ErrEnded
	}
	return s, nil
}

// Analyze feeds one frame to the session's tracker.
func (r *Registry) Analyze(id string, f pose.Frame) (exercise.Result, Stats, error) {
	s, err := r.live(id)
	if err != nil {
		return exercise.Result{}, Stats{}, err
	}
	defer s.mu.Unlock()

	res := s.tracker.Analyze(f)
	s.lastActive = r.clock.Now()
	reps, hold := s.record(res)

	name := string(s.tracker.Type())
	outcome := metrics.OutcomeIncorrect
	switch {
	case res.Feedback.OutOfView():
		outcome = metrics.OutcomeOutOfView
	case res.IsCorrect:
		outcome = metrics.OutcomeCorrect
	}
	r.metrics.ObserveFrame(name, outcome, res.Score)
	r.metrics.AddReps(name, reps)
	r.metrics.AddHoldSeconds(name, hold)

	return res, s.stats, nil
}

// Reset zeroes the tracker and the session stats.
func (r *Registry) Reset(id string) (Snapshot, error) {
	s, err := r.live(id)
	if err != nil {
		return Snapshot{}, err
	}
	defer s.mu.Unlock()

	s.tracker.Reset()
	s.clearStats()
	s.lastActive = r.clock.Now()
	monitoring.Logf("session %s reset", id)
	return s.snapshot(), nil
}

// Switch replaces the session's tracker with a fresh one for the named
// exercise and zeroes the stats.
func (r *Registry) Switch(id, exerciseType string) (Snapshot, error) {
	s, err := r.live(id)
	if err != nil {
		return Snapshot{}, err
	}
	defer s.mu.Unlock()

	prev := s.tracker.Type()
	s.tracker = r.newTracker(exerciseType)
	s.clearStats()
	s.lastActive = r.clock.Now()

	r.metrics.SessionEvent(metrics.EventSwitched)
	monitoring.Logf("session %s switched: %s -> %s", id, prev, s.tracker.Type())
	return s.snapshot(), nil
}

// Get returns a snapshot of the session, ended or not.
func (r *Registry) Get(id string) (Snapshot, error) {
	s, err := r.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

// End closes the session and returns its summary. Ended sessions stay
// readable through Get until the next Sweep.
func (r *Registry) End(id string) (Summary, error) {
	s, err := r.live(id)
	if err != nil {
		return Summary{}, err
	}
	defer s.mu.Unlock()

	s.ended = true
	s.endedAt = r.clock.Now()
	s.lastActive = s.endedAt

	sum := Summary{
		Snapshot:        s.snapshot(),
		EndedAt:         s.endedAt,
		DurationSeconds: s.endedAt.Sub(s.startedAt).Seconds(),
	}
	r.metrics.SessionEvent(metrics.EventEnded)
	monitoring.Logf("session %s ended: %s, %d frames, accuracy %.2f, reps %d, hold %.1fs",
		id, sum.Exercise, sum.Stats.TotalFrames, sum.Stats.Accuracy, sum.Stats.Reps, sum.Stats.HoldSeconds)
	return sum, nil
}

// List returns snapshots of every session ordered by start time.
func (r *Registry) List() []Snapshot {
	r.mu.RLock()
	all := make([]*session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}
	r.mu.RUnlock()

	out := make([]Snapshot, 0, len(all))
	for _, s := range all {
		s.mu.Lock()
		out = append(out, s.snapshot())
		s.mu.Unlock()
	}
	slices.SortFunc(out, func(a, b Snapshot) int {
		if c := a.StartedAt.Compare(b.StartedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Len returns the number of sessions held, ended ones included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops every session whose last activity is at least idle ago.
// Live sessions dropped this way are reported as evicted. It returns the
// number of sessions removed.
func (r *Registry) Sweep(idle time.Duration) int {
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		s.mu.Lock()
		stale := now.Sub(s.lastActive) >= idle
		ended := s.ended
		s.mu.Unlock()
		if !stale {
			continue
		}
		delete(r.sessions, id)
		removed++
		if !ended {
			r.metrics.SessionEvent(metrics.EventEvicted)
			monitoring.Logf("session %s evicted after %s idle", id, idle)
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, every, idle time.Duration) {
	ticker := r.clock.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			if n := r.Sweep(idle); n > 0 {
				monitoring.Debugf("session sweep removed %d sessions", n)
			}
		}
	}
}
