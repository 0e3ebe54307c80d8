package session

import (
	"errors"
	"sync"
	"time"

	"github.com/banshee-data/formcheck/internal/exercise"
)

var (
	// ErrNotFound is returned for unknown or evicted session IDs.
	ErrNotFound = errors.New("session not found")
	// ErrEnded is returned when a frame or command targets an ended session.
	ErrEnded = errors.New("session ended")
)

// Stats accumulates per-session results. TotalFrames counts in-view frames
// only; frames rejected for visibility land in OutOfViewFrames.
type Stats struct {
	TotalFrames     int     `json:"total_frames"`
	CorrectFrames   int     `json:"correct_frames"`
	OutOfViewFrames int     `json:"out_of_view_frames"`
	Accuracy        float64 `json:"accuracy"`
	AverageScore    float64 `json:"average_score"`
	Reps            int     `json:"reps"`
	HoldSeconds     float64 `json:"hold_seconds"`
}

// Snapshot is a point-in-time view of a session.
type Snapshot struct {
	ID         string        `json:"id"`
	Exercise   exercise.Type `json:"exercise_type"`
	Kind       exercise.Kind `json:"kind"`
	StartedAt  time.Time     `json:"started_at"`
	LastActive time.Time     `json:"last_active"`
	Ended      bool          `json:"ended"`
	Stats      Stats         `json:"stats"`
}

// Summary is returned once when a session ends.
type Summary struct {
	Snapshot
	EndedAt         time.Time `json:"ended_at"`
	DurationSeconds float64   `json:"duration_seconds"`
}

type session struct {
	mu sync.Mutex

	id         string
	tracker    exercise.Tracker
	startedAt  time.Time
	lastActive time.Time
	endedAt    time.Time
	ended      bool

	stats    Stats
	scoreSum float64
}

// record folds one result into the stats and returns the rep and hold
// deltas it contributed.
func (s *session) record(res exercise.Result) (reps int, hold float64) {
	if res.Feedback.OutOfView() {
		s.stats.OutOfViewFrames++
	} else {
		s.stats.TotalFrames++
		if res.IsCorrect {
			s.stats.CorrectFrames++
		}
		s.scoreSum += float64(res.Score)
		s.stats.Accuracy = float64(s.stats.CorrectFrames) / float64(s.stats.TotalFrames)
		s.stats.AverageScore = s.scoreSum / float64(s.stats.TotalFrames)
	}

	if res.Count != nil {
		reps = *res.Count - s.stats.Reps
		s.stats.Reps = *res.Count
	}
	if res.Duration != nil {
		hold = *res.Duration - s.stats.HoldSeconds
		s.stats.HoldSeconds = *res.Duration
	}
	return reps, hold
}

func (s *session) clearStats() {
	s.stats = Stats{}
	s.scoreSum = 0
}

func (s *session) snapshot() Snapshot {
	t := s.tracker.Type()
	return Snapshot{
		ID:         s.id,
		Exercise:   t,
		Kind:       t.Kind(),
		StartedAt:  s.startedAt,
		LastActive: s.lastActive,
		Ended:      s.ended,
		Stats:      s.stats,
	}
}
