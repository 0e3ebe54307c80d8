package exercise

import (
	"github.com/banshee-data/formcheck/internal/monitoring"
	"github.com/banshee-data/formcheck/internal/pose"
)

// Tracker analyses a stream of frames for one exercise. Analyze never fails;
// frames with missing or low-confidence joints produce a neutral result
// without touching state. Implementations are not safe for concurrent use.
type Tracker interface {
	Analyze(f pose.Frame) Result
	Reset()
	Type() Type
}

var (
	_ Tracker = (*SquatTracker)(nil)
	_ Tracker = (*PushupTracker)(nil)
	_ Tracker = (*PlankTracker)(nil)
	_ Tracker = (*JumpingJackTracker)(nil)
)

// New returns a fresh tracker for t. Unknown types get a SquatTracker.
func New(t Type, cfg Config) Tracker {
	switch t {
	case Pushup:
		return NewPushupTracker(cfg)
	case Plank:
		return NewPlankTracker(cfg)
	case JumpingJack:
		return NewJumpingJackTracker(cfg)
	case Squat:
		return NewSquatTracker(cfg)
	default:
		monitoring.Logf("unknown exercise type %q, using %s", t, Squat)
		return NewSquatTracker(cfg)
	}
}

// CreateTracker returns a default-configured tracker for the named
// exercise, falling back to squat for unknown names.
func CreateTracker(name string) Tracker {
	t, ok := LookupType(name)
	if !ok {
		monitoring.Logf("unknown exercise type %q, using %s", name, Squat)
	}
	return New(t, DefaultConfig())
}
