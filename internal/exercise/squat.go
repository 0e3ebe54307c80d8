package exercise

import (
	"github.com/banshee-data/formcheck/internal/monitoring"
	"github.com/banshee-data/formcheck/internal/pose"
)

// SquatTracker counts squats from the hip-knee-ankle angle of the more
// visible leg.
type SquatTracker struct {
	cfg  Config
	reps repCounter
}

// NewSquatTracker returns a SquatTracker in the standing phase.
func NewSquatTracker(cfg Config) *SquatTracker {
	return &SquatTracker{
		cfg:  cfg,
		reps: newRepCounter(Squat, cfg.Squat, cfg.MinStableFrames),
	}
}

// Type returns Squat.
func (t *SquatTracker) Type() Type { return Squat }

// Reset zeroes the count and returns to the standing phase.
func (t *SquatTracker) Reset() { t.reps.reset() }

// Analyze processes one frame.
func (t *SquatTracker) Analyze(f pose.Frame) Result {
	side, ok := pose.SelectSide(f, pose.LegGroup, t.cfg.MinVisibility)
	if !ok {
		monitoring.Debugf("squat: legs not visible")
		return t.reps.outOfView(FeedbackLowerBodyNotVisible)
	}

	j := pose.LegGroup.Joints(side)
	angle := pose.Angle(f[j[0]], f[j[1]], f[j[2]])
	raw := t.reps.update(angle)

	res := t.reps.result(angle, raw, FeedbackSquatRise, FeedbackSquatDescend)
	res.Details.Side = side
	return res
}
