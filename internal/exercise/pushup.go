package exercise

import (
	"github.com/banshee-data/formcheck/internal/monitoring"
	"github.com/banshee-data/formcheck/internal/pose"
	"gonum.org/v1/gonum/stat"
)

// PushupTracker counts push-ups from the shoulder-elbow-wrist angle,
// averaged over every fully visible arm.
type PushupTracker struct {
	cfg  Config
	reps repCounter
}

// NewPushupTracker returns a PushupTracker in the up phase.
func NewPushupTracker(cfg Config) *PushupTracker {
	return &PushupTracker{
		cfg:  cfg,
		reps: newRepCounter(Pushup, cfg.Pushup, cfg.MinStableFrames),
	}
}

// Type returns Pushup.
func (t *PushupTracker) Type() Type { return Pushup }

// Reset zeroes the count and returns to the up phase.
func (t *PushupTracker) Reset() { t.reps.reset() }

// Analyze processes one frame.
func (t *PushupTracker) Analyze(f pose.Frame) Result {
	sides := pose.UsableSides(f, pose.ArmGroup, t.cfg.MinVisibility)
	if len(sides) == 0 {
		monitoring.Debugf("pushup: arms not visible")
		return t.reps.outOfView(FeedbackUpperBodyNotVisible)
	}

	angles := make([]float64, 0, len(sides))
	for _, s := range sides {
		j := pose.ArmGroup.Joints(s)
		angles = append(angles, pose.Angle(f[j[0]], f[j[1]], f[j[2]]))
	}
	angle := stat.Mean(angles, nil)
	raw := t.reps.update(angle)

	res := t.reps.result(angle, raw, FeedbackPushupPush, FeedbackPushupLower)
	if len(sides) == 1 {
		res.Details.Side = sides[0]
	}
	return res
}
