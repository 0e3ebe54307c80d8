package exercise

import (
	"time"

	"github.com/banshee-data/formcheck/internal/monitoring"
	"github.com/banshee-data/formcheck/internal/pose"
	"github.com/banshee-data/formcheck/internal/timeutil"
	"gonum.org/v1/gonum/stat"
)

// PlankTracker times a forearm plank. Form passes when every visible elbow
// sits below its shoulder. The hold starts after MinStableFrames passing
// frames; brief failures are tolerated for MaxUnstableFrames frames before
// the stability counter starts to decay.
type PlankTracker struct {
	cfg    PlankConfig
	minVis float64
	clock  timeutil.Clock

	stable   int
	unstable int
	holding  bool

	heldFrames int
	heldWall   time.Duration
	lastFrame  time.Time
}

// NewPlankTracker returns an idle PlankTracker.
func NewPlankTracker(cfg Config) *PlankTracker {
	return &PlankTracker{
		cfg:    cfg.Plank,
		minVis: cfg.MinVisibility,
		clock:  cfg.clock(),
	}
}

// Type returns Plank.
func (t *PlankTracker) Type() Type { return Plank }

// Reset discards the hold and all stability counters.
func (t *PlankTracker) Reset() {
	t.stable = 0
	t.unstable = 0
	t.holding = false
	t.heldFrames = 0
	t.heldWall = 0
	t.lastFrame = time.Time{}
}

// Seconds returns the accumulated hold duration.
func (t *PlankTracker) Seconds() float64 {
	if t.cfg.WallClock {
		return t.heldWall.Seconds()
	}
	return float64(t.heldFrames) / t.cfg.FrameRate
}

// Analyze processes one frame.
func (t *PlankTracker) Analyze(f pose.Frame) Result {
	sides := pose.UsableSides(f, pose.UpperArmGroup, t.minVis)
	if len(sides) == 0 {
		monitoring.Debugf("plank: arms not visible")
		res := holdResult(t.Seconds())
		res.Feedback = FeedbackUpperBodyNotVisible
		return res
	}

	formOK := true
	drops := make([]float64, 0, len(sides))
	for _, s := range sides {
		j := pose.UpperArmGroup.Joints(s)
		shoulder, elbow := f[j[0]], f[j[1]]
		drops = append(drops, elbow.Y-shoulder.Y)
		if elbow.Y <= shoulder.Y {
			formOK = false
		}
	}

	var now time.Time
	if t.cfg.WallClock {
		now = t.clock.Now()
	}

	if formOK {
		t.stable++
		t.unstable = 0
		if t.stable >= t.cfg.MinStableFrames {
			if !t.holding {
				t.holding = true
				t.heldFrames += t.stable
				monitoring.Logf("plank hold started after %d stable frames", t.stable)
			} else {
				t.heldFrames++
				if t.cfg.WallClock && !t.lastFrame.IsZero() {
					t.heldWall += now.Sub(t.lastFrame)
				}
			}
		}
	} else {
		t.unstable++
		if t.unstable > t.cfg.MaxUnstableFrames {
			if t.stable > 0 {
				t.stable--
			}
			if t.holding && t.stable < t.cfg.MinStableFrames/3 {
				t.holding = false
				monitoring.Logf("plank hold ended at %.1fs", t.Seconds())
			}
		}
	}
	if t.cfg.WallClock {
		t.lastFrame = now
	}

	seconds := t.Seconds()
	res := holdResult(seconds)
	res.IsCorrect = formOK && t.stable >= t.cfg.MinStableFrames
	res.Score = 60
	if formOK {
		res.Score = 80
	}
	res.Feedback = t.feedback(formOK, seconds)

	phase := PhaseSettle
	if t.holding {
		phase = PhaseHolding
	}
	raw := PhaseSettle
	if formOK {
		raw = PhaseHolding
	}
	res.Details = &Details{
		Feature:        stat.Mean(drops, nil),
		Phase:          phase,
		RawPhase:       raw,
		StableFrames:   t.stable,
		UnstableFrames: t.unstable,
	}
	return res
}

func (t *PlankTracker) feedback(formOK bool, seconds float64) Feedback {
	switch {
	case !formOK:
		return FeedbackPlankElbowsUnderShoulders
	case t.stable < t.cfg.MinStableFrames:
		return FeedbackPlankHoldSteady
	case seconds < 10:
		return FeedbackPlankHolding
	case seconds < 30:
		return FeedbackPlankHoldingWell
	default:
		return FeedbackPlankHoldingGreat
	}
}
