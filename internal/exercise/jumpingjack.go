package exercise

import (
	"math"

	"github.com/banshee-data/formcheck/internal/monitoring"
	"github.com/banshee-data/formcheck/internal/pose"
)

// Movement is the jumping-jack cycle position, tracked separately from the
// open/closed phase.
type Movement string

const (
	MovementNone     Movement = "none"
	MovementOpening  Movement = "opening"
	MovementClosing  Movement = "closing"
	MovementComplete Movement = "complete"
)

// JumpingJackTracker counts closed→open→closed arm cycles. The arms are open
// when the wrist distance exceeds OpenRatio times the shoulder distance.
//
// The reported count is half the number of completed cycles. Callers that
// need the true cycle count read Details.Cycles.
type JumpingJackTracker struct {
	cfg    JumpingJackConfig
	minVis float64

	deb       debouncer
	movement  Movement
	cycles    int
	lastRatio float64
}

// NewJumpingJackTracker returns a JumpingJackTracker in the closed phase.
func NewJumpingJackTracker(cfg Config) *JumpingJackTracker {
	return &JumpingJackTracker{
		cfg:      cfg.JumpingJack,
		minVis:   cfg.MinVisibility,
		deb:      newDebouncer(PhaseClosed, cfg.JumpingJack.RequiredFrames, cfg.MinStableFrames),
		movement: MovementNone,
	}
}

// Type returns JumpingJack.
func (t *JumpingJackTracker) Type() Type { return JumpingJack }

// Reset zeroes the cycle counter and returns to the closed phase.
func (t *JumpingJackTracker) Reset() {
	t.deb.reset()
	t.movement = MovementNone
	t.cycles = 0
	t.lastRatio = 0
}

func (t *JumpingJackTracker) displayCount() int {
	return t.cycles / 2
}

// Analyze processes one frame.
func (t *JumpingJackTracker) Analyze(f pose.Frame) Result {
	g := pose.ShoulderWristGroup
	if !pose.Usable(f, g, pose.SideLeft, t.minVis) || !pose.Usable(f, g, pose.SideRight, t.minVis) {
		monitoring.Debugf("jumping_jack: shoulders or wrists not visible")
		res := repResult(t.displayCount())
		res.Feedback = FeedbackUpperBodyNotVisible
		return res
	}

	ls, rs := f[pose.LeftShoulder], f[pose.RightShoulder]
	lw, rw := f[pose.LeftWrist], f[pose.RightWrist]

	ratio := pose.Distance(lw, rw) / math.Max(pose.Distance(ls, rs), t.cfg.MinShoulderDist)
	raised := lw.Y <= ls.Y-t.cfg.RaiseMargin || rw.Y <= rs.Y-t.cfg.RaiseMargin
	open := ratio > t.cfg.OpenRatio

	raw := PhaseClosed
	if open {
		raw = PhaseOpen
	}
	prev, cur := t.deb.step(raw)
	if prev != cur {
		t.transition(prev, cur, ratio)
	}
	t.lastRatio = ratio

	res := repResult(t.displayCount())
	res.Score, res.IsCorrect = t.score(open, raised)
	res.Feedback = t.feedback(raised)
	res.Details = &Details{
		Feature:  ratio,
		Phase:    cur,
		RawPhase: raw,
		Cooldown: t.deb.cooldown,
		Movement: t.movement,
		Cycles:   t.cycles,
	}
	return res
}

func (t *JumpingJackTracker) transition(prev, cur Phase, ratio float64) {
	monitoring.Debugf("jumping_jack phase %s -> %s, ratio %.2f (was %.2f), movement %s",
		prev, cur, ratio, t.lastRatio, t.movement)

	switch {
	case prev == PhaseClosed && cur == PhaseOpen:
		// Any state may start a cycle, including a closing that was
		// never counted because it landed inside the cooldown.
		t.movement = MovementOpening
	case prev == PhaseOpen && cur == PhaseClosed:
		if t.movement != MovementOpening {
			return
		}
		t.movement = MovementClosing
		if t.deb.cooldown > 0 {
			monitoring.Debugf("jumping_jack cycle suppressed, cooldown %d", t.deb.cooldown)
			return
		}
		t.cycles++
		t.deb.cooldown = t.cfg.CooldownFrames
		t.movement = MovementComplete
		monitoring.Logf("jumping_jack cycle completed: %d (displayed %d)", t.cycles, t.displayCount())
	}
}

func (t *JumpingJackTracker) score(open, raised bool) (int, bool) {
	if t.deb.phase == PhaseOpen {
		switch {
		case open && raised:
			return 90, true
		case raised:
			return 75, false
		default:
			return 65, false
		}
	}
	switch t.movement {
	case MovementComplete:
		return 85, true
	case MovementClosing:
		return 80, true
	default:
		return 60, true
	}
}

func (t *JumpingJackTracker) feedback(raised bool) Feedback {
	if t.deb.phase == PhaseOpen {
		if t.movement == MovementOpening {
			return FeedbackJumpingJackClose
		}
		return FeedbackJumpingJackHoldOpen
	}
	switch {
	case t.movement == MovementClosing:
		return FeedbackJumpingJackRepDone
	case t.movement == MovementComplete:
		return FeedbackJumpingJackReady
	case !raised:
		return FeedbackJumpingJackRaise
	default:
		return FeedbackJumpingJackJump
	}
}
