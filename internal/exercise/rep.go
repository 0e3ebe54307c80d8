package exercise

import (
	"math"

	"github.com/banshee-data/formcheck/internal/monitoring"
)

// repCounter is the angle-driven down/up rep state shared by squats and
// push-ups. A rep is an accepted up→down followed by an accepted down→up
// outside the cooldown window.
type repCounter struct {
	exercise Type
	cfg      RepConfig
	deb      debouncer
	count    int
	inRep    bool
}

func newRepCounter(exercise Type, cfg RepConfig, minStable int) repCounter {
	return repCounter{
		exercise: exercise,
		cfg:      cfg,
		deb:      newDebouncer(PhaseUp, cfg.RequiredFrames, minStable),
	}
}

func (r *repCounter) reset() {
	r.deb.reset()
	r.count = 0
	r.inRep = false
}

// update feeds one angle and returns the raw phase it was classified as.
func (r *repCounter) update(angle float64) Phase {
	raw := classify(angle, r.cfg.DownAngle, r.cfg.UpAngle, PhaseDown, PhaseUp, r.deb.phase)
	prev, cur := r.deb.step(raw)
	if prev == cur {
		return raw
	}

	monitoring.Debugf("%s phase %s -> %s at %.1f°", r.exercise, prev, cur, angle)
	switch {
	case prev == PhaseUp && cur == PhaseDown:
		r.inRep = true
	case prev == PhaseDown && cur == PhaseUp:
		if r.inRep && r.deb.cooldown == 0 {
			r.count++
			r.deb.cooldown = r.cfg.CooldownFrames
			monitoring.Logf("%s rep counted: %d", r.exercise, r.count)
		} else if r.inRep {
			monitoring.Debugf("%s rep suppressed, cooldown %d", r.exercise, r.deb.cooldown)
		}
		r.inRep = false
	}
	return raw
}

// score rates angle against the confirmed phase.
func (r *repCounter) score(angle float64) (int, bool) {
	floor := float64(r.cfg.ScoreFloor)
	if r.deb.phase == PhaseDown {
		return clampScore(math.Max(floor, 100-math.Max(0, angle-90))), angle < r.cfg.CorrectDown
	}
	return clampScore(math.Min(100, math.Max(floor, angle))), angle > r.cfg.CorrectUp
}

// result assembles the frame result for a measured angle.
func (r *repCounter) result(angle float64, raw Phase, fbDown, fbUp Feedback) Result {
	res := repResult(r.count)
	res.Score, res.IsCorrect = r.score(angle)
	res.Feedback = fbUp
	if r.deb.phase == PhaseDown {
		res.Feedback = fbDown
	}
	res.Details = &Details{
		Feature:  angle,
		Phase:    r.deb.phase,
		RawPhase: raw,
		Cooldown: r.deb.cooldown,
	}
	return res
}

// outOfView is the neutral result; nothing is mutated.
func (r *repCounter) outOfView(fb Feedback) Result {
	res := repResult(r.count)
	res.Feedback = fb
	return res
}
