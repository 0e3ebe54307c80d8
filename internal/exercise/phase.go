package exercise

// Phase is a binary posture classification.
type Phase string

const (
	PhaseUp      Phase = "up"
	PhaseDown    Phase = "down"
	PhaseOpen    Phase = "open"
	PhaseClosed  Phase = "closed"
	PhaseHolding Phase = "holding"
	PhaseSettle  Phase = "settling"
)

// debouncer turns a noisy raw phase into a confirmed phase.
//
// Each frame it decrements the cooldown, extends or restarts the streak of
// identical raw phases, and proposes the raw phase once the streak reaches
// required. A proposal that differs from the confirmed phase is accepted
// only when at least minStable frames have passed since the last accepted
// change. Rejected frames still count towards minStable.
type debouncer struct {
	required  int
	minStable int

	initial     Phase
	phase       Phase
	raw         Phase
	streak      int
	sinceChange int
	cooldown    int
}

func newDebouncer(initial Phase, required, minStable int) debouncer {
	d := debouncer{initial: initial, required: required, minStable: minStable}
	d.reset()
	return d
}

// reset returns to the initial phase, treated as already settled.
func (d *debouncer) reset() {
	d.phase = d.initial
	d.raw = d.initial
	d.streak = 0
	d.sinceChange = d.minStable
	d.cooldown = 0
}

// step feeds one raw phase and returns the previous and the (possibly new)
// confirmed phase.
func (d *debouncer) step(raw Phase) (prev, cur Phase) {
	if d.cooldown > 0 {
		d.cooldown--
	}

	if raw == d.raw {
		d.streak++
	} else {
		d.raw = raw
		d.streak = 1
	}

	candidate := d.phase
	if d.streak >= d.required {
		candidate = raw
	}

	prev = d.phase
	if candidate != d.phase && d.sinceChange >= d.minStable {
		d.phase = candidate
		d.sinceChange = 0
	} else {
		d.sinceChange++
	}
	return prev, d.phase
}

// classify maps a feature value to a raw phase with an optional hysteresis
// band: below lo is low, above hi is high, anything else keeps current.
func classify(v, lo, hi float64, low, high, current Phase) Phase {
	switch {
	case v < lo:
		return low
	case v > hi:
		return high
	default:
		return current
	}
}
