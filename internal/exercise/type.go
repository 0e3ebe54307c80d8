package exercise

import "strings"

// Type identifies an exercise.
type Type string

const (
	Squat       Type = "squat"
	Pushup      Type = "pushup"
	Plank       Type = "plank"
	JumpingJack Type = "jumping_jack"
)

// Kind says which metric a tracker reports.
type Kind string

const (
	KindReps Kind = "reps" // Result.Count is set
	KindHold Kind = "hold" // Result.Duration is set
)

// Types returns every supported exercise type in display order.
func Types() []Type {
	return []Type{Squat, Pushup, Plank, JumpingJack}
}

// LookupType parses name, reporting whether it named a supported type.
// Matching ignores case and surrounding space.
func LookupType(name string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(name)))
	switch t {
	case Squat, Pushup, Plank, JumpingJack:
		return t, true
	}
	return Squat, false
}

// ParseType parses name, falling back to Squat for anything unknown.
func ParseType(name string) Type {
	t, _ := LookupType(name)
	return t
}

// Kind returns the metric kind reported for t.
func (t Type) Kind() Kind {
	if t == Plank {
		return KindHold
	}
	return KindReps
}
