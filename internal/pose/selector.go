package pose

// DefaultMinVisibility is the confidence a landmark needs before a tracker
// trusts its coordinates.
const DefaultMinVisibility = 0.5

// Side identifies one half of a bilateral joint group.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// JointGroup lists the landmarks a tracker needs on each side of the body,
// in the order the tracker reads them (e.g. hip, knee, ankle).
type JointGroup struct {
	Left  []int
	Right []int
}

// Joints returns the landmark indices for the given side.
func (g JointGroup) Joints(s Side) []int {
	if s == SideLeft {
		return g.Left
	}
	return g.Right
}

var (
	// LegGroup is hip, knee, ankle.
	LegGroup = JointGroup{
		Left:  []int{LeftHip, LeftKnee, LeftAnkle},
		Right: []int{RightHip, RightKnee, RightAnkle},
	}
	// ArmGroup is shoulder, elbow, wrist.
	ArmGroup = JointGroup{
		Left:  []int{LeftShoulder, LeftElbow, LeftWrist},
		Right: []int{RightShoulder, RightElbow, RightWrist},
	}
	// UpperArmGroup is shoulder, elbow.
	UpperArmGroup = JointGroup{
		Left:  []int{LeftShoulder, LeftElbow},
		Right: []int{RightShoulder, RightElbow},
	}
	// ShoulderWristGroup is shoulder, wrist.
	ShoulderWristGroup = JointGroup{
		Left:  []int{LeftShoulder, LeftWrist},
		Right: []int{RightShoulder, RightWrist},
	}
)

// Usable reports whether every joint of the group on side s is present, has
// finite coordinates and is at or above minVisibility.
func Usable(f Frame, g JointGroup, s Side, minVisibility float64) bool {
	joints := g.Joints(s)
	if len(joints) == 0 {
		return false
	}
	for _, idx := range joints {
		if lm, ok := f.At(idx); !ok || !lm.Finite() {
			return false
		}
		if f.Visibility(idx) < minVisibility {
			return false
		}
	}
	return true
}

// VisibilitySum adds the visibility of every joint of the group on side s.
func VisibilitySum(f Frame, g JointGroup, s Side) float64 {
	var sum float64
	for _, idx := range g.Joints(s) {
		sum += f.Visibility(idx)
	}
	return sum
}

// SelectSide picks the side of g to measure on this frame. A side qualifies
// only when all of its joints pass minVisibility. With one qualifying side
// that side wins; with two, the higher visibility sum wins and a tie goes to
// the right side. ok is false when neither side qualifies. The choice is not
// sticky; callers re-select on every frame.
func SelectSide(f Frame, g JointGroup, minVisibility float64) (side Side, ok bool) {
	left := Usable(f, g, SideLeft, minVisibility)
	right := Usable(f, g, SideRight, minVisibility)

	switch {
	case left && right:
		if VisibilitySum(f, g, SideLeft) > VisibilitySum(f, g, SideRight) {
			return SideLeft, true
		}
		return SideRight, true
	case left:
		return SideLeft, true
	case right:
		return SideRight, true
	default:
		return "", false
	}
}

// UsableSides returns every side of g that passes minVisibility, left first.
func UsableSides(f Frame, g JointGroup, minVisibility float64) []Side {
	var sides []Side
	for _, s := range []Side{SideLeft, SideRight} {
		if Usable(f, g, s, minVisibility) {
			sides = append(sides, s)
		}
	}
	return sides
}
