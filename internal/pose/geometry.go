package pose

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// StraightAngle is returned by Angle when either arm of the angle is too
// short to define a direction or has a non-finite length.
const StraightAngle = 180.0

// degenerateLength is the vector length below which a direction is undefined.
const degenerateLength = 1e-9

func planar(l Landmark) r2.Vec {
	return r2.Vec{X: l.X, Y: l.Y}
}

// Angle returns the angle in degrees at vertex b between the rays b→a and
// b→c, using only x and y. The cosine is clamped to [-1, 1] before acos so
// floating-point overshoot cannot produce NaN.
func Angle(a, b, c Landmark) float64 {
	ba := r2.Sub(planar(a), planar(b))
	bc := r2.Sub(planar(c), planar(b))

	nba, nbc := r2.Norm(ba), r2.Norm(bc)
	if degenerate(nba) || degenerate(nbc) {
		return StraightAngle
	}

	cos := r2.Dot(ba, bc) / (nba * nbc)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

func degenerate(norm float64) bool {
	return !(norm >= degenerateLength) || math.IsInf(norm, 0)
}

// Distance returns the planar Euclidean distance between p and q. Z and
// visibility are ignored.
func Distance(p, q Landmark) float64 {
	return r2.Norm(r2.Sub(planar(p), planar(q)))
}
