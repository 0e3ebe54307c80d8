package pose

import "math"

// Landmark indices of the 33-point body pose topology. The mapping is fixed
// and never reordered; only the joints the trackers read are named.
const (
	Nose          = 0
	LeftShoulder  = 11
	RightShoulder = 12
	LeftElbow     = 13
	RightElbow    = 14
	LeftWrist     = 15
	RightWrist    = 16
	LeftHip       = 23
	RightHip      = 24
	LeftKnee      = 25
	RightKnee     = 26
	LeftAnkle     = 27
	RightAnkle    = 28
	NumLandmarks  = 33
)

// Landmark is one estimated joint position. X and Y are normalised image
// coordinates with the origin at the top-left and Y growing downward.
// Visibility is the detector confidence in [0, 1]; a missing value decodes
// to 0 and is treated as untrusted.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z,omitempty"`
	Visibility float64 `json:"visibility,omitempty"`
}

// Finite reports whether the landmark's image coordinates are real numbers.
func (l Landmark) Finite() bool {
	return !math.IsNaN(l.X) && !math.IsInf(l.X, 0) && !math.IsNaN(l.Y) && !math.IsInf(l.Y, 0)
}

// Frame is the full landmark snapshot for one instant, indexed by the
// constants above. Frames from a provider may be short or empty; use At and
// Visibility rather than indexing directly.
type Frame []Landmark

// At returns the landmark at index i and whether it exists.
func (f Frame) At(i int) (Landmark, bool) {
	if i < 0 || i >= len(f) {
		return Landmark{}, false
	}
	return f[i], true
}

// Visibility returns the confidence of landmark i, or 0 when the index is
// outside the frame.
func (f Frame) Visibility(i int) float64 {
	lm, ok := f.At(i)
	if !ok {
		return 0
	}
	return lm.Visibility
}

// Complete reports whether the frame carries the full topology.
func (f Frame) Complete() bool {
	return len(f) >= NumLandmarks
}
