// Package synth builds deterministic pose frames for tests, fixtures and
// replay demos. Frames are full 33-landmark snapshots with every landmark at
// visibility 1 unless a builder says otherwise.
package synth

import (
	"math"

	"github.com/banshee-data/formcheck/internal/pose"
)

const (
	limb         = 0.25
	sideOffset   = 0.05
	shoulderY    = 0.3
	shoulderHalf = 0.05
)

// Standing returns an upright front-facing frame: straight legs, arms
// hanging at the sides.
func Standing() pose.Frame {
	f := make(pose.Frame, pose.NumLandmarks)
	for i := range f {
		f[i] = pose.Landmark{X: 0.5, Y: 0.5, Visibility: 1}
	}
	f[pose.Nose] = pose.Landmark{X: 0.5, Y: 0.15, Visibility: 1}
	f[pose.LeftShoulder] = pose.Landmark{X: 0.5 - shoulderHalf, Y: shoulderY, Visibility: 1}
	f[pose.RightShoulder] = pose.Landmark{X: 0.5 + shoulderHalf, Y: shoulderY, Visibility: 1}
	f[pose.LeftElbow] = pose.Landmark{X: 0.44, Y: 0.42, Visibility: 1}
	f[pose.RightElbow] = pose.Landmark{X: 0.56, Y: 0.42, Visibility: 1}
	f[pose.LeftWrist] = pose.Landmark{X: 0.47, Y: 0.55, Visibility: 1}
	f[pose.RightWrist] = pose.Landmark{X: 0.53, Y: 0.55, Visibility: 1}
	setLegs(f, 180)
	return f
}

// bend returns the point at distance limb from vertex such that the angle
// between vertex→ref (pointing straight down) and vertex→result is deg.
func bend(vertex pose.Landmark, deg float64) pose.Landmark {
	rad := deg * math.Pi / 180
	return pose.Landmark{
		X:          vertex.X + limb*math.Sin(rad),
		Y:          vertex.Y + limb*math.Cos(rad),
		Visibility: 1,
	}
}

func setLegs(f pose.Frame, kneeDeg float64) {
	for _, side := range []struct {
		hip, knee, ankle int
		x                float64
	}{
		{pose.LeftHip, pose.LeftKnee, pose.LeftAnkle, 0.5 - sideOffset},
		{pose.RightHip, pose.RightKnee, pose.RightAnkle, 0.5 + sideOffset},
	} {
		knee := pose.Landmark{X: side.x, Y: 0.7, Visibility: 1}
		f[side.knee] = knee
		f[side.ankle] = pose.Landmark{X: side.x, Y: 0.7 + limb, Visibility: 1}
		f[side.hip] = bend(knee, kneeDeg)
	}
}

// Squat returns a frame whose hip-knee-ankle angle is kneeDeg on both legs.
func Squat(kneeDeg float64) pose.Frame {
	f := Standing()
	setLegs(f, kneeDeg)
	return f
}

// Pushup returns a frame whose shoulder-elbow-wrist angle is elbowDeg on both
// arms. Wrists sit directly below the elbows.
func Pushup(elbowDeg float64) pose.Frame {
	f := Standing()
	for _, side := range []struct {
		shoulder, elbow, wrist int
		x                      float64
	}{
		{pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist, 0.4},
		{pose.RightShoulder, pose.RightElbow, pose.RightWrist, 0.6},
	} {
		elbow := pose.Landmark{X: side.x, Y: 0.55, Visibility: 1}
		f[side.elbow] = elbow
		f[side.wrist] = pose.Landmark{X: side.x, Y: 0.55 + limb, Visibility: 1}
		f[side.shoulder] = bend(elbow, elbowDeg)
	}
	return f
}

// Plank returns a forearm-plank frame. With elbowsBelow the elbows sit under
// the shoulders (larger y); otherwise they are raised above them.
func Plank(elbowsBelow bool) pose.Frame {
	f := Standing()
	elbowY := 0.6
	if !elbowsBelow {
		elbowY = 0.2
	}
	f[pose.LeftShoulder] = pose.Landmark{X: 0.3, Y: 0.4, Visibility: 1}
	f[pose.RightShoulder] = pose.Landmark{X: 0.32, Y: 0.4, Visibility: 1}
	f[pose.LeftElbow] = pose.Landmark{X: 0.3, Y: elbowY, Visibility: 1}
	f[pose.RightElbow] = pose.Landmark{X: 0.32, Y: elbowY, Visibility: 1}
	return f
}

// JumpingJack returns a frame with the arms spread wide (open) or together
// (closed). raised lifts both wrists well above the shoulders.
func JumpingJack(open, raised bool) pose.Frame {
	f := Standing()
	wristY := 0.55
	if raised {
		wristY = 0.15
	}
	half := 0.03
	if open {
		half = 0.25
	}
	f[pose.LeftWrist] = pose.Landmark{X: 0.5 - half, Y: wristY, Visibility: 1}
	f[pose.RightWrist] = pose.Landmark{X: 0.5 + half, Y: wristY, Visibility: 1}
	return f
}

// ArmRatio returns a jumping-jack frame whose wrist distance is ratio times
// the shoulder distance, wrists raised.
func ArmRatio(ratio float64) pose.Frame {
	f := Standing()
	half := ratio * shoulderHalf
	f[pose.LeftWrist] = pose.Landmark{X: 0.5 - half, Y: 0.15, Visibility: 1}
	f[pose.RightWrist] = pose.Landmark{X: 0.5 + half, Y: 0.15, Visibility: 1}
	return f
}

// WithVisibility returns a copy of f with the listed landmarks set to vis.
func WithVisibility(f pose.Frame, vis float64, indices ...int) pose.Frame {
	out := make(pose.Frame, len(f))
	copy(out, f)
	for _, idx := range indices {
		if idx >= 0 && idx < len(out) {
			out[idx].Visibility = vis
		}
	}
	return out
}

// Occluded returns a copy of f with every landmark at visibility 0.
func Occluded(f pose.Frame) pose.Frame {
	out := make(pose.Frame, len(f))
	for i, l := range f {
		l.Visibility = 0
		out[i] = l
	}
	return out
}

// Repeat returns n copies of f.
func Repeat(f pose.Frame, n int) []pose.Frame {
	out := make([]pose.Frame, n)
	for i := range out {
		out[i] = f
	}
	return out
}

// Sequence concatenates frame runs.
func Sequence(runs ...[]pose.Frame) []pose.Frame {
	var out []pose.Frame
	for _, r := range runs {
		out = append(out, r...)
	}
	return out
}
