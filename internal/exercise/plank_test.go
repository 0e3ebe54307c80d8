package exercise

import (
	"testing"
	"time"

	"github.com/banshee-data/formcheck/internal/pose"
	"github.com/banshee-data/formcheck/internal/pose/synth"
	"github.com/banshee-data/formcheck/internal/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlank_ScenarioB(t *testing.T) {
	t.Parallel()

	tr := NewPlankTracker(DefaultConfig())
	results := feed(tr, synth.Repeat(synth.Plank(true), 15))

	for i, r := range results {
		frame := i + 1
		require.NotNil(t, r.Duration)
		assert.Nil(t, r.Count)
		assert.Equal(t, 80, r.Score)
		assert.Equal(t, frame, r.Details.StableFrames)
		if frame < 10 {
			assert.False(t, r.IsCorrect, "frame %d", frame)
			assert.Zero(t, r.DurationValue(), "frame %d", frame)
			assert.Equal(t, FeedbackPlankHoldSteady, r.Feedback)
			assert.Equal(t, PhaseSettle, r.Details.Phase)
			continue
		}
		assert.True(t, r.IsCorrect, "frame %d", frame)
		assert.InDelta(t, float64(r.Details.StableFrames)/30, r.DurationValue(), 1e-9, "frame %d", frame)
		assert.Equal(t, FeedbackPlankHolding, r.Feedback)
		assert.Equal(t, PhaseHolding, r.Details.Phase)
	}
}

func TestPlank_BadForm(t *testing.T) {
	t.Parallel()

	tr := NewPlankTracker(DefaultConfig())
	r := tr.Analyze(synth.Plank(false))
	assert.False(t, r.IsCorrect)
	assert.Equal(t, 60, r.Score)
	assert.Equal(t, FeedbackPlankElbowsUnderShoulders, r.Feedback)
	assert.Zero(t, r.DurationValue())

	// One side with the elbow above the shoulder fails the whole frame.
	f := synth.Plank(true)
	f[pose.RightElbow].Y = 0.2
	r = tr.Analyze(f)
	assert.Equal(t, FeedbackPlankElbowsUnderShoulders, r.Feedback)

	// An occluded side is ignored.
	r = tr.Analyze(synth.WithVisibility(f, 0, pose.RightElbow))
	assert.Equal(t, 80, r.Score)
	assert.Equal(t, 1, r.Details.StableFrames)
}

// The form check covers the sides that pass the visibility gate. An occluded
// side is not judged, wherever its elbow sits.
func TestPlank_OneSideVisible(t *testing.T) {
	t.Parallel()

	f := synth.Plank(true)
	f[pose.RightElbow].Y = 0.2
	f = synth.WithVisibility(f, 0, pose.RightShoulder, pose.RightElbow)

	tr := NewPlankTracker(DefaultConfig())
	results := feed(tr, synth.Repeat(f, 12))
	r := last(results)
	assert.True(t, r.IsCorrect)
	assert.Equal(t, 80, r.Score)
	assert.Equal(t, FeedbackPlankHolding, r.Feedback)
	assert.InDelta(t, 0.4, r.DurationValue(), 1e-9)
	assert.InDelta(t, 0.2, r.Details.Feature, 1e-9, "left side only")

	// Once the misplaced side is visible again the frame fails.
	bad := synth.Plank(true)
	bad[pose.RightElbow].Y = 0.2
	r = tr.Analyze(bad)
	assert.False(t, r.IsCorrect)
	assert.Equal(t, FeedbackPlankElbowsUnderShoulders, r.Feedback)
}

func TestPlank_ToleratesBriefDrops(t *testing.T) {
	t.Parallel()

	tr := NewPlankTracker(DefaultConfig())
	feed(tr, synth.Repeat(synth.Plank(true), 15))

	drops := feed(tr, synth.Repeat(synth.Plank(false), 6))
	for _, r := range drops[:5] {
		assert.Equal(t, 15, r.Details.StableFrames)
		assert.InDelta(t, 0.5, r.DurationValue(), 1e-9, "no accrual on bad frames")
		assert.False(t, r.IsCorrect)
	}
	assert.Equal(t, 14, drops[5].Details.StableFrames, "decay starts past the tolerance")
	assert.Equal(t, PhaseHolding, drops[5].Details.Phase)

	r := tr.Analyze(synth.Plank(true))
	assert.True(t, r.IsCorrect)
	assert.Equal(t, 15, r.Details.StableFrames)
	assert.Equal(t, 0, r.Details.UnstableFrames)
	assert.InDelta(t, 16.0/30, r.DurationValue(), 1e-9, "hold continues")
}

func TestPlank_HoldEndsAndRestarts(t *testing.T) {
	t.Parallel()

	tr := NewPlankTracker(DefaultConfig())
	feed(tr, synth.Repeat(synth.Plank(true), 15))

	// 5 tolerated, then 12 decays take stable to 3; one more ends the hold.
	bad := feed(tr, synth.Repeat(synth.Plank(false), 17))
	assert.Equal(t, 3, last(bad).Details.StableFrames)
	assert.Equal(t, PhaseHolding, last(bad).Details.Phase)

	r := tr.Analyze(synth.Plank(false))
	assert.Equal(t, 2, r.Details.StableFrames)
	assert.Equal(t, PhaseSettle, r.Details.Phase)
	assert.InDelta(t, 0.5, r.DurationValue(), 1e-9, "duration is kept")

	// Climb from 2 back to 10; the re-entry credits the stable frames again.
	good := feed(tr, synth.Repeat(synth.Plank(true), 8))
	assert.False(t, good[6].IsCorrect)
	assert.InDelta(t, 0.5, good[6].DurationValue(), 1e-9)
	assert.True(t, last(good).IsCorrect)
	assert.InDelta(t, 25.0/30, last(good).DurationValue(), 1e-9)
}

func TestPlank_DurationMonotonicWhileStable(t *testing.T) {
	t.Parallel()

	tr := NewPlankTracker(DefaultConfig())
	prev := 0.0
	for _, r := range feed(tr, synth.Repeat(synth.Plank(true), 120)) {
		assert.GreaterOrEqual(t, r.DurationValue(), prev)
		prev = r.DurationValue()
	}
	assert.InDelta(t, 4.0, prev, 1e-9)
}

func TestPlank_FeedbackTiers(t *testing.T) {
	t.Parallel()

	tr := NewPlankTracker(DefaultConfig())
	results := feed(tr, synth.Repeat(synth.Plank(true), 900))
	assert.Equal(t, FeedbackPlankHolding, results[298].Feedback)
	assert.Equal(t, FeedbackPlankHoldingWell, results[299].Feedback)
	assert.Equal(t, FeedbackPlankHoldingWell, results[898].Feedback)
	assert.Equal(t, FeedbackPlankHoldingGreat, results[899].Feedback)
}

func TestPlank_OutOfView(t *testing.T) {
	t.Parallel()

	tr := NewPlankTracker(DefaultConfig())
	feed(tr, synth.Repeat(synth.Plank(true), 12))

	r := tr.Analyze(synth.Occluded(synth.Plank(true)))
	assert.Equal(t, FeedbackUpperBodyNotVisible, r.Feedback)
	assert.False(t, r.IsCorrect)
	assert.Equal(t, 0, r.Score)
	assert.InDelta(t, 12.0/30, r.DurationValue(), 1e-9)
	assert.Nil(t, r.Details)

	r = tr.Analyze(synth.Plank(true))
	assert.Equal(t, 13, r.Details.StableFrames)
}

func TestPlank_WallClock(t *testing.T) {
	t.Parallel()

	clock := timeutil.NewMockClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	cfg := DefaultConfig()
	cfg.Plank.WallClock = true
	cfg.Clock = clock
	tr := NewPlankTracker(cfg)

	step := func(f pose.Frame, n int, every time.Duration) Result {
		var r Result
		for range n {
			clock.Advance(every)
			r = tr.Analyze(f)
		}
		return r
	}

	r := step(synth.Plank(true), 10, 100*time.Millisecond)
	assert.True(t, r.IsCorrect)
	assert.Zero(t, r.DurationValue(), "wall-clock timing starts at entry")

	r = step(synth.Plank(true), 10, 100*time.Millisecond)
	assert.InDelta(t, 1.0, r.DurationValue(), 1e-9)

	// A slow frame delivery still counts real time.
	r = step(synth.Plank(true), 1, 2*time.Second)
	assert.InDelta(t, 3.0, r.DurationValue(), 1e-9)

	// Time spent in bad form is not credited.
	step(synth.Plank(false), 3, 5*time.Second)
	r = step(synth.Plank(true), 1, 100*time.Millisecond)
	assert.InDelta(t, 3.1, r.DurationValue(), 1e-9)
}
