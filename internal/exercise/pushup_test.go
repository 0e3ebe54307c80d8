package exercise

import (
	"testing"

	"github.com/banshee-data/formcheck/internal/pose"
	"github.com/banshee-data/formcheck/internal/pose/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushup_CountsOneRep(t *testing.T) {
	t.Parallel()

	tr := NewPushupTracker(DefaultConfig())
	results := feed(tr, synth.Sequence(
		synth.Repeat(synth.Pushup(160), 10),
		synth.Repeat(synth.Pushup(80), 10),
		synth.Repeat(synth.Pushup(160), 10),
	))

	assert.Equal(t, PhaseUp, results[13].Details.Phase, "needs five frames")
	assert.Equal(t, PhaseDown, results[14].Details.Phase)
	assert.Equal(t, FeedbackPushupPush, results[14].Feedback)
	assert.True(t, results[14].IsCorrect)
	assert.Equal(t, 100, results[14].Score)

	assert.Equal(t, 0, results[23].CountValue())
	assert.Equal(t, 1, results[24].CountValue())
	assert.Equal(t, 15, results[24].Details.Cooldown)
	assert.Equal(t, FeedbackPushupLower, last(results).Feedback)
	assert.True(t, last(results).IsCorrect)
}

func TestPushup_HysteresisBand(t *testing.T) {
	t.Parallel()

	tr := NewPushupTracker(DefaultConfig())
	feed(tr, synth.Repeat(synth.Pushup(90), 10))

	// 135° sits between 115 and 155: stays down however long it is held.
	results := feed(tr, synth.Repeat(synth.Pushup(135), 20))
	for _, r := range results {
		assert.Equal(t, PhaseDown, r.Details.Phase)
		assert.Equal(t, PhaseDown, r.Details.RawPhase)
	}
	assert.Equal(t, 0, last(results).CountValue())
}

func TestPushup_Debounce(t *testing.T) {
	t.Parallel()

	tr := NewPushupTracker(DefaultConfig())
	results := feed(tr, synth.Sequence(
		synth.Repeat(synth.Pushup(160), 5),
		synth.Repeat(synth.Pushup(80), 4),
		synth.Repeat(synth.Pushup(160), 5),
		synth.Repeat(synth.Pushup(80), 1),
		synth.Repeat(synth.Pushup(160), 5),
	))
	for _, r := range results {
		assert.Equal(t, PhaseUp, r.Details.Phase)
		assert.Equal(t, 0, r.CountValue())
	}
}

func TestPushup_Cooldown(t *testing.T) {
	t.Parallel()

	tr := NewPushupTracker(DefaultConfig())
	results := feed(tr, synth.Sequence(
		synth.Repeat(synth.Pushup(80), 10),
		synth.Repeat(synth.Pushup(160), 5), // rep on the fifth frame
		synth.Repeat(synth.Pushup(80), 5),
		synth.Repeat(synth.Pushup(160), 5), // 10 frames later, inside the 15-frame window
	))
	require.Equal(t, 1, results[14].CountValue())
	assert.Equal(t, PhaseUp, last(results).Details.Phase)
	assert.Equal(t, 1, last(results).CountValue())
}

func TestPushup_AveragesVisibleArms(t *testing.T) {
	t.Parallel()

	f := synth.Pushup(100)
	f[pose.RightShoulder] = pose.Landmark{X: 0.6 + 0.25, Y: 0.55, Visibility: 1} // right arm at 90°

	r := NewPushupTracker(DefaultConfig()).Analyze(f)
	require.NotNil(t, r.Details)
	assert.InDelta(t, 95, r.Details.Feature, 1e-6)
	assert.Empty(t, r.Details.Side, "both arms contribute")

	r = NewPushupTracker(DefaultConfig()).Analyze(synth.WithVisibility(f, 0, pose.RightWrist))
	assert.InDelta(t, 100, r.Details.Feature, 1e-6)
	assert.Equal(t, pose.SideLeft, r.Details.Side)

	r = NewPushupTracker(DefaultConfig()).Analyze(synth.WithVisibility(f, 0, pose.LeftWrist))
	assert.InDelta(t, 90, r.Details.Feature, 1e-6)
	assert.Equal(t, pose.SideRight, r.Details.Side)
}

func TestPushup_OutOfView(t *testing.T) {
	t.Parallel()

	tr := NewPushupTracker(DefaultConfig())
	r := tr.Analyze(synth.WithVisibility(synth.Pushup(90), 0.2, pose.LeftWrist, pose.RightWrist))
	assert.Equal(t, FeedbackUpperBodyNotVisible, r.Feedback)
	assert.Equal(t, 0, r.Score)
	assert.False(t, r.IsCorrect)
	assert.Equal(t, 0, r.CountValue())
}

func TestPushup_ScoreFloor(t *testing.T) {
	t.Parallel()

	tr := NewPushupTracker(DefaultConfig())
	r := tr.Analyze(synth.Pushup(50)) // still confirmed up
	assert.Equal(t, 60, r.Score)
	assert.False(t, r.IsCorrect)

	feed(tr, synth.Repeat(synth.Pushup(50), 5))
	r = tr.Analyze(synth.Pushup(112.5))
	assert.Equal(t, PhaseDown, r.Details.Phase)
	assert.Equal(t, 77, r.Score)
	assert.False(t, r.IsCorrect, "112.5 is not below 100")
}
