package exercise

import "github.com/banshee-data/formcheck/internal/pose"

// Feedback is a semantic feedback category. User-facing text for each
// category lives in internal/i18n.
type Feedback string

const (
	FeedbackLowerBodyNotVisible Feedback = "lower_body_not_visible"
	FeedbackUpperBodyNotVisible Feedback = "upper_body_not_visible"

	FeedbackSquatRise    Feedback = "squat_rise"    // confirmed down, stand back up
	FeedbackSquatDescend Feedback = "squat_descend" // confirmed up, squat down

	FeedbackPushupPush  Feedback = "pushup_push"  // confirmed down, push up
	FeedbackPushupLower Feedback = "pushup_lower" // confirmed up, lower the body

	FeedbackPlankElbowsUnderShoulders Feedback = "plank_elbows_under_shoulders"
	FeedbackPlankHoldSteady           Feedback = "plank_hold_steady"
	FeedbackPlankHolding              Feedback = "plank_holding"       // under 10s
	FeedbackPlankHoldingWell          Feedback = "plank_holding_well"  // under 30s
	FeedbackPlankHoldingGreat         Feedback = "plank_holding_great" // 30s and beyond

	FeedbackJumpingJackClose    Feedback = "jumping_jack_close"     // open, bring the arms back
	FeedbackJumpingJackHoldOpen Feedback = "jumping_jack_hold_open" // open, mid-cooldown or re-opened
	FeedbackJumpingJackRepDone  Feedback = "jumping_jack_rep_done"
	FeedbackJumpingJackReady    Feedback = "jumping_jack_ready"
	FeedbackJumpingJackRaise    Feedback = "jumping_jack_raise_arms"
	FeedbackJumpingJackJump     Feedback = "jumping_jack_jump"
)

// Feedbacks returns every category a tracker can emit.
func Feedbacks() []Feedback {
	return []Feedback{
		FeedbackLowerBodyNotVisible, FeedbackUpperBodyNotVisible,
		FeedbackSquatRise, FeedbackSquatDescend,
		FeedbackPushupPush, FeedbackPushupLower,
		FeedbackPlankElbowsUnderShoulders, FeedbackPlankHoldSteady,
		FeedbackPlankHolding, FeedbackPlankHoldingWell, FeedbackPlankHoldingGreat,
		FeedbackJumpingJackClose, FeedbackJumpingJackHoldOpen,
		FeedbackJumpingJackRepDone, FeedbackJumpingJackReady,
		FeedbackJumpingJackRaise, FeedbackJumpingJackJump,
	}
}

// OutOfView reports whether fb is one of the "not visible" categories.
func (fb Feedback) OutOfView() bool {
	return fb == FeedbackLowerBodyNotVisible || fb == FeedbackUpperBodyNotVisible
}

// Result is the per-frame output of a Tracker. Exactly one of Count and
// Duration is non-nil, depending on the exercise Kind.
type Result struct {
	IsCorrect bool     `json:"is_correct"`
	Score     int      `json:"score"`
	Feedback  Feedback `json:"feedback"`
	Count     *int     `json:"count,omitempty"`
	Duration  *float64 `json:"duration,omitempty"` // seconds
	Details   *Details `json:"details,omitempty"`  // nil when out of view
}

// CountValue returns the rep count, or 0 for hold exercises.
func (r Result) CountValue() int {
	if r.Count == nil {
		return 0
	}
	return *r.Count
}

// DurationValue returns the hold duration in seconds, or 0 for rep exercises.
func (r Result) DurationValue() float64 {
	if r.Duration == nil {
		return 0
	}
	return *r.Duration
}

// Details exposes tracker internals for debugging and replay output.
type Details struct {
	Feature        float64   `json:"feature"` // angle in degrees, or arm ratio
	Side           pose.Side `json:"side,omitempty"`
	Phase          Phase     `json:"phase"`
	RawPhase       Phase     `json:"raw_phase"`
	Cooldown       int       `json:"cooldown"`
	StableFrames   int       `json:"stable_frames,omitempty"`
	UnstableFrames int       `json:"unstable_frames,omitempty"`
	Movement       Movement  `json:"movement,omitempty"`
	Cycles         int       `json:"cycles,omitempty"`
}

func repResult(count int) Result {
	return Result{Count: &count}
}

func holdResult(seconds float64) Result {
	return Result{Duration: &seconds}
}

// clampScore truncates v and clamps it to [0, 100].
func clampScore(v float64) int {
	s := int(v)
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
