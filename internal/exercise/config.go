package exercise

import (
	"github.com/banshee-data/formcheck/internal/config"
	"github.com/banshee-data/formcheck/internal/timeutil"
)

// RepConfig holds the constants of an angle-driven rep counter.
type RepConfig struct {
	DownAngle      float64 // raw phase is down below this angle
	UpAngle        float64 // raw phase is up above this angle
	RequiredFrames int     // consecutive identical raw phases to confirm
	CooldownFrames int     // frames after a rep during which no rep counts
	CorrectDown    float64 // down is correct below this angle
	CorrectUp      float64 // up is correct above this angle
	ScoreFloor     int
}

// PlankConfig holds the plank hold-timing constants.
type PlankConfig struct {
	MinStableFrames   int     // stable frames before the hold starts
	MaxUnstableFrames int     // failing frames tolerated before decay
	FrameRate         float64 // assumed capture rate for frame-counted timing
	WallClock         bool    // time holds from Config.Clock instead
}

// JumpingJackConfig holds the jumping-jack constants.
type JumpingJackConfig struct {
	OpenRatio       float64 // open when wrist distance / shoulder distance exceeds this
	RaiseMargin     float64 // a wrist is raised this far above its shoulder
	MinShoulderDist float64 // floor for the ratio denominator
	RequiredFrames  int
	CooldownFrames  int
}

// Config holds configuration for every tracker.
type Config struct {
	MinVisibility   float64 // per-joint visibility gate
	MinStableFrames int     // frames a confirmed phase is held before it may change

	Squat       RepConfig
	Pushup      RepConfig
	Plank       PlankConfig
	JumpingJack JumpingJackConfig

	// Clock drives wall-clock plank timing. Nil means the real clock.
	Clock timeutil.Clock
}

// DefaultConfig returns the built-in tracker constants.
func DefaultConfig() Config {
	return ConfigFromTuning(config.EmptyTuningConfig())
}

// ConfigFromTuning builds a Config from a loaded TuningConfig.
func ConfigFromTuning(cfg *config.TuningConfig) Config {
	return Config{
		MinVisibility:   cfg.GetMinVisibility(),
		MinStableFrames: cfg.GetMinStableFramesForFlip(),
		Squat: RepConfig{
			DownAngle:      cfg.GetSquatDownAngle(),
			UpAngle:        cfg.GetSquatUpAngle(),
			RequiredFrames: cfg.GetSquatRequiredFrames(),
			CooldownFrames: cfg.GetSquatCooldownFrames(),
			CorrectDown:    cfg.GetSquatCorrectDown(),
			CorrectUp:      cfg.GetSquatCorrectUp(),
			ScoreFloor:     cfg.GetSquatScoreFloor(),
		},
		Pushup: RepConfig{
			DownAngle:      cfg.GetPushupDownAngle(),
			UpAngle:        cfg.GetPushupUpAngle(),
			RequiredFrames: cfg.GetPushupRequiredFrames(),
			CooldownFrames: cfg.GetPushupCooldownFrames(),
			CorrectDown:    cfg.GetPushupCorrectDown(),
			CorrectUp:      cfg.GetPushupCorrectUp(),
			ScoreFloor:     cfg.GetPushupScoreFloor(),
		},
		Plank: PlankConfig{
			MinStableFrames:   cfg.GetPlankMinStableFrames(),
			MaxUnstableFrames: cfg.GetPlankMaxUnstableFrames(),
			FrameRate:         cfg.GetPlankFrameRate(),
			WallClock:         cfg.GetPlankWallClock(),
		},
		JumpingJack: JumpingJackConfig{
			OpenRatio:       cfg.GetJumpingJackOpenRatio(),
			RaiseMargin:     cfg.GetJumpingJackRaiseMargin(),
			MinShoulderDist: cfg.GetJumpingJackMinShoulderDist(),
			RequiredFrames:  cfg.GetJumpingJackRequiredFrames(),
			CooldownFrames:  cfg.GetJumpingJackCooldownFrames(),
		},
	}
}

func (c Config) clock() timeutil.Clock {
	if c.Clock == nil {
		return timeutil.RealClock{}
	}
	return c.Clock
}
