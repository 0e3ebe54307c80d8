package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultConfigPath is the path to the documented tuning defaults file.
// The Get* accessors below are the source of truth; the file mirrors them.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig holds the tracker constants. Every field is optional: a nil
// field falls back to the default returned by its Get* accessor, so partial
// files are safe.
type TuningConfig struct {
	// Shared
	MinVisibility          *float64 `json:"min_visibility,omitempty" toml:"min_visibility"`
	MinStableFramesForFlip *int     `json:"min_stable_frames_for_flip,omitempty" toml:"min_stable_frames_for_flip"`

	// Squat
	SquatDownAngle      *float64 `json:"squat_down_angle,omitempty" toml:"squat_down_angle"`
	SquatUpAngle        *float64 `json:"squat_up_angle,omitempty" toml:"squat_up_angle"`
	SquatRequiredFrames *int     `json:"squat_required_frames,omitempty" toml:"squat_required_frames"`
	SquatCooldownFrames *int     `json:"squat_cooldown_frames,omitempty" toml:"squat_cooldown_frames"`
	SquatCorrectDown    *float64 `json:"squat_correct_down,omitempty" toml:"squat_correct_down"`
	SquatCorrectUp      *float64 `json:"squat_correct_up,omitempty" toml:"squat_correct_up"`
	SquatScoreFloor     *int     `json:"squat_score_floor,omitempty" toml:"squat_score_floor"`

	// Push-up
	PushupDownAngle      *float64 `json:"pushup_down_angle,omitempty" toml:"pushup_down_angle"`
	PushupUpAngle        *float64 `json:"pushup_up_angle,omitempty" toml:"pushup_up_angle"`
	PushupRequiredFrames *int     `json:"pushup_required_frames,omitempty" toml:"pushup_required_frames"`
	PushupCooldownFrames *int     `json:"pushup_cooldown_frames,omitempty" toml:"pushup_cooldown_frames"`
	PushupCorrectDown    *float64 `json:"pushup_correct_down,omitempty" toml:"pushup_correct_down"`
	PushupCorrectUp      *float64 `json:"pushup_correct_up,omitempty" toml:"pushup_correct_up"`
	PushupScoreFloor     *int     `json:"pushup_score_floor,omitempty" toml:"pushup_score_floor"`

	// Plank
	PlankMinStableFrames   *int     `json:"plank_min_stable_frames,omitempty" toml:"plank_min_stable_frames"`
	PlankMaxUnstableFrames *int     `json:"plank_max_unstable_frames,omitempty" toml:"plank_max_unstable_frames"`
	PlankFrameRate         *float64 `json:"plank_frame_rate,omitempty" toml:"plank_frame_rate"`
	PlankWallClock         *bool    `json:"plank_wall_clock,omitempty" toml:"plank_wall_clock"`

	// Jumping-jack
	JumpingJackOpenRatio       *float64 `json:"jumping_jack_open_ratio,omitempty" toml:"jumping_jack_open_ratio"`
	JumpingJackRaiseMargin     *float64 `json:"jumping_jack_raise_margin,omitempty" toml:"jumping_jack_raise_margin"`
	JumpingJackMinShoulderDist *float64 `json:"jumping_jack_min_shoulder_dist,omitempty" toml:"jumping_jack_min_shoulder_dist"`
	JumpingJackRequiredFrames  *int     `json:"jumping_jack_required_frames,omitempty" toml:"jumping_jack_required_frames"`
	JumpingJackCooldownFrames  *int     `json:"jumping_jack_cooldown_frames,omitempty" toml:"jumping_jack_cooldown_frames"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a .json or .toml file.
// The file must be under the max file size and pass Validate.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	ext := filepath.Ext(cleanPath)
	if ext != ".json" && ext != ".toml" {
		return nil, fmt.Errorf("config file must have .json or .toml extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configured values are usable.
func (c *TuningConfig) Validate() error {
	if c.MinVisibility != nil && (*c.MinVisibility < 0 || *c.MinVisibility > 1) {
		return fmt.Errorf("min_visibility must be between 0 and 1, got %f", *c.MinVisibility)
	}

	positive := map[string]*int{
		"squat_required_frames":        c.SquatRequiredFrames,
		"pushup_required_frames":       c.PushupRequiredFrames,
		"jumping_jack_required_frames": c.JumpingJackRequiredFrames,
		"plank_min_stable_frames":      c.PlankMinStableFrames,
	}
	for name, v := range positive {
		if v != nil && *v < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", name, *v)
		}
	}

	nonNegative := map[string]*int{
		"min_stable_frames_for_flip":   c.MinStableFramesForFlip,
		"squat_cooldown_frames":        c.SquatCooldownFrames,
		"pushup_cooldown_frames":       c.PushupCooldownFrames,
		"jumping_jack_cooldown_frames": c.JumpingJackCooldownFrames,
		"plank_max_unstable_frames":    c.PlankMaxUnstableFrames,
	}
	for name, v := range nonNegative {
		if v != nil && *v < 0 {
			return fmt.Errorf("%s must be non-negative, got %d", name, *v)
		}
	}

	if c.SquatDownAngle != nil && c.SquatUpAngle != nil && *c.SquatDownAngle > *c.SquatUpAngle {
		return fmt.Errorf("squat_down_angle (%f) must not exceed squat_up_angle (%f)", *c.SquatDownAngle, *c.SquatUpAngle)
	}
	if c.PushupDownAngle != nil && c.PushupUpAngle != nil && *c.PushupDownAngle > *c.PushupUpAngle {
		return fmt.Errorf("pushup_down_angle (%f) must not exceed pushup_up_angle (%f)", *c.PushupDownAngle, *c.PushupUpAngle)
	}

	if c.PlankFrameRate != nil && *c.PlankFrameRate <= 0 {
		return fmt.Errorf("plank_frame_rate must be positive, got %f", *c.PlankFrameRate)
	}
	if c.JumpingJackMinShoulderDist != nil && *c.JumpingJackMinShoulderDist <= 0 {
		return fmt.Errorf("jumping_jack_min_shoulder_dist must be positive, got %f", *c.JumpingJackMinShoulderDist)
	}

	for name, v := range map[string]*int{
		"squat_score_floor":  c.SquatScoreFloor,
		"pushup_score_floor": c.PushupScoreFloor,
	} {
		if v != nil && (*v < 0 || *v > 100) {
			return fmt.Errorf("%s must be between 0 and 100, got %d", name, *v)
		}
	}

	return nil
}

// GetMinVisibility returns the min_visibility value or the default.
func (c *TuningConfig) GetMinVisibility() float64 {
	if c.MinVisibility == nil {
		return 0.5
	}
	return *c.MinVisibility
}

// GetMinStableFramesForFlip returns how long a confirmed phase must be held
// before a transition out of it is accepted.
func (c *TuningConfig) GetMinStableFramesForFlip() int {
	if c.MinStableFramesForFlip == nil {
		return 3
	}
	return *c.MinStableFramesForFlip
}

// GetSquatDownAngle returns the squat_down_angle value or the default.
func (c *TuningConfig) GetSquatDownAngle() float64 {
	if c.SquatDownAngle == nil {
		return 140
	}
	return *c.SquatDownAngle
}

// GetSquatUpAngle returns the squat_up_angle value or the default.
// The default equals the down angle, so squats have no hysteresis band.
func (c *TuningConfig) GetSquatUpAngle() float64 {
	if c.SquatUpAngle == nil {
		return 140
	}
	return *c.SquatUpAngle
}

// GetSquatRequiredFrames returns the squat_required_frames value or the default.
func (c *TuningConfig) GetSquatRequiredFrames() int {
	if c.SquatRequiredFrames == nil {
		return 2
	}
	return *c.SquatRequiredFrames
}

// GetSquatCooldownFrames returns the squat_cooldown_frames value or the default.
func (c *TuningConfig) GetSquatCooldownFrames() int {
	if c.SquatCooldownFrames == nil {
		return 10
	}
	return *c.SquatCooldownFrames
}

// GetSquatCorrectDown returns the squat_correct_down value or the default.
func (c *TuningConfig) GetSquatCorrectDown() float64 {
	if c.SquatCorrectDown == nil {
		return 120
	}
	return *c.SquatCorrectDown
}

// GetSquatCorrectUp returns the squat_correct_up value or the default.
func (c *TuningConfig) GetSquatCorrectUp() float64 {
	if c.SquatCorrectUp == nil {
		return 150
	}
	return *c.SquatCorrectUp
}

// GetSquatScoreFloor returns the squat_score_floor value or the default.
func (c *TuningConfig) GetSquatScoreFloor() int {
	if c.SquatScoreFloor == nil {
		return 70
	}
	return *c.SquatScoreFloor
}

// GetPushupDownAngle returns the pushup_down_angle value or the default.
func (c *TuningConfig) GetPushupDownAngle() float64 {
	if c.PushupDownAngle == nil {
		return 115
	}
	return *c.PushupDownAngle
}

// GetPushupUpAngle returns the pushup_up_angle value or the default.
func (c *TuningConfig) GetPushupUpAngle() float64 {
	if c.PushupUpAngle == nil {
		return 155
	}
	return *c.PushupUpAngle
}

// GetPushupRequiredFrames returns the pushup_required_frames value or the default.
func (c *TuningConfig) GetPushupRequiredFrames() int {
	if c.PushupRequiredFrames == nil {
		return 5
	}
	return *c.PushupRequiredFrames
}

// GetPushupCooldownFrames returns the pushup_cooldown_frames value or the default.
func (c *TuningConfig) GetPushupCooldownFrames() int {
	if c.PushupCooldownFrames == nil {
		return 15
	}
	return *c.PushupCooldownFrames
}

// GetPushupCorrectDown returns the pushup_correct_down value or the default.
func (c *TuningConfig) GetPushupCorrectDown() float64 {
	if c.PushupCorrectDown == nil {
		return 100
	}
	return *c.PushupCorrectDown
}

// GetPushupCorrectUp returns the pushup_correct_up value or the default.
func (c *TuningConfig) GetPushupCorrectUp() float64 {
	if c.PushupCorrectUp == nil {
		return 150
	}
	return *c.PushupCorrectUp
}

// GetPushupScoreFloor returns the pushup_score_floor value or the default.
func (c *TuningConfig) GetPushupScoreFloor() int {
	if c.PushupScoreFloor == nil {
		return 60
	}
	return *c.PushupScoreFloor
}

// GetPlankMinStableFrames returns the plank_min_stable_frames value or the default.
func (c *TuningConfig) GetPlankMinStableFrames() int {
	if c.PlankMinStableFrames == nil {
		return 10
	}
	return *c.PlankMinStableFrames
}

// GetPlankMaxUnstableFrames returns the plank_max_unstable_frames value or the default.
func (c *TuningConfig) GetPlankMaxUnstableFrames() int {
	if c.PlankMaxUnstableFrames == nil {
		return 5
	}
	return *c.PlankMaxUnstableFrames
}

// GetPlankFrameRate returns the assumed capture rate used to turn held
// frames into seconds.
func (c *TuningConfig) GetPlankFrameRate() float64 {
	if c.PlankFrameRate == nil {
		return 30
	}
	return *c.PlankFrameRate
}

// GetPlankWallClock reports whether plank holds are timed from the wall
// clock instead of the frame count.
func (c *TuningConfig) GetPlankWallClock() bool {
	if c.PlankWallClock == nil {
		return false // default: frame-counted
	}
	return *c.PlankWallClock
}

// GetJumpingJackOpenRatio returns the jumping_jack_open_ratio value or the default.
func (c *TuningConfig) GetJumpingJackOpenRatio() float64 {
	if c.JumpingJackOpenRatio == nil {
		return 1.4
	}
	return *c.JumpingJackOpenRatio
}

// GetJumpingJackRaiseMargin returns the jumping_jack_raise_margin value or the default.
func (c *TuningConfig) GetJumpingJackRaiseMargin() float64 {
	if c.JumpingJackRaiseMargin == nil {
		return 0.05
	}
	return *c.JumpingJackRaiseMargin
}

// GetJumpingJackMinShoulderDist returns the floor applied to the shoulder
// distance before it is used as a denominator.
func (c *TuningConfig) GetJumpingJackMinShoulderDist() float64 {
	if c.JumpingJackMinShoulderDist == nil {
		return 0.1
	}
	return *c.JumpingJackMinShoulderDist
}

// GetJumpingJackRequiredFrames returns the jumping_jack_required_frames value or the default.
func (c *TuningConfig) GetJumpingJackRequiredFrames() int {
	if c.JumpingJackRequiredFrames == nil {
		return 3
	}
	return *c.JumpingJackRequiredFrames
}

// GetJumpingJackCooldownFrames returns the jumping_jack_cooldown_frames value or the default.
func (c *TuningConfig) GetJumpingJackCooldownFrames() int {
	if c.JumpingJackCooldownFrames == nil {
		return 10
	}
	return *c.JumpingJackCooldownFrames
}
