package config

// DifficultyConfig defines score-based difficulty progression.
// Below Threshold the multipliers stay neutral; above it speed grows by
// SpeedStep per point up to MaxSpeedMultiplier and the gap shrinks by GapStep
// per point down to MinGapMultiplier.
type DifficultyConfig struct {
	Enabled            bool    `yaml:"enabled"`
	Threshold          int     `yaml:"threshold"`
	SpeedStep          float64 `yaml:"speed_step"`
	MaxSpeedMultiplier float64 `yaml:"max_speed_multiplier"`
	GapStep            float64 `yaml:"gap_step"`
	MinGapMultiplier   float64 `yaml:"min_gap_multiplier"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ThresholdForPreset returns the score at which progression starts for a preset.
func ThresholdForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 40
	case DifficultyHard:
		return 10
	default:
		return 25
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ParsePreset validates a preset name. An empty name yields DifficultyNormal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}
