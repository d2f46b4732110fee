package glide

import (
	"math"

	"github.com/vovakirdan/baseglide/internal/config"
)

// Multipliers scale the base obstacle speed and gap size.
type Multipliers struct {
	Speed float64
	Gap   float64
}

// neutral leaves base values untouched.
var neutral = Multipliers{Speed: 1, Gap: 1}

// Difficulty maps a cumulative score to speed and gap multipliers.
// Below the threshold both are 1.0; above it speed grows linearly up to its
// ceiling and the gap shrinks linearly down to its floor.
func Difficulty(cfg config.DifficultyConfig, score int) Multipliers {
	if !cfg.Enabled || score < cfg.Threshold {
		return neutral
	}

	extra := float64(score - cfg.Threshold)
	return Multipliers{
		Speed: math.Min(1+extra*cfg.SpeedStep, cfg.MaxSpeedMultiplier),
		Gap:   math.Max(1-extra*cfg.GapStep, cfg.MinGapMultiplier),
	}
}
