package glide

import (
	"math"

	"github.com/vovakirdan/baseglide/internal/config"
)

// Player is the glider. X never changes; Y grows downward.
type Player struct {
	X        float64
	Y        float64
	Velocity float64
	Radius   float64
	Rotation float64 // Banking angle in degrees, cosmetic only
}

// Obstacle is a pair of columns with a gap between GapY and GapY+GapSize.
type Obstacle struct {
	ID      int
	X       float64 // Left edge
	GapY    float64 // Top of the gap
	GapSize float64
	Width   float64
	Passed  bool // Credited to the score already
	Bullish bool // Cosmetic color polarity
}

// Right returns the x-coordinate of the right edge.
func (o Obstacle) Right() float64 {
	return o.X + o.Width
}

// Rand is the uniform random source used for gap placement.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64 // Uniform in [0, 1)
}

// NewPlayer returns a player at rest in the vertical center of the surface.
func NewPlayer(cfg config.GlideConfig, height float64) Player {
	return Player{
		X:      cfg.Player.X,
		Y:      height / 2,
		Radius: cfg.Player.Radius,
	}
}

// NewObstacle spawns an obstacle at the right edge of the surface.
// The gap shrinks with score and is placed uniformly between the top and
// bottom margins; on surfaces too short for both margins it sits at the top
// margin.
func NewObstacle(cfg config.GlideConfig, rng Rand, width, height float64, id, score int) Obstacle {
	mult := Difficulty(cfg.Difficulty, score)
	gap := math.Floor(cfg.Obstacles.BaseGap * mult.Gap)

	minGapY := cfg.Obstacles.Margin
	maxGapY := height - gap - cfg.Obstacles.Margin
	gapY := minGapY
	if maxGapY > minGapY {
		gapY = minGapY + rng.Float64()*(maxGapY-minGapY)
	}

	return Obstacle{
		ID:      id,
		X:       width,
		GapY:    gapY,
		GapSize: gap,
		Width:   cfg.Obstacles.Width,
		Bullish: rng.Float64() > 0.5,
	}
}
