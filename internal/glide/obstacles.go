package glide

import (
	"github.com/vovakirdan/baseglide/internal/config"
)

// ObstacleStep is the input to StepObstacles.
type ObstacleStep struct {
	Obstacles []Obstacle
	Width     float64
	Height    float64
	NextID    int
	Delta     float64
	Score     int // Cumulative score at the start of the frame
}

// ObstacleResult is the output of StepObstacles.
type ObstacleResult struct {
	Obstacles []Obstacle
	Scored    int // Pass-through credits earned this step
	NextID    int
}

// StepObstacles moves obstacles left, credits pass-throughs, retires
// obstacles that left the surface and spawns a new one when the right-most
// obstacle has cleared the spacing threshold.
// Each obstacle is credited at most once; two obstacles crossing in the same
// step are credited separately. The input slice is not modified.
func StepObstacles(cfg config.GlideConfig, rng Rand, in ObstacleStep) ObstacleResult {
	dt := ClampDelta(cfg.Physics, in.Delta)
	speed := cfg.Obstacles.BaseSpeed * Difficulty(cfg.Difficulty, in.Score).Speed

	out := ObstacleResult{
		Obstacles: make([]Obstacle, 0, len(in.Obstacles)+1),
		NextID:    in.NextID,
	}

	for _, o := range in.Obstacles {
		o.X -= speed * dt

		if !o.Passed && o.Right() < cfg.Player.X {
			o.Passed = true
			out.Scored++
		}

		// Fully off the left edge
		if o.Right() <= 0 {
			continue
		}
		out.Obstacles = append(out.Obstacles, o)
	}

	if needsSpawn(out.Obstacles, in.Width-cfg.Obstacles.Spacing) {
		out.Obstacles = append(out.Obstacles, NewObstacle(cfg, rng, in.Width, in.Height, out.NextID, in.Score))
		out.NextID++
	}

	return out
}

// needsSpawn reports whether no obstacle remains or the right-most one is
// left of threshold.
func needsSpawn(obstacles []Obstacle, threshold float64) bool {
	if len(obstacles) == 0 {
		return true
	}
	rightmost := obstacles[0].X
	for _, o := range obstacles[1:] {
		if o.X > rightmost {
			rightmost = o.X
		}
	}
	return rightmost < threshold
}
