package glide

import (
	"github.com/vovakirdan/baseglide/internal/config"
	"github.com/vovakirdan/baseglide/internal/core"
)

// ClampDelta bounds a frame's time scale to [0, cfg.MaxDelta] so a stalled
// frame cannot launch the player through a boundary.
func ClampDelta(cfg config.PhysicsConfig, dt float64) float64 {
	return core.Clamp(dt, 0, cfg.MaxDelta)
}

// StepPlayer advances the player by dt reference frames.
// The result always satisfies Radius <= Y <= height-Radius; hitting the
// ground or ceiling zeroes the velocity.
func StepPlayer(cfg config.GlideConfig, p Player, height, dt float64) Player {
	dt = ClampDelta(cfg.Physics, dt)

	p.Velocity += cfg.Physics.Gravity * dt
	p.Y += p.Velocity * dt
	p.Rotation = core.Clamp(p.Velocity*cfg.Physics.RotationFactor, cfg.Physics.MinRotation, cfg.Physics.MaxRotation)

	// Ground
	if p.Y+p.Radius > height {
		p.Y = height - p.Radius
		p.Velocity = 0
	}
	// Ceiling
	if p.Y-p.Radius < 0 {
		p.Y = p.Radius
		p.Velocity = 0
	}

	return p
}

// Flap overwrites the player's velocity with the upward jump impulse.
func Flap(cfg config.GlideConfig, p Player) Player {
	p.Velocity = cfg.Physics.JumpImpulse
	return p
}
