package config

import (
	_ "embed"
)

//go:embed defaults/glide.yaml
var defaultGlideYAML []byte

// DefaultGlideConfig returns the built-in configuration.
// Used when the embedded YAML cannot be parsed.
func DefaultGlideConfig() GlideConfig {
	return GlideConfig{
		Physics: PhysicsConfig{
			Gravity:        0.5,
			JumpImpulse:    -9,
			ReferenceFPS:   60,
			MaxDelta:       2.0,
			RotationFactor: 3,
			MinRotation:    -30,
			MaxRotation:    90,
		},
		Obstacles: ObstacleConfig{
			BaseSpeed: 2.5,
			BaseGap:   190,
			Width:     60,
			Spacing:   320,
			Margin:    100,
		},
		Player: PlayerConfig{
			X:      100,
			Radius: 18,
		},
		Difficulty: DifficultyConfig{
			Enabled:            true,
			Threshold:          25,
			SpeedStep:          0.015,
			MaxSpeedMultiplier: 1.6,
			GapStep:            0.008,
			MinGapMultiplier:   0.75,
		},
		Render: RenderConfig{
			CellWidth:   8,
			CellHeight:  32,
			GridSpacing: 50,
		},
		Window: WindowConfig{
			Width:  400,
			Height: 800,
			Title:  "Base Glide",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultGlideYAML
}
