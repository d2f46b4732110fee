package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "glide.yaml"

// LoadGlide loads the glider configuration.
// Search order: customPath -> ~/.glide/configs/glide.yaml -> ./configs/glide.yaml -> embedded default
// Files only need to contain the keys they override; everything else keeps
// its default value.
func LoadGlide(customPath string) (GlideConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GlideConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return GlideConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFileName)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultGlideYAML)
	if err != nil {
		return DefaultGlideConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse overlays YAML onto the built-in defaults and validates the result.
func parse(data []byte) (GlideConfig, error) {
	cfg := DefaultGlideConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GlideConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return GlideConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".glide", "configs", filename)
}

// Validate reports values that would make the simulation meaningless.
func (c GlideConfig) Validate() error {
	var errs []error
	if c.Physics.Gravity <= 0 {
		errs = append(errs, errors.New("physics.gravity must be positive"))
	}
	if c.Physics.JumpImpulse >= 0 {
		errs = append(errs, errors.New("physics.jump_impulse must be negative"))
	}
	if c.Physics.ReferenceFPS <= 0 {
		errs = append(errs, errors.New("physics.reference_fps must be positive"))
	}
	if c.Physics.MaxDelta <= 0 {
		errs = append(errs, errors.New("physics.max_delta must be positive"))
	}
	if c.Obstacles.BaseSpeed <= 0 {
		errs = append(errs, errors.New("obstacles.base_speed must be positive"))
	}
	if c.Obstacles.BaseGap <= 0 || c.Obstacles.Width <= 0 || c.Obstacles.Spacing <= 0 {
		errs = append(errs, errors.New("obstacles.base_gap, width and spacing must be positive"))
	}
	if c.Physics.MinRotation > c.Physics.MaxRotation {
		errs = append(errs, errors.New("physics.min_rotation must not exceed max_rotation"))
	}
	if c.Obstacles.Margin < 0 {
		errs = append(errs, errors.New("obstacles.margin must not be negative"))
	}
	if c.Player.Radius <= 0 {
		errs = append(errs, errors.New("player.radius must be positive"))
	}
	if c.Difficulty.Threshold < 0 {
		errs = append(errs, errors.New("difficulty.threshold must not be negative"))
	}
	if c.Difficulty.SpeedStep < 0 || c.Difficulty.GapStep < 0 {
		errs = append(errs, errors.New("difficulty.speed_step and gap_step must not be negative"))
	}
	if c.Difficulty.MaxSpeedMultiplier < 1 {
		errs = append(errs, errors.New("difficulty.max_speed_multiplier must be at least 1"))
	}
	if c.Difficulty.MinGapMultiplier <= 0 || c.Difficulty.MinGapMultiplier > 1 {
		errs = append(errs, errors.New("difficulty.min_gap_multiplier must be in (0, 1]"))
	}
	if c.Render.CellWidth <= 0 || c.Render.CellHeight <= 0 {
		errs = append(errs, errors.New("render.cell_width and cell_height must be positive"))
	}
	return errors.Join(errs...)
}

// ApplyGlidePreset modifies the config based on a difficulty preset.
func ApplyGlidePreset(cfg *GlideConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.Threshold = ThresholdForPreset(preset)
}
