// Package config provides YAML-based configuration loading for the glider
// simulation and its hosts.
package config

// GlideConfig contains all tunables for a Base Glide round.
// World distances are in surface units (pixels in the window host).
type GlideConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Player     PlayerConfig     `yaml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Render     RenderConfig     `yaml:"render"`
	Window     WindowConfig     `yaml:"window"`
}

// PhysicsConfig defines player physics, normalized to the reference frame rate.
type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`         // Downward acceleration per reference frame
	JumpImpulse    float64 `yaml:"jump_impulse"`    // Velocity set on flap (negative = up)
	ReferenceFPS   int     `yaml:"reference_fps"`   // Frame rate at which deltaTime == 1.0
	MaxDelta       float64 `yaml:"max_delta"`       // Upper bound for a single step's deltaTime
	RotationFactor float64 `yaml:"rotation_factor"` // Degrees of banking per unit of velocity
	MinRotation    float64 `yaml:"min_rotation"`
	MaxRotation    float64 `yaml:"max_rotation"`
}

// ObstacleConfig defines obstacle geometry and movement.
type ObstacleConfig struct {
	BaseSpeed float64 `yaml:"base_speed"` // Leftward movement per reference frame
	BaseGap   float64 `yaml:"base_gap"`   // Gap height before difficulty scaling
	Width     float64 `yaml:"width"`
	Spacing   float64 `yaml:"spacing"` // Distance from the right edge before the next spawn
	Margin    float64 `yaml:"margin"`  // Minimum distance between gap and surface edges
}

// PlayerConfig defines the player's fixed horizontal offset and size.
type PlayerConfig struct {
	X      float64 `yaml:"x"`
	Radius float64 `yaml:"radius"`
}

// RenderConfig controls how world units map onto terminal cells.
type RenderConfig struct {
	CellWidth   float64 `yaml:"cell_width"`   // World units per terminal column
	CellHeight  float64 `yaml:"cell_height"`  // World units per terminal row
	GridSpacing float64 `yaml:"grid_spacing"` // Background grid step in world units
}

// WindowConfig controls the windowed host.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}
