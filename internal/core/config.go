package core

// RuntimeConfig contains configuration passed to a host at initialization.
// Hosts use this to size the drawing surface and seed the obstacle RNG.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames scheduled per second (default 60)
	Seed     int64 // RNG seed for gap placement (0 = derive from time)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}
