package core

// RuntimeConfig contains host parameters for driving the engine clock.
type RuntimeConfig struct {
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{TickRate: 60}
}

// FrameDelta returns the fixed frame delta in seconds for the tick rate.
func (c RuntimeConfig) FrameDelta() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}
