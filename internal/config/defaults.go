package config

import (
	_ "embed"
)

//go:embed defaults/blappy.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
// It mirrors defaults/blappy.yaml and is used when the embedded file cannot be parsed.
func Default() Config {
	return Config{
		World: World{
			CellWidth:  8,
			CellHeight: 20,
		},
		Physics: Physics{
			Gravity:    -981,
			Iterations: 10,
		},
		Player: Player{
			X:            80,
			SpawnY:       240,
			Radius:       12.5,
			GravityScale: 1.4,
			JumpSpeed:    600,
		},
		Obstacles: Obstacles{
			SpawnInterval:     2.0,
			ScrollSpeed:       200,
			HalfWidth:         20,
			BarrierHalfHeight: 400,
			HalfGap:           70,
			MinHeight:         100,
			MaxHeight:         400,
		},
		Score: Score{
			Reward: 100,
		},
		Boundaries: Boundaries{
			Thickness: 10,
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for writing a starter config file.
func DefaultYAML() []byte {
	return defaultYAML
}
