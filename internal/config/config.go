// Package config provides YAML-based tuning for blappy: physics constants,
// player and obstacle geometry, scoring, and difficulty presets.
package config

import (
	"errors"
	"fmt"
)

// Config contains all tuning for one run of the game.
type Config struct {
	World      World      `yaml:"world"`
	Physics    Physics    `yaml:"physics"`
	Player     Player     `yaml:"player"`
	Obstacles  Obstacles  `yaml:"obstacles"`
	Score      Score      `yaml:"score"`
	Boundaries Boundaries `yaml:"boundaries"`
}

// World maps terminal cells to world units.
type World struct {
	CellWidth  float64 `yaml:"cell_width"`  // World units per terminal column
	CellHeight float64 `yaml:"cell_height"` // World units per terminal row
}

// Physics defines the rigid-body world parameters.
type Physics struct {
	Gravity    float64 `yaml:"gravity"`    // Vertical acceleration in units/s², negative = down
	Iterations int     `yaml:"iterations"` // Solver iterations per step
}

// Player defines the controlled body.
type Player struct {
	X            float64 `yaml:"x"`             // Fixed horizontal spawn position
	SpawnY       float64 `yaml:"spawn_y"`       // Vertical spawn position
	Radius       float64 `yaml:"radius"`        // Ball collider radius
	GravityScale float64 `yaml:"gravity_scale"` // Multiplier on world gravity
	JumpSpeed    float64 `yaml:"jump_speed"`    // Upward velocity set by a flap
}

// Obstacles defines the spawner and the gap geometry.
type Obstacles struct {
	SpawnInterval     float64 `yaml:"spawn_interval"`      // Seconds between spawns
	ScrollSpeed       float64 `yaml:"scroll_speed"`        // Leftward speed in units/s
	HalfWidth         float64 `yaml:"half_width"`          // Half of the barrier width
	BarrierHalfHeight float64 `yaml:"barrier_half_height"` // Half of each barrier's height
	HalfGap           float64 `yaml:"half_gap"`            // Distance from gap center to each barrier
	MinHeight         float64 `yaml:"min_height"`          // Lowest gap center (inclusive)
	MaxHeight         float64 `yaml:"max_height"`          // Highest gap center (exclusive)
}

// Score defines the reward per passed obstacle.
type Score struct {
	Reward uint64 `yaml:"reward"`
}

// Boundaries defines the floor and ceiling colliders.
type Boundaries struct {
	Thickness float64 `yaml:"thickness"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate reports the first setting that would make the simulation degenerate.
func (c Config) Validate() error {
	checks := []struct {
		ok   bool
		what string
	}{
		{c.World.CellWidth > 0 && c.World.CellHeight > 0, "world cell size must be positive"},
		{c.Physics.Iterations > 0, "physics.iterations must be positive"},
		{c.Player.Radius > 0, "player.radius must be positive"},
		{c.Player.GravityScale >= 0, "player.gravity_scale must not be negative"},
		{c.Player.JumpSpeed > 0, "player.jump_speed must be positive"},
		{c.Obstacles.SpawnInterval > 0, "obstacles.spawn_interval must be positive"},
		{c.Obstacles.ScrollSpeed > 0, "obstacles.scroll_speed must be positive"},
		{c.Obstacles.HalfWidth > 0, "obstacles.half_width must be positive"},
		{c.Obstacles.BarrierHalfHeight > 0, "obstacles.barrier_half_height must be positive"},
		{c.Obstacles.HalfGap > 0, "obstacles.half_gap must be positive"},
		{c.Obstacles.MinHeight < c.Obstacles.MaxHeight, "obstacles.min_height must be below max_height"},
		{c.Boundaries.Thickness > 0, "boundaries.thickness must be positive"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("config: %s: %w", chk.what, ErrInvalid)
		}
	}
	return nil
}
