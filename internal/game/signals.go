package game

import (
	"fmt"

	"github.com/vovakirdan/blappy/internal/entity"
	"github.com/vovakirdan/blappy/internal/state"
)

// Signal is an outbound notification for display, audio or recording layers.
// The concrete types below are the only implementations.
type Signal interface {
	signal()
	String() string
}

// ObstacleSpawned is emitted when an obstacle enters the play area.
type ObstacleSpawned struct {
	Seq  int     // Zero-based spawn order within the run
	GapY float64 // Gap center height
}

// ObstaclePassed is emitted exactly once per obstacle the player crosses.
type ObstaclePassed struct {
	Seq int
}

// PlayerCollided is emitted once per run, on the contact that ends it.
type PlayerCollided struct {
	With entity.Kind
}

// PhaseChanged is emitted for every applied transition.
type PhaseChanged struct {
	From, To state.Phase
}

func (ObstacleSpawned) signal() {}
func (ObstaclePassed) signal()  {}
func (PlayerCollided) signal()  {}
func (PhaseChanged) signal()    {}

func (s ObstacleSpawned) String() string {
	return fmt.Sprintf("obstacle %d spawned (gap %.2f)", s.Seq, s.GapY)
}

func (s ObstaclePassed) String() string {
	return fmt.Sprintf("obstacle %d passed", s.Seq)
}

func (s PlayerCollided) String() string {
	return fmt.Sprintf("player collided with %s", s.With)
}

func (s PhaseChanged) String() string {
	return fmt.Sprintf("phase %s -> %s", s.From, s.To)
}
