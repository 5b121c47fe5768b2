// Package physics is the boundary between the gameplay core and the rigid-body
// simulation. The core creates and destroys bodies, sets velocities, reads
// positions back, and consumes collision events. Integration and collision
// detection belong to the implementation.
package physics

import "github.com/vovakirdan/blappy/internal/core"

// BodyKind selects how a body moves.
type BodyKind int

const (
	Dynamic           BodyKind = iota // Moved by gravity and contacts
	KinematicVelocity                 // Moved only by its set velocity
	Fixed                             // Never moves
)

func (k BodyKind) String() string {
	switch k {
	case Dynamic:
		return "dynamic"
	case KinematicVelocity:
		return "kinematic"
	case Fixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// ShapeKind selects the collider geometry.
type ShapeKind int

const (
	Ball ShapeKind = iota
	Cuboid
)

// Key identifies the owner of a body or collider in collision events.
// The gameplay core uses entity IDs.
type Key uint64

// Collider is one shape attached to a body.
type Collider struct {
	Shape      ShapeKind
	Radius     float64   // Ball
	HalfExtent core.Size // Cuboid half width (W) and half height (H)
	Offset     core.Vec2 // Relative to the body position
	Sensor     bool      // Reports overlaps without pushing back
	Owner      Key       // Reported in events; 0 means the body owner
}

// BodyDef describes a body to create.
type BodyDef struct {
	Kind         BodyKind
	Position     core.Vec2
	Velocity     core.Vec2
	GravityScale float64 // Dynamic only; 1 is neutral
	LockRotation bool
	Events       bool // Report collisions involving this body
	Owner        Key
	Colliders    []Collider
}

// BodyID is a handle returned by CreateBody. The zero value is never issued.
type BodyID uint64

// EventKind distinguishes collision start from collision stop.
type EventKind int

const (
	Started EventKind = iota
	Stopped
)

func (k EventKind) String() string {
	if k == Started {
		return "started"
	}
	return "stopped"
}

// CollisionEvent reports a contact change between two collider owners.
type CollisionEvent struct {
	Kind EventKind
	A, B Key
}

// Involves reports whether either side of the event is k.
func (e CollisionEvent) Involves(k Key) bool {
	return e.A == k || e.B == k
}

// Other returns the key on the opposite side from k.
func (e CollisionEvent) Other(k Key) Key {
	if e.A == k {
		return e.B
	}
	return e.A
}

// Service is the rigid-body world the gameplay core drives.
type Service interface {
	CreateBody(def BodyDef) BodyID
	DestroyBody(id BodyID)
	Position(id BodyID) (core.Vec2, bool)
	Velocity(id BodyID) (core.Vec2, bool)
	SetVelocity(id BodyID, v core.Vec2) bool
	Step(dt float64)
	// DrainCollisions returns the events recorded since the last call, in order.
	DrainCollisions() []CollisionEvent
	BodyCount() int
}
