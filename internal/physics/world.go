package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/blappy/internal/core"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeEvents
)

// Options configures a World.
type Options struct {
	Gravity    float64 // Vertical acceleration, negative = down
	Iterations int     // Solver iterations per step
}

type bodyInfo struct {
	body     *cp.Body
	shapes   []*cp.Shape
	static   bool
	position core.Vec2 // Fixed bodies only
}

// World implements Service on a Chipmunk2D space.
type World struct {
	space  *cp.Space
	bodies map[BodyID]*bodyInfo
	owners map[*cp.Shape]Key
	next   BodyID
	events []CollisionEvent
}

// NewWorld creates an empty space with the given gravity.
func NewWorld(opts Options) *World {
	space := cp.NewSpace()
	if opts.Iterations > 0 {
		space.Iterations = uint(opts.Iterations)
	}
	space.SetGravity(cp.Vector{X: 0, Y: opts.Gravity})

	w := &World{
		space:  space,
		bodies: make(map[BodyID]*bodyInfo),
		owners: make(map[*cp.Shape]Key),
	}
	w.setupHandlers()
	return w
}

func (w *World) setupHandlers() {
	for _, other := range []cp.CollisionType{collisionTypeSolid, collisionTypeEvents} {
		h := w.space.NewCollisionHandler(collisionTypeEvents, other)
		h.UserData = w
		h.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			if world, ok := userData.(*World); ok {
				world.record(Started, arb)
			}
			return true
		}
		h.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
			if world, ok := userData.(*World); ok {
				world.record(Stopped, arb)
			}
		}
	}
}

func (w *World) record(kind EventKind, arb *cp.Arbiter) {
	shapeA, shapeB := arb.Shapes()
	a, okA := w.owners[shapeA]
	b, okB := w.owners[shapeB]
	if !okA || !okB {
		return
	}
	w.events = append(w.events, CollisionEvent{Kind: kind, A: a, B: b})
}

// CreateBody adds a body and its colliders to the space.
func (w *World) CreateBody(def BodyDef) BodyID {
	w.next++
	id := w.next
	info := &bodyInfo{}

	switch def.Kind {
	case Fixed:
		info.static = true
		info.body = w.space.StaticBody
		info.position = def.Position
	case KinematicVelocity:
		info.body = cp.NewKinematicBody()
	default:
		info.body = cp.NewBody(1, bodyMoment(def))
	}

	if !info.static {
		info.body.SetPosition(vec(def.Position))
		info.body.SetVelocityVector(vec(def.Velocity))
		if def.Kind == Dynamic && def.GravityScale != 1 {
			scale := def.GravityScale
			info.body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
				cp.BodyUpdateVelocity(body, gravity.Mult(scale), damping, dt)
			})
		}
		w.space.AddBody(info.body)
	}

	for _, c := range def.Colliders {
		offset := c.Offset
		if info.static {
			offset = offset.Add(def.Position)
		}
		shape := newShape(info.body, c, offset)
		shape.SetSensor(c.Sensor)
		if def.Events {
			shape.SetCollisionType(collisionTypeEvents)
		} else {
			shape.SetCollisionType(collisionTypeSolid)
		}
		w.space.AddShape(shape)

		owner := c.Owner
		if owner == 0 {
			owner = def.Owner
		}
		w.owners[shape] = owner
		info.shapes = append(info.shapes, shape)
	}

	w.bodies[id] = info
	return id
}

func bodyMoment(def BodyDef) float64 {
	if def.LockRotation || len(def.Colliders) == 0 {
		return math.Inf(1)
	}
	var moment float64
	for _, c := range def.Colliders {
		switch c.Shape {
		case Ball:
			moment += cp.MomentForCircle(1, 0, c.Radius, vec(c.Offset))
		case Cuboid:
			moment += cp.MomentForBox(1, c.HalfExtent.W*2, c.HalfExtent.H*2)
		}
	}
	return moment
}

func newShape(body *cp.Body, c Collider, offset core.Vec2) *cp.Shape {
	if c.Shape == Ball {
		return cp.NewCircle(body, c.Radius, vec(offset))
	}
	bb := cp.BB{
		L: offset.X - c.HalfExtent.W,
		B: offset.Y - c.HalfExtent.H,
		R: offset.X + c.HalfExtent.W,
		T: offset.Y + c.HalfExtent.H,
	}
	return cp.NewBox2(body, bb, 0)
}

// DestroyBody removes a body and its shapes. Unknown IDs are ignored.
func (w *World) DestroyBody(id BodyID) {
	info, ok := w.bodies[id]
	if !ok {
		return
	}
	for _, shape := range info.shapes {
		w.space.RemoveShape(shape)
		delete(w.owners, shape)
	}
	if !info.static {
		w.space.RemoveBody(info.body)
	}
	delete(w.bodies, id)
}

// Position returns the body's center.
func (w *World) Position(id BodyID) (core.Vec2, bool) {
	info, ok := w.bodies[id]
	if !ok {
		return core.Vec2{}, false
	}
	if info.static {
		return info.position, true
	}
	p := info.body.Position()
	return core.V(p.X, p.Y), true
}

// Velocity returns the body's linear velocity.
func (w *World) Velocity(id BodyID) (core.Vec2, bool) {
	info, ok := w.bodies[id]
	if !ok {
		return core.Vec2{}, false
	}
	if info.static {
		return core.Vec2{}, true
	}
	v := info.body.Velocity()
	return core.V(v.X, v.Y), true
}

// SetVelocity overwrites the body's linear velocity. Fixed bodies refuse.
func (w *World) SetVelocity(id BodyID, v core.Vec2) bool {
	info, ok := w.bodies[id]
	if !ok || info.static {
		return false
	}
	info.body.SetVelocityVector(vec(v))
	return true
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	w.space.Step(dt)
}

// DrainCollisions returns and clears the recorded events.
func (w *World) DrainCollisions() []CollisionEvent {
	out := w.events
	w.events = nil
	return out
}

// BodyCount returns the number of live bodies, fixed ones included.
func (w *World) BodyCount() int {
	return len(w.bodies)
}

func vec(v core.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}
