package game

import (
	"github.com/vovakirdan/blappy/internal/core"
	"github.com/vovakirdan/blappy/internal/physics"
)

// fakePhysics integrates velocities without collision detection.
// Tests inject collision events directly.
type fakePhysics struct {
	gravity float64
	next    physics.BodyID
	bodies  map[physics.BodyID]*fakeBody
	events  []physics.CollisionEvent
	elapsed float64
}

type fakeBody struct {
	def physics.BodyDef
	pos core.Vec2
	vel core.Vec2
}

func newFakePhysics() *fakePhysics {
	return &fakePhysics{bodies: make(map[physics.BodyID]*fakeBody)}
}

func (f *fakePhysics) CreateBody(def physics.BodyDef) physics.BodyID {
	f.next++
	f.bodies[f.next] = &fakeBody{def: def, pos: def.Position, vel: def.Velocity}
	return f.next
}

func (f *fakePhysics) DestroyBody(id physics.BodyID) {
	delete(f.bodies, id)
}

func (f *fakePhysics) Position(id physics.BodyID) (core.Vec2, bool) {
	b, ok := f.bodies[id]
	if !ok {
		return core.Vec2{}, false
	}
	return b.pos, true
}

func (f *fakePhysics) Velocity(id physics.BodyID) (core.Vec2, bool) {
	b, ok := f.bodies[id]
	if !ok {
		return core.Vec2{}, false
	}
	return b.vel, true
}

func (f *fakePhysics) SetVelocity(id physics.BodyID, v core.Vec2) bool {
	b, ok := f.bodies[id]
	if !ok || b.def.Kind == physics.Fixed {
		return false
	}
	b.vel = v
	return true
}

func (f *fakePhysics) Step(dt float64) {
	f.elapsed += dt
	for _, b := range f.bodies {
		switch b.def.Kind {
		case physics.Dynamic:
			b.vel.Y += f.gravity * b.def.GravityScale * dt
			b.pos = b.pos.Add(b.vel.Scale(dt))
		case physics.KinematicVelocity:
			b.pos = b.pos.Add(b.vel.Scale(dt))
		}
	}
}

func (f *fakePhysics) DrainCollisions() []physics.CollisionEvent {
	out := f.events
	f.events = nil
	return out
}

func (f *fakePhysics) BodyCount() int {
	return len(f.bodies)
}

func (f *fakePhysics) collide(a, b physics.Key) {
	f.events = append(f.events, physics.CollisionEvent{Kind: physics.Started, A: a, B: b})
}
