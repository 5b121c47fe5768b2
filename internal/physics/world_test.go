package physics

import (
	"math"
	"testing"

	"github.com/vovakirdan/blappy/internal/core"
)

const dt = 1.0 / 64

func ball(pos core.Vec2, r float64, owner Key) BodyDef {
	return BodyDef{
		Kind:         Dynamic,
		Position:     pos,
		GravityScale: 1,
		LockRotation: true,
		Events:       true,
		Owner:        owner,
		Colliders:    []Collider{{Shape: Ball, Radius: r}},
	}
}

func stepFor(w *World, seconds float64) {
	for t := 0.0; t < seconds; t += dt {
		w.Step(dt)
	}
}

func TestDynamicBodyFalls(t *testing.T) {
	w := NewWorld(Options{Gravity: -100, Iterations: 10})
	id := w.CreateBody(ball(core.V(0, 500), 5, 1))

	stepFor(w, 1)

	p, ok := w.Position(id)
	if !ok {
		t.Fatal("body should exist")
	}
	if p.Y >= 500 {
		t.Errorf("y = %v, body should have fallen", p.Y)
	}
	v, _ := w.Velocity(id)
	if v.Y >= 0 {
		t.Errorf("vy = %v, expected negative", v.Y)
	}
	if p.X != 0 {
		t.Errorf("x drifted to %v", p.X)
	}
}

func TestGravityScale(t *testing.T) {
	w := NewWorld(Options{Gravity: -100, Iterations: 10})
	normal := w.CreateBody(ball(core.V(-100, 500), 5, 1))
	heavyDef := ball(core.V(100, 500), 5, 2)
	heavyDef.GravityScale = 2
	heavy := w.CreateBody(heavyDef)

	stepFor(w, 1)

	vn, _ := w.Velocity(normal)
	vh, _ := w.Velocity(heavy)
	if math.Abs(vh.Y-2*vn.Y) > 1e-6 {
		t.Errorf("scaled vy = %v, expected twice %v", vh.Y, vn.Y)
	}
}

func TestKinematicIgnoresGravity(t *testing.T) {
	w := NewWorld(Options{Gravity: -100, Iterations: 10})
	id := w.CreateBody(BodyDef{
		Kind:     KinematicVelocity,
		Position: core.V(0, 200),
		Velocity: core.V(-50, 0),
		Colliders: []Collider{{
			Shape:      Cuboid,
			HalfExtent: core.Size{W: 10, H: 10},
			Sensor:     true,
		}},
	})

	stepFor(w, 1)

	p, _ := w.Position(id)
	if math.Abs(p.X+50) > 1e-6 {
		t.Errorf("x = %v, expected -50", p.X)
	}
	if p.Y != 200 {
		t.Errorf("y = %v, kinematic body must not fall", p.Y)
	}
}

func TestSetVelocity(t *testing.T) {
	w := NewWorld(Options{Gravity: 0, Iterations: 10})
	id := w.CreateBody(ball(core.V(0, 0), 5, 1))

	if !w.SetVelocity(id, core.V(0, 600)) {
		t.Fatal("SetVelocity on a dynamic body should succeed")
	}
	v, _ := w.Velocity(id)
	if v.Y != 600 {
		t.Errorf("vy = %v, expected 600", v.Y)
	}

	floor := w.CreateBody(BodyDef{
		Kind:      Fixed,
		Colliders: []Collider{{Shape: Cuboid, HalfExtent: core.Size{W: 100, H: 5}}},
	})
	if w.SetVelocity(floor, core.V(1, 1)) {
		t.Error("fixed bodies must refuse velocity changes")
	}
	if w.SetVelocity(BodyID(999), core.V(1, 1)) {
		t.Error("unknown body must refuse velocity changes")
	}
}

func TestCollisionWithFixedBody(t *testing.T) {
	w := NewWorld(Options{Gravity: -500, Iterations: 10})
	w.CreateBody(ball(core.V(0, 50), 5, 7))
	w.CreateBody(BodyDef{
		Kind:      Fixed,
		Position:  core.V(0, -5),
		Owner:     9,
		Colliders: []Collider{{Shape: Cuboid, HalfExtent: core.Size{W: 200, H: 5}}},
	})

	var started []CollisionEvent
	for i := 0; i < 200 && len(started) == 0; i++ {
		w.Step(dt)
		for _, ev := range w.DrainCollisions() {
			if ev.Kind == Started {
				started = append(started, ev)
			}
		}
	}

	if len(started) == 0 {
		t.Fatal("expected a collision start with the floor")
	}
	ev := started[0]
	if !ev.Involves(7) || ev.Other(7) != 9 {
		t.Errorf("event = %+v, expected keys 7 and 9", ev)
	}
}

func TestSensorOverlapReportsWithoutPushback(t *testing.T) {
	w := NewWorld(Options{Gravity: 0, Iterations: 10})
	player := w.CreateBody(ball(core.V(0, 100), 5, 1))
	w.CreateBody(BodyDef{
		Kind:     KinematicVelocity,
		Position: core.V(60, 100),
		Velocity: core.V(-200, 0),
		Owner:    2,
		Colliders: []Collider{
			{Shape: Cuboid, HalfExtent: core.Size{W: 10, H: 10}, Sensor: true, Owner: 3},
		},
	})

	var got []CollisionEvent
	for i := 0; i < 64; i++ {
		w.Step(dt)
		got = append(got, w.DrainCollisions()...)
	}

	if len(got) == 0 || got[0].Kind != Started {
		t.Fatalf("expected a start event first, got %v", got)
	}
	if got[0].Other(1) != 3 {
		t.Errorf("collider owner should override body owner, got %d", got[0].Other(1))
	}
	p, _ := w.Position(player)
	if p != core.V(0, 100) {
		t.Errorf("sensor pushed the player to %v", p)
	}
}

func TestDestroyBody(t *testing.T) {
	w := NewWorld(Options{Gravity: -100, Iterations: 10})
	a := w.CreateBody(ball(core.V(0, 0), 5, 1))
	b := w.CreateBody(BodyDef{
		Kind:      Fixed,
		Position:  core.V(0, -100),
		Colliders: []Collider{{Shape: Cuboid, HalfExtent: core.Size{W: 10, H: 10}}},
	})
	if w.BodyCount() != 2 {
		t.Fatalf("BodyCount = %d, expected 2", w.BodyCount())
	}

	w.DestroyBody(a)
	w.DestroyBody(b)
	w.DestroyBody(a)

	if w.BodyCount() != 0 {
		t.Errorf("BodyCount = %d, expected 0", w.BodyCount())
	}
	if _, ok := w.Position(a); ok {
		t.Error("destroyed body should not report a position")
	}
	w.Step(dt)
}

func TestStepIgnoresNonPositiveDelta(t *testing.T) {
	w := NewWorld(Options{Gravity: -100, Iterations: 10})
	id := w.CreateBody(ball(core.V(0, 10), 5, 1))
	w.Step(0)
	w.Step(-1)
	if p, _ := w.Position(id); p.Y != 10 {
		t.Errorf("y = %v after zero steps", p.Y)
	}
}
