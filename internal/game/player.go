package game

import (
	"github.com/vovakirdan/blappy/internal/core"
	"github.com/vovakirdan/blappy/internal/entity"
	"github.com/vovakirdan/blappy/internal/physics"
	"github.com/vovakirdan/blappy/internal/state"
)

// spawnPlayer creates the controlled body at rest.
func (e *Engine) spawnPlayer() {
	pc := e.cfg.Player
	player := e.store.Spawn(entity.KindPlayer, state.InGame)
	player.Body = e.phys.CreateBody(physics.BodyDef{
		Kind:         physics.Dynamic,
		Position:     core.V(pc.X, pc.SpawnY),
		GravityScale: pc.GravityScale,
		LockRotation: true,
		Events:       true,
		Owner:        physics.Key(player.ID),
		Colliders: []physics.Collider{
			{Shape: physics.Ball, Radius: pc.Radius},
		},
	})
	player.HasBody = true
}

// flap sets the jump speed on an activation edge, unless the body is already
// rising faster than half of it.
func (e *Engine) flap() {
	if !e.input.Activated() {
		return
	}
	player, ok := e.single(entity.KindPlayer)
	if !ok {
		return
	}
	v, ok := e.phys.Velocity(player.Body)
	if !ok {
		return
	}
	jump := e.cfg.Player.JumpSpeed
	if v.Y > jump/2 {
		return
	}
	e.phys.SetVelocity(player.Body, core.V(v.X, jump))
}

func (e *Engine) playerPosition() (core.Vec2, bool) {
	player, ok := e.single(entity.KindPlayer)
	if !ok {
		return core.Vec2{}, false
	}
	return e.phys.Position(player.Body)
}
