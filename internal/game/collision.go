package game

import (
	"github.com/vovakirdan/blappy/internal/entity"
	"github.com/vovakirdan/blappy/internal/physics"
	"github.com/vovakirdan/blappy/internal/state"
)

// detectCollisions ends the run on the first contact involving the player.
// Every event is drained; once GameOver is pending the rest are ignored.
func (e *Engine) detectCollisions() {
	events := e.phys.DrainCollisions()
	player, ok := e.single(entity.KindPlayer)
	if !ok {
		return
	}
	key := physics.Key(player.ID)

	for _, ev := range events {
		if ev.Kind != physics.Started || !ev.Involves(key) {
			continue
		}
		if _, pending := e.machine.RunPending(); pending {
			continue
		}

		with := entity.Kind(-1)
		if other, ok := e.store.Get(entity.ID(ev.Other(key))); ok {
			with = other.Kind
		}
		if err := e.machine.RequestRun(state.GameOver); err != nil {
			e.log.Debug("transition refused", "error", err, "frame", e.frame)
			continue
		}
		e.log.Debug("player collided", "with", with, "frame", e.frame)
		e.emit(PlayerCollided{With: with})
	}
}
