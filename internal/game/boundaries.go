package game

import (
	"github.com/vovakirdan/blappy/internal/core"
	"github.com/vovakirdan/blappy/internal/entity"
	"github.com/vovakirdan/blappy/internal/physics"
	"github.com/vovakirdan/blappy/internal/state"
)

// syncBoundaries keeps a floor and a ceiling spanning the play area,
// rebuilding both whenever the bounds change.
func (e *Engine) syncBoundaries() {
	bounds, ok := e.bounds()
	if !ok || bounds == e.builtBounds {
		return
	}
	for _, b := range e.store.Query(entity.KindBoundary) {
		e.store.Despawn(b.ID)
	}

	t := e.cfg.Boundaries.Thickness
	half := core.Size{W: bounds.HalfW(), H: t / 2}
	for _, y := range []float64{-t / 2, bounds.H + t/2} {
		b := e.store.Spawn(entity.KindBoundary, state.InGame)
		b.Body = e.phys.CreateBody(physics.BodyDef{
			Kind:     physics.Fixed,
			Position: core.V(0, y),
			Owner:    physics.Key(b.ID),
			Colliders: []physics.Collider{
				{Shape: physics.Cuboid, HalfExtent: half},
			},
		})
		b.HasBody = true
	}
	e.builtBounds = bounds
	e.log.Debug("boundaries rebuilt", "width", bounds.W, "height", bounds.H, "frame", e.frame)
}
