package game

import (
	"math/rand"

	"github.com/vovakirdan/blappy/internal/config"
	"github.com/vovakirdan/blappy/internal/core"
	"github.com/vovakirdan/blappy/internal/entity"
	"github.com/vovakirdan/blappy/internal/physics"
	"github.com/vovakirdan/blappy/internal/state"
)

// drawHeight picks a gap center uniformly from [MinHeight, MaxHeight).
func drawHeight(rng *rand.Rand, oc config.Obstacles) float64 {
	return oc.MinHeight + rng.Float64()*(oc.MaxHeight-oc.MinHeight)
}

// HeightSequence returns the first n gap heights a run started with seed draws.
func HeightSequence(seed int64, cfg config.Config, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = drawHeight(rng, cfg.Obstacles)
	}
	return out
}

// barrierOffset is the distance from the gap center to each barrier center.
func barrierOffset(oc config.Obstacles) float64 {
	return oc.HalfGap + oc.BarrierHalfHeight
}

// tickSpawner spawns the run's first obstacle as soon as bounds are known,
// then one per timer completion.
func (e *Engine) tickSpawner() {
	bounds, ok := e.bounds()
	if !ok {
		return
	}
	if e.firstSpawn {
		e.firstSpawn = false
		e.spawnObstacle(bounds)
		return
	}
	n := e.timer.Tick(e.dt)
	if n == 0 {
		return
	}
	if n > 1 {
		e.log.Debug("spawn timer overran", "completions", n, "dt", e.dt)
	}
	e.spawnObstacle(bounds)
}

// spawnObstacle creates an obstacle at the right edge with two sensor barriers.
func (e *Engine) spawnObstacle(bounds core.Size) {
	oc := e.cfg.Obstacles
	gapY := drawHeight(e.rng, oc)
	x := bounds.HalfW() - oc.HalfWidth

	obstacle := e.store.Spawn(entity.KindObstacle, state.InGame)
	obstacle.GapY = gapY
	obstacle.Seq = e.spawned
	e.spawned++

	off := barrierOffset(oc)
	half := core.Size{W: oc.HalfWidth, H: oc.BarrierHalfHeight}
	var colliders []physics.Collider
	for _, dy := range []float64{off, -off} {
		barrier := e.store.SpawnChild(obstacle, entity.KindBarrier)
		barrier.Offset = core.V(0, dy)
		colliders = append(colliders, physics.Collider{
			Shape:      physics.Cuboid,
			HalfExtent: half,
			Offset:     barrier.Offset,
			Sensor:     true,
			Owner:      physics.Key(barrier.ID),
		})
	}

	obstacle.Body = e.phys.CreateBody(physics.BodyDef{
		Kind:      physics.KinematicVelocity,
		Position:  core.V(x, gapY),
		Velocity:  core.V(-oc.ScrollSpeed, 0),
		Owner:     physics.Key(obstacle.ID),
		Colliders: colliders,
	})
	obstacle.HasBody = true

	e.log.Debug("obstacle spawned", "seq", obstacle.Seq, "gap", gapY, "x", x, "frame", e.frame)
	e.emit(ObstacleSpawned{Seq: obstacle.Seq, GapY: gapY})
}

// cullObstacles removes obstacles that scrolled past the left edge.
func (e *Engine) cullObstacles() {
	bounds, ok := e.bounds()
	if !ok {
		return
	}
	left := -bounds.HalfW() - e.cfg.Obstacles.HalfWidth
	for _, o := range e.store.Query(entity.KindObstacle) {
		pos, ok := e.phys.Position(o.Body)
		if !ok || pos.X >= left {
			continue
		}
		e.log.Debug("obstacle despawned", "seq", o.Seq, "x", pos.X, "frame", e.frame)
		e.store.Despawn(o.ID)
	}
}

// scoreObstacles marks each obstacle once, the first frame it is left of the player.
func (e *Engine) scoreObstacles() {
	pp, ok := e.playerPosition()
	if !ok {
		return
	}
	for _, o := range e.store.Query(entity.KindObstacle) {
		if o.Scored {
			continue
		}
		pos, ok := e.phys.Position(o.Body)
		if !ok || pos.X >= pp.X {
			continue
		}
		o.Scored = true
		e.passed = append(e.passed, o.Seq)
		e.emit(ObstaclePassed{Seq: o.Seq})
	}
}

// tallyScore consumes every pass queued this frame.
func (e *Engine) tallyScore() {
	for range e.passed {
		e.score.Increment()
	}
	e.passed = e.passed[:0]
}
