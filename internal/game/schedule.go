package game

import "github.com/vovakirdan/blappy/internal/state"

// pass is one (phase, concern) pair in the frame schedule.
type pass struct {
	name string
	when func(*Engine) bool
	run  func(*Engine)
}

// schedule is the fixed per-frame order. A pass runs only when its condition
// holds at the moment it is reached, so a transition requested earlier in the
// frame stops the remaining gameplay passes. Scoring runs before the cull
// sweep so an obstacle that crosses the player and the left edge in one
// frame is still scored.
var schedule = []pass{
	{"await-assets", inPhase(state.Loading), (*Engine).awaitAssets},
	{"menu-start", inPhase(state.Menu), (*Engine).menuStart},
	{"sync-boundaries", inPhase(state.InGame), (*Engine).syncBoundaries},
	{"flap", running, (*Engine).flap},
	{"tick-spawner", running, (*Engine).tickSpawner},
	{"physics-step", running, (*Engine).physicsStep},
	{"detect-collisions", running, (*Engine).detectCollisions},
	{"score-obstacles", running, (*Engine).scoreObstacles},
	{"tally-score", running, (*Engine).tallyScore},
	{"cull-obstacles", running, (*Engine).cullObstacles},
	{"update-score-display", inPhase(state.InGame), (*Engine).updateScoreDisplay},
	{"return-to-menu", inRun(state.GameOver), (*Engine).returnToMenu},
}

func inPhase(p state.GamePhase) func(*Engine) bool {
	return func(e *Engine) bool { return e.machine.Is(p) }
}

func inRun(p state.RunPhase) func(*Engine) bool {
	return func(e *Engine) bool { return e.machine.Is(state.InGame) && e.machine.Run() == p }
}

// running holds while the run is live and nothing has asked to end it.
func running(e *Engine) bool {
	if !e.machine.Running() {
		return false
	}
	_, pending := e.machine.RunPending()
	return !pending
}

func (e *Engine) awaitAssets() {
	if !e.assets.Ready() {
		return
	}
	e.request(state.Menu)
}

func (e *Engine) menuStart() {
	if e.input.Activated() {
		e.request(state.InGame)
	}
}

func (e *Engine) returnToMenu() {
	if e.input.Activated() {
		e.request(state.Menu)
	}
}

func (e *Engine) request(p state.GamePhase) {
	if err := e.machine.Request(p); err != nil {
		e.log.Debug("transition refused", "error", err, "frame", e.frame)
	}
}

func (e *Engine) physicsStep() {
	e.phys.Step(e.dt)
}
