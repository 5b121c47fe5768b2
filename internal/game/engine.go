// Package game implements the blappy gameplay core: a body that falls under
// gravity, flaps on input, and must pass through a stream of scrolling gaps.
//
// The Engine owns every piece of mutable game state (phase machine, entity
// store, spawn timer, score counter, RNG) and advances it one frame per Step
// by running a fixed schedule of passes filtered by the current phase.
package game

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blappy/internal/config"
	"github.com/vovakirdan/blappy/internal/core"
	"github.com/vovakirdan/blappy/internal/entity"
	"github.com/vovakirdan/blappy/internal/physics"
	"github.com/vovakirdan/blappy/internal/state"
)

// Options configures a new Engine.
type Options struct {
	Config config.Config
	Seed   int64

	// Physics is the rigid-body world. When nil the engine creates and owns
	// a Chipmunk world built from Config.Physics.
	Physics physics.Service

	// Env supplies the play area size. When nil the bounds are never available.
	Env Environment

	// Assets gates Loading -> Menu. When nil assets count as ready.
	Assets Assets

	// Logger receives debug output. When nil logging is discarded.
	Logger *log.Logger
}

// StepResult is what a single frame produced.
type StepResult struct {
	Frame   uint64
	Phase   state.Phase
	Score   uint64
	Signals []Signal
}

// Engine runs the game one frame at a time. It is not safe for concurrent use.
type Engine struct {
	cfg        config.Config
	pendingCfg *config.Config
	seed       int64

	machine *state.Machine
	store   *entity.Store
	phys    physics.Service
	ownsPhy bool
	env     Environment
	assets  Assets
	log     *log.Logger

	rng   *rand.Rand
	timer *SpawnTimer
	score *ScoreCounter

	// Per-frame state.
	dt      float64
	input   core.InputFrame
	signals []Signal
	passed  []int

	frame        uint64
	spawned      int
	firstSpawn   bool
	builtBounds  core.Size
	boundsLogged bool
}

// New creates an engine in the Loading phase.
func New(opts Options) *Engine {
	e := &Engine{
		cfg:     opts.Config,
		seed:    opts.Seed,
		machine: state.New(),
		store:   entity.NewStore(),
		phys:    opts.Physics,
		env:     opts.Env,
		assets:  opts.Assets,
		log:     opts.Logger,
		timer:   NewSpawnTimer(opts.Config.Obstacles.SpawnInterval),
		score:   NewScoreCounter(opts.Config.Score.Reward),
	}
	if e.phys == nil {
		e.phys = newWorld(e.cfg)
		e.ownsPhy = true
	}
	if e.env == nil {
		e.env = FixedBounds{}
	}
	if e.assets == nil {
		e.assets = alwaysReady{}
	}
	if e.log == nil {
		e.log = log.New(io.Discard)
	}
	e.rng = rand.New(rand.NewSource(e.seed))
	e.store.OnDespawn = e.releaseBody
	return e
}

func newWorld(cfg config.Config) *physics.World {
	return physics.NewWorld(physics.Options{
		Gravity:    cfg.Physics.Gravity,
		Iterations: cfg.Physics.Iterations,
	})
}

// Step advances the game by dt seconds with the input collected since the
// previous frame. Pending phase transitions are applied first.
func (e *Engine) Step(dt float64, in core.InputFrame) StepResult {
	e.frame++
	e.dt = dt
	e.input = in
	e.signals = nil

	for _, tr := range e.machine.Apply(e.hooks()) {
		e.log.Debug("phase changed", "from", tr.From, "to", tr.To, "frame", e.frame)
		e.emit(PhaseChanged{From: tr.From, To: tr.To})
	}

	for _, p := range schedule {
		if p.when(e) {
			p.run(e)
		}
	}

	return StepResult{
		Frame:   e.frame,
		Phase:   e.machine.Current(),
		Score:   e.score.Value(),
		Signals: e.signals,
	}
}

func (e *Engine) hooks() state.Hooks {
	return state.Hooks{
		ExitGame:  e.exitGame,
		EnterGame: e.enterGame,
		EnterRun:  e.enterRun,
	}
}

func (e *Engine) exitGame(p state.GamePhase) {
	n := e.store.SweepScope(p)
	e.log.Debug("swept phase entities", "phase", p, "count", n)
}

func (e *Engine) enterGame(p state.GamePhase) {
	switch p {
	case state.Menu:
		e.spawnMenuPrompt()
	case state.InGame:
		e.startRun()
	}
}

func (e *Engine) enterRun(p state.RunPhase) {
	if p == state.GameOver {
		e.log.Debug("run over", "score", e.score.Value(), "obstacles", e.spawned, "frame", e.frame)
	}
}

// startRun resets every piece of per-run state. It runs after the previous
// run's entities were swept.
func (e *Engine) startRun() {
	if e.pendingCfg != nil {
		e.applyConfig(*e.pendingCfg)
		e.pendingCfg = nil
	}

	e.score.Reset()
	e.timer.Reset()
	e.rng.Seed(e.seed)
	e.spawned = 0
	e.passed = nil
	e.firstSpawn = true
	e.builtBounds = core.Size{}
	// Stop events from bodies removed by the sweep.
	e.phys.DrainCollisions()

	e.spawnPlayer()
	e.spawnScoreDisplay()
	e.log.Debug("run started", "seed", e.seed, "frame", e.frame)
}

func (e *Engine) applyConfig(cfg config.Config) {
	if e.ownsPhy && cfg.Physics != e.cfg.Physics {
		e.phys = newWorld(cfg)
	}
	e.cfg = cfg
	e.timer.SetInterval(cfg.Obstacles.SpawnInterval)
	e.score.SetReward(cfg.Score.Reward)
	e.log.Debug("config applied")
}

// Reconfigure schedules cfg for the next run. The current run keeps its tuning.
func (e *Engine) Reconfigure(cfg config.Config) {
	e.pendingCfg = &cfg
}

// SetSeed changes the seed used from the next run on.
func (e *Engine) SetSeed(seed int64) {
	e.seed = seed
}

// Seed returns the seed runs are started with.
func (e *Engine) Seed() int64 { return e.seed }

// Config returns the tuning of the current run.
func (e *Engine) Config() config.Config { return e.cfg }

// Phase returns the current phase.
func (e *Engine) Phase() state.Phase { return e.machine.Current() }

// Score returns the current score.
func (e *Engine) Score() uint64 { return e.score.Value() }

// Frame returns the number of frames stepped so far.
func (e *Engine) Frame() uint64 { return e.frame }

// Entities exposes the entity store for inspection.
func (e *Engine) Entities() *entity.Store { return e.store }

// Physics exposes the physics world the engine drives.
func (e *Engine) Physics() physics.Service { return e.phys }

func (e *Engine) emit(s Signal) {
	e.signals = append(e.signals, s)
}

func (e *Engine) bounds() (core.Size, bool) {
	size, ok := e.env.Bounds()
	if !ok || size.Empty() {
		if !e.boundsLogged {
			e.log.Debug("skipping pass", "error", ErrMissingEnvironment, "frame", e.frame)
			e.boundsLogged = true
		}
		return core.Size{}, false
	}
	e.boundsLogged = false
	return size, true
}

func (e *Engine) releaseBody(ent *entity.Entity) {
	if ent.HasBody {
		e.phys.DestroyBody(ent.Body)
		ent.HasBody = false
	}
}

// single looks up a singleton and logs when the frame has to skip it.
func (e *Engine) single(k entity.Kind) (*entity.Entity, bool) {
	ent, err := e.store.Single(k)
	if err != nil {
		e.log.Debug("skipping pass", "error", err, "frame", e.frame)
		return nil, false
	}
	return ent, true
}
