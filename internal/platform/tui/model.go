package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blappy/internal/config"
	"github.com/vovakirdan/blappy/internal/core"
	"github.com/vovakirdan/blappy/internal/game"
	"github.com/vovakirdan/blappy/internal/state"
	"github.com/vovakirdan/blappy/internal/storage"
)

// ConfigReloadMsg carries a config file that changed on disk.
type ConfigReloadMsg struct {
	Config config.Config
}

// ConfigErrorMsg reports a config file that failed to reload.
type ConfigErrorMsg struct {
	Err error
}

// Options configures a Model.
type Options struct {
	Config   config.Config
	Preset   config.DifficultyPreset
	Seed     int64 // 0 picks a fresh time-based seed for every run
	TickRate int

	Recorder *storage.Recorder // Optional run journal
	Watcher  *config.Watcher   // Optional live config reload
	Logger   *log.Logger
}

// Model is the Bubble Tea model hosting one blappy engine.
// The engine waits in Loading until the first window size arrives.
type Model struct {
	engine   *game.Engine
	bounds   *game.Bounds
	assets   *game.AssetFlag
	input    *core.Normalizer
	keys     *KeyMapper
	help     help.Model
	screen   *core.Screen
	proj     Projection
	world    config.World
	preset   config.DifficultyPreset
	tickRate int
	dt       float64
	newSeed  func() int64 // Nil keeps one seed for every run

	recorder *storage.Recorder
	watcher  *config.Watcher
	logger   *log.Logger
	quitting bool
}

// NewModel creates a model and its engine.
func NewModel(opts Options) Model {
	var newSeed func() int64
	if opts.Seed == 0 {
		newSeed = timeSeed
		opts.Seed = newSeed()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	rc := core.DefaultConfig()
	if opts.TickRate > 0 {
		rc.TickRate = opts.TickRate
	}

	bounds := &game.Bounds{}
	assets := &game.AssetFlag{}
	engine := game.New(game.Options{
		Config: opts.Config,
		Seed:   opts.Seed,
		Env:    bounds,
		Assets: assets,
		Logger: opts.Logger,
	})

	return Model{
		engine:   engine,
		bounds:   bounds,
		assets:   assets,
		input:    core.NewNormalizer(),
		keys:     NewKeyMapper(DefaultKeyMap()),
		help:     help.New(),
		screen:   core.NewScreen(0, 0),
		world:    opts.Config.World,
		preset:   opts.Preset,
		tickRate: rc.TickRate,
		dt:       rc.FrameDelta(),
		newSeed:  newSeed,
		recorder: opts.Recorder,
		watcher:  opts.Watcher,
		logger:   opts.Logger,
	}
}

// Engine returns the hosted engine.
func (m Model) Engine() *game.Engine {
	return m.engine
}

// Init starts the tick loop and the config watch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.tickRate), waitForConfig(m.watcher))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.keys.MapKey(msg, m.input)
		return m, nil

	case tea.MouseMsg:
		m.keys.MapMouse(msg, m.input)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case TickMsg:
		return m.handleTick()

	case ConfigReloadMsg:
		m.handleReload(msg.Config)
		return m, waitForConfig(m.watcher)

	case ConfigErrorMsg:
		m.logger.Warn("config reload failed", "err", msg.Err)
		return m, waitForConfig(m.watcher)
	}

	return m, nil
}

// handleResize updates the projection and the world bounds.
// The first size also completes loading.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.proj = NewProjection(m.world, msg.Width, msg.Height)
	m.screen.Resize(msg.Width, m.proj.PlayRows())
	m.help.Width = msg.Width
	m.bounds.Set(m.proj.Bounds())
	m.assets.MarkReady()
	m.logger.Debug("resized", "cols", msg.Width, "rows", msg.Height, "bounds", m.proj.Bounds())
	return m
}

// handleTick advances the engine by one fixed frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	in := m.input.Frame()
	if in.Has(core.ActionQuit) {
		m.quitting = true
		if m.recorder != nil {
			if err := m.recorder.Abandon(m.engine.Frame()); err != nil {
				m.logger.Warn("journal write failed", "err", err)
			}
		}
		return m, tea.Quit
	}

	m.afterStep(m.engine.Step(m.dt, in))
	return m, tickCmd(m.tickRate)
}

// afterStep journals a frame and picks the next run's seed once a run
// returns to the menu.
func (m Model) afterStep(res game.StepResult) {
	if m.recorder != nil {
		if err := m.recorder.Observe(m.engine, res); err != nil {
			m.logger.Warn("journal write failed", "err", err)
		}
	}
	for _, sig := range res.Signals {
		m.logger.Debug(sig.String(), "frame", res.Frame)
		pc, ok := sig.(game.PhaseChanged)
		if !ok || m.newSeed == nil {
			continue
		}
		if pc.From.Game == state.InGame && pc.To.Game == state.Menu {
			m.engine.SetSeed(m.newSeed())
			m.logger.Debug("next run reseeded", "seed", m.engine.Seed())
		}
	}
}

func timeSeed() int64 {
	return time.Now().UnixNano()
}

// handleReload queues a changed config for the next run.
func (m Model) handleReload(cfg config.Config) {
	config.ApplyPreset(&cfg, m.preset)
	if err := cfg.Validate(); err != nil {
		m.logger.Warn("ignoring reloaded config", "err", err)
		return
	}
	m.engine.Reconfigure(cfg)
	m.logger.Info("config reloaded, applies from the next run")
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.engine.Snapshot()
	DrawSnapshot(m.screen, m.proj, snap)
	return RenderScreen(m.screen) + "\n" + HUDLine(snap, m.help.View(m.keys.Keys()), m.proj.Cols)
}

// waitForConfig delivers the next watcher result. A nil watcher never reports.
func waitForConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case cfg, ok := <-w.Updates:
			if !ok {
				return nil
			}
			return ConfigReloadMsg{Config: cfg}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return ConfigErrorMsg{Err: err}
		}
	}
}

// Run starts the Bubble Tea program with a new model.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Primary button flaps
	)

	_, err := p.Run()
	return err
}
