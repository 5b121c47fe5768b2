// Package state holds the two-level phase machine that gates every gameplay pass.
//
// The outer phase is Loading, Menu or InGame. While InGame an inner run phase
// is either Running or GameOver. Transition requests never take effect
// mid-frame: they are recorded and applied by Apply at the next frame boundary,
// where exit hooks always run before enter hooks.
package state

import (
	"errors"
	"fmt"
)

// GamePhase is the outer application phase.
type GamePhase int

const (
	Loading GamePhase = iota
	Menu
	InGame
)

func (p GamePhase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Menu:
		return "menu"
	case InGame:
		return "in-game"
	default:
		return fmt.Sprintf("GamePhase(%d)", int(p))
	}
}

// RunPhase is the inner phase, meaningful only while InGame.
type RunPhase int

const (
	RunNone RunPhase = iota
	Running
	GameOver
)

func (p RunPhase) String() string {
	switch p {
	case RunNone:
		return "none"
	case Running:
		return "running"
	case GameOver:
		return "game-over"
	default:
		return fmt.Sprintf("RunPhase(%d)", int(p))
	}
}

// Phase is the combined position of both levels.
type Phase struct {
	Game GamePhase
	Run  RunPhase
}

func (p Phase) String() string {
	if p.Game != InGame {
		return p.Game.String()
	}
	return p.Game.String() + "/" + p.Run.String()
}

// Transition records one applied phase change.
type Transition struct {
	From Phase
	To   Phase
}

// ErrInvalidTransition is returned for requests that are not on the edge table.
var ErrInvalidTransition = errors.New("invalid phase transition")

// Hooks are invoked by Apply. Any hook may be nil.
type Hooks struct {
	ExitGame  func(GamePhase)
	EnterGame func(GamePhase)
	ExitRun   func(RunPhase)
	EnterRun  func(RunPhase)
}

// Machine tracks the current phases and at most one pending request per level.
type Machine struct {
	game GamePhase
	run  RunPhase

	nextGame *GamePhase
	nextRun  *RunPhase
}

// New returns a machine in the Loading phase.
func New() *Machine {
	return &Machine{game: Loading, run: RunNone}
}

// Game returns the current outer phase.
func (m *Machine) Game() GamePhase { return m.game }

// Run returns the current inner phase (RunNone outside InGame).
func (m *Machine) Run() RunPhase { return m.run }

// Current returns both levels.
func (m *Machine) Current() Phase { return Phase{Game: m.game, Run: m.run} }

// Is reports whether the machine is in the given outer phase.
func (m *Machine) Is(p GamePhase) bool { return m.game == p }

// Running reports whether gameplay passes should execute this frame.
func (m *Machine) Running() bool { return m.game == InGame && m.run == Running }

// Request schedules an outer phase change for the next frame boundary.
// Requesting the current phase is a no-op.
func (m *Machine) Request(to GamePhase) error {
	if to == m.game {
		return nil
	}
	ok := false
	switch {
	case m.game == Loading && to == Menu:
		ok = true
	case m.game == Menu && to == InGame:
		ok = true
	case m.game == InGame && to == Menu:
		// Leaving a run is only possible once it has ended.
		ok = m.run == GameOver
	}
	if !ok {
		return fmt.Errorf("state: %s -> %s: %w", m.Current(), to, ErrInvalidTransition)
	}
	m.nextGame = &to
	return nil
}

// RequestRun schedules an inner phase change for the next frame boundary.
func (m *Machine) RequestRun(to RunPhase) error {
	if m.game != InGame {
		return fmt.Errorf("state: run %s requested in %s: %w", to, m.game, ErrInvalidTransition)
	}
	if to == m.run {
		return nil
	}
	if m.run != Running || to != GameOver {
		return fmt.Errorf("state: %s -> %s: %w", m.Current(), to, ErrInvalidTransition)
	}
	m.nextRun = &to
	return nil
}

// Pending returns the requested outer phase, if any.
func (m *Machine) Pending() (GamePhase, bool) {
	if m.nextGame == nil {
		return m.game, false
	}
	return *m.nextGame, true
}

// RunPending returns the requested inner phase, if any.
func (m *Machine) RunPending() (RunPhase, bool) {
	if m.nextRun == nil {
		return m.run, false
	}
	return *m.nextRun, true
}

// Apply performs pending requests. For an outer change the run phase is
// exited first, then the outer phase; entering InGame always starts at
// Running. It returns the transitions in the order they happened.
func (m *Machine) Apply(h Hooks) []Transition {
	var out []Transition

	if m.nextGame != nil {
		to := *m.nextGame
		m.nextGame = nil
		m.nextRun = nil

		from := m.Current()
		if m.run != RunNone && h.ExitRun != nil {
			h.ExitRun(m.run)
		}
		if h.ExitGame != nil {
			h.ExitGame(m.game)
		}

		m.game = to
		m.run = RunNone
		if to == InGame {
			m.run = Running
		}

		if h.EnterGame != nil {
			h.EnterGame(m.game)
		}
		if m.run != RunNone && h.EnterRun != nil {
			h.EnterRun(m.run)
		}
		out = append(out, Transition{From: from, To: m.Current()})
	}

	if m.nextRun != nil {
		to := *m.nextRun
		m.nextRun = nil

		from := m.Current()
		if h.ExitRun != nil {
			h.ExitRun(m.run)
		}
		m.run = to
		if h.EnterRun != nil {
			h.EnterRun(m.run)
		}
		out = append(out, Transition{From: from, To: m.Current()})
	}

	return out
}
