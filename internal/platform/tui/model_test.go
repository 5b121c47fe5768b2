package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blappy/internal/config"
	"github.com/vovakirdan/blappy/internal/game"
	"github.com/vovakirdan/blappy/internal/state"
	"github.com/vovakirdan/blappy/internal/storage"
)

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func tick(t *testing.T, m Model, n int) Model {
	t.Helper()
	for range n {
		m, _ = update(t, m, TickMsg{})
	}
	return m
}

var spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func TestModelWaitsForWindowSize(t *testing.T) {
	m := NewModel(Options{Config: config.Default(), Seed: 7})
	m = tick(t, m, 5)
	if got := m.Engine().Phase().Game; got != state.Loading {
		t.Fatalf("phase = %s before any window size", got)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 25})
	m = tick(t, m, 2)
	if got := m.Engine().Phase().Game; got != state.Menu {
		t.Fatalf("phase = %s after resize, expected menu", got)
	}
	snap := m.Engine().Snapshot()
	if snap.Bounds.W != 80*config.Default().World.CellWidth {
		t.Errorf("bounds = %+v", snap.Bounds)
	}
}

func TestModelStartsRunOnKey(t *testing.T) {
	m := NewModel(Options{Config: config.Default(), Seed: 7})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 25})
	m = tick(t, m, 2)

	m, _ = update(t, m, spaceKey)
	m = tick(t, m, 2)
	if got := m.Engine().Phase(); got.Game != state.InGame || got.Run != state.Running {
		t.Fatalf("phase = %s, expected a running game", got)
	}
	if m.View() == "" {
		t.Error("View() should render while playing")
	}
}

func TestModelQuitAbandonsRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	rec := storage.NewRecorder(store, "normal", nil)

	m := NewModel(Options{Config: config.Default(), Seed: 7, Recorder: rec})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 25})
	m = tick(t, m, 2)
	m, _ = update(t, m, spaceKey)
	m = tick(t, m, 3)
	id := rec.RunID()
	if id == "" {
		t.Fatal("run should be journaled")
	}

	m, _ = update(t, m, runeKey("q"))
	m, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Fatal("quit tick should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}

	run, err := store.GetRun(id)
	if err != nil {
		t.Fatal(err)
	}
	if run.EndReason != storage.EndQuit {
		t.Errorf("EndReason = %q, expected quit", run.EndReason)
	}
}

func TestModelReloadAppliesNextRun(t *testing.T) {
	m := NewModel(Options{Config: config.Default(), Seed: 7, Preset: config.DifficultyHard})

	cfg := config.Default()
	cfg.Score.Reward = 7
	m, cmd := update(t, m, ConfigReloadMsg{Config: cfg})
	if cmd != nil {
		t.Error("no watcher means no follow-up command")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 25})
	m = tick(t, m, 2)
	m, _ = update(t, m, spaceKey)
	m = tick(t, m, 2)

	got := m.Engine().Config()
	if got.Score.Reward != 7 {
		t.Errorf("reward = %d, expected the reloaded value", got.Score.Reward)
	}
	want := cfg
	config.ApplyPreset(&want, config.DifficultyHard)
	if got.Obstacles.ScrollSpeed != want.Obstacles.ScrollSpeed {
		t.Errorf("scroll speed = %v, expected preset applied (%v)", got.Obstacles.ScrollSpeed, want.Obstacles.ScrollSpeed)
	}
}

func TestModelIgnoresInvalidReload(t *testing.T) {
	m := NewModel(Options{Config: config.Default(), Seed: 7})
	bad := config.Default()
	bad.Player.Radius = 0
	m, _ = update(t, m, ConfigReloadMsg{Config: bad})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 25})
	m = tick(t, m, 2)
	m, _ = update(t, m, spaceKey)
	m = tick(t, m, 2)
	if m.Engine().Config().Player.Radius == 0 {
		t.Error("invalid config should not be applied")
	}
}

func TestModelReseedsEachRun(t *testing.T) {
	backToMenu := game.StepResult{Signals: []game.Signal{
		game.PhaseChanged{
			From: state.Phase{Game: state.InGame, Run: state.GameOver},
			To:   state.Phase{Game: state.Menu},
		},
	}}
	next := func() int64 { return 99 }

	tests := []struct {
		name string
		seed int64
		want int64
	}{
		{"fresh seed per run", 0, 99},
		{"fixed seed kept", 7, 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewModel(Options{Config: config.Default(), Seed: tc.seed})
			if tc.seed == 0 && m.Engine().Seed() == 0 {
				t.Fatal("first run should get a time-based seed")
			}
			if m.newSeed != nil {
				m.newSeed = next
			}

			m.afterStep(game.StepResult{Signals: []game.Signal{
				game.PhaseChanged{
					From: state.Phase{Game: state.Menu},
					To:   state.Phase{Game: state.InGame, Run: state.Running},
				},
			}})
			if tc.seed != 0 && m.Engine().Seed() != tc.seed {
				t.Errorf("seed changed on run start: %d", m.Engine().Seed())
			}

			m.afterStep(backToMenu)
			if got := m.Engine().Seed(); got != tc.want {
				t.Errorf("seed after run = %d, expected %d", got, tc.want)
			}
		})
	}
}
