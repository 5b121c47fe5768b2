package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blappy/internal/config"
	"github.com/vovakirdan/blappy/internal/platform/tui"
	"github.com/vovakirdan/blappy/internal/storage"
)

var (
	flagDifficulty string
	flagWatch      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the game in the current terminal.

Controls:
  Space/Up/W/Enter/click  - Flap (also starts a run and leaves game over)
  Esc/Q/Ctrl+C            - Quit

Difficulty options:
  easy   - Slower scrolling, wider gaps, more time between barriers
  normal - Base tuning
  hard   - Faster scrolling, narrower gaps, less time between barriers

With --watch, edits to the config file are picked up while playing and
take effect from the next run.

Examples:
  blappy play
  blappy play --difficulty hard
  blappy play --config ./blappy.yaml --watch
  blappy play --seed 42 --log-file blappy.log --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")
}

func runPlay(_ *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("play needs a terminal; use 'blappy simulate' for headless runs")
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && (w < 20 || h < 10) {
		return fmt.Errorf("terminal is %dx%d, need at least 20x10", w, h)
	}

	logger, closeLog, err := newLogger("blappy", nil)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, preset, err := loadConfig(flagDifficulty)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Config:   cfg,
		Preset:   preset,
		Seed:     flagSeed,
		TickRate: flagFPS,
		Logger:   logger,
	}

	if flagWatch {
		path, err := watchTarget()
		if err != nil {
			return err
		}
		w, err := config.Watch(path)
		if err != nil {
			return err
		}
		defer w.Close()
		opts.Watcher = w
		logger.Info("watching config", "path", w.Path())
	}

	if flagJournal != "" {
		store, err := storage.Open(flagJournal)
		if err != nil {
			// The game still works without a journal.
			fmt.Fprintf(os.Stderr, "Warning: could not open run journal: %v\n", err)
		} else {
			defer store.Close()
			opts.Recorder = storage.NewRecorder(store, string(preset), logger)
		}
	}

	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
