package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blappy/internal/core"
	"github.com/vovakirdan/blappy/internal/game"
	"github.com/vovakirdan/blappy/internal/state"
	"github.com/vovakirdan/blappy/internal/storage"
)

var (
	flagSimFrames     int
	flagSimFlapEvery  int
	flagSimAutopilot  bool
	flagSimCols       int
	flagSimRows       int
	flagSimDifficulty string
	flagSimRecord     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the game headless and print what happened",
	Long: `Run one game without a terminal: start a run, flap on a fixed schedule
or with a simple autopilot, and print every spawned gap and the outcome.

The play area matches a terminal of --cols x --rows cells, so a seed
simulated here spawns the same gaps as in 'blappy play' at that size.

Examples:
  blappy simulate --seed 42
  blappy simulate --seed 42 --flap-every 25
  blappy simulate --seed 42 --autopilot --frames 6000 --record`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimFrames, "frames", 3600, "Maximum frames to simulate")
	simulateCmd.Flags().IntVar(&flagSimFlapEvery, "flap-every", 0, "Flap every N frames (0 = never)")
	simulateCmd.Flags().BoolVar(&flagSimAutopilot, "autopilot", false, "Flap toward the next gap instead of on a schedule")
	simulateCmd.Flags().IntVar(&flagSimCols, "cols", 80, "Terminal columns the play area matches")
	simulateCmd.Flags().IntVar(&flagSimRows, "rows", 25, "Terminal rows the play area matches")
	simulateCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	simulateCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Write the run to the journal")
}

func runSimulate(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger("blappy-sim", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, preset, err := loadConfig(flagSimDifficulty)
	if err != nil {
		return err
	}

	// One row is the HUD line in the terminal host.
	size := core.Size{
		W: float64(flagSimCols) * cfg.World.CellWidth,
		H: float64(flagSimRows-1) * cfg.World.CellHeight,
	}
	if size.Empty() {
		return fmt.Errorf("play area %dx%d is empty", flagSimCols, flagSimRows)
	}

	var rec *storage.Recorder
	if flagSimRecord {
		store, err := storage.Open(flagJournal)
		if err != nil {
			return err
		}
		defer store.Close()
		rec = storage.NewRecorder(store, string(preset), logger)
	}

	s := seed()
	e := game.New(game.Options{Config: cfg, Seed: s, Env: game.FixedBounds(size), Logger: logger})
	dt := core.RuntimeConfig{TickRate: flagFPS}.FrameDelta()

	fmt.Printf("Seed %d, play area %.0fx%.0f, difficulty %s\n\n", s, size.W, size.H, preset)
	fmt.Printf("  %-5s  %-8s  %s\n", "Gap", "Height", "Frame")
	fmt.Printf("  %-5s  %-8s  %s\n", "---", "------", "-----")

	var (
		started  bool
		passed   int
		collided string
	)
	for i := 0; i < flagSimFrames; i++ {
		in := core.NewInputFrame()
		snap := e.Snapshot()
		switch {
		case snap.Phase.Game == state.Menu && !started:
			in.Set(core.ActionActivate)
		case snap.Phase.Run == state.Running && shouldFlap(i, snap):
			in.Set(core.ActionActivate)
		}

		res := e.Step(dt, in)
		if rec != nil {
			if err := rec.Observe(e, res); err != nil {
				return err
			}
		}
		for _, sig := range res.Signals {
			switch sg := sig.(type) {
			case game.ObstacleSpawned:
				fmt.Printf("  %-5d  %-8.2f  %d\n", sg.Seq, sg.GapY, res.Frame)
			case game.ObstaclePassed:
				passed++
			case game.PlayerCollided:
				collided = sg.With.String()
			}
		}
		if res.Phase.Game == state.InGame {
			started = true
		}
		if res.Phase.Run == state.GameOver {
			break
		}
	}

	fmt.Println()
	if collided == "" {
		if rec != nil {
			if err := rec.Abandon(e.Frame()); err != nil {
				return err
			}
		}
		fmt.Printf("Still flying after %d frames\n", e.Frame())
	} else {
		fmt.Printf("Hit the %s at frame %d\n", collided, e.Frame())
	}
	fmt.Printf("Passed %d, score %d\n", passed, e.Score())
	if rec != nil {
		fmt.Printf("Journaled with seed %d\n", s)
	}
	return nil
}

// shouldFlap decides whether to flap on frame i.
func shouldFlap(i int, snap game.Snapshot) bool {
	if flagSimAutopilot {
		return autopilot(snap)
	}
	return flagSimFlapEvery > 0 && i%flagSimFlapEvery == 0
}

// autopilot flaps while falling below the center of the next gap.
func autopilot(snap game.Snapshot) bool {
	if !snap.HasPlayer {
		return false
	}
	target := snap.Bounds.H / 2
	for _, o := range snap.Obstacles {
		if o.Pos.X+o.HalfWidth >= snap.PlayerPos.X-snap.PlayerRadius {
			target = o.Pos.Y
			break
		}
	}
	return snap.PlayerPos.Y < target && snap.PlayerVel.Y <= 0
}
