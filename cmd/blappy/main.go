// blappy is a one-button flying game for the terminal.
//
// Usage:
//
//	blappy play              - Play in this terminal
//	blappy serve             - Start SSH server for remote play
//	blappy simulate          - Run the game headless and print what happened
//	blappy runs              - List journaled runs
//	blappy runs verify <seed> - Replay a seed and compare it to the journal
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--config <path>    - Load tuning from a YAML file
//	--journal <path>   - Set run journal path (default: ~/.blappy/runs.db)
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagJournal  string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blappy",
	Short: "Blappy - flap through the gaps in your terminal",
	Long: `Blappy is a one-button game: flap to stay airborne and fly through the
gaps between barriers. Every gap passed scores points; touching a barrier,
the floor or the ceiling ends the run.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  simulate  - Run headless and print spawned gaps and the outcome
  runs      - Inspect the run journal

Examples:
  blappy play
  blappy play --difficulty hard --watch
  blappy serve --ssh :2222
  blappy simulate --seed 42 --flap-every 20
  blappy runs verify 42`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = a fresh time-based seed for every run)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagJournal, "journal", "~/.blappy/runs.db", "Path to run journal (empty disables it)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(runsCmd)
}
