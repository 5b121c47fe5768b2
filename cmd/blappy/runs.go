package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blappy/internal/config"
	"github.com/vovakirdan/blappy/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List journaled runs",
	Long: `Display the most recent runs from the journal.

Every run records its seed and the gap height of each spawned barrier, so
a seed can be replayed and checked with 'blappy runs verify <seed>'.

Examples:
  blappy runs
  blappy runs --limit 50
  blappy runs verify 42`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

var runsVerifyCmd = &cobra.Command{
	Use:   "verify <seed>",
	Short: "Replay a seed and compare it to the journal",
	Long: `Regenerate the gap heights for a seed and compare them with every
journaled run of that seed. Use the same --config the runs were played with.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
	runsCmd.AddCommand(runsVerifyCmd)
}

func openJournal() (*storage.Store, error) {
	if flagJournal == "" {
		return nil, fmt.Errorf("no journal configured (--journal)")
	}
	store, err := storage.Open(flagJournal)
	if err != nil {
		return nil, fmt.Errorf("error opening run journal: %w", err)
	}
	return store, nil
}

func runRuns(_ *cobra.Command, _ []string) error {
	store, err := openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'blappy play' to record the first run!")
		return nil
	}

	fmt.Printf("  %-20s  %-10s  %-6s  %-7s  %-6s  %s\n", "Seed", "Difficulty", "Gaps", "Passed", "Frames", "Ended")
	fmt.Printf("  %-20s  %-10s  %-6s  %-7s  %-6s  %s\n", "----", "----------", "----", "------", "------", "-----")
	for _, r := range runs {
		ended := "in progress"
		if r.Finished() {
			ended = r.EndReason
		}
		difficulty := r.Difficulty
		if difficulty == "" {
			difficulty = "-"
		}
		fmt.Printf("  %-20d  %-10s  %-6d  %-7d  %-6d  %s\n",
			r.Seed, difficulty, r.Spawned, r.Passed, r.Frames, ended)
	}
	return nil
}

func runVerify(_ *cobra.Command, args []string) error {
	s, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid seed %q: %w", args[0], err)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	store, err := openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RunsBySeed(s)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Printf("No runs recorded with seed %d.\n", s)
		return nil
	}

	failed := 0
	for _, r := range runs {
		mismatches, err := store.Verify(r, cfg)
		if err != nil {
			return err
		}
		if len(mismatches) == 0 {
			fmt.Printf("  %s  %s  ok (%d gaps)\n", r.ID, r.StartedAt.Format("2006-01-02 15:04"), r.Spawned)
			continue
		}
		failed++
		fmt.Printf("  %s  %s  %d mismatches\n", r.ID, r.StartedAt.Format("2006-01-02 15:04"), len(mismatches))
		for _, m := range mismatches {
			fmt.Printf("    gap %d: recorded %.4f, replayed %.4f\n", m.Seq, m.Recorded, m.Replayed)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d runs did not replay", failed, len(runs))
	}
	return nil
}
