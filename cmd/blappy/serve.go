package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blappy/internal/platform/tui"
)

var (
	flagSSHAddr         string
	flagHostKey         string
	flagIdleTimeout     int
	flagServeDifficulty string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the blappy SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection plays its own independent game with a fresh seed.
Runs from every session are written to the shared journal.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.blappy/host_key

Examples:
  blappy serve                           # Listen on :23234 with auto-generated key
  blappy serve --ssh :2222               # Listen on port 2222
  blappy serve --host-key ./my_host_key  # Use specific host key
  blappy serve --journal ./runs.db       # Use specific journal

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeDifficulty, "difficulty", "", "Difficulty preset for every session")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger("blappy-ssh", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	game, preset, err := loadConfig(flagServeDifficulty)
	if err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.JournalPath = flagJournal
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Game = game
	cfg.Preset = preset
	cfg.TickRate = flagFPS

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting blappy SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
