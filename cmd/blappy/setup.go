package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blappy/internal/config"
)

// newLogger creates the command logger. Without --log-file, logs go to
// fallback; a nil fallback discards them.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}
	if w == nil {
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadConfig loads tuning and applies a difficulty preset.
func loadConfig(difficulty string) (config.Config, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return config.Config{}, "", err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, "", err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, preset, nil
}

// watchTarget returns the file --watch should follow: --config when given,
// otherwise the first config file on the search path that exists.
func watchTarget() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}
	for _, p := range []string{config.UserConfigPath(), config.LocalPath} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("--watch needs a config file: pass --config or create %s", config.UserConfigPath())
}

// seed returns --seed, or a time-based seed when it is 0.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
