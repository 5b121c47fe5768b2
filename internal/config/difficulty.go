package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
// A preset is applied once before a run starts; speeds stay constant within a run.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// presetScaling describes how a preset scales the base tuning.
type presetScaling struct {
	speed    float64 // Multiplier on obstacle scroll speed
	gap      float64 // Multiplier on the half gap
	interval float64 // Multiplier on the spawn interval
}

var presets = map[DifficultyPreset]presetScaling{
	DifficultyEasy:   {speed: 0.8, gap: 1.2, interval: 1.2},
	DifficultyNormal: {speed: 1.0, gap: 1.0, interval: 1.0},
	DifficultyHard:   {speed: 1.25, gap: 0.85, interval: 0.85},
}

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(s)
	if _, ok := presets[p]; !ok {
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
	return p, nil
}

// ApplyPreset modifies the config based on a difficulty preset.
// Unknown presets leave the config untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	s, ok := presets[preset]
	if !ok {
		return
	}
	cfg.Obstacles.ScrollSpeed *= s.speed
	cfg.Obstacles.HalfGap *= s.gap
	cfg.Obstacles.SpawnInterval *= s.interval
}
