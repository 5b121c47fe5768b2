package storage

import (
	"github.com/vovakirdan/blappy/internal/config"
	"github.com/vovakirdan/blappy/internal/game"
)

// Mismatch is a journaled height that a replay of the seed does not reproduce.
type Mismatch struct {
	Seq      int
	Recorded float64
	Replayed float64
}

// Verify replays the seed of a run and compares every journaled gap height.
// The run's recorded height range is used; cfg supplies it only for runs
// journaled without one.
func (s *Store) Verify(run Run, cfg config.Config) ([]Mismatch, error) {
	obs, err := s.RunObstacles(run.ID)
	if err != nil {
		return nil, err
	}
	if run.MaxHeight > run.MinHeight {
		cfg.Obstacles.MinHeight = run.MinHeight
		cfg.Obstacles.MaxHeight = run.MaxHeight
	}

	replay := game.HeightSequence(run.Seed, cfg, len(obs))
	var out []Mismatch
	for i, o := range obs {
		if o.Seq != i || o.GapY != replay[i] {
			out = append(out, Mismatch{Seq: o.Seq, Recorded: o.GapY, Replayed: replay[i]})
		}
	}
	return out, nil
}
