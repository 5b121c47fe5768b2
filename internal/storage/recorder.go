package storage

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blappy/internal/config"
	"github.com/vovakirdan/blappy/internal/game"
	"github.com/vovakirdan/blappy/internal/state"
)

// Journal is the subset of Store the Recorder writes to.
type Journal interface {
	BeginRun(rs RunStart) (string, error)
	RecordObstacle(runID string, seq int, gapY float64) error
	FinishRun(runID string, o Outcome) error
}

// RunSource reports the seed and tuning of the current run. *game.Engine implements it.
type RunSource interface {
	Seed() int64
	Config() config.Config
}

// Recorder turns engine signals into journal rows.
type Recorder struct {
	journal    Journal
	difficulty string
	logger     *log.Logger

	runID      string
	startFrame uint64
	spawned    int
	passed     int
	reason     string
}

// NewRecorder creates a recorder. A nil logger discards output.
func NewRecorder(j Journal, difficulty string, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{journal: j, difficulty: difficulty, logger: logger}
}

// RunID returns the journal ID of the run in progress, or empty.
func (r *Recorder) RunID() string {
	return r.runID
}

// Observe records what one frame produced. src is read after the frame, when
// a run started in it already has its seed and tuning.
func (r *Recorder) Observe(src RunSource, res game.StepResult) error {
	for _, sig := range res.Signals {
		if err := r.observe(src, res.Frame, sig); err != nil {
			return err
		}
	}
	return nil
}

func (r *Recorder) observe(src RunSource, frame uint64, sig game.Signal) error {
	switch s := sig.(type) {
	case game.PhaseChanged:
		switch {
		case s.To.Game == state.InGame && s.From.Game != state.InGame:
			return r.begin(src, frame)
		case s.To.Run == state.GameOver:
			return r.finish(frame)
		}
	case game.ObstacleSpawned:
		if r.runID == "" {
			return nil
		}
		r.spawned++
		return r.journal.RecordObstacle(r.runID, s.Seq, s.GapY)
	case game.ObstaclePassed:
		r.passed++
	case game.PlayerCollided:
		r.reason = fmt.Sprintf("%s: %s", EndCollision, s.With)
	}
	return nil
}

func (r *Recorder) begin(src RunSource, frame uint64) error {
	if r.runID != "" {
		// A run that never reached game over, e.g. after a host restart.
		if err := r.finish(frame); err != nil {
			return err
		}
	}
	oc := src.Config().Obstacles
	id, err := r.journal.BeginRun(RunStart{
		Seed:       src.Seed(),
		Difficulty: r.difficulty,
		MinHeight:  oc.MinHeight,
		MaxHeight:  oc.MaxHeight,
	})
	if err != nil {
		return err
	}
	r.runID = id
	r.startFrame = frame
	r.spawned = 0
	r.passed = 0
	r.reason = ""
	r.logger.Debug("run journaled", "id", id, "seed", src.Seed())
	return nil
}

func (r *Recorder) finish(frame uint64) error {
	if r.runID == "" {
		return nil
	}
	reason := r.reason
	if reason == "" {
		reason = EndCollision
	}
	err := r.journal.FinishRun(r.runID, Outcome{
		Frames:    int64(frame - r.startFrame),
		Spawned:   r.spawned,
		Passed:    r.passed,
		EndReason: reason,
	})
	r.logger.Debug("run closed", "id", r.runID, "reason", reason, "passed", r.passed)
	r.runID = ""
	return err
}

// Abandon closes a run in progress as quit. It is a no-op between runs.
func (r *Recorder) Abandon(frame uint64) error {
	if r.runID == "" {
		return nil
	}
	r.reason = EndQuit
	return r.finish(frame)
}
