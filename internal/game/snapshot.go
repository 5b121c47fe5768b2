package game

import (
	"fmt"

	"github.com/vovakirdan/blappy/internal/core"
	"github.com/vovakirdan/blappy/internal/entity"
	"github.com/vovakirdan/blappy/internal/state"
)

// MenuPromptText is shown while the menu waits for an activation edge.
const MenuPromptText = "Flap to start"

func (e *Engine) spawnMenuPrompt() {
	p := e.store.Spawn(entity.KindMenuPrompt, state.Menu)
	p.Text = MenuPromptText
}

func (e *Engine) spawnScoreDisplay() {
	d := e.store.Spawn(entity.KindScoreDisplay, state.InGame)
	d.Text = scoreText(0)
}

func scoreText(v uint64) string {
	return fmt.Sprintf("Score: %d", v)
}

// updateScoreDisplay mirrors the counter into the display entity.
func (e *Engine) updateScoreDisplay() {
	d, ok := e.single(entity.KindScoreDisplay)
	if !ok {
		return
	}
	d.Text = scoreText(e.score.Value())
}

// ObstacleView is the renderable state of one obstacle.
type ObstacleView struct {
	Seq       int
	Pos       core.Vec2 // Gap center
	HalfWidth float64
	HalfGap   float64
	Scored    bool
}

// Snapshot is a read-only view of one frame for renderers.
type Snapshot struct {
	Frame     uint64
	Phase     state.Phase
	Score     uint64
	Bounds    core.Size
	HasBounds bool

	HasPlayer    bool
	PlayerPos    core.Vec2
	PlayerVel    core.Vec2
	PlayerRadius float64

	Obstacles []ObstacleView

	ScoreText  string
	PromptText string
}

// Snapshot captures the current state without changing it.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Frame:        e.frame,
		Phase:        e.machine.Current(),
		Score:        e.score.Value(),
		PlayerRadius: e.cfg.Player.Radius,
	}
	s.Bounds, s.HasBounds = e.env.Bounds()

	if p, err := e.store.Single(entity.KindPlayer); err == nil {
		s.PlayerPos, s.HasPlayer = e.phys.Position(p.Body)
		s.PlayerVel, _ = e.phys.Velocity(p.Body)
	}

	oc := e.cfg.Obstacles
	for _, o := range e.store.Query(entity.KindObstacle) {
		pos, ok := e.phys.Position(o.Body)
		if !ok {
			continue
		}
		s.Obstacles = append(s.Obstacles, ObstacleView{
			Seq:       o.Seq,
			Pos:       pos,
			HalfWidth: oc.HalfWidth,
			HalfGap:   oc.HalfGap,
			Scored:    o.Scored,
		})
	}

	if d, err := e.store.Single(entity.KindScoreDisplay); err == nil {
		s.ScoreText = d.Text
	}
	if p, err := e.store.Single(entity.KindMenuPrompt); err == nil {
		s.PromptText = p.Text
	}
	return s
}
