package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blappy/internal/config"
	"github.com/vovakirdan/blappy/internal/core"
	"github.com/vovakirdan/blappy/internal/game"
	"github.com/vovakirdan/blappy/internal/state"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var (
	hudScoreStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	hudStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

const (
	playerRune  = '●'
	barrierRune = '█'
)

// Projection maps world units onto terminal cells.
// The bottom row of the terminal is kept for the HUD line.
type Projection struct {
	CellW, CellH float64
	Cols, Rows   int
}

// NewProjection creates a projection for a terminal of cols x rows cells.
func NewProjection(w config.World, cols, rows int) Projection {
	return Projection{CellW: w.CellWidth, CellH: w.CellHeight, Cols: cols, Rows: rows}
}

// PlayRows returns the number of rows the world is drawn on.
func (p Projection) PlayRows() int {
	return max(p.Rows-1, 0)
}

// Bounds returns the world size covered by the play rows.
func (p Projection) Bounds() core.Size {
	return core.Size{
		W: float64(p.Cols) * p.CellW,
		H: float64(p.PlayRows()) * p.CellH,
	}
}

// ToCell returns the cell containing a world point. Row 0 is the top.
func (p Projection) ToCell(v core.Vec2) (col, row int) {
	b := p.Bounds()
	col = int(math.Floor((v.X + b.HalfW()) / p.CellW))
	row = p.PlayRows() - 1 - int(math.Floor(v.Y/p.CellH))
	return col, row
}

// rowCenter returns the world y at the middle of a play row.
func (p Projection) rowCenter(row int) float64 {
	return (float64(p.PlayRows()-1-row) + 0.5) * p.CellH
}

// DrawSnapshot draws one frame of the world onto s.
// The screen is expected to be Cols x PlayRows cells.
func DrawSnapshot(s *core.Screen, p Projection, snap game.Snapshot) {
	s.Clear()
	mid := s.Height() / 2

	if snap.Phase.Game == state.Loading || !snap.HasBounds {
		s.DrawTextCentered(mid, "Loading...", core.ColorGray)
		return
	}

	for _, o := range snap.Obstacles {
		drawObstacle(s, p, o)
	}

	if snap.HasPlayer {
		col, row := p.ToCell(snap.PlayerPos)
		s.SetColored(col, row, playerRune, core.ColorYellow)
	}

	switch {
	case snap.Phase.Game == state.Menu:
		s.DrawTextCentered(mid-2, "B L A P P Y", core.ColorCyan)
		s.DrawTextCentered(mid, snap.PromptText, core.ColorBrightYellow)
	case snap.Phase.Run == state.GameOver:
		s.DrawTextCentered(mid-1, "GAME OVER", core.ColorRed)
		s.DrawTextCentered(mid+1, snap.ScoreText, core.ColorBrightWhite)
		s.DrawTextCentered(mid+3, "Flap for menu", core.ColorGray)
	}
}

// drawObstacle fills the columns of an obstacle everywhere outside its gap.
func drawObstacle(s *core.Screen, p Projection, o game.ObstacleView) {
	left, _ := p.ToCell(core.V(o.Pos.X-o.HalfWidth, 0))
	right, _ := p.ToCell(core.V(o.Pos.X+o.HalfWidth, 0))
	c := core.ColorGreen
	if o.Scored {
		c = core.ColorGray
	}
	for row := range p.PlayRows() {
		if math.Abs(p.rowCenter(row)-o.Pos.Y) <= o.HalfGap {
			continue
		}
		for col := left; col <= right; col++ {
			s.SetColored(col, row, barrierRune, c)
		}
	}
}

// HUDLine renders the status line below the play area.
func HUDLine(snap game.Snapshot, helpView string, width int) string {
	left := hudScoreStyle.Render(snap.ScoreText)
	if snap.ScoreText == "" {
		left = hudStyle.Render(snap.Phase.String())
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(helpView)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + helpView
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
