package rooftops

import (
	"fmt"
	"math"

	"github.com/vovakirdan/rooftops/internal/core"
	"github.com/vovakirdan/rooftops/internal/sim"
)

// Visual characters for rendering
const (
	BuildingChar = '▒'
	RoofChar     = '▀'
	ActorChar    = '█'
)

// projection maps world coordinates (origin at center, y up) onto screen
// cells (origin top-left, y down).
type projection struct {
	halfW, halfH float64
	cols, rows   int
}

func newProjection(view sim.Box, cols, rows int) projection {
	return projection{halfW: view.HalfW, halfH: view.HalfH, cols: cols, rows: rows}
}

func (p projection) col(x float64) int {
	return int(math.Floor((x + p.halfW) * float64(p.cols) / (2 * p.halfW)))
}

func (p projection) row(y float64) int {
	return int(math.Floor((p.halfH - y) * float64(p.rows) / (2 * p.halfH)))
}

// rect returns the screen cells covered by b. Anything visible is at least
// one cell in each direction.
func (p projection) rect(b sim.Box) core.Rect {
	x0, x1 := p.col(b.Left()), p.col(b.Right())
	y0, y1 := p.row(b.Top()), p.row(b.Bottom())
	return core.NewRect(x0, y0, core.Max(x1-x0, 1), core.Max(y1-y0, 1))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	p := newProjection(g.world.Bounds(), dst.Width(), dst.Height())

	for _, o := range g.world.Obstacles() {
		r := p.rect(o)
		dst.DrawRect(r, BuildingChar, core.ColorDarkGray)
		dst.DrawHLine(r.X, r.Y, r.W, RoofChar, core.ColorGray)
	}

	a := g.world.Actor()
	color := core.ColorBrightCyan
	if a.OnFloor {
		color = core.ColorCyan
	}
	dst.DrawRect(p.rect(a.Box), ActorChar, color)

	g.drawHUD(dst, a)

	switch g.world.State() {
	case sim.StatePaused:
		g.drawCenteredMessage(dst, "CRASHED", "SPACE to try again  |  Q to quit")
	case sim.StateEnded:
		g.drawCenteredMessage(dst, "GAME OVER", "R to restart  |  Q to quit")
	}
}

func (g *Game) drawHUD(dst *core.Screen, a sim.Actor) {
	dst.DrawTextColored(1, 0, " "+g.title+" ", core.ColorBrightWhite)

	info := fmt.Sprintf(" v=%6.1f %s ", a.Velocity, g.world.State())
	dst.DrawTextColored(core.Clamp(dst.Width()-len(info)-1, 0, dst.Width()), 0, info, core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightRed)
	dst.DrawTextCentered(boxY+3, subtitle)
}
