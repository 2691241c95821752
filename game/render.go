package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/terrain"
)

const hudHeight = 80

// drawWorld draws the cells in view shaded by light, source markers and the player.
func (g *Game) drawWorld() {
	res := g.scene.Resistance()
	light := g.scene.SenseMap()
	fov := g.scene.PlayerFOV()
	zoom := g.cam.Zoom

	rl.BeginScissorMode(0, 0, int32(g.cam.ViewportW), int32(g.cam.ViewportH))
	defer rl.EndScissorMode()

	x0, r0, x1, r1 := g.cam.VisibleCells()
	for row := r0; row < r1; row++ {
		y := g.scene.ScreenRow(row)
		for x := x0; x < x1; x++ {
			visible := !g.showFOV || fov == nil || fov.Visible(x, y)
			c := cellColor(terrain.Classify(res.At(x, y)), light.At(x, y), visible)
			sx, sy := g.cam.CellToScreen(float32(x), float32(row))
			rl.DrawRectangleRec(rl.Rectangle{X: sx, Y: sy, Width: zoom, Height: zoom}, c)
		}
	}

	for _, src := range light.Sources() {
		if !src.Enabled() {
			continue
		}
		marker := rl.Orange
		if src.Subtractive() {
			marker = rl.Purple
		}
		c := g.cellCenter(src.Position())
		rl.DrawCircleLines(int32(c.X), int32(c.Y), zoom/3, marker)
	}

	center := g.cellCenter(g.scene.Player())
	rl.DrawCircleV(center, zoom/2, rl.Yellow)
	if h := g.scene.Heading(); h != geom.None {
		d := h.Delta(g.cfg.Derived.YAxis)
		dy := float32(d.Y)
		if g.cfg.Derived.YAxis == geom.YUp {
			dy = -dy
		}
		tip := rl.Vector2{X: center.X + float32(d.X)*zoom, Y: center.Y + dy*zoom}
		rl.DrawLineV(center, tip, rl.Yellow)
	}
}

func (g *Game) cellCenter(p geom.Point) rl.Vector2 {
	sx, sy := g.cam.CellToScreen(float32(p.X)+0.5, float32(g.scene.ScreenRow(p.Y))+0.5)
	return rl.Vector2{X: sx, Y: sy}
}

// drawHUD draws frame counters and the cell under the mouse below the map.
func (g *Game) drawHUD() {
	y := int32(g.cam.ViewportH) + 6
	s := g.last
	rl.DrawText(fmt.Sprintf("FPS %d  frame %d  sources %d  zoom %.0f", rl.GetFPS(), s.Frame, s.Sources, g.cam.Zoom), 10, y, 18, rl.RayWhite)
	rl.DrawText(fmt.Sprintf("lit %d (mean %.2f, p90 %.2f)  visible %d (lit %d)  +%d / -%d",
		s.LitCells, s.LitMean, s.LitP90, s.Visible, s.VisibleLit, s.NewlySeen, s.NewlyUnseen), 10, y+22, 18, rl.LightGray)

	status := "arrows/WASD/QEZC move  R wander  F fov  L lantern  TAB panel  wheel zoom  HOME recenter  SPACE pause"
	if g.paused {
		status = "PAUSED  " + status
	}
	rl.DrawText(status, 10, y+44, 16, rl.Gray)

	mouse := rl.GetMousePosition()
	if x, row, ok := g.cam.ScreenToCell(mouse.X, mouse.Y); ok {
		rl.DrawText(g.describeCell(x, g.scene.ScreenRow(row)), int32(g.cam.ViewportW)-300, y, 18, rl.SkyBlue)
	}
}

// describeCell summarizes one cell for the hover readout.
func (g *Game) describeCell(x, y int) string {
	res := g.scene.Resistance().At(x, y)
	visible := false
	if fov := g.scene.PlayerFOV(); fov != nil {
		visible = fov.Visible(x, y)
	}
	return fmt.Sprintf("(%d,%d) %s r=%.2f light=%.2f seen=%v",
		x, y, terrain.Classify(res), res, g.scene.SenseMap().At(x, y), visible)
}
