package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridsense/geom"
)

// moveKeys maps keys to movement. Arrows and WASD for cardinals, QEZC for diagonals.
var moveKeys = []struct {
	key int32
	dir geom.Direction
}{
	{rl.KeyUp, geom.Up}, {rl.KeyW, geom.Up},
	{rl.KeyDown, geom.Down}, {rl.KeyS, geom.Down},
	{rl.KeyLeft, geom.Left}, {rl.KeyA, geom.Left},
	{rl.KeyRight, geom.Right}, {rl.KeyD, geom.Right},
	{rl.KeyQ, geom.UpLeft}, {rl.KeyE, geom.UpRight},
	{rl.KeyZ, geom.DownLeft}, {rl.KeyC, geom.DownRight},
}

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.wander = !g.wander
	}
	if rl.IsKeyPressed(rl.KeyF) {
		g.showFOV = !g.showFOV
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.showPanel = !g.showPanel
	}
	if rl.IsKeyPressed(rl.KeyL) {
		lantern := g.scene.Lantern()
		lantern.SetEnabled(!lantern.Enabled())
	}

	g.handleCameraInput()

	for _, mk := range moveKeys {
		if rl.IsKeyPressed(mk.key) {
			g.pending = mk.dir
			return
		}
	}
}

// handleCameraInput processes zoom and pan. Dragging with the right mouse
// button stops following the player; Home resumes it.
func (g *Game) handleCameraInput() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.cam.ZoomBy(0.8)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		if d.X != 0 || d.Y != 0 {
			g.follow = false
			g.cam.Pan(-d.X, -d.Y)
		}
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.cam.Reset()
		g.follow = true
		g.followPlayer()
	}
}
