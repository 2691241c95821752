// Package termview renders a scene in the terminal with tcell.
package termview

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/scene"
	"github.com/pthm-cable/gridsense/telemetry"
	"github.com/pthm-cable/gridsense/terrain"
)

// View draws a scene on a tcell screen, centred on the player.
type View struct {
	screen  tcell.Screen
	scene   *scene.Scene
	showFOV bool
	wander  bool
	last    telemetry.FrameStats

	// OnFrame, if set, receives every frame's stats.
	OnFrame func(telemetry.FrameStats)
}

// New creates a view. The screen must already be initialised.
func New(screen tcell.Screen, sc *scene.Scene) *View {
	return &View{screen: screen, scene: sc, showFOV: true}
}

// Step advances the scene by one frame and redraws.
func (v *View) Step(move geom.Direction) error {
	stats, err := v.scene.Step(move)
	if err != nil {
		return err
	}
	v.last = stats
	v.scene.Present(v.Draw)
	if v.OnFrame != nil {
		v.OnFrame(stats)
	}
	return nil
}

// Run polls input and advances the scene until the user quits or ctx ends.
// While wandering the player moves once per tick.
func (v *View) Run(ctx context.Context, tick time.Duration) error {
	if err := v.Step(geom.None); err != nil {
		return err
	}
	v.screen.Show()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				quit, err := v.handleKey(ev.Key(), ev.Rune())
				if quit || err != nil {
					return err
				}
			case *tcell.EventResize:
				v.screen.Sync()
				v.Draw()
			}
			v.screen.Show()

		case <-ticker.C:
			if !v.wander {
				continue
			}
			stats, err := v.scene.RandomStep()
			if err != nil {
				return err
			}
			v.last = stats
			v.scene.Present(v.Draw)
			if v.OnFrame != nil {
				v.OnFrame(stats)
			}
			v.screen.Show()
		}
	}
}

func (v *View) handleKey(key tcell.Key, r rune) (quit bool, err error) {
	cmd, dir := decode(key, r)
	switch cmd {
	case cmdQuit:
		return true, nil
	case cmdMove:
		return false, v.Step(dir)
	case cmdWander:
		v.wander = !v.wander
	case cmdFOV:
		v.showFOV = !v.showFOV
	case cmdLantern:
		lantern := v.scene.Lantern()
		lantern.SetEnabled(!lantern.Enabled())
		slog.Debug("lantern toggled", "enabled", lantern.Enabled())
		return false, v.Step(geom.None)
	}
	v.Draw()
	return false, nil
}

// camera returns the map cell drawn at the top-left of the screen, in
// display rows (see scene.ScreenRow).
func (v *View) camera() (x, y int) {
	w, h := v.screen.Size()
	h-- // status line
	res := v.scene.Resistance()
	p := v.scene.Player()
	x = clampOffset(p.X-w/2, res.Width(), w)
	y = clampOffset(v.scene.ScreenRow(p.Y)-h/2, res.Height(), h)
	return x, y
}

func clampOffset(off, size, view int) int {
	if size <= view {
		return 0
	}
	return min(max(off, 0), size-view)
}

// Draw renders the visible part of the map and a status line.
func (v *View) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	res := v.scene.Resistance()
	light := v.scene.SenseMap()
	fov := v.scene.PlayerFOV()
	camX, camY := v.camera()

	for y := range res.Height() {
		sy := v.scene.ScreenRow(y) - camY
		if sy < 0 || sy >= h-1 {
			continue
		}
		for x := range res.Width() {
			sx := x - camX
			if sx < 0 || sx >= w {
				continue
			}
			kind := terrain.Classify(res.At(x, y))
			visible := !v.showFOV || fov == nil || fov.Visible(x, y)
			v.screen.SetContent(sx, sy, kind.Glyph(), nil, cellStyle(kind, light.At(x, y), visible))
		}
	}

	for _, src := range light.Sources() {
		if !src.Enabled() {
			continue
		}
		glyph, color := '*', tcell.ColorOrange
		if src.Subtractive() {
			glyph, color = '~', tcell.ColorPurple
		}
		v.put(src.Position(), camX, camY, glyph, tcell.StyleDefault.Foreground(color))
	}
	v.put(v.scene.Player(), camX, camY, '@', tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))

	s := v.last
	status := fmt.Sprintf("frame %d  lit %d  visible %d  +%d/-%d  [hjklyubn move, r wander, f fov, L lantern, q quit]",
		s.Frame, s.LitCells, s.Visible, s.NewlySeen, s.NewlyUnseen)
	for i, r := range []rune(status) {
		if i >= w {
			break
		}
		v.screen.SetContent(i, h-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
}

func (v *View) put(p geom.Point, camX, camY int, r rune, style tcell.Style) {
	w, h := v.screen.Size()
	sx, sy := p.X-camX, v.scene.ScreenRow(p.Y)-camY
	if sx >= 0 && sx < w && sy >= 0 && sy < h-1 {
		v.screen.SetContent(sx, sy, r, nil, style)
	}
}

// cellStyle colours a glyph by light level; cells outside the FOV are dim.
func cellStyle(kind terrain.Kind, light float64, visible bool) tcell.Style {
	l := min(max(light, 0), 1)
	level := 70 + 185*l
	if !visible {
		level *= 0.4
	}
	r, g, b := level, level*0.9, level*0.7
	if kind == terrain.Foliage {
		r, b = r*0.5, b*0.5
	}
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}
