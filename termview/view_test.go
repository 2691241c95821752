package termview

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/gridsense/config"
	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/scene"
	"github.com/pthm-cable/gridsense/telemetry"
	"github.com/pthm-cable/gridsense/terrain"
)

func newTestView(t *testing.T, w, h int) (*View, tcell.SimulationScreen) {
	t.Helper()
	cfg, err := config.Parse([]byte("map:\n  width: 60\n  height: 40\n"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	sc, err := scene.New(cfg, 21)
	if err != nil {
		t.Fatalf("scene: %v", err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return New(screen, sc), screen
}

// TestViewDrawsPlayer verifies the player glyph lands where the camera puts it.
func TestViewDrawsPlayer(t *testing.T) {
	v, screen := newTestView(t, 30, 12)
	if err := v.Step(geom.None); err != nil {
		t.Fatal(err)
	}

	camX, camY := v.camera()
	p := v.scene.Player()
	r, _, _, _ := screen.GetContent(p.X-camX, v.scene.ScreenRow(p.Y)-camY)
	if r != '@' {
		t.Errorf("Expected '@' at the player, got %q", r)
	}

	// The map is larger than the screen, so the camera follows the player.
	if camX != p.X-15 || camY != p.Y-5 {
		t.Errorf("Expected camera centred on %v, got (%d,%d)", p, camX, camY)
	}
}

// TestViewDrawsTerrain verifies every map cell on screen shows its terrain glyph.
func TestViewDrawsTerrain(t *testing.T) {
	v, screen := newTestView(t, 80, 50)
	if err := v.Step(geom.None); err != nil {
		t.Fatal(err)
	}

	res := v.scene.Resistance()
	// Map fits: no scrolling. Corners are border walls.
	for _, p := range []geom.Point{{X: 0, Y: 0}, {X: 59, Y: 39}} {
		r, _, _, _ := screen.GetContent(p.X, p.Y)
		if want := terrain.Classify(res.At(p.X, p.Y)).Glyph(); r != want {
			t.Errorf("Expected %q at %v, got %q", want, p, r)
		}
	}

	// Status line on the last row.
	r, _, _, _ := screen.GetContent(0, 49)
	if r != 'f' {
		t.Errorf("Expected status line to start with 'f', got %q", r)
	}
}

// TestViewMovesPlayer verifies a movement key walks the player.
func TestViewMovesPlayer(t *testing.T) {
	v, _ := newTestView(t, 40, 20)
	if err := v.Step(geom.None); err != nil {
		t.Fatal(err)
	}
	start := v.scene.Player()

	var frames int
	v.OnFrame = func(telemetry.FrameStats) { frames++ }
	quit, err := v.handleKey(tcell.KeyRight, 0)
	if err != nil || quit {
		t.Fatalf("Expected move to succeed, got quit=%v err=%v", quit, err)
	}
	if want := start.Add(geom.Pt(1, 0)); v.scene.Player() != want {
		t.Errorf("Expected player at %v, got %v", want, v.scene.Player())
	}
	if frames != 1 {
		t.Errorf("Expected 1 frame callback, got %d", frames)
	}
}

func TestDecode(t *testing.T) {
	cases := []struct {
		key  tcell.Key
		r    rune
		cmd  command
		want geom.Direction
	}{
		{tcell.KeyUp, 0, cmdMove, geom.Up},
		{tcell.KeyRune, 'h', cmdMove, geom.Left},
		{tcell.KeyRune, 'n', cmdMove, geom.DownRight},
		{tcell.KeyRune, '.', cmdMove, geom.None},
		{tcell.KeyRune, 'L', cmdLantern, geom.None},
		{tcell.KeyRune, 'q', cmdQuit, geom.None},
		{tcell.KeyEscape, 0, cmdQuit, geom.None},
		{tcell.KeyRune, 'x', cmdNone, geom.None},
		{tcell.KeyF1, 0, cmdNone, geom.None},
	}
	for _, c := range cases {
		cmd, dir := decode(c.key, c.r)
		if cmd != c.cmd || dir != c.want {
			t.Errorf("decode(%v, %q): expected %v/%v, got %v/%v", c.key, c.r, c.cmd, c.want, cmd, dir)
		}
	}
}

func TestClampOffset(t *testing.T) {
	if got := clampOffset(-3, 100, 20); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
	if got := clampOffset(95, 100, 20); got != 80 {
		t.Errorf("Expected 80, got %d", got)
	}
	if got := clampOffset(5, 10, 20); got != 0 {
		t.Errorf("Expected 0 when the map fits, got %d", got)
	}
}
