package scene

import (
	"testing"

	"github.com/pthm-cable/gridsense/config"
	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/terrain"
)

const testYAML = `
map:
  width: 48
  height: 32
lights:
  - name: torch
    count: 4
    radius: 5
    shape: circle
    algorithm: shadow
    intensity: 0.6
  - name: glow
    count: 2
    radius: 4
    shape: diamond
    algorithm: ripple_loose
    intensity: 0.5
`

func newTestScene(t *testing.T, seed int64, extra string) *Scene {
	t.Helper()
	cfg, err := config.Parse([]byte(testYAML + extra))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	s, err := New(cfg, seed)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// TestSceneFirstStep verifies the player's lantern and sight after one frame.
func TestSceneFirstStep(t *testing.T) {
	s := newTestScene(t, 1, "")
	if s.PlayerFOV() != nil {
		t.Error("Expected no FOV before the first step")
	}

	stats, err := s.Step(geom.None)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	s.Present(nil)

	if stats.Frame != 0 || s.Frame() != 1 {
		t.Errorf("Expected stats for frame 0 and 1 completed frame, got %d/%d", stats.Frame, s.Frame())
	}
	if stats.Sources != 7 {
		t.Errorf("Expected lantern plus 6 lights, got %d", stats.Sources)
	}
	player := s.Player()
	if got := s.SenseMap().AtPoint(player); got < s.Lantern().Intensity() {
		t.Errorf("Expected at least lantern intensity at the player, got %f", got)
	}
	if s.PlayerFOV() == nil || s.PlayerFOV().AtPoint(player) != 1 {
		t.Error("Expected the player's own cell to be visible")
	}
	if stats.NewlySeen != stats.Visible {
		t.Errorf("Expected every visible cell to be new on the first frame, got %d of %d", stats.NewlySeen, stats.Visible)
	}
	if s.Vision().Viewers != 1 {
		t.Errorf("Expected 1 viewer, got %d", s.Vision().Viewers)
	}
	if s.Perf().Stats().AvgFrame <= 0 {
		t.Error("Expected the presented frame to be timed")
	}
}

// TestSceneDeterministic verifies equal seeds give equal light maps.
func TestSceneDeterministic(t *testing.T) {
	a := newTestScene(t, 42, "")
	b := newTestScene(t, 42, "")
	if _, err := a.Step(geom.None); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Step(geom.None); err != nil {
		t.Fatal(err)
	}
	for y := range a.SenseMap().Height() {
		for x := range a.SenseMap().Width() {
			if a.SenseMap().At(x, y) != b.SenseMap().At(x, y) {
				t.Fatalf("Expected identical maps, differ at (%d,%d)", x, y)
			}
		}
	}
}

// TestSceneMovement verifies walking, turning and wall blocking.
func TestSceneMovement(t *testing.T) {
	s := newTestScene(t, 3, "")
	start := s.Player()

	if _, err := s.Step(geom.Right); err != nil {
		t.Fatal(err)
	}
	// The spawn clearing guarantees room for one step.
	if want := start.Add(geom.Pt(1, 0)); s.Player() != want {
		t.Errorf("Expected player at %v, got %v", want, s.Player())
	}
	if s.Heading() != geom.Right {
		t.Errorf("Expected heading right, got %v", s.Heading())
	}
	if s.Lantern().Position() != s.Player() {
		t.Error("Expected the lantern to follow the player")
	}

	for range 100 {
		if _, err := s.Step(geom.Up); err != nil {
			t.Fatal(err)
		}
		if !terrain.Walkable(s.Resistance(), s.Player()) {
			t.Fatalf("Player walked onto a wall at %v", s.Player())
		}
	}
	if s.Player().Y < 1 {
		t.Errorf("Expected the border to stop the player, got %v", s.Player())
	}
}

// TestSceneRandomStep verifies wandering never enters walls.
func TestSceneRandomStep(t *testing.T) {
	s := newTestScene(t, 9, "")
	for range 200 {
		if _, err := s.RandomStep(); err != nil {
			t.Fatal(err)
		}
		s.Present(nil)
		if !terrain.Walkable(s.Resistance(), s.Player()) {
			t.Fatalf("Player wandered onto a wall at %v", s.Player())
		}
	}
	if s.Frame() != 200 {
		t.Errorf("Expected 200 frames, got %d", s.Frame())
	}
}

// TestSceneConeSight verifies a restricted sight only sees ahead.
func TestSceneConeSight(t *testing.T) {
	s := newTestScene(t, 5, `
player:
  sight_span: 90
`)
	if _, err := s.Step(geom.Right); err != nil {
		t.Fatal(err)
	}
	p := s.Player()
	fov := s.PlayerFOV()
	if fov.AtPoint(p.Add(geom.Pt(2, 0))) <= 0 {
		t.Error("Expected the cell ahead to be visible")
	}
	if fov.AtPoint(p.Add(geom.Pt(-2, 0))) != 0 {
		t.Error("Expected the cell behind to be hidden")
	}
}

func TestSceneScreenRow(t *testing.T) {
	down := newTestScene(t, 1, "")
	if down.ScreenRow(3) != 3 {
		t.Errorf("Expected row 3 unchanged, got %d", down.ScreenRow(3))
	}
	up := newTestScene(t, 1, `
sense:
  y_up: true
`)
	if up.ScreenRow(3) != 28 {
		t.Errorf("Expected row 3 to flip to 28, got %d", up.ScreenRow(3))
	}
}
