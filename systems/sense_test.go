package systems

import (
	"errors"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gridsense/components"
	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/grid"
	"github.com/pthm-cable/gridsense/sense"
)

func newLight(t *testing.T, algo sense.Algorithm, radius float64) *sense.SenseSource {
	t.Helper()
	src, err := sense.NewSenseSource(algo, geom.Point{}, radius, geom.Circle, 1)
	if err != nil {
		t.Fatal(err)
	}
	return src
}

// TestLightingSystemTracksEntities verifies sources follow, join and leave with their entities.
func TestLightingSystemTracksEntities(t *testing.T) {
	world := ecs.NewWorld()
	res := grid.NewArray[float64](30, 20)
	sm := sense.NewSenseMap(res)
	lighting := NewLightingSystem(world, sm)
	mapper := ecs.NewMap2[components.Position, components.Light](world)
	posMap := ecs.NewMap[components.Position](world)

	torch := mapper.NewEntity(&components.Position{X: 5, Y: 5}, &components.Light{Source: newLight(t, sense.Shadow, 3)})
	if err := lighting.Update(); err != nil {
		t.Fatal(err)
	}
	if sm.At(5, 5) != 1 {
		t.Errorf("Expected light at the entity, got %f", sm.At(5, 5))
	}
	if len(sm.Sources()) != 1 {
		t.Fatalf("Expected 1 registered source, got %d", len(sm.Sources()))
	}

	pos := posMap.Get(torch)
	pos.X, pos.Y = 20, 12
	mapper.NewEntity(&components.Position{X: 2, Y: 2}, &components.Light{Source: newLight(t, sense.Ripple, 2)})
	if err := lighting.Update(); err != nil {
		t.Fatal(err)
	}
	if sm.At(5, 5) != 0 || sm.At(20, 12) != 1 || sm.At(2, 2) != 1 {
		t.Error("Expected light to follow the moved entity and include the new one")
	}
	if len(sm.Sources()) != 2 {
		t.Errorf("Expected 2 registered sources, got %d", len(sm.Sources()))
	}

	world.RemoveEntity(torch)
	if err := lighting.Update(); err != nil {
		t.Fatal(err)
	}
	if len(sm.Sources()) != 1 || sm.At(20, 12) != 0 {
		t.Error("Expected the removed entity's light to be dropped")
	}
}

// TestLightingSystemAimsCones verifies aimed cones turn with the entity's heading.
func TestLightingSystemAimsCones(t *testing.T) {
	world := ecs.NewWorld()
	sm := sense.NewSenseMap(grid.NewArray[float64](21, 21))
	lighting := NewLightingSystem(world, sm)
	mapper := ecs.NewMap3[components.Position, components.Light, components.Heading](world)
	headings := ecs.NewMap[components.Heading](world)

	src := newLight(t, sense.Shadow, 6)
	if err := src.Restrict(0, 60); err != nil {
		t.Fatal(err)
	}
	e := mapper.NewEntity(
		&components.Position{X: 10, Y: 10},
		&components.Light{Source: src, Aimed: true},
		&components.Heading{Dir: geom.Up},
	)
	if err := lighting.Update(); err != nil {
		t.Fatal(err)
	}
	if sm.At(10, 6) <= 0 || sm.At(14, 10) != 0 {
		t.Error("Expected the cone to face up")
	}

	headings.Get(e).Dir = geom.Right
	if err := lighting.Update(); err != nil {
		t.Fatal(err)
	}
	if sm.At(14, 10) <= 0 || sm.At(10, 6) != 0 {
		t.Error("Expected the cone to turn right")
	}
}

// TestLightingSystemRejectsOutOfBounds verifies calculation errors surface.
func TestLightingSystemRejectsOutOfBounds(t *testing.T) {
	world := ecs.NewWorld()
	sm := sense.NewSenseMap(grid.NewArray[float64](5, 5))
	lighting := NewLightingSystem(world, sm)
	ecs.NewMap2[components.Position, components.Light](world).
		NewEntity(&components.Position{X: 9, Y: 9}, &components.Light{Source: newLight(t, sense.Shadow, 2)})
	if err := lighting.Update(); err == nil {
		t.Error("Expected an error for a light outside the map")
	}
}

// TestLightingSystemSharedSource verifies a source carried by two entities is
// registered once and keeps lighting.
func TestLightingSystemSharedSource(t *testing.T) {
	world := ecs.NewWorld()
	sm := sense.NewSenseMap(grid.NewArray[float64](20, 20))
	lighting := NewLightingSystem(world, sm)
	mapper := ecs.NewMap2[components.Position, components.Light](world)

	src := newLight(t, sense.Shadow, 3)
	mapper.NewEntity(&components.Position{X: 4, Y: 4}, &components.Light{Source: src})
	mapper.NewEntity(&components.Position{X: 15, Y: 15}, &components.Light{Source: src})
	for frame := range 3 {
		if err := lighting.Update(); err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
	}
	if len(sm.Sources()) != 1 {
		t.Errorf("Expected 1 registered source, got %d", len(sm.Sources()))
	}
	if sm.At(4, 4) != 1 && sm.At(15, 15) != 1 {
		t.Error("Expected the shared source to light one of its entities")
	}
}

// TestLightingSystemFailedSourceKeepsOthers verifies one light failing to
// register does not stop the rest from being recalculated.
func TestLightingSystemFailedSourceKeepsOthers(t *testing.T) {
	world := ecs.NewWorld()
	sm := sense.NewSenseMap(grid.NewArray[float64](20, 20))
	lighting := NewLightingSystem(world, sm)
	mapper := ecs.NewMap2[components.Position, components.Light](world)
	posMap := ecs.NewMap[components.Position](world)

	claimed := newLight(t, sense.Shadow, 2)
	claimed.SetPosition(geom.Pt(2, 2))
	if err := sm.AddSenseSource(claimed); err != nil {
		t.Fatal(err)
	}
	mapper.NewEntity(&components.Position{X: 2, Y: 2}, &components.Light{Source: claimed})
	torch := mapper.NewEntity(&components.Position{X: 10, Y: 10}, &components.Light{Source: newLight(t, sense.Ripple, 3)})

	err := lighting.Update()
	if !errors.Is(err, sense.ErrDuplicateSource) {
		t.Errorf("Expected ErrDuplicateSource, got %v", err)
	}
	if sm.At(10, 10) != 1 {
		t.Errorf("Expected the other light to be calculated, got %f", sm.At(10, 10))
	}

	pos := posMap.Get(torch)
	pos.X, pos.Y = 15, 15
	if err := lighting.Update(); !errors.Is(err, sense.ErrDuplicateSource) {
		t.Errorf("Expected the claimed light to keep failing, got %v", err)
	}
	if sm.At(15, 15) != 1 || sm.At(10, 10) != 0 {
		t.Error("Expected the other light to keep following its entity")
	}
}

// TestVisionSystemCountsDeltas verifies per-viewer FOVs are created and summed.
func TestVisionSystemCountsDeltas(t *testing.T) {
	world := ecs.NewWorld()
	res := grid.MustParseRows(
		"###########",
		"#.........#",
		"#....#....#",
		"#.........#",
		"###########",
	)
	vision := NewVisionSystem(world, res, geom.YDown)
	mapper := ecs.NewMap2[components.Position, components.Sight](world)
	posMap := ecs.NewMap[components.Position](world)

	e := mapper.NewEntity(&components.Position{X: 2, Y: 2}, &components.Sight{Radius: 4, Shape: geom.Circle, Span: 360})
	stats, err := vision.Update()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Viewers != 1 || stats.Visible == 0 {
		t.Fatalf("Expected one viewer seeing something, got %+v", stats)
	}
	if stats.NewlySeen != stats.Visible || stats.NewlyUnseen != 0 {
		t.Errorf("Expected everything newly seen on the first frame, got %+v", stats)
	}

	stats, err = vision.Update()
	if err != nil {
		t.Fatal(err)
	}
	if stats.NewlySeen != 0 || stats.NewlyUnseen != 0 {
		t.Errorf("Expected no change when standing still, got %+v", stats)
	}

	posMap.Get(e).X = 8
	stats, err = vision.Update()
	if err != nil {
		t.Fatal(err)
	}
	if stats.NewlySeen == 0 || stats.NewlyUnseen == 0 {
		t.Errorf("Expected cells to enter and leave view after moving, got %+v", stats)
	}
}

// TestVisionSystemCone verifies restricted sight follows the heading.
func TestVisionSystemCone(t *testing.T) {
	world := ecs.NewWorld()
	vision := NewVisionSystem(world, grid.NewArray[float64](21, 21), geom.YDown)
	mapper := ecs.NewMap3[components.Position, components.Sight, components.Heading](world)
	sightMap := ecs.NewMap[components.Sight](world)

	e := mapper.NewEntity(
		&components.Position{X: 10, Y: 10},
		&components.Sight{Radius: 8, Shape: geom.Circle, Span: 90},
		&components.Heading{Dir: geom.Left},
	)
	if _, err := vision.Update(); err != nil {
		t.Fatal(err)
	}
	fov := sightMap.Get(e).FOV
	if !fov.Visible(4, 10) || fov.Visible(16, 10) {
		t.Error("Expected a leftward cone")
	}
}

// TestSystemRegistryNames checks the registry lookups.
func TestSystemRegistryNames(t *testing.T) {
	reg := NewSystemRegistry()
	if reg.GetName(IDLighting) != "Lighting" {
		t.Errorf("Expected Lighting, got %s", reg.GetName(IDLighting))
	}
	if reg.GetName("unknown") != "unknown" {
		t.Error("Expected unknown IDs to fall back to themselves")
	}
	if len(reg.IDs()) != len(reg.All()) || len(reg.ByCategory("sense")) != 2 {
		t.Error("Unexpected registry contents")
	}
	if _, ok := reg.Get(IDRender); !ok {
		t.Error("Expected render to be registered")
	}
}
