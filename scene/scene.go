// Package scene wires terrain, entities, lighting and vision into a steppable
// simulation shared by the graphical, terminal and headless front ends.
package scene

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gridsense/components"
	"github.com/pthm-cable/gridsense/config"
	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/grid"
	"github.com/pthm-cable/gridsense/sense"
	"github.com/pthm-cable/gridsense/systems"
	"github.com/pthm-cable/gridsense/telemetry"
	"github.com/pthm-cable/gridsense/terrain"
)

// ErrNoFloor is returned when the generated map has nowhere to place a light.
var ErrNoFloor = errors.New("scene: map has no open floor")

// Scene holds the complete simulation state.
type Scene struct {
	cfg        *config.Config
	rng        *rand.Rand
	resistance *grid.Array[float64]
	senseMap   *sense.SenseMap

	world     *ecs.World
	player    ecs.Entity
	posMap    *ecs.Map[components.Position]
	headMap   *ecs.Map[components.Heading]
	sightMap  *ecs.Map[components.Sight]
	lightMap  *ecs.Map[components.Light]
	lightsMap *ecs.Map2[components.Position, components.Light]

	lighting *systems.LightingSystem
	vision   *systems.VisionSystem
	perf     *telemetry.PerfCollector

	frame      int32
	lastVision systems.VisionStats
}

// New generates a map from cfg and seed and populates it with the player and
// the configured lights. Call Step before reading any sense data.
func New(cfg *config.Config, seed int64) (*Scene, error) {
	params := terrain.ParamsFromConfig(cfg.Map, seed)
	res := terrain.Generate(params)

	sm := sense.NewSenseMap(res)
	sm.YAxis = cfg.Derived.YAxis
	if err := sm.SetMaxIntensity(cfg.Sense.MaxIntensity); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	for algo, profile := range cfg.Derived.Profiles {
		if err := sm.SetRippleProfile(algo, profile); err != nil {
			return nil, fmt.Errorf("scene: profile %s: %w", algo, err)
		}
	}

	world := ecs.NewWorld()
	s := &Scene{
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(seed)),
		resistance: res,
		senseMap:   sm,
		world:      world,
		posMap:     ecs.NewMap[components.Position](world),
		headMap:    ecs.NewMap[components.Heading](world),
		sightMap:   ecs.NewMap[components.Sight](world),
		lightMap:   ecs.NewMap[components.Light](world),
		lightsMap:  ecs.NewMap2[components.Position, components.Light](world),
		lighting:   systems.NewLightingSystem(world, sm),
		vision:     systems.NewVisionSystem(world, res, cfg.Derived.YAxis),
		perf:       telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
	}

	if err := s.spawnPlayer(params.Center()); err != nil {
		return nil, err
	}
	if err := s.spawnLights(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scene) spawnPlayer(at geom.Point) error {
	lantern, err := s.cfg.Derived.Lantern.NewSource(at)
	if err != nil {
		return fmt.Errorf("scene: lantern: %w", err)
	}
	mapper := ecs.NewMap5[
		components.Position,
		components.Heading,
		components.Sight,
		components.Light,
		components.Player,
	](s.world)
	s.player = mapper.NewEntity(
		&components.Position{X: at.X, Y: at.Y},
		&components.Heading{Dir: geom.Right},
		&components.Sight{
			Radius: s.cfg.Player.SightRadius,
			Shape:  s.cfg.Derived.SightShape,
			Span:   s.cfg.Player.SightSpan,
		},
		&components.Light{Source: lantern, Aimed: true},
		&components.Player{},
	)
	return nil
}

func (s *Scene) spawnLights() error {
	for _, spec := range s.cfg.Derived.Lights {
		for range spec.Config.Count {
			at, ok := terrain.OpenSpot(s.resistance, s.rng)
			if !ok {
				return ErrNoFloor
			}
			src, err := spec.NewSource(at)
			if err != nil {
				return fmt.Errorf("scene: %w", err)
			}
			s.lightsMap.NewEntity(&components.Position{X: at.X, Y: at.Y}, &components.Light{Source: src})
		}
	}
	return nil
}

// Step advances one frame: the player turns to move (walking only onto
// non-wall cells), then lighting and vision are recalculated. The frame stays
// open in the perf collector until Present is called.
func (s *Scene) Step(move geom.Direction) (telemetry.FrameStats, error) {
	s.perf.StartFrame()

	s.perf.StartPhase(telemetry.PhaseMovement)
	s.movePlayer(move)

	s.perf.StartPhase(telemetry.PhaseLighting)
	if err := s.lighting.Update(); err != nil {
		return telemetry.FrameStats{}, fmt.Errorf("frame %d: %w", s.frame, err)
	}

	s.perf.StartPhase(telemetry.PhaseVision)
	vs, err := s.vision.Update()
	if err != nil {
		return telemetry.FrameStats{}, fmt.Errorf("frame %d: %w", s.frame, err)
	}
	s.lastVision = vs

	stats := telemetry.ComputeFrameStats(s.frame, s.senseMap, s.PlayerFOV())
	s.frame++
	return stats, nil
}

// Present times draw as the frame's render phase and closes the frame.
// draw may be nil.
func (s *Scene) Present(draw func()) {
	s.perf.StartPhase(telemetry.PhaseRender)
	if draw != nil {
		draw()
	}
	s.perf.EndFrame()
}

// RandomStep wanders: it mostly keeps the current heading and picks a new
// direction when blocked or on a whim.
func (s *Scene) RandomStep() (telemetry.FrameStats, error) {
	dir := s.Heading()
	next := s.Player().Add(dir.Delta(s.cfg.Derived.YAxis))
	if dir == geom.None || !terrain.Walkable(s.resistance, next) || s.rng.Float64() < 0.15 {
		dir = geom.Direction(s.rng.Intn(geom.NumDirections))
	}
	return s.Step(dir)
}

func (s *Scene) movePlayer(move geom.Direction) {
	if move == geom.None {
		return
	}
	s.headMap.Get(s.player).Dir = move
	pos := s.posMap.Get(s.player)
	next := pos.Point().Add(move.Delta(s.cfg.Derived.YAxis))
	if terrain.Walkable(s.resistance, next) {
		pos.X, pos.Y = next.X, next.Y
	}
}

// Config returns the configuration the scene was built from.
func (s *Scene) Config() *config.Config { return s.cfg }

// Frame returns the number of completed steps.
func (s *Scene) Frame() int32 { return s.frame }

// Resistance returns the terrain resistance grid.
func (s *Scene) Resistance() grid.View[float64] { return s.resistance }

// SenseMap returns the aggregated light map.
func (s *Scene) SenseMap() *sense.SenseMap { return s.senseMap }

// Player returns the player's cell.
func (s *Scene) Player() geom.Point { return s.posMap.Get(s.player).Point() }

// Heading returns the direction the player faces.
func (s *Scene) Heading() geom.Direction { return s.headMap.Get(s.player).Dir }

// PlayerFOV returns the player's field of view, nil before the first Step.
func (s *Scene) PlayerFOV() *sense.FOV { return s.sightMap.Get(s.player).FOV }

// Lantern returns the light the player carries. Front ends tune it directly.
func (s *Scene) Lantern() *sense.SenseSource { return s.lightMap.Get(s.player).Source }

// Vision returns the vision totals of the last Step.
func (s *Scene) Vision() systems.VisionStats { return s.lastVision }

// Perf returns the frame timing collector.
func (s *Scene) Perf() *telemetry.PerfCollector { return s.perf }

// ScreenRow maps a grid row to a display row, flipping it when the scene
// uses the Y-up convention.
func (s *Scene) ScreenRow(y int) int {
	if s.cfg.Derived.YAxis == geom.YUp {
		return s.resistance.Height() - 1 - y
	}
	return y
}
