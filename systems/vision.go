package systems

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gridsense/components"
	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/grid"
	"github.com/pthm-cable/gridsense/sense"
)

// VisionStats summarizes one vision update across all viewers.
type VisionStats struct {
	Viewers     int
	Visible     int
	NewlySeen   int
	NewlyUnseen int
}

// LogValue implements slog.LogValuer.
func (v VisionStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("viewers", v.Viewers),
		slog.Int("visible", v.Visible),
		slog.Int("newly_seen", v.NewlySeen),
		slog.Int("newly_unseen", v.NewlyUnseen),
	)
}

// VisionSystem recomputes the field of view of every entity with Sight.
// Viewers without an FOV get one bound to the system's resistance view.
type VisionSystem struct {
	resistance grid.View[float64]
	axis       geom.YAxis
	filter     *ecs.Filter2[components.Position, components.Sight]
	headings   *ecs.Map[components.Heading]
}

// NewVisionSystem creates a vision system over res.
func NewVisionSystem(world *ecs.World, res grid.View[float64], axis geom.YAxis) *VisionSystem {
	return &VisionSystem{
		resistance: res,
		axis:       axis,
		filter:     ecs.NewFilter2[components.Position, components.Sight](world),
		headings:   ecs.NewMap[components.Heading](world),
	}
}

// Update recalculates every viewer. A viewer whose calculation fails keeps its
// previous field of view; the first error is returned after all viewers ran.
func (s *VisionSystem) Update() (VisionStats, error) {
	var stats VisionStats
	var firstErr error

	query := s.filter.Query()
	for query.Next() {
		pos, sight := query.Get()
		if sight.FOV == nil {
			sight.FOV = sense.NewFOV(s.resistance)
			sight.FOV.YAxis = s.axis
		}
		if err := s.calculate(query.Entity(), pos.Point(), sight); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("viewer at %v: %w", pos.Point(), err)
			}
			continue
		}

		stats.Viewers++
		stats.Visible += sight.FOV.VisibleCount()
		for range sight.FOV.NewlySeen() {
			stats.NewlySeen++
		}
		for range sight.FOV.NewlyUnseen() {
			stats.NewlyUnseen++
		}
	}
	return stats, firstErr
}

func (s *VisionSystem) calculate(e ecs.Entity, origin geom.Point, sight *components.Sight) error {
	if sight.Restricted() && s.headings.Has(e) {
		if dir := s.headings.Get(e).Dir; dir != geom.None {
			angle := geom.Angle(dir.Delta(s.axis), s.axis)
			return sight.FOV.CalculateCone(origin, sight.Radius, sight.Shape, angle, sight.Span)
		}
	}
	return sight.FOV.Calculate(origin, sight.Radius, sight.Shape)
}
