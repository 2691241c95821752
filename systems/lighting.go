package systems

import (
	"errors"
	"fmt"

	"github.com/mlange-42/ark/ecs"
	"github.com/zyedidia/generic/mapset"

	"github.com/pthm-cable/gridsense/components"
	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/sense"
)

// LightingSystem keeps a SenseMap in step with every entity carrying a Light.
//
// Each Update moves sources to their entity's cell, registers sources that
// appeared since the last frame, drops sources whose entity vanished and then
// recalculates the map.
type LightingSystem struct {
	senseMap   *sense.SenseMap
	filter     *ecs.Filter2[components.Position, components.Light]
	headings   *ecs.Map[components.Heading]
	registered mapset.Set[*sense.SenseSource]
}

// NewLightingSystem creates a lighting system feeding sm.
func NewLightingSystem(world *ecs.World, sm *sense.SenseMap) *LightingSystem {
	return &LightingSystem{
		senseMap:   sm,
		filter:     ecs.NewFilter2[components.Position, components.Light](world),
		headings:   ecs.NewMap[components.Heading](world),
		registered: mapset.New[*sense.SenseSource](),
	}
}

// SenseMap returns the aggregate the system maintains.
func (s *LightingSystem) SenseMap() *sense.SenseMap {
	return s.senseMap
}

// Update syncs sources and recalculates the sense map. A source that fails to
// sync is reported in the joined error but does not stop the others from being
// recalculated. A source shared by several entities follows the first of them.
func (s *LightingSystem) Update() error {
	var errs []error
	live := mapset.New[*sense.SenseSource]()

	query := s.filter.Query()
	for query.Next() {
		pos, light := query.Get()
		src := light.Source
		if src == nil || live.Has(src) {
			continue
		}
		src.SetPosition(pos.Point())
		if light.Aimed && src.IsAngleRestricted() {
			if err := s.aim(query.Entity(), src); err != nil {
				errs = append(errs, err)
			}
		}
		if !s.registered.Has(src) {
			if err := s.senseMap.AddSenseSource(src); err != nil {
				errs = append(errs, fmt.Errorf("registering light at %v: %w", pos.Point(), err))
				continue
			}
		}
		live.Put(src)
	}

	var stale []*sense.SenseSource
	s.registered.Each(func(src *sense.SenseSource) {
		if !live.Has(src) {
			stale = append(stale, src)
		}
	})
	for _, src := range stale {
		if err := s.senseMap.RemoveSenseSource(src); err != nil {
			errs = append(errs, fmt.Errorf("dropping light: %w", err))
		}
	}
	s.registered = live

	if err := s.senseMap.Calculate(); err != nil {
		errs = append(errs, fmt.Errorf("calculating sense map: %w", err))
	}
	return errors.Join(errs...)
}

// aim turns a cone-restricted source to face the entity's heading.
func (s *LightingSystem) aim(e ecs.Entity, src *sense.SenseSource) error {
	if !s.headings.Has(e) {
		return nil
	}
	dir := s.headings.Get(e).Dir
	if dir == geom.None {
		return nil
	}
	angle := geom.Angle(dir.Delta(s.senseMap.YAxis), s.senseMap.YAxis)
	return src.Restrict(angle, src.Span())
}
