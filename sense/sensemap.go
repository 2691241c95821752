package sense

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/grid"
)

// DefaultMaxIntensity is the ceiling aggregated intensities are clamped to.
const DefaultMaxIntensity = 1.0

// SenseMap aggregates any number of SenseSources over one resistance view.
//
// Contributions are summed per cell and clamped to [0, MaxIntensity]. Sources are
// owned by the map while registered; the caller may mutate them between
// calculations. A SenseMap is not safe for concurrent use.
type SenseMap struct {
	// YAxis decides which way cone angles turn. Defaults to YDown.
	YAxis geom.YAxis

	resistance   grid.View[float64]
	light        *grid.Array[float64]
	sources      []*SenseSource
	profiles     map[Algorithm]RippleProfile
	maxIntensity float64
	vis          visibility
}

// NewSenseMap creates an empty map over res.
func NewSenseMap(res grid.View[float64]) *SenseMap {
	m := &SenseMap{
		resistance:   res,
		light:        grid.NewArray[float64](0, 0),
		profiles:     make(map[Algorithm]RippleProfile),
		maxIntensity: DefaultMaxIntensity,
		vis:          newVisibility(),
	}
	for _, a := range Algorithms() {
		if a.IsRipple() {
			m.profiles[a] = DefaultProfile(a)
		}
	}
	if res != nil {
		m.light.Resize(res.Width(), res.Height())
	}
	return m
}

// SetResistance swaps the resistance view used by the next Calculate.
func (m *SenseMap) SetResistance(res grid.View[float64]) { m.resistance = res }

// MaxIntensity returns the clamp ceiling.
func (m *SenseMap) MaxIntensity() float64 { return m.maxIntensity }

// SetMaxIntensity changes the clamp ceiling.
func (m *SenseMap) SetMaxIntensity(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: max %v", ErrInvalidIntensity, v)
	}
	m.maxIntensity = v
	return nil
}

// RippleProfile returns the profile used for algorithm a.
func (m *SenseMap) RippleProfile(a Algorithm) RippleProfile { return m.profiles[a] }

// SetRippleProfile overrides the spread profile for a ripple algorithm.
func (m *SenseMap) SetRippleProfile(a Algorithm, p RippleProfile) error {
	if !a.IsRipple() {
		return fmt.Errorf("%w: %s has no ripple profile", ErrUnknownAlgorithm, a)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	m.profiles[a] = p
	return nil
}

// AddSenseSource registers s.
func (m *SenseMap) AddSenseSource(s *SenseSource) error {
	if s == nil {
		return ErrNilSource
	}
	if slices.Contains(m.sources, s) {
		return ErrDuplicateSource
	}
	m.sources = append(m.sources, s)
	return nil
}

// RemoveSenseSource unregisters s. Its light disappears at the next Calculate.
func (m *SenseMap) RemoveSenseSource(s *SenseSource) error {
	i := slices.Index(m.sources, s)
	if i < 0 {
		return ErrUnknownSource
	}
	m.sources = slices.Delete(m.sources, i, i+1)
	return nil
}

// Sources returns the registered sources in registration order.
func (m *SenseMap) Sources() []*SenseSource { return slices.Clone(m.sources) }

// Calculate recomputes the aggregate from every enabled source. On error the
// previous result is left untouched.
func (m *SenseMap) Calculate() error {
	if m.resistance == nil {
		return ErrNilResistance
	}
	for _, s := range m.sources {
		if s.enabled && !grid.InBounds(m.resistance, s.position.X, s.position.Y) {
			return fmt.Errorf("%w: source at %v", ErrOriginOutOfBounds, s.position)
		}
	}

	w, h := m.resistance.Width(), m.resistance.Height()
	if w != m.light.Width() || h != m.light.Height() {
		m.light.Resize(w, h)
	} else {
		m.vis.clear(m.light)
	}
	m.vis.rotate()

	for _, s := range m.sources {
		if !s.enabled {
			continue
		}
		s.calculate(m.resistance, m.profiles[s.algorithm], m.YAxis)
		m.blend(s)
	}
	for _, s := range m.sources {
		if s.enabled {
			m.settle(s)
		}
	}
	return nil
}

// overlap calls fn for every grid row the source window covers, passing the
// destination row slice and the matching window row.
func (m *SenseMap) overlap(s *SenseSource, fn func(y, x0 int, dst, src []float64)) {
	win := &s.win
	x0 := win.origin.X
	for ly := range win.height {
		y := win.origin.Y + ly
		fn(y, x0, m.light.Row(y)[x0:x0+win.width], win.row(ly))
	}
}

func (m *SenseMap) blend(s *SenseSource) {
	m.overlap(s, func(_, _ int, dst, src []float64) {
		if s.subtractive {
			floats.AddScaled(dst, -1, src)
		} else {
			floats.Add(dst, src)
		}
	})
}

// settle clamps the cells a source touched and records the lit ones.
func (m *SenseMap) settle(s *SenseSource) {
	m.overlap(s, func(y, x0 int, dst, _ []float64) {
		for i, v := range dst {
			switch {
			case v <= 0:
				dst[i] = 0
			case v > m.maxIntensity:
				dst[i] = m.maxIntensity
				m.vis.mark(geom.Point{X: x0 + i, Y: y})
			default:
				m.vis.mark(geom.Point{X: x0 + i, Y: y})
			}
		}
	})
}

func (m *SenseMap) Width() int  { return m.light.Width() }
func (m *SenseMap) Height() int { return m.light.Height() }

// At returns the aggregate intensity of (x, y), or 0 outside the grid.
func (m *SenseMap) At(x, y int) float64 { return m.light.At(x, y) }

// AtPoint is At for a geom.Point.
func (m *SenseMap) AtPoint(p geom.Point) float64 { return m.light.At(p.X, p.Y) }

// Light exposes the result grid read-only.
func (m *SenseMap) Light() grid.View[float64] { return m.light }

// CurrentSenseMap yields every cell with non-zero intensity.
func (m *SenseMap) CurrentSenseMap() iter.Seq[geom.Point] { return m.vis.all() }

// NewlyInSenseMap yields cells sensed now that were not sensed before.
func (m *SenseMap) NewlyInSenseMap() iter.Seq[geom.Point] { return m.vis.newlySeen() }

// NewlyOutOfSenseMap yields cells sensed before that are not sensed now.
func (m *SenseMap) NewlyOutOfSenseMap() iter.Seq[geom.Point] { return m.vis.newlyUnseen() }

// SensedCount is the number of cells with non-zero intensity.
func (m *SenseMap) SensedCount() int { return m.vis.current.Size() }
