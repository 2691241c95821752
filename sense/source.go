package sense

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/grid"
)

// SenseSource emits a sense (light, sound, scent) into a SenseMap.
//
// All setters validate their input and leave the source unchanged on error.
// A source must not be mutated while the SenseMap that owns it is calculating.
type SenseSource struct {
	position  geom.Point
	radius    float64
	shape     geom.Radius
	algorithm Algorithm
	intensity float64

	restricted bool
	angle      float64
	span       float64

	adjacency    geom.AdjacencyRule
	adjacencySet bool

	enabled     bool
	subtractive bool

	win    window
	caster shadowCaster
	ripple rippler
}

// NewSenseSource creates an enabled, unrestricted source with the adjacency
// rule implied by shape.
func NewSenseSource(algorithm Algorithm, position geom.Point, radius float64, shape geom.Radius, intensity float64) (*SenseSource, error) {
	s := &SenseSource{position: position, shape: shape, adjacency: shape.Adjacency(), enabled: true}
	if err := s.SetAlgorithm(algorithm); err != nil {
		return nil, err
	}
	if err := s.SetRadius(radius); err != nil {
		return nil, err
	}
	if err := s.SetIntensity(intensity); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SenseSource) Position() geom.Point            { return s.position }
func (s *SenseSource) Radius() float64                 { return s.radius }
func (s *SenseSource) Shape() geom.Radius              { return s.shape }
func (s *SenseSource) Algorithm() Algorithm            { return s.algorithm }
func (s *SenseSource) Intensity() float64              { return s.intensity }
func (s *SenseSource) IsAngleRestricted() bool         { return s.restricted }
func (s *SenseSource) Adjacency() geom.AdjacencyRule   { return s.adjacency }
func (s *SenseSource) Enabled() bool                   { return s.enabled }
func (s *SenseSource) Subtractive() bool               { return s.subtractive }
func (s *SenseSource) SetPosition(p geom.Point)        { s.position = p }
func (s *SenseSource) SetEnabled(enabled bool)         { s.enabled = enabled }
func (s *SenseSource) SetSubtractive(subtractive bool) { s.subtractive = subtractive }

// Angle returns the cone centre in degrees; meaningful only when restricted.
func (s *SenseSource) Angle() float64 { return s.angle }

// Span returns the cone width in degrees; 360 when unrestricted.
func (s *SenseSource) Span() float64 {
	if !s.restricted {
		return 360
	}
	return s.span
}

// SetRadius changes how far the source reaches.
func (s *SenseSource) SetRadius(r float64) error {
	if err := checkRadius(r); err != nil {
		return err
	}
	s.radius = r
	return nil
}

// SetIntensity changes the source's full-strength value.
func (s *SenseSource) SetIntensity(i float64) error {
	if math.IsNaN(i) || math.IsInf(i, 0) || i <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidIntensity, i)
	}
	s.intensity = i
	return nil
}

// SetAlgorithm changes the spreading algorithm.
func (s *SenseSource) SetAlgorithm(a Algorithm) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownAlgorithm, uint8(a))
	}
	s.algorithm = a
	return nil
}

// SetShape changes the radius shape. If no adjacency rule was set explicitly the
// rule follows the shape; otherwise the new shape must be compatible with it.
func (s *SenseSource) SetShape(shape geom.Radius) error {
	if !s.adjacencySet {
		s.shape = shape
		s.adjacency = shape.Adjacency()
		return nil
	}
	if err := geom.CheckAdjacency(shape, s.adjacency); err != nil {
		return err
	}
	s.shape = shape
	return nil
}

// SetAdjacency overrides the neighbor rule ripple algorithms step with.
func (s *SenseSource) SetAdjacency(rule geom.AdjacencyRule) error {
	if err := geom.CheckAdjacency(s.shape, rule); err != nil {
		return err
	}
	s.adjacency = rule
	s.adjacencySet = true
	return nil
}

// Restrict limits the source to a cone of span degrees centred on angle.
func (s *SenseSource) Restrict(angle, span float64) error {
	if err := checkCone(angle, span); err != nil {
		return err
	}
	s.restricted = true
	s.angle = angle
	s.span = span
	return nil
}

// Unrestrict removes any cone restriction.
func (s *SenseSource) Unrestrict() {
	s.restricted = false
	s.angle = 0
	s.span = 0
}

// LogValue implements slog.LogValuer.
func (s *SenseSource) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("pos", s.position.String()),
		slog.Float64("radius", s.radius),
		slog.String("shape", s.shape.String()),
		slog.String("algorithm", s.algorithm.String()),
		slog.Float64("intensity", s.intensity),
		slog.Float64("span", s.Span()),
		slog.Bool("enabled", s.enabled),
	)
}

// calculate fills the source's window. Position must be inside res.
func (s *SenseSource) calculate(res grid.View[float64], profile RippleProfile, axis geom.YAxis) {
	s.win.reset(s.position, s.radius, res.Width(), res.Height())
	var c *cone
	if s.restricted {
		c = newCone(s.angle, s.span)
	}

	if s.algorithm == Shadow {
		s.caster.cast(castParams{
			res:    res,
			origin: s.position,
			radius: s.radius,
			weight: s.intensity,
			metric: s.shape.Distance(),
			cone:   c,
			axis:   axis,
			emit:   s.win.raise,
		})
		return
	}
	s.ripple.spread(&s.win, rippleParams{
		res:       res,
		radius:    s.radius,
		weight:    s.intensity,
		metric:    s.shape.Distance(),
		adjacency: s.adjacency,
		profile:   profile,
		cone:      c,
		axis:      axis,
	})
}
