package components

import (
	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/sense"
)

// Light attaches a sense source to an entity. The lighting system keeps the
// source's position (and cone, if the entity has a Heading) in step with the entity.
type Light struct {
	Source *sense.SenseSource
	Aimed  bool // point the cone along the entity's Heading
}

// Sight gives an entity a field of view.
type Sight struct {
	Radius float64
	Shape  geom.Radius
	Span   float64 // degrees; 360 = all around
	FOV    *sense.FOV
}

// Restricted reports whether the sight is limited to a cone.
func (s *Sight) Restricted() bool {
	return s.Span > 0 && s.Span < 360
}

// Player marks the controlled entity.
type Player struct{}
