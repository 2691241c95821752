package sense

import (
	"math"

	"github.com/pthm-cable/gridsense/geom"
)

// cone restricts lighting to an angular span centred on angle (degrees).
// A nil *cone admits every direction.
type cone struct {
	angle float64
	half  float64
}

func newCone(angle, span float64) *cone {
	return &cone{angle: angle, half: span / 2}
}

func (c *cone) contains(delta geom.Point, axis geom.YAxis) bool {
	if c == nil || delta == (geom.Point{}) {
		return true
	}
	return math.Abs(geom.AngleDiff(geom.Angle(delta, axis), c.angle)) <= c.half
}
