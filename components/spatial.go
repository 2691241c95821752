package components

import "github.com/pthm-cable/gridsense/geom"

// Position represents an entity's grid cell.
type Position struct {
	X, Y int
}

// Point returns the position as a geom.Point.
func (p Position) Point() geom.Point {
	return geom.Point{X: p.X, Y: p.Y}
}

// Heading is the direction an entity faces. Cone-restricted sight and
// lights point along it.
type Heading struct {
	Dir geom.Direction
}
