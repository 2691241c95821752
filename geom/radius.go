package geom

import (
	"fmt"
	"strings"
)

// Radius is the shape traced by all cells within a given radius of a center.
// The 3D names are accepted for compatibility and behave as their 2D projection.
type Radius uint8

const (
	Square Radius = iota
	Diamond
	Circle
	Cube
	Octahedron
	Sphere
)

var radiusNames = map[Radius]string{
	Square:     "square",
	Diamond:    "diamond",
	Circle:     "circle",
	Cube:       "cube",
	Octahedron: "octahedron",
	Sphere:     "sphere",
}

// Distance returns the metric that bounds the shape.
func (r Radius) Distance() Distance {
	switch r {
	case Diamond, Octahedron:
		return Manhattan
	case Circle, Sphere:
		return Euclidean
	default:
		return Chebyshev
	}
}

// Adjacency returns the neighbor rule consistent with the shape.
func (r Radius) Adjacency() AdjacencyRule {
	return r.Distance().Adjacency()
}

// String implements fmt.Stringer.
func (r Radius) String() string {
	if name, ok := radiusNames[r]; ok {
		return name
	}
	return fmt.Sprintf("radius(%d)", uint8(r))
}

// ParseRadius converts a configuration name (case-insensitive) into a Radius.
func ParseRadius(s string) (Radius, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for r, n := range radiusNames {
		if n == name {
			return r, nil
		}
	}
	return Square, fmt.Errorf("unknown radius shape %q", s)
}
