package geom

import (
	"errors"
	"fmt"
)

// ErrIncompatibleAdjacency is returned when a 4-way rule is asked to serve a shape
// that needs diagonal steps.
var ErrIncompatibleAdjacency = errors.New("adjacency rule incompatible with radius shape")

// AdjacencyRule selects which neighbors count as one step away.
type AdjacencyRule uint8

const (
	Cardinals AdjacencyRule = iota // up, right, down, left
	EightWay                       // cardinals plus diagonals
)

var (
	cardinalDirs = []Direction{Up, Right, Down, Left}
	eightWayDirs = []Direction{Up, UpRight, Right, DownRight, Down, DownLeft, Left, UpLeft}
)

// Directions returns the ordered directions the rule allows.
// The returned slice is shared and must not be modified.
func (a AdjacencyRule) Directions() []Direction {
	if a == Cardinals {
		return cardinalDirs
	}
	return eightWayDirs
}

// Neighbors returns the ordered neighbor offsets under the axis convention.
func (a AdjacencyRule) Neighbors(axis YAxis) []Point {
	dirs := a.Directions()
	out := make([]Point, len(dirs))
	for i, d := range dirs {
		out[i] = d.Delta(axis)
	}
	return out
}

// String implements fmt.Stringer.
func (a AdjacencyRule) String() string {
	if a == Cardinals {
		return "cardinals"
	}
	return "eight-way"
}

// CheckAdjacency verifies that rule can reach every cell of the shape one step at a time
// without overshooting it. Diamond shapes accept either rule; the rest need EightWay.
func CheckAdjacency(shape Radius, rule AdjacencyRule) error {
	if rule == Cardinals && shape.Adjacency() != Cardinals {
		return fmt.Errorf("%w: %s needs %s", ErrIncompatibleAdjacency, shape, shape.Adjacency())
	}
	return nil
}
