package geom

import "math"

// Distance is a metric on the integer grid.
type Distance uint8

const (
	Manhattan Distance = iota // |dx| + |dy|
	Chebyshev                 // max(|dx|, |dy|)
	Euclidean                 // sqrt(dx² + dy²)
)

// Calculate returns the distance covered by the delta (dx, dy).
func (d Distance) Calculate(dx, dy float64) float64 {
	dx = math.Abs(dx)
	dy = math.Abs(dy)
	switch d {
	case Manhattan:
		return dx + dy
	case Chebyshev:
		return math.Max(dx, dy)
	default:
		return math.Sqrt(dx*dx + dy*dy)
	}
}

// Between returns the distance between two points.
func (d Distance) Between(a, b Point) float64 {
	return d.Calculate(float64(b.X-a.X), float64(b.Y-a.Y))
}

// Adjacency returns the neighbor rule whose single steps match the metric:
// Manhattan moves cardinally, the others allow diagonals.
func (d Distance) Adjacency() AdjacencyRule {
	if d == Manhattan {
		return Cardinals
	}
	return EightWay
}

// String implements fmt.Stringer.
func (d Distance) String() string {
	switch d {
	case Manhattan:
		return "manhattan"
	case Chebyshev:
		return "chebyshev"
	default:
		return "euclidean"
	}
}
