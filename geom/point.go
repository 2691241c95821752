// Package geom provides the integer grid geometry shared by the sensory engines:
// points, directions, distance metrics and radius shapes.
package geom

import "fmt"

// Pt is a convenience constructor for Point.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Point is an integer grid coordinate. It doubles as an offset vector.
type Point struct{ X, Y int }

// Add returns the component-wise sum of two points.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the component-wise difference p - o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Scale multiplies both components by k.
func (p Point) Scale(k int) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Equal reports whether both components match.
func (p Point) Equal(o Point) bool {
	return p.X == o.X && p.Y == o.Y
}

// String implements fmt.Stringer.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
