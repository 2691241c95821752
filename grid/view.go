// Package grid provides read-only 2D views and dense storage for per-cell values.
//
// Every accessor in this module returns the zero value for coordinates outside the
// grid instead of panicking.
package grid

import "github.com/pthm-cable/gridsense/geom"

// View is a read-only rectangular lookup of per-cell values.
type View[T any] interface {
	Width() int
	Height() int
	At(x, y int) T
}

// InBounds reports whether (x, y) lies inside v.
func InBounds[T any](v View[T], x, y int) bool {
	return x >= 0 && y >= 0 && x < v.Width() && y < v.Height()
}

// AtPoint is At for a geom.Point.
func AtPoint[T any](v View[T], p geom.Point) T {
	return v.At(p.X, p.Y)
}

// Func is a View whose values are computed on demand.
// Fn is only called for in-bounds coordinates.
type Func[T any] struct {
	W, H int
	Fn   func(x, y int) T
}

// NewFunc creates a function-backed view.
func NewFunc[T any](width, height int, fn func(x, y int) T) *Func[T] {
	return &Func[T]{W: width, H: height, Fn: fn}
}

func (f *Func[T]) Width() int  { return f.W }
func (f *Func[T]) Height() int { return f.H }

// At returns Fn(x, y), or the zero value out of bounds.
func (f *Func[T]) At(x, y int) T {
	var zero T
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return zero
	}
	return f.Fn(x, y)
}

// FromTransparency adapts a transparency map (true = light passes) into a
// resistance view: transparent cells read 0.0, opaque cells read 1.0.
func FromTransparency(v View[bool]) View[float64] {
	return NewFunc(v.Width(), v.Height(), func(x, y int) float64 {
		if v.At(x, y) {
			return 0
		}
		return 1
	})
}

// FromWalkability adapts a walkability map into a resistance view. Walkable cells
// are treated as open and unwalkable cells as fully blocking.
func FromWalkability(v View[bool]) View[float64] {
	return FromTransparency(v)
}

// Threshold adapts a numeric view into a boolean one: cells whose value is
// strictly greater than limit read true.
func Threshold(v View[float64], limit float64) View[bool] {
	return NewFunc(v.Width(), v.Height(), func(x, y int) bool {
		return v.At(x, y) > limit
	})
}
