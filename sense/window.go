package sense

import (
	"math"

	"github.com/pthm-cable/gridsense/geom"
)

// window is the intensity buffer of one source: the square of side 2*ceil(radius)+1
// centred on the source, clipped to the grid. The backing slice only grows, so a
// source whose radius stays put never allocates.
type window struct {
	light  []float64
	origin geom.Point // world position of local cell (0, 0)
	width  int
	height int
	center geom.Point // world position of the source
}

// reset recentres the window on center and clears it for radius over a grid of
// gridW x gridH cells. center must be inside the grid.
func (w *window) reset(center geom.Point, radius float64, gridW, gridH int) {
	reach := int(math.Min(math.Ceil(radius), float64(max(gridW, gridH))))
	x0, y0 := max(0, center.X-reach), max(0, center.Y-reach)
	x1, y1 := min(gridW, center.X+reach+1), min(gridH, center.Y+reach+1)

	w.center = center
	w.origin = geom.Point{X: x0, Y: y0}
	w.width = max(0, x1-x0)
	w.height = max(0, y1-y0)
	n := w.width * w.height
	if cap(w.light) < n {
		w.light = make([]float64, n)
		return
	}
	w.light = w.light[:n]
	clear(w.light)
}

// index maps a world position to a slice index.
func (w *window) index(p geom.Point) (int, bool) {
	lx := p.X - w.origin.X
	ly := p.Y - w.origin.Y
	if lx < 0 || ly < 0 || lx >= w.width || ly >= w.height {
		return 0, false
	}
	return ly*w.width + lx, true
}

// point is the inverse of index.
func (w *window) point(i int) geom.Point {
	return geom.Point{X: w.origin.X + i%w.width, Y: w.origin.Y + i/w.width}
}

// row returns local row ly.
func (w *window) row(ly int) []float64 {
	return w.light[ly*w.width : (ly+1)*w.width]
}

// raise stores v at p if it beats the current value.
func (w *window) raise(p geom.Point, v float64) {
	if i, ok := w.index(p); ok && v > w.light[i] {
		w.light[i] = v
	}
}
