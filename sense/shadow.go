package sense

import (
	"math"

	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/grid"
)

// emitFunc receives a lit cell in world coordinates and its intensity.
type emitFunc func(p geom.Point, v float64)

// octants maps scan coordinates (dx, dy) to world offsets as xx, xy, yx, yy.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// scanFrame is one pending row of an octant, bounded by two slopes. transmit is
// the fraction of light that survived the partially resistant cells crossed so far.
type scanFrame struct {
	row        int
	start, end float64
	transmit   float64
}

// shadowCaster runs recursive shadowcasting with an explicit stack so deep radii
// cannot exhaust the goroutine stack. The stack is reused between casts.
type shadowCaster struct {
	stack []scanFrame
}

// castParams bundles the per-call inputs of a cast.
type castParams struct {
	res    grid.View[float64]
	origin geom.Point
	radius float64
	weight float64
	metric geom.Distance
	cone   *cone
	axis   geom.YAxis
	emit   emitFunc
}

// cast lights origin at weight and every cell within radius that a straight line
// from origin can reach. Lit cells get weight * (1 - d/(radius+1)) times the
// transmittance of the cells crossed on the way. A cell with resistance r passes
// on (1 - r) of its light; cells with r >= 1 are lit and cast shadow. Cells
// outside res are treated as opaque and never emitted.
func (c *shadowCaster) cast(p castParams) {
	p.emit(p.origin, p.weight)

	// Rows past the farthest grid edge hold no cells to light.
	extent := max(p.origin.X, p.res.Width()-1-p.origin.X, p.origin.Y, p.res.Height()-1-p.origin.Y)
	maxRow := int(math.Min(math.Floor(p.radius), float64(extent)))
	if maxRow <= 0 {
		return
	}
	for _, m := range octants {
		c.stack = append(c.stack[:0], scanFrame{row: 1, start: 1, end: 0, transmit: 1})
		for len(c.stack) > 0 {
			f := c.stack[len(c.stack)-1]
			c.stack = c.stack[:len(c.stack)-1]
			c.scan(&p, f, maxRow, m)
		}
	}
}

// scan lights one row of f and queues the next row once per run of cells that
// share a resistance. Opaque runs queue nothing.
func (c *shadowCaster) scan(p *castParams, f scanFrame, maxRow int, m [4]int) {
	if f.start < f.end {
		return
	}
	decay := 1 / (p.radius + 1)
	j := f.row
	dy := -j

	runStart := f.start
	runRes := math.NaN()
	prevRSlope := f.start
	for dx := -j; dx <= 0; dx++ {
		lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
		rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)
		if f.start < rSlope {
			continue
		}
		if f.end > lSlope {
			break
		}

		delta := geom.Point{X: dx*m[0] + dy*m[1], Y: dx*m[2] + dy*m[3]}
		cell := p.origin.Add(delta)

		r := 1.0
		if grid.InBounds(p.res, cell.X, cell.Y) {
			r = max(0, p.res.At(cell.X, cell.Y))
			d := p.metric.Calculate(float64(dx), float64(dy))
			if d <= p.radius && p.cone.contains(delta, p.axis) {
				if v := p.weight * (1 - d*decay) * f.transmit; v > 0 {
					p.emit(cell, v)
				}
			}
		}

		if !math.IsNaN(runRes) && r != runRes {
			c.queue(f, runStart, lSlope, runRes, maxRow)
			runStart = prevRSlope
		}
		runRes = r
		prevRSlope = rSlope
	}
	if !math.IsNaN(runRes) {
		c.queue(f, runStart, f.end, runRes, maxRow)
	}
}

// queue pushes the next row of a run spanning start..end whose cells have
// resistance res.
func (c *shadowCaster) queue(f scanFrame, start, end, res float64, maxRow int) {
	if res >= 1 || f.row >= maxRow || start < end {
		return
	}
	c.stack = append(c.stack, scanFrame{row: f.row + 1, start: start, end: end, transmit: f.transmit * (1 - res)})
}
