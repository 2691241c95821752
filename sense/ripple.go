package sense

import (
	"fmt"
	"math"

	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/grid"
	"github.com/zyedidia/generic/heap"
)

// MinIntensity is the smallest contribution the ripple engine keeps propagating.
const MinIntensity = 1e-6

// RippleProfile controls how freely ripple light bends around obstacles.
//
// Each step outward is scored by how far the stepping cell sits from the straight
// line between the source and the destination. Offsets up to Tolerance cost
// nothing; beyond it the contribution is scaled by exp(-Damping * excess).
type RippleProfile struct {
	Damping   float64 `yaml:"damping"`
	Tolerance float64 `yaml:"tolerance"`
}

// DefaultTolerance admits every straight-line predecessor on an open grid.
const DefaultTolerance = 0.75

// DefaultProfile returns the built-in profile for a ripple algorithm.
func DefaultProfile(a Algorithm) RippleProfile {
	damping := 3.0
	switch a {
	case RippleTight:
		damping = 6
	case RippleLoose:
		damping = 1.5
	case RippleVeryLoose:
		damping = 0.75
	}
	return RippleProfile{Damping: damping, Tolerance: DefaultTolerance}
}

// Validate rejects negative or non-finite parameters.
func (p RippleProfile) Validate() error {
	for _, v := range []float64{p.Damping, p.Tolerance} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: damping=%v tolerance=%v", ErrInvalidProfile, p.Damping, p.Tolerance)
		}
	}
	return nil
}

// spread scores a step from cell offset from to cell offset to, both relative to
// the source.
func (p RippleProfile) spread(from, to geom.Point) float64 {
	rx, ry := float64(to.X), float64(to.Y)
	cross := math.Abs(rx*float64(from.Y) - ry*float64(from.X))
	lateral := cross / math.Hypot(rx, ry)
	if lateral <= p.Tolerance {
		return 1
	}
	return math.Exp(-p.Damping * (lateral - p.Tolerance))
}

var (
	cardinalSteps = geom.Cardinals.Neighbors(geom.YDown)
	eightWaySteps = geom.EightWay.Neighbors(geom.YDown)
)

// rippleParams bundles the per-call inputs of a spread.
type rippleParams struct {
	res       grid.View[float64]
	radius    float64
	weight    float64
	metric    geom.Distance
	adjacency geom.AdjacencyRule
	profile   RippleProfile
	cone      *cone
	axis      geom.YAxis
}

type rippleItem struct {
	idx  int
	dist float64
}

// rippler floods light outward from a source in order of distance. Buffers are
// sized to the window and reused.
type rippler struct {
	frontier *heap.Heap[rippleItem]
	queued   []bool
}

// spread fills w, which must already be reset on the source position.
//
// Light only moves to neighbors strictly farther from the source, so every cell
// is expanded once and the result does not depend on neighbor order. A cell's
// value is the best candidate offered by any predecessor:
//
//	I(c) * (1 - r(c)) * f(d(n)) / f(d(c)) * spread
//
// where f(d) = 1 - d/(radius+1). Resistance applies on leaving a cell, so walls
// are lit but pass nothing on. The source cell always transmits.
func (rp *rippler) spread(w *window, p rippleParams) {
	n := len(w.light)
	if cap(rp.queued) < n {
		rp.queued = make([]bool, n)
	} else {
		rp.queued = rp.queued[:n]
		clear(rp.queued)
	}
	for rp.frontier != nil && rp.frontier.Size() > 0 {
		rp.frontier.Pop()
	}

	origin := w.center
	ci, _ := w.index(origin)
	w.light[ci] = p.weight
	rp.queued[ci] = true
	rp.push(rippleItem{idx: ci})

	steps := eightWaySteps
	if p.adjacency == geom.Cardinals {
		steps = cardinalSteps
	}
	decay := 1 / (p.radius + 1)

	for {
		it, ok := rp.pop()
		if !ok {
			break
		}
		lit := w.light[it.idx]
		if lit < MinIntensity {
			continue
		}
		cell := w.point(it.idx)
		transmit := 1.0
		if cell != origin {
			transmit = 1 - grid.AtPoint(p.res, cell)
			if transmit <= 0 {
				continue
			}
		}
		from := cell.Sub(origin)
		base := lit * transmit / (1 - it.dist*decay)

		for _, step := range steps {
			next := cell.Add(step)
			if !grid.InBounds(p.res, next.X, next.Y) {
				continue
			}
			delta := next.Sub(origin)
			d := p.metric.Calculate(float64(delta.X), float64(delta.Y))
			if d > p.radius || d <= it.dist || !p.cone.contains(delta, p.axis) {
				continue
			}
			v := base * (1 - d*decay) * p.profile.spread(from, delta)
			if v < MinIntensity {
				continue
			}
			i, ok := w.index(next)
			if !ok {
				continue
			}
			if v > w.light[i] {
				w.light[i] = v
			}
			if !rp.queued[i] {
				rp.queued[i] = true
				rp.push(rippleItem{idx: i, dist: d})
			}
		}
	}
}

func (rp *rippler) push(it rippleItem) {
	if rp.frontier == nil {
		rp.frontier = heap.New[rippleItem](func(a, b rippleItem) bool { return a.dist < b.dist })
	}
	rp.frontier.Push(it)
}

func (rp *rippler) pop() (rippleItem, bool) {
	if rp.frontier == nil {
		return rippleItem{}, false
	}
	return rp.frontier.Pop()
}
