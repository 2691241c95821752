// Package sense computes field of view and multi-source sense propagation
// (light, sound, scent) over 2D resistance grids.
//
// Resistance is read through a grid.View[float64]: 0 is fully transparent, 1 and
// above fully blocking. A cell with resistance r is itself lit in full and passes
// on (1 - r) of its light, so both engines dim what lies behind foliage the same
// way. Engines keep their output
// buffers between calculations and only zero the cells they lit last time.
package sense

import (
	"fmt"
	"iter"

	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/grid"
)

// FOV is a shadowcasting field-of-view calculator bound to one resistance view.
// It is not safe for concurrent use; separate FOVs may share a view.
type FOV struct {
	// YAxis decides which way cone angles turn. Defaults to YDown.
	YAxis geom.YAxis

	resistance grid.View[float64]
	light      *grid.Array[float64]
	caster     shadowCaster
	vis        visibility
}

// NewFOV creates a calculator over res. The output grid tracks res's size.
func NewFOV(res grid.View[float64]) *FOV {
	f := &FOV{resistance: res, light: grid.NewArray[float64](0, 0), vis: newVisibility()}
	if res != nil {
		f.light.Resize(res.Width(), res.Height())
	}
	return f
}

// Calculate lights everything visible from origin within radius.
func (f *FOV) Calculate(origin geom.Point, radius float64, shape geom.Radius) error {
	return f.calculate(origin, radius, shape, nil)
}

// CalculateCone is Calculate restricted to span degrees centred on angle.
// Angle 0 points along +X; see geom.Angle.
func (f *FOV) CalculateCone(origin geom.Point, radius float64, shape geom.Radius, angle, span float64) error {
	if err := checkCone(angle, span); err != nil {
		return err
	}
	return f.calculate(origin, radius, shape, newCone(angle, span))
}

func (f *FOV) calculate(origin geom.Point, radius float64, shape geom.Radius, c *cone) error {
	if f.resistance == nil {
		return ErrNilResistance
	}
	if err := checkRadius(radius); err != nil {
		return err
	}
	if !grid.InBounds(f.resistance, origin.X, origin.Y) {
		return fmt.Errorf("%w: %v", ErrOriginOutOfBounds, origin)
	}

	w, h := f.resistance.Width(), f.resistance.Height()
	if w != f.light.Width() || h != f.light.Height() {
		f.light.Resize(w, h)
	} else {
		f.vis.clear(f.light)
	}
	f.vis.rotate()

	f.caster.cast(castParams{
		res:    f.resistance,
		origin: origin,
		radius: radius,
		weight: 1,
		metric: shape.Distance(),
		cone:   c,
		axis:   f.YAxis,
		emit:   f.emit,
	})
	return nil
}

func (f *FOV) emit(p geom.Point, v float64) {
	if v > f.light.At(p.X, p.Y) {
		f.light.Set(p.X, p.Y, v)
	}
	f.vis.mark(p)
}

func (f *FOV) Width() int  { return f.light.Width() }
func (f *FOV) Height() int { return f.light.Height() }

// At returns the visibility of (x, y) in [0, 1], or 0 outside the grid.
func (f *FOV) At(x, y int) float64 { return f.light.At(x, y) }

// AtPoint is At for a geom.Point.
func (f *FOV) AtPoint(p geom.Point) float64 { return f.light.At(p.X, p.Y) }

// Visible reports whether (x, y) was lit by the last calculation.
func (f *FOV) Visible(x, y int) bool { return f.light.At(x, y) > 0 }

// Light exposes the result grid read-only.
func (f *FOV) Light() grid.View[float64] { return f.light }

// BooleanView presents the result as a visible/not-visible view that follows
// later calculations.
func (f *FOV) BooleanView() grid.View[bool] { return boolView{f} }

// CurrentFOV yields every cell lit by the last calculation.
func (f *FOV) CurrentFOV() iter.Seq[geom.Point] { return f.vis.all() }

// NewlySeen yields cells lit now that were dark in the calculation before.
func (f *FOV) NewlySeen() iter.Seq[geom.Point] { return f.vis.newlySeen() }

// NewlyUnseen yields cells lit in the calculation before that are dark now.
func (f *FOV) NewlyUnseen() iter.Seq[geom.Point] { return f.vis.newlyUnseen() }

// VisibleCount is the number of cells lit by the last calculation.
func (f *FOV) VisibleCount() int { return f.vis.current.Size() }

type boolView struct{ f *FOV }

func (b boolView) Width() int       { return b.f.Width() }
func (b boolView) Height() int      { return b.f.Height() }
func (b boolView) At(x, y int) bool { return b.f.Visible(x, y) }
