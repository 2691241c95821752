package sense

import (
	"iter"

	"github.com/zyedidia/generic/mapset"

	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/grid"
)

// visibility retains the cells with non-zero intensity from the last two calculations.
type visibility struct {
	current  mapset.Set[geom.Point]
	previous mapset.Set[geom.Point]
}

func newVisibility() visibility {
	return visibility{current: mapset.New[geom.Point](), previous: mapset.New[geom.Point]()}
}

// clear zeroes every cell of light that the current set says is lit.
func (v *visibility) clear(light *grid.Array[float64]) {
	v.current.Each(func(p geom.Point) {
		light.Set(p.X, p.Y, 0)
	})
}

// rotate starts a new calculation: previous := current, current := empty.
func (v *visibility) rotate() {
	v.previous = v.current
	v.current = mapset.New[geom.Point]()
}

func (v *visibility) mark(p geom.Point) {
	v.current.Put(p)
}

func (v *visibility) all() iter.Seq[geom.Point] {
	return func(yield func(geom.Point) bool) {
		each(v.current, nil, yield)
	}
}

func (v *visibility) newlySeen() iter.Seq[geom.Point] {
	return func(yield func(geom.Point) bool) {
		each(v.current, &v.previous, yield)
	}
}

func (v *visibility) newlyUnseen() iter.Seq[geom.Point] {
	return func(yield func(geom.Point) bool) {
		each(v.previous, &v.current, yield)
	}
}

// each yields the members of s missing from exclude, if given.
func each(s mapset.Set[geom.Point], exclude *mapset.Set[geom.Point], yield func(geom.Point) bool) {
	stopped := false
	s.Each(func(p geom.Point) {
		if stopped || (exclude != nil && exclude.Has(p)) {
			return
		}
		stopped = !yield(p)
	})
}
