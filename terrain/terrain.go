// Package terrain generates resistance grids for the demo front ends.
package terrain

import (
	"math/rand"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/gridsense/config"
	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/grid"
)

// Kind classifies a cell for rendering and movement.
type Kind uint8

const (
	Floor   Kind = iota
	Foliage      // Partially resistant, walkable
	Wall         // Blocks light and movement
)

// Classify maps a resistance value to its Kind.
func Classify(r float64) Kind {
	switch {
	case r >= 1:
		return Wall
	case r > 0:
		return Foliage
	default:
		return Floor
	}
}

// Glyph returns the terminal rune for the kind.
func (k Kind) Glyph() rune {
	switch k {
	case Wall:
		return '#'
	case Foliage:
		return '"'
	default:
		return '.'
	}
}

func (k Kind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Foliage:
		return "foliage"
	default:
		return "floor"
	}
}

// Walkable reports whether something may stand on the cell.
func Walkable(res grid.View[float64], p geom.Point) bool {
	return grid.InBounds(res, p.X, p.Y) && Classify(grid.AtPoint(res, p)) != Wall
}

// Params controls Generate.
type Params struct {
	Width, Height int
	Seed          int64

	Scale      float64 // Base noise frequency
	Octaves    int
	Lacunarity float64
	Gain       float64

	WallLevel     float64
	FoliageLevel  float64
	FoliageResist float64
	SpawnClearing int
}

// ParamsFromConfig copies the map section of cfg.
func ParamsFromConfig(mc config.MapConfig, seed int64) Params {
	return Params{
		Width:         mc.Width,
		Height:        mc.Height,
		Seed:          seed,
		Scale:         mc.Scale,
		Octaves:       mc.Octaves,
		Lacunarity:    mc.Lacunarity,
		Gain:          mc.Gain,
		WallLevel:     mc.WallLevel,
		FoliageLevel:  mc.FoliageLevel,
		FoliageResist: mc.FoliageResist,
		SpawnClearing: mc.SpawnClearing,
	}
}

// Center is the middle cell of a generated map, always open floor.
func (p Params) Center() geom.Point {
	return geom.Pt(p.Width/2, p.Height/2)
}

// Generate builds a resistance grid from layered simplex noise. The border is
// solid wall and a circular clearing around Center is left open. The output
// depends only on p.
func Generate(p Params) *grid.Array[float64] {
	res := grid.NewArray[float64](p.Width, p.Height)
	noise := opensimplex.New(p.Seed)
	center := p.Center()
	clearing := float64(p.SpawnClearing)

	for y := range p.Height {
		for x := range p.Width {
			if x == 0 || y == 0 || x == p.Width-1 || y == p.Height-1 {
				res.Set(x, y, 1)
				continue
			}
			if geom.Euclidean.Between(center, geom.Pt(x, y)) <= clearing {
				continue
			}
			n := fbm(noise, float64(x), float64(y), p)
			switch {
			case n > p.WallLevel:
				res.Set(x, y, 1)
			case n > p.FoliageLevel:
				res.Set(x, y, p.FoliageResist)
			}
		}
	}
	return res
}

// fbm sums octaves of noise, normalized back to roughly [-1, 1].
func fbm(noise opensimplex.Noise, x, y float64, p Params) float64 {
	sum, norm := 0.0, 0.0
	amp := 1.0
	freq := p.Scale
	for o := 0; o < max(p.Octaves, 1); o++ {
		sum += amp * noise.Eval2(x*freq, y*freq)
		norm += amp
		freq *= p.Lacunarity
		amp *= p.Gain
	}
	return sum / norm
}

// OpenSpot picks a random floor cell. It gives up after a bounded number of
// random probes and falls back to a scan; ok is false only when no floor exists.
func OpenSpot(res grid.View[float64], rng *rand.Rand) (p geom.Point, ok bool) {
	w, h := res.Width(), res.Height()
	if w == 0 || h == 0 {
		return geom.Point{}, false
	}
	for range 256 {
		p = geom.Pt(rng.Intn(w), rng.Intn(h))
		if Classify(grid.AtPoint(res, p)) == Floor {
			return p, true
		}
	}
	for y := range h {
		for x := range w {
			if Classify(res.At(x, y)) == Floor {
				return geom.Pt(x, y), true
			}
		}
	}
	return geom.Point{}, false
}
