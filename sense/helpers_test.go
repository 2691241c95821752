package sense

import (
	"iter"
	"math"
	"testing"

	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/grid"
)

const epsilon = 1e-9

func falloff(d, radius float64) float64 {
	return 1 - d/(radius+1)
}

func collect(seq iter.Seq[geom.Point]) map[geom.Point]bool {
	out := make(map[geom.Point]bool)
	for p := range seq {
		out[p] = true
	}
	return out
}

// litCells returns every cell of v with a positive value.
func litCells(v grid.View[float64]) map[geom.Point]bool {
	out := make(map[geom.Point]bool)
	for y := range v.Height() {
		for x := range v.Width() {
			if v.At(x, y) > 0 {
				out[geom.Pt(x, y)] = true
			}
		}
	}
	return out
}

func sameSet(t *testing.T, name string, got, want map[geom.Point]bool) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s: expected %d cells, got %d", name, len(want), len(got))
	}
	for p := range want {
		if !got[p] {
			t.Errorf("%s: missing %v", name, p)
		}
	}
	for p := range got {
		if !want[p] {
			t.Errorf("%s: unexpected %v", name, p)
		}
	}
}

func minus(a, b map[geom.Point]bool) map[geom.Point]bool {
	out := make(map[geom.Point]bool)
	for p := range a {
		if !b[p] {
			out[p] = true
		}
	}
	return out
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}

// dungeon is a small walled map with pillars and a partial screen ('5').
var dungeon = []string{
	"#################",
	"#...............#",
	"#..#.......##...#",
	"#..#............#",
	"#.......5.......#",
	"#.....#.........#",
	"#..........#....#",
	"#...##..........#",
	"#...............#",
	"#.........#.....#",
	"#..#............#",
	"#......555......#",
	"#...............#",
	"#..##.......#...#",
	"#...........#...#",
	"#...............#",
	"#################",
}
