package grid

import (
	"testing"

	"github.com/pthm-cable/gridsense/geom"
)

func TestArrayOutOfBoundsReadsZero(t *testing.T) {
	a := NewArray[float64](3, 2)
	a.Fill(0.5)

	for _, p := range []geom.Point{{X: -1, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 2}, {X: 0, Y: -5}} {
		if got := a.At(p.X, p.Y); got != 0 {
			t.Errorf("At%v = %f, want 0", p, got)
		}
		if a.Set(p.X, p.Y, 1) {
			t.Errorf("Set%v should report false", p)
		}
	}
	if got := AtPoint[float64](a, geom.Pt(2, 1)); got != 0.5 {
		t.Errorf("AtPoint(2,1) = %f, want 0.5", got)
	}
}

func TestArrayResizeReusesStorage(t *testing.T) {
	a := NewArray[int](4, 4)
	a.Set(1, 1, 7)
	before := &a.Cells()[0]

	if a.Resize(4, 4) {
		t.Error("Resize to same dimensions should not reallocate")
	}
	if &a.Cells()[0] != before {
		t.Error("backing storage changed on same-size resize")
	}
	if a.At(1, 1) != 0 {
		t.Error("same-size resize should clear in place")
	}

	if !a.Resize(5, 3) {
		t.Error("Resize to new dimensions should reallocate")
	}
	if a.Width() != 5 || a.Height() != 3 || len(a.Cells()) != 15 {
		t.Errorf("got %dx%d with %d cells", a.Width(), a.Height(), len(a.Cells()))
	}
}

func TestFromTransparency(t *testing.T) {
	open := NewArray[bool](2, 1)
	open.Set(0, 0, true)

	res := FromTransparency(open)
	if res.At(0, 0) != 0 {
		t.Error("transparent cell should have resistance 0")
	}
	if res.At(1, 0) != 1 {
		t.Error("opaque cell should have resistance 1")
	}
	if res.At(5, 5) != 0 {
		t.Error("out-of-bounds read should be 0")
	}
}

func TestFromWalkability(t *testing.T) {
	walk := NewFunc(3, 2, func(x, y int) bool { return x != 1 })

	res := FromWalkability(walk)
	if res.Width() != 3 || res.Height() != 2 {
		t.Errorf("size = %dx%d, want 3x2", res.Width(), res.Height())
	}
	for y := range 2 {
		if res.At(0, y) != 0 || res.At(2, y) != 0 {
			t.Errorf("walkable cells in row %d should have resistance 0", y)
		}
		if res.At(1, y) != 1 {
			t.Errorf("unwalkable cell (1,%d) should have resistance 1", y)
		}
	}
}

func TestParseRows(t *testing.T) {
	a, err := ParseRows([]string{
		"#.5",
		".@#",
	})
	if err != nil {
		t.Fatal(err)
	}
	want := [][]float64{{1, 0, 0.5}, {0, 0, 1}}
	for y, row := range want {
		for x, v := range row {
			if got := a.At(x, y); got != v {
				t.Errorf("(%d,%d) = %f, want %f", x, y, got, v)
			}
		}
	}

	if _, err := ParseRows([]string{"##", "#"}); err == nil {
		t.Error("expected error for ragged rows")
	}

	x, y, ok := Find([]string{"..", ".@"}, '@')
	if !ok || x != 1 || y != 1 {
		t.Errorf("Find = (%d,%d,%v), want (1,1,true)", x, y, ok)
	}
}

func TestCopyOfAndThreshold(t *testing.T) {
	fn := NewFunc(3, 3, func(x, y int) float64 { return float64(x + y) })
	a := CopyOf[float64](fn)
	if a.At(2, 2) != 4 {
		t.Errorf("CopyOf(2,2) = %f, want 4", a.At(2, 2))
	}
	blocked := Threshold(a, 2)
	if blocked.At(1, 1) || !blocked.At(2, 1) {
		t.Error("Threshold should be strict")
	}
}
