package grid

// Array is dense row-major storage implementing View.
type Array[T any] struct {
	cells  []T
	width  int
	height int
}

// NewArray allocates a zeroed width×height array.
func NewArray[T any](width, height int) *Array[T] {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Array[T]{
		cells:  make([]T, width*height),
		width:  width,
		height: height,
	}
}

// CopyOf snapshots any view into a new Array.
func CopyOf[T any](v View[T]) *Array[T] {
	a := NewArray[T](v.Width(), v.Height())
	for y := 0; y < a.height; y++ {
		for x := 0; x < a.width; x++ {
			a.cells[y*a.width+x] = v.At(x, y)
		}
	}
	return a
}

func (a *Array[T]) Width() int  { return a.width }
func (a *Array[T]) Height() int { return a.height }

// InBounds reports whether (x, y) lies inside the array.
func (a *Array[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < a.width && y < a.height
}

// At returns the cell value, or the zero value out of bounds.
func (a *Array[T]) At(x, y int) T {
	if !a.InBounds(x, y) {
		var zero T
		return zero
	}
	return a.cells[y*a.width+x]
}

// Set writes a cell. Out-of-bounds writes are ignored and reported as false.
func (a *Array[T]) Set(x, y int, v T) bool {
	if !a.InBounds(x, y) {
		return false
	}
	a.cells[y*a.width+x] = v
	return true
}

// Cells exposes the backing slice in row-major order.
func (a *Array[T]) Cells() []T {
	return a.cells
}

// Row returns the backing slice for row y.
func (a *Array[T]) Row(y int) []T {
	return a.cells[y*a.width : (y+1)*a.width]
}

// Fill sets every cell to v.
func (a *Array[T]) Fill(v T) {
	for i := range a.cells {
		a.cells[i] = v
	}
}

// Clear zeroes every cell.
func (a *Array[T]) Clear() {
	clear(a.cells)
}

// Resize changes the dimensions. Storage is reallocated only when the dimensions
// change; otherwise the array is cleared in place. Reports whether it reallocated.
func (a *Array[T]) Resize(width, height int) bool {
	if width == a.width && height == a.height {
		a.Clear()
		return false
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	a.cells = make([]T, width*height)
	a.width = width
	a.height = height
	return true
}
