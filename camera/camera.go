// Package camera provides a 2D camera over a bounded cell grid.
package camera

// Camera controls the viewport into the map. Positions are in cells with
// rows in display order; Zoom is the size of one cell in pixels.
type Camera struct {
	// Position is the camera center in cell coordinates
	X, Y float32

	// Pixels per cell
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Map dimensions in cells
	WorldW, WorldH float32

	// Zoom constraints
	MinZoom, MaxZoom float32

	defaultZoom float32
}

// New creates a camera centered on the map.
func New(viewportW, viewportH float32, worldW, worldH int, zoom float32) *Camera {
	c := &Camera{
		Zoom:        zoom,
		WorldW:      float32(worldW),
		WorldH:      float32(worldH),
		MaxZoom:     48,
		defaultZoom: zoom,
	}
	c.Resize(viewportW, viewportH)
	c.Reset()
	return c
}

// CellToScreen returns the screen position of the top-left corner of a cell.
func (c *Camera) CellToScreen(x, y float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (x-c.X)*c.Zoom
	sy = c.ViewportH/2 + (y-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToCell returns the cell under a screen position. ok is false outside
// the viewport or the map.
func (c *Camera) ScreenToCell(sx, sy float32) (x, y int, ok bool) {
	if sx < 0 || sy < 0 || sx >= c.ViewportW || sy >= c.ViewportH {
		return 0, 0, false
	}
	fx := c.X + (sx-c.ViewportW/2)/c.Zoom
	fy := c.Y + (sy-c.ViewportH/2)/c.Zoom
	if fx < 0 || fy < 0 || fx >= c.WorldW || fy >= c.WorldH {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

// VisibleCells returns the half-open cell range [x0,x1)×[y0,y1) that
// overlaps the viewport, clipped to the map.
func (c *Camera) VisibleCells() (x0, y0, x1, y1 int) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	x0 = max(int(c.X-halfW), 0)
	y0 = max(int(c.Y-halfH), 0)
	x1 = min(int(c.X+halfW)+1, int(c.WorldW))
	y1 = min(int(c.Y+halfH)+1, int(c.WorldH))
	return x0, y0, x1, y1
}

// Resize updates viewport dimensions and recalculates zoom constraints.
// The smallest zoom fits the whole map in the viewport.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = min(viewportW/c.WorldW, viewportH/c.WorldH)
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clampCenter()
}

// Follow centers the camera on a cell as far as the map edges allow.
func (c *Camera) Follow(x, y int) {
	c.X = float32(x) + 0.5
	c.Y = float32(y) + 0.5
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the map center and initial zoom.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.SetZoom(c.defaultZoom)
}

// clampCenter keeps the view inside the map, or centred on it when the map
// is smaller than the view along an axis.
func (c *Camera) clampCenter() {
	c.X = clampAxis(c.X, c.ViewportW/(2*c.Zoom), c.WorldW)
	c.Y = clampAxis(c.Y, c.ViewportH/(2*c.Zoom), c.WorldH)
}

func clampAxis(center, half, size float32) float32 {
	if 2*half >= size {
		return size / 2
	}
	return clamp(center, half, size-half)
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
