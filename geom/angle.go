package geom

import "math"

// Angle returns the direction of delta in degrees within [0, 360).
// 0 points Right and angles turn clockwise on screen, so Down is 90 and Up is 270
// under either axis convention. The zero delta has angle 0.
func Angle(delta Point, axis YAxis) float64 {
	dy := float64(delta.Y)
	if axis == YUp {
		dy = -dy
	}
	a := math.Atan2(dy, float64(delta.X)) * 180 / math.Pi
	if a < 0 {
		a += 360
	}
	return a
}

// AngleDiff returns the signed smallest difference a-b in degrees within [-180, 180).
func AngleDiff(a, b float64) float64 {
	d := math.Mod(a-b+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}
