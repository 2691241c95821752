package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridsense/terrain"
)

var kindColors = [...]rl.Color{
	terrain.Floor:   {R: 58, G: 54, B: 62, A: 255},
	terrain.Foliage: {R: 46, G: 96, B: 52, A: 255},
	terrain.Wall:    {R: 120, G: 108, B: 96, A: 255},
}

var lampTint = rl.Color{R: 255, G: 196, B: 112, A: 255}

const (
	ambient     = 0.25 // brightness of an unlit cell
	tintShare   = 0.4  // how far full light pulls a cell towards lampTint
	unseenShade = 0.35 // brightness multiplier outside the field of view
)

// cellColor shades a terrain cell by its light level and visibility.
func cellColor(kind terrain.Kind, light float64, visible bool) rl.Color {
	base := kindColors[kind]
	l := float32(min(max(light, 0), 1))
	shade := ambient + (1-ambient)*l
	if !visible {
		shade *= unseenShade
	}
	return rl.Color{
		R: channel(base.R, lampTint.R, l, shade),
		G: channel(base.G, lampTint.G, l, shade),
		B: channel(base.B, lampTint.B, l, shade),
		A: 255,
	}
}

func channel(base, tint uint8, l, shade float32) uint8 {
	v := (float32(base)*(1-tintShare*l) + float32(tint)*tintShare*l) * shade
	return uint8(min(v, 255))
}
