// Map preview tool - interactive terrain generation with sliders and a probe
// light at the spawn point.
//
// Usage: go run ./cmd/mappreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/gridsense/config"
	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/grid"
	"github.com/pthm-cable/gridsense/sense"
	"github.com/pthm-cable/gridsense/terrain"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	previewWidth = 720
	panelWidth   = windowWidth - previewWidth - 40
)

// preview holds the generated map and the probe light over it.
type preview struct {
	params terrain.Params
	algo   sense.Algorithm
	radius float64

	res      *grid.Array[float64]
	senseMap *sense.SenseMap
	pixels   []color.RGBA
}

func (p *preview) regenerate() error {
	p.res = terrain.Generate(p.params)
	p.senseMap = sense.NewSenseMap(p.res)
	src, err := sense.NewSenseSource(p.algo, p.params.Center(), p.radius, geom.Circle, 1)
	if err != nil {
		return err
	}
	if err := p.senseMap.AddSenseSource(src); err != nil {
		return err
	}
	if err := p.senseMap.Calculate(); err != nil {
		return err
	}

	p.pixels = p.pixels[:0]
	for y := range p.res.Height() {
		for x := range p.res.Width() {
			p.pixels = append(p.pixels, pixel(terrain.Classify(p.res.At(x, y)), p.senseMap.At(x, y)))
		}
	}
	return nil
}

func pixel(kind terrain.Kind, light float64) color.RGBA {
	var c color.RGBA
	switch kind {
	case terrain.Wall:
		c = color.RGBA{R: 130, G: 118, B: 104, A: 255}
	case terrain.Foliage:
		c = color.RGBA{R: 52, G: 110, B: 60, A: 255}
	default:
		c = color.RGBA{R: 36, G: 34, B: 42, A: 255}
	}
	boost := uint8(min(light, 1) * 160)
	c.R = uint8(min(int(c.R)+int(boost), 255))
	c.G = uint8(min(int(c.G)+int(boost)*3/4, 255))
	return c
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	flag.Parse()
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	p := &preview{
		params: terrain.ParamsFromConfig(cfg.Map, 12345),
		algo:   cfg.Derived.Lantern.Algorithm,
		radius: 12,
	}
	if err := p.regenerate(); err != nil {
		log.Fatal(err)
	}

	rl.InitWindow(windowWidth, windowHeight, "Map Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	w, h := int32(p.params.Width), int32(p.params.Height)
	img := rl.GenImageColor(int(w), int(h), rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)
	rl.UpdateTexture(texture, p.pixels)

	previewHeight := float32(previewWidth) * float32(h) / float32(w)
	needsRegen := false

	for !rl.WindowShouldClose() {
		if needsRegen {
			if err := p.regenerate(); err != nil {
				log.Printf("regenerate: %v", err)
			}
			rl.UpdateTexture(texture, p.pixels)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(w), Height: float32(h)},
			rl.Rectangle{X: 10, Y: 10, Width: previewWidth, Height: previewHeight},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewWidth, int32(previewHeight), rl.DarkGray)

		counts := map[terrain.Kind]int{}
		for _, r := range p.res.Cells() {
			counts[terrain.Classify(r)]++
		}
		total := float64(len(p.res.Cells()))
		statsY := int32(previewHeight + 25)
		rl.DrawText(fmt.Sprintf("Floor: %.0f%%  Foliage: %.0f%%  Wall: %.0f%%",
			100*float64(counts[terrain.Floor])/total, 100*float64(counts[terrain.Foliage])/total,
			100*float64(counts[terrain.Wall])/total), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Probe: %s radius %.0f, %d cells lit", p.algo, p.radius, p.senseMap.SensedCount()),
			15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewWidth + 30)
		panelY := float32(10)
		rl.DrawText("Terrain Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		slider := func(label, lo, hi string, value, minV, maxV float32, format string) float32 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(rl.Rectangle{X: panelX + 30, Y: panelY, Width: float32(panelWidth - 110), Height: 20}, lo, hi, value, minV, maxV)
			rl.DrawText(fmt.Sprintf(format, value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			panelY += 35
			return v
		}
		setF := func(dst *float64, v float32) {
			if float64(v) != *dst {
				*dst = float64(v)
				needsRegen = true
			}
		}

		setF(&p.params.Scale, slider("Scale (base noise frequency)", "0.01", "0.2", float32(p.params.Scale), 0.01, 0.2, "%.3f"))
		if o := int(slider("Octaves", "1", "6", float32(p.params.Octaves), 1, 6, "%.0f")); o != p.params.Octaves {
			p.params.Octaves = o
			needsRegen = true
		}
		setF(&p.params.Lacunarity, slider("Lacunarity", "1.5", "4", float32(p.params.Lacunarity), 1.5, 4, "%.2f"))
		setF(&p.params.Gain, slider("Gain", "0.2", "0.9", float32(p.params.Gain), 0.2, 0.9, "%.2f"))
		setF(&p.params.WallLevel, slider("Wall level", "-0.5", "1", float32(p.params.WallLevel), -0.5, 1, "%.2f"))
		setF(&p.params.FoliageLevel, slider("Foliage level", "-0.5", "1", float32(p.params.FoliageLevel), -0.5, 1, "%.2f"))
		setF(&p.params.FoliageResist, slider("Foliage resistance", "0", "0.99", float32(p.params.FoliageResist), 0, 0.99, "%.2f"))
		setF(&p.radius, slider("Probe radius", "1", "30", float32(p.radius), 1, 30, "%.0f"))

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 150, Height: 30}, "Random Seed") {
			p.params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 160, Y: panelY, Width: 150, Height: 30}, "Next Algorithm") {
			all := sense.Algorithms()
			for i, a := range all {
				if a == p.algo {
					p.algo = all[(i+1)%len(all)]
					break
				}
			}
			needsRegen = true
		}
		panelY += 45

		mc := cfg.Map
		mc.Scale, mc.Octaves, mc.Lacunarity, mc.Gain = p.params.Scale, p.params.Octaves, p.params.Lacunarity, p.params.Gain
		mc.WallLevel, mc.FoliageLevel, mc.FoliageResist = p.params.WallLevel, p.params.FoliageLevel, p.params.FoliageResist
		snippet, err := yaml.Marshal(map[string]config.MapConfig{"map": mc})
		if err != nil {
			log.Fatal(err)
		}

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		rl.DrawText(string(snippet), int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText(fmt.Sprintf("Seed %d. Press C to copy YAML to clipboard", p.params.Seed), int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(string(snippet))
		}

		rl.EndDrawing()
	}
}
