package game

import (
	"fmt"
	"log/slog"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridsense/sense"
	"github.com/pthm-cable/gridsense/telemetry"
)

const panelWidth = 260

// drawPanel draws raygui controls for the player's lantern and the sense map.
func (g *Game) drawPanel() {
	lantern := g.scene.Lantern()
	sm := g.scene.SenseMap()

	panelX := g.cam.ViewportW + 20
	panelY := float32(10)
	slider := func(label, lo, hi string, value, minV, maxV float32, format string) float32 {
		rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		v := gui.SliderBar(rl.Rectangle{X: panelX + 24, Y: panelY, Width: panelWidth - 90, Height: 20}, lo, hi, value, minV, maxV)
		rl.DrawText(fmt.Sprintf(format, value), int32(panelX+panelWidth-40), int32(panelY+2), 16, rl.LightGray)
		panelY += 32
		return v
	}

	rl.DrawText("Lantern", int32(panelX), int32(panelY), 20, rl.RayWhite)
	panelY += 30

	if r := slider("Radius", "0", "20", float32(lantern.Radius()), 0, 20, "%.0f"); int(r) != int(lantern.Radius()) {
		warn("radius", lantern.SetRadius(float64(int(r))))
	}
	if i := slider("Intensity", "0", "1", float32(lantern.Intensity()), 0, 1, "%.2f"); i != float32(lantern.Intensity()) {
		warn("intensity", lantern.SetIntensity(float64(i)))
	}
	if span := slider("Cone span", "0", "360", float32(lantern.Span()), 10, 360, "%.0f"); int(span) != int(lantern.Span()) {
		if span >= 360 {
			lantern.Unrestrict()
		} else {
			warn("span", lantern.Restrict(lantern.Angle(), float64(int(span))))
		}
	}

	rl.DrawText("Algorithm", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	for _, algo := range sense.Algorithms() {
		label := strings.ReplaceAll(algo.String(), "_", " ")
		if algo == lantern.Algorithm() {
			label = "> " + label
		}
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 20, Height: 24}, label) {
			warn("algorithm", lantern.SetAlgorithm(algo))
		}
		panelY += 28
	}
	panelY += 6

	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(lantern.Enabled(), "Lantern off", "Lantern on")) {
		lantern.SetEnabled(!lantern.Enabled())
	}
	if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 110, Height: 30}, toggleText(g.wander, "Stop", "Wander")) {
		g.wander = !g.wander
	}
	panelY += 45

	rl.DrawText("Sense map", int32(panelX), int32(panelY), 20, rl.RayWhite)
	panelY += 30
	if m := slider("Max intensity", "0.1", "3", float32(sm.MaxIntensity()), 0.1, 3, "%.1f"); m != float32(sm.MaxIntensity()) {
		warn("max intensity", sm.SetMaxIntensity(float64(m)))
	}
	if algo := lantern.Algorithm(); algo.IsRipple() {
		p := sm.RippleProfile(algo)
		if d := slider("Ripple damping", "0", "10", float32(p.Damping), 0, 10, "%.2f"); d != float32(p.Damping) {
			p.Damping = float64(d)
			warn("damping", sm.SetRippleProfile(algo, p))
		}
	}

	panelY += 10
	g.drawPhases(panelX, panelY)
}

// drawPhases lists the rolling share of frame time per phase.
func (g *Game) drawPhases(x, y float32) {
	rl.DrawText("Frame phases", int32(x), int32(y), 20, rl.RayWhite)
	y += 28
	perf := g.scene.Perf().Stats()
	for _, line := range g.phaseLines(perf) {
		rl.DrawText(line, int32(x), int32(y), 16, rl.LightGray)
		y += 20
	}
}

// phaseLines formats perf stats with the registry's display names.
func (g *Game) phaseLines(perf telemetry.PerfStats) []string {
	lines := make([]string, 0, len(telemetry.Phases()))
	for _, ph := range telemetry.Phases() {
		lines = append(lines, fmt.Sprintf("%-10s %6dus %5.1f%%",
			g.reg.GetName(ph.String()), perf.PhaseAvg[ph].Microseconds(), perf.PhasePct[ph]))
	}
	return lines
}

func toggleText(on bool, ifOn, ifOff string) string {
	if on {
		return ifOn
	}
	return ifOff
}

func warn(control string, err error) {
	if err != nil {
		slog.Warn("control rejected", "control", control, "error", err)
	}
}
