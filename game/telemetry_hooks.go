package game

import (
	"log/slog"

	"github.com/pthm-cable/gridsense/telemetry"
)

// recordFrame writes the frame to CSV and, every stats interval, logs and
// writes the rolling perf stats.
func (g *Game) recordFrame(stats telemetry.FrameStats) {
	if err := g.output.WriteFrame(stats); err != nil {
		slog.Error("failed to write frame", "error", err)
	}

	interval := int32(g.cfg.Telemetry.StatsInterval)
	if interval <= 0 || (stats.Frame+1)%interval != 0 {
		return
	}
	perf := g.scene.Perf().Stats()

	if g.opts.LogStats {
		slog.Info("stats",
			"frame", stats,
			"vision", g.scene.Vision(),
			"lantern", g.scene.Lantern(),
			"perf", perf,
		)
	}
	if err := g.output.WritePerf(perf, stats.Frame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
