package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridsense/config"
	"github.com/pthm-cable/gridsense/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "Map seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		Headless:  *headless,
	}

	if *headless {
		// Headless mode - no raylib needed, the player wanders
		g, err := game.NewGameWithOptions(cfg, opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless run", "seed", rngSeed, "max_frames", *maxFrames)
		for {
			if err := g.UpdateHeadless(); err != nil {
				slog.Error("frame failed", "frame", g.Frame(), "error", err)
				return
			}
			if *maxFrames > 0 && int(g.Frame()) >= *maxFrames {
				slog.Info("max frames reached", "frame", g.Frame(), "perf", g.Scene().Perf().Stats())
				return
			}
		}
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "gridsense")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		if err := g.Update(); err != nil {
			slog.Error("frame failed", "frame", g.Frame(), "error", err)
			return
		}
		g.Draw()

		if *maxFrames > 0 && int(g.Frame()) >= *maxFrames {
			break
		}
	}
}
