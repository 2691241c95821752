// Command termview explores a generated map in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/gridsense/config"
	"github.com/pthm-cable/gridsense/scene"
	"github.com/pthm-cable/gridsense/telemetry"
	"github.com/pthm-cable/gridsense/termview"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "Map seed (0 = time-based)")
	tick := flag.Duration("tick", 100*time.Millisecond, "Wander step interval")
	logPath := flag.String("log", "", "Write JSON logs to this file (the terminal is in use)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	flag.Parse()

	if err := run(*configPath, *seed, *tick, *logPath, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "termview: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, seed int64, tick time.Duration, logPath, outputDir string) error {
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	if err := config.Init(configPath); err != nil {
		return err
	}
	cfg := config.Cfg()
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sc, err := scene.New(cfg, seed)
	if err != nil {
		return err
	}
	om, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return err
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	view := termview.New(screen, sc)
	view.OnFrame = func(stats telemetry.FrameStats) {
		if err := om.WriteFrame(stats); err != nil {
			slog.Error("failed to write frame", "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting terminal view", "seed", seed)
	err = view.Run(ctx, tick)
	slog.Info("stopped", "frame", sc.Frame(), "perf", sc.Perf().Stats())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
