// Package game is the raylib front end: it draws a scene, reads the keyboard
// and exposes lantern controls through raygui.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridsense/camera"
	"github.com/pthm-cable/gridsense/config"
	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/scene"
	"github.com/pthm-cable/gridsense/systems"
	"github.com/pthm-cable/gridsense/telemetry"
)

// Options configures a Game.
type Options struct {
	Seed      int64
	LogStats  bool   // Output periodic stats via slog
	OutputDir string // Directory for CSV logs and config snapshot (empty = disabled)
	Headless  bool   // Skip all raylib calls
}

// Game holds the scene plus viewer state.
type Game struct {
	cfg    *config.Config
	scene  *scene.Scene
	cam    *camera.Camera
	reg    *systems.SystemRegistry
	output *telemetry.OutputManager
	opts   Options

	// View state
	paused    bool
	wander    bool
	showFOV   bool
	showPanel bool
	follow    bool // camera tracks the player
	stepped   bool // a frame is open in the perf collector
	pending   geom.Direction
	last      telemetry.FrameStats
}

// NewGameWithOptions builds the scene and opens telemetry output.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	sc, err := scene.New(cfg, opts.Seed)
	if err != nil {
		return nil, err
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}
	if om != nil {
		slog.Info("writing telemetry", "dir", om.Dir())
	}

	res := sc.Resistance()
	cam := camera.New(
		float32(cfg.Screen.Width-panelWidth-40), float32(cfg.Screen.Height-hudHeight),
		res.Width(), res.Height(), float32(cfg.Screen.CellSize),
	)

	g := &Game{
		cfg:       cfg,
		scene:     sc,
		cam:       cam,
		reg:       systems.NewSystemRegistry(),
		output:    om,
		opts:      opts,
		showFOV:   true,
		showPanel: true,
		follow:    true,
		pending:   geom.None,
	}
	g.followPlayer()
	return g, nil
}

// followPlayer recentres the camera if following is on.
func (g *Game) followPlayer() {
	if !g.follow {
		return
	}
	p := g.scene.Player()
	g.cam.Follow(p.X, g.scene.ScreenRow(p.Y))
}

// Scene returns the simulated scene.
func (g *Game) Scene() *scene.Scene { return g.scene }

// Frame returns the number of completed frames.
func (g *Game) Frame() int32 { return g.scene.Frame() }

// Update reads input and advances one frame unless paused.
func (g *Game) Update() error {
	g.handleInput()
	g.stepped = false
	if g.paused && g.pending == geom.None {
		return nil
	}

	var stats telemetry.FrameStats
	var err error
	if g.wander && g.pending == geom.None {
		stats, err = g.scene.RandomStep()
	} else {
		stats, err = g.scene.Step(g.pending)
	}
	g.pending = geom.None
	if err != nil {
		return err
	}
	g.stepped = true
	g.last = stats
	g.followPlayer()
	g.recordFrame(stats)
	return nil
}

// UpdateHeadless advances one wandering frame without drawing.
func (g *Game) UpdateHeadless() error {
	stats, err := g.scene.RandomStep()
	if err != nil {
		return err
	}
	g.scene.Present(nil)
	g.last = stats
	g.followPlayer()
	g.recordFrame(stats)
	return nil
}

// Draw renders the frame. The render phase is timed when Update stepped.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	if g.stepped {
		g.scene.Present(g.drawWorld)
		g.stepped = false
	} else {
		g.drawWorld()
	}
	g.drawHUD()
	if g.showPanel {
		g.drawPanel()
	}

	rl.EndDrawing()
}

// Unload flushes and closes telemetry output.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
