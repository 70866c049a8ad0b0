package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snowfall/config"
	"github.com/pthm-cable/snowfall/game"
	"github.com/pthm-cable/snowfall/platform"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	overlay := flag.Bool("overlay", false, "Snow over the real desktop (transparent, topmost, click-through)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for bookmark snapshots")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	restore := flag.String("restore", "", "Resume from a snapshot file")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

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
		rngSeed = uint64(time.Now().UnixNano())
	}

	opts := game.Options{
		Seed:           rngSeed,
		Headless:       *headless,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		SnapshotDir:    *snapshotDir,
		RestorePath:    *restore,
	}

	if *headless {
		runHeadless(opts, *maxTicks)
		return
	}

	wantOverlay := *overlay || cfg.Screen.Overlay
	var src *platform.Source
	if wantOverlay {
		var err error
		src, err = platform.NewSource(cfg.Surfaces.TaskbarClass)
		switch {
		case errors.Is(err, platform.ErrUnsupported):
			slog.Warn("overlay unavailable, falling back to sandbox", "error", err)
			wantOverlay = false
		case err != nil:
			slog.Error("failed to open desktop", "error", err)
			os.Exit(1)
		}
	}

	if wantOverlay {
		screen := src.Screen()
		rl.SetConfigFlags(rl.FlagWindowTransparent | rl.FlagWindowUndecorated |
			rl.FlagWindowTopmost | rl.FlagWindowMousePassthrough)
		rl.InitWindow(screen.Width, screen.Height, "Snowfall")
		rl.SetWindowPosition(int(screen.X), int(screen.Y))

		opts.Source = src
		opts.Width = int(screen.Width)
		opts.Height = int(screen.Height)
		opts.OwnHandle = uintptr(unsafe.Pointer(rl.GetWindowHandle()))
	} else {
		rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Snowfall")
	}
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Derived.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	slog.Info("starting simulation", "seed", rngSeed, "overlay", wantOverlay, "max_ticks", *maxTicks)

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}

// runHeadless runs the simulation on the virtual desktop without a window.
func runHeadless(opts game.Options, maxTicks int) {
	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"stats_window", opts.StatsWindowSec,
		"max_ticks", maxTicks,
	)

	for {
		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return
		}
	}
}
