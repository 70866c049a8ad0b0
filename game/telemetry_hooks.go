package game

import (
	"log/slog"

	"github.com/pthm-cable/snowfall/telemetry"
)

// bookmarkHistory is the number of stats windows the detector remembers.
const bookmarkHistory = 12

// initTelemetry sets up collectors and optional CSV output.
func (g *Game) initTelemetry(opts Options) {
	windowSec := opts.StatsWindowSec
	if windowSec <= 0 {
		windowSec = g.cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(windowSec, float32(g.cfg.Derived.TickSeconds))
	g.perfCollector = telemetry.NewPerfCollector(g.cfg.Telemetry.PerfCollectorWindow)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(bookmarkHistory)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(g.cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.field.Snapshot(nil), g.surfaces)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		g.saveSnapshot(&bm)
	}
}

// saveSnapshot writes the current state. Bookmark snapshots go to the
// snapshot dir, else to the output dir; manual ones always produce a file.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	snapshot := telemetry.NewSnapshot(g.field, g.bounds, g.surfaces, g.tick, g.seed)
	snapshot.Bookmark = bookmark

	var (
		path string
		err  error
	)
	switch {
	case g.snapshotDir != "":
		path, err = telemetry.SaveSnapshot(snapshot, g.snapshotDir)
	case g.outputManager != nil:
		path, err = g.outputManager.WriteSnapshot(snapshot)
	case bookmark == nil:
		path, err = telemetry.SaveSnapshot(snapshot, "snapshots")
	default:
		return
	}
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// restoreSnapshot resumes from a saved snapshot, falling back to a fresh
// prewarmed field if it cannot be read.
func (g *Game) restoreSnapshot(path string) {
	snapshot, err := telemetry.LoadSnapshot(path)
	if err != nil {
		slog.Error("failed to load snapshot", "path", path, "error", err)
		g.field.Prewarm(g.bounds)
		return
	}
	snapshot.Restore(g.field)
	g.tick = snapshot.Tick
	if snapshot.Width != g.bounds.Width || snapshot.Height != g.bounds.Height {
		slog.Warn("snapshot screen size differs",
			"snapshot_width", snapshot.Width,
			"snapshot_height", snapshot.Height,
			"width", g.bounds.Width,
			"height", g.bounds.Height,
		)
	}
	slog.Info("snapshot restored", "path", path, "tick", g.tick, "particles", g.field.Len())
}
