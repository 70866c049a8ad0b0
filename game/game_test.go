package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/snowfall/config"
	"github.com/pthm-cable/snowfall/telemetry"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func TestHeadlessRun(t *testing.T) {
	cfg := testConfig(t)
	g := NewGameWithOptions(Options{Seed: 7, Headless: true, Config: cfg})
	defer g.Unload()

	if len(g.Surfaces()) == 0 {
		t.Fatal("no surfaces captured before the first tick")
	}

	for range 200 {
		g.UpdateHeadless()
	}
	if g.Tick() != 200 {
		t.Errorf("tick = %d, want 200", g.Tick())
	}
	if g.Field().Len() != cfg.Field.Count {
		t.Errorf("population = %d, want %d", g.Field().Len(), cfg.Field.Count)
	}
}

func TestStatsCallback(t *testing.T) {
	var windows []telemetry.WindowStats
	g := NewGameWithOptions(Options{
		Seed:           1,
		Headless:       true,
		Config:         testConfig(t),
		StatsWindowSec: 1.5,
		StatsCallback: func(s telemetry.WindowStats) {
			windows = append(windows, s)
		},
	})
	defer g.Unload()

	for range 300 {
		g.UpdateHeadless()
	}
	if len(windows) != 3 {
		t.Fatalf("got %d stats windows, want 3", len(windows))
	}
	last := windows[2]
	if last.WindowEndTick != 300 {
		t.Errorf("last window ends at %d, want 300", last.WindowEndTick)
	}
	if last.Falling+last.Landed != 500 {
		t.Errorf("falling+landed = %d, want 500", last.Falling+last.Landed)
	}
	if last.Captures == 0 {
		t.Error("no captures recorded in window")
	}
}

func TestOutputAndRestore(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t)

	g := NewGameWithOptions(Options{Seed: 3, Headless: true, Config: cfg, OutputDir: dir})
	for range 50 {
		g.UpdateHeadless()
	}
	g.saveSnapshot(nil)
	g.Unload()

	for _, name := range []string{"config.yaml", "stats.csv", "perf.csv", "bookmarks.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	path := filepath.Join(dir, "snapshots", "snapshot_50.json")
	r := NewGameWithOptions(Options{Seed: 3, Headless: true, Config: cfg, RestorePath: path})
	defer r.Unload()

	if r.Tick() != 50 {
		t.Errorf("restored tick = %d, want 50", r.Tick())
	}
	if r.Field().Len() != g.Field().Len() {
		t.Errorf("restored %d particles, want %d", r.Field().Len(), g.Field().Len())
	}
	if got, want := r.Field().At(0), g.Field().At(0); got != want {
		t.Errorf("particle 0 = %+v, want %+v", got, want)
	}
}
