// Package game hosts the snowfall simulation: it owns the particle field,
// the surface catalog and the window source behind it, and drives them at
// a fixed tick with optional raylib presentation.
package game

import (
	"log/slog"

	"github.com/pthm-cable/snowfall/camera"
	"github.com/pthm-cable/snowfall/config"
	"github.com/pthm-cable/snowfall/desktop"
	"github.com/pthm-cable/snowfall/platform"
	"github.com/pthm-cable/snowfall/renderer"
	"github.com/pthm-cable/snowfall/surface"
	"github.com/pthm-cable/snowfall/systems"
	"github.com/pthm-cable/snowfall/telemetry"
	"github.com/pthm-cable/snowfall/ui"
)

// Options configures game initialization.
type Options struct {
	Seed           uint64
	Headless       bool
	LogStats       bool
	StatsWindowSec float64 // 0 = config telemetry.stats_window
	OutputDir      string
	SnapshotDir    string // bookmark snapshots; empty = output dir, if any
	RestorePath    string // snapshot to resume from

	// Config overrides config.Cfg().
	Config *config.Config

	// Source overrides the virtual desktop, e.g. with the real window list.
	// Width and Height must then give the overlay's client size.
	Source        surface.WindowSource
	Width, Height int
	// OwnHandle is excluded from capture.
	OwnHandle uintptr

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete host state.
type Game struct {
	cfg  *config.Config
	seed uint64

	field   *systems.ParticleField
	gust    *systems.Gust
	catalog *surface.Catalog
	exclude surface.Exclusions
	desk    *desktop.Desktop // nil in overlay mode
	bounds  systems.Bounds

	surfaces     []surface.Surface
	captureEvery int32

	// Rendering
	headless bool
	overlay  bool
	camera   *camera.Camera
	flakes   *renderer.FlakeRenderer
	scene    *renderer.DesktopRenderer
	flakeBuf []systems.Flake

	// UI
	uiOverlays *ui.OverlayRegistry
	hud        *ui.HUD
	controls   *ui.ControlsPanel
	settings   *ui.SettingsPanel
	perfPanel  *ui.PerfPanel
	inspector  *ui.Inspector
	selected   int // inspected particle index, -1 = none

	// Input state
	dragging  uintptr // window being dragged, 0 = none
	panning   bool
	pointer   systems.Pointer
	gustAmp   float32 // live gust amplitude

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)
	logStats         bool
	snapshotDir      string

	// State
	tick   int32
	paused bool
}

// NewGameWithOptions creates a game. In graphical mode the raylib window
// must already be open.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = cfg.Screen.Width, cfg.Screen.Height
	}

	g := &Game{
		cfg:           cfg,
		seed:          opts.Seed,
		bounds:        systems.Bounds{Width: width, Height: height},
		captureEvery:  int32(cfg.Derived.CaptureEvery),
		headless:      opts.Headless,
		selected:      -1,
		gustAmp:       float32(cfg.Field.GustAmplitude),
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
		snapshotDir:   opts.SnapshotDir,
	}

	g.field = systems.NewParticleField(systems.PhysicsFromConfig(cfg), systems.FieldFromConfig(cfg), systems.NewRandom(opts.Seed))
	g.gust = systems.NewGust(opts.Seed, 1, float32(cfg.Field.GustPeriod))

	src := opts.Source
	if src == nil {
		g.desk = desktop.FromConfig(cfg, width, height, opts.Seed)
		src = g.desk
	} else {
		g.overlay = true
	}
	g.catalog = surface.NewCatalog(src, surface.OptionsFromConfig(cfg), nil)
	g.exclude = platform.Exclusions(opts.OwnHandle, cfg.Surfaces.ExcludedClasses)

	g.initTelemetry(opts)

	if opts.RestorePath != "" {
		g.restoreSnapshot(opts.RestorePath)
	} else {
		g.field.Prewarm(g.bounds)
	}

	// Surfaces are known before the first tick.
	g.capture()

	if !g.headless {
		g.initRendering()
	}

	slog.Info("game initialized",
		"width", width,
		"height", height,
		"count", g.field.Len(),
		"overlay", g.overlay,
		"surfaces", len(g.surfaces),
		"capture_every", g.captureEvery,
	)

	return g
}

// initRendering creates renderers and UI. Requires an open raylib window.
func (g *Game) initRendering() {
	w, h := float32(g.bounds.Width), float32(g.bounds.Height)
	g.camera = camera.New(w, h, w, h)

	g.flakes = renderer.NewFlakeRenderer(g.cfg.Render.FlakeColor)
	g.flakes.Init()
	g.scene = renderer.NewDesktopRenderer()

	g.uiOverlays = ui.NewOverlayRegistry()
	g.uiOverlays.SetEnabled(ui.OverlayHUD, g.cfg.Render.ShowHUD)
	if g.overlay {
		// The real desktop already shows its windows.
		g.uiOverlays.SetEnabled(ui.OverlayWindows, false)
	}
	g.hud = ui.NewHUD()
	g.controls = ui.NewControlsPanel(10, 140, 260)
	g.settings = ui.NewSettingsPanel(10, 140, 300)
	g.perfPanel = ui.NewPerfPanel(int32(w)-250, 10)
	g.inspector = ui.NewInspector(220)
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Field returns the particle field.
func (g *Game) Field() *systems.ParticleField {
	return g.field
}

// Surfaces returns the most recently captured surfaces.
func (g *Game) Surfaces() []surface.Surface {
	return g.surfaces
}

// Unload releases renderer resources and closes output files.
func (g *Game) Unload() {
	if g.flakes != nil {
		g.flakes.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
