package termview

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/snowfall/camera"
	"github.com/pthm-cable/snowfall/config"
	"github.com/pthm-cable/snowfall/desktop"
	"github.com/pthm-cable/snowfall/surface"
	"github.com/pthm-cable/snowfall/systems"
)

// Keyboard step sizes.
const (
	windStep    = 0.25
	gravityStep = 0.1
	countStep   = 100
	maxWind     = 5
	minGravity  = 0.1
	maxGravity  = 3
)

// App owns the simulation and the terminal it draws to.
type App struct {
	cfg    *config.Config
	screen tcell.Screen

	field    *systems.ParticleField
	gust     *systems.Gust
	gustAmp  float32
	desk     *desktop.Desktop
	catalog  *surface.Catalog
	exclude  surface.Exclusions
	surfaces []surface.Surface
	bounds   systems.Bounds

	cam      *camera.Camera
	renderer *Renderer
	flakes   []systems.Flake

	tick         int64
	captureEvery int64
	paused       bool
	showStatus   bool
}

// New creates an app drawing to an initialized screen. The virtual
// desktop has the configured screen size, scaled to fit the terminal.
func New(screen tcell.Screen, cfg *config.Config, seed uint64) *App {
	width, height := cfg.Screen.Width, cfg.Screen.Height
	cols, rows := screen.Size()

	a := &App{
		cfg:          cfg,
		screen:       screen,
		field:        systems.NewParticleField(systems.PhysicsFromConfig(cfg), systems.FieldFromConfig(cfg), systems.NewRandom(seed)),
		gust:         systems.NewGust(seed, 1, float32(cfg.Field.GustPeriod)),
		gustAmp:      float32(cfg.Field.GustAmplitude),
		desk:         desktop.FromConfig(cfg, width, height, seed),
		exclude:      surface.Exclusions{Classes: cfg.Surfaces.ExcludedClasses},
		bounds:       systems.Bounds{Width: width, Height: height},
		cam:          camera.New(float32(cols), float32(rows), float32(width), float32(height)),
		captureEvery: int64(cfg.Derived.CaptureEvery),
		showStatus:   true,
	}
	a.catalog = surface.NewCatalog(a.desk, surface.OptionsFromConfig(cfg), nil)
	a.renderer = NewRenderer(screen, a.cam)

	a.field.Prewarm(a.bounds)
	a.surfaces = a.catalog.Capture(a.exclude)
	return a
}

// Field returns the particle field.
func (a *App) Field() *systems.ParticleField {
	return a.field
}

// Tick returns the number of steps taken.
func (a *App) Tick() int64 {
	return a.tick
}

// Step advances the desktop and the snow by one tick.
func (a *App) Step() {
	a.desk.Update()
	if a.tick > 0 && a.tick%a.captureEvery == 0 {
		a.surfaces = a.catalog.Capture(a.exclude)
	}
	a.field.SetGust(a.gust.At(a.tick) * a.gustAmp)
	a.field.Update(a.bounds, a.surfaces, systems.Pointer{})
	a.field.DrainEvents()
	a.tick++
}

// Draw renders the current state and shows it.
func (a *App) Draw() {
	a.renderer.Clear()

	taskbar, ok := a.desk.TaskbarRect()
	if ok {
		a.renderer.DrawDesktop(a.desk.Views(), &taskbar)
	} else {
		a.renderer.DrawDesktop(a.desk.Views(), nil)
	}

	a.flakes = a.field.AppendFlakes(a.flakes[:0])
	a.renderer.DrawFlakes(a.flakes)

	if a.showStatus {
		a.renderer.DrawStatus(a.status())
	}
	a.screen.Show()
}

func (a *App) status() string {
	fc := a.field.Config()
	_, landed := a.field.Counts()
	state := ""
	if a.paused {
		state = " PAUSED"
	}
	return fmt.Sprintf(" flakes %d (resting %d)  wind %+.2f  gravity %.2f  surfaces %d%s  | q quit, arrows wind/gravity, +/- flakes, space pause",
		fc.Count, landed, fc.Wind, fc.Gravity, len(a.surfaces), state)
}

// HandleEvent applies one terminal event and reports whether the app
// should quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		a.cam.Resize(float32(w), float32(h))
		a.screen.Sync()
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return false
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	fc := a.field.Config()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRight:
		a.field.SetWind(min(fc.Wind+windStep, maxWind))
	case tcell.KeyLeft:
		a.field.SetWind(max(fc.Wind-windStep, -maxWind))
	case tcell.KeyUp:
		a.field.SetGravity(min(fc.Gravity+gravityStep, maxGravity))
	case tcell.KeyDown:
		a.field.SetGravity(max(fc.Gravity-gravityStep, minGravity))
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case '+', '=':
			a.field.SetCount(fc.Count + countStep)
		case '-':
			a.field.SetCount(fc.Count - countStep)
		case ' ':
			a.paused = !a.paused
		case 's':
			a.showStatus = !a.showStatus
		}
	}
	return false
}

// Run steps and draws at the configured tick until ctx is done or the
// user quits.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 10)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Duration(a.cfg.Timing.TickMs) * time.Millisecond)
	defer ticker.Stop()

	slog.Info("terminal view started", "flakes", a.field.Len(), "surfaces", len(a.surfaces))
	a.Draw()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || a.HandleEvent(ev) {
				slog.Info("terminal view stopped", "tick", a.tick)
				return nil
			}
		case <-ticker.C:
			if !a.paused {
				a.Step()
			}
			a.Draw()
		}
	}
}
