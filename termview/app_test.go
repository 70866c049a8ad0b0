package termview

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/snowfall/config"
	"github.com/pthm-cable/snowfall/systems"
)

// newTestApp runs on an 80x24 screen over a quiet 1280x800 desktop with
// one window covering the top-left quarter.
func newTestApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Desktop.Taskbar = false
	cfg.Desktop.RaiseChance = 0
	cfg.Desktop.MinimizeChance = 0
	cfg.Desktop.MaximizeChance = 0
	cfg.Desktop.Windows = []config.WindowConfig{
		{Class: "Editor", X: 0, Y: 0, Width: 640, Height: 400},
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	return New(screen, cfg, 1), screen
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestDrawWindowFrame(t *testing.T) {
	a, screen := newTestApp(t)
	a.Draw()

	corners := []struct {
		x, y int
		want rune
	}{
		{0, 0, '┌'},
		{39, 0, '┐'},
		{0, 11, '└'},
		{39, 11, '┘'},
	}
	for _, c := range corners {
		if got := runeAt(screen, c.x, c.y); got != c.want {
			t.Errorf("cell (%d,%d) = %q, want %q", c.x, c.y, got, c.want)
		}
	}
	if got := runeAt(screen, 2, 0); got != 'E' {
		t.Errorf("title starts with %q, want 'E'", got)
	}
}

func TestDrawFlakeGlyph(t *testing.T) {
	a, screen := newTestApp(t)
	a.field.Restore([]systems.Particle{
		{X: 810, Y: 520, Speed: 1, Size: 5, MaxSize: 5, Life: 1},
		{X: 1010, Y: 520, Speed: 1, Size: 10, MaxSize: 10, Life: 1},
	})
	a.Draw()

	if got := runeAt(screen, 50, 15); got != '*' {
		t.Errorf("medium flake drawn as %q, want '*'", got)
	}
	if got := runeAt(screen, 63, 15); got != '❄' {
		t.Errorf("large flake drawn as %q, want '❄'", got)
	}
}

func TestStatusLine(t *testing.T) {
	a, screen := newTestApp(t)
	a.Draw()
	if got := runeAt(screen, 1, 23); got != 'f' {
		t.Errorf("status line starts with %q, want 'f'", got)
	}

	a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	a.Draw()
	if got := runeAt(screen, 1, 23); got == 'f' {
		t.Error("status line still drawn after toggling it off")
	}
}

func TestHandleKeys(t *testing.T) {
	a, _ := newTestApp(t)

	a.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	if w := a.field.Config().Wind; w != windStep {
		t.Errorf("wind = %v, want %v", w, windStep)
	}

	a.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	if g := a.field.Config().Gravity; g != 1-gravityStep {
		t.Errorf("gravity = %v, want %v", g, float32(1-gravityStep))
	}

	a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone))
	if n := a.field.Len(); n != 600 {
		t.Errorf("count = %d, want 600", n)
	}

	a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if !a.paused {
		t.Error("space did not pause")
	}

	if !a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q did not quit")
	}
	if !a.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape did not quit")
	}
}

func TestResize(t *testing.T) {
	a, _ := newTestApp(t)
	a.HandleEvent(tcell.NewEventResize(120, 40))
	if a.cam.ViewportW != 120 || a.cam.ViewportH != 40 {
		t.Errorf("viewport = %vx%v, want 120x40", a.cam.ViewportW, a.cam.ViewportH)
	}
}

func TestStep(t *testing.T) {
	a, _ := newTestApp(t)
	if len(a.surfaces) != 1 {
		t.Fatalf("got %d surfaces, want the one window", len(a.surfaces))
	}
	for range 100 {
		a.Step()
	}
	if a.Tick() != 100 {
		t.Errorf("tick = %d, want 100", a.Tick())
	}
	if a.Field().Len() != 500 {
		t.Errorf("population = %d, want 500", a.Field().Len())
	}
}
