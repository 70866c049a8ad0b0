package desktop

import (
	"testing"

	"github.com/pthm-cable/snowfall/surface"
)

func quiet(w, h float32) Options {
	return Options{
		Width:         w,
		Height:        h,
		Taskbar:       true,
		TaskbarHeight: 40,
		TaskbarClass:  "Shell_TrayWnd",
		ShadowMargin:  7,
		Seed:          3,
	}
}

func TestOpenOrder(t *testing.T) {
	d := New(quiet(1000, 800), []WindowSpec{
		{Class: "Front", X: 10, Y: 10, Width: 100, Height: 100},
		{Class: "Back", X: 50, Y: 50, Width: 100, Height: 100},
	})

	ws, err := d.Windows()
	if err != nil {
		t.Fatal(err)
	}
	if len(ws) != 2 {
		t.Fatalf("got %d windows, want 2", len(ws))
	}
	if c, _ := ws[0].Class(); c != "Front" {
		t.Errorf("front window = %q, want Front", c)
	}

	views := d.Views()
	if views[0].Class != "Back" || views[1].Class != "Front" {
		t.Errorf("views not back to front: %q, %q", views[0].Class, views[1].Class)
	}
}

func TestTaskbar(t *testing.T) {
	d := New(quiet(1000, 800), nil)
	tb, ok := d.Taskbar()
	if !ok {
		t.Fatal("expected taskbar")
	}
	r, err := tb.Bounds()
	if err != nil {
		t.Fatal(err)
	}
	want := surface.Rect{Left: 0, Top: 760, Right: 1000, Bottom: 800}
	if r != want {
		t.Errorf("taskbar = %+v, want %+v", r, want)
	}

	opts := quiet(1000, 800)
	opts.Taskbar = false
	if _, ok := New(opts, nil).Taskbar(); ok {
		t.Error("taskbar reported when disabled")
	}
}

func TestBoundsIncludeShadow(t *testing.T) {
	d := New(quiet(1000, 800), []WindowSpec{{X: 100, Y: 200, Width: 300, Height: 100}})
	ws, _ := d.Windows()

	ext, _ := ws[0].ExtendedBounds()
	raw, _ := ws[0].Bounds()
	if ext != (surface.Rect{Left: 100, Top: 200, Right: 400, Bottom: 300}) {
		t.Errorf("extended = %+v", ext)
	}
	if raw.Left != 93 || raw.Right != 407 || raw.Top != 200 || raw.Bottom != 307 {
		t.Errorf("raw = %+v", raw)
	}
}

func TestDriftBounces(t *testing.T) {
	d := New(quiet(1000, 800), []WindowSpec{
		{X: 895, Y: 100, Width: 100, Height: 100, DriftX: 10},
	})

	d.Update()
	v := d.Views()[0]
	if v.Rect.Left != 900 {
		t.Fatalf("left = %v, want clamped to 900", v.Rect.Left)
	}

	d.Update()
	v = d.Views()[0]
	if v.Rect.Left != 890 {
		t.Errorf("left = %v, want 890 after bounce", v.Rect.Left)
	}
}

func TestDriftStaysAboveTaskbar(t *testing.T) {
	d := New(quiet(1000, 800), []WindowSpec{
		{X: 100, Y: 650, Width: 100, Height: 100, DriftY: 20},
	})
	for range 50 {
		d.Update()
		r := d.Views()[0].Rect
		if r.Bottom > 760 || r.Top < 0 {
			t.Fatalf("window left work area: %+v", r)
		}
	}
}

func TestMaximizeRestores(t *testing.T) {
	opts := quiet(1000, 800)
	opts.MaximizeChance = 1
	opts.MaximizedTicks = 3
	d := New(opts, []WindowSpec{{X: 100, Y: 100, Width: 200, Height: 150}})

	d.Update()
	v := d.Views()[0]
	if !v.Maximized {
		t.Fatal("window should be maximized")
	}
	if v.Rect != (surface.Rect{Left: 0, Top: 0, Right: 1000, Bottom: 760}) {
		t.Errorf("maximized rect = %+v", v.Rect)
	}

	d.Update()
	d.Update()
	d.Update()
	v = d.Views()[0]
	if v.Maximized {
		t.Fatal("window should have restored")
	}
	if v.Rect != (surface.Rect{Left: 100, Top: 100, Right: 300, Bottom: 250}) {
		t.Errorf("restored rect = %+v", v.Rect)
	}
}

func TestMinimizeHidesFromCapture(t *testing.T) {
	opts := quiet(1000, 800)
	opts.MinimizeChance = 1
	d := New(opts, []WindowSpec{{X: 100, Y: 100, Width: 200, Height: 150}})
	d.Update()

	cat := surface.NewCatalog(d, surface.DefaultOptions(), nil)
	got := cat.Capture(surface.Exclusions{})
	if len(got) != 1 {
		t.Fatalf("got %d surfaces, want taskbar only", len(got))
	}
	if _, ok := d.WindowAt(150, 150); ok {
		t.Error("minimized window should not be hit")
	}
}

func TestRaiseAndWindowAt(t *testing.T) {
	d := New(quiet(1000, 800), []WindowSpec{
		{Class: "A", X: 0, Y: 0, Width: 200, Height: 200},
		{Class: "B", X: 100, Y: 100, Width: 200, Height: 200},
	})

	h, ok := d.WindowAt(150, 150)
	if !ok {
		t.Fatal("expected a hit")
	}
	views := d.Views()
	if views[1].Handle != h {
		t.Errorf("hit %#x, want frontmost %#x", h, views[1].Handle)
	}

	back := views[0].Handle
	if !d.Raise(back) {
		t.Fatal("raise failed")
	}
	if h, _ := d.WindowAt(150, 150); h != back {
		t.Errorf("after raise hit %#x, want %#x", h, back)
	}
	if d.Raise(0xdead) {
		t.Error("raise of unknown handle succeeded")
	}
}

func TestMoveBy(t *testing.T) {
	d := New(quiet(1000, 800), []WindowSpec{{X: 100, Y: 100, Width: 200, Height: 200}})
	h := d.Views()[0].Handle

	d.MoveBy(h, 50, -30)
	if r := d.Views()[0].Rect; r.Left != 150 || r.Top != 70 {
		t.Errorf("moved rect = %+v", r)
	}

	d.MoveBy(h, 0, -500)
	if r := d.Views()[0].Rect; r.Top != 0 {
		t.Errorf("top = %v, want clamped to 0", r.Top)
	}
}

func TestCaptureThroughCatalog(t *testing.T) {
	d := New(quiet(1000, 800), []WindowSpec{
		{Class: "Front", X: 100, Y: 300, Width: 400, Height: 300},
		{Class: "Hidden", X: 150, Y: 350, Width: 200, Height: 200},
		{Class: "Edge", X: 600, Y: 0, Width: 300, Height: 300},
	})
	cat := surface.NewCatalog(d, surface.DefaultOptions(), nil)
	got := cat.Capture(surface.Exclusions{})

	// taskbar, Front, Edge; Hidden is fully covered by Front.
	if len(got) != 3 {
		t.Fatalf("got %d surfaces, want 3: %+v", len(got), got)
	}
	if !got[0].Accumulating || !got[1].Accumulating {
		t.Error("taskbar and Front should accumulate")
	}
	if got[2].Accumulating {
		t.Error("window at the top edge should be slippery")
	}
}
