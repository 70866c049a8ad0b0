package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestNewFitsDesktop(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	if cam.X != 640 || cam.Y != 360 {
		t.Errorf("expected camera at (640, 360), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1 || cam.Aspect != 1 {
		t.Errorf("expected zoom 1 aspect 1, got %f %f", cam.Zoom, cam.Aspect)
	}

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if !near(minX, 0) || !near(minY, 0) || !near(maxX, 1280) || !near(maxY, 720) {
		t.Errorf("visible = (%v,%v)-(%v,%v), want whole desktop", minX, minY, maxX, maxY)
	}
}

func TestTerminalAspect(t *testing.T) {
	// 160x50 cells over a 1600x1000 desktop.
	cam := New(160, 50, 1600, 1000)
	sx, sy := cam.Scale()
	if !near(sx, 0.1) || !near(sy, 0.05) {
		t.Errorf("scale = (%v, %v), want (0.1, 0.05)", sx, sy)
	}

	x, y := cam.WorldToScreen(800, 500)
	if !near(x, 80) || !near(y, 25) {
		t.Errorf("center maps to (%v, %v), want (80, 25)", x, y)
	}
	x, y = cam.WorldToScreen(0, 0)
	if !near(x, 0) || !near(y, 0) {
		t.Errorf("origin maps to (%v, %v)", x, y)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(200, 60, 1920, 1080)
	cam.ZoomBy(3)
	cam.Pan(15, -4)

	points := [][2]float32{{0, 0}, {100, 30}, {199, 59}, {37, 12}}
	for _, p := range points {
		wx, wy := cam.ScreenToWorld(p[0], p[1])
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, p[0]) || !near(sy, p[1]) {
			t.Errorf("roundtrip (%v,%v) -> (%v,%v)", p[0], p[1], sx, sy)
		}
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	cam.SetZoom(0.1)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("zoom = %v, want clamped to %v", cam.Zoom, cam.MinZoom)
	}
	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom = %v, want clamped to %v", cam.Zoom, cam.MaxZoom)
	}
}

func TestPanStaysInside(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	// At fitted zoom there is nowhere to pan.
	cam.Pan(500, 500)
	if cam.X != 640 || cam.Y != 360 {
		t.Errorf("camera moved to (%v, %v) at fitted zoom", cam.X, cam.Y)
	}

	cam.SetZoom(2)
	cam.Pan(10000, -10000)
	minX, minY, maxX, _ := cam.VisibleWorldBounds()
	if !near(maxX, 1280) || !near(minY, 0) {
		t.Errorf("pan escaped desktop: x %v..%v, minY %v", minX, maxX, minY)
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	wx, wy := cam.ScreenToWorld(400, 300)

	cam.ZoomAt(400, 300, 2)

	sx, sy := cam.WorldToScreen(wx, wy)
	if !near(sx, 400) || !near(sy, 300) {
		t.Errorf("anchor moved to (%v, %v)", sx, sy)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(2)

	if !cam.IsVisible(cam.X, cam.Y, 1) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(cam.X+400, cam.Y, 10) {
		t.Error("point beyond the half-width should be culled")
	}
	if !cam.IsVisible(cam.X+325, cam.Y, 10) {
		t.Error("circle overlapping the edge should be visible")
	}
}

func TestResizeKeepsMagnification(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(2)
	cam.Resize(640, 360)

	if !near(cam.Zoom/cam.MinZoom, 2) {
		t.Errorf("relative zoom = %v, want 2", cam.Zoom/cam.MinZoom)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(3)
	cam.Pan(100, 100)
	cam.Reset()

	if cam.X != 640 || cam.Y != 360 || cam.Zoom != cam.MinZoom {
		t.Errorf("reset left camera at (%v, %v) zoom %v", cam.X, cam.Y, cam.Zoom)
	}
}
