package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snowfall/ui"
)

// Keyboard step sizes.
const (
	windStep    = 0.25
	gravityStep = 0.1
	countStep   = 100
	wheelZoom   = 0.1
	pickRadius  = 12 // screen pixels
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	// Overlay toggles
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		g.uiOverlays.HandleKeyPress(key)
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyF11) && !g.overlay {
		rl.ToggleFullscreen()
	}

	cfg := g.field.Config()
	if rl.IsKeyPressed(rl.KeyRight) {
		g.field.SetWind(min(cfg.Wind+windStep, ui.MaxWind))
	}
	if rl.IsKeyPressed(rl.KeyLeft) {
		g.field.SetWind(max(cfg.Wind-windStep, -ui.MaxWind))
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		g.field.SetGravity(min(cfg.Gravity+gravityStep, ui.MaxGravity))
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		g.field.SetGravity(max(cfg.Gravity-gravityStep, ui.MinGravity))
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.setCount(cfg.Count + countStep)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.setCount(cfg.Count - countStep)
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.field.SetPointerInteraction(!cfg.Pointer)
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		g.saveSnapshot(nil)
	}

	g.handleCameraInput()
	g.handleMouse()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	g.camera.Resize(w, h)
	g.perfPanel.SetPosition(int32(w)-250, 10)
}

// handleCameraInput processes zoom and pan. The overlay always shows the
// desktop one to one.
func (g *Game) handleCameraInput() {
	if g.overlay {
		return
	}
	mouse := rl.GetMousePosition()

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomAt(mouse.X, mouse.Y, 1+wheel*wheelZoom)
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		g.panning = true
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonRight) {
		g.panning = false
	}
	if g.panning {
		d := rl.GetMouseDelta()
		g.camera.Pan(-d.X, -d.Y)
	}

	if rl.IsKeyPressed(rl.KeyR) || rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// handleMouse updates the pointer, particle selection and window dragging.
func (g *Game) handleMouse() {
	mouse := rl.GetMousePosition()
	wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
	g.pointer.X, g.pointer.Y = wx, wy
	g.pointer.Active = rl.IsCursorOnScreen()

	if g.uiOverlays.IsEnabled(ui.OverlaySettings) && g.settings.Contains(mouse.X, mouse.Y) {
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if g.uiOverlays.IsEnabled(ui.OverlayInspector) {
			scale, _ := g.camera.Scale()
			if i, ok := g.field.Nearest(wx, wy, pickRadius/scale); ok {
				g.selected = i
			} else {
				g.selected = -1
			}
		} else if g.desk != nil {
			if h, ok := g.desk.WindowAt(wx, wy); ok {
				g.desk.Raise(h)
				g.dragging = h
			}
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		g.dragging = 0
	}

	if g.dragging != 0 {
		d := rl.GetMouseDelta()
		sx, sy := g.camera.Scale()
		g.desk.MoveBy(g.dragging, d.X/sx, d.Y/sy)
	}
}
