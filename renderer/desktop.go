package renderer

import (
	"hash/fnv"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snowfall/camera"
	"github.com/pthm-cable/snowfall/desktop"
	"github.com/pthm-cable/snowfall/surface"
)

const titleBarHeight = 22

var (
	skyTop       = rl.Color{R: 18, G: 26, B: 48, A: 255}
	skyBottom    = rl.Color{R: 52, G: 72, B: 110, A: 255}
	taskbarColor = rl.Color{R: 24, G: 24, B: 30, A: 245}
	frameColor   = rl.Color{R: 10, G: 10, B: 14, A: 255}
)

// DesktopRenderer draws the sandbox backdrop, virtual windows and taskbar.
type DesktopRenderer struct{}

// NewDesktopRenderer creates a desktop renderer.
func NewDesktopRenderer() *DesktopRenderer {
	return &DesktopRenderer{}
}

// DrawBackground fills the screen with a night sky gradient.
func (d *DesktopRenderer) DrawBackground(screenW, screenH int32) {
	rl.DrawRectangleGradientV(0, 0, screenW, screenH, skyTop, skyBottom)
}

// Draw renders views back to front, then the taskbar on top.
func (d *DesktopRenderer) Draw(views []desktop.View, taskbar *surface.Rect, cam *camera.Camera) {
	for _, v := range views {
		if v.Minimized {
			continue
		}
		rec := screenRect(v.Rect, cam)
		body := windowColor(v.Class)

		rl.DrawRectangleRec(rec, body)
		bar := rec
		bar.Height = min(titleBarHeight*cam.Zoom*cam.Aspect, rec.Height)
		rl.DrawRectangleRec(bar, darken(body))
		rl.DrawRectangleLinesEx(rec, 1, frameColor)

		if fontSize := int32(14 * cam.Zoom); fontSize >= 8 {
			rl.DrawText(v.Class, int32(bar.X)+6, int32(bar.Y)+4, fontSize, rl.RayWhite)
		}
	}

	if taskbar != nil {
		rl.DrawRectangleRec(screenRect(*taskbar, cam), taskbarColor)
	}
}

// DrawSurfaces outlines captured surfaces: green where snow can rest,
// red where it slides off.
func (d *DesktopRenderer) DrawSurfaces(surfaces []surface.Surface, cam *camera.Camera) {
	for i, s := range surfaces {
		c := rl.Red
		if s.Accumulating {
			c = rl.Green
		}
		rec := screenRect(s.Rect, cam)
		rl.DrawRectangleLinesEx(rec, 2, rl.Fade(c, 0.8))
		rl.DrawText(itoa(i), int32(rec.X)+4, int32(rec.Y+rec.Height)-16, 12, c)
	}
}

func screenRect(r surface.Rect, cam *camera.Camera) rl.Rectangle {
	x0, y0 := cam.WorldToScreen(r.Left, r.Top)
	x1, y1 := cam.WorldToScreen(r.Right, r.Bottom)
	return rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// windowColor picks a stable muted colour per window class.
func windowColor(class string) rl.Color {
	h := fnv.New32a()
	h.Write([]byte(class))
	v := h.Sum32()
	return rl.Color{
		R: 60 + uint8(v%80),
		G: 70 + uint8((v>>8)%80),
		B: 90 + uint8((v>>16)%80),
		A: 255,
	}
}

func darken(c rl.Color) rl.Color {
	return rl.Color{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A}
}

func itoa(i int) string {
	if i < 10 {
		return string(rune('0' + i))
	}
	return itoa(i/10) + string(rune('0'+i%10))
}
