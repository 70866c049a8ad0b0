// Package termview runs the snowfall simulation over the virtual desktop in
// a terminal, drawing flakes as glyphs.
package termview

import (
	"hash/fnv"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/snowfall/camera"
	"github.com/pthm-cable/snowfall/desktop"
	"github.com/pthm-cable/snowfall/surface"
	"github.com/pthm-cable/snowfall/systems"
)

// Glyph thresholds by flake radius in desktop pixels.
const (
	smallFlake = 4
	largeFlake = 7
)

var (
	skyStyle     = tcell.StyleDefault.Background(tcell.NewRGBColor(14, 20, 38))
	taskbarStyle = tcell.StyleDefault.Background(tcell.NewRGBColor(28, 28, 34)).Foreground(tcell.ColorGray)
)

// Renderer draws desktop and snow onto a tcell screen through a camera
// mapping desktop pixels to cells.
type Renderer struct {
	screen tcell.Screen
	cam    *camera.Camera
}

// NewRenderer creates a renderer.
func NewRenderer(screen tcell.Screen, cam *camera.Camera) *Renderer {
	return &Renderer{screen: screen, cam: cam}
}

// cell maps a desktop point to the cell containing it.
func (r *Renderer) cell(x, y float32) (int, int) {
	sx, sy := r.cam.WorldToScreen(x, y)
	return int(math.Floor(float64(sx))), int(math.Floor(float64(sy)))
}

// span maps a desktop rectangle to the cells it covers, clipped to the
// screen. ok is false when nothing is visible.
func (r *Renderer) span(rect surface.Rect) (x0, y0, x1, y1 int, ok bool) {
	w, h := r.screen.Size()
	x0, y0 = r.cell(rect.Left, rect.Top)
	x1, y1 = r.cell(rect.Right, rect.Bottom)
	x1--
	y1--
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, w-1), min(y1, h-1)
	return x0, y0, x1, y1, x0 <= x1 && y0 <= y1
}

// Clear fills the screen with the sky.
func (r *Renderer) Clear() {
	r.screen.SetStyle(skyStyle)
	r.screen.Clear()
}

// DrawDesktop draws windows back to front, then the taskbar.
func (r *Renderer) DrawDesktop(views []desktop.View, taskbar *surface.Rect) {
	for _, v := range views {
		if v.Minimized {
			continue
		}
		r.drawWindow(v)
	}
	if taskbar != nil {
		if x0, y0, x1, y1, ok := r.span(*taskbar); ok {
			r.fill(x0, y0, x1, y1, taskbarStyle)
		}
	}
}

func (r *Renderer) drawWindow(v desktop.View) {
	x0, y0, x1, y1, ok := r.span(v.Rect)
	if !ok {
		return
	}
	body := tcell.StyleDefault.Background(windowColor(v.Class)).Foreground(tcell.ColorWhite)
	r.fill(x0, y0, x1, y1, body)

	for x := x0 + 1; x < x1; x++ {
		r.screen.SetContent(x, y0, '─', nil, body)
		r.screen.SetContent(x, y1, '─', nil, body)
	}
	for y := y0 + 1; y < y1; y++ {
		r.screen.SetContent(x0, y, '│', nil, body)
		r.screen.SetContent(x1, y, '│', nil, body)
	}
	r.screen.SetContent(x0, y0, '┌', nil, body)
	r.screen.SetContent(x1, y0, '┐', nil, body)
	r.screen.SetContent(x0, y1, '└', nil, body)
	r.screen.SetContent(x1, y1, '┘', nil, body)

	r.text(x0+2, y0, x1-1, v.Class, body.Bold(true))
}

// DrawFlakes draws each flake as a glyph over whatever is below it.
func (r *Renderer) DrawFlakes(flakes []systems.Flake) {
	w, h := r.screen.Size()
	for _, f := range flakes {
		x, y := r.cell(f.X, f.Y)
		if x < 0 || y < 0 || x >= w || y >= h {
			continue
		}
		_, _, under, _ := r.screen.GetContent(x, y)
		_, bg, _ := under.Decompose()
		style := tcell.StyleDefault.Background(bg).Foreground(flakeColor(f.Opacity))
		r.screen.SetContent(x, y, glyph(f.Radius), nil, style)
	}
}

// DrawStatus writes a status line on the bottom row.
func (r *Renderer) DrawStatus(line string) {
	w, h := r.screen.Size()
	style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorSilver)
	r.fill(0, h-1, w-1, h-1, style)
	r.text(0, h-1, w-1, line, style)
}

func (r *Renderer) fill(x0, y0, x1, y1 int, style tcell.Style) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// text writes s from x, stopping before limit.
func (r *Renderer) text(x, y, limit int, s string, style tcell.Style) {
	for _, c := range s {
		if x > limit {
			return
		}
		r.screen.SetContent(x, y, c, nil, style)
		x++
	}
}

func glyph(radius float32) rune {
	switch {
	case radius < smallFlake:
		return '·'
	case radius < largeFlake:
		return '*'
	default:
		return '❄'
	}
}

// flakeColor shades white by opacity; a fully faded flake is dim grey.
func flakeColor(opacity float32) tcell.Color {
	v := int32(90 + min(max(opacity, 0), 1)*165)
	return tcell.NewRGBColor(v, v, v)
}

func windowColor(class string) tcell.Color {
	h := fnv.New32a()
	h.Write([]byte(class))
	v := h.Sum32()
	return tcell.NewRGBColor(int32(40+v%60), int32(50+(v>>8)%60), int32(70+(v>>16)%60))
}
