package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Settings are the live tunables exposed to the user.
type Settings struct {
	Count   int
	Gravity float32
	Wind    float32
	Gust    float32 // gust amplitude
	Pointer bool
}

// Slider ranges.
const (
	MaxCount   = 5000
	MinGravity = 0.1
	MaxGravity = 3
	MaxWind    = 5
	MaxGust    = 3
)

// Clamp pulls every value into its slider range.
func (s Settings) Clamp() Settings {
	s.Count = min(max(s.Count, 0), MaxCount)
	s.Gravity = min(max(s.Gravity, MinGravity), MaxGravity)
	s.Wind = min(max(s.Wind, -MaxWind), MaxWind)
	s.Gust = min(max(s.Gust, 0), MaxGust)
	return s
}

// SettingsPanel is the settings dialog: sliders for the field tunables and
// a pointer toggle.
type SettingsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewSettingsPanel creates a settings panel.
func NewSettingsPanel(x, y, width int32) *SettingsPanel {
	return &SettingsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *SettingsPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

const settingsRowHeight = 36

// height is the panel height in pixels.
func (p *SettingsPanel) height() int32 {
	return p.renderer.Theme.Padding*3 + settingsRowHeight*5 + 30
}

// Contains reports whether a screen point lies on the panel.
func (p *SettingsPanel) Contains(x, y float32) bool {
	return x >= float32(p.x) && x < float32(p.x+p.width) &&
		y >= float32(p.y) && y < float32(p.y+p.height())
}

// Draw renders the panel and returns the edited settings. reset reports
// that the user asked to restore the configured defaults.
func (p *SettingsPanel) Draw(cur Settings) (next Settings, reset bool) {
	r := p.renderer
	pad := r.Theme.Padding

	r.DrawPanel(p.x, p.y, p.width, p.height())

	x := float32(p.x + pad)
	y := float32(r.DrawSectionHeader(p.x+pad, p.y+pad, "Settings") + 4)
	sliderW := float32(p.width - pad*2 - 60)

	slider := func(label, value string, v, lo, hi float32, left, right string) float32 {
		rl.DrawText(label, int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
		rl.DrawText(value, int32(x+sliderW+8), int32(y+14), r.Theme.FontSize, r.Theme.ValueColor)
		out := gui.SliderBar(rl.Rectangle{X: x, Y: y + 14, Width: sliderW, Height: 16}, left, right, v, lo, hi)
		y += settingsRowHeight
		return out
	}

	next = cur
	next.Count = int(slider("Snowflakes", fmt.Sprintf("%d", cur.Count),
		float32(cur.Count), 0, MaxCount, "", ""))
	next.Gravity = slider("Gravity", fmt.Sprintf("%.2f", cur.Gravity),
		cur.Gravity, MinGravity, MaxGravity, "", "")
	next.Wind = slider("Wind", fmt.Sprintf("%+.2f", cur.Wind),
		cur.Wind, -MaxWind, MaxWind, "<", ">")
	next.Gust = slider("Gusts", fmt.Sprintf("%.2f", cur.Gust),
		cur.Gust, 0, MaxGust, "", "")

	pointerLabel := "Pointer: off"
	if cur.Pointer {
		pointerLabel = "Pointer: on"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 120, Height: 26}, pointerLabel) {
		next.Pointer = !cur.Pointer
	}
	reset = gui.Button(rl.Rectangle{X: x + 130, Y: y, Width: 120, Height: 26}, "Defaults")

	return next.Clamp(), reset
}
