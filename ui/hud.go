package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snowfall/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Mode         string
	Count        int
	Falling      int
	Landed       int
	Surfaces     int
	Accumulating int
	Tick         int32
	FPS          int32
	Wind         float32
	Gust         float32
	Gravity      float32
	Pointer      bool
	Paused       bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	const x, width = 10, 300

	r.DrawPanel(x-6, 6, width, 124)

	rl.DrawText(fmt.Sprintf("%s [%s]", data.Title, data.Mode), x, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Flakes: %d  falling %d  resting %d", data.Count, data.Falling, data.Landed),
		x, 35, 14, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Surfaces: %d  holding snow %d", data.Surfaces, data.Accumulating),
		x, 52, 14, rl.LightGray,
	)
	rl.DrawText(fmt.Sprintf("Tick: %d | FPS: %d", data.Tick, data.FPS), x, 69, 14, rl.LightGray)

	y := r.DrawCenteredBar(x, 88, "Wind", data.Wind+data.Gust, 5, width-12)
	pointer := "off"
	if data.Pointer {
		pointer = "on"
	}
	rl.DrawText(fmt.Sprintf("Gravity %.2f  Pointer %s", data.Gravity, pointer), x, y, 12, rl.LightGray)

	if data.Paused {
		rl.DrawText("PAUSED", x+width-70, 10, 16, rl.Yellow)
	}
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders tick phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	phases := []string{
		telemetry.PhaseDesktop, telemetry.PhaseCapture, telemetry.PhasePhysics,
		telemetry.PhaseRender, telemetry.PhaseTelemetry,
	}

	const width = 230
	height := int32(len(phases)+2)*r.Theme.LineHeight + r.Theme.Padding*2
	r.DrawPanel(p.x, p.y, width, height)

	x := p.x + r.Theme.Padding
	y := r.DrawSectionHeader(x, p.y+r.Theme.Padding, "Performance")
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%dus (%d fps)", stats.AvgTickDuration.Microseconds(), int(stats.FPS)))

	for _, phase := range phases {
		pct := stats.PhasePct[phase]
		color := r.Theme.LabelColor
		switch {
		case pct > 50:
			color = rl.Red
		case pct > 25:
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-10s %5.1f%%", phase, pct), x, y, r.Theme.FontSize, color)
		y += r.Theme.LineHeight
	}
}
