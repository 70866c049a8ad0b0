package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snowfall/telemetry"
	"github.com/pthm-cable/snowfall/ui"
)

const controlsLegend = "Space pause | <- -> wind | Up/Down gravity | +/- flakes | P pointer | F5 snapshot | Tab settings | F1 keys"

// Draw renders the frame.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseRender)

	rl.BeginDrawing()

	if g.overlay {
		rl.ClearBackground(rl.Blank)
	} else {
		g.scene.DrawBackground(int32(g.camera.ViewportW), int32(g.camera.ViewportH))
		if g.uiOverlays.IsEnabled(ui.OverlayWindows) {
			taskbar, ok := g.desk.TaskbarRect()
			if ok {
				g.scene.Draw(g.desk.Views(), &taskbar, g.camera)
			} else {
				g.scene.Draw(g.desk.Views(), nil, g.camera)
			}
		}
	}

	if g.uiOverlays.IsEnabled(ui.OverlaySurfaces) {
		g.scene.DrawSurfaces(g.surfaces, g.camera)
	}

	g.flakeBuf = g.field.AppendFlakes(g.flakeBuf[:0])
	g.flakes.Draw(g.flakeBuf, g.camera)

	g.drawOverlays()

	rl.EndDrawing()
	g.perfCollector.EndTick()
}

// drawOverlays renders the enabled UI panels.
func (g *Game) drawOverlays() {
	if g.uiOverlays.IsEnabled(ui.OverlayInspector) {
		g.drawInspector()
	}

	if g.uiOverlays.IsEnabled(ui.OverlayHUD) {
		g.hud.Draw(g.hudData())
		g.hud.DrawControls(int32(g.camera.ViewportH), controlsLegend)
	}

	if g.uiOverlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}

	if g.uiOverlays.IsEnabled(ui.OverlayControls) {
		g.controls.Draw(g.uiOverlays)
	}

	if g.uiOverlays.IsEnabled(ui.OverlaySettings) {
		g.applySettings()
	}
}

// applySettings draws the settings panel and applies whatever the user
// changed this frame.
func (g *Game) applySettings() {
	cur := g.currentSettings()
	next, reset := g.settings.Draw(cur)
	if reset {
		next = ui.Settings{
			Count:   g.cfg.Field.Count,
			Gravity: float32(g.cfg.Field.Gravity),
			Wind:    float32(g.cfg.Field.Wind),
			Gust:    float32(g.cfg.Field.GustAmplitude),
			Pointer: g.cfg.Field.Pointer,
		}.Clamp()
	}
	if next == cur {
		return
	}

	if next.Count != cur.Count {
		g.setCount(next.Count)
	}
	g.field.SetGravity(next.Gravity)
	g.field.SetWind(next.Wind)
	g.field.SetPointerInteraction(next.Pointer)
	g.gustAmp = next.Gust
}

func (g *Game) currentSettings() ui.Settings {
	fc := g.field.Config()
	return ui.Settings{
		Count:   fc.Count,
		Gravity: fc.Gravity,
		Wind:    fc.Wind,
		Gust:    g.gustAmp,
		Pointer: fc.Pointer,
	}
}

// drawInspector highlights the selected particle.
func (g *Game) drawInspector() {
	if g.selected < 0 || g.selected >= g.field.Len() {
		g.selected = -1
		return
	}
	p := g.field.At(g.selected)
	sx, sy := g.camera.WorldToScreen(p.X, p.Y)
	scale, _ := g.camera.Scale()
	g.inspector.Draw(p, g.selected, sx, sy, p.Size*scale,
		int32(g.camera.ViewportW), int32(g.camera.ViewportH))
}

func (g *Game) hudData() ui.HUDData {
	fc := g.field.Config()

	falling, landed := g.field.Counts()
	var accumulating int
	for _, s := range g.surfaces {
		if s.Accumulating {
			accumulating++
		}
	}

	mode := "sandbox"
	if g.overlay {
		mode = "overlay"
	}

	return ui.HUDData{
		Title:        "Snowfall",
		Mode:         mode,
		Count:        fc.Count,
		Falling:      falling,
		Landed:       landed,
		Surfaces:     len(g.surfaces),
		Accumulating: accumulating,
		Tick:         g.tick,
		FPS:          rl.GetFPS(),
		Wind:         fc.Wind,
		Gust:         g.gust.At(int64(g.tick)) * g.gustAmp,
		Gravity:      fc.Gravity,
		Pointer:      fc.Pointer,
		Paused:       g.paused,
	}
}
