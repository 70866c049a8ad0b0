package game

import (
	"log/slog"

	"github.com/pthm-cable/snowfall/telemetry"
)

// Update handles input and advances one tick unless paused. The perf
// sample it opens is closed by Draw.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	g.perfCollector.StartTick()
	g.handleInput()

	if g.paused {
		return
	}
	g.simulationStep()
}

// UpdateHeadless advances one tick without input or drawing.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartTick()
	g.simulationStep()
	g.perfCollector.EndTick()
}

// simulationStep runs a single tick: desktop churn, coarse surface
// capture, then the particle update against the captured list.
func (g *Game) simulationStep() {
	g.perfCollector.StartPhase(telemetry.PhaseDesktop)
	if g.desk != nil {
		g.desk.Update()
	}

	g.perfCollector.StartPhase(telemetry.PhaseCapture)
	if g.tick > 0 && g.tick%g.captureEvery == 0 {
		g.capture()
	}

	g.perfCollector.StartPhase(telemetry.PhasePhysics)
	g.field.SetGust(g.gust.At(int64(g.tick)) * g.gustAmp)
	g.field.Update(g.bounds, g.surfaces, g.pointer)
	g.collector.Record(g.field.DrainEvents())

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
}

// capture refreshes the surface list. The previous list is replaced, never
// mutated, so a slice held by the renderer stays valid.
func (g *Game) capture() {
	prev := len(g.surfaces)
	g.surfaces = g.catalog.Capture(g.exclude)
	g.collector.RecordCapture()

	if len(g.surfaces) != prev {
		slog.Debug("surfaces changed", "tick", g.tick, "from", prev, "to", len(g.surfaces))
	}
}

// setCount changes the population and logs it.
func (g *Game) setCount(n int) {
	g.field.SetCount(n)
	slog.Info("flake count", "count", g.field.Len())
}
