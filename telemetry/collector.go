package telemetry

import (
	"github.com/pthm-cable/snowfall/surface"
	"github.com/pthm-cable/snowfall/systems"
)

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	events   systems.Events
	captures int

	// Reused between flushes
	life []float64
	size []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record adds one tick's drained transition counters.
func (c *Collector) Record(e systems.Events) {
	c.events.Landings += e.Landings
	c.events.Melts += e.Melts
	c.events.Slides += e.Slides
	c.events.Exits += e.Exits
	c.events.Spawns += e.Spawns
}

// RecordCapture counts a surface catalog refresh.
func (c *Collector) RecordCapture() {
	c.captures++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats from the accumulated events and the current
// particle and surface state, then resets counters for the next window.
func (c *Collector) Flush(currentTick int32, particles []systems.Particle, surfaces []surface.Surface) WindowStats {
	c.life = c.life[:0]
	c.size = c.size[:0]
	var falling, landed int
	for i := range particles {
		p := &particles[i]
		if p.Landed {
			landed++
			c.life = append(c.life, float64(p.Life))
		} else {
			falling++
			c.size = append(c.size, float64(p.Size))
		}
	}

	var accumulating int
	for _, s := range surfaces {
		if s.Accumulating {
			accumulating++
		}
	}

	life := Describe(c.life)
	size := Describe(c.size)

	var ratio float64
	if c.events.Melts > 0 {
		ratio = float64(c.events.Landings) / float64(c.events.Melts)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Falling: falling,
		Landed:  landed,

		Landings: c.events.Landings,
		Melts:    c.events.Melts,
		Slides:   c.events.Slides,
		Exits:    c.events.Exits,
		Spawns:   c.events.Spawns,

		Surfaces:     len(surfaces),
		Accumulating: accumulating,
		Captures:     c.captures,

		LifeMean: life.Mean,
		LifeP10:  life.P10,
		LifeP50:  life.P50,
		LifeP90:  life.P90,

		SizeMean: size.Mean,
		SizeStd:  size.Std,
		SizeP50:  size.P50,

		AccumulationRatio: ratio,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.events = systems.Events{}
	c.captures = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
