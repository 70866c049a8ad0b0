package desktop

import "github.com/pthm-cable/snowfall/config"

// FromConfig builds the virtual desktop described by the config on a
// width x height screen.
func FromConfig(cfg *config.Config, width, height int, seed uint64) *Desktop {
	dc := cfg.Desktop
	opts := Options{
		Width:          float32(width),
		Height:         float32(height),
		Taskbar:        dc.Taskbar,
		TaskbarHeight:  float32(dc.TaskbarHeight),
		TaskbarClass:   cfg.Surfaces.TaskbarClass,
		RaiseChance:    dc.RaiseChance,
		MinimizeChance: dc.MinimizeChance,
		RestoreChance:  dc.RestoreChance,
		MaximizeChance: dc.MaximizeChance,
		MaximizedTicks: int32(dc.MaximizedTicks),
		ShadowMargin:   float32(dc.ShadowMargin),
		Seed:           seed,
	}

	specs := make([]WindowSpec, len(dc.Windows))
	for i, w := range dc.Windows {
		specs[i] = WindowSpec{
			Class:  w.Class,
			X:      float32(w.X),
			Y:      float32(w.Y),
			Width:  float32(w.Width),
			Height: float32(w.Height),
			DriftX: float32(w.DriftX),
			DriftY: float32(w.DriftY),
		}
	}
	return New(opts, specs)
}
