package surface

import "github.com/pthm-cable/snowfall/config"

// OptionsFromConfig returns the capture tuning from the surfaces section.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	opts.OcclusionTolerance = float32(cfg.Surfaces.OcclusionTolerance)
	opts.SlipperyMargin = float32(cfg.Surfaces.SlipperyMargin)
	opts.ScreenTop = float32(cfg.Surfaces.ScreenTop)
	return opts
}
