// Package main tunes snowfall physics with CMA-ES so that snow cover
// settles at a chosen level instead of vanishing or burying the desktop.
package main

import (
	"github.com/pthm-cable/snowfall/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "melt_rate", Path: "physics.melt_rate", Min: 0.0005, Max: 0.03, Default: 0.005},
			{Name: "landing_slack", Path: "physics.landing_slack", Min: 1, Max: 12, Default: 5},
			{Name: "support_margin", Path: "physics.support_margin", Min: 0, Max: 30, Default: 10},
			{Name: "swing_amplitude", Path: "physics.swing_amplitude", Min: 0, Max: 1.5, Default: 0.5},
			{Name: "gravity", Path: "field.gravity", Min: 0.3, Max: 3, Default: 1},
			{Name: "speed_base", Path: "spawn.speed_base", Min: 0.3, Max: 2, Default: 1},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize maps raw values to [0,1].
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return out
}

// Denormalize maps [0,1] values back to raw values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return out
}

// Clamp keeps every value within its bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return out
}

// ApplyToConfig writes values into cfg. Order follows Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Physics.MeltRate = c[0]
	cfg.Physics.LandingSlack = c[1]
	cfg.Physics.SupportMargin = c[2]
	cfg.Physics.SwingAmplitude = c[3]
	cfg.Field.Gravity = c[4]
	cfg.Spawn.SpeedBase = c[5]
}

// ExtractFromConfig reads the current values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Physics.MeltRate,
		cfg.Physics.LandingSlack,
		cfg.Physics.SupportMargin,
		cfg.Physics.SwingAmplitude,
		cfg.Field.Gravity,
		cfg.Spawn.SpeedBase,
	}
}
