package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/snowfall/config"
	"github.com/pthm-cable/snowfall/telemetry"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, back[i], raw[i])
		}
	}
}

func TestDefaultsMatchConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()
	got := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		if got[i] != spec.Default {
			t.Errorf("%s: config %v, spec default %v", spec.Path, got[i], spec.Default)
		}
	}
}

func TestApplyClamps(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()
	v := pv.DefaultVector()
	v[0] = 10 // melt_rate far above max
	v[4] = -1 // gravity below min
	pv.ApplyToConfig(cfg, v)

	if cfg.Physics.MeltRate != pv.Specs[0].Max {
		t.Errorf("melt_rate = %v, want %v", cfg.Physics.MeltRate, pv.Specs[0].Max)
	}
	if cfg.Field.Gravity != pv.Specs[4].Min {
		t.Errorf("gravity = %v, want %v", cfg.Field.Gravity, pv.Specs[4].Min)
	}
}

func TestScore(t *testing.T) {
	fe := &FitnessEvaluator{TargetCover: 0.25}

	steady := func(landed int) telemetry.WindowStats {
		return telemetry.WindowStats{Falling: 500 - landed, Landed: landed, Landings: 40, Melts: 40, AccumulationRatio: 1}
	}

	if got := fe.Score([]telemetry.WindowStats{steady(125), steady(125)}); got != 0 {
		t.Errorf("warmup-only run scored %v, want 0", got)
	}

	good := []telemetry.WindowStats{steady(0), steady(0), steady(125), steady(125), steady(125)}
	if got := fe.Score(good); math.Abs(got-1) > 1e-9 {
		t.Errorf("steady run at target scored %v, want 1", got)
	}

	buried := []telemetry.WindowStats{steady(0), steady(0)}
	for _, l := range []int{300, 400, 480} {
		w := steady(l)
		w.Melts = 5
		w.AccumulationRatio = 8
		buried = append(buried, w)
	}
	if got := fe.Score(buried); got >= fe.Score(good) {
		t.Errorf("piling run scored %v, not below steady run", got)
	}
}
