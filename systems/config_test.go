package systems

import (
	"testing"

	"github.com/pthm-cable/snowfall/config"
)

func TestPhysicsFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}

	p := PhysicsFromConfig(cfg)
	ref := DefaultPhysics()
	if p != ref {
		t.Errorf("defaults.yaml physics differ from DefaultPhysics:\n got %+v\nwant %+v", p, ref)
	}

	cfg.Derived.UniformSizes = true
	cfg.Physics.MeltRate = 0.01
	p = PhysicsFromConfig(cfg)
	if p.SizeDistribution != SizeUniform {
		t.Errorf("size distribution = %v, want uniform", p.SizeDistribution)
	}
	if p.MeltRate != 0.01 {
		t.Errorf("melt rate = %v, want 0.01", p.MeltRate)
	}
}

func TestFieldFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	fc := FieldFromConfig(cfg)
	want := FieldConfig{Count: 500, Gravity: 1, Wind: 0, Pointer: false}
	if fc != want {
		t.Errorf("FieldFromConfig = %+v, want %+v", fc, want)
	}
}
