package systems

import "github.com/pthm-cable/snowfall/config"

// PhysicsFromConfig maps the loaded config onto the simulation constants.
func PhysicsFromConfig(cfg *config.Config) PhysicsParams {
	p := cfg.Physics
	s := cfg.Spawn
	ptr := cfg.Pointer

	dist := SizeNormal
	if cfg.Derived.UniformSizes {
		dist = SizeUniform
	}

	return PhysicsParams{
		MeltRate: float32(p.MeltRate),

		SwingAmplitude: float32(p.SwingAmplitude),
		SwingBaseFreq:  float32(p.SwingBaseFreq),
		SwingSizeFreq:  float32(p.SwingSizeFreq),
		SwingRefSize:   float32(p.SwingRefSize),

		WindCoefficient: float32(p.WindCoefficient),

		LandingSlack:  float32(p.LandingSlack),
		SupportMargin: float32(p.SupportMargin),
		UnlandNudge:   float32(p.UnlandNudge),

		VisibleSize: float32(p.VisibleSize),
		BaseOpacity: float32(cfg.Render.BaseOpacity),

		SpawnBandMin: float32(s.BandMin),
		SpawnBandMax: float32(s.BandMax),
		PrewarmTop:   float32(s.PrewarmTop),

		SizeDistribution: dist,
		SizeMean:         float32(s.SizeMean),
		SizeStdDev:       float32(s.SizeStdDev),
		SizeMin:          float32(s.SizeMin),
		SizeMax:          float32(s.SizeMax),
		UniformSizeMin:   float32(s.UniformMin),
		UniformSizeMax:   float32(s.UniformMax),

		SpeedBase:    float32(s.SpeedBase),
		SpeedPerSize: float32(s.SpeedPerSize),
		SpeedRefSize: float32(s.SpeedRefSize),
		SpeedJitter:  float32(s.SpeedJitter),
		SpeedFloor:   float32(s.SpeedFloor),

		PointerRadius:   float32(ptr.Radius),
		PointerStrength: float32(ptr.Strength),
		PointerMaxPush:  float32(ptr.MaxPush),
	}
}

// FieldFromConfig returns the startup tunables.
func FieldFromConfig(cfg *config.Config) FieldConfig {
	return FieldConfig{
		Count:   cfg.Field.Count,
		Gravity: float32(cfg.Field.Gravity),
		Wind:    float32(cfg.Field.Wind),
		Pointer: cfg.Field.Pointer,
	}
}
