// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Pointer   PointerConfig   `yaml:"pointer"`
	Surfaces  SurfacesConfig  `yaml:"surfaces"`
	Timing    TimingConfig    `yaml:"timing"`
	Desktop   DesktopConfig   `yaml:"desktop"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	TargetFPS int  `yaml:"target_fps"` // 0 = derive from timing.tick_ms
	Overlay   bool `yaml:"overlay"`    // transparent, topmost, click-through window
}

// FieldConfig holds the live tunables at startup.
type FieldConfig struct {
	Count   int     `yaml:"count"`
	Gravity float64 `yaml:"gravity"` // fall speed multiplier
	Wind    float64 `yaml:"wind"`    // signed lateral force
	Pointer bool    `yaml:"pointer"` // cursor pushes falling flakes

	GustAmplitude float64 `yaml:"gust_amplitude"` // 0 disables gusts
	GustPeriod    float64 `yaml:"gust_period"`    // ticks between gust peaks
}

// PhysicsConfig holds per-tick physics constants.
type PhysicsConfig struct {
	MeltRate        float64 `yaml:"melt_rate"`
	SwingAmplitude  float64 `yaml:"swing_amplitude"`
	SwingBaseFreq   float64 `yaml:"swing_base_freq"`
	SwingSizeFreq   float64 `yaml:"swing_size_freq"`
	SwingRefSize    float64 `yaml:"swing_ref_size"`
	WindCoefficient float64 `yaml:"wind_coefficient"`
	LandingSlack    float64 `yaml:"landing_slack"`
	SupportMargin   float64 `yaml:"support_margin"`
	UnlandNudge     float64 `yaml:"unland_nudge"`
	VisibleSize     float64 `yaml:"visible_size"`
}

// SpawnConfig holds respawn sampling parameters.
type SpawnConfig struct {
	BandMin          float64 `yaml:"band_min"`
	BandMax          float64 `yaml:"band_max"`
	PrewarmTop       float64 `yaml:"prewarm_top"`
	SizeDistribution string  `yaml:"size_distribution"` // normal | uniform
	SizeMean         float64 `yaml:"size_mean"`
	SizeStdDev       float64 `yaml:"size_stddev"`
	SizeMin          float64 `yaml:"size_min"`
	SizeMax          float64 `yaml:"size_max"`
	UniformMin       float64 `yaml:"uniform_min"`
	UniformMax       float64 `yaml:"uniform_max"`
	SpeedBase        float64 `yaml:"speed_base"`
	SpeedPerSize     float64 `yaml:"speed_per_size"`
	SpeedRefSize     float64 `yaml:"speed_ref_size"`
	SpeedJitter      float64 `yaml:"speed_jitter"`
	SpeedFloor       float64 `yaml:"speed_floor"`
}

// PointerConfig holds cursor interaction parameters.
type PointerConfig struct {
	Radius   float64 `yaml:"radius"`
	Strength float64 `yaml:"strength"`
	MaxPush  float64 `yaml:"max_push"`
}

// SurfacesConfig holds window capture parameters.
type SurfacesConfig struct {
	OcclusionTolerance float64  `yaml:"occlusion_tolerance"`
	SlipperyMargin     float64  `yaml:"slippery_margin"`
	ScreenTop          float64  `yaml:"screen_top"` // desktop y that counts as the top edge
	ExcludedClasses    []string `yaml:"excluded_classes"`
	TaskbarClass       string   `yaml:"taskbar_class"`
}

// TimingConfig holds host cadence.
type TimingConfig struct {
	TickMs    int `yaml:"tick_ms"`
	CaptureMs int `yaml:"capture_ms"`
}

// DesktopConfig describes the virtual desktop used outside overlay mode.
type DesktopConfig struct {
	Taskbar        bool           `yaml:"taskbar"`
	TaskbarHeight  float64        `yaml:"taskbar_height"`
	Windows        []WindowConfig `yaml:"windows"`
	RaiseChance    float64        `yaml:"raise_chance"`    // per tick
	MinimizeChance float64        `yaml:"minimize_chance"` // per tick
	RestoreChance  float64        `yaml:"restore_chance"`  // per tick, for minimized windows
	MaximizeChance float64        `yaml:"maximize_chance"` // per tick
	MaximizedTicks int            `yaml:"maximized_ticks"` // how long a maximize lasts
	ShadowMargin   float64        `yaml:"shadow_margin"`   // raw rect grows by this around the visible frame
}

// WindowConfig is one virtual window.
type WindowConfig struct {
	Class  string  `yaml:"class"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	DriftX float64 `yaml:"drift_x"` // units per tick
	DriftY float64 `yaml:"drift_y"`
}

// RenderConfig holds presentation parameters.
type RenderConfig struct {
	BaseOpacity float64 `yaml:"base_opacity"`
	FlakeColor  RGB     `yaml:"flake_color"`
	ShowHUD     bool    `yaml:"show_hud"`
}

// RGB is an 8-bit colour.
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TickSeconds  float64 // Timing.TickMs in seconds
	CaptureEvery int     // ticks between surface captures
	TargetFPS    int     // effective frame rate
	UniformSizes bool    // Spawn.SizeDistribution == "uniform"
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects settings no host can run with. Out-of-range tunables
// are clamped later by the simulation instead.
func (c *Config) validate() error {
	switch c.Spawn.SizeDistribution {
	case "", "normal", "uniform":
	default:
		return fmt.Errorf("spawn.size_distribution: unknown value %q", c.Spawn.SizeDistribution)
	}
	if c.Timing.TickMs <= 0 {
		return fmt.Errorf("timing.tick_ms must be positive, got %d", c.Timing.TickMs)
	}
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TickSeconds = float64(c.Timing.TickMs) / 1000

	c.Derived.CaptureEvery = c.Timing.CaptureMs / c.Timing.TickMs
	if c.Derived.CaptureEvery < 1 {
		c.Derived.CaptureEvery = 1
	}

	c.Derived.TargetFPS = c.Screen.TargetFPS
	if c.Derived.TargetFPS <= 0 {
		c.Derived.TargetFPS = 1000 / c.Timing.TickMs
	}

	c.Derived.UniformSizes = c.Spawn.SizeDistribution == "uniform"
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
