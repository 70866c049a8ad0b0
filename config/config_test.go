package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Field.Count != 500 {
		t.Errorf("field.count = %d, want 500", cfg.Field.Count)
	}
	if cfg.Physics.MeltRate != 0.005 {
		t.Errorf("physics.melt_rate = %v, want 0.005", cfg.Physics.MeltRate)
	}
	if cfg.Surfaces.OcclusionTolerance != 20 || cfg.Surfaces.SlipperyMargin != 10 {
		t.Errorf("unexpected surface tuning: %+v", cfg.Surfaces)
	}
	if len(cfg.Desktop.Windows) == 0 {
		t.Error("expected default virtual windows")
	}
	if cfg.Render.FlakeColor != (RGB{R: 255, G: 255, B: 255}) {
		t.Errorf("flake_color = %+v, want white", cfg.Render.FlakeColor)
	}
}

func TestDerived(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	// 500ms / 15ms
	if cfg.Derived.CaptureEvery != 33 {
		t.Errorf("CaptureEvery = %d, want 33", cfg.Derived.CaptureEvery)
	}
	if cfg.Derived.TargetFPS != 66 {
		t.Errorf("TargetFPS = %d, want 66", cfg.Derived.TargetFPS)
	}
	if cfg.Derived.UniformSizes {
		t.Error("default size distribution should be normal")
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "field:\n  count: 1200\n  wind: -1.5\nspawn:\n  size_distribution: uniform\ntiming:\n  capture_ms: 5\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Field.Count != 1200 || cfg.Field.Wind != -1.5 {
		t.Errorf("overlay not applied: %+v", cfg.Field)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Field.Gravity != 1.0 {
		t.Errorf("gravity = %v, want default 1.0", cfg.Field.Gravity)
	}
	if !cfg.Derived.UniformSizes {
		t.Error("expected uniform sizes")
	}
	if cfg.Derived.CaptureEvery != 1 {
		t.Errorf("CaptureEvery = %d, want at least 1", cfg.Derived.CaptureEvery)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("spawn:\n  size_distribution: lognormal\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "size_distribution") {
		t.Errorf("expected size_distribution error, got %v", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Field.Count = 42

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if back.Field.Count != 42 {
		t.Errorf("count = %d after reload, want 42", back.Field.Count)
	}
}
