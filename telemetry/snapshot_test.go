package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/snowfall/surface"
	"github.com/pthm-cable/snowfall/systems"
)

func testField() *systems.ParticleField {
	f := systems.NewParticleField(systems.DefaultPhysics(), systems.FieldConfig{Count: 50, Gravity: 1.2, Wind: -0.5}, systems.NewRandom(9))
	b := systems.Bounds{Width: 800, Height: 600}
	f.Prewarm(b)
	surfaces := []surface.Surface{{Rect: surface.Rect{Left: 0, Top: 300, Right: 800, Bottom: 600}, Accumulating: true}}
	for range 400 {
		f.Update(b, surfaces, systems.Pointer{})
	}
	return f
}

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	f := testField()
	b := systems.Bounds{Width: 800, Height: 600}
	surfaces := []surface.Surface{{Rect: surface.Rect{Left: 0, Top: 300, Right: 800, Bottom: 600}, Accumulating: true}}
	snapshot := NewSnapshot(f, b, surfaces, 400, 9)

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if filepath.Base(path) != "snapshot_400.json" {
		t.Errorf("path = %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if loaded.Tick != 400 || loaded.Seed != 9 || loaded.Width != 800 {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if len(loaded.Particles) != 50 || len(loaded.Surfaces) != 1 {
		t.Fatalf("got %d particles, %d surfaces", len(loaded.Particles), len(loaded.Surfaces))
	}
	if loaded.Surfaces[0] != surfaces[0] {
		t.Errorf("surface = %+v, want %+v", loaded.Surfaces[0], surfaces[0])
	}

	g := systems.NewParticleField(systems.DefaultPhysics(), systems.FieldConfig{Gravity: 1}, systems.NewRandom(1))
	loaded.Restore(g)

	if g.Len() != f.Len() {
		t.Fatalf("restored %d particles, want %d", g.Len(), f.Len())
	}
	want := f.Snapshot(nil)
	got := g.Snapshot(nil)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("particle %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if g.Config().Wind != -0.5 || g.Config().Gravity != 1.2 {
		t.Errorf("tunables not restored: %+v", g.Config())
	}
}

func TestSnapshotBookmarkName(t *testing.T) {
	tmpDir := t.TempDir()
	s := &Snapshot{Version: SnapshotVersion, Tick: 7, Bookmark: &Bookmark{Type: BookmarkAvalanche}}

	path, err := SaveSnapshot(s, tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(path, "snapshot_7_avalanche.json") {
		t.Errorf("path = %s", path)
	}
}

func TestLoadSnapshotErrors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := LoadSnapshot(filepath.Join(tmpDir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(tmpDir, "bad.json")
	os.WriteFile(bad, []byte("{not json"), 0644)
	if _, err := LoadSnapshot(bad); err == nil {
		t.Error("expected error for invalid JSON")
	}

	old := filepath.Join(tmpDir, "old.json")
	os.WriteFile(old, []byte(`{"version": 99}`), 0644)
	if _, err := LoadSnapshot(old); err == nil {
		t.Error("expected error for unknown version")
	}
}
