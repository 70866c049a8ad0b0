package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/snowfall/surface"
	"github.com/pthm-cable/snowfall/systems"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the particle field and the surfaces it last saw, enough to
// resume or inspect a run.
type Snapshot struct {
	Version int    `json:"version"`
	Seed    uint64 `json:"seed"`

	Width  int `json:"width"`
	Height int `json:"height"`

	Tick int32 `json:"tick"`

	Gravity float32 `json:"gravity"`
	Wind    float32 `json:"wind"`
	Pointer bool    `json:"pointer"`

	Particles []ParticleState   `json:"particles"`
	Surfaces  []surface.Surface `json:"surfaces"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// ParticleState is the JSON form of one particle.
type ParticleState struct {
	X       float32 `json:"x"`
	Y       float32 `json:"y"`
	Speed   float32 `json:"speed"`
	Size    float32 `json:"size"`
	MaxSize float32 `json:"max_size"`
	Angle   float32 `json:"angle"`
	Landed  bool    `json:"landed,omitempty"`
	Life    float32 `json:"life"`
}

// NewSnapshot captures the field state.
func NewSnapshot(f *systems.ParticleField, b systems.Bounds, surfaces []surface.Surface, tick int32, seed uint64) *Snapshot {
	cfg := f.Config()
	particles := f.Snapshot(nil)

	s := &Snapshot{
		Version:   SnapshotVersion,
		Seed:      seed,
		Width:     b.Width,
		Height:    b.Height,
		Tick:      tick,
		Gravity:   cfg.Gravity,
		Wind:      cfg.Wind,
		Pointer:   cfg.Pointer,
		Particles: make([]ParticleState, len(particles)),
		Surfaces:  append([]surface.Surface(nil), surfaces...),
	}
	for i, p := range particles {
		s.Particles[i] = ParticleState(p)
	}
	return s
}

// Restore loads the snapshot's particles and tunables into f.
func (s *Snapshot) Restore(f *systems.ParticleField) {
	particles := make([]systems.Particle, len(s.Particles))
	for i, p := range s.Particles {
		particles[i] = systems.Particle(p)
	}
	f.Restore(particles)
	f.SetGravity(s.Gravity)
	f.SetWind(s.Wind)
	f.SetPointerInteraction(s.Pointer)
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, snapshot.Bookmark.Type)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
