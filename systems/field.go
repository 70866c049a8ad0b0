// Package systems contains the particle simulation.
package systems

import (
	"iter"
	"math"

	"github.com/pthm-cable/snowfall/surface"
)

// MaxParticles is the upper bound for SetCount.
const MaxParticles = 5000

const twoPi = 2 * math.Pi

// Particle is a single flake.
// While landed, Size == MaxSize*Life. While falling, Size == MaxSize.
type Particle struct {
	X, Y    float32
	Speed   float32
	Size    float32
	MaxSize float32
	Angle   float32 // swing phase, radians
	Landed  bool
	Life    float32 // 1 at landing, melts towards 0
}

// Bounds is the current screen size.
type Bounds struct {
	Width, Height int
}

// Flake is the presentation view of a visible particle.
type Flake struct {
	X, Y    float32
	Radius  float32
	Opacity float32
}

// SizeDistribution selects how respawned particles pick their size.
type SizeDistribution uint8

const (
	// SizeNormal samples N(SizeMean, SizeStdDev) clamped to [SizeMin, SizeMax].
	SizeNormal SizeDistribution = iota
	// SizeUniform samples uniformly over [UniformSizeMin, UniformSizeMax).
	SizeUniform
)

// PhysicsParams are the fixed simulation constants.
// All rates are per tick; there is no delta-time scaling.
type PhysicsParams struct {
	MeltRate float32

	SwingAmplitude float32
	SwingBaseFreq  float32 // phase step for a particle of SwingRefSize
	SwingSizeFreq  float32 // extra phase step per unit below SwingRefSize
	SwingRefSize   float32

	WindCoefficient float32

	LandingSlack  float32 // landing window below a surface top, on top of speed
	SupportMargin float32 // distance from a surface top that still counts as resting on it
	UnlandNudge   float32

	VisibleSize float32
	BaseOpacity float32

	SpawnBandMin float32
	SpawnBandMax float32
	PrewarmTop   float32

	SizeDistribution SizeDistribution
	SizeMean         float32
	SizeStdDev       float32
	SizeMin          float32
	SizeMax          float32
	UniformSizeMin   float32
	UniformSizeMax   float32

	SpeedBase    float32
	SpeedPerSize float32
	SpeedRefSize float32
	SpeedJitter  float32
	SpeedFloor   float32

	PointerRadius   float32
	PointerStrength float32
	PointerMaxPush  float32
}

// DefaultPhysics returns the reference tuning for a ~15 ms tick.
func DefaultPhysics() PhysicsParams {
	return PhysicsParams{
		MeltRate: 0.005,

		SwingAmplitude: 0.5,
		SwingBaseFreq:  0.02,
		SwingSizeFreq:  0.005,
		SwingRefSize:   10,

		WindCoefficient: 0.5,

		LandingSlack:  5,
		SupportMargin: 10,
		UnlandNudge:   2,

		VisibleSize: 0.1,
		BaseOpacity: 0.8,

		SpawnBandMin: -50,
		SpawnBandMax: -10,
		PrewarmTop:   -5,

		SizeDistribution: SizeNormal,
		SizeMean:         5,
		SizeStdDev:       2,
		SizeMin:          2.5,
		SizeMax:          12,
		UniformSizeMin:   3,
		UniformSizeMax:   6,

		SpeedBase:    1,
		SpeedPerSize: 0.4,
		SpeedRefSize: 2.5,
		SpeedJitter:  0.2,
		SpeedFloor:   0.5,

		PointerRadius:   120,
		PointerStrength: 40,
		PointerMaxPush:  6,
	}
}

// FieldConfig holds the live tunables. Changes apply on the next Update.
type FieldConfig struct {
	Count   int
	Gravity float32
	Wind    float32
	Pointer bool
}

// Events counts state transitions since the last DrainEvents call.
type Events struct {
	Landings int
	Melts    int
	Slides   int
	Exits    int
	Spawns   int
}

// ParticleField owns a population of particles and advances them one tick
// at a time. It is not safe for concurrent use.
type ParticleField struct {
	particles []Particle
	cfg       FieldConfig
	params    PhysicsParams
	rng       Random
	events    Events
	gust      float32
}

// NewParticleField creates a field and grows it to cfg.Count.
// A nil rng falls back to a generator with seed 1.
func NewParticleField(params PhysicsParams, cfg FieldConfig, rng Random) *ParticleField {
	if rng == nil {
		rng = NewRandom(1)
	}
	f := &ParticleField{params: params, rng: rng}
	f.SetGravity(cfg.Gravity)
	f.SetWind(cfg.Wind)
	f.SetPointerInteraction(cfg.Pointer)
	f.SetCount(cfg.Count)
	return f
}

// SetCount grows or truncates the population. New particles start with
// zero life and are respawned on the next Update.
func (f *ParticleField) SetCount(n int) {
	n = min(max(n, 0), MaxParticles)
	f.cfg.Count = n

	switch cur := len(f.particles); {
	case n > cur:
		for i := cur; i < n; i++ {
			f.particles = append(f.particles, Particle{Y: f.params.SpawnBandMax, Life: 0})
		}
	case n < cur:
		f.particles = f.particles[:n]
	}
}

// SetGravity sets the fall speed multiplier.
func (f *ParticleField) SetGravity(g float32) {
	f.cfg.Gravity = g
}

// SetWind sets the signed lateral wind force.
func (f *ParticleField) SetWind(w float32) {
	f.cfg.Wind = w
}

// SetGust sets a transient wind offset added on top of the configured
// wind. Hosts drive it from a Gust each tick.
func (f *ParticleField) SetGust(g float32) {
	f.gust = g
}

// SetPointerInteraction toggles cursor deflection.
func (f *ParticleField) SetPointerInteraction(on bool) {
	f.cfg.Pointer = on
}

// Config returns the live tunables.
func (f *ParticleField) Config() FieldConfig {
	return f.cfg
}

// Params returns the physics constants.
func (f *ParticleField) Params() PhysicsParams {
	return f.params
}

// Len returns the current population size.
func (f *ParticleField) Len() int {
	return len(f.particles)
}

// Prewarm respawns every particle and spreads them over the full screen
// height above the visible area, so the first frames show a continuous
// fall instead of a single band.
func (f *ParticleField) Prewarm(b Bounds) {
	w := float32(b.Width)
	for i := range f.particles {
		p := &f.particles[i]
		f.reset(p, w)
		p.Y = f.rng.Uniform(-float32(b.Height), f.params.PrewarmTop)
	}
}

// Update advances every particle by one tick. surfaces must be in
// front-to-back order and must not change during the call.
func (f *ParticleField) Update(b Bounds, surfaces []surface.Surface, ptr Pointer) {
	width := float32(b.Width)
	height := float32(b.Height)
	if !f.cfg.Pointer {
		ptr.Active = false
	}

	for i := range f.particles {
		p := &f.particles[i]

		switch {
		case p.Life <= 0:
			f.reset(p, width)
			f.events.Spawns++
			continue
		case p.Landed:
			f.updateLanded(p, surfaces, width)
		default:
			f.updateFalling(p, surfaces, height, ptr)
		}

		if p.Y > height {
			f.reset(p, width)
			f.events.Exits++
		}
	}
}

func (f *ParticleField) updateLanded(p *Particle, surfaces []surface.Surface, width float32) {
	if !f.supported(p, surfaces) {
		p.Landed = false
		p.Size = p.MaxSize
		p.Y += f.params.UnlandNudge
		f.events.Slides++
		return
	}

	// Absorb float drift so a whole number of melt steps reaches zero.
	p.Life -= f.params.MeltRate
	if p.Life < f.params.MeltRate*0.01 {
		p.Life = 0
	}
	p.Size = p.MaxSize * p.Life

	if p.Life <= 0 {
		f.reset(p, width)
		f.events.Melts++
	}
}

// supported reports whether a landed particle still rests on an
// accumulating surface top. The first surface containing the point
// decides: near its top the particle rests on it, deeper inside it is
// covered by it.
func (f *ParticleField) supported(p *Particle, surfaces []surface.Surface) bool {
	for _, s := range surfaces {
		if !s.Contains(p.X, p.Y) {
			continue
		}
		if abs32(p.Y-s.Top) < f.params.SupportMargin {
			return s.Accumulating
		}
		return false
	}
	return false
}

func (f *ParticleField) updateFalling(p *Particle, surfaces []surface.Surface, height float32, ptr Pointer) {
	pp := &f.params

	// Smaller flakes swing faster.
	p.Angle += pp.SwingBaseFreq + (pp.SwingRefSize-p.Size)*pp.SwingSizeFreq
	if p.Angle > twoPi {
		p.Angle -= twoPi
	} else if p.Angle < 0 {
		p.Angle += twoPi
	}
	swing := float32(math.Sin(float64(p.Angle))) * pp.SwingAmplitude

	// Faster (nearer) flakes also drift further with the wind.
	p.X += (f.cfg.Wind+f.gust)*(p.Speed*pp.WindCoefficient) + swing
	p.Y += p.Speed * f.cfg.Gravity

	if ptr.Active {
		dx, dy := Deflect(p.X, p.Y, ptr, pp.PointerRadius, pp.PointerStrength, pp.PointerMaxPush)
		p.X += dx
		p.Y += dy
	}

	if p.Y > 0 && p.Y < height {
		f.land(p, surfaces)
	}
}

// land snaps p onto the first accumulating surface whose top it has just
// reached, unless an earlier (nearer) surface covers the point.
func (f *ParticleField) land(p *Particle, surfaces []surface.Surface) {
	for i, s := range surfaces {
		if p.X < s.Left || p.X > s.Right {
			continue
		}
		if p.Y < s.Top || p.Y > s.Top+p.Speed+f.params.LandingSlack {
			continue
		}
		if !s.Accumulating {
			continue
		}
		if coveredBy(surfaces[:i], p.X, p.Y) {
			continue
		}

		p.Y = s.Top
		p.Landed = true
		p.Life = 1
		f.events.Landings++
		return
	}
}

func coveredBy(surfaces []surface.Surface, x, y float32) bool {
	for _, s := range surfaces {
		if s.Contains(x, y) {
			return true
		}
	}
	return false
}

// reset respawns p above the screen with fresh size, speed and phase.
func (f *ParticleField) reset(p *Particle, width float32) {
	pp := &f.params

	p.Landed = false
	p.Life = 1
	p.X = f.rng.Uniform(0, width)
	p.Y = f.rng.Uniform(pp.SpawnBandMin, pp.SpawnBandMax)

	p.MaxSize = f.sampleSize()
	p.Size = p.MaxSize

	// Larger flakes read as nearer and fall faster.
	speed := pp.SpeedBase + (p.Size-pp.SpeedRefSize)*pp.SpeedPerSize + f.rng.Normal(0, pp.SpeedJitter)
	p.Speed = max(speed, pp.SpeedFloor)

	p.Angle = f.rng.Uniform(0, twoPi)
}

func (f *ParticleField) sampleSize() float32 {
	pp := &f.params
	if pp.SizeDistribution == SizeUniform {
		return f.rng.Uniform(pp.UniformSizeMin, pp.UniformSizeMax)
	}
	s := f.rng.Normal(pp.SizeMean, pp.SizeStdDev)
	return min(max(s, pp.SizeMin), pp.SizeMax)
}

// Flakes yields every particle large enough to draw. Landed particles fade
// with their remaining life.
func (f *ParticleField) Flakes() iter.Seq[Flake] {
	return func(yield func(Flake) bool) {
		for i := range f.particles {
			p := &f.particles[i]
			if p.Size <= f.params.VisibleSize {
				continue
			}
			opacity := f.params.BaseOpacity
			if p.Landed {
				opacity *= p.Life
			}
			if !yield(Flake{X: p.X, Y: p.Y, Radius: p.Size, Opacity: opacity}) {
				return
			}
		}
	}
}

// AppendFlakes appends the visible flakes to dst and returns it.
func (f *ParticleField) AppendFlakes(dst []Flake) []Flake {
	for fl := range f.Flakes() {
		dst = append(dst, fl)
	}
	return dst
}

// Snapshot copies the particle states into dst and returns it.
func (f *ParticleField) Snapshot(dst []Particle) []Particle {
	return append(dst[:0], f.particles...)
}

// Nearest returns the index of the visible particle closest to (x, y)
// within radius.
func (f *ParticleField) Nearest(x, y, radius float32) (int, bool) {
	best, bestD2 := -1, radius*radius
	for i := range f.particles {
		p := &f.particles[i]
		if p.Size <= f.params.VisibleSize {
			continue
		}
		dx, dy := p.X-x, p.Y-y
		if d2 := dx*dx + dy*dy; d2 <= bestD2 {
			best, bestD2 = i, d2
		}
	}
	return best, best >= 0
}

// Counts returns the number of falling and landed particles.
func (f *ParticleField) Counts() (falling, landed int) {
	for i := range f.particles {
		if f.particles[i].Landed {
			landed++
		} else {
			falling++
		}
	}
	return falling, landed
}

// At returns the particle at index i.
func (f *ParticleField) At(i int) Particle {
	return f.particles[i]
}

// Restore replaces the population with ps, truncated to MaxParticles.
func (f *ParticleField) Restore(ps []Particle) {
	n := min(len(ps), MaxParticles)
	f.particles = append(f.particles[:0], ps[:n]...)
	f.cfg.Count = n
}

// DrainEvents returns the transition counters and zeroes them.
func (f *ParticleField) DrainEvents() Events {
	e := f.events
	f.events = Events{}
	return e
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
