package systems

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Random samples the distributions used when respawning particles.
// Implementations must be deterministic for a given seed.
type Random interface {
	// Uniform returns a value in [min, max). If max <= min it returns min.
	Uniform(min, max float32) float32
	// Normal returns a normally distributed value.
	Normal(mean, stddev float32) float32
}

// SeededRandom is a Random backed by a PCG source.
type SeededRandom struct {
	src *rand.PCG
}

// NewRandom creates a seeded generator.
func NewRandom(seed uint64) *SeededRandom {
	return &SeededRandom{src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}
}

// Uniform implements Random.
func (r *SeededRandom) Uniform(min, max float32) float32 {
	if max <= min {
		return min
	}
	d := distuv.Uniform{Min: float64(min), Max: float64(max), Src: r.src}
	v := float32(d.Rand())
	// Narrowing to float32 can round up onto the open bound.
	if v >= max {
		v = math.Nextafter32(max, min)
	}
	return v
}

// Normal implements Random.
func (r *SeededRandom) Normal(mean, stddev float32) float32 {
	if stddev <= 0 {
		return mean
	}
	d := distuv.Normal{Mu: float64(mean), Sigma: float64(stddev), Src: r.src}
	return float32(d.Rand())
}
