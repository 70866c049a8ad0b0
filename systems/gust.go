package systems

import (
	"math"
	"math/rand/v2"
)

// Gust produces smooth, signed wind variation over time from 1D gradient
// noise. The zero value is silent.
type Gust struct {
	perm      [512]uint8
	grad      [256]float32
	amplitude float32
	period    float32
}

// NewGust creates a gust source. amplitude bounds the offset and period is
// the typical number of ticks between gust peaks.
func NewGust(seed uint64, amplitude, period float32) *Gust {
	g := &Gust{amplitude: amplitude, period: max(period, 1)}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	var perm [256]uint8
	for i := range perm {
		perm[i] = uint8(i)
	}
	rng.Shuffle(len(perm), func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})
	for i := range 256 {
		g.perm[i] = perm[i]
		g.perm[i+256] = perm[i]
		g.grad[i] = rng.Float32()*2 - 1
	}
	return g
}

// At returns the wind offset at the given tick, in [-amplitude, amplitude].
func (g *Gust) At(tick int64) float32 {
	if g == nil || g.amplitude == 0 {
		return 0
	}
	t := float64(tick) / float64(g.period)
	return g.amplitude * g.noise(t)
}

// noise is 1D gradient noise scaled to roughly [-1, 1].
func (g *Gust) noise(t float64) float32 {
	i0 := math.Floor(t)
	x := float32(t - i0)
	i := int(int64(i0) & 255)

	a := g.grad[g.perm[i]] * x
	b := g.grad[g.perm[i+1]] * (x - 1)
	v := 2 * (a + fade(x)*(b-a))
	return min(max(v, -1), 1)
}

func fade(t float32) float32 {
	return t * t * t * (t*(t*6-15) + 10)
}
