package systems

import (
	"math"
	"testing"
)

func TestUniformRange(t *testing.T) {
	r := NewRandom(3)
	for i := 0; i < 10000; i++ {
		v := r.Uniform(-50, -10)
		if v < -50 || v >= -10 {
			t.Fatalf("Uniform(-50, -10) = %v", v)
		}
	}
	if v := r.Uniform(5, 5); v != 5 {
		t.Errorf("empty range should return min, got %v", v)
	}
	if v := r.Uniform(0, 0); v != 0 {
		t.Errorf("zero width should return 0, got %v", v)
	}
}

func TestNormalMoments(t *testing.T) {
	r := NewRandom(11)
	const n = 20000

	var sum, sumSq float64
	for i := 0; i < n; i++ {
		v := float64(r.Normal(5, 2))
		sum += v
		sumSq += v * v
	}
	mean := sum / n
	std := math.Sqrt(sumSq/n - mean*mean)

	if math.Abs(mean-5) > 0.1 {
		t.Errorf("mean = %v, want ~5", mean)
	}
	if math.Abs(std-2) > 0.1 {
		t.Errorf("stddev = %v, want ~2", std)
	}
	if v := r.Normal(1.5, 0); v != 1.5 {
		t.Errorf("zero stddev should return the mean, got %v", v)
	}
}

func TestSeedReproducible(t *testing.T) {
	a, b := NewRandom(77), NewRandom(77)
	for i := 0; i < 100; i++ {
		if a.Uniform(0, 1920) != b.Uniform(0, 1920) || a.Normal(0, 1) != b.Normal(0, 1) {
			t.Fatalf("sequences diverged at step %d", i)
		}
	}
}
