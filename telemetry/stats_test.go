package telemetry

import (
	"math"
	"testing"
)

func TestDescribe(t *testing.T) {
	values := []float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1}
	d := Describe(values)

	tests := []struct {
		name string
		got  float64
		want float64
		tol  float64
	}{
		{"mean", d.Mean, 0.55, 0.001},
		{"std", d.Std, 0.2872, 0.001},
		{"p10", d.P10, 0.1, 0.1},
		{"p50", d.P50, 0.55, 0.06},
		{"p90", d.P90, 0.9, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > tt.tol {
				t.Errorf("%s = %v, want ~%v", tt.name, tt.got, tt.want)
			}
		})
	}

	if values[0] != 1.0 {
		t.Error("Describe must not reorder its input")
	}
}

func TestDescribeOrdering(t *testing.T) {
	d := Describe([]float64{5, 3, 9, 1, 7, 2, 8, 4, 6, 10})
	if !(d.P10 <= d.P50 && d.P50 <= d.P90) {
		t.Errorf("percentiles out of order: %+v", d)
	}
}

func TestDescribeEmpty(t *testing.T) {
	if d := Describe(nil); d != (Distribution{}) {
		t.Errorf("empty sample = %+v, want zero", d)
	}
}

func TestDescribeSingle(t *testing.T) {
	d := Describe([]float64{0.4})
	if d.Mean != 0.4 || d.P10 != 0.4 || d.P90 != 0.4 || d.Std != 0 {
		t.Errorf("single sample = %+v", d)
	}
}
