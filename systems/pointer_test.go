package systems

import (
	"math"
	"testing"
)

func TestDeflect(t *testing.T) {
	ptr := Pointer{X: 100, Y: 100, Active: true}

	tests := []struct {
		name   string
		x, y   float32
		ptr    Pointer
		wantDX float32 // sign only
		wantDY float32
	}{
		{"outside radius", 300, 100, ptr, 0, 0},
		{"exactly on radius", 220, 100, ptr, 0, 0},
		{"inactive pointer", 110, 100, Pointer{X: 100, Y: 100}, 0, 0},
		{"right of pointer", 150, 100, ptr, 1, 0},
		{"left of pointer", 50, 100, ptr, -1, 0},
		{"below pointer", 100, 160, ptr, 0, 1},
		{"on the pointer", 100, 100, ptr, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy := Deflect(tt.x, tt.y, tt.ptr, 120, 40, 6)
			if sign(dx) != tt.wantDX || sign(dy) != tt.wantDY {
				t.Errorf("Deflect = (%v, %v), want signs (%v, %v)", dx, dy, tt.wantDX, tt.wantDY)
			}
		})
	}
}

func TestDeflectContinuousAtRadius(t *testing.T) {
	ptr := Pointer{X: 0, Y: 0, Active: true}

	inside, _ := Deflect(119.99, 0, ptr, 120, 40, 6)
	outside, _ := Deflect(120.01, 0, ptr, 120, 40, 6)

	if math.Abs(float64(inside)) > 1e-3 || outside != 0 {
		t.Errorf("push should vanish at the radius: inside=%v outside=%v", inside, outside)
	}
}

func TestDeflectDecreasesWithDistance(t *testing.T) {
	ptr := Pointer{X: 0, Y: 0, Active: true}

	prev := float32(math.Inf(1))
	for d := float32(10); d < 120; d += 10 {
		push, _ := Deflect(d, 0, ptr, 120, 40, 0)
		if push > prev {
			t.Fatalf("push grew from %v to %v at d=%v", prev, push, d)
		}
		prev = push
	}
}

func TestDeflectCapped(t *testing.T) {
	ptr := Pointer{X: 0, Y: 0, Active: true}
	dx, _ := Deflect(2, 0, ptr, 120, 40, 6)
	if dx != 6 {
		t.Errorf("push = %v, want cap 6", dx)
	}
}

func sign(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
