package systems

import "math"

// Pointer is the cursor position in desktop coordinates.
// Active is false when the cursor is unknown or outside the overlay.
type Pointer struct {
	X, Y   float32
	Active bool
}

// minPointerDist keeps the push finite when a particle sits on the cursor.
const minPointerDist = 1.0

// Deflect returns the push applied to a particle at (x, y) by the pointer.
// The magnitude is strength*(1/d - 1/radius), capped at maxPush, so it
// falls to zero exactly at radius and stays zero beyond it.
func Deflect(x, y float32, p Pointer, radius, strength, maxPush float32) (dx, dy float32) {
	if !p.Active || radius <= 0 || strength == 0 {
		return 0, 0
	}

	ox := x - p.X
	oy := y - p.Y
	d := float32(math.Sqrt(float64(ox*ox + oy*oy)))
	if d >= radius {
		return 0, 0
	}

	// Direction away from the cursor; straight sideways when exactly on it.
	var nx, ny float32 = 1, 0
	if d > 0 {
		nx, ny = ox/d, oy/d
	}

	md := max(d, minPointerDist)
	mag := strength * (1/md - 1/radius)
	if mag < 0 {
		return 0, 0
	}
	if maxPush > 0 && mag > maxPush {
		mag = maxPush
	}
	return nx * mag, ny * mag
}
