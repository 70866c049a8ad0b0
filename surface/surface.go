// Package surface turns a snapshot of on-screen windows into an ordered
// list of solid rectangles that particles can land on or hide behind.
//
// Order is front-to-back: index 0 is the frontmost surface. Consumers rely
// on that order for occlusion and must not sort the result.
package surface

// Rect is an axis-aligned rectangle in desktop coordinates.
// Right and Bottom are inclusive edges.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// Width returns the horizontal extent.
func (r Rect) Width() float32 {
	return r.Right - r.Left
}

// Height returns the vertical extent.
func (r Rect) Height() float32 {
	return r.Bottom - r.Top
}

// Contains reports whether the point lies inside r, edges included.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

// Covers reports whether other lies entirely inside r grown by tolerance
// on every side.
func (r Rect) Covers(other Rect, tolerance float32) bool {
	return other.Left >= r.Left-tolerance &&
		other.Right <= r.Right+tolerance &&
		other.Top >= r.Top-tolerance &&
		other.Bottom <= r.Bottom+tolerance
}

// Surface is a solid region of the screen.
// Accumulating surfaces hold landed particles; the rest are slippery.
type Surface struct {
	Rect
	Accumulating bool
}
