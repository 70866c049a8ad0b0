// Package components defines ECS components for the virtual desktop.
package components

// Position is a window's top-left corner in desktop coordinates.
type Position struct {
	X, Y float32
}

// Size is a window's visible frame extent.
type Size struct {
	W, H float32
}

// Velocity is a window's drift per tick.
type Velocity struct {
	X, Y float32
}

// Window holds desktop-level window state.
type Window struct {
	Handle    uintptr
	Class     string
	Minimized bool

	// Maximized windows fill the work area until MaximizedFor reaches zero,
	// then return to Restore.
	MaximizedFor int32
	Restore      Position
	RestoreSize  Size
}

// Maximized reports whether the window currently fills the work area.
func (w *Window) Maximized() bool {
	return w.MaximizedFor > 0
}
