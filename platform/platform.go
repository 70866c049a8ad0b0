// Package platform reads the real desktop window list for the overlay host.
// Only Windows is supported; elsewhere NewSource returns ErrUnsupported and
// hosts fall back to the virtual desktop.
package platform

import (
	"errors"

	"github.com/pthm-cable/snowfall/surface"
)

// ErrUnsupported is returned when the OS has no window source.
var ErrUnsupported = errors.New("platform: desktop capture not supported on this OS")

// Screen is the virtual screen spanning all monitors, in desktop pixels.
type Screen struct {
	X, Y          int32
	Width, Height int32
}

// Contains reports whether a desktop pixel lies on the virtual screen.
func (s Screen) Contains(x, y int32) bool {
	return x >= s.X && x < s.X+s.Width && y >= s.Y && y < s.Y+s.Height
}

// local converts a desktop rectangle into overlay client coordinates,
// where the virtual screen origin is (0, 0).
func (s Screen) local(left, top, right, bottom int32) surface.Rect {
	return surface.Rect{
		Left:   float32(left - s.X),
		Top:    float32(top - s.Y),
		Right:  float32(right - s.X),
		Bottom: float32(bottom - s.Y),
	}
}

// Exclusions builds the capture exclusions for an overlay whose own window
// handle is own.
func Exclusions(own uintptr, classes []string) surface.Exclusions {
	ex := surface.Exclusions{Classes: classes}
	if own != 0 {
		ex.Handles = []uintptr{own}
	}
	return ex
}
