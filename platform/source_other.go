//go:build !windows

package platform

import "github.com/pthm-cable/snowfall/surface"

// Source is unavailable on this OS.
type Source struct{}

// NewSource always fails with ErrUnsupported.
func NewSource(taskbarClass string) (*Source, error) {
	return nil, ErrUnsupported
}

// Screen returns the zero screen.
func (s *Source) Screen() Screen { return Screen{} }

// Taskbar implements surface.WindowSource.
func (s *Source) Taskbar() (surface.Window, bool) { return nil, false }

// Windows implements surface.WindowSource.
func (s *Source) Windows() ([]surface.Window, error) { return nil, ErrUnsupported }
