package surface

import (
	"errors"
	"log/slog"
	"slices"
)

// ErrEnumeration is returned by a WindowSource when the window list itself
// cannot be read.
var ErrEnumeration = errors.New("surface: window enumeration failed")

// Default tuning, matching the desktop heuristics.
const (
	DefaultOcclusionTolerance = 20
	DefaultSlipperyMargin     = 10
)

// Window is one top-level window as seen by a WindowSource.
// Any method returning an error makes the window invisible to the catalog.
type Window interface {
	Class() (string, error)
	Handle() uintptr
	Visible() bool
	Minimized() bool
	// ExtendedBounds returns the shadow-inclusive visible frame.
	ExtendedBounds() (Rect, error)
	// Bounds returns the raw window rectangle.
	Bounds() (Rect, error)
}

// WindowSource enumerates windows for a Catalog.
type WindowSource interface {
	// Taskbar returns the shell taskbar window, if there is one.
	Taskbar() (Window, bool)
	// Windows returns top-level windows in front-to-back order.
	Windows() ([]Window, error)
}

// Exclusions names windows that never become surfaces: the overlay itself
// and the desktop background hosts.
type Exclusions struct {
	Classes []string
	Handles []uintptr
}

// Match reports whether a window with the given class and handle is excluded.
func (e Exclusions) Match(class string, handle uintptr) bool {
	if slices.Contains(e.Classes, class) {
		return true
	}
	return handle != 0 && slices.Contains(e.Handles, handle)
}

// Options tune occlusion and classification.
type Options struct {
	// OcclusionTolerance grows each occluder on every side before the
	// full-containment test.
	OcclusionTolerance float32
	// SlipperyMargin is the distance from ScreenTop under which a window
	// counts as maximized and cannot hold particles.
	SlipperyMargin float32
	ScreenTop      float32
}

// DefaultOptions returns the standard desktop tuning.
func DefaultOptions() Options {
	return Options{
		OcclusionTolerance: DefaultOcclusionTolerance,
		SlipperyMargin:     DefaultSlipperyMargin,
	}
}

// Catalog captures surfaces from a WindowSource.
type Catalog struct {
	source WindowSource
	opts   Options
	logger *slog.Logger
}

// NewCatalog creates a catalog over src. A nil logger uses slog.Default().
func NewCatalog(src WindowSource, opts Options, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{source: src, opts: opts, logger: logger}
}

// Options returns the catalog tuning.
func (c *Catalog) Options() Options {
	return c.opts
}

// Capture enumerates the source and returns a fresh, front-to-back surface
// list. Windows whose metadata cannot be read are skipped; if enumeration
// fails entirely the result is empty and the caller retries later.
func (c *Catalog) Capture(exclude Exclusions) []Surface {
	var taskbar *Rect
	if tb, ok := c.source.Taskbar(); ok && tb.Visible() {
		if r, err := tb.Bounds(); err == nil {
			taskbar = &r
		} else {
			c.logger.Debug("taskbar bounds unavailable", "error", err)
		}
	}

	windows, err := c.source.Windows()
	if err != nil {
		c.logger.Debug("window enumeration failed", "error", err)
		return nil
	}

	rects := make([]Rect, 0, len(windows))
	for _, w := range windows {
		r, ok := c.candidate(w, exclude)
		if ok {
			rects = append(rects, r)
		}
	}

	return Resolve(taskbar, rects, c.opts)
}

// candidate filters a single window and resolves its visible bounds.
func (c *Catalog) candidate(w Window, exclude Exclusions) (Rect, bool) {
	if !w.Visible() || w.Minimized() {
		return Rect{}, false
	}
	class, err := w.Class()
	if err != nil {
		c.logger.Debug("window class unavailable", "handle", w.Handle(), "error", err)
		return Rect{}, false
	}
	if exclude.Match(class, w.Handle()) {
		return Rect{}, false
	}

	r, err := w.ExtendedBounds()
	if err != nil {
		r, err = w.Bounds()
		if err != nil {
			c.logger.Debug("window bounds unavailable", "handle", w.Handle(), "class", class, "error", err)
			return Rect{}, false
		}
	}
	return r, true
}

// Resolve applies occlusion and classification to an already filtered,
// front-to-back rectangle list. taskbar, when non-nil, is placed first as
// an accumulating occluder. The result depends only on its inputs.
func Resolve(taskbar *Rect, windows []Rect, opts Options) []Surface {
	surfaces := make([]Surface, 0, len(windows)+1)
	occluders := make([]Rect, 0, len(windows)+1)

	if taskbar != nil {
		surfaces = append(surfaces, Surface{Rect: *taskbar, Accumulating: true})
		occluders = append(occluders, *taskbar)
	}

	for _, r := range windows {
		if occluded(r, occluders, opts.OcclusionTolerance) {
			continue
		}
		occluders = append(occluders, r)
		surfaces = append(surfaces, Surface{
			Rect:         r,
			Accumulating: r.Top-opts.ScreenTop >= opts.SlipperyMargin,
		})
	}
	return surfaces
}

func occluded(r Rect, occluders []Rect, tolerance float32) bool {
	for _, o := range occluders {
		if o.Covers(r, tolerance) {
			return true
		}
	}
	return false
}
