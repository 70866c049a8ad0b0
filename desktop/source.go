package desktop

import "github.com/pthm-cable/snowfall/surface"

// window is an immutable snapshot handed to the surface catalog.
type window struct {
	class     string
	handle    uintptr
	minimized bool
	frame     surface.Rect
	shadow    float32
}

func (w window) Class() (string, error) { return w.class, nil }
func (w window) Handle() uintptr        { return w.handle }
func (w window) Visible() bool          { return true }
func (w window) Minimized() bool        { return w.minimized }

func (w window) ExtendedBounds() (surface.Rect, error) {
	return w.frame, nil
}

// Bounds includes the invisible resize border, like a raw window rect.
func (w window) Bounds() (surface.Rect, error) {
	return surface.Rect{
		Left:   w.frame.Left - w.shadow,
		Top:    w.frame.Top,
		Right:  w.frame.Right + w.shadow,
		Bottom: w.frame.Bottom + w.shadow,
	}, nil
}

// Taskbar implements surface.WindowSource.
func (d *Desktop) Taskbar() (surface.Window, bool) {
	r, ok := d.TaskbarRect()
	if !ok {
		return nil, false
	}
	return window{class: d.opts.TaskbarClass, frame: r}, true
}

// Windows implements surface.WindowSource. Windows are returned front to
// back.
func (d *Desktop) Windows() ([]surface.Window, error) {
	out := make([]surface.Window, 0, len(d.order))
	for _, e := range d.order {
		pos, size, _, win := d.mapper.Get(e)
		out = append(out, window{
			class:     win.Class,
			handle:    win.Handle,
			minimized: win.Minimized,
			frame:     frame(pos, size),
			shadow:    d.opts.ShadowMargin,
		})
	}
	return out, nil
}
