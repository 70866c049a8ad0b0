// Package desktop simulates a desktop of drifting windows. It stands in for
// the real window list when the host runs sandboxed, headless, or in a
// terminal, and implements surface.WindowSource.
package desktop

import (
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/snowfall/components"
	"github.com/pthm-cable/snowfall/surface"
)

// Options tune the virtual desktop.
type Options struct {
	Width, Height float32

	Taskbar       bool
	TaskbarHeight float32
	TaskbarClass  string

	// Per-tick probabilities.
	RaiseChance    float64
	MinimizeChance float64
	RestoreChance  float64
	MaximizeChance float64

	MaximizedTicks int32
	// ShadowMargin is the invisible border the raw window rectangle
	// carries around the visible frame.
	ShadowMargin float32

	Seed uint64
}

// WindowSpec describes a window to open.
type WindowSpec struct {
	Class          string
	X, Y           float32
	Width, Height  float32
	DriftX, DriftY float32
}

// View is a paintable snapshot of one window.
type View struct {
	Handle    uintptr
	Class     string
	Rect      surface.Rect
	Minimized bool
	Maximized bool
}

// Desktop holds windows as ECS entities plus their stacking order.
type Desktop struct {
	world  *ecs.World
	mapper *ecs.Map4[components.Position, components.Size, components.Velocity, components.Window]
	filter *ecs.Filter4[components.Position, components.Size, components.Velocity, components.Window]

	order      []ecs.Entity // front to back
	rng        *rand.Rand
	opts       Options
	nextHandle uintptr
}

// New creates a desktop and opens specs back to front, so the first spec
// ends up frontmost.
func New(opts Options, specs []WindowSpec) *Desktop {
	world := ecs.NewWorld()
	d := &Desktop{
		world:      world,
		mapper:     ecs.NewMap4[components.Position, components.Size, components.Velocity, components.Window](world),
		filter:     ecs.NewFilter4[components.Position, components.Size, components.Velocity, components.Window](world),
		rng:        rand.New(rand.NewPCG(opts.Seed, opts.Seed+1)),
		opts:       opts,
		nextHandle: 0x100,
	}
	for i := len(specs) - 1; i >= 0; i-- {
		d.Open(specs[i])
	}
	return d
}

// Open adds a window in front of all others and returns its handle.
func (d *Desktop) Open(spec WindowSpec) uintptr {
	h := d.nextHandle
	d.nextHandle++

	e := d.mapper.NewEntity(
		&components.Position{X: spec.X, Y: spec.Y},
		&components.Size{W: spec.Width, H: spec.Height},
		&components.Velocity{X: spec.DriftX, Y: spec.DriftY},
		&components.Window{Handle: h, Class: spec.Class},
	)
	d.order = append([]ecs.Entity{e}, d.order...)
	return h
}

// Len returns the number of open windows.
func (d *Desktop) Len() int {
	return len(d.order)
}

// Resize changes the screen size. Windows are pulled back inside on the
// next Update.
func (d *Desktop) Resize(width, height float32) {
	d.opts.Width = width
	d.opts.Height = height
}

// workBottom is the lowest y a window may reach.
func (d *Desktop) workBottom() float32 {
	if d.opts.Taskbar {
		return d.opts.Height - d.opts.TaskbarHeight
	}
	return d.opts.Height
}

// Update advances window drift and random window churn by one tick.
func (d *Desktop) Update() {
	var raise []ecs.Entity

	query := d.filter.Query()
	for query.Next() {
		pos, size, vel, win := query.Get()
		e := query.Entity()

		if win.Maximized() {
			win.MaximizedFor--
			if win.MaximizedFor == 0 {
				*pos = win.Restore
				*size = win.RestoreSize
			}
			continue
		}

		if win.Minimized {
			if d.rng.Float64() < d.opts.RestoreChance {
				win.Minimized = false
				raise = append(raise, e)
			}
			continue
		}

		pos.X += vel.X
		pos.Y += vel.Y
		d.bounce(pos, size, vel)

		r := d.rng.Float64()
		switch {
		case r < d.opts.MinimizeChance:
			win.Minimized = true
		case r < d.opts.MinimizeChance+d.opts.MaximizeChance:
			d.maximize(pos, size, win)
			raise = append(raise, e)
		case r < d.opts.MinimizeChance+d.opts.MaximizeChance+d.opts.RaiseChance:
			raise = append(raise, e)
		}
	}

	for _, e := range raise {
		d.raiseEntity(e)
	}
}

// bounce keeps a window inside the work area, reflecting its drift.
func (d *Desktop) bounce(pos *components.Position, size *components.Size, vel *components.Velocity) {
	maxX := d.opts.Width - size.W
	maxY := d.workBottom() - size.H

	if pos.X < 0 {
		pos.X = 0
		vel.X = -vel.X
	} else if pos.X > maxX {
		pos.X = max(maxX, 0)
		vel.X = -vel.X
	}
	if pos.Y < 0 {
		pos.Y = 0
		vel.Y = -vel.Y
	} else if pos.Y > maxY {
		pos.Y = max(maxY, 0)
		vel.Y = -vel.Y
	}
}

func (d *Desktop) maximize(pos *components.Position, size *components.Size, win *components.Window) {
	if d.opts.MaximizedTicks <= 0 {
		return
	}
	win.Restore = *pos
	win.RestoreSize = *size
	win.MaximizedFor = d.opts.MaximizedTicks
	*pos = components.Position{}
	*size = components.Size{W: d.opts.Width, H: d.workBottom()}
}

func (d *Desktop) raiseEntity(e ecs.Entity) {
	for i, o := range d.order {
		if o == e {
			copy(d.order[1:i+1], d.order[:i])
			d.order[0] = e
			return
		}
	}
}

func (d *Desktop) find(handle uintptr) (ecs.Entity, bool) {
	for _, e := range d.order {
		_, _, _, win := d.mapper.Get(e)
		if win.Handle == handle {
			return e, true
		}
	}
	return ecs.Entity{}, false
}

// Raise brings a window to the front.
func (d *Desktop) Raise(handle uintptr) bool {
	e, ok := d.find(handle)
	if ok {
		d.raiseEntity(e)
	}
	return ok
}

// MoveBy shifts a window, keeping it inside the work area.
func (d *Desktop) MoveBy(handle uintptr, dx, dy float32) bool {
	e, ok := d.find(handle)
	if !ok {
		return false
	}
	pos, size, _, win := d.mapper.Get(e)
	if win.Maximized() {
		return false
	}
	pos.X += dx
	pos.Y += dy
	var still components.Velocity
	d.bounce(pos, size, &still)
	return true
}

// WindowAt returns the frontmost visible window containing the point.
func (d *Desktop) WindowAt(x, y float32) (uintptr, bool) {
	for _, e := range d.order {
		pos, size, _, win := d.mapper.Get(e)
		if win.Minimized {
			continue
		}
		if frame(pos, size).Contains(x, y) {
			return win.Handle, true
		}
	}
	return 0, false
}

// Views returns windows back to front, for painting.
func (d *Desktop) Views() []View {
	views := make([]View, 0, len(d.order))
	for i := len(d.order) - 1; i >= 0; i-- {
		pos, size, _, win := d.mapper.Get(d.order[i])
		views = append(views, View{
			Handle:    win.Handle,
			Class:     win.Class,
			Rect:      frame(pos, size),
			Minimized: win.Minimized,
			Maximized: win.Maximized(),
		})
	}
	return views
}

// TaskbarRect returns the taskbar rectangle, if the desktop has one.
func (d *Desktop) TaskbarRect() (surface.Rect, bool) {
	if !d.opts.Taskbar {
		return surface.Rect{}, false
	}
	return surface.Rect{
		Left:   0,
		Top:    d.workBottom(),
		Right:  d.opts.Width,
		Bottom: d.opts.Height,
	}, true
}

func frame(pos *components.Position, size *components.Size) surface.Rect {
	return surface.Rect{Left: pos.X, Top: pos.Y, Right: pos.X + size.W, Bottom: pos.Y + size.H}
}
