// Package camera maps desktop coordinates onto a viewport.
package camera

// Camera controls the viewport onto the desktop.
// The desktop is bounded: the view never shows space outside it.
type Camera struct {
	// Position is the camera center in desktop coordinates
	X, Y float32

	// Zoom is viewport pixels per desktop unit horizontally.
	Zoom float32
	// Aspect stretches the vertical axis relative to Zoom. It is 1 for
	// square pixels and below 1 for terminal cells, which are taller
	// than wide.
	Aspect float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Desktop dimensions
	WorldW, WorldH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// maxZoomFactor bounds magnification relative to the fitted zoom.
const maxZoomFactor = 8

// New creates a camera that shows the whole desktop, stretched to fill
// the viewport.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{WorldW: worldW, WorldH: worldH}
	c.fit(viewportW, viewportH)
	c.Reset()
	return c
}

// fit sets the viewport and derives zoom limits so that MinZoom shows the
// full desktop.
func (c *Camera) fit(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = viewportW / c.WorldW
	c.MaxZoom = c.MinZoom * maxZoomFactor
	c.Aspect = (viewportH / c.WorldH) / c.MinZoom
}

// WorldToScreen converts desktop coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom*c.Aspect
	return sx, sy
}

// ScreenToWorld converts screen coordinates to desktop coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/(c.Zoom*c.Aspect)
	return wx, wy
}

// Scale returns screen units per desktop unit on each axis.
func (c *Camera) Scale() (sx, sy float32) {
	return c.Zoom, c.Zoom * c.Aspect
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+radius >= minX && wx-radius <= maxX &&
		wy+radius >= minY && wy-radius <= maxY
}

// Resize updates viewport dimensions, keeping the relative magnification.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	factor := c.Zoom / c.MinZoom
	c.fit(viewportW, viewportH)
	c.SetZoom(c.MinZoom * factor)
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / (c.Zoom * c.Aspect)
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor while keeping the desktop point under the screen
// position (sx, sy) fixed, as with mouse-wheel zoom.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.Zoom = clamp(c.Zoom*factor, c.MinZoom, c.MaxZoom)
	c.X = wx - (sx-c.ViewportW/2)/c.Zoom
	c.Y = wy - (sy-c.ViewportH/2)/(c.Zoom*c.Aspect)
	c.clampCenter()
}

// Reset shows the whole desktop again.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = c.MinZoom
}

// VisibleWorldBounds returns the desktop-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom * c.Aspect)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// clampCenter keeps the visible area inside the desktop.
func (c *Camera) clampCenter() {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom * c.Aspect)
	c.X = clamp(c.X, halfW, c.WorldW-halfW)
	c.Y = clamp(c.Y, halfH, c.WorldH-halfH)
}

// clamp restricts a value to a range. If the range is inverted the
// midpoint is returned.
func clamp(x, lo, hi float32) float32 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return min(max(x, lo), hi)
}
