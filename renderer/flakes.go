// Package renderer draws the snow and the virtual desktop with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snowfall/camera"
	"github.com/pthm-cable/snowfall/config"
	"github.com/pthm-cable/snowfall/systems"
)

// stampSize is the side of the baked flake texture in pixels.
const stampSize = 32

// FlakeRenderer stamps a pre-baked radial gradient for every flake: opaque
// at the centre, transparent at the rim.
type FlakeRenderer struct {
	stamp       rl.Texture2D
	color       rl.Color
	initialized bool
}

// NewFlakeRenderer creates a flake renderer tinted with c.
func NewFlakeRenderer(c config.RGB) *FlakeRenderer {
	return &FlakeRenderer{color: rl.Color{R: c.R, G: c.G, B: c.B, A: 255}}
}

// Init bakes the stamp (must be called after the raylib window is created).
func (r *FlakeRenderer) Init() {
	if r.initialized {
		return
	}

	img := rl.GenImageGradientRadial(stampSize, stampSize, 0,
		rl.Color{R: 255, G: 255, B: 255, A: 255},
		rl.Color{R: 255, G: 255, B: 255, A: 0},
	)
	r.stamp = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(r.stamp, rl.FilterBilinear)

	r.initialized = true
}

// Draw renders flakes through cam, skipping those outside the view.
func (r *FlakeRenderer) Draw(flakes []systems.Flake, cam *camera.Camera) {
	if !r.initialized {
		r.Init()
	}

	src := rl.Rectangle{Width: stampSize, Height: stampSize}
	scaleX, scaleY := cam.Scale()

	for _, f := range flakes {
		if !cam.IsVisible(f.X, f.Y, f.Radius) {
			continue
		}
		sx, sy := cam.WorldToScreen(f.X, f.Y)
		dst := rl.Rectangle{
			X:      sx - f.Radius*scaleX,
			Y:      sy - f.Radius*scaleY,
			Width:  2 * f.Radius * scaleX,
			Height: 2 * f.Radius * scaleY,
		}
		rl.DrawTexturePro(r.stamp, src, dst, rl.Vector2{}, 0, tint(r.color, f.Opacity))
	}
}

// Unload frees resources.
func (r *FlakeRenderer) Unload() {
	if r.initialized {
		rl.UnloadTexture(r.stamp)
		r.initialized = false
	}
}

// tint applies a [0, 1] opacity to c.
func tint(c rl.Color, opacity float32) rl.Color {
	opacity = min(max(opacity, 0), 1)
	c.A = uint8(opacity*255 + 0.5)
	return c
}
