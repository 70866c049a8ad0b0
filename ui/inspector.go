package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snowfall/systems"
)

// Inspector shows the state of one particle.
type Inspector struct {
	renderer *Renderer
	width    int32
}

// NewInspector creates a particle inspector.
func NewInspector(width int32) *Inspector {
	return &Inspector{renderer: NewRenderer(), width: width}
}

// Draw renders the panel next to the screen position (sx, sy), where the
// particle is drawn, and circles the particle.
func (in *Inspector) Draw(p systems.Particle, index int, sx, sy, radius float32, screenW, screenH int32) {
	r := in.renderer
	rl.DrawCircleLines(int32(sx), int32(sy), radius+4, rl.Yellow)

	height := r.Theme.Padding*2 + r.Theme.LineHeight*8
	x := int32(sx) + 16
	y := int32(sy) + 16
	if x+in.width > screenW {
		x = int32(sx) - 16 - in.width
	}
	if y+height > screenH {
		y = int32(sy) - 16 - height
	}
	r.DrawPanel(x, y, in.width, height)

	state := "falling"
	if p.Landed {
		state = "resting"
	}

	lx := x + r.Theme.Padding
	ly := r.DrawSectionHeader(lx, y+r.Theme.Padding, fmt.Sprintf("Flake #%d", index))
	ly = r.DrawLabelValue(lx, ly, "State", state)
	ly = r.DrawLabelValue(lx, ly, "Position", fmt.Sprintf("%.1f, %.1f", p.X, p.Y))
	ly = r.DrawLabelValue(lx, ly, "Speed", fmt.Sprintf("%.2f", p.Speed))
	ly = r.DrawLabelValue(lx, ly, "Size", fmt.Sprintf("%.2f / %.2f", p.Size, p.MaxSize))
	ly = r.DrawLabelValue(lx, ly, "Swing", fmt.Sprintf("%.2f rad", p.Angle))
	r.DrawBar(lx, ly, "Life", p.Life, in.width-r.Theme.Padding*2)
}
