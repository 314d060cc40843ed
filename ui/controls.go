package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is what the controls panel shows and edits.
type ControlsState struct {
	Paused       bool
	ChampionOnly bool
	Speed        int
}

// ControlsPanel renders the raygui pause button, champion-only toggle and
// speed slider.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	maxSpeed int
	visible  bool
}

// NewControlsPanel creates a controls panel. Speed ranges over 1..maxSpeed.
func NewControlsPanel(x, y, width int32, maxSpeed int) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		maxSpeed: max(maxSpeed, 1),
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns the state after any clicks.
func (c *ControlsPanel) Draw(s ControlsState) ControlsState {
	if !c.visible {
		return s
	}

	r := c.renderer
	pad := r.Theme.Padding
	height := int32(3*30) + pad*2
	r.DrawPanel(c.x, c.y, c.width, height)

	fx := float32(c.x + pad)
	fy := float32(c.y + pad)
	inner := float32(c.width - pad*2)

	label := "Pause"
	if s.Paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: fx, Y: fy, Width: inner / 2, Height: 24}, label) {
		s.Paused = !s.Paused
	}
	fy += 30

	s.ChampionOnly = gui.CheckBox(rl.Rectangle{X: fx, Y: fy + 4, Width: 16, Height: 16}, "Champion only", s.ChampionOnly)
	fy += 30

	speed := gui.SliderBar(
		rl.Rectangle{X: fx + 50, Y: fy, Width: inner - 100, Height: 20},
		"Speed", fmt.Sprintf("%dx", s.Speed),
		float32(s.Speed), 1, float32(c.maxSpeed),
	)
	s.Speed = ClampSpeed(int(speed+0.5), c.maxSpeed)
	return s
}

// ClampSpeed keeps a steps-per-update value in 1..maxSpeed.
func ClampSpeed(speed, maxSpeed int) int {
	if speed < 1 {
		return 1
	}
	if speed > maxSpeed {
		return maxSpeed
	}
	return speed
}
