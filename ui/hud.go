package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Generation int
	Ticks      int // ticks into the current generation
	Steps      int // genome length

	Population int
	Active     int
	AtGoal     int
	Dead       int

	MaxFitness float64
	MinSteps   int
	HasArrived bool
	Accuracy   float64

	Speed        int
	FPS          int32
	Paused       bool
	Done         bool
	DoneReason   string
	ChampionOnly bool
}

// Line is one label/value row of the stats panel.
type Line struct {
	Label, Value string
}

// StatsLines returns the stats panel rows for data.
func StatsLines(data HUDData) []Line {
	minSteps := "-"
	if data.HasArrived {
		minSteps = fmt.Sprintf("%d", data.MinSteps)
	}
	return []Line{
		{"Step", fmt.Sprintf("%d / %d", data.Ticks, data.Steps)},
		{"Dots", fmt.Sprintf("%d active, %d goal, %d dead", data.Active, data.AtGoal, data.Dead)},
		{"Max fitness", fmt.Sprintf("%.4g", data.MaxFitness)},
		{"Min steps", minSteps},
		{"Speed", fmt.Sprintf("%dx | FPS %d", data.Speed, data.FPS)},
	}
}

// Status returns the run state label.
func Status(data HUDData) string {
	switch {
	case data.Done:
		if data.DoneReason != "" {
			return "DONE: " + data.DoneReason
		}
		return "DONE"
	case data.Paused:
		return "PAUSED"
	}
	return "Running"
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a HUD anchored at (x, y).
func NewHUD(x, y, width int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the HUD and returns the Y position below it.
func (h *HUD) Draw(data HUDData) int32 {
	r := h.renderer
	th := r.Theme
	lines := StatsLines(data)

	height := th.TitleFontSize + th.LineHeight*int32(len(lines)+2) + th.Padding*3
	r.DrawPanel(h.x, h.y, h.width, height)

	x := h.x + th.Padding
	y := h.y + th.Padding

	rl.DrawText(fmt.Sprintf("Gen %d", data.Generation), x, y, th.TitleFontSize, rl.White)
	y += th.TitleFontSize + 4

	y = r.DrawBar(x, y, "Accuracy", float32(data.Accuracy), h.width-th.Padding*2)
	for _, l := range lines {
		y = r.DrawLabelValue(x, y, l.Label, l.Value)
	}

	statusColor := rl.Yellow
	if data.Done {
		statusColor = rl.Green
	}
	rl.DrawText(Status(data), x, y, th.HeaderFontSize, statusColor)
	return h.y + height
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, legend string) {
	rl.DrawText(legend, h.x, screenHeight-25, 14, rl.Gray)
}
