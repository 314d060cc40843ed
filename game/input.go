package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gadots/ui"
)

const (
	panSpeed  = 500 // pixels per second
	zoomStep  = 1.1
	legendTxt = "SPACE pause | ,/. speed | C champion | H panel | arrows pan | wheel zoom | HOME reset"
)

func (g *Game) handleInput() {
	if rl.IsWindowResized() {
		g.screenWidth = float32(rl.GetScreenWidth())
		g.screenHeight = float32(rl.GetScreenHeight())
		g.camera.Resize(g.screenWidth, g.screenHeight)
	}

	// Pause
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Speed
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.stepsPerUpdate = ui.ClampSpeed(g.stepsPerUpdate+1, MaxStepsPerUpdate)
	}
	if rl.IsKeyPressed(rl.KeyComma) {
		g.stepsPerUpdate = ui.ClampSpeed(g.stepsPerUpdate-1, MaxStepsPerUpdate)
	}

	if rl.IsKeyPressed(rl.KeyC) {
		g.pop.SetChampionOnly(!g.pop.ChampionOnly())
	}
	if rl.IsKeyPressed(rl.KeyH) {
		g.controls.Toggle()
	}

	// Camera pan
	step := panSpeed * rl.GetFrameTime()
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-step, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(step, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -step)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, step)
	}

	// Zoom
	if wheel := rl.GetMouseWheelMove(); wheel > 0 {
		g.camera.ZoomBy(zoomStep)
	} else if wheel < 0 {
		g.camera.ZoomBy(1 / zoomStep)
	}
	if rl.IsKeyPressed(rl.KeyEqual) {
		g.camera.ZoomBy(zoomStep)
	}
	if rl.IsKeyPressed(rl.KeyMinus) {
		g.camera.ZoomBy(1 / zoomStep)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
