package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gadots/sim"
	"github.com/pthm-cable/gadots/ui"
)

var (
	backgroundColor = rl.Color{R: 12, G: 12, B: 16, A: 255}
	boundsColor     = rl.Color{R: 60, G: 60, B: 70, A: 255}
	obstacleColor   = rl.Color{R: 110, G: 110, B: 110, A: 255}
	goalColor       = rl.Color{R: 40, G: 110, B: 255, A: 255}
	dotColor        = rl.Color{R: 230, G: 230, B: 230, A: 200}
	deadColor       = rl.Color{R: 200, G: 50, B: 50, A: 160}
	arrivedColor    = rl.Color{R: 60, G: 220, B: 90, A: 255}
	championColor   = rl.Color{R: 0, G: 255, B: 100, A: 255}
)

// Draw renders one frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	g.drawPlane()
	g.drawDots()
	g.drawUI()

	rl.EndDrawing()
}

func (g *Game) drawPlane() {
	w, h := g.pop.Bounds()
	x0, y0 := g.camera.WorldToScreen(0, float32(h))
	rl.DrawRectangleLinesEx(rl.Rectangle{
		X: x0, Y: y0,
		Width:  g.camera.WorldLength(float32(w)),
		Height: g.camera.WorldLength(float32(h)),
	}, 1, boundsColor)

	for _, o := range g.pop.Obstacles() {
		g.drawCircle(o, obstacleColor)
	}
	g.drawCircle(g.pop.Goal(), goalColor)
}

func (g *Game) drawCircle(c sim.Circle, color rl.Color) {
	x, y, r := float32(c.Center.X), float32(c.Center.Y), float32(c.Radius)
	if !g.camera.IsVisible(x, y, r) {
		return
	}
	sx, sy := g.camera.WorldToScreen(x, y)
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, g.camera.WorldLength(r), color)
}

func (g *Game) drawDots() {
	champRadius := g.cfg.Display.ChampionRadius
	var champ *sim.View

	g.pop.EachVisible(func(i int, v sim.View) {
		if v.Champion && g.pop.Generation() > 1 {
			// Drawn last so it stays on top.
			vv := v
			champ = &vv
			return
		}
		g.drawCircle(sim.Circle{Center: v.Position, Radius: v.Radius}, dotStyle(v))
	})

	if champ != nil {
		r := max(champRadius, champ.Radius)
		g.drawCircle(sim.Circle{Center: champ.Position, Radius: r}, championColor)
	}
}

// dotStyle picks a dot's color from its state.
func dotStyle(v sim.View) rl.Color {
	switch {
	case v.AtGoal:
		return arrivedColor
	case !v.Alive:
		return deadColor
	}
	return dotColor
}

func (g *Game) drawUI() {
	data := g.hudData()
	data.FPS = rl.GetFPS()

	bottom := g.hud.Draw(data)
	g.controls.SetPosition(10, bottom+10)

	state := g.controls.Draw(ui.ControlsState{
		Paused:       g.paused,
		ChampionOnly: g.pop.ChampionOnly(),
		Speed:        g.stepsPerUpdate,
	})
	g.paused = state.Paused
	g.stepsPerUpdate = state.Speed
	if state.ChampionOnly != g.pop.ChampionOnly() {
		g.pop.SetChampionOnly(state.ChampionOnly)
	}

	g.hud.DrawControls(int32(g.screenHeight), legendTxt)
}

// hudData collects the HUD snapshot. It makes no raylib calls.
func (g *Game) hudData() ui.HUDData {
	data := ui.HUDData{
		Generation:   g.pop.Generation(),
		Ticks:        g.pop.Ticks(),
		Steps:        g.pop.Steps(),
		Population:   g.pop.AgentCount(),
		MaxFitness:   g.pop.ChampionFitness(),
		MinSteps:     g.pop.BestStepCount(),
		HasArrived:   g.pop.HasArrived(),
		Accuracy:     g.Accuracy(),
		Speed:        g.stepsPerUpdate,
		Paused:       g.paused,
		Done:         g.Done(),
		ChampionOnly: g.pop.ChampionOnly(),
	}
	if g.Done() {
		data.DoneReason = g.stop.String()
	}
	g.pop.Each(func(_ int, v sim.View) {
		switch {
		case v.AtGoal:
			data.AtGoal++
		case v.Alive:
			data.Active++
		default:
			data.Dead++
		}
	})
	return data
}
