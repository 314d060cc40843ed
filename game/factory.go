package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/gadots/config"
	"github.com/pthm-cable/gadots/geom"
	"github.com/pthm-cable/gadots/nav"
	"github.com/pthm-cable/gadots/sim"
)

// SimConfig builds the population config for cfg, drawing any
// random obstacles from rng.
func SimConfig(cfg *config.Config, rng *rand.Rand) (sim.Config, error) {
	d := cfg.Derived
	sc := sim.Config{
		Size:         cfg.Population.Size,
		Start:        d.Start,
		Steps:        cfg.Population.Steps,
		Width:        d.WorldW,
		Height:       d.WorldH,
		Goal:         sim.Circle{Center: d.Goal, Radius: cfg.Goal.Radius},
		MutationRate: cfg.Evolution.MutationRate,
		StepSize:     cfg.Evolution.StepSize,
		DotRadius:    cfg.Evolution.DotRadius,
		Patience:     cfg.Evolution.Patience,
		ChampionOnly: cfg.Display.ChampionOnly,
	}

	for _, o := range cfg.Obstacles.Fixed {
		sc.Obstacles = append(sc.Obstacles, sim.Circle{
			Center: cfg.ToWorld(o.X, o.Y),
			Radius: o.Radius,
		})
	}

	random, err := RandomObstacles(cfg, rng)
	if err != nil {
		return sim.Config{}, err
	}
	sc.Obstacles = append(sc.Obstacles, random...)
	return sc, nil
}

// RandomObstacles places obstacles.random.count circles with x uniform in
// [radius, width) and y uniform in [y_min, goal.y). A candidate that
// covers the start or touches the goal is redrawn, up to max_attempts
// times.
func RandomObstacles(cfg *config.Config, rng *rand.Rand) ([]sim.Circle, error) {
	rc := cfg.Obstacles.Random
	if rc.Count <= 0 {
		return nil, nil
	}

	d := cfg.Derived
	r := rc.Radius
	yMin := rc.YMin * d.WorldH
	yMax := d.Goal.Y
	if r <= 0 || r >= d.WorldW || yMin >= yMax {
		return nil, fmt.Errorf("%w: random obstacles need radius in (0, %v) and y_min below the goal", sim.ErrInvalidConfig, d.WorldW)
	}
	attempts := max(rc.MaxAttempts, 1)
	goalClearance := r + cfg.Goal.Radius

	out := make([]sim.Circle, 0, rc.Count)
	for len(out) < rc.Count {
		placed := false
		for try := 0; try < attempts; try++ {
			c := sim.Circle{
				Center: geom.New(
					r+rng.Float64()*(d.WorldW-r),
					yMin+rng.Float64()*(yMax-yMin),
				),
				Radius: r,
			}
			if c.Contains(d.Start) || geom.Distance(c.Center, d.Goal) < goalClearance {
				continue
			}
			out = append(out, c)
			placed = true
			break
		}
		if !placed {
			return nil, fmt.Errorf("%w: could not place obstacle %d in %d attempts", sim.ErrInvalidConfig, len(out), attempts)
		}
	}
	return out, nil
}

// minPossibleSteps is the straight-line step count from start to goal,
// raised to the A* path length when obstacles stand in the way. An
// unreachable goal keeps the straight-line count.
func minPossibleSteps(cfg *config.Config, obstacles []sim.Circle) int {
	d := cfg.Derived
	cell := cfg.Obstacles.NavCellSize
	if len(obstacles) == 0 || cell <= 0 {
		return d.MinPossibleSteps
	}

	grid := nav.NewGrid(d.WorldW, d.WorldH, cell, obstacles, 0)
	steps, ok := nav.MinSteps(grid, d.Start, d.Goal, cfg.Evolution.StepSize)
	if !ok {
		slog.Warn("no obstacle-free path to goal", "start", d.Start, "goal", d.Goal)
		return d.MinPossibleSteps
	}
	return max(steps, d.MinPossibleSteps)
}
