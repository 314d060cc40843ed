package game

import "log/slog"

// LogRunStart logs the parameters a run was started with.
func (g *Game) LogRunStart() {
	c := g.cfg
	slog.Info("run started",
		"population", c.Population.Size,
		"steps", c.Population.Steps,
		"world_w", c.Derived.WorldW,
		"world_h", c.Derived.WorldH,
		"start", c.Derived.Start,
		"goal", c.Derived.Goal,
		"obstacles", len(g.pop.Obstacles()),
		"mutation_rate", c.Evolution.MutationRate,
		"step_size", c.Evolution.StepSize,
		"min_possible_steps", g.minPossible,
		"steps_per_update", g.stepsPerUpdate,
		"output_dir", g.outputManager.Dir(),
	)
}

// LogRunEnd logs the outcome of a run.
func (g *Game) LogRunEnd() {
	attrs := []any{
		"reason", g.stop.String(),
		"generation", g.pop.Generation(),
		"ticks", g.ticks,
		"arrived", g.pop.HasArrived(),
		"min_steps", g.pop.BestStepCount(),
		"accuracy", g.Accuracy(),
		"first_arrival", g.firstArrival,
	}
	if best, ok := g.hallOfFame.Best(); ok {
		attrs = append(attrs, "best_generation", best.Generation, "best_fitness", best.Fitness)
	}
	slog.Info("run ended", attrs...)
}
