package game

import (
	"log/slog"

	"github.com/pthm-cable/gadots/config"
)

// StopReason says why a run stopped.
type StopReason uint8

const (
	StopNone StopReason = iota
	StopGeneration
	StopAccuracy
	StopMaxTicks
)

func (r StopReason) String() string {
	switch r {
	case StopNone:
		return "none"
	case StopGeneration:
		return "generation"
	case StopAccuracy:
		return "accuracy"
	case StopMaxTicks:
		return "max_ticks"
	}
	return "unknown"
}

// checkStopRules applies the run limits in order: generation, accuracy,
// then tick budget. Zero limits are disabled.
func checkStopRules(run config.RunConfig, generation int, accuracy float64, ticks int) StopReason {
	switch {
	case run.UntilGeneration > 0 && generation > run.UntilGeneration:
		return StopGeneration
	case run.UntilAccuracy > 0 && accuracy >= run.UntilAccuracy:
		return StopAccuracy
	case run.MaxTicks > 0 && ticks >= run.MaxTicks:
		return StopMaxTicks
	}
	return StopNone
}

func (g *Game) checkStop() {
	if g.stop != StopNone {
		return
	}
	g.stop = checkStopRules(g.cfg.Run, g.pop.Generation(), g.Accuracy(), g.ticks)
	if g.stop != StopNone {
		slog.Info("run finished",
			"reason", g.stop.String(),
			"generation", g.pop.Generation(),
			"ticks", g.ticks,
			"min_steps", g.pop.BestStepCount(),
			"accuracy", g.Accuracy(),
		)
	}
}
