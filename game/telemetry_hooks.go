package game

import (
	"log/slog"

	"github.com/pthm-cable/gadots/sim"
	"github.com/pthm-cable/gadots/telemetry"
)

// onGeneration is registered with the population and runs inside the
// Tick that finishes a generation.
func (g *Game) onGeneration(r sim.GenerationReport) {
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)

	stats := telemetry.FromReport(r, g.minPossible, g.pop.HasArrived())
	g.last = stats
	g.history = append(g.history, stats)
	if r.ChampionAtGoal && g.firstArrival == 0 {
		g.firstArrival = r.Generation
	}

	every := max(g.cfg.Telemetry.LogEvery, 1)
	if g.logStats && r.Generation%every == 0 {
		stats.LogStats()
		g.perfCollector.Stats().LogStats()
	}

	if err := g.outputManager.WriteGeneration(stats); err != nil {
		slog.Error("failed to write generation stats", "error", err)
	}
	if err := g.outputManager.WritePerf(g.perfCollector.Stats(), r.Generation); err != nil {
		slog.Error("failed to write perf stats", "error", err)
	}

	for _, m := range g.milestones.Check(stats) {
		m.LogMilestone()
		if err := g.outputManager.WriteMilestone(m); err != nil {
			slog.Error("failed to write milestone", "error", err)
		}
	}

	if g.hallOfFame.Consider(r) {
		if err := g.outputManager.WriteChampion(r.Generation, r.ChampionGenome); err != nil {
			slog.Error("failed to write champion", "error", err)
		}
	}

	g.perfCollector.StartPhase(telemetry.PhaseSimulate)
}

// LastStats returns the stats of the most recently finished generation.
func (g *Game) LastStats() (telemetry.GenerationStats, bool) {
	return g.last, len(g.history) > 0
}
