package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/gadots/sim"
)

// GenerationStats summarises one finished generation.
type GenerationStats struct {
	Generation int `csv:"generation"`
	Ticks      int `csv:"ticks"`

	// Fitness distribution
	FitnessSum  float64 `csv:"fitness_sum"`
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessStd  float64 `csv:"fitness_std"`
	FitnessP10  float64 `csv:"fitness_p10"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessP90  float64 `csv:"fitness_p90"`
	FitnessMax  float64 `csv:"fitness_max"`

	// Champion
	ChampionSteps  int  `csv:"champion_steps"`
	ChampionAtGoal bool `csv:"champion_at_goal"`

	MinSteps int     `csv:"min_steps"`
	Accuracy float64 `csv:"accuracy"`

	// Outcomes
	Arrivals        int `csv:"arrivals"`
	DeathsBounds    int `csv:"deaths_bounds"`
	DeathsObstacle  int `csv:"deaths_obstacle"`
	DeathsPruned    int `csv:"deaths_pruned"`
	DeathsExhausted int `csv:"deaths_exhausted"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Accuracy is the ratio of the shortest possible path to the best path
// found, in steps. It is 0 until a dot has arrived.
func Accuracy(minPossibleSteps, minSteps int, arrived bool) float64 {
	if !arrived || minSteps <= 0 {
		return 0
	}
	return float64(minPossibleSteps) / float64(minSteps)
}

// FromReport builds the stats row for a finished generation.
func FromReport(r sim.GenerationReport, minPossibleSteps int, arrived bool) GenerationStats {
	s := GenerationStats{
		Generation:      r.Generation,
		Ticks:           r.Ticks,
		FitnessSum:      r.FitnessSum,
		FitnessMax:      r.MaxFitness,
		ChampionSteps:   r.ChampionSteps,
		ChampionAtGoal:  r.ChampionAtGoal,
		MinSteps:        r.MinSteps,
		Accuracy:        Accuracy(minPossibleSteps, r.MinSteps, arrived),
		Arrivals:        r.Arrivals,
		DeathsBounds:    r.Deaths.Bounds,
		DeathsObstacle:  r.Deaths.Obstacle,
		DeathsPruned:    r.Deaths.Pruned,
		DeathsExhausted: r.Deaths.Exhausted,
	}
	s.FitnessMean, s.FitnessStd, s.FitnessP10, s.FitnessP50, s.FitnessP90 = ComputeFitnessStats(r.Fitnesses)
	return s
}

// ComputeFitnessStats calculates mean, std, and percentiles of a fitness slice.
func ComputeFitnessStats(values []float64) (mean, std, p10, p50, p90 float64) {
	switch len(values) {
	case 0:
		return 0, 0, 0, 0, 0
	case 1:
		v := values[0]
		return v, 0, v, v, v
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// Deaths returns the total number of dots that died.
func (s GenerationStats) Deaths() int {
	return s.DeathsBounds + s.DeathsObstacle + s.DeathsPruned + s.DeathsExhausted
}

// ArrivalRate returns the fraction of the generation that reached the goal.
func (s GenerationStats) ArrivalRate() float64 {
	n := s.Arrivals + s.Deaths()
	if n == 0 {
		return 0
	}
	return float64(s.Arrivals) / float64(n)
}

// BestOf returns the highest accuracy across rows, or 0 for none.
func BestOf(rows []GenerationStats) float64 {
	if len(rows) == 0 {
		return 0
	}
	acc := make([]float64, len(rows))
	for i, r := range rows {
		acc[i] = r.Accuracy
	}
	return floats.Max(acc)
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("ticks", s.Ticks),
		slog.Float64("fitness_mean", s.FitnessMean),
		slog.Float64("fitness_p50", s.FitnessP50),
		slog.Float64("fitness_max", s.FitnessMax),
		slog.Int("champion_steps", s.ChampionSteps),
		slog.Bool("champion_at_goal", s.ChampionAtGoal),
		slog.Int("min_steps", s.MinSteps),
		slog.Float64("accuracy", s.Accuracy),
		slog.Int("arrivals", s.Arrivals),
		slog.Int("deaths", s.Deaths()),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation",
		"generation", s.Generation,
		"ticks", s.Ticks,
		"fitness_sum", s.FitnessSum,
		"fitness_mean", s.FitnessMean,
		"fitness_std", s.FitnessStd,
		"fitness_p10", s.FitnessP10,
		"fitness_p50", s.FitnessP50,
		"fitness_p90", s.FitnessP90,
		"fitness_max", s.FitnessMax,
		"champion_steps", s.ChampionSteps,
		"champion_at_goal", s.ChampionAtGoal,
		"min_steps", s.MinSteps,
		"accuracy", s.Accuracy,
		"arrivals", s.Arrivals,
		"deaths_bounds", s.DeathsBounds,
		"deaths_obstacle", s.DeathsObstacle,
		"deaths_pruned", s.DeathsPruned,
		"deaths_exhausted", s.DeathsExhausted,
	)
}
