package sim

import "github.com/pthm-cable/gadots/geom"

// DeathCounts tallies how the dots of one generation died.
type DeathCounts struct {
	Bounds    int
	Obstacle  int
	Pruned    int
	Exhausted int
}

// Total returns the number of dead dots.
func (c DeathCounts) Total() int {
	return c.Bounds + c.Obstacle + c.Pruned + c.Exhausted
}

func (c *DeathCounts) add(cause DeathCause) {
	switch cause {
	case CauseBounds:
		c.Bounds++
	case CauseObstacle:
		c.Obstacle++
	case CausePruned:
		c.Pruned++
	case CauseExhausted:
		c.Exhausted++
	}
}

// GenerationReport summarises a finished generation. It is built after
// scoring and champion bookkeeping, just before the next generation
// replaces the dots.
type GenerationReport struct {
	Generation int // the generation that finished
	Ticks      int // ticks it took

	Fitnesses  []float64 // aligned with dot index; owned by the report
	FitnessSum float64
	MaxFitness float64

	ChampionIndex  int
	ChampionSteps  int
	ChampionAtGoal bool
	ChampionGenome []geom.Vec2 // copy; becomes index 0 of the next generation

	MinSteps int // best step count after this generation's bookkeeping
	Arrivals int
	Deaths   DeathCounts
}
