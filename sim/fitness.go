package sim

import "github.com/pthm-cable/gadots/geom"

// Fitness weights. Arrivals score 1/16 + 10000/steps^2, so a dot that
// reaches the goal in 100 steps scores 1.0625; everyone else scores the
// inverse square of their distance to the goal.
const (
	arrivalBase  = 1.0 / 16.0
	arrivalScale = 10000.0

	// minDistance is the closest a dot can be scored by distance. Anything
	// nearer counts as an arrival, which keeps every fitness finite.
	minDistance = 1e-6
)

// fitness scores one dot against the goal centre.
func fitness(atGoal bool, stepsTaken int, distance float64) float64 {
	if atGoal || distance < minDistance {
		steps := float64(max(stepsTaken, 1))
		return arrivalBase + arrivalScale/(steps*steps)
	}
	return 1 / (distance * distance)
}

// dotFitness scores d against goal.
func dotFitness(d *Dot, goal geom.Vec2) float64 {
	return fitness(d.atGoal, d.stepsTaken, geom.Distance(d.position, goal))
}

// champion returns the index of the largest fitness. Ties keep the lowest
// index.
func champion(fitnesses []float64) (index int, best float64) {
	for i, f := range fitnesses {
		if i == 0 || f > best {
			index, best = i, f
		}
	}
	return index, best
}
