package sim

import (
	"math"

	"github.com/pthm-cable/gadots/geom"
)

// Rand is the randomness source shared by a population. *rand.Rand from
// math/rand and math/rand/v2 both satisfy it.
type Rand interface {
	// Float64 returns a pseudo-random number in [0, 1).
	Float64() float64
}

// randomStep samples a direction uniformly in [0, 2pi) and returns the
// step vector of length magnitude pointing that way.
func randomStep(rng Rand, magnitude float64) geom.Vec2 {
	return geom.FromPolar(rng.Float64()*2*math.Pi, magnitude)
}
