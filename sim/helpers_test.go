package sim

import (
	"math/rand"

	"github.com/pthm-cable/gadots/geom"
)

// fixedRand always returns the same value. 0.25 points every random step
// straight up (+y).
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// smallConfig is a 400x400 plane with dots starting in the middle and the
// goal 150 units above.
func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Size = 50
	cfg.Steps = 60
	cfg.Width = 400
	cfg.Height = 400
	cfg.Start = geom.New(200, 200)
	cfg.Goal = Circle{Center: geom.New(200, 350), Radius: 10}
	return cfg
}
