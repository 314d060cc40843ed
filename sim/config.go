package sim

import (
	"fmt"

	"github.com/pthm-cable/gadots/geom"
)

// Defaults used by DefaultConfig.
const (
	DefaultMutationRate = 0.01
	DefaultStepSize     = 15.0
	DefaultDotRadius    = 3.0
	DefaultPatience     = 200
)

// Config describes a population at construction time.
type Config struct {
	Size   int       // number of dots per generation
	Start  geom.Vec2 // where every dot of every generation starts
	Steps  int       // genome length
	Width  float64   // plane width
	Height float64   // plane height

	Goal      Circle
	Obstacles []Circle

	MutationRate float64 // per-gene replacement probability, 0..1
	StepSize     float64 // length of every genome step
	DotRadius    float64

	// Patience is the initial best-step count; dots that have taken more
	// steps than the best known solution are pruned. Zero means the genome
	// length.
	Patience int

	// Seeds are genomes copied into the first dots of generation 1, for
	// resuming from an earlier run. Each must have length Steps and there
	// may be at most Size of them. The remaining dots start random.
	Seeds [][]geom.Vec2

	// ChampionOnly is a display hint: only the elite dot is exposed through
	// EachVisible. The simulation never reads it.
	ChampionOnly bool
}

// DefaultConfig returns a 1000-dot, 200-step population on an 800x800
// plane, starting near the bottom and aiming for a goal near the top.
func DefaultConfig() Config {
	return Config{
		Size:         1000,
		Start:        geom.New(400, 100),
		Steps:        200,
		Width:        800,
		Height:       800,
		Goal:         Circle{Center: geom.New(400, 640), Radius: 10},
		MutationRate: DefaultMutationRate,
		StepSize:     DefaultStepSize,
		DotRadius:    DefaultDotRadius,
		Patience:     DefaultPatience,
	}
}

// Validate reports the first problem that would make the population
// degenerate. All returned errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Size < 1:
		return fmt.Errorf("%w: population size %d, need at least 1", ErrInvalidConfig, c.Size)
	case c.Steps < 1:
		return fmt.Errorf("%w: genome length %d, need at least 1", ErrInvalidConfig, c.Steps)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: plane bounds %vx%v must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.Start.X < 0 || c.Start.X > c.Width || c.Start.Y < 0 || c.Start.Y > c.Height:
		return fmt.Errorf("%w: start %v outside plane %vx%v", ErrInvalidConfig, c.Start, c.Width, c.Height)
	case c.Goal.Radius <= 0:
		return fmt.Errorf("%w: goal radius %v must be positive", ErrInvalidConfig, c.Goal.Radius)
	case c.MutationRate < 0 || c.MutationRate > 1:
		return fmt.Errorf("%w: mutation rate %v outside [0, 1]", ErrInvalidConfig, c.MutationRate)
	case c.StepSize <= 0:
		return fmt.Errorf("%w: step size %v must be positive", ErrInvalidConfig, c.StepSize)
	case c.DotRadius <= 0:
		return fmt.Errorf("%w: dot radius %v must be positive", ErrInvalidConfig, c.DotRadius)
	case c.Patience < 0:
		return fmt.Errorf("%w: patience %d must not be negative", ErrInvalidConfig, c.Patience)
	}

	for i, o := range c.Obstacles {
		if o.Radius <= 0 {
			return fmt.Errorf("%w: obstacle %d radius %v must be positive", ErrInvalidConfig, i, o.Radius)
		}
		if o.Contains(c.Start) {
			return fmt.Errorf("%w: start %v inside obstacle %d", ErrInvalidConfig, c.Start, i)
		}
	}
	if len(c.Seeds) > c.Size {
		return fmt.Errorf("%w: %d seed genomes for population of %d", ErrInvalidConfig, len(c.Seeds), c.Size)
	}
	for i, g := range c.Seeds {
		if len(g) != c.Steps {
			return fmt.Errorf("%w: seed genome %d has %d steps, want %d", ErrInvalidConfig, i, len(g), c.Steps)
		}
	}
	return nil
}

// patience resolves the initial best-step sentinel.
func (c Config) patience() int {
	if c.Patience == 0 {
		return c.Steps
	}
	return c.Patience
}
