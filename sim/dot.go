package sim

import "github.com/pthm-cable/gadots/geom"

// DeathCause records why a dot stopped moving without reaching the goal.
type DeathCause uint8

const (
	CauseNone      DeathCause = iota // alive or at goal
	CauseBounds                      // left the plane and was clamped back
	CauseObstacle                    // entered an obstacle
	CausePruned                      // used more steps than the best known solution
	CauseExhausted                   // ran out of genome steps
)

var causeNames = [...]string{
	CauseNone:      "none",
	CauseBounds:    "bounds",
	CauseObstacle:  "obstacle",
	CausePruned:    "pruned",
	CauseExhausted: "exhausted",
}

func (c DeathCause) String() string {
	if int(c) < len(causeNames) {
		return causeNames[c]
	}
	return "unknown"
}

// Dot is one candidate trajectory: a fixed genome of step vectors and the
// state of walking it during the current generation.
//
// A dot starts alive with no steps taken. Death and goal arrival are both
// terminal for the generation; the two flags are never set together.
type Dot struct {
	position   geom.Vec2
	genome     []geom.Vec2
	stepsTaken int
	alive      bool
	atGoal     bool
	radius     float64
	cause      DeathCause
}

// NewDot creates a dot at position with genomeLength random steps of
// length stepSize.
func NewDot(position geom.Vec2, genomeLength int, stepSize, radius float64, rng Rand) *Dot {
	genome := make([]geom.Vec2, genomeLength)
	for i := range genome {
		genome[i] = randomStep(rng, stepSize)
	}
	d := newDot(position, genome, radius)
	return &d
}

// newDot builds a dot that walks genome. The genome slice is owned by the
// dot from here on.
func newDot(position geom.Vec2, genome []geom.Vec2, radius float64) Dot {
	return Dot{
		position: position,
		genome:   genome,
		alive:    true,
		radius:   radius,
	}
}

// Position returns the dot's current position.
func (d *Dot) Position() geom.Vec2 { return d.position }

// Radius returns the collision and drawing radius.
func (d *Dot) Radius() float64 { return d.radius }

// Alive reports whether the dot has not died this generation.
func (d *Dot) Alive() bool { return d.alive }

// AtGoal reports whether the dot reached the goal this generation.
func (d *Dot) AtGoal() bool { return d.atGoal }

// StepsTaken returns how many genome steps have been applied.
func (d *Dot) StepsTaken() int { return d.stepsTaken }

// Cause returns why the dot died, or CauseNone.
func (d *Dot) Cause() DeathCause { return d.cause }

// Len returns the genome length.
func (d *Dot) Len() int { return len(d.genome) }

// Active reports whether the dot can still move.
func (d *Dot) Active() bool { return d.alive && !d.atGoal }

// Advance applies the next genome step. A dot with no steps left dies of
// exhaustion instead of moving. Dead and arrived dots are left untouched.
func (d *Dot) Advance() {
	if !d.Active() {
		return
	}
	if d.stepsTaken >= len(d.genome) {
		d.kill(CauseExhausted)
		return
	}
	d.position = d.position.Add(d.genome[d.stepsTaken])
	d.stepsTaken++
}

// ReachedGoal reports whether the dot is strictly within goalRadius of goalPos.
func (d *Dot) ReachedGoal(goalPos geom.Vec2, goalRadius float64) bool {
	return geom.Distance(d.position, goalPos) < goalRadius
}

// kill marks an active dot dead. Arrived dots keep their goal status.
func (d *Dot) kill(cause DeathCause) {
	if !d.Active() {
		return
	}
	d.alive = false
	d.cause = cause
}

// setGene replaces one genome step. Only the population's mutation pass
// calls this.
func (d *Dot) setGene(i int, step geom.Vec2) {
	d.genome[i] = step
}

// clampToBounds pulls the dot back inside [radius, w-radius] x [radius, h-radius].
// It reports whether any coordinate was out of range.
func (d *Dot) clampToBounds(width, height float64) bool {
	x, y := d.position.X, d.position.Y
	out := false

	if x < d.radius {
		x, out = d.radius, true
	} else if x > width-d.radius {
		x, out = width-d.radius, true
	}
	if y < d.radius {
		y, out = d.radius, true
	} else if y > height-d.radius {
		y, out = height-d.radius, true
	}

	if out {
		d.position = geom.New(x, y)
	}
	return out
}
