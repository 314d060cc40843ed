package sim

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/gadots/geom"
)

// Population owns one generation of dots plus the goal, obstacles and
// evolutionary bookkeeping that carry across generations.
type Population struct {
	cfg Config
	rng Rand

	// dots is replaced wholesale at every generation boundary. All genomes
	// of a generation share one backing array.
	dots []Dot

	fitnesses  []float64
	fitnessSum float64
	maxFitness float64
	champion   int

	minSteps   int
	arrived    bool
	generation int
	ticks      int

	observers []func(GenerationReport)
}

// New validates cfg and creates generation 1 with random genomes drawn
// from rng.
func New(cfg Config, rng Rand) (*Population, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Obstacles = append([]Circle(nil), cfg.Obstacles...)

	p := &Population{
		cfg:        cfg,
		rng:        rng,
		minSteps:   cfg.patience(),
		generation: 1,
	}

	genomes := make([]geom.Vec2, cfg.Size*cfg.Steps)
	for i := range genomes {
		genomes[i] = randomStep(rng, cfg.StepSize)
	}
	p.dots = make([]Dot, cfg.Size)
	for i := range p.dots {
		slot := p.genomeSlot(genomes, i)
		if i < len(cfg.Seeds) {
			copy(slot, cfg.Seeds[i])
		}
		p.dots[i] = newDot(cfg.Start, slot, cfg.DotRadius)
	}
	p.cfg.Seeds = nil
	return p, nil
}

// MustNew is like New but panics on error.
func MustNew(cfg Config, rng Rand) *Population {
	p, err := New(cfg, rng)
	if err != nil {
		panic(err)
	}
	return p
}

// genomeSlot returns dot i's window into a generation's genome arena.
// The capacity is capped so no genome can grow into its neighbour.
func (p *Population) genomeSlot(arena []geom.Vec2, i int) []geom.Vec2 {
	n := p.cfg.Steps
	return arena[i*n : (i+1)*n : (i+1)*n]
}

// OnGeneration registers fn to receive a report each time a generation
// finishes. Observers run synchronously inside Tick, in registration order.
func (p *Population) OnGeneration(fn func(GenerationReport)) {
	p.observers = append(p.observers, fn)
}

// Tick advances the simulation by one step. Every active dot, in index
// order, is clamped to the plane, pruned, collided with obstacles, moved
// and tested against the goal. If that leaves no dot active, the
// generation is scored and replaced before Tick returns: the finishing
// advance pass and the generation transition happen in the same call.
func (p *Population) Tick() {
	p.ticks++
	for i := range p.dots {
		p.update(&p.dots[i])
	}
	if p.IsGenerationFinished() {
		p.evolve()
	}
}

func (p *Population) update(d *Dot) {
	if !d.Active() {
		return
	}

	if d.clampToBounds(p.cfg.Width, p.cfg.Height) {
		d.kill(CauseBounds)
		return
	}
	if d.stepsTaken > p.minSteps {
		d.kill(CausePruned)
		return
	}
	for _, o := range p.cfg.Obstacles {
		if o.Contains(d.position) {
			d.kill(CauseObstacle)
			return
		}
	}

	d.Advance()
	if d.alive {
		d.atGoal = d.ReachedGoal(p.cfg.Goal.Center, p.cfg.Goal.Radius)
	}
}

// IsGenerationFinished reports whether every dot is dead or at the goal.
func (p *Population) IsGenerationFinished() bool {
	for i := range p.dots {
		if p.dots[i].Active() {
			return false
		}
	}
	return true
}

// evolve scores the finished generation, updates the best step count,
// breeds and mutates the next generation and swaps it in.
func (p *Population) evolve() {
	p.score()

	champ := &p.dots[p.champion]
	if champ.atGoal {
		p.arrived = true
		if champ.stepsTaken < p.minSteps {
			p.minSteps = champ.stepsTaken
		}
	}

	report := p.report()

	next := p.breed()
	mutate(next, p.cfg.MutationRate, p.cfg.StepSize, p.rng)

	p.dots = next
	p.generation++
	p.ticks = 0

	for _, fn := range p.observers {
		fn(report)
	}
}

func (p *Population) score() {
	if cap(p.fitnesses) < len(p.dots) {
		p.fitnesses = make([]float64, len(p.dots))
	}
	p.fitnesses = p.fitnesses[:len(p.dots)]

	p.fitnessSum = 0
	for i := range p.dots {
		f := dotFitness(&p.dots[i], p.cfg.Goal.Center)
		p.fitnesses[i] = f
		p.fitnessSum += f
	}
	p.champion, p.maxFitness = champion(p.fitnesses)
}

// breed builds the next generation: an exact copy of the champion at
// index 0, then roulette-selected copies for the rest.
func (p *Population) breed() []Dot {
	n := len(p.dots)
	arena := make([]geom.Vec2, n*p.cfg.Steps)
	next := make([]Dot, n)

	next[0] = p.child(&p.dots[p.champion], p.genomeSlot(arena, 0))
	for i := 1; i < n; i++ {
		parent := rouletteSelect(p.fitnesses, p.fitnessSum, p.rng)
		next[i] = p.child(&p.dots[parent], p.genomeSlot(arena, i))
	}
	return next
}

// child copies parent's genome into slot and places it at the start.
func (p *Population) child(parent *Dot, slot []geom.Vec2) Dot {
	copy(slot, parent.genome)
	return newDot(p.cfg.Start, slot, p.cfg.DotRadius)
}

func (p *Population) report() GenerationReport {
	champ := &p.dots[p.champion]
	r := GenerationReport{
		Generation:     p.generation,
		Ticks:          p.ticks,
		Fitnesses:      append([]float64(nil), p.fitnesses...),
		FitnessSum:     p.fitnessSum,
		MaxFitness:     p.maxFitness,
		ChampionIndex:  p.champion,
		ChampionSteps:  champ.stepsTaken,
		ChampionAtGoal: champ.atGoal,
		ChampionGenome: append([]geom.Vec2(nil), champ.genome...),
		MinSteps:       p.minSteps,
	}
	for i := range p.dots {
		d := &p.dots[i]
		if d.atGoal {
			r.Arrivals++
		} else {
			r.Deaths.add(d.cause)
		}
	}
	return r
}

// Generation returns the current generation number, starting at 1.
func (p *Population) Generation() int { return p.generation }

// ChampionFitness returns the best fitness of the last finished generation,
// or 0 before the first one finishes.
func (p *Population) ChampionFitness() float64 { return p.maxFitness }

// BestStepCount returns the fewest steps a champion has needed to reach
// the goal. Until a champion arrives it is the patience sentinel.
func (p *Population) BestStepCount() int { return p.minSteps }

// HasArrived reports whether any generation's champion has reached the goal.
func (p *Population) HasArrived() bool { return p.arrived }

// AgentCount returns the number of dots per generation.
func (p *Population) AgentCount() int { return len(p.dots) }

// Steps returns the genome length.
func (p *Population) Steps() int { return p.cfg.Steps }

// Ticks returns the number of ticks run in the current generation.
func (p *Population) Ticks() int { return p.ticks }

// Start returns the starting point of every dot.
func (p *Population) Start() geom.Vec2 { return p.cfg.Start }

// Bounds returns the plane dimensions.
func (p *Population) Bounds() (width, height float64) { return p.cfg.Width, p.cfg.Height }

// Goal returns the goal region.
func (p *Population) Goal() Circle { return p.cfg.Goal }

// Obstacles returns a copy of the obstacle list.
func (p *Population) Obstacles() []Circle {
	return append([]Circle(nil), p.cfg.Obstacles...)
}

// MutationRate returns the per-gene mutation probability.
func (p *Population) MutationRate() float64 { return p.cfg.MutationRate }

// StepSize returns the length of every genome step.
func (p *Population) StepSize() float64 { return p.cfg.StepSize }

// ChampionOnly returns the display hint set at construction.
func (p *Population) ChampionOnly() bool { return p.cfg.ChampionOnly }

// SetChampionOnly changes the display hint. It has no effect on Tick.
func (p *Population) SetChampionOnly(v bool) { p.cfg.ChampionOnly = v }

// View is a read-only snapshot of one dot, for drawing and inspection.
type View struct {
	Position   geom.Vec2
	Radius     float64
	Alive      bool
	AtGoal     bool
	StepsTaken int
	Cause      DeathCause
	Champion   bool // index 0, the elite copy of the previous champion
}

// ErrIndexOutOfRange is returned by lookups with an invalid dot index.
var ErrIndexOutOfRange = errors.New("sim: dot index out of range")

// View returns a snapshot of dot i.
func (p *Population) View(i int) (View, error) {
	if i < 0 || i >= len(p.dots) {
		return View{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(p.dots))
	}
	return p.view(i), nil
}

func (p *Population) view(i int) View {
	d := &p.dots[i]
	return View{
		Position:   d.position,
		Radius:     d.radius,
		Alive:      d.alive,
		AtGoal:     d.atGoal,
		StepsTaken: d.stepsTaken,
		Cause:      d.cause,
		Champion:   i == 0,
	}
}

// Each calls fn for every dot in index order.
func (p *Population) Each(fn func(i int, v View)) {
	for i := range p.dots {
		fn(i, p.view(i))
	}
}

// VisibleCount returns how many dots EachVisible would yield.
func (p *Population) VisibleCount() int {
	if p.cfg.ChampionOnly {
		return 1
	}
	return len(p.dots)
}

// EachVisible is like Each but honours the champion-only display hint.
func (p *Population) EachVisible(fn func(i int, v View)) {
	if p.cfg.ChampionOnly {
		fn(0, p.view(0))
		return
	}
	p.Each(fn)
}

// Genome returns a copy of dot i's genome.
func (p *Population) Genome(i int) ([]geom.Vec2, error) {
	if i < 0 || i >= len(p.dots) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(p.dots))
	}
	return append([]geom.Vec2(nil), p.dots[i].genome...), nil
}
