package sim

import (
	"errors"
	"slices"
	"testing"

	"github.com/pthm-cable/gadots/geom"
)

func TestNewRejectsDegenerateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero size", func(c *Config) { c.Size = 0 }},
		{"zero genome", func(c *Config) { c.Steps = 0 }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"start outside plane", func(c *Config) { c.Start = geom.New(-5, 10) }},
		{"zero goal radius", func(c *Config) { c.Goal.Radius = 0 }},
		{"mutation rate above one", func(c *Config) { c.MutationRate = 1.5 }},
		{"negative mutation rate", func(c *Config) { c.MutationRate = -0.1 }},
		{"zero step size", func(c *Config) { c.StepSize = 0 }},
		{"zero dot radius", func(c *Config) { c.DotRadius = 0 }},
		{"negative patience", func(c *Config) { c.Patience = -1 }},
		{"start inside obstacle", func(c *Config) {
			c.Obstacles = []Circle{{Center: c.Start, Radius: 20}}
		}},
		{"obstacle without radius", func(c *Config) {
			c.Obstacles = []Circle{{Center: geom.New(10, 10), Radius: 0}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig()
			tt.mutate(&cfg)
			p, err := New(cfg, seeded(1))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
			if p != nil {
				t.Error("expected nil population on error")
			}
		})
	}

	t.Run("nil rng", func(t *testing.T) {
		if _, err := New(smallConfig(), nil); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("nil rng: got %v", err)
		}
	})
}

func TestNewInitialState(t *testing.T) {
	cfg := smallConfig()
	p := MustNew(cfg, seeded(1))

	if p.Generation() != 1 {
		t.Errorf("generation = %d, want 1", p.Generation())
	}
	if p.AgentCount() != cfg.Size {
		t.Errorf("agent count = %d, want %d", p.AgentCount(), cfg.Size)
	}
	if p.BestStepCount() != DefaultPatience {
		t.Errorf("best step count = %d, want %d", p.BestStepCount(), DefaultPatience)
	}
	if p.HasArrived() || p.IsGenerationFinished() {
		t.Error("fresh population should have no arrivals and be unfinished")
	}
	p.Each(func(i int, v View) {
		if v.Position != cfg.Start || !v.Alive || v.AtGoal || v.StepsTaken != 0 {
			t.Errorf("dot %d: unexpected view %+v", i, v)
		}
		if v.Champion != (i == 0) {
			t.Errorf("dot %d: champion flag %v", i, v.Champion)
		}
	})
}

func TestPatienceDefaultsToGenomeLength(t *testing.T) {
	cfg := smallConfig()
	cfg.Patience = 0
	p := MustNew(cfg, seeded(1))
	if p.BestStepCount() != cfg.Steps {
		t.Errorf("best step count = %d, want genome length %d", p.BestStepCount(), cfg.Steps)
	}
}

func TestBoundaryClampKillsOnSameTick(t *testing.T) {
	cfg := smallConfig()
	cfg.Size = 2
	p := MustNew(cfg, seeded(3))

	p.dots[0].position = geom.New(cfg.Width+7, 120)
	p.Tick()

	v, err := p.View(0)
	if err != nil {
		t.Fatal(err)
	}
	if v.Position.X != cfg.Width-cfg.DotRadius || v.Position.Y != 120 {
		t.Errorf("position = %+v, want x clamped to %v", v.Position, cfg.Width-cfg.DotRadius)
	}
	if v.Alive || v.Cause != CauseBounds {
		t.Errorf("expected bounds death, got alive=%v cause=%v", v.Alive, v.Cause)
	}
	if v.StepsTaken != 0 {
		t.Errorf("clamped dot should not also advance, steps=%d", v.StepsTaken)
	}

	// A dead dot stays put on later ticks.
	p.Tick()
	if again, _ := p.View(0); again.Position != v.Position {
		t.Errorf("dead dot moved from %+v to %+v", v.Position, again.Position)
	}
}

func TestPruningUsesCurrentBestSteps(t *testing.T) {
	cfg := smallConfig()
	cfg.Size = 2
	p := MustNew(cfg, fixedRand(0.25))
	p.minSteps = 2

	for i := 0; i < 3; i++ {
		p.Tick()
	}
	v, _ := p.View(1)
	if !v.Alive || v.StepsTaken != 3 {
		t.Fatalf("dot should have taken 3 steps alive, got %+v", v)
	}

	var report GenerationReport
	p.OnGeneration(func(r GenerationReport) { report = r })
	p.Tick()

	if report.Deaths.Pruned != 2 {
		t.Errorf("pruned deaths = %d, want 2 (report %+v)", report.Deaths.Pruned, report.Deaths)
	}
	if p.Generation() != 2 {
		t.Errorf("generation = %d, want 2", p.Generation())
	}
}

func TestObstacleKills(t *testing.T) {
	cfg := smallConfig()
	cfg.Size = 1
	cfg.Obstacles = []Circle{{Center: geom.New(200, 215), Radius: 5}}
	p := MustNew(cfg, fixedRand(0.25))

	var report GenerationReport
	p.OnGeneration(func(r GenerationReport) { report = r })

	p.Tick() // moves into the obstacle
	if p.Generation() != 1 {
		t.Fatal("generation should not finish on the first tick")
	}
	p.Tick() // collision detected before moving

	if p.Generation() != 2 {
		t.Fatalf("generation = %d, want 2", p.Generation())
	}
	if report.Deaths.Obstacle != 1 || report.Deaths.Total() != 1 {
		t.Errorf("deaths = %+v, want one obstacle death", report.Deaths)
	}
	if report.ChampionSteps != 1 {
		t.Errorf("champion steps = %d, want 1", report.ChampionSteps)
	}
}

func TestGenerationFinishesWhenAllExhausted(t *testing.T) {
	cfg := smallConfig()
	cfg.Size = 3
	cfg.Steps = 1
	p := MustNew(cfg, fixedRand(0.25))

	var reports []GenerationReport
	p.OnGeneration(func(r GenerationReport) { reports = append(reports, r) })

	p.Tick()
	if p.IsGenerationFinished() || len(reports) != 0 {
		t.Fatal("one-step genomes are still active after their only step")
	}

	p.Tick()
	if len(reports) != 1 {
		t.Fatalf("expected one finished generation, got %d", len(reports))
	}
	r := reports[0]
	if r.Generation != 1 || r.Ticks != 2 || r.Deaths.Exhausted != 3 {
		t.Errorf("unexpected report %+v", r)
	}
	if p.Generation() != 2 || p.Ticks() != 0 {
		t.Errorf("after evolve: generation=%d ticks=%d", p.Generation(), p.Ticks())
	}
	p.Each(func(i int, v View) {
		if !v.Alive || v.StepsTaken != 0 || v.Position != cfg.Start {
			t.Errorf("new generation dot %d not reset: %+v", i, v)
		}
	})
}

func TestIsGenerationFinished(t *testing.T) {
	cfg := smallConfig()
	cfg.Size = 4
	p := MustNew(cfg, seeded(9))

	p.dots[0].kill(CauseBounds)
	p.dots[1].atGoal = true
	p.dots[2].kill(CauseObstacle)
	if p.IsGenerationFinished() {
		t.Fatal("dot 3 is still active")
	}
	p.dots[3].kill(CausePruned)
	if !p.IsGenerationFinished() {
		t.Fatal("every dot is dead or at goal")
	}
}

func TestElitismCopiesChampionGenome(t *testing.T) {
	cfg := smallConfig()
	cfg.MutationRate = 0.5 // heavy mutation would show up on the elite if applied
	p := MustNew(cfg, seeded(21))

	var report GenerationReport
	finished := 0
	p.OnGeneration(func(r GenerationReport) {
		report = r
		finished++
	})

	for ticks := 0; finished < 3 && ticks < 10000; ticks++ {
		before := finished
		p.Tick()
		if finished == before {
			continue
		}
		elite, err := p.Genome(0)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(elite, report.ChampionGenome) {
			t.Fatalf("generation %d: elite genome differs from champion genome", report.Generation)
		}
	}
	if finished < 3 {
		t.Fatalf("only %d generations finished", finished)
	}
}

func TestMinStepsMonotonicAndGenerationCounter(t *testing.T) {
	cfg := smallConfig()
	cfg.Size = 200
	cfg.Steps = 40
	cfg.Patience = 0
	p := MustNew(cfg, seeded(42))

	var reports []GenerationReport
	p.OnGeneration(func(r GenerationReport) { reports = append(reports, r) })

	prevMin := p.BestStepCount()
	prevGen := p.Generation()
	for ticks := 0; len(reports) < 40 && ticks < 100000; ticks++ {
		p.Tick()

		if g := p.Generation(); g != prevGen {
			if g != prevGen+1 {
				t.Fatalf("generation jumped from %d to %d", prevGen, g)
			}
			prevGen = g
		}
		if m := p.BestStepCount(); m > prevMin {
			t.Fatalf("best step count grew from %d to %d", prevMin, m)
		} else {
			prevMin = m
		}
	}

	if len(reports) != p.Generation()-1 {
		t.Errorf("reports = %d, generation = %d", len(reports), p.Generation())
	}
	for i, r := range reports {
		if r.Generation != i+1 {
			t.Errorf("report %d has generation %d", i, r.Generation)
		}
		if r.Arrivals+r.Deaths.Total() != cfg.Size {
			t.Errorf("generation %d: arrivals %d + deaths %d != %d", r.Generation, r.Arrivals, r.Deaths.Total(), cfg.Size)
		}
		if len(r.Fitnesses) != cfg.Size {
			t.Errorf("generation %d: %d fitnesses", r.Generation, len(r.Fitnesses))
		}
	}
}

func TestDeterministicUnderSeed(t *testing.T) {
	cfg := smallConfig()
	cfg.Obstacles = []Circle{{Center: geom.New(200, 280), Radius: 30}}
	a := MustNew(cfg, seeded(7))
	b := MustNew(cfg, seeded(7))

	for tick := 0; tick < 500; tick++ {
		a.Tick()
		b.Tick()
		if a.Generation() != b.Generation() {
			t.Fatalf("tick %d: generations diverged %d vs %d", tick, a.Generation(), b.Generation())
		}
		for i := 0; i < a.AgentCount(); i++ {
			va, _ := a.View(i)
			vb, _ := b.View(i)
			if va != vb {
				t.Fatalf("tick %d dot %d: %+v vs %+v", tick, i, va, vb)
			}
		}
	}
	if a.Generation() < 2 {
		t.Errorf("expected at least one generation transition in 500 ticks, at %d", a.Generation())
	}
}

func TestChampionOnlyIsDisplayOnly(t *testing.T) {
	cfg := smallConfig()
	plain := MustNew(cfg, seeded(11))
	cfg.ChampionOnly = true
	hinted := MustNew(cfg, seeded(11))

	visible := 0
	hinted.EachVisible(func(i int, v View) {
		visible++
		if i != 0 || !v.Champion {
			t.Errorf("only the champion should be visible, got %d", i)
		}
	})
	if visible != 1 {
		t.Errorf("visible = %d, want 1", visible)
	}

	for tick := 0; tick < 200; tick++ {
		plain.Tick()
		hinted.Tick()
	}
	if plain.Generation() != hinted.Generation() || plain.BestStepCount() != hinted.BestStepCount() {
		t.Error("display hint changed simulation results")
	}
	for i := 0; i < plain.AgentCount(); i++ {
		va, _ := plain.View(i)
		vb, _ := hinted.View(i)
		if va != vb {
			t.Fatalf("dot %d differs under display hint", i)
		}
	}
}

func TestViewOutOfRange(t *testing.T) {
	p := MustNew(smallConfig(), seeded(1))
	if _, err := p.View(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("View(-1): %v", err)
	}
	if _, err := p.Genome(p.AgentCount()); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Genome(n): %v", err)
	}
}

func TestObstaclesAreCopied(t *testing.T) {
	cfg := smallConfig()
	cfg.Obstacles = []Circle{{Center: geom.New(50, 50), Radius: 5}}
	p := MustNew(cfg, seeded(1))

	cfg.Obstacles[0].Radius = 100
	got := p.Obstacles()
	got[0].Radius = 200
	if p.Obstacles()[0].Radius != 5 {
		t.Errorf("obstacle list aliased: %v", p.Obstacles())
	}
}

func TestSeedsFillLeadingDots(t *testing.T) {
	cfg := smallConfig()
	cfg.Steps = 3
	seed := []geom.Vec2{geom.New(0, 15), geom.New(15, 0), geom.New(0, -15)}
	cfg.Seeds = [][]geom.Vec2{seed}

	p := MustNew(cfg, seeded(5))
	got, _ := p.Genome(0)
	if !slices.Equal(got, seed) {
		t.Errorf("dot 0 genome = %v, want seed %v", got, seed)
	}
	other, _ := p.Genome(1)
	if slices.Equal(other, seed) {
		t.Error("dot 1 should be random, not the seed")
	}

	seed[0] = geom.New(99, 99)
	if g, _ := p.Genome(0); g[0] == seed[0] {
		t.Error("seed genome aliased into population")
	}

	t.Run("wrong length", func(t *testing.T) {
		bad := smallConfig()
		bad.Seeds = [][]geom.Vec2{{geom.New(1, 1)}}
		if _, err := New(bad, seeded(1)); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
	t.Run("too many", func(t *testing.T) {
		bad := smallConfig()
		bad.Size = 1
		bad.Steps = 1
		bad.Seeds = [][]geom.Vec2{{geom.New(1, 1)}, {geom.New(1, 1)}}
		if _, err := New(bad, seeded(1)); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}
