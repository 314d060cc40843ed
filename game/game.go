// Package game drives a dots population: fixed-cadence ticking, stop
// rules, telemetry and, in graphical mode, input and rendering.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/gadots/camera"
	"github.com/pthm-cable/gadots/config"
	"github.com/pthm-cable/gadots/geom"
	"github.com/pthm-cable/gadots/sim"
	"github.com/pthm-cable/gadots/telemetry"
	"github.com/pthm-cable/gadots/ui"
)

// MaxStepsPerUpdate bounds the speed multiplier.
const MaxStepsPerUpdate = 50

// Options configures a game instance.
type Options struct {
	// Config is the run configuration. Nil means config.Cfg().
	Config *config.Config

	Seed      int64
	OutputDir string
	Headless  bool

	// LogStats logs every telemetry.log_every generations via slog.
	LogStats bool

	// StepsPerUpdate overrides run.steps_per_update when positive.
	StepsPerUpdate int

	// Seeds are genomes placed at the front of generation 1.
	Seeds [][]geom.Vec2
}

// Game holds the complete game state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand
	pop *sim.Population

	// State
	ticks          int // population ticks since start
	paused         bool
	stepsPerUpdate int
	stop           StopReason
	headless       bool

	// Telemetry
	logStats      bool
	perfCollector *telemetry.PerfCollector
	milestones    *telemetry.MilestoneDetector
	hallOfFame    *telemetry.HallOfFame
	outputManager *telemetry.OutputManager
	minPossible   int // shortest path in steps, around obstacles when measured
	last          telemetry.GenerationStats
	history       []telemetry.GenerationStats
	firstArrival  int // generation of the first arrival, 0 if none

	// Rendering
	camera   *camera.Camera
	hud      *ui.HUD
	controls *ui.ControlsPanel

	// Window dimensions
	screenWidth, screenHeight float32
}

// NewGameWithOptions builds the population and telemetry for a run.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	g := &Game{
		cfg:            cfg,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		headless:       opts.Headless,
		logStats:       opts.LogStats,
		stepsPerUpdate: cfg.Run.StepsPerUpdate,
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		milestones: telemetry.NewMilestoneDetector(
			cfg.Telemetry.MilestoneHistory,
			cfg.Telemetry.StagnationGenerations,
			cfg.Telemetry.TargetAccuracy,
		),
		hallOfFame: telemetry.NewHallOfFame(cfg.Telemetry.HallOfFameSize),
	}
	if opts.StepsPerUpdate > 0 {
		g.stepsPerUpdate = opts.StepsPerUpdate
	}
	g.stepsPerUpdate = ui.ClampSpeed(g.stepsPerUpdate, MaxStepsPerUpdate)

	simCfg, err := SimConfig(cfg, g.rng)
	if err != nil {
		return nil, err
	}
	simCfg.Seeds = opts.Seeds

	pop, err := sim.New(simCfg, g.rng)
	if err != nil {
		return nil, fmt.Errorf("creating population: %w", err)
	}
	g.pop = pop
	g.minPossible = minPossibleSteps(cfg, pop.Obstacles())
	g.pop.OnGeneration(g.onGeneration)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	if !opts.Headless {
		g.screenWidth = float32(cfg.Screen.Width)
		g.screenHeight = float32(cfg.Screen.Height)
		g.camera = camera.New(g.screenWidth, g.screenHeight, float32(cfg.Derived.WorldW), float32(cfg.Derived.WorldH))
		g.hud = ui.NewHUD(10, 10, 260)
		g.controls = ui.NewControlsPanel(10, 0, 260, MaxStepsPerUpdate)
	}

	return g, nil
}

// Config returns the run configuration.
func (g *Game) Config() *config.Config { return g.cfg }

// Population returns the simulated population.
func (g *Game) Population() *sim.Population { return g.pop }

// Update runs one frame of simulation in graphical mode.
func (g *Game) Update() {
	g.handleInput()
	g.perfCollector.RecordFrame()
	if g.paused || g.Done() {
		return
	}
	g.Step()
}

// UpdateHeadless runs one update without input or rendering.
func (g *Game) UpdateHeadless() {
	if g.Done() {
		return
	}
	g.Step()
}

// Step runs stepsPerUpdate population ticks, stopping early if a stop
// rule fires.
func (g *Game) Step() {
	g.perfCollector.StartUpdate()
	g.perfCollector.StartPhase(telemetry.PhaseSimulate)

	n := 0
	for ; n < g.stepsPerUpdate && !g.Done(); n++ {
		g.pop.Tick()
		g.ticks++
		g.checkStop()
	}

	g.perfCollector.AddTicks(n)
	g.perfCollector.EndUpdate()
}

// Run ticks until a stop rule fires. It is meant for headless use; with
// no stop rule configured it never returns.
func (g *Game) Run() StopReason {
	for !g.Done() {
		g.Step()
	}
	return g.stop
}

// Done reports whether a stop rule has fired.
func (g *Game) Done() bool { return g.stop != StopNone }

// StopReason returns why the run stopped, or StopNone.
func (g *Game) StopReason() StopReason { return g.stop }

// Tick returns the number of population ticks run so far.
func (g *Game) Tick() int { return g.ticks }

// Generation returns the current generation number.
func (g *Game) Generation() int { return g.pop.Generation() }

// Accuracy returns the best path accuracy so far.
func (g *Game) Accuracy() float64 {
	return telemetry.Accuracy(g.minPossible, g.pop.BestStepCount(), g.pop.HasArrived())
}

// MinPossibleSteps returns the step count accuracy is measured against.
func (g *Game) MinPossibleSteps() int { return g.minPossible }

// FirstArrival returns the generation whose champion first reached the
// goal, or 0.
func (g *Game) FirstArrival() int { return g.firstArrival }

// History returns the stats of every finished generation.
func (g *Game) History() []telemetry.GenerationStats { return g.history }

// HallOfFame returns the best champions seen this run.
func (g *Game) HallOfFame() *telemetry.HallOfFame { return g.hallOfFame }

// SetPaused pauses or resumes a graphical run.
func (g *Game) SetPaused(p bool) { g.paused = p }

// StepsPerUpdate returns the speed multiplier.
func (g *Game) StepsPerUpdate() int { return g.stepsPerUpdate }

// Unload flushes output and releases resources.
func (g *Game) Unload() {
	if err := g.outputManager.WriteHallOfFame(g.hallOfFame); err != nil {
		slog.Error("failed to write hall of fame", "error", err)
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
