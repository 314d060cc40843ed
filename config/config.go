// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/gadots/geom"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Goal       GoalConfig       `yaml:"goal"`
	Evolution  EvolutionConfig  `yaml:"evolution"`
	Obstacles  ObstaclesConfig  `yaml:"obstacles"`
	Run        RunConfig        `yaml:"run"`
	Display    DisplayConfig    `yaml:"display"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the simulation plane dimensions.
// The camera fits the plane into the window.
type WorldConfig struct {
	Width  int `yaml:"width"`  // Plane width in world units (0 = use screen width)
	Height int `yaml:"height"` // Plane height in world units (0 = use screen height)
}

// PopulationConfig holds population size and where it starts.
type PopulationConfig struct {
	Size   int     `yaml:"size"`
	Steps  int     `yaml:"steps"`   // Genome length
	StartX float64 `yaml:"start_x"` // Fraction of world width
	StartY float64 `yaml:"start_y"` // Fraction of world height, y up
}

// GoalConfig places the goal. Y is measured up from the bottom edge.
type GoalConfig struct {
	X      float64 `yaml:"x"` // Fraction of world width
	Y      float64 `yaml:"y"` // Fraction of world height
	Radius float64 `yaml:"radius"`
}

// EvolutionConfig holds genetic algorithm parameters.
type EvolutionConfig struct {
	MutationRate float64 `yaml:"mutation_rate"` // Per-gene replacement probability
	StepSize     float64 `yaml:"step_size"`     // Length of every genome step
	Patience     int     `yaml:"patience"`      // Initial best-step count (0 = genome length)
	DotRadius    float64 `yaml:"dot_radius"`
}

// ObstacleConfig is one fixed obstacle. X and Y are world fractions.
type ObstacleConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

// RandomObstaclesConfig generates an obstacle field at start-up.
type RandomObstaclesConfig struct {
	Count       int     `yaml:"count"`
	Radius      float64 `yaml:"radius"`
	YMin        float64 `yaml:"y_min"`        // Lowest centre, as a world fraction; the goal bounds it above
	MaxAttempts int     `yaml:"max_attempts"` // Redraws per obstacle before giving up
}

// ObstaclesConfig holds fixed and random obstacles.
type ObstaclesConfig struct {
	Fixed  []ObstacleConfig      `yaml:"fixed"`
	Random RandomObstaclesConfig `yaml:"random"`

	// NavCellSize is the grid cell used to measure the shortest path around
	// obstacles. 0 keeps the straight-line step count.
	NavCellSize float64 `yaml:"nav_cell_size"`
}

// RunConfig holds stop conditions and pacing. Zero disables a limit.
type RunConfig struct {
	UntilGeneration int     `yaml:"until_generation"` // Stop once generation exceeds this
	UntilAccuracy   float64 `yaml:"until_accuracy"`   // Stop once accuracy reaches this
	MaxTicks        int     `yaml:"max_ticks"`        // Stop after this many population ticks
	StepsPerUpdate  int     `yaml:"steps_per_update"` // Population ticks per frame
}

// DisplayConfig holds presentation hints.
type DisplayConfig struct {
	ChampionOnly   bool    `yaml:"champion_only"`
	ChampionRadius float64 `yaml:"champion_radius"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	LogEvery              int     `yaml:"log_every"`              // Log stats every N generations
	PerfWindow            int     `yaml:"perf_window"`            // Updates averaged by the perf collector
	MilestoneHistory      int     `yaml:"milestone_history"`      // Generations of max fitness kept for breakthroughs
	StagnationGenerations int     `yaml:"stagnation_generations"` // 0 disables stagnation milestones
	TargetAccuracy        float64 `yaml:"target_accuracy"`        // 0 disables the target milestone
	HallOfFameSize        int     `yaml:"hall_of_fame_size"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW float64 // Effective world width
	WorldH float64 // Effective world height
	Start  geom.Vec2
	Goal   geom.Vec2

	// MinPossibleSteps is the straight-line step count from start to goal.
	MinPossibleSteps int
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns the embedded default configuration.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.ComputeDerived()
	return cfg, nil
}

// ComputeDerived recalculates values derived from the loaded config.
// Call it again after changing fields in code.
func (c *Config) ComputeDerived() {
	if c.Run.StepsPerUpdate < 1 {
		c.Run.StepsPerUpdate = 1
	}

	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW = float64(worldW)
	c.Derived.WorldH = float64(worldH)

	c.Derived.Start = c.ToWorld(c.Population.StartX, c.Population.StartY)
	c.Derived.Goal = c.ToWorld(c.Goal.X, c.Goal.Y)

	c.Derived.MinPossibleSteps = 0
	if c.Evolution.StepSize > 0 {
		d := geom.Distance(c.Derived.Start, c.Derived.Goal)
		c.Derived.MinPossibleSteps = int(math.Ceil(d / c.Evolution.StepSize))
	}
}

// ToWorld converts plane fractions to world coordinates.
func (c *Config) ToWorld(fx, fy float64) geom.Vec2 {
	return geom.New(fx*c.Derived.WorldW, fy*c.Derived.WorldH)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
