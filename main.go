package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gadots/config"
	"github.com/pthm-cable/gadots/game"
	"github.com/pthm-cable/gadots/geom"
	"github.com/pthm-cable/gadots/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output generation stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config snapshot and hall of fame")
	seedFrom := flag.String("seed-from", "", "Hall of fame JSON whose genomes seed generation 1")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N population ticks (0 = use config)")
	untilGen := flag.Int("until-generation", 0, "Stop once this generation has finished (0 = use config)")
	stepsPerUpdate := flag.Int("steps-per-update", 0, "Population ticks per update call (0 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *maxTicks > 0 {
		cfg.Run.MaxTicks = *maxTicks
	}
	if *untilGen > 0 {
		cfg.Run.UntilGeneration = *untilGen
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	var seeds [][]geom.Vec2
	if *seedFrom != "" {
		hof, err := telemetry.LoadHallOfFameFromFile(*seedFrom)
		if err != nil {
			slog.Error("failed to load seed genomes", "path", *seedFrom, "error", err)
			os.Exit(1)
		}
		seeds = hof.Genomes()
		slog.Info("seeding from hall of fame", "path", *seedFrom, "genomes", len(seeds))
	}

	opts := game.Options{
		Config:         cfg,
		Seed:           rngSeed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
		Seeds:          seeds,
	}

	if *headless {
		if cfg.Run.UntilGeneration == 0 && cfg.Run.UntilAccuracy == 0 && cfg.Run.MaxTicks == 0 {
			slog.Warn("headless run has no stop rule and will run until killed")
		}

		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to create game", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless simulation", "seed", rngSeed)
		g.LogRunStart()

		for !g.Done() {
			g.UpdateHeadless()
		}
		g.LogRunEnd()
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "GA Dots")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		rl.CloseWindow()
		os.Exit(1)
	}
	defer g.Unload()
	g.LogRunStart()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
	g.LogRunEnd()
}
