package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/gadots/config"
	"github.com/pthm-cable/gadots/game"
	"github.com/pthm-cable/gadots/telemetry"
)

// arrivalPenalty weighs generations-to-first-arrival against accuracy.
const arrivalPenalty = 0.001

// FitnessEvaluator runs headless simulations and scores a parameter
// vector. Lower is better.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	seeds       []int64
	baseConfig  *config.Config

	mu             sync.Mutex
	bestLoss       float64
	bestHallOfFame *telemetry.HallOfFame
	lastAccuracy   float64
}

// NewFitnessEvaluator creates an evaluator that runs each seed for a
// fixed generation budget.
func NewFitnessEvaluator(params *ParamVector, generations int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestLoss:    math.Inf(1),
	}
}

// BestHallOfFame returns the hall of fame from the best evaluation.
func (fe *FitnessEvaluator) BestHallOfFame() *telemetry.HallOfFame {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHallOfFame
}

// LastAccuracy returns the mean accuracy of the most recent evaluation.
func (fe *FitnessEvaluator) LastAccuracy() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastAccuracy
}

// runResult holds the outcome of one seed.
type runResult struct {
	accuracy     float64
	firstArrival int // 0 if no champion arrived
	hallOfFame   *telemetry.HallOfFame
	err          error
}

// Evaluate runs every seed in parallel and returns the mean loss.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var totalLoss, totalAcc float64
	bestSeed := math.Inf(1)
	var bestHOF *telemetry.HallOfFame
	for _, r := range results {
		l := fe.loss(r)
		totalLoss += l
		totalAcc += r.accuracy
		if l < bestSeed {
			bestSeed = l
			bestHOF = r.hallOfFame
		}
	}

	n := float64(len(fe.seeds))
	avg := totalLoss / n

	fe.mu.Lock()
	if avg < fe.bestLoss {
		fe.bestLoss = avg
		fe.bestHallOfFame = bestHOF
	}
	fe.lastAccuracy = totalAcc / n
	fe.mu.Unlock()

	return avg
}

// runSimulation runs one headless game to the generation budget. cfg is
// shared between goroutines and only read.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) runResult {
	run := *cfg
	run.Run = config.RunConfig{UntilGeneration: fe.generations, StepsPerUpdate: game.MaxStepsPerUpdate}

	g, err := game.NewGameWithOptions(game.Options{
		Config:   &run,
		Seed:     seed,
		Headless: true,
	})
	if err != nil {
		return runResult{err: err}
	}
	defer g.Unload()

	g.Run()
	return runResult{
		accuracy:     g.Accuracy(),
		firstArrival: g.FirstArrival(),
		hallOfFame:   g.HallOfFame(),
	}
}

// loss is 1 - accuracy plus a small penalty per generation before the
// first arrival. A run that never arrived pays for the whole budget, and
// a run that failed to start scores worst.
func (fe *FitnessEvaluator) loss(r runResult) float64 {
	if r.err != nil {
		return 2 + arrivalPenalty*float64(fe.generations+1)
	}
	gens := r.firstArrival
	if gens == 0 {
		gens = fe.generations + 1
	}
	return 1 - r.accuracy + arrivalPenalty*float64(gens)
}

// copyConfig returns a copy of the base config. Slices are cloned so a
// run can never alias another's obstacle list.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Obstacles.Fixed = append([]config.ObstacleConfig(nil), fe.baseConfig.Obstacles.Fixed...)
	return &cfg
}
