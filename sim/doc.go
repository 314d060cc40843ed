// Package sim implements the generational genetic algorithm that evolves a
// population of path-following dots toward a goal.
//
// A Population is driven by calling Tick at a fixed cadence. Each tick
// advances every active dot by one genome step and applies the bounds,
// pruning and obstacle death rules. Once every dot is dead or at the goal,
// the same tick scores the generation, breeds its replacement by elitism
// plus fitness-proportionate selection, mutates the offspring and
// increments the generation counter.
//
// The package is single-threaded: callers must serialize calls to Tick.
// All randomness comes from the Rand passed to New, so a seeded source
// gives reproducible runs.
package sim
