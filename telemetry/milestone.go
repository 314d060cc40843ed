package telemetry

import (
	"fmt"
	"log/slog"
)

// MilestoneType identifies the type of milestone.
type MilestoneType string

const (
	MilestoneFirstArrival        MilestoneType = "first_arrival"
	MilestoneNewBestSteps        MilestoneType = "new_best_steps"
	MilestoneFitnessBreakthrough MilestoneType = "fitness_breakthrough"
	MilestoneStagnation          MilestoneType = "stagnation"
	MilestoneTargetAccuracy      MilestoneType = "target_accuracy"
)

// Milestone represents an automatically detected moment in a run.
type Milestone struct {
	Type        MilestoneType `csv:"type"`
	Generation  int           `csv:"generation"`
	Description string        `csv:"description"`
}

// LogMilestone logs the milestone using slog.
func (m Milestone) LogMilestone() {
	slog.Info("milestone",
		"type", string(m.Type),
		"generation", m.Generation,
		"description", m.Description,
	)
}

// MilestoneDetector watches generation stats for interesting moments.
type MilestoneDetector struct {
	// Rolling history of max fitness (circular buffer)
	history     []float64
	historySize int
	historyIdx  int
	historyFull bool

	stagnationGenerations int
	targetAccuracy        float64

	arrived        bool
	bestSteps      int
	lastImprovedAt int
	stagnantSent   bool
	targetSent     bool
}

// NewMilestoneDetector creates a detector. stagnation is the number of
// generations without a step-count improvement before a stagnation
// milestone fires (0 disables it); target is the accuracy that triggers
// target_accuracy (0 disables it).
func NewMilestoneDetector(historySize, stagnation int, target float64) *MilestoneDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &MilestoneDetector{
		history:               make([]float64, historySize),
		historySize:           historySize,
		stagnationGenerations: stagnation,
		targetAccuracy:        target,
	}
}

// Check analyzes the latest stats and returns any triggered milestones.
func (md *MilestoneDetector) Check(s GenerationStats) []Milestone {
	var out []Milestone

	if m := md.checkArrival(s); m != nil {
		out = append(out, *m)
	}
	if m := md.checkFitnessBreakthrough(s); m != nil {
		out = append(out, *m)
	}
	if m := md.checkStagnation(s); m != nil {
		out = append(out, *m)
	}
	if m := md.checkTargetAccuracy(s); m != nil {
		out = append(out, *m)
	}

	md.addToHistory(s.FitnessMax)
	return out
}

func (md *MilestoneDetector) addToHistory(v float64) {
	md.history[md.historyIdx] = v
	md.historyIdx = (md.historyIdx + 1) % md.historySize
	if md.historyIdx == 0 {
		md.historyFull = true
	}
}

func (md *MilestoneDetector) getHistory() []float64 {
	if md.historyFull {
		return md.history
	}
	return md.history[:md.historyIdx]
}

// checkArrival covers both the first arrival and later step-count records.
func (md *MilestoneDetector) checkArrival(s GenerationStats) *Milestone {
	if !s.ChampionAtGoal {
		return nil
	}

	if !md.arrived {
		md.arrived = true
		md.bestSteps = s.ChampionSteps
		md.lastImprovedAt = s.Generation
		return &Milestone{
			Type:        MilestoneFirstArrival,
			Generation:  s.Generation,
			Description: fmt.Sprintf("Champion reached the goal in %d steps", s.ChampionSteps),
		}
	}

	if s.ChampionSteps < md.bestSteps {
		old := md.bestSteps
		md.bestSteps = s.ChampionSteps
		md.lastImprovedAt = s.Generation
		md.stagnantSent = false
		return &Milestone{
			Type:        MilestoneNewBestSteps,
			Generation:  s.Generation,
			Description: fmt.Sprintf("Best path improved from %d to %d steps", old, s.ChampionSteps),
		}
	}
	return nil
}

// checkFitnessBreakthrough fires when max fitness is more than twice the
// rolling average.
func (md *MilestoneDetector) checkFitnessBreakthrough(s GenerationStats) *Milestone {
	history := md.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h
	}
	avg := total / float64(len(history))
	if avg == 0 {
		return nil
	}

	if s.FitnessMax > avg*2.0 {
		return &Milestone{
			Type:        MilestoneFitnessBreakthrough,
			Generation:  s.Generation,
			Description: fmt.Sprintf("Max fitness %.4g is %.1fx average (%.4g)", s.FitnessMax, s.FitnessMax/avg, avg),
		}
	}
	return nil
}

// checkStagnation fires once per plateau, after the first arrival.
func (md *MilestoneDetector) checkStagnation(s GenerationStats) *Milestone {
	if md.stagnationGenerations <= 0 || !md.arrived || md.stagnantSent {
		return nil
	}
	if s.Generation-md.lastImprovedAt < md.stagnationGenerations {
		return nil
	}
	md.stagnantSent = true
	return &Milestone{
		Type:        MilestoneStagnation,
		Generation:  s.Generation,
		Description: fmt.Sprintf("No improvement on %d steps for %d generations", md.bestSteps, s.Generation-md.lastImprovedAt),
	}
}

func (md *MilestoneDetector) checkTargetAccuracy(s GenerationStats) *Milestone {
	if md.targetAccuracy <= 0 || md.targetSent || s.Accuracy < md.targetAccuracy {
		return nil
	}
	md.targetSent = true
	return &Milestone{
		Type:        MilestoneTargetAccuracy,
		Generation:  s.Generation,
		Description: fmt.Sprintf("Accuracy %.3f reached target %.3f", s.Accuracy, md.targetAccuracy),
	}
}
