package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/pthm-cable/gadots/geom"
	"github.com/pthm-cable/gadots/sim"
)

// HallEntry is one generation's champion, kept for reseeding later runs.
type HallEntry struct {
	Generation int         `json:"generation"`
	Fitness    float64     `json:"fitness"`
	AtGoal     bool        `json:"at_goal"`
	Steps      int         `json:"steps"`
	Genome     []geom.Vec2 `json:"genome"`
}

// better orders arrivals before non-arrivals, then fewer steps, then
// higher fitness.
func (e HallEntry) better(o HallEntry) bool {
	if e.AtGoal != o.AtGoal {
		return e.AtGoal
	}
	if e.AtGoal && e.Steps != o.Steps {
		return e.Steps < o.Steps
	}
	return e.Fitness > o.Fitness
}

// HallOfFame keeps the best champions seen across generations.
type HallOfFame struct {
	entries []HallEntry
	maxSize int
}

// NewHallOfFame creates a hall holding at most maxSize entries.
func NewHallOfFame(maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HallOfFame{
		entries: make([]HallEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Consider offers a finished generation's champion to the hall.
// Returns true if it was added.
func (hof *HallOfFame) Consider(r sim.GenerationReport) bool {
	return hof.insert(HallEntry{
		Generation: r.Generation,
		Fitness:    r.MaxFitness,
		AtGoal:     r.ChampionAtGoal,
		Steps:      r.ChampionSteps,
		Genome:     r.ChampionGenome,
	})
}

// insert keeps entries sorted best first. If the hall is full, the worst
// entry is dropped.
func (hof *HallOfFame) insert(entry HallEntry) bool {
	idx := sort.Search(len(hof.entries), func(i int) bool {
		return entry.better(hof.entries[i])
	})
	if idx >= hof.maxSize {
		return false
	}

	hof.entries = append(hof.entries, HallEntry{})
	copy(hof.entries[idx+1:], hof.entries[idx:])
	hof.entries[idx] = entry

	if len(hof.entries) > hof.maxSize {
		hof.entries = hof.entries[:hof.maxSize]
	}
	return true
}

// Size returns the number of entries.
func (hof *HallOfFame) Size() int { return len(hof.entries) }

// Best returns the top entry, or false if the hall is empty.
func (hof *HallOfFame) Best() (HallEntry, bool) {
	if len(hof.entries) == 0 {
		return HallEntry{}, false
	}
	return hof.entries[0], true
}

// Genomes returns copies of every genome, best first.
func (hof *HallOfFame) Genomes() [][]geom.Vec2 {
	out := make([][]geom.Vec2, len(hof.entries))
	for i, e := range hof.entries {
		out[i] = append([]geom.Vec2(nil), e.Genome...)
	}
	return out
}

// MarshalJSON serializes the hall of fame to JSON.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(hof.entries, "", "  ")
}

// WriteFile saves the hall as JSON.
func (hof *HallOfFame) WriteFile(path string) error {
	data, err := hof.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling hall of fame: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing hall of fame: %w", err)
	}
	return nil
}

// LoadHallOfFameFromFile reads a hall of fame JSON file.
func LoadHallOfFameFromFile(path string) (*HallOfFame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hall of fame: %w", err)
	}

	var entries []HallEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing hall of fame JSON: %w", err)
	}

	hof := NewHallOfFame(max(len(entries), 1))
	for _, e := range entries {
		hof.insert(e)
	}
	return hof, nil
}
