package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/gadots/config"
	"github.com/pthm-cable/gadots/geom"
)

// Output file names inside the run directory.
const (
	GenerationsFile = "generations.csv"
	PerfFile        = "perf.csv"
	MilestonesFile  = "milestones.csv"
	ChampionFile    = "champion.csv"
	ConfigFile      = "config.yaml"
	HallOfFameFile  = "hall_of_fame.json"
)

// csvStream is an append-only CSV file whose header is written with the
// first record.
type csvStream struct {
	name          string
	file          *os.File
	headerWritten bool
}

func openStream(dir, name string) (*csvStream, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvStream{name: name, file: f}, nil
}

func writeRecords[T any](s *csvStream, records []T) error {
	var err error
	if !s.headerWritten {
		err = gocsv.Marshal(records, s.file)
		s.headerWritten = err == nil
	} else {
		err = gocsv.MarshalWithoutHeaders(records, s.file)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", s.name, err)
	}
	return nil
}

// OutputManager handles structured experiment output with CSV logging.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir         string
	generations *csvStream
	perf        *csvStream
	milestones  *csvStream
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, s := range []struct {
		dst  **csvStream
		name string
	}{
		{&om.generations, GenerationsFile},
		{&om.perf, PerfFile},
		{&om.milestones, MilestonesFile},
	} {
		stream, err := openStream(dir, s.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*s.dst = stream
	}
	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, ConfigFile))
}

// WriteGeneration appends one row to generations.csv.
func (om *OutputManager) WriteGeneration(stats GenerationStats) error {
	if om == nil {
		return nil
	}
	return writeRecords(om.generations, []GenerationStats{stats})
}

// WritePerf appends one row to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, generation int) error {
	if om == nil {
		return nil
	}
	return writeRecords(om.perf, []PerfStatsCSV{stats.ToCSV(generation)})
}

// WriteMilestone appends one row to milestones.csv.
func (om *OutputManager) WriteMilestone(m Milestone) error {
	if om == nil {
		return nil
	}
	return writeRecords(om.milestones, []Milestone{m})
}

// GeneRecord is one step of a saved champion genome.
type GeneRecord struct {
	Generation int     `csv:"generation"`
	Step       int     `csv:"step"`
	X          float64 `csv:"x"`
	Y          float64 `csv:"y"`
}

// WriteChampion replaces champion.csv with the given champion genome.
func (om *OutputManager) WriteChampion(generation int, genome []geom.Vec2) error {
	if om == nil {
		return nil
	}
	records := make([]GeneRecord, len(genome))
	for i, g := range genome {
		records[i] = GeneRecord{Generation: generation, Step: i, X: g.X, Y: g.Y}
	}

	f, err := os.Create(filepath.Join(om.dir, ChampionFile))
	if err != nil {
		return fmt.Errorf("creating %s: %w", ChampionFile, err)
	}
	defer f.Close()
	if err := gocsv.Marshal(records, f); err != nil {
		return fmt.Errorf("writing %s: %w", ChampionFile, err)
	}
	return nil
}

// WriteHallOfFame saves the hall of fame as JSON.
func (om *OutputManager) WriteHallOfFame(hof *HallOfFame) error {
	if om == nil || hof == nil {
		return nil
	}
	return hof.WriteFile(filepath.Join(om.dir, HallOfFameFile))
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files and returns the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, s := range []*csvStream{om.generations, om.perf, om.milestones} {
		if s == nil {
			continue
		}
		if err := s.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
