package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one timed section of a driver update.
type Phase uint8

const (
	// PhaseSimulate covers population ticks, generation transitions included.
	PhaseSimulate Phase = iota
	// PhaseTelemetry covers stats, milestones and output writes.
	PhaseTelemetry
	numPhases
)

func (p Phase) String() string {
	switch p {
	case PhaseSimulate:
		return "simulate"
	case PhaseTelemetry:
		return "telemetry"
	}
	return "unknown"
}

// perfSample holds timing data for a single update.
type perfSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
	ticks  int
}

// PerfCollector tracks update timing over a rolling window. An update is
// one driver step, which may run several population ticks.
type PerfCollector struct {
	windowSize  int
	samples     []perfSample
	writeIndex  int
	sampleCount int

	current    perfSample
	start      time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize updates
// (e.g., 60 for 1 second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]perfSample, windowSize),
	}
}

// StartUpdate begins timing a new update.
func (p *PerfCollector) StartUpdate() {
	p.start = time.Now()
	p.current = perfSample{}
	p.inPhase = false
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
	p.inPhase = true
}

// AddTicks records how many population ticks the update ran.
func (p *PerfCollector) AddTicks(n int) {
	p.current.ticks += n
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase < numPhases {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// EndUpdate finishes timing the current update and records the sample.
func (p *PerfCollector) EndUpdate() {
	now := time.Now()
	p.closePhase(now)
	p.current.total = now.Sub(p.start)

	p.samples[p.writeIndex] = p.current
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgUpdate time.Duration
	MinUpdate time.Duration
	MaxUpdate time.Duration

	// PhasePct is each phase's share of total update time, in percent.
	PhasePct [numPhases]float64

	// TicksPerSecond is population ticks per second of update time.
	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the samples in the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{FrameDuration: p.frameDuration}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.sampleCount == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [numPhases]time.Duration
	ticks := 0
	for i := 0; i < p.sampleCount; i++ {
		sample := p.samples[i]
		total += sample.total
		ticks += sample.ticks
		if i == 0 || sample.total < s.MinUpdate {
			s.MinUpdate = sample.total
		}
		if sample.total > s.MaxUpdate {
			s.MaxUpdate = sample.total
		}
		for ph, d := range sample.phases {
			phaseSum[ph] += d
		}
	}

	s.AvgUpdate = total / time.Duration(p.sampleCount)
	if total > 0 {
		for ph, d := range phaseSum {
			s.PhasePct[ph] = float64(d) / float64(total) * 100
		}
		s.TicksPerSecond = float64(ticks) / total.Seconds()
	}
	return s
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_update_us", s.AvgUpdate.Microseconds(),
		"min_update_us", s.MinUpdate.Microseconds(),
		"max_update_us", s.MaxUpdate.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for ph := Phase(0); ph < numPhases; ph++ {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, ph.String()+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_update_us", s.AvgUpdate.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for ph := Phase(0); ph < numPhases; ph++ {
		attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.PhasePct[ph]))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Generation   int     `csv:"generation"`
	AvgUpdateUS  int64   `csv:"avg_update_us"`
	MinUpdateUS  int64   `csv:"min_update_us"`
	MaxUpdateUS  int64   `csv:"max_update_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	SimulatePct  float64 `csv:"simulate_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(generation int) PerfStatsCSV {
	return PerfStatsCSV{
		Generation:   generation,
		AvgUpdateUS:  s.AvgUpdate.Microseconds(),
		MinUpdateUS:  s.MinUpdate.Microseconds(),
		MaxUpdateUS:  s.MaxUpdate.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		SimulatePct:  s.PhasePct[PhaseSimulate],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
