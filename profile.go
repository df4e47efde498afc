package trellis

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase names a timed part of a frame.
type Phase uint8

const (
	PhaseInput Phase = iota
	PhasePhysics
	PhaseEntities
	numPhases
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePhysics:
		return "physics"
	case PhaseEntities:
		return "entities"
	default:
		return "unknown"
	}
}

// FrameSample holds timing data for a single frame, in microseconds.
type FrameSample struct {
	Frame    int64   `csv:"frame"`
	Total    float64 `csv:"total_us"`
	Input    float64 `csv:"input_us"`
	Physics  float64 `csv:"physics_us"`
	Entities float64 `csv:"entities_us"`
}

// FrameStats aggregates the samples in the profiler window.
type FrameStats struct {
	Samples int
	Mean    float64 // µs per frame
	StdDev  float64
	P95     float64
	Max     float64
	// PhaseMean is the mean time per phase, indexed by Phase.
	PhaseMean [numPhases]float64
}

// Profiler tracks frame and phase timings over a rolling window.
type Profiler struct {
	window     int
	samples    []FrameSample
	writeIndex int
	count      int
	frames     int64

	frameStart time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool
	current    [numPhases]time.Duration

	now func() time.Time
}

// NewProfiler creates a profiler averaging over window frames (60 if < 1).
func NewProfiler(window int) *Profiler {
	if window < 1 {
		window = 60
	}
	return &Profiler{
		window:  window,
		samples: make([]FrameSample, window),
		now:     time.Now,
	}
}

// BeginFrame starts timing a frame.
func (p *Profiler) BeginFrame() {
	p.frameStart = p.now()
	p.current = [numPhases]time.Duration{}
	p.inPhase = false
}

// StartPhase ends the running phase, if any, and starts timing ph.
func (p *Profiler) StartPhase(ph Phase) {
	now := p.now()
	if p.inPhase {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
	p.phase = ph
	p.phaseStart = now
	p.inPhase = true
}

// EndFrame ends the running phase and records the frame.
func (p *Profiler) EndFrame() {
	now := p.now()
	if p.inPhase {
		p.current[p.phase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
	p.frames++
	p.samples[p.writeIndex] = FrameSample{
		Frame:    p.frames,
		Total:    micros(now.Sub(p.frameStart)),
		Input:    micros(p.current[PhaseInput]),
		Physics:  micros(p.current[PhasePhysics]),
		Entities: micros(p.current[PhaseEntities]),
	}
	p.writeIndex = (p.writeIndex + 1) % p.window
	if p.count < p.window {
		p.count++
	}
}

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}

// Samples returns the window's samples, oldest first.
func (p *Profiler) Samples() []FrameSample {
	out := make([]FrameSample, 0, p.count)
	start := 0
	if p.count == p.window {
		start = p.writeIndex
	}
	for i := 0; i < p.count; i++ {
		out = append(out, p.samples[(start+i)%p.window])
	}
	return out
}

// Summary computes statistics over the current window.
func (p *Profiler) Summary() FrameStats {
	samples := p.Samples()
	st := FrameStats{Samples: len(samples)}
	if len(samples) == 0 {
		return st
	}
	totals := make([]float64, len(samples))
	phases := [numPhases][]float64{}
	for i := range phases {
		phases[i] = make([]float64, len(samples))
	}
	for i, s := range samples {
		totals[i] = s.Total
		phases[PhaseInput][i] = s.Input
		phases[PhasePhysics][i] = s.Physics
		phases[PhaseEntities][i] = s.Entities
	}
	st.Mean, st.StdDev = stat.MeanStdDev(totals, nil)
	if len(totals) < 2 {
		st.StdDev = 0
	}
	st.Max = floats.Max(totals)
	sort.Float64s(totals)
	st.P95 = stat.Quantile(0.95, stat.Empirical, totals, nil)
	for i := range phases {
		st.PhaseMean[i] = stat.Mean(phases[i], nil)
	}
	return st
}

// WriteCSV writes the window's samples as CSV with a header row.
func (p *Profiler) WriteCSV(w io.Writer) error {
	samples := p.Samples()
	if err := gocsv.Marshal(samples, w); err != nil {
		return fmt.Errorf("write profile csv: %w", err)
	}
	return nil
}

// LogSummary writes the current summary at info level.
func (p *Profiler) LogSummary() {
	s := p.Summary()
	logger.Info("frame profile",
		zap.Int("samples", s.Samples),
		zap.Float64("mean_us", s.Mean),
		zap.Float64("stddev_us", s.StdDev),
		zap.Float64("p95_us", s.P95),
		zap.Float64("max_us", s.Max),
		zap.Float64("physics_us", s.PhaseMean[PhasePhysics]),
		zap.Float64("entities_us", s.PhaseMean[PhaseEntities]),
	)
}

// Timer starts a named stopwatch. Calling the returned func logs the
// elapsed time at debug level:
//
//	defer trellis.Timer("load level")()
func Timer(name string) func() {
	start := time.Now()
	return func() {
		logger.Debug("timer", zap.String("name", name), zap.Duration("elapsed", time.Since(start)))
	}
}
