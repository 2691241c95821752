package telemetry

import (
	"log/slog"
	"time"
)

// Phase identifies a timed part of a frame.
type Phase uint8

// Frame phases, in execution order.
const (
	PhaseMovement Phase = iota
	PhaseLighting
	PhaseVision
	PhaseRender
	numPhases
)

var phaseNames = [numPhases]string{"movement", "lighting", "vision", "render"}

func (p Phase) String() string {
	if p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// Phases lists every phase in execution order.
func Phases() []Phase {
	return []Phase{PhaseMovement, PhaseLighting, PhaseVision, PhaseRender}
}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        [numPhases]time.Duration
}

// PerfCollector tracks frame timing over a rolling window. Phase timings live in
// fixed arrays so recording a frame does not allocate.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int

	current    PerfSample
	frameStart time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]PerfSample, windowSize),
		now:        time.Now,
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = p.now()
	p.current = PerfSample{}
	p.inPhase = false
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := p.now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase < numPhases {
		p.current.Phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// EndFrame finishes timing the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := p.now()
	p.closePhase(now)
	p.current.FrameDuration = now.Sub(p.frameStart)

	p.samples[p.writeIndex] = p.current
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgFrame time.Duration
	MinFrame time.Duration
	MaxFrame time.Duration

	// Average duration and share of frame time per phase
	PhaseAvg [numPhases]time.Duration
	PhasePct [numPhases]float64

	FramesPerSecond float64
}

// Stats aggregates the samples in the window.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p.sampleCount == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [numPhases]time.Duration
	for i := 0; i < p.sampleCount; i++ {
		sample := p.samples[i]
		total += sample.FrameDuration
		if i == 0 || sample.FrameDuration < s.MinFrame {
			s.MinFrame = sample.FrameDuration
		}
		s.MaxFrame = max(s.MaxFrame, sample.FrameDuration)
		for ph, d := range sample.Phases {
			phaseSum[ph] += d
		}
	}

	n := time.Duration(p.sampleCount)
	s.AvgFrame = total / n
	for ph := range phaseSum {
		s.PhaseAvg[ph] = phaseSum[ph] / n
		if s.AvgFrame > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgFrame) * 100
		}
	}
	if s.AvgFrame > 0 {
		s.FramesPerSecond = float64(time.Second) / float64(s.AvgFrame)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
		slog.Float64("fps", s.FramesPerSecond),
	}
	for _, ph := range Phases() {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd   int32   `csv:"window_end"`
	AvgFrameUS  int64   `csv:"avg_frame_us"`
	MinFrameUS  int64   `csv:"min_frame_us"`
	MaxFrameUS  int64   `csv:"max_frame_us"`
	FPS         float64 `csv:"fps"`
	MovementPct float64 `csv:"movement_pct"`
	LightingPct float64 `csv:"lighting_pct"`
	VisionPct   float64 `csv:"vision_pct"`
	RenderPct   float64 `csv:"render_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:   windowEnd,
		AvgFrameUS:  s.AvgFrame.Microseconds(),
		MinFrameUS:  s.MinFrame.Microseconds(),
		MaxFrameUS:  s.MaxFrame.Microseconds(),
		FPS:         s.FramesPerSecond,
		MovementPct: s.PhasePct[PhaseMovement],
		LightingPct: s.PhasePct[PhaseLighting],
		VisionPct:   s.PhasePct[PhaseVision],
		RenderPct:   s.PhasePct[PhaseRender],
	}
}
