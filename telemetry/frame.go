package telemetry

import (
	"iter"
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/sense"
)

// FrameStats holds sensory statistics for one frame.
type FrameStats struct {
	Frame int32 `csv:"frame"`

	// Aggregate sense map
	Sources   int     `csv:"sources"`
	LitCells  int     `csv:"lit_cells"`
	LitMean   float64 `csv:"lit_mean"`
	LitP50    float64 `csv:"lit_p50"`
	LitP90    float64 `csv:"lit_p90"`
	LitMax    float64 `csv:"lit_max"`
	NewlyLit  int     `csv:"newly_lit"`
	NewlyDark int     `csv:"newly_dark"`

	// Player field of view
	Visible     int `csv:"visible"`
	VisibleLit  int `csv:"visible_lit"` // Cells both in view and lit
	NewlySeen   int `csv:"newly_seen"`
	NewlyUnseen int `csv:"newly_unseen"`
}

// ComputeFrameStats summarizes the current state of sm and fov. Either may be nil.
func ComputeFrameStats(frame int32, sm *sense.SenseMap, fov *sense.FOV) FrameStats {
	fs := FrameStats{Frame: frame}

	if sm != nil {
		fs.Sources = len(sm.Sources())
		fs.LitCells = sm.SensedCount()
		values := make([]float64, 0, fs.LitCells)
		for p := range sm.CurrentSenseMap() {
			values = append(values, sm.AtPoint(p))
		}
		fs.LitMean, fs.LitP50, fs.LitP90, fs.LitMax = IntensityStats(values)
		fs.NewlyLit = count(sm.NewlyInSenseMap())
		fs.NewlyDark = count(sm.NewlyOutOfSenseMap())
	}

	if fov != nil {
		fs.Visible = fov.VisibleCount()
		fs.NewlySeen = count(fov.NewlySeen())
		fs.NewlyUnseen = count(fov.NewlyUnseen())
		if sm != nil {
			for p := range fov.CurrentFOV() {
				if sm.AtPoint(p) > 0 {
					fs.VisibleLit++
				}
			}
		}
	}
	return fs
}

// IntensityStats returns the mean, median, 90th percentile and maximum of values.
// All are 0 for an empty slice. values is not modified.
func IntensityStats(values []float64) (mean, p50, p90, maxV float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	maxV = floats.Max(sorted)
	return mean, p50, p90, maxV
}

func count(seq iter.Seq[geom.Point]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}

// LogValue implements slog.LogValuer for structured logging.
func (fs FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("frame", int(fs.Frame)),
		slog.Int("sources", fs.Sources),
		slog.Int("lit", fs.LitCells),
		slog.Float64("lit_mean", fs.LitMean),
		slog.Float64("lit_p90", fs.LitP90),
		slog.Int("visible", fs.Visible),
		slog.Int("visible_lit", fs.VisibleLit),
		slog.Int("newly_seen", fs.NewlySeen),
		slog.Int("newly_unseen", fs.NewlyUnseen),
	)
}
