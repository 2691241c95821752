package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/grid"
	"github.com/pthm-cable/gridsense/sense"
)

func TestIntensityStats(t *testing.T) {
	values := []float64{0.9, 0.1, 0.5, 0.3, 0.7}
	mean, p50, p90, maxV := IntensityStats(values)

	if math.Abs(mean-0.5) > 1e-12 {
		t.Errorf("Expected mean 0.5, got %f", mean)
	}
	if p50 != 0.5 {
		t.Errorf("Expected median 0.5, got %f", p50)
	}
	if p90 != 0.9 {
		t.Errorf("Expected p90 0.9, got %f", p90)
	}
	if maxV != 0.9 {
		t.Errorf("Expected max 0.9, got %f", maxV)
	}
	if values[0] != 0.9 {
		t.Error("Expected input slice to be left unsorted")
	}
}

func TestIntensityStats_Empty(t *testing.T) {
	mean, p50, p90, maxV := IntensityStats(nil)
	if mean != 0 || p50 != 0 || p90 != 0 || maxV != 0 {
		t.Errorf("Expected zeros, got %f %f %f %f", mean, p50, p90, maxV)
	}
}

// TestComputeFrameStats verifies a single radius-1 light seen by a radius-1 FOV.
func TestComputeFrameStats(t *testing.T) {
	res := grid.NewArray[float64](5, 5)
	center := geom.Pt(2, 2)

	sm := sense.NewSenseMap(res)
	src, err := sense.NewSenseSource(sense.Shadow, center, 1, geom.Square, 1)
	if err != nil {
		t.Fatalf("NewSenseSource: %v", err)
	}
	if err := sm.AddSenseSource(src); err != nil {
		t.Fatalf("AddSenseSource: %v", err)
	}
	if err := sm.Calculate(); err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	fov := sense.NewFOV(res)
	if err := fov.Calculate(center, 1, geom.Square); err != nil {
		t.Fatalf("FOV Calculate: %v", err)
	}

	fs := ComputeFrameStats(7, sm, fov)
	if fs.Frame != 7 || fs.Sources != 1 {
		t.Errorf("Expected frame 7 with 1 source, got %d/%d", fs.Frame, fs.Sources)
	}
	// Origin at 1, eight neighbours at 1 - 1/2.
	if fs.LitCells != 9 {
		t.Errorf("Expected 9 lit cells, got %d", fs.LitCells)
	}
	if math.Abs(fs.LitMean-5.0/9.0) > 1e-9 {
		t.Errorf("Expected mean 5/9, got %f", fs.LitMean)
	}
	if fs.LitP50 != 0.5 || fs.LitP90 != 1 || fs.LitMax != 1 {
		t.Errorf("Expected p50 0.5, p90 1, max 1, got %f %f %f", fs.LitP50, fs.LitP90, fs.LitMax)
	}
	if fs.NewlyLit != 9 || fs.NewlyDark != 0 {
		t.Errorf("Expected 9 newly lit and 0 dark, got %d/%d", fs.NewlyLit, fs.NewlyDark)
	}
	if fs.Visible != 9 || fs.VisibleLit != 9 || fs.NewlySeen != 9 || fs.NewlyUnseen != 0 {
		t.Errorf("Unexpected view counts: %+v", fs)
	}

	// Moving the light away darkens the old cells.
	src.SetPosition(geom.Pt(0, 0))
	if err := sm.Calculate(); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	fs = ComputeFrameStats(8, sm, fov)
	if fs.LitCells != 4 {
		t.Errorf("Expected 4 lit cells in the corner, got %d", fs.LitCells)
	}
	// (1,1) stays lit; the rest of the old square goes dark.
	if fs.NewlyDark != 8 {
		t.Errorf("Expected 8 newly dark cells, got %d", fs.NewlyDark)
	}
	if fs.VisibleLit != 1 {
		t.Errorf("Expected 1 visible lit cell, got %d", fs.VisibleLit)
	}
}

func TestComputeFrameStats_Nil(t *testing.T) {
	fs := ComputeFrameStats(3, nil, nil)
	if fs != (FrameStats{Frame: 3}) {
		t.Errorf("Expected empty stats, got %+v", fs)
	}
}
