package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/plife/internal/sim"
)

func TestMSD(t *testing.T) {
	frames := []sim.Frame{
		{Time: 0, Positions: []float64{0, 0, 10, 10}},
		{Time: 1, Positions: []float64{3, 4, 10, 10}}, // first particle moved 5
		{Time: 2, Positions: []float64{3, 4, 13, 14}}, // both moved 5
	}

	got := MSD(frames)
	want := []float64{0, 12.5, 25}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("msd[%d] = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestMSDEmpty(t *testing.T) {
	if got := MSD(nil); got != nil {
		t.Errorf("expected nil for no frames, got %v", got)
	}
}

func TestRadialDistribution(t *testing.T) {
	// Three particles: distances 3, 4, 5.
	frame := sim.Frame{Positions: []float64{0, 0, 3, 0, 3, 4}}

	hist := RadialDistribution(frame, 10, 10)

	total := 0.0
	for _, v := range hist {
		total += v
	}
	if math.Abs(total-1) > 1e-12 {
		t.Errorf("histogram should sum to 1 when all pairs are in range, got %g", total)
	}
	// Bin width 1: distances 3, 4 and 5 land in bins 3, 4 and 5.
	for _, bin := range []int{3, 4, 5} {
		if math.Abs(hist[bin]-1.0/3.0) > 1e-12 {
			t.Errorf("bin %d = %g, want 1/3", bin, hist[bin])
		}
	}
}

func TestRadialDistributionOutOfRange(t *testing.T) {
	frame := sim.Frame{Positions: []float64{0, 0, 100, 0}}
	hist := RadialDistribution(frame, 5, 10)
	for i, v := range hist {
		if v != 0 {
			t.Errorf("bin %d should be empty, got %g", i, v)
		}
	}
}

func TestRadialDistributionDegenerate(t *testing.T) {
	if hist := RadialDistribution(sim.Frame{}, 5, 10); len(hist) != 5 {
		t.Errorf("expected 5 empty bins, got %v", hist)
	}
}

func TestCentroidDrift(t *testing.T) {
	frames := []sim.Frame{
		{Positions: []float64{0, 0, 10, 0}},
		{Positions: []float64{6, 8, 16, 8}}, // centroid moved (6, 8): distance 10
	}

	got := CentroidDrift(frames)
	if got[0] != 0 {
		t.Errorf("first frame drift must be 0, got %g", got[0])
	}
	if math.Abs(got[1]-10) > 1e-12 {
		t.Errorf("drift = %g, want 10", got[1])
	}
}
