// Package analysis computes offline statistics over recorded particle
// frames: displacement, clustering structure, and drift.
package analysis

import (
	"math"

	"github.com/san-kum/plife/internal/sim"
)

// MSD returns the mean squared displacement of all particles relative
// to the first frame, one value per frame. Frames with mismatched
// particle counts contribute zero.
func MSD(frames []sim.Frame) []float64 {
	if len(frames) == 0 {
		return nil
	}
	ref := frames[0].Positions
	out := make([]float64, len(frames))
	for i, f := range frames {
		if len(f.Positions) != len(ref) || len(ref) == 0 {
			continue
		}
		sum := 0.0
		for j := 0; j < len(ref); j += 2 {
			dx := f.Positions[j] - ref[j]
			dy := f.Positions[j+1] - ref[j+1]
			sum += dx*dx + dy*dy
		}
		out[i] = sum / float64(len(ref)/2)
	}
	return out
}

// RadialDistribution histograms all pairwise particle distances in one
// frame into bins of width maxDist/bins, normalized by the pair count.
// Peaks at short range indicate clustering.
func RadialDistribution(frame sim.Frame, bins int, maxDist float64) []float64 {
	hist := make([]float64, bins)
	n := len(frame.Positions) / 2
	if n < 2 || bins < 1 || maxDist <= 0 {
		return hist
	}

	pairs := 0
	width := maxDist / float64(bins)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := frame.Positions[i*2] - frame.Positions[j*2]
			dy := frame.Positions[i*2+1] - frame.Positions[j*2+1]
			d := math.Hypot(dx, dy)
			pairs++
			if d >= maxDist {
				continue
			}
			hist[int(d/width)]++
		}
	}
	for i := range hist {
		hist[i] /= float64(pairs)
	}
	return hist
}

// CentroidDrift returns, per frame, how far the centroid of all
// particles has moved from its position in the first frame.
func CentroidDrift(frames []sim.Frame) []float64 {
	if len(frames) == 0 {
		return nil
	}
	cx0, cy0 := centroid(frames[0].Positions)
	out := make([]float64, len(frames))
	for i, f := range frames {
		cx, cy := centroid(f.Positions)
		out[i] = math.Hypot(cx-cx0, cy-cy0)
	}
	return out
}

func centroid(positions []float64) (float64, float64) {
	n := len(positions) / 2
	if n == 0 {
		return 0, 0
	}
	var cx, cy float64
	for i := 0; i < n; i++ {
		cx += positions[i*2]
		cy += positions[i*2+1]
	}
	return cx / float64(n), cy / float64(n)
}
