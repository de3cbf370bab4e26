package sim

import "github.com/san-kum/plife/internal/life"

// Metric observes the registry once per frame and folds the samples
// into a scalar. Last reports the most recent sample for time series;
// Value the aggregate for run summaries.
type Metric interface {
	Name() string
	Observe(reg *life.Registry, t float64)
	Last() float64
	Value() float64
	Reset()
}

// Observer is notified after every completed frame.
type Observer interface {
	OnFrame(reg *life.Registry, t float64)
}

// Config drives a headless run.
type Config struct {
	Dt     float64 // frame delta passed to every step
	Frames int
	// Capture keeps every Capture-th frame in the result; 0 disables
	// frame capture.
	Capture int
}

// Frame is a captured snapshot: particle positions flattened x,y in
// registry order.
type Frame struct {
	Time      float64
	Positions []float64
}

// Result summarizes a completed (or canceled) run.
type Result struct {
	Frames    []Frame
	Metrics   map[string]float64
	Series    map[string][]float64
	FramesRun int
}

// SnapshotInto flattens all particle positions into buf, reusing its
// backing array when large enough. Layout matches Frame.Positions.
func SnapshotInto(reg *life.Registry, buf []float64) []float64 {
	buf = buf[:0]
	for i := 0; i < reg.Len(); i++ {
		for _, p := range reg.At(i).Particles {
			buf = append(buf, p.X, p.Y)
		}
	}
	return buf
}
