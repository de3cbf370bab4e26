package sim

import (
	"context"
	"testing"

	"github.com/san-kum/plife/internal/config"
	"github.com/san-kum/plife/internal/life"
)

type countingMetric struct {
	frames int
}

func (c *countingMetric) Name() string                           { return "frames" }
func (c *countingMetric) Observe(reg *life.Registry, t float64)  { c.frames++ }
func (c *countingMetric) Last() float64                          { return float64(c.frames) }
func (c *countingMetric) Value() float64                         { return float64(c.frames) }
func (c *countingMetric) Reset()                                 { c.frames = 0 }

type frameObserver struct {
	times []float64
}

func (o *frameObserver) OnFrame(reg *life.Registry, t float64) {
	o.times = append(o.times, t)
}

func testRegistry(t *testing.T) *life.Registry {
	t.Helper()
	cfg := config.GetPreset("orbit")
	cfg.Seed = 3
	for i := range cfg.Groups {
		cfg.Groups[i].Count = 10
	}
	reg, err := cfg.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return reg
}

func TestSimulatorRun(t *testing.T) {
	s := New(testRegistry(t))
	m := &countingMetric{}
	o := &frameObserver{}
	s.AddMetric(m)
	s.AddObserver(o)

	result, err := s.Run(context.Background(), Config{Dt: 0.02, Frames: 50, Capture: 10})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.FramesRun != 50 {
		t.Errorf("expected 50 frames, got %d", result.FramesRun)
	}
	if m.frames != 50 {
		t.Errorf("metric observed %d frames, want 50", m.frames)
	}
	if len(o.times) != 50 {
		t.Errorf("observer saw %d frames, want 50", len(o.times))
	}
	if len(result.Series["frames"]) != 50 {
		t.Errorf("series has %d samples, want 50", len(result.Series["frames"]))
	}
	if result.Metrics["frames"] != 50 {
		t.Errorf("aggregate metric = %g, want 50", result.Metrics["frames"])
	}
	if len(result.Frames) != 5 {
		t.Errorf("expected 5 captured frames, got %d", len(result.Frames))
	}
	// 20 particles, two coordinates each.
	if len(result.Frames[0].Positions) != 40 {
		t.Errorf("snapshot has %d values, want 40", len(result.Frames[0].Positions))
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(testRegistry(t))

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Frames: 10}},
		{"negative dt", Config{Dt: -0.1, Frames: 10}},
		{"zero frames", Config{Dt: 0.1, Frames: 0}},
		{"negative capture", Config{Dt: 0.1, Frames: 10, Capture: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimulatorCancellation(t *testing.T) {
	s := New(testRegistry(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx, Config{Dt: 0.02, Frames: 1000})
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.FramesRun != 0 {
		t.Errorf("canceled before the first frame should run nothing, got %+v", result)
	}
}

func TestSnapshotInto(t *testing.T) {
	reg := life.NewRegistry(life.Bounds{Width: 100, Height: 100}, 1)
	id, _ := reg.AddGroup(life.NewGroup("a", "#ffffff", 2, 1), nil)
	g, _ := reg.Group(id)
	g.Particles[0] = life.Particle{X: 1, Y: 2}
	g.Particles[1] = life.Particle{X: 3, Y: 4}

	buf := SnapshotInto(reg, nil)
	want := []float64{1, 2, 3, 4}
	if len(buf) != len(want) {
		t.Fatalf("got %d values, want %d", len(buf), len(want))
	}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %g, want %g", i, buf[i], want[i])
		}
	}

	// Reuse must not allocate a fresh array.
	prev := &buf[0]
	buf = SnapshotInto(reg, buf)
	if &buf[0] != prev {
		t.Error("expected buffer reuse")
	}
}

func TestSnapshotPool(t *testing.T) {
	p := NewSnapshotPool(10)

	buf := p.Get()
	if cap(buf) < 20 {
		t.Fatalf("expected capacity for 10 particles, got %d", cap(buf))
	}
	buf = append(buf, 1, 2, 3)
	p.Put(buf)

	again := p.Get()
	if len(again) != 0 {
		t.Errorf("pooled buffer must come back empty, len=%d", len(again))
	}
}

func TestEnsembleRun(t *testing.T) {
	cfg := config.GetPreset("orbit")
	for i := range cfg.Groups {
		cfg.Groups[i].Count = 5
	}

	e := &Ensemble{
		Base:      cfg,
		Runs:      4,
		SeedStart: 100,
		Metrics:   func() []Metric { return []Metric{&countingMetric{}} },
	}

	results, err := e.Run(context.Background(), Config{Dt: 0.02, Frames: 20})
	if err != nil {
		t.Fatalf("ensemble: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.FramesRun != 20 {
			t.Errorf("run %d: %d frames, want 20", i, r.FramesRun)
		}
		if r.Metrics["frames"] != 20 {
			t.Errorf("run %d: metric %g, want 20", i, r.Metrics["frames"])
		}
	}
}
