package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/san-kum/plife/internal/config"
	"github.com/san-kum/plife/internal/metrics"
	"github.com/san-kum/plife/internal/sim"
)

func smallConfig() *config.Config {
	cfg := config.GetPreset("orbit")
	cfg.Seed = 11
	for i := range cfg.Groups {
		cfg.Groups[i].Count = 8
	}
	return cfg
}

func runScenario(t *testing.T, cfg *config.Config, simCfg sim.Config, obs sim.Observer) *sim.Result {
	t.Helper()
	reg, err := cfg.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	s := sim.New(reg)
	s.AddMetric(metrics.NewComputations())
	s.AddMetric(metrics.NewKineticEnergy())
	if obs != nil {
		s.AddObserver(obs)
	}
	result, err := s.Run(context.Background(), simCfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return result
}

func TestSaveListLoad(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	cfg := smallConfig()
	simCfg := sim.Config{Dt: 0.02, Frames: 30}
	result := runScenario(t, cfg, simCfg, nil)

	runID := "orbit_test"
	if err := store.Save(runID, cfg, simCfg, result); err != nil {
		t.Fatalf("save: %v", err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != runID {
		t.Fatalf("expected one run %q, got %+v", runID, runs)
	}
	if runs[0].Particles != 16 {
		t.Errorf("expected 16 particles, got %d", runs[0].Particles)
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Frames != 30 || meta.Seed != 11 {
		t.Errorf("metadata drifted: %+v", meta)
	}
	if _, ok := meta.Metrics["computations"]; !ok {
		t.Error("expected computations metric in metadata")
	}
}

func TestLoadConfigRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	cfg := smallConfig()
	simCfg := sim.Config{Dt: 0.02, Frames: 5}
	result := runScenario(t, cfg, simCfg, nil)

	if err := store.Save("r1", cfg, simCfg, result); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := store.LoadConfig("r1")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(back.Groups) != len(cfg.Groups) || back.Seed != cfg.Seed {
		t.Errorf("scenario drifted: %+v", back)
	}
}

func TestLoadSeries(t *testing.T) {
	store := New(t.TempDir())
	cfg := smallConfig()
	simCfg := sim.Config{Dt: 0.02, Frames: 25}
	result := runScenario(t, cfg, simCfg, nil)

	if err := store.Save("r2", cfg, simCfg, result); err != nil {
		t.Fatalf("save: %v", err)
	}

	times, series, err := store.LoadSeries("r2")
	if err != nil {
		t.Fatalf("load series: %v", err)
	}
	if len(times) != 25 {
		t.Fatalf("expected 25 samples, got %d", len(times))
	}
	for _, name := range []string{"computations", "kinetic_energy"} {
		if len(series[name]) != 25 {
			t.Errorf("series %q has %d samples, want 25", name, len(series[name]))
		}
	}
}

func TestRecorder(t *testing.T) {
	store := New(t.TempDir())
	cfg := smallConfig()

	dir, err := store.RunDir("r3")
	if err != nil {
		t.Fatalf("run dir: %v", err)
	}
	rec, err := NewRecorder(filepath.Join(dir, "frames.csv"), 16, 5)
	if err != nil {
		t.Fatalf("recorder: %v", err)
	}

	simCfg := sim.Config{Dt: 0.02, Frames: 20}
	runScenario(t, cfg, simCfg, rec)
	if err := rec.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	frames, err := store.LoadFrames("r3")
	if err != nil {
		t.Fatalf("load frames: %v", err)
	}
	// Frames 1, 6, 11, 16.
	if len(frames) != 4 {
		t.Fatalf("expected 4 recorded frames, got %d", len(frames))
	}
	for _, f := range frames {
		if len(f.Positions) != 32 {
			t.Errorf("frame at t=%g has %d coordinates, want 32", f.Time, len(f.Positions))
		}
	}
}

func TestListEmptyStore(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "missing"))
	runs, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
