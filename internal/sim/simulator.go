package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/plife/internal/life"
)

// Simulator drives a registry through headless frames, feeding metrics
// and observers. It owns no frame timing: Config.Dt stands in for the
// host's per-frame delta.
type Simulator struct {
	reg       *life.Registry
	metrics   []Metric
	observers []Observer
}

func New(reg *life.Registry) *Simulator {
	return &Simulator{reg: reg}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Registry() *life.Registry { return s.reg }

// Run executes cfg.Frames steps. Cancellation returns the partial
// result together with the context error; a canceled frame is simply
// never started, there is no mid-step state to unwind.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Metrics: make(map[string]float64),
		Series:  make(map[string][]float64, len(s.metrics)),
	}
	for _, m := range s.metrics {
		m.Reset()
		result.Series[m.Name()] = make([]float64, 0, cfg.Frames)
	}

	t := 0.0
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		s.reg.Step(cfg.Dt)
		t += cfg.Dt
		result.FramesRun++

		for _, m := range s.metrics {
			m.Observe(s.reg, t)
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Last())
		}
		for _, o := range s.observers {
			o.OnFrame(s.reg, t)
		}

		if cfg.Capture > 0 && i%cfg.Capture == 0 {
			result.Frames = append(result.Frames, Frame{
				Time:      t,
				Positions: SnapshotInto(s.reg, nil),
			})
		}
	}

	s.finish(result)
	return result, nil
}

func (s *Simulator) finish(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validate(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", cfg.Dt)
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}
	if cfg.Capture < 0 {
		return fmt.Errorf("capture interval must not be negative, got %d", cfg.Capture)
	}
	return nil
}
