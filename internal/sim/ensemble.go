package sim

import (
	"context"
	"sync"

	"github.com/san-kum/plife/internal/config"
)

// Ensemble runs the same scenario under consecutive seeds, each run an
// independent simulation on its own goroutine. The core step itself
// stays single-threaded; only whole runs execute in parallel.
type Ensemble struct {
	Base      *config.Config
	Runs      int
	SeedStart int64
	// Metrics builds a fresh metric set per run; metric instances are
	// never shared across goroutines.
	Metrics func() []Metric
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.Runs)
	errs := make([]error, e.Runs)

	var wg sync.WaitGroup
	for i := 0; i < e.Runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			runCfg := e.Base.Clone()
			runCfg.Seed = e.SeedStart + int64(idx)

			reg, err := runCfg.Build()
			if err != nil {
				errs[idx] = err
				return
			}

			s := New(reg)
			if e.Metrics != nil {
				for _, m := range e.Metrics() {
					s.AddMetric(m)
				}
			}
			results[idx], errs[idx] = s.Run(ctx, cfg)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
