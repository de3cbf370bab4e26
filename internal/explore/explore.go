// Package explore searches scenario space: it generates random rule
// tables, runs each one headless, and ranks them by a metric.
package explore

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"github.com/san-kum/plife/internal/config"
	"github.com/san-kum/plife/internal/scenario"
	"github.com/san-kum/plife/internal/sim"
)

type Options struct {
	Candidates int
	Workers    int
	Frames     int
	Dt         float64
	Seed       int64
	Scenario   scenario.Options
	// Score builds a fresh metric per candidate; its Value after the
	// run is the candidate's score.
	Score func() sim.Metric
	// Maximize ranks high scores first; the default prefers low.
	Maximize bool
}

func DefaultOptions() Options {
	return Options{
		Candidates: 16,
		Workers:    runtime.GOMAXPROCS(0),
		Frames:     600,
		Dt:         1,
		Scenario:   scenario.DefaultOptions(),
	}
}

type Candidate struct {
	Config *config.Config
	Score  float64
	Seed   int64
}

// Search runs opts.Candidates independent scenarios across a worker
// pool and returns them ranked. Candidate i always uses seed
// opts.Seed+i, so a search is reproducible regardless of scheduling.
func Search(ctx context.Context, opts Options) ([]Candidate, error) {
	if opts.Candidates <= 0 {
		return nil, fmt.Errorf("explore: candidates must be positive, got %d", opts.Candidates)
	}
	if opts.Score == nil {
		return nil, errors.New("explore: no score metric")
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > opts.Candidates {
		workers = opts.Candidates
	}

	results := make([]Candidate, opts.Candidates)
	errs := make([]error, opts.Candidates)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx], errs[idx] = runCandidate(ctx, opts, idx)
			}
		}()
	}

feed:
	for i := 0; i < opts.Candidates; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ranked := make([]Candidate, 0, len(results))
	for i, c := range results {
		if errs[i] != nil {
			return nil, fmt.Errorf("explore: candidate %d: %w", i, errs[i])
		}
		ranked = append(ranked, c)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if opts.Maximize {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Score < ranked[j].Score
	})
	return ranked, nil
}

func runCandidate(ctx context.Context, opts Options, idx int) (Candidate, error) {
	seed := opts.Seed + int64(idx)
	rng := rand.New(rand.NewSource(seed))

	cfg, err := scenario.Random(rng, opts.Scenario)
	if err != nil {
		return Candidate{}, err
	}
	cfg.Seed = seed

	reg, err := cfg.Build()
	if err != nil {
		return Candidate{}, err
	}

	metric := opts.Score()
	s := sim.New(reg)
	s.AddMetric(metric)
	if _, err := s.Run(ctx, sim.Config{Dt: opts.Dt, Frames: opts.Frames}); err != nil {
		return Candidate{}, err
	}

	return Candidate{Config: cfg, Score: metric.Value(), Seed: seed}, nil
}
