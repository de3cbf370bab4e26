package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/plife/internal/analysis"
	"github.com/san-kum/plife/internal/config"
	"github.com/san-kum/plife/internal/explore"
	"github.com/san-kum/plife/internal/export"
	"github.com/san-kum/plife/internal/metrics"
	"github.com/san-kum/plife/internal/scenario"
	"github.com/san-kum/plife/internal/share"
	"github.com/san-kum/plife/internal/sim"
	"github.com/san-kum/plife/internal/storage"
	"github.com/san-kum/plife/internal/viz"
)

var (
	dataDir    string
	configFile string
	shareCode  string
	seed       int64
	frames     int
	dt         float64
	capture    int
	record     int
	runName    string
	frameRate  int
	// scenario generation
	numGroups int
	count     int
	smooth    bool
	outFile   string
	// export
	frameIdx int
	scale    float64
	trails   bool
	// explore
	candidates    int
	workers       int
	top           int
	metricName    string
	maximize      bool
	exploreFrames int
	exploreCount  int
	// ensemble
	numRuns        int
	ensembleFrames int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "plife",
		Short: "particle life sandbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(nil)
			if err != nil {
				return err
			}
			return viz.RunLive(cfg, frameRate)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".plife", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	rootCmd.PersistentFlags().StringVar(&shareCode, "share", "", "scenario share code")
	rootCmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "interactive simulation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(args)
			if err != nil {
				return err
			}
			return viz.RunLive(cfg, frameRate)
		},
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scenario headless and store the results",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().IntVar(&frames, "frames", 2000, "frames to simulate")
	runCmd.Flags().Float64Var(&dt, "dt", 1.0, "frame delta")
	runCmd.Flags().IntVar(&capture, "capture", 0, "keep every n-th frame in memory")
	runCmd.Flags().IntVar(&record, "record", 20, "write every n-th frame to frames.csv (0 disables)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the scenario's)")
	runCmd.Flags().StringVar(&runName, "name", "", "run name (defaults to preset name)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's metric series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "displacement and structure analysis of recorded frames",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export recorded frames to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outFile, "out", "", "output file (defaults to <run_id>.svg)")
	exportCmd.Flags().IntVar(&frameIdx, "frame", -1, "frame index (-1 for last)")
	exportCmd.Flags().Float64Var(&scale, "scale", 1.0, "pixels per world unit")
	exportCmd.Flags().BoolVar(&trails, "trails", false, "draw group centroid trails instead of a single frame")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	randomCmd := &cobra.Command{
		Use:   "random",
		Short: "generate a random scenario",
		RunE:  randomScenario,
	}
	randomCmd.Flags().IntVar(&numGroups, "groups", 4, "number of groups")
	randomCmd.Flags().IntVar(&count, "count", 400, "particles per group")
	randomCmd.Flags().BoolVar(&smooth, "smooth", false, "derive forces from smooth noise")
	randomCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	randomCmd.Flags().StringVar(&outFile, "out", "", "write scenario yaml here instead of stdout")

	encodeCmd := &cobra.Command{
		Use:   "encode [preset]",
		Short: "encode a scenario as a share code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(args)
			if err != nil {
				return err
			}
			code, err := share.Encode(cfg)
			if err != nil {
				return err
			}
			fmt.Println(code)
			return nil
		},
	}

	decodeCmd := &cobra.Command{
		Use:   "decode [code]",
		Short: "decode a share code back to yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := share.Decode(args[0])
			if err != nil {
				return err
			}
			if outFile != "" {
				return config.Save(outFile, cfg)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			os.Stdout.Write(data)
			return nil
		},
	}
	decodeCmd.Flags().StringVar(&outFile, "out", "", "write scenario yaml here instead of stdout")

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "search random scenarios and rank them by a metric",
		RunE:  exploreScenarios,
	}
	exploreCmd.Flags().IntVar(&candidates, "candidates", 16, "scenarios to try")
	exploreCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 uses all cpus)")
	exploreCmd.Flags().IntVar(&exploreFrames, "frames", 600, "frames per candidate")
	exploreCmd.Flags().IntVar(&numGroups, "groups", 4, "groups per scenario")
	exploreCmd.Flags().IntVar(&exploreCount, "count", 100, "particles per group")
	exploreCmd.Flags().Int64Var(&seed, "seed", 0, "base seed (0 picks one)")
	exploreCmd.Flags().IntVar(&top, "top", 5, "results to print")
	exploreCmd.Flags().StringVar(&metricName, "metric", "spread", "ranking metric (spread, energy, computations)")
	exploreCmd.Flags().BoolVar(&maximize, "maximize", false, "prefer high scores")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [preset]",
		Short: "run the same scenario under consecutive seeds",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of runs")
	ensembleCmd.Flags().IntVar(&ensembleFrames, "frames", 1000, "frames per run")
	ensembleCmd.Flags().Float64Var(&dt, "dt", 1.0, "frame delta")
	ensembleCmd.Flags().Int64Var(&seed, "seed", 0, "first seed (0 starts at 1)")

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "benchmark the pairwise step",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScenario,
	}

	rootCmd.AddCommand(liveCmd, runCmd, listCmd, plotCmd, analyzeCmd, exportCmd,
		presetsCmd, randomCmd, encodeCmd, decodeCmd, exploreCmd, ensembleCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// resolveConfig picks the scenario source: share code, then config
// file, then preset argument, then the default preset.
func resolveConfig(args []string) (*config.Config, error) {
	if shareCode != "" {
		return share.Decode(shareCode)
	}
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		return cfg, cfg.Validate()
	}
	if len(args) > 0 {
		cfg := config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
		return cfg, nil
	}
	return config.DefaultConfig(), nil
}

func defaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewComputations(),
		metrics.NewKineticEnergy(),
		metrics.NewSpread(),
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args)
	if err != nil {
		return err
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	reg, err := cfg.Build()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	name := runName
	if name == "" {
		if len(args) > 0 {
			name = args[0]
		} else {
			name = "run"
		}
	}
	runID := storage.NewRunID(name)
	dir, err := st.RunDir(runID)
	if err != nil {
		return err
	}

	s := sim.New(reg)
	for _, m := range defaultMetrics() {
		s.AddMetric(m)
	}

	var rec *storage.Recorder
	if record > 0 {
		particles := 0
		for _, g := range cfg.Groups {
			particles += g.Count
		}
		rec, err = storage.NewRecorder(filepath.Join(dir, "frames.csv"), particles, record)
		if err != nil {
			return err
		}
		s.AddObserver(rec)
	}

	simCfg := sim.Config{Dt: dt, Frames: frames, Capture: capture}

	fmt.Printf("running %s for %d frames...\n", name, frames)
	start := time.Now()
	result, err := s.Run(context.Background(), simCfg)
	if rec != nil {
		if cerr := rec.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := st.Save(runID, cfg, simCfg, result); err != nil {
		return err
	}

	fmt.Printf("completed in %v (%.0f frames/sec)\n", elapsed, float64(result.FramesRun)/elapsed.Seconds())
	fmt.Printf("run id: %s\n", runID)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tFRAMES\tGROUPS\tPARTICLES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			len(run.Groups),
			run.Particles,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	_, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no series data for %s", runID)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("particles: %d in %d groups\n\n", meta.Particles, len(meta.Groups))

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		graph := asciigraph.Plot(series[name],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) < 2 {
		return fmt.Errorf("run %s has %d recorded frames, need at least 2 (rerun with --record)", runID, len(frames))
	}
	cfg, err := st.LoadConfig(runID)
	if err != nil {
		return err
	}

	fmt.Printf("analysis: %s (%d frames)\n\n", runID, len(frames))

	msd := analysis.MSD(frames)
	fmt.Println(asciigraph.Plot(msd,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("mean squared displacement"),
	))
	fmt.Println()

	drift := analysis.CentroidDrift(frames)
	fmt.Println(asciigraph.Plot(drift,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("centroid drift"),
	))
	fmt.Println()

	maxDist := cfg.World.Width
	if cfg.World.Height > maxDist {
		maxDist = cfg.World.Height
	}
	rdf := analysis.RadialDistribution(frames[len(frames)-1], 40, maxDist/2)
	fmt.Println(asciigraph.Plot(rdf,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("radial pair distribution (final frame)"),
	))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("run %s has no recorded frames (rerun with --record)", runID)
	}
	cfg, err := st.LoadConfig(runID)
	if err != nil {
		return err
	}

	var svg string
	if trails {
		svg, err = export.Trails(frames, cfg, scale)
	} else {
		idx := frameIdx
		if idx < 0 || idx >= len(frames) {
			idx = len(frames) - 1
		}
		svg, err = export.Scatter(frames[idx], cfg, scale)
	}
	if err != nil {
		return err
	}

	out := outFile
	if out == "" {
		out = runID + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func randomScenario(cmd *cobra.Command, args []string) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	opts := scenario.DefaultOptions()
	opts.Groups = numGroups
	opts.Count = count
	opts.Smooth = smooth

	cfg, err := scenario.Random(rng, opts)
	if err != nil {
		return err
	}
	cfg.Seed = seed

	code, err := share.Encode(cfg)
	if err != nil {
		return err
	}

	if outFile != "" {
		if err := config.Save(outFile, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
	} else {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
	}
	fmt.Printf("\nseed: %d\nshare: %s\n", seed, code)
	return nil
}

func exploreScenarios(cmd *cobra.Command, args []string) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := explore.DefaultOptions()
	opts.Candidates = candidates
	if workers > 0 {
		opts.Workers = workers
	}
	opts.Frames = exploreFrames
	opts.Seed = seed
	opts.Scenario.Groups = numGroups
	opts.Scenario.Count = exploreCount
	opts.Maximize = maximize

	switch metricName {
	case "spread":
		opts.Score = func() sim.Metric { return metrics.NewSpread() }
	case "energy":
		opts.Score = func() sim.Metric { return metrics.NewKineticEnergy() }
	case "computations":
		opts.Score = func() sim.Metric { return metrics.NewComputations() }
	default:
		return fmt.Errorf("unknown metric: %s", metricName)
	}

	fmt.Printf("exploring %d scenarios (%d frames each)...\n\n", candidates, exploreFrames)
	start := time.Now()
	ranked, err := explore.Search(context.Background(), opts)
	if err != nil {
		return err
	}
	fmt.Printf("done in %v\n\n", time.Since(start))

	if top > len(ranked) {
		top = len(ranked)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "RANK\tSEED\t%s\tSHARE\n", metricName)
	for i := 0; i < top; i++ {
		c := ranked[i]
		code, err := share.Encode(c.Config)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%d\t%.4f\t%s\n", i+1, c.Seed, c.Score, code)
	}
	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args)
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = 1
	}

	e := &sim.Ensemble{
		Base:      cfg,
		Runs:      numRuns,
		SeedStart: seed,
		Metrics:   defaultMetrics,
	}

	fmt.Printf("running %d seeds x %d frames...\n\n", numRuns, ensembleFrames)
	results, err := e.Run(context.Background(), sim.Config{Dt: dt, Frames: ensembleFrames})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tENERGY\tSPREAD\tPAIRS/FRAME")
	sums := map[string]float64{}
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.0f\n",
			seed+int64(i),
			r.Metrics["kinetic_energy"],
			r.Metrics["spread"],
			r.Metrics["computations"],
		)
		for name, v := range r.Metrics {
			sums[name] += v
		}
	}
	n := float64(len(results))
	fmt.Fprintf(w, "mean\t%.4f\t%.4f\t%.0f\n",
		sums["kinetic_energy"]/n, sums["spread"]/n, sums["computations"]/n)
	return w.Flush()
}

func benchScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args)
	if err != nil {
		return err
	}

	counts := []int{100, 400, 1000}
	benchFrames := 200

	fmt.Printf("benchmarking %d groups, %d frames per size\n\n", len(cfg.Groups), benchFrames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES/GROUP\tPAIRS/FRAME\tTIME\tFRAMES/SEC")

	for _, c := range counts {
		trial := cfg.Clone()
		for i := range trial.Groups {
			trial.Groups[i].Count = c
		}
		reg, err := trial.Build()
		if err != nil {
			return err
		}

		start := time.Now()
		for f := 0; f < benchFrames; f++ {
			reg.Step(1)
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n",
			c, reg.ComputationsPerFrame(), elapsed, float64(benchFrames)/elapsed.Seconds())
	}
	return w.Flush()
}

