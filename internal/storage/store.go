// Package storage persists simulation runs: one directory per run with
// metadata, the scenario config for reproduction, a metric time series,
// and optionally recorded particle frames.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/plife/internal/config"
	"github.com/san-kum/plife/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Frames    int                `json:"frames"`
	Groups    []string           `json:"groups"`
	Particles int                `json:"particles"`
	Metrics   map[string]float64 `json:"metrics"`
}

// NewRunID derives a fresh run identifier from a scenario name.
func NewRunID(name string) string {
	return fmt.Sprintf("%s_%d", name, time.Now().Unix())
}

// RunDir creates and returns the directory for a run.
func (s *Store) RunDir(runID string) (string, error) {
	dir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// Save writes metadata, the scenario, and the per-frame metric series
// for a completed run.
func (s *Store) Save(runID string, cfg *config.Config, simCfg sim.Config, result *sim.Result) error {
	dir, err := s.RunDir(runID)
	if err != nil {
		return err
	}

	groups := make([]string, len(cfg.Groups))
	particles := 0
	for i, g := range cfg.Groups {
		groups[i] = g.Name
		particles += g.Count
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Seed:      cfg.Seed,
		Dt:        simCfg.Dt,
		Frames:    result.FramesRun,
		Groups:    groups,
		Particles: particles,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return err
	}
	defer metaFile.Close()
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	if err := config.Save(filepath.Join(dir, "scenario.yaml"), cfg); err != nil {
		return err
	}

	return s.saveSeries(dir, simCfg, result)
}

func (s *Store) saveSeries(dir string, simCfg sim.Config, result *sim.Result) error {
	if len(result.Series) == 0 {
		return nil
	}

	names := make([]string, 0, len(result.Series))
	for name := range result.Series {
		names = append(names, name)
	}
	sort.Strings(names)

	f, err := os.Create(filepath.Join(dir, "metrics.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := append([]string{"time"}, names...)
	if err := w.Write(header); err != nil {
		return err
	}
	for i := 0; i < result.FramesRun; i++ {
		row := make([]string, 0, len(names)+1)
		row = append(row, strconv.FormatFloat(float64(i+1)*simCfg.Dt, 'f', 6, 64))
		for _, name := range names {
			series := result.Series[name]
			if i < len(series) {
				row = append(row, strconv.FormatFloat(series[i], 'f', 6, 64))
			} else {
				row = append(row, "0")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadConfig returns the scenario a run was started from.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, "scenario.yaml"))
}

// LoadSeries reads the metric time series back: times plus one column
// per metric name.
func (s *Store) LoadSeries(runID string) ([]float64, map[string][]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "metrics.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, map[string][]float64{}, nil
	}

	header := records[0]
	times := make([]float64, 0, len(records)-1)
	series := make(map[string][]float64, len(header)-1)
	for _, name := range header[1:] {
		series[name] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		if len(record) != len(header) {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		for i, name := range header[1:] {
			v, err := strconv.ParseFloat(record[i+1], 64)
			if err != nil {
				v = 0
			}
			series[name] = append(series[name], v)
		}
	}
	return times, series, nil
}

// LoadFrames reads recorded particle frames back.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	frames := make([]sim.Frame, 0, len(records))
	for i, record := range records {
		if i == 0 || len(record) < 1 {
			continue // header
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		positions := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			positions = append(positions, v)
		}
		frames = append(frames, sim.Frame{Time: t, Positions: positions})
	}
	return frames, nil
}
