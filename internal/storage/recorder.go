package storage

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/san-kum/plife/internal/life"
	"github.com/san-kum/plife/internal/sim"
)

// Recorder streams particle frames to a CSV file as the simulation
// runs, keeping nothing in memory. It implements sim.Observer.
type Recorder struct {
	file  *os.File
	w     *csv.Writer
	pool  *sim.SnapshotPool
	every int
	frame int
	row   []string
	err   error
}

// NewRecorder opens path for writing and records every every-th frame.
// particles sizes the snapshot buffers.
func NewRecorder(path string, particles, every int) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if every < 1 {
		every = 1
	}
	r := &Recorder{
		file:  f,
		w:     csv.NewWriter(f),
		pool:  sim.NewSnapshotPool(particles),
		every: every,
	}
	r.err = r.w.Write(header(particles))
	return r, nil
}

func header(particles int) []string {
	h := make([]string, 0, particles*2+1)
	h = append(h, "time")
	for i := 0; i < particles; i++ {
		h = append(h, "x"+strconv.Itoa(i), "y"+strconv.Itoa(i))
	}
	return h
}

func (r *Recorder) OnFrame(reg *life.Registry, t float64) {
	r.frame++
	if r.err != nil || (r.frame-1)%r.every != 0 {
		return
	}

	buf := r.pool.Get()
	buf = sim.SnapshotInto(reg, buf)

	if cap(r.row) < len(buf)+1 {
		r.row = make([]string, 0, len(buf)+1)
	}
	r.row = r.row[:0]
	r.row = append(r.row, strconv.FormatFloat(t, 'f', 6, 64))
	for _, v := range buf {
		r.row = append(r.row, strconv.FormatFloat(v, 'f', 6, 64))
	}
	r.err = r.w.Write(r.row)

	r.pool.Put(buf)
}

// Close flushes and releases the file, reporting the first error hit
// while recording.
func (r *Recorder) Close() error {
	r.w.Flush()
	if err := r.w.Error(); err != nil && r.err == nil {
		r.err = err
	}
	if err := r.file.Close(); err != nil && r.err == nil {
		r.err = err
	}
	return r.err
}
