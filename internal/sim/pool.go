package sim

import "sync"

// SnapshotPool recycles position buffers for per-frame snapshots, so
// streaming recorders don't allocate once per frame.
type SnapshotPool struct {
	pool sync.Pool
	size int
}

// NewSnapshotPool sizes buffers for a particle total; each particle
// takes two slots.
func NewSnapshotPool(particles int) *SnapshotPool {
	size := particles * 2
	return &SnapshotPool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]float64, 0, size)
			},
		},
	}
}

func (p *SnapshotPool) Get() []float64 {
	return p.pool.Get().([]float64)[:0]
}

// Put returns a buffer for reuse. Buffers that grew past the pool's
// size are kept; shrunken capacity never enters the pool.
func (p *SnapshotPool) Put(buf []float64) {
	if cap(buf) >= p.size {
		p.pool.Put(buf[:0])
	}
}
