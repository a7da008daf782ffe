package model

import "sync"

// SnapshotToPool returns a snapshot to the pool for reuse
func SnapshotToPool(snap *Snapshot, pool *SnapshotPool) {
	if pool == nil || snap == nil {
		return
	}

	pool.Put(snap)
}

// SnapshotPool recycles snapshot buffers between frames
type SnapshotPool struct {
	pool sync.Pool
}

func NewSnapshotPool() *SnapshotPool {
	return &SnapshotPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &Snapshot{}
			},
		},
	}
}

// Take captures the board's current generation into a pooled snapshot
func (p *SnapshotPool) Take(b *Board) *Snapshot {
	s := p.pool.Get().(*Snapshot)
	b.SnapshotInto(s)
	return s
}

// Put returns a snapshot to the pool
func (p *SnapshotPool) Put(s *Snapshot) {
	p.pool.Put(s)
}
