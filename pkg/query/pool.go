package query

import (
	"sync"

	"edgehierarchy/pkg/graph"
)

// PooledDistancer serves concurrent Distance calls over a single shared
// FrozenHGraph by handing each call its own scratch Query drawn from a
// sync.Pool, matching the teacher's Engine.qsPool: the frozen graph is
// safe to read from many goroutines at once, but a Query's heaps and
// tentative-distance arrays are not.
type PooledDistancer struct {
	pool sync.Pool
}

// NewPooledDistancer builds a distancer over g; every Distance call gets
// its own Query, reused across calls via the pool rather than allocated
// fresh each time.
func NewPooledDistancer(g *graph.FrozenHGraph, useForwardStalling, useBackwardStalling bool) *PooledDistancer {
	d := &PooledDistancer{}
	d.pool.New = func() any {
		return New(g, useForwardStalling, useBackwardStalling)
	}
	return d
}

// Distance satisfies api.Distancer.
func (d *PooledDistancer) Distance(source, target uint32) uint32 {
	q := d.pool.Get().(*Query)
	defer d.pool.Put(q)
	return q.Distance(source, target)
}
