package ch

import "math"

// Query runs repeated bidirectional Dijkstra over a contracted Overlay,
// reusing its scratch distance arrays across calls. Distance satisfies
// shortcut.Oracle, letting --useCH substitute a full Contraction
// Hierarchy search for the bounded witness search during edge-hierarchy
// construction.
type Query struct {
	ch       *Overlay
	distFwd  []uint32
	distBwd  []uint32
	touchedF []uint32
	touchedB []uint32
}

const infinity = math.MaxUint32

func NewQuery(ch *Overlay) *Query {
	q := &Query{ch: ch, distFwd: make([]uint32, ch.NumNodes), distBwd: make([]uint32, ch.NumNodes)}
	for i := range q.distFwd {
		q.distFwd[i] = infinity
		q.distBwd[i] = infinity
	}
	return q
}

type chHeapItem struct {
	node uint32
	dist uint32
}

// Distance returns the exact shortest-path distance from s to t, or
// graph.WeightInfinity if unreachable. maxWeight is accepted to satisfy
// shortcut.Oracle's signature but is not used to prune here: CH search
// is already fast enough per-query that early termination on a weight
// bound isn't worth the added bookkeeping (unlike the bounded witness
// search, which exists specifically to cap per-query cost).
func (q *Query) Distance(s, t, _ uint32) uint32 {
	for _, n := range q.touchedF {
		q.distFwd[n] = infinity
	}
	for _, n := range q.touchedB {
		q.distBwd[n] = infinity
	}
	q.touchedF = q.touchedF[:0]
	q.touchedB = q.touchedB[:0]

	q.distFwd[s] = 0
	q.distBwd[t] = 0
	q.touchedF = append(q.touchedF, s)
	q.touchedB = append(q.touchedB, t)

	var fwdPQ, bwdPQ []chHeapItem
	fwdPQ = append(fwdPQ, chHeapItem{s, 0})
	bwdPQ = append(bwdPQ, chHeapItem{t, 0})

	mu := uint32(infinity)

	popMin := func(pq *[]chHeapItem) chHeapItem {
		minIdx := 0
		for i := 1; i < len(*pq); i++ {
			if (*pq)[i].dist < (*pq)[minIdx].dist {
				minIdx = i
			}
		}
		cur := (*pq)[minIdx]
		(*pq)[minIdx] = (*pq)[len(*pq)-1]
		*pq = (*pq)[:len(*pq)-1]
		return cur
	}
	peekMin := func(pq []chHeapItem) uint32 {
		if len(pq) == 0 {
			return infinity
		}
		min := pq[0].dist
		for _, it := range pq[1:] {
			if it.dist < min {
				min = it.dist
			}
		}
		return min
	}

	for len(fwdPQ) > 0 || len(bwdPQ) > 0 {
		if len(fwdPQ) > 0 && peekMin(fwdPQ) < mu {
			cur := popMin(&fwdPQ)
			if cur.dist <= q.distFwd[cur.node] {
				if q.distBwd[cur.node] < infinity {
					if cand := cur.dist + q.distBwd[cur.node]; cand < mu {
						mu = cand
					}
				}
				start, end := q.ch.FwdFirstOut[cur.node], q.ch.FwdFirstOut[cur.node+1]
				for e := start; e < end; e++ {
					v := q.ch.FwdHead[e]
					newDist := cur.dist + q.ch.FwdWeight[e]
					if q.distFwd[v] == infinity {
						q.touchedF = append(q.touchedF, v)
					}
					if newDist < q.distFwd[v] {
						q.distFwd[v] = newDist
						fwdPQ = append(fwdPQ, chHeapItem{v, newDist})
					}
				}
			}
		}

		if len(bwdPQ) > 0 && peekMin(bwdPQ) < mu {
			cur := popMin(&bwdPQ)
			if cur.dist <= q.distBwd[cur.node] {
				if q.distFwd[cur.node] < infinity {
					if cand := q.distFwd[cur.node] + cur.dist; cand < mu {
						mu = cand
					}
				}
				start, end := q.ch.BwdFirstOut[cur.node], q.ch.BwdFirstOut[cur.node+1]
				for e := start; e < end; e++ {
					v := q.ch.BwdHead[e]
					newDist := cur.dist + q.ch.BwdWeight[e]
					if q.distBwd[v] == infinity {
						q.touchedB = append(q.touchedB, v)
					}
					if newDist < q.distBwd[v] {
						q.distBwd[v] = newDist
						bwdPQ = append(bwdPQ, chHeapItem{v, newDist})
					}
				}
			}
		}

		if peekMin(fwdPQ) >= mu && peekMin(bwdPQ) >= mu {
			break
		}
	}

	return mu
}
