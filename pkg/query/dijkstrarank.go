package query

import (
	"edgehierarchy/pkg/ds"
	"edgehierarchy/pkg/graph"
)

// DijkstraRankQueries runs a single plain Dijkstra from source over every
// edge in g, ignoring rank entirely, and returns the external id of the
// vertex settled at each power-of-two position (the 1st, 2nd, 4th, 8th...
// vertex popped). This is the "dijkstra rank" query-difficulty ladder
// original_source/benchmark.cpp builds to synthesize queries of
// increasing hardness from a single fixed source: harder queries settle
// more vertices before they're reached.
func DijkstraRankQueries(g *graph.FrozenHGraph, externalSource uint32) []uint32 {
	n := g.NumNodes()
	source := g.InternalNode(externalSource)

	heap := ds.NewAddressableHeap(n)
	wasPushed := ds.NewTimestampFlags(n)
	settled := ds.NewTimestampFlags(n)
	tentative := make([]uint32, n)

	heap.Push(source, 0)
	wasPushed.Set(source)
	tentative[source] = 0

	var ranks []uint32
	settledCount := uint32(0)
	nextPow := uint32(1)

	for !heap.Empty() {
		u, dist := heap.Pop()
		settled.Set(u)
		settledCount++

		if settledCount == nextPow {
			ranks = append(ranks, g.ExternalNode(u))
			nextPow *= 2
		}

		g.ForAllOutWithRank(u, func(v, weight, _ uint32) {
			if settled.IsSet(v) {
				return
			}
			candidate := dist + weight
			if wasPushed.IsSet(v) {
				if candidate < tentative[v] {
					heap.DecreaseKey(v, candidate)
					tentative[v] = candidate
				}
			} else {
				heap.Push(v, candidate)
				wasPushed.Set(v)
				tentative[v] = candidate
			}
		})
	}
	return ranks
}
