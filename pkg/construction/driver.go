// Package construction drives edge-hierarchy construction: repeatedly
// asking a ranker for the next edge to promote, running shortcut-loss
// analysis on it, applying whatever weight decreases fall out, and
// inserting a minimum-cardinality set of new shortcuts for whatever
// two-hop paths nothing else can absorb. Grounded on
// original_source/lib/edgeHierarchyConstruction.h.
package construction

import (
	"edgehierarchy/pkg/graph"
	"edgehierarchy/pkg/mvc"
	"edgehierarchy/pkg/ranker"
	"edgehierarchy/pkg/shortcut"
)

// Driver runs one edge-hierarchy construction to completion.
type Driver struct {
	g      *graph.HGraph
	oracle shortcut.Oracle
	ranker ranker.Ranker
}

func NewDriver(g *graph.HGraph, oracle shortcut.Oracle, r ranker.Ranker) *Driver {
	return &Driver{g: g, oracle: oracle, ranker: r}
}

// Run assigns every edge a rank, starting at 1 and incrementing for each
// edge the ranker hands back, until the ranker is exhausted.
func (d *Driver) Run() {
	currentRank := uint32(1)
	for d.ranker.HasNextEdge() {
		u, v := d.ranker.GetNextEdge()
		d.setEdgeRank(u, v, currentRank)
		currentRank++
	}
}

// setEdgeRank ranks a single (u, v) edge, then reconciles every 2-hop
// path that edge uniquely supported: existing edges absorb a weight
// decrease where possible, and a minimum vertex cover of the rest
// becomes new shortcut edges anchored at either u or v.
func (d *Driver) setEdgeRank(u, v, rank uint32) {
	if d.g.GetEdgeRank(u, v) != graph.RankInfinity {
		panic("construction: edge already ranked")
	}
	d.g.SetEdgeRank(u, v, rank)

	uvWeight := d.g.GetEdgeWeight(u, v)
	shortcutCandidates, decreases := shortcut.GetShortestPathsLost(d.g, d.oracle, u, v, uvWeight, true)

	for _, dec := range decreases {
		d.g.DecreaseEdgeWeight(dec.U, dec.V, dec.NewWeight)
		if d.g.GetEdgeRank(dec.U, dec.V) < graph.RankInfinity {
			d.g.SetEdgeRank(dec.U, dec.V, graph.RankInfinity)
			d.ranker.AddEdge(dec.U, dec.V)
		} else {
			d.ranker.UpdateEdge(dec.U, dec.V)
		}
	}

	cover := mvc.Compute(shortcutCandidates)

	for _, uPrime := range cover.Left {
		weight := d.g.GetEdgeWeight(uPrime, u) + uvWeight
		d.g.AddEdge(uPrime, v, weight)
		d.ranker.AddEdge(uPrime, v)
	}
	for _, vPrime := range cover.Right {
		weight := uvWeight + d.g.GetEdgeWeight(v, vPrime)
		d.g.AddEdge(u, vPrime, weight)
		d.ranker.AddEdge(u, vPrime)
	}
}
