package ranker

import (
	"sort"

	"edgehierarchy/pkg/ds"
	"edgehierarchy/pkg/edgeid"
	"edgehierarchy/pkg/graph"
	"edgehierarchy/pkg/mvc"
	"edgehierarchy/pkg/shortcut"
)

// ShortcutCountingSortedRounds is an alternate strategy: instead of
// filtering each round down to local-minimum edges, it scores every
// remaining edge and ranks them in ascending score order a whole round
// at a time. Grounded on
// original_source/lib/edgeRanking/shortcutCountingSortingRoundsEdgeRanker.h.
type ShortcutCountingSortedRounds struct {
	g      *graph.HGraph
	oracle shortcut.Oracle
	dict   *edgeid.Dictionary

	edgesInGraph *ds.ArraySet[uint32]
	currentRound []uint32
}

func NewShortcutCountingSortedRounds(g *graph.HGraph, oracle shortcut.Oracle) *ShortcutCountingSortedRounds {
	r := &ShortcutCountingSortedRounds{
		g:            g,
		oracle:       oracle,
		dict:         edgeid.NewDictionary(int(g.NumEdges())),
		edgesInGraph: ds.NewArraySet[uint32](int(g.NumEdges())),
	}
	for u := uint32(0); u < g.NumNodes(); u++ {
		g.ForAllNeighborsOut(u, func(v, weight uint32) {
			r.AddEdge(u, v)
		})
	}
	return r
}

func (r *ShortcutCountingSortedRounds) AddEdge(u, v uint32) {
	id := r.dict.GetEdgeID(u, v)
	r.edgesInGraph.Insert(id)
}

func (r *ShortcutCountingSortedRounds) UpdateEdge(u, v uint32) {}

func (r *ShortcutCountingSortedRounds) HasNextEdge() bool {
	return r.edgesInGraph.Size() > 0
}

func (r *ShortcutCountingSortedRounds) GetNextEdge() (u, v uint32) {
	if len(r.currentRound) == 0 {
		r.fillNextRound()
	}
	id := r.currentRound[len(r.currentRound)-1]
	r.currentRound = r.currentRound[:len(r.currentRound)-1]
	r.edgesInGraph.Remove(id)
	u, v = r.dict.GetEdgeFromID(id)
	return u, v
}

func (r *ShortcutCountingSortedRounds) fillNextRound() {
	ids := append([]uint32(nil), r.edgesInGraph.Elements()...)
	scores := make(map[uint32]uint32, len(ids))

	for _, id := range ids {
		u, v := r.dict.GetEdgeFromID(id)
		weight := r.g.GetEdgeWeight(u, v)
		r.g.SetEdgeRank(u, v, graph.RankInfinity-1)
		lost, _ := shortcut.GetShortestPathsLost(r.g, r.oracle, u, v, weight, false)
		r.g.SetEdgeRank(u, v, graph.RankInfinity)
		scores[id] = uint32(mvc.Size(lost))
	}

	sort.Slice(ids, func(i, j int) bool { return scores[ids[i]] > scores[ids[j]] })
	r.currentRound = ids
}
