package ranker

import (
	"testing"

	"edgehierarchy/pkg/graph"
	"edgehierarchy/pkg/shortcut"
)

// butterfly: two two-hop paths 0->1->3 and 0->2->3. Node 0 has no
// in-edges and node 3 no out-edges, so no ranking here ever needs a
// shortcut. Used as a literal seed scenario across all four ranker
// strategies.
func buildButterfly() *graph.HGraph {
	hg := graph.NewHGraph(4)
	hg.AddEdge(0, 1, 1)
	hg.AddEdge(1, 3, 1)
	hg.AddEdge(0, 2, 1)
	hg.AddEdge(2, 3, 1)
	return hg
}

// drainAll pulls every edge out of a ranker in turn, assigning ranks
// exactly as pkg/construction's driver would but without running any
// shortcut insertion, to check the ranker terminates and ranks every
// edge present at construction time exactly once.
func drainAll(t *testing.T, hg *graph.HGraph, r Ranker) []([2]uint32) {
	t.Helper()
	var order []([2]uint32)
	rank := uint32(1)
	for r.HasNextEdge() {
		u, v := r.GetNextEdge()
		if hg.GetEdgeRank(u, v) != graph.RankInfinity {
			t.Fatalf("edge (%d,%d) returned twice by ranker", u, v)
		}
		hg.SetEdgeRank(u, v, rank)
		rank++
		order = append(order, [2]uint32{u, v})
	}
	return order
}

func TestShortcutCountingRoundsRanksEveryEdgeOnce(t *testing.T) {
	hg := buildButterfly()
	oracle := shortcut.NewBoundedWitness(hg)
	r := NewShortcutCountingRounds(hg, oracle)
	order := drainAll(t, hg, r)
	if len(order) != 4 {
		t.Fatalf("expected 4 edges ranked, got %d: %v", len(order), order)
	}
}

func TestShortcutCountingSortedRoundsRanksEveryEdgeOnce(t *testing.T) {
	hg := buildButterfly()
	oracle := shortcut.NewBoundedWitness(hg)
	r := NewShortcutCountingSortedRounds(hg, oracle)
	order := drainAll(t, hg, r)
	if len(order) != 4 {
		t.Fatalf("expected 4 edges ranked, got %d: %v", len(order), order)
	}
}

func TestShortcutsHopsRoundsRanksEveryEdgeOnce(t *testing.T) {
	hg := buildButterfly()
	oracle := shortcut.NewBoundedWitness(hg)
	r := NewShortcutsHopsRounds(hg, oracle)
	order := drainAll(t, hg, r)
	if len(order) != 4 {
		t.Fatalf("expected 4 edges ranked, got %d: %v", len(order), order)
	}
}

func TestLazyLevelShortcutsHopsRanksEveryEdgeOnce(t *testing.T) {
	hg := buildButterfly()
	oracle := shortcut.NewBoundedWitness(hg)
	r := NewLazyLevelShortcutsHops(hg, oracle)
	order := drainAll(t, hg, r)
	if len(order) != 4 {
		t.Fatalf("expected 4 edges ranked, got %d: %v", len(order), order)
	}
}

func TestShortcutsHopsRoundsApproximatesHopsMonotonically(t *testing.T) {
	hg := graph.NewHGraph(3)
	hg.AddEdge(0, 1, 1)
	hg.AddEdge(1, 2, 1)
	oracle := shortcut.NewBoundedWitness(hg)
	r := NewShortcutsHopsRounds(hg, oracle)

	id01 := r.dict.GetEdgeID(0, 1)
	id12 := r.dict.GetEdgeID(1, 2)
	if r.numHops[id01] != 1 || r.numHops[id12] != 1 {
		t.Fatalf("expected original edges to start at hop count 1, got %d and %d", r.numHops[id01], r.numHops[id12])
	}

	// A shortcut is only ever inserted after some edge has been ranked; its
	// hop count is derived from that most recently ranked edge.
	u, v := r.GetNextEdge()
	hg.SetEdgeRank(u, v, 1)
	r.AddEdge(0, 2) // simulate a freshly inserted shortcut over both hops
	id02 := r.dict.GetEdgeID(0, 2)
	if r.numHops[id02] <= r.numHops[id01] {
		t.Fatalf("expected new shortcut's hop count to exceed its predecessor's, got %d vs %d", r.numHops[id02], r.numHops[id01])
	}
}

func TestLazyLevelShortcutsHopsPanicsOnDoublePop(t *testing.T) {
	hg := graph.NewHGraph(2)
	hg.AddEdge(0, 1, 1)
	oracle := shortcut.NewBoundedWitness(hg)
	r := NewLazyLevelShortcutsHops(hg, oracle)

	u, v := r.GetNextEdge()
	hg.SetEdgeRank(u, v, 1)

	r.heap.Push(r.dict.GetEdgeID(u, v), 0) // force a stale re-pop of an already-ranked edge
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when popping an already-ranked edge")
		}
	}()
	r.GetNextEdge()
}
