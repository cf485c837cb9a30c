package graph

import "testing"

func TestFreezePreservesEdgesAndRankOrder(t *testing.T) {
	hg := NewHGraph(4)
	hg.AddEdge(0, 1, 10)
	hg.AddEdge(1, 2, 20)
	hg.AddEdge(0, 2, 5)
	hg.SetEdgeRank(0, 1, 1)
	hg.SetEdgeRank(1, 2, 2)
	hg.SetEdgeRank(0, 2, 2)
	hg.SortEdges()

	order := ComputeDFSOrder(hg)
	f := Freeze(hg, order)

	if f.NumNodes() != 4 {
		t.Fatalf("NumNodes = %d, want 4", f.NumNodes())
	}

	internal0 := f.InternalNode(0)
	var seenTargets []uint32
	var seenRanks []uint32
	f.ForAllOutWithHighRank(internal0, 0, func(v, weight, rank uint32) {
		seenTargets = append(seenTargets, f.ExternalNode(v))
		seenRanks = append(seenRanks, rank)
	})
	if len(seenTargets) != 2 {
		t.Fatalf("node 0 has %d frozen out-edges, want 2", len(seenTargets))
	}
	// SortEdges put node 0's edges in descending rank order: 2 then 1.
	if seenRanks[0] != 2 || seenRanks[1] != 1 {
		t.Fatalf("node 0's frozen out-edge ranks = %v, want [2 1]", seenRanks)
	}

	// ExternalNode(InternalNode(x)) round-trips.
	for external := uint32(0); external < f.NumNodes(); external++ {
		if f.ExternalNode(f.InternalNode(external)) != external {
			t.Errorf("round-trip broken for external node %d", external)
		}
	}
}

func TestFreezeHighRankScanStopsAtThreshold(t *testing.T) {
	hg := NewHGraph(3)
	hg.AddEdge(0, 1, 1)
	hg.AddEdge(0, 2, 1)
	hg.SetEdgeRank(0, 1, 5)
	hg.SetEdgeRank(0, 2, 1)
	hg.SortEdges()

	order := ComputeDFSOrder(hg)
	f := Freeze(hg, order)
	internal0 := f.InternalNode(0)

	var count int
	f.ForAllOutWithHighRank(internal0, 3, func(v, weight, rank uint32) {
		count++
	})
	if count != 1 {
		t.Fatalf("got %d edges with rank>=3, want 1", count)
	}
}
