package graph

import "testing"

func TestHGraphAddEdgeMirrorsBothDirections(t *testing.T) {
	hg := NewHGraph(3)
	hg.AddEdge(0, 1, 10)
	hg.AddEdge(1, 2, 20)

	if !hg.HasEdge(0, 1) {
		t.Fatal("expected 0->1 to exist")
	}
	if hg.GetEdgeWeight(0, 1) != 10 {
		t.Errorf("weight(0,1) = %d, want 10", hg.GetEdgeWeight(0, 1))
	}

	seen := make(map[uint32]bool)
	hg.ForAllNeighborsIn(2, func(v, weight uint32) {
		seen[v] = true
		if weight != 20 {
			t.Errorf("in-neighbor weight = %d, want 20", weight)
		}
	})
	if !seen[1] {
		t.Fatal("expected node 2's in-neighbors to contain 1")
	}
}

func TestHGraphAddEdgeDuplicatePanics(t *testing.T) {
	hg := NewHGraph(2)
	hg.AddEdge(0, 1, 5)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate AddEdge")
		}
	}()
	hg.AddEdge(0, 1, 7)
}

func TestHGraphDecreaseEdgeWeightIgnoresWorseWeight(t *testing.T) {
	hg := NewHGraph(2)
	hg.AddEdge(0, 1, 10)
	hg.DecreaseEdgeWeight(0, 1, 15)
	if hg.GetEdgeWeight(0, 1) != 10 {
		t.Errorf("weight changed on a non-improving DecreaseEdgeWeight: got %d, want 10", hg.GetEdgeWeight(0, 1))
	}
	hg.DecreaseEdgeWeight(0, 1, 3)
	if hg.GetEdgeWeight(0, 1) != 3 {
		t.Errorf("weight = %d, want 3", hg.GetEdgeWeight(0, 1))
	}
}

func TestHGraphSetEdgeRankAndHighRankScan(t *testing.T) {
	hg := NewHGraph(4)
	hg.AddEdge(0, 1, 1)
	hg.AddEdge(0, 2, 1)
	hg.AddEdge(0, 3, 1)
	hg.SetEdgeRank(0, 1, 5)
	hg.SetEdgeRank(0, 2, 10)
	hg.SetEdgeRank(0, 3, 1)
	hg.SortEdges()

	var got []uint32
	hg.ForAllNeighborsOutWithHighRank(0, 5, func(v, weight, rank uint32) {
		got = append(got, v)
	})
	if len(got) != 2 {
		t.Fatalf("got %d neighbors with rank>=5, want 2 (got %v)", len(got), got)
	}
}

func TestHGraphSortEdgesIsDescendingByRank(t *testing.T) {
	hg2 := NewHGraph(5)
	hg2.AddEdge(0, 1, 1)
	hg2.AddEdge(0, 2, 1)
	hg2.AddEdge(0, 3, 1)
	hg2.AddEdge(0, 4, 1)
	hg2.SetEdgeRank(0, 1, 2)
	hg2.SetEdgeRank(0, 2, 4)
	hg2.SetEdgeRank(0, 3, 1)
	hg2.SetEdgeRank(0, 4, 3)
	hg2.SortEdges()

	var ranks []uint32
	hg2.ForAllNeighborsOutWithHighRank(0, 0, func(v, weight, rank uint32) {
		ranks = append(ranks, rank)
	})
	for i := 1; i < len(ranks); i++ {
		if ranks[i] > ranks[i-1] {
			t.Fatalf("ranks not descending: %v", ranks)
		}
	}
}
