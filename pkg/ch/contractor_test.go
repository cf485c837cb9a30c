package ch

import (
	"math"
	"testing"

	"edgehierarchy/pkg/graph"
)

// buildTestGraph creates a small graph for testing:
//
//	0 ---100--- 1 ---200--- 2
//	|                       |
//	300                    400
//	|                       |
//	3 ---500--- 4 ---600--- 5
//
// All edges are bidirectional.
func buildTestGraph() *graph.CSRGraph {
	edges := []graph.Edge{
		{From: 0, To: 1, Weight: 100}, {From: 1, To: 0, Weight: 100},
		{From: 1, To: 2, Weight: 200}, {From: 2, To: 1, Weight: 200},
		{From: 0, To: 3, Weight: 300}, {From: 3, To: 0, Weight: 300},
		{From: 2, To: 5, Weight: 400}, {From: 5, To: 2, Weight: 400},
		{From: 3, To: 4, Weight: 500}, {From: 4, To: 3, Weight: 500},
		{From: 4, To: 5, Weight: 600}, {From: 5, To: 4, Weight: 600},
	}
	return graph.NewCSRFromEdges(6, edges)
}

// plainDijkstra runs standard Dijkstra on the original CSR graph.
func plainDijkstra(g *graph.CSRGraph, source, target uint32) uint32 {
	dist := make([]uint32, g.NumNodes)
	for i := range dist {
		dist[i] = math.MaxUint32
	}
	dist[source] = 0

	type item struct {
		node uint32
		dist uint32
	}
	var pq []item
	pq = append(pq, item{source, 0})

	for len(pq) > 0 {
		minIdx := 0
		for i := 1; i < len(pq); i++ {
			if pq[i].dist < pq[minIdx].dist {
				minIdx = i
			}
		}
		cur := pq[minIdx]
		pq[minIdx] = pq[len(pq)-1]
		pq = pq[:len(pq)-1]

		if cur.dist > dist[cur.node] {
			continue
		}
		if cur.node == target {
			return cur.dist
		}

		start, end := g.EdgesFrom(cur.node)
		for e := start; e < end; e++ {
			v := g.Head[e]
			newDist := cur.dist + g.Weight[e]
			if newDist < dist[v] {
				dist[v] = newDist
				pq = append(pq, item{v, newDist})
			}
		}
	}

	return dist[target]
}

// chDijkstra runs bidirectional CH Dijkstra on the overlay.
func chDijkstra(ch *Overlay, source, target uint32) uint32 {
	distFwd := make([]uint32, ch.NumNodes)
	distBwd := make([]uint32, ch.NumNodes)
	for i := range distFwd {
		distFwd[i] = math.MaxUint32
		distBwd[i] = math.MaxUint32
	}
	distFwd[source] = 0
	distBwd[target] = 0

	type item struct {
		node uint32
		dist uint32
	}

	var fwdPQ, bwdPQ []item
	fwdPQ = append(fwdPQ, item{source, 0})
	bwdPQ = append(bwdPQ, item{target, 0})

	mu := uint32(math.MaxUint32)

	popMin := func(pq *[]item) item {
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

	peekMin := func(pq []item) uint32 {
		if len(pq) == 0 {
			return math.MaxUint32
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
			if cur.dist <= distFwd[cur.node] {
				if distBwd[cur.node] < math.MaxUint32 {
					if cand := cur.dist + distBwd[cur.node]; cand < mu {
						mu = cand
					}
				}
				fStart := ch.FwdFirstOut[cur.node]
				fEnd := ch.FwdFirstOut[cur.node+1]
				for e := fStart; e < fEnd; e++ {
					v := ch.FwdHead[e]
					newDist := cur.dist + ch.FwdWeight[e]
					if newDist < distFwd[v] {
						distFwd[v] = newDist
						fwdPQ = append(fwdPQ, item{v, newDist})
					}
				}
			}
		}

		if len(bwdPQ) > 0 && peekMin(bwdPQ) < mu {
			cur := popMin(&bwdPQ)
			if cur.dist <= distBwd[cur.node] {
				if distFwd[cur.node] < math.MaxUint32 {
					if cand := distFwd[cur.node] + cur.dist; cand < mu {
						mu = cand
					}
				}
				bStart := ch.BwdFirstOut[cur.node]
				bEnd := ch.BwdFirstOut[cur.node+1]
				for e := bStart; e < bEnd; e++ {
					v := ch.BwdHead[e]
					newDist := cur.dist + ch.BwdWeight[e]
					if newDist < distBwd[v] {
						distBwd[v] = newDist
						bwdPQ = append(bwdPQ, item{v, newDist})
					}
				}
			}
		}

		fwdMin := peekMin(fwdPQ)
		bwdMin := peekMin(bwdPQ)
		if fwdMin >= mu && bwdMin >= mu {
			break
		}
	}

	return mu
}

func TestContractSmallGraph(t *testing.T) {
	g := buildTestGraph()

	if g.NumNodes != 6 {
		t.Fatalf("test graph has %d nodes, want 6", g.NumNodes)
	}

	ch := Contract(g)

	if ch.NumNodes != 6 {
		t.Fatalf("CH has %d nodes, want 6", ch.NumNodes)
	}

	rankSeen := make(map[uint32]bool)
	for _, r := range ch.Rank {
		if r >= ch.NumNodes {
			t.Errorf("rank %d >= NumNodes %d", r, ch.NumNodes)
		}
		rankSeen[r] = true
	}
	if len(rankSeen) != int(ch.NumNodes) {
		t.Errorf("ranks are not a permutation: saw %d unique values, want %d", len(rankSeen), ch.NumNodes)
	}
}

func TestCHCorrectnessAllPairs(t *testing.T) {
	g := buildTestGraph()
	ch := Contract(g)

	for s := uint32(0); s < g.NumNodes; s++ {
		for d := uint32(0); d < g.NumNodes; d++ {
			if s == d {
				continue
			}
			plainDist := plainDijkstra(g, s, d)
			chDist := chDijkstra(ch, s, d)
			if chDist != plainDist {
				t.Errorf("s=%d d=%d: CH=%d, Dijkstra=%d", s, d, chDist, plainDist)
			}
		}
	}
}

func TestContractEmptyGraph(t *testing.T) {
	g := graph.NewCSRFromEdges(0, nil)
	ch := Contract(g)
	if ch.NumNodes != 0 {
		t.Errorf("expected empty overlay, got NumNodes=%d", ch.NumNodes)
	}
}

func TestContractLinearGraph(t *testing.T) {
	edges := []graph.Edge{
		{From: 0, To: 1, Weight: 100},
		{From: 1, To: 2, Weight: 200},
		{From: 2, To: 3, Weight: 300},
		{From: 3, To: 4, Weight: 400},
	}
	g := graph.NewCSRFromEdges(5, edges)
	ch := Contract(g)

	dist := chDijkstra(ch, 0, 4)
	expected := plainDijkstra(g, 0, 4)
	if dist != expected {
		t.Errorf("linear chain: CH=%d, Dijkstra=%d", dist, expected)
	}
}
