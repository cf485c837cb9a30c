package graph

// TurnCostGraph expands hg into an "edge graph": one vertex per original
// directed edge, with an arc between edge (u,v)'s vertex and edge (v,w)'s
// vertex whenever v->w continues a path through v, weighted by (v,w)'s
// weight plus uTurnPenalty when w == u (an immediate U-turn back the way
// it came). Grounded on
// original_source/lib/edgeHierarchyGraph.h's getTurnCostGraph, with the
// original's hardcoded +100 penalty generalized to a parameter per
// SPEC_FULL.md §12.
func TurnCostGraph(hg *HGraph, uTurnPenalty uint32) *HGraph {
	n := hg.NumNodes()

	// nodeBegin[u] is the id of the first edge-vertex for u's outgoing
	// edges; out-degree prefix sum over the original graph.
	nodeBegin := make([]uint32, n+1)
	for u := uint32(0); u < n; u++ {
		nodeBegin[u+1] = nodeBegin[u] + uint32(len(hg.neighborsOut[u]))
	}
	totalEdgeVertices := nodeBegin[n]

	edgeVertexOf := func(u, v uint32) uint32 {
		for i, e := range hg.neighborsOut[u] {
			if e.neighbor == v {
				return nodeBegin[u] + uint32(i)
			}
		}
		panic("graph: TurnCostGraph: edge vertex lookup missed an edge")
	}

	tc := NewHGraph(totalEdgeVertices)
	for v := uint32(0); v < n; v++ {
		for _, in := range hg.neighborsIn[v] {
			u := in.neighbor
			fromVertex := edgeVertexOf(u, v)
			for _, out := range hg.neighborsOut[v] {
				w := out.neighbor
				weight := out.weight
				if w == u {
					weight += uTurnPenalty
				}
				toVertex := edgeVertexOf(v, w)
				tc.AddEdge(fromVertex, toVertex, weight)
			}
		}
	}
	return tc
}
