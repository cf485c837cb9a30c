package graph

// ComputeDFSOrder returns a permutation mapping external node ids to
// internal (cache-friendly) ids: order[external] = internal. Vertices are
// discovered by an iterative, explicit-stack DFS over out-edges so that
// adjacent vertices in the hierarchy tend to land near each other in the
// frozen CSR arrays, the same locality trick the teacher's CH overlay
// relies on implicitly by sorting edges. Recursion is avoided because
// real road networks can be DFS-deep enough to overflow a goroutine
// stack.
func ComputeDFSOrder(hg *HGraph) []uint32 {
	n := hg.NumNodes()
	order := make([]uint32, n)
	visited := make([]bool, n)
	next := uint32(0)

	type frame struct {
		node   uint32
		edgeAt int
	}
	stack := make([]frame, 0, 64)

	for root := uint32(0); root < n; root++ {
		if visited[root] {
			continue
		}
		visited[root] = true
		order[root] = next
		next++
		stack = append(stack, frame{root, 0})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			neighbors := hg.neighborsOut[top.node]
			advanced := false
			for top.edgeAt < len(neighbors) {
				v := neighbors[top.edgeAt].neighbor
				top.edgeAt++
				if !visited[v] {
					visited[v] = true
					order[v] = next
					next++
					stack = append(stack, frame{v, 0})
					advanced = true
					break
				}
			}
			if !advanced && top.edgeAt >= len(neighbors) {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return order
}

// ComputeOrderFromRanking adapts an externally supplied node priority
// (for instance a Contraction Hierarchy's elimination order) into the
// same external->internal permutation shape ComputeDFSOrder produces,
// letting callers pick --CHOrder instead of a DFS root order without the
// frozen-graph builder needing to know which strategy chose it.
func ComputeOrderFromRanking(nodeRank []uint32) []uint32 {
	n := uint32(len(nodeRank))
	type kv struct{ node, rank uint32 }
	kvs := make([]kv, n)
	for i, r := range nodeRank {
		kvs[i] = kv{uint32(i), r}
	}
	// Insertion sort is adequate here: this runs once per graph load, not
	// per query.
	for i := 1; i < len(kvs); i++ {
		j := i
		for j > 0 && kvs[j-1].rank > kvs[j].rank {
			kvs[j-1], kvs[j] = kvs[j], kvs[j-1]
			j--
		}
	}
	order := make([]uint32, n)
	for internal, k := range kvs {
		order[k.node] = uint32(internal)
	}
	return order
}
