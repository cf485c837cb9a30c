package graph

// FrozenHGraph is the query-only, CSR-compressed form of a fully ranked
// HGraph: both the forward (out-neighbor) and backward (in-neighbor)
// adjacency are packed into flat arrays, internal ids are relabeled by a
// DFS (or externally supplied) order for cache locality, and nodes carry
// no further mutation surface. Grounded on
// original_source/lib/edgeHierarchyGraphQueryOnly.h, generalized from a
// single "out with external translation" table to explicit forward and
// backward CSR arrays in the style of the teacher's CH overlay
// (pkg/ch/contractor.go buildOverlay).
type FrozenHGraph struct {
	numNodes uint32

	internalOf []uint32 // external -> internal
	externalOf []uint32 // internal -> external

	fwdFirstOut []uint32
	fwdHead     []uint32
	fwdWeight   []uint32
	fwdRank     []uint32

	bwdFirstOut []uint32
	bwdHead     []uint32
	bwdWeight   []uint32
	bwdRank     []uint32
}

func (f *FrozenHGraph) NumNodes() uint32 { return f.numNodes }

func (f *FrozenHGraph) InternalNode(external uint32) uint32 { return f.internalOf[external] }
func (f *FrozenHGraph) ExternalNode(internal uint32) uint32 { return f.externalOf[internal] }

// Freeze requires hg.SortEdges to have been called and packs its
// adjacency into forward/backward CSR arrays under the given
// external->internal permutation (typically graph.ComputeDFSOrder's or
// graph.ComputeOrderFromRanking's output).
func Freeze(hg *HGraph, order []uint32) *FrozenHGraph {
	n := hg.NumNodes()
	f := &FrozenHGraph{
		numNodes:    n,
		internalOf:  append([]uint32(nil), order...),
		externalOf:  make([]uint32, n),
		fwdFirstOut: make([]uint32, n+1),
		bwdFirstOut: make([]uint32, n+1),
	}
	for external, internal := range order {
		f.externalOf[internal] = uint32(external)
	}

	for external := uint32(0); external < n; external++ {
		internal := f.internalOf[external]
		f.fwdFirstOut[internal+1] = uint32(len(hg.neighborsOut[external]))
		f.bwdFirstOut[internal+1] = uint32(len(hg.neighborsIn[external]))
	}
	for i := uint32(0); i < n; i++ {
		f.fwdFirstOut[i+1] += f.fwdFirstOut[i]
		f.bwdFirstOut[i+1] += f.bwdFirstOut[i]
	}

	f.fwdHead = make([]uint32, f.fwdFirstOut[n])
	f.fwdWeight = make([]uint32, f.fwdFirstOut[n])
	f.fwdRank = make([]uint32, f.fwdFirstOut[n])
	f.bwdHead = make([]uint32, f.bwdFirstOut[n])
	f.bwdWeight = make([]uint32, f.bwdFirstOut[n])
	f.bwdRank = make([]uint32, f.bwdFirstOut[n])

	fwdCursor := append([]uint32(nil), f.fwdFirstOut[:n]...)
	bwdCursor := append([]uint32(nil), f.bwdFirstOut[:n]...)

	for external := uint32(0); external < n; external++ {
		internal := f.internalOf[external]
		for _, e := range hg.neighborsOut[external] {
			pos := fwdCursor[internal]
			f.fwdHead[pos] = f.internalOf[e.neighbor]
			f.fwdWeight[pos] = e.weight
			f.fwdRank[pos] = e.rank
			fwdCursor[internal]++
		}
		for _, e := range hg.neighborsIn[external] {
			pos := bwdCursor[internal]
			f.bwdHead[pos] = f.internalOf[e.neighbor]
			f.bwdWeight[pos] = e.weight
			f.bwdRank[pos] = e.rank
			bwdCursor[internal]++
		}
	}
	return f
}

// ForAllOutWithHighRank visits internal node u's out-neighbors (internal
// ids) with rank >= rankThreshold, short-circuiting as soon as a
// lower-rank entry is seen since the frozen arrays are always rank-sorted
// descending (inherited from the HGraph they were built from).
func (f *FrozenHGraph) ForAllOutWithHighRank(u, rankThreshold uint32, visit func(v, weight, rank uint32)) {
	start, end := f.fwdFirstOut[u], f.fwdFirstOut[u+1]
	for e := start; e < end; e++ {
		if f.fwdRank[e] < rankThreshold {
			break
		}
		visit(f.fwdHead[e], f.fwdWeight[e], f.fwdRank[e])
	}
}

func (f *FrozenHGraph) ForAllInWithHighRank(u, rankThreshold uint32, visit func(v, weight, rank uint32)) {
	start, end := f.bwdFirstOut[u], f.bwdFirstOut[u+1]
	for e := start; e < end; e++ {
		if f.bwdRank[e] < rankThreshold {
			break
		}
		visit(f.bwdHead[e], f.bwdWeight[e], f.bwdRank[e])
	}
}

// ForAllOutWithRank and ForAllInWithRank visit every neighbor regardless
// of rank, exposing each edge's rank to the caller so a stalling query
// can dispatch between relaxation and stalling per neighbor without two
// passes. Grounded on edgeHierarchyQueryOnly.h's combinedFunc dispatch.
func (f *FrozenHGraph) ForAllOutWithRank(u uint32, visit func(v, weight, rank uint32)) {
	start, end := f.fwdFirstOut[u], f.fwdFirstOut[u+1]
	for e := start; e < end; e++ {
		visit(f.fwdHead[e], f.fwdWeight[e], f.fwdRank[e])
	}
}

func (f *FrozenHGraph) ForAllInWithRank(u uint32, visit func(v, weight, rank uint32)) {
	start, end := f.bwdFirstOut[u], f.bwdFirstOut[u+1]
	for e := start; e < end; e++ {
		visit(f.bwdHead[e], f.bwdWeight[e], f.bwdRank[e])
	}
}

// InDegree and OutDegree report how many edges a backward-stall coverage
// scan has to choose a prefix of.
func (f *FrozenHGraph) InDegree(u uint32) uint32  { return f.bwdFirstOut[u+1] - f.bwdFirstOut[u] }
func (f *FrozenHGraph) OutDegree(u uint32) uint32 { return f.fwdFirstOut[u+1] - f.fwdFirstOut[u] }

// ForAllInUpTo visits at most limit of u's in-neighbors (any rank),
// stopping early if visit returns true. Grounded on
// edgeHierarchyQueryOnly.h's forAllNeighborsInAndStop, generalized with a
// limit to implement backward stalling's configurable scan coverage
// (spec.md §4.8).
func (f *FrozenHGraph) ForAllInUpTo(u, limit uint32, visit func(v, weight uint32) bool) {
	start, end := f.bwdFirstOut[u], f.bwdFirstOut[u+1]
	if end-start > limit {
		end = start + limit
	}
	for e := start; e < end; e++ {
		if visit(f.bwdHead[e], f.bwdWeight[e]) {
			return
		}
	}
}

// ForAllOutUpTo is ForAllInUpTo's out-neighbor counterpart, used by the
// backward search's stall check (which looks at out-neighbors, the
// reverse of the in-neighbors it relaxes through).
func (f *FrozenHGraph) ForAllOutUpTo(u, limit uint32, visit func(v, weight uint32) bool) {
	start, end := f.fwdFirstOut[u], f.fwdFirstOut[u+1]
	if end-start > limit {
		end = start + limit
	}
	for e := start; e < end; e++ {
		if visit(f.fwdHead[e], f.fwdWeight[e]) {
			return
		}
	}
}
