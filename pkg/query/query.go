// Package query implements the bidirectional rank-constrained search
// that edge-hierarchy construction exists to make fast: a forward search
// from s and a backward search from t, each only ever relaxing an edge
// whose rank is at least as high as the rank the current node was
// reached by, alternating steps and stopping once neither frontier can
// beat the best meeting distance found so far. Grounded on
// original_source/lib/edgeHierarchyQueryOnly.h.
package query

import (
	"edgehierarchy/pkg/ds"
	"edgehierarchy/pkg/graph"
)

// defaultBackwardStallCoveragePercent scans every incident reverse edge
// before giving up on a stall witness, matching
// edgeHierarchyQueryOnly.h's unbounded forAllNeighborsInAndStop /
// forAllNeighborsOutAndStop. spec.md §4.8 allows narrowing this via a
// coverage percentage; SetBackwardStallCoverage adjusts it per Query.
const defaultBackwardStallCoveragePercent = 100

// Query holds the scratch state for repeated distance queries against a
// single frozen hierarchy, reused across calls via Reset rather than
// reallocated.
type Query struct {
	g *graph.FrozenHGraph

	pqForward  *ds.AddressableHeap
	pqBackward *ds.AddressableHeap

	wasPushedForward  *ds.TimestampFlags
	wasPushedBackward *ds.TimestampFlags

	tentativeForward  []uint32
	tentativeBackward []uint32
	rankForward       []uint32
	rankBackward      []uint32

	// useForwardStalling and useBackwardStalling are spec.md §4.8's two
	// independent pruning toggles, read once at construction and never
	// reconsidered per query (SPEC_FULL.md §9's templated-boolean
	// requirement):
	//
	//   - forward stalling pre-computes, while settling u, the best
	//     distance reachable at every lower-rank neighbor v through u
	//     (actualDistance*); v is skipped later if its tentative
	//     distance can never beat that.
	//   - backward stalling checks, at pop time of u, whether any
	//     already-pushed neighbor on the *opposite* adjacency list
	//     already reaches u more cheaply than u's own settled
	//     distance; if so u is stall-settled and never relaxed at all.
	//
	// Despite the "forward"/"backward" names, both apply to whichever
	// side (the query's own forward or backward Dijkstra) is currently
	// stepping — the names classify the stalling *mechanism*, grounded
	// on edgeHierarchyQueryOnly.h's canStallAtNode (forward) and
	// canStallAtNodeOld (backward), not the search direction.
	useForwardStalling  bool
	useBackwardStalling bool

	backwardStallCoveragePercent uint32

	actualDistanceForward     []uint32
	actualDistanceBackward    []uint32
	actualDistanceSetForward  *ds.TimestampFlags
	actualDistanceSetBackward *ds.TimestampFlags

	NumVerticesSettled int
	NumEdgesRelaxed    int
}

func New(g *graph.FrozenHGraph, useForwardStalling, useBackwardStalling bool) *Query {
	n := g.NumNodes()
	q := &Query{
		g:                            g,
		pqForward:                    ds.NewAddressableHeap(n),
		pqBackward:                   ds.NewAddressableHeap(n),
		wasPushedForward:             ds.NewTimestampFlags(n),
		wasPushedBackward:            ds.NewTimestampFlags(n),
		tentativeForward:             make([]uint32, n),
		tentativeBackward:            make([]uint32, n),
		rankForward:                  make([]uint32, n),
		rankBackward:                 make([]uint32, n),
		useForwardStalling:           useForwardStalling,
		useBackwardStalling:          useBackwardStalling,
		backwardStallCoveragePercent: defaultBackwardStallCoveragePercent,
	}
	if useForwardStalling {
		q.actualDistanceForward = make([]uint32, n)
		q.actualDistanceBackward = make([]uint32, n)
		q.actualDistanceSetForward = ds.NewTimestampFlags(n)
		q.actualDistanceSetBackward = ds.NewTimestampFlags(n)
	}
	return q
}

// SetBackwardStallCoverage narrows backward stalling's reverse-edge scan
// to the given percentage (0-100) of a node's incident reverse edges,
// per spec.md §4.8's coverage knob. Must be called before Distance; has
// no effect if backward stalling is disabled.
func (q *Query) SetBackwardStallCoverage(percent uint32) {
	if percent > 100 {
		percent = 100
	}
	q.backwardStallCoveragePercent = percent
}

func (q *Query) stallLimit(degree uint32) uint32 {
	limit := degree * q.backwardStallCoveragePercent / 100
	if limit == 0 && degree > 0 {
		limit = 1
	}
	return limit
}

// Distance returns the shortest-path distance between two external node
// ids, or graph.WeightInfinity if t is unreachable from s.
func (q *Query) Distance(externalS, externalT uint32) uint32 {
	s := q.g.InternalNode(externalS)
	t := q.g.InternalNode(externalT)

	q.pqForward.Reset()
	q.pqBackward.Reset()
	q.wasPushedForward.ResetAll()
	q.wasPushedBackward.ResetAll()
	if q.useForwardStalling {
		q.actualDistanceSetForward.ResetAll()
		q.actualDistanceSetBackward.ResetAll()
	}
	q.NumVerticesSettled = 0
	q.NumEdgesRelaxed = 0

	q.pqForward.Push(s, 0)
	q.wasPushedForward.Set(s)
	q.tentativeForward[s] = 0
	q.rankForward[s] = 0

	q.pqBackward.Push(t, 0)
	q.wasPushedBackward.Set(t)
	q.tentativeBackward[t] = 0
	q.rankBackward[t] = 0

	forward := true
	shortestPathLength := uint32(graph.WeightInfinity)

	for {
		forwardFinished := q.pqForward.Empty()
		if !forwardFinished {
			if _, key := q.pqForward.Peek(); key >= shortestPathLength {
				forwardFinished = true
			}
		}
		backwardFinished := q.pqBackward.Empty()
		if !backwardFinished {
			if _, key := q.pqBackward.Peek(); key >= shortestPathLength {
				backwardFinished = true
			}
		}
		if forwardFinished && backwardFinished {
			break
		}
		if forwardFinished {
			forward = false
		}
		if backwardFinished {
			forward = true
		}

		if forward {
			q.makeStep(true, &shortestPathLength)
		} else {
			q.makeStep(false, &shortestPathLength)
		}
		forward = !forward
	}

	return shortestPathLength
}

func (q *Query) makeStep(forward bool, shortestPathLength *uint32) {
	pqCurrent := q.pqForward
	wasPushedCurrent, wasPushedOther := q.wasPushedForward, q.wasPushedBackward
	tentativeCurrent, tentativeOther := q.tentativeForward, q.tentativeBackward
	rankCurrent := q.rankForward
	actualDistanceCurrent := q.actualDistanceForward
	actualDistanceSetCurrent := q.actualDistanceSetForward
	if !forward {
		pqCurrent = q.pqBackward
		wasPushedCurrent, wasPushedOther = q.wasPushedBackward, q.wasPushedForward
		tentativeCurrent, tentativeOther = q.tentativeBackward, q.tentativeForward
		rankCurrent = q.rankBackward
		actualDistanceCurrent = q.actualDistanceBackward
		actualDistanceSetCurrent = q.actualDistanceSetBackward
	}

	u, distanceU := pqCurrent.Pop()
	q.NumVerticesSettled++

	if q.useForwardStalling && actualDistanceSetCurrent.IsSet(u) && actualDistanceCurrent[u] < tentativeCurrent[u] {
		return
	}

	if q.useBackwardStalling && q.canStallAtPop(forward, u, distanceU, wasPushedCurrent, tentativeCurrent) {
		return
	}

	if wasPushedOther.IsSet(u) {
		if candidate := distanceU + tentativeOther[u]; *shortestPathLength > candidate {
			*shortestPathLength = candidate
		}
	}

	relax := func(v, weight, rank uint32) {
		q.NumEdgesRelaxed++
		distanceV := distanceU + weight
		if wasPushedCurrent.IsSet(v) {
			if distanceV < tentativeCurrent[v] {
				if !q.useForwardStalling || !actualDistanceSetCurrent.IsSet(v) || distanceV < actualDistanceCurrent[v] {
					if pqCurrent.Contains(v) {
						pqCurrent.DecreaseKey(v, distanceV)
					} else {
						pqCurrent.Push(v, distanceV)
					}
					tentativeCurrent[v] = distanceV
					rankCurrent[v] = rank
				}
			} else if distanceV == tentativeCurrent[v] && rankCurrent[v] < rank {
				rankCurrent[v] = rank
			}
		} else {
			pqCurrent.Push(v, distanceV)
			tentativeCurrent[v] = distanceV
			wasPushedCurrent.Set(v)
			rankCurrent[v] = rank
		}
	}

	stall := func(v, weight, _ uint32) {
		q.NumEdgesRelaxed++
		distanceV := distanceU + weight
		better := false
		if wasPushedCurrent.IsSet(v) {
			better = tentativeCurrent[v] > distanceV
		} else {
			better = true
		}
		if !better {
			return
		}
		if actualDistanceSetCurrent.IsSet(v) {
			if actualDistanceCurrent[v] > distanceV {
				actualDistanceCurrent[v] = distanceV
			}
		} else {
			actualDistanceCurrent[v] = distanceV
			actualDistanceSetCurrent.Set(v)
		}
	}

	rankU := rankCurrent[u]
	combined := func(v, weight, rank uint32) {
		if rank >= rankU {
			relax(v, weight, rank)
		} else {
			stall(v, weight, rank)
		}
	}

	if forward {
		if q.useForwardStalling {
			q.g.ForAllOutWithRank(u, combined)
		} else {
			q.g.ForAllOutWithHighRank(u, rankU, relax)
		}
	} else {
		if q.useForwardStalling {
			q.g.ForAllInWithRank(u, combined)
		} else {
			q.g.ForAllInWithHighRank(u, rankU, relax)
		}
	}
}

// canStallAtPop implements backward stalling: at pop time of u, scan a
// coverage-bounded prefix of u's *opposite*-direction neighbors (the
// ones the search does not relax through) for one already pushed on
// this side that reaches u more cheaply than u's own settled distance.
// If one exists, u is stall-settled and its relaxation is skipped
// entirely. Grounded on edgeHierarchyQueryOnly.h's canStallAtNodeOld,
// unlike forward stalling unconstrained by rank.
func (q *Query) canStallAtPop(forward bool, u, distanceU uint32, wasPushedCurrent *ds.TimestampFlags, tentativeCurrent []uint32) bool {
	stalled := false
	check := func(x, weight uint32) bool {
		if wasPushedCurrent.IsSet(x) && tentativeCurrent[x]+weight < distanceU {
			stalled = true
			return true
		}
		return false
	}
	if forward {
		limit := q.stallLimit(q.g.InDegree(u))
		q.g.ForAllInUpTo(u, limit, check)
	} else {
		limit := q.stallLimit(q.g.OutDegree(u))
		q.g.ForAllOutUpTo(u, limit, check)
	}
	return stalled
}
