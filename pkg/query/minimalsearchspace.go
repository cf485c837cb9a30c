package query

import (
	"edgehierarchy/pkg/ds"
	"edgehierarchy/pkg/graph"
)

// MinimalSearchSpace runs an unconstrained bidirectional Dijkstra between
// two external node ids, relaxing every edge regardless of rank, and
// reports the number of vertices it settles. Grounded on
// original_source/calculateMinimalSearchSpace.cpp: disabling all up-down
// pruning gives a baseline search-space size that a rank-constrained
// Query's NumVerticesSettled can be measured against to judge how much a
// stalling configuration actually prunes.
func MinimalSearchSpace(g *graph.FrozenHGraph, externalS, externalT uint32) (distance uint32, verticesSettled int) {
	n := g.NumNodes()
	s := g.InternalNode(externalS)
	t := g.InternalNode(externalT)

	pqForward := ds.NewAddressableHeap(n)
	pqBackward := ds.NewAddressableHeap(n)
	wasPushedForward := ds.NewTimestampFlags(n)
	wasPushedBackward := ds.NewTimestampFlags(n)
	tentativeForward := make([]uint32, n)
	tentativeBackward := make([]uint32, n)

	pqForward.Push(s, 0)
	wasPushedForward.Set(s)
	tentativeForward[s] = 0

	pqBackward.Push(t, 0)
	wasPushedBackward.Set(t)
	tentativeBackward[t] = 0

	best := uint32(graph.WeightInfinity)
	settled := 0

	step := func(forward bool) {
		pqCurrent := pqForward
		wasPushedCurrent, wasPushedOther := wasPushedForward, wasPushedBackward
		tentativeCurrent, tentativeOther := tentativeForward, tentativeBackward
		if !forward {
			pqCurrent = pqBackward
			wasPushedCurrent, wasPushedOther = wasPushedBackward, wasPushedForward
			tentativeCurrent, tentativeOther = tentativeBackward, tentativeForward
		}

		u, distU := pqCurrent.Pop()
		settled++

		if wasPushedOther.IsSet(u) {
			if candidate := distU + tentativeOther[u]; candidate < best {
				best = candidate
			}
		}

		relax := func(v, weight, _ uint32) {
			distV := distU + weight
			if wasPushedCurrent.IsSet(v) {
				if distV < tentativeCurrent[v] {
					if pqCurrent.Contains(v) {
						pqCurrent.DecreaseKey(v, distV)
					}
					tentativeCurrent[v] = distV
				}
			} else {
				pqCurrent.Push(v, distV)
				wasPushedCurrent.Set(v)
				tentativeCurrent[v] = distV
			}
		}

		if forward {
			g.ForAllOutWithRank(u, relax)
		} else {
			g.ForAllInWithRank(u, relax)
		}
	}

	forward := true
	for {
		forwardFinished := pqForward.Empty()
		if !forwardFinished {
			if _, key := pqForward.Peek(); key >= best {
				forwardFinished = true
			}
		}
		backwardFinished := pqBackward.Empty()
		if !backwardFinished {
			if _, key := pqBackward.Peek(); key >= best {
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
		step(forward)
		forward = !forward
	}

	return best, settled
}
