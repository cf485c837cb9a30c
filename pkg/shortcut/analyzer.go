package shortcut

import "edgehierarchy/pkg/graph"

// DecreaseOp records that an existing edge's weight should drop to
// NewWeight because it turned out to already be the direct 2-hop path
// through the edge just ranked.
type DecreaseOp struct {
	U, V      uint32
	NewWeight uint32
}

// GetShortestPathsLost finds every 2-hop path uPrime -> u -> v -> vPrime
// that the (u, v) edge of weight uvWeight uniquely supports: for every
// still-unranked in-neighbor uPrime of u and still-unranked out-neighbor
// vPrime of v, it asks oracle whether a witness path of length at most
// the combined weight exists that avoids (u, v). When none does, the
// path is at risk of being lost once (u, v) is ranked (and thereby
// excluded from further traversal). If uPrime -> v or u -> vPrime already
// exists, that edge absorbs it (its weight decreases); otherwise
// (uPrime, vPrime) is returned as a candidate, and the caller covers the
// candidates with shortcuts uPrime -> v or u -> vPrime.
//
// collectDecreases is the original's "returnEdgesToDecrease" template
// parameter: the edge ranker's per-round scoring pass only needs the
// count of new-shortcut candidates (to feed the vertex cover), so it
// passes false and the decrease list is left nil; the construction
// driver passes true to actually apply them.
//
// Grounded on original_source/lib/shortcutHelper.h.
func GetShortestPathsLost(g *graph.HGraph, oracle Oracle, u, v, uvWeight uint32, collectDecreases bool) (shortcutCandidates [][2]uint32, decreases []DecreaseOp) {
	g.ForAllNeighborsInWithHighRank(u, graph.RankInfinity, func(uPrime, uPrimeUWeight, _ uint32) {
		g.ForAllNeighborsOutWithHighRank(v, graph.RankInfinity, func(vPrime, vVPrimeWeight, _ uint32) {
			if uPrime == v || vPrime == u {
				return
			}
			altWeight := uPrimeUWeight + uvWeight + vVPrimeWeight

			witness := oracle.Distance(uPrime, vPrime, altWeight)
			if witness <= altWeight {
				// A witness avoiding (u, v) exists within budget: this
				// edge is not the unique shortest connection, nothing to
				// do.
				return
			}

			switch {
			case g.HasEdge(uPrime, v):
				if collectDecreases {
					decreases = append(decreases, DecreaseOp{uPrime, v, uPrimeUWeight + uvWeight})
				}
			case g.HasEdge(u, vPrime):
				if collectDecreases {
					decreases = append(decreases, DecreaseOp{u, vPrime, uvWeight + vVPrimeWeight})
				}
			default:
				shortcutCandidates = append(shortcutCandidates, [2]uint32{uPrime, vPrime})
			}
		})
	})
	return shortcutCandidates, decreases
}
