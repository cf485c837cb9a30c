// Package mvc computes a minimum vertex cover of a small bipartite graph
// via König's theorem: find a maximum matching (Kuhn's algorithm), then
// alternate-path mark from unmatched left vertices. The cover is
// (unmarked left vertices) union (marked right vertices).
//
// Grounded on
// original_source/lib/bipartiteMinimumVertexCover.h. The original's
// augmentingPathStep and markVerticesStep are both recursive; both are
// reimplemented here on an explicit stack, since the shortcut-loss
// analyzer that calls this runs once per ranked edge across graphs with
// tens of millions of vertices and a recursive call per traversal step
// risks overflowing the goroutine stack on pathological inputs.
package mvc

// Cover is the output of Compute: which LHS and RHS global node ids
// belong to the minimum vertex cover.
type Cover struct {
	Left  []uint32
	Right []uint32
}

// Compute finds the minimum vertex cover of the bipartite graph described
// by edges, each a (lhsNode, rhsNode) global-id pair. LHS and RHS are
// distinct universes even if their numeric ids collide — the caller
// (construction.Driver, with shortcut.GetShortestPathsLost's candidates)
// passes in-neighbors of u as LHS and out-neighbors of v as RHS.
func Compute(edges [][2]uint32) Cover {
	if len(edges) == 0 {
		return Cover{}
	}

	lhsLocal := make(map[uint32]int, len(edges))
	rhsLocal := make(map[uint32]int, len(edges))
	var lhsGlobal, rhsGlobal []uint32
	var adjacency [][]int

	for _, e := range edges {
		u, v := e[0], e[1]
		li, ok := lhsLocal[u]
		if !ok {
			li = len(lhsGlobal)
			lhsLocal[u] = li
			lhsGlobal = append(lhsGlobal, u)
			adjacency = append(adjacency, nil)
		}
		ri, ok := rhsLocal[v]
		if !ok {
			ri = len(rhsGlobal)
			rhsLocal[v] = ri
			rhsGlobal = append(rhsGlobal, v)
		}
		adjacency[li] = append(adjacency[li], ri)
	}

	matchL, matchR := maximumMatching(adjacency, len(rhsGlobal))

	markedLeft, markedRight := markReachable(adjacency, matchL, matchR)

	var cover Cover
	for u, marked := range markedLeft {
		if !marked {
			cover.Left = append(cover.Left, lhsGlobal[u])
		}
	}
	for v, marked := range markedRight {
		if marked {
			cover.Right = append(cover.Right, rhsGlobal[v])
		}
	}
	return cover
}

// Size returns only the minimum vertex cover's cardinality, skipping the
// marking pass — used when a ranker only needs a shortcut count estimate,
// not the actual cover members.
func Size(edges [][2]uint32) int {
	if len(edges) == 0 {
		return 0
	}
	lhsLocal := make(map[uint32]int, len(edges))
	rhsLocal := make(map[uint32]int, len(edges))
	var adjacency [][]int
	numRhs := 0

	for _, e := range edges {
		u, v := e[0], e[1]
		li, ok := lhsLocal[u]
		if !ok {
			li = len(adjacency)
			lhsLocal[u] = li
			adjacency = append(adjacency, nil)
		}
		ri, ok := rhsLocal[v]
		if !ok {
			ri = numRhs
			rhsLocal[v] = ri
			numRhs++
		}
		adjacency[li] = append(adjacency[li], ri)
	}

	matchL, _ := maximumMatching(adjacency, numRhs)
	count := 0
	for _, m := range matchL {
		if m != -1 {
			count++
		}
	}
	return count
}

const unmatched = int32(-1)

func maximumMatching(adjacency [][]int, numRhs int) (matchL, matchR []int32) {
	matchL = make([]int32, len(adjacency))
	matchR = make([]int32, numRhs)
	for i := range matchL {
		matchL[i] = unmatched
	}
	for i := range matchR {
		matchR[i] = unmatched
	}

	used := make([]bool, numRhs)
	for u := range adjacency {
		for i := range used {
			used[i] = false
		}
		augment(u, adjacency, used, matchL, matchR)
	}
	return matchL, matchR
}

type kuhnFrame struct {
	left     int
	idx      int
	viaRight int // the right vertex whose match pointed here; unused for the root frame
}

// augment tries to find an augmenting path starting at left vertex root,
// iteratively rather than via recursive DFS: the explicit stack tracks
// which right vertex each descent came through (viaRight), so that on
// success the whole alternating path can be flipped in one pass without
// unwinding a call stack.
func augment(root int, adjacency [][]int, used []bool, matchL, matchR []int32) bool {
	stack := []kuhnFrame{{left: root}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		adj := adjacency[top.left]
		descended := false

		for top.idx < len(adj) {
			v := adj[top.idx]
			top.idx++
			if used[v] {
				continue
			}
			used[v] = true

			if matchR[v] == unmatched {
				curRight := int32(v)
				for i := len(stack) - 1; i >= 0; i-- {
					matchL[stack[i].left] = curRight
					matchR[curRight] = int32(stack[i].left)
					curRight = int32(stack[i].viaRight)
				}
				return true
			}

			stack = append(stack, kuhnFrame{left: int(matchR[v]), viaRight: v})
			descended = true
			break
		}

		if !descended {
			stack = stack[:len(stack)-1]
		}
	}
	return false
}

// markReachable performs the König-theorem alternating-path marking from
// every unmatched left vertex, iteratively via an explicit stack.
func markReachable(adjacency [][]int, matchL, matchR []int32) (markedLeft, markedRight []bool) {
	markedLeft = make([]bool, len(adjacency))
	markedRight = make([]bool, len(matchR))

	stack := make([]int, 0, len(adjacency))
	for u, m := range matchL {
		if m == unmatched {
			markedLeft[u] = true
			stack = append(stack, u)
		}
	}

	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, v := range adjacency[u] {
			if markedRight[v] {
				continue
			}
			markedRight[v] = true
			mu := matchR[v]
			if mu != unmatched && !markedLeft[mu] {
				markedLeft[mu] = true
				stack = append(stack, int(mu))
			}
		}
	}
	return markedLeft, markedRight
}
