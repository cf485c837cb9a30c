// Package ranker implements interchangeable edge-ranking strategies for
// edge-hierarchy construction: each decides, round by round, which edges
// are safe to assign the next rank to. Grounded on
// original_source/lib/edgeRanking/*.h; the strategy interface itself is
// SPEC_FULL.md §9's explicit design note translating the original's
// template-parameterized EdgeHierarchyConstruction<EdgeRanker> into a
// plain Go interface.
package ranker

// Ranker decides which edge to assign the next rank to during
// construction. AddEdge is called once for every edge present when the
// ranker is constructed, again whenever the construction driver adds a
// new shortcut, and for an already-ranked edge whose weight decreased
// (it returns to rank ∞); UpdateEdge is called when a still-unranked
// edge's weight decreases.
type Ranker interface {
	AddEdge(u, v uint32)
	UpdateEdge(u, v uint32)
	GetNextEdge() (u, v uint32)
	HasNextEdge() bool
}
