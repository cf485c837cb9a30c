// Package ds holds the small scratch data structures shared by the
// edge-hierarchy construction and query code: an addressable min-heap, a
// generation-counter visited set, and a dense-index removable set.
package ds

// AddressableHeap is a binary min-heap over (id, key) pairs keyed by a
// uint32 priority, supporting O(log n) DecreaseKey via an explicit
// id->slot index. It replaces the lazy re-push-and-skip-stale pattern
// used for plain Dijkstra elsewhere in this module: the rank-constrained
// query needs a real decrease_key so that a settled vertex is popped at
// most once.
type AddressableHeap struct {
	items []heapItem
	pos   []int32 // pos[id] = index into items, or -1 if not present
}

type heapItem struct {
	id  uint32
	key uint32
}

const notPresent = int32(-1)

// NewAddressableHeap preallocates the id->slot index for up to capacity
// distinct ids.
func NewAddressableHeap(capacity uint32) *AddressableHeap {
	pos := make([]int32, capacity)
	for i := range pos {
		pos[i] = notPresent
	}
	return &AddressableHeap{pos: pos}
}

// Reset clears the heap for reuse without reallocating, only touching the
// ids that were actually inserted since the last reset.
func (h *AddressableHeap) Reset() {
	for _, it := range h.items {
		h.pos[it.id] = notPresent
	}
	h.items = h.items[:0]
}

func (h *AddressableHeap) Empty() bool { return len(h.items) == 0 }
func (h *AddressableHeap) Len() int    { return len(h.items) }

// Peek returns the minimum key currently in the heap without removing it.
// Only valid when Empty() is false.
func (h *AddressableHeap) Peek() (id uint32, key uint32) {
	top := h.items[0]
	return top.id, top.key
}

// Push inserts a new id with the given key. The caller must ensure id is
// not already present.
func (h *AddressableHeap) Push(id, key uint32) {
	h.items = append(h.items, heapItem{id, key})
	idx := len(h.items) - 1
	h.pos[id] = int32(idx)
	h.siftUp(idx)
}

// Contains reports whether id currently has an entry in the heap.
func (h *AddressableHeap) Contains(id uint32) bool {
	return h.pos[id] != notPresent
}

// DecreaseKey lowers id's key. newKey must be <= the current key.
func (h *AddressableHeap) DecreaseKey(id, newKey uint32) {
	idx := h.pos[id]
	if idx == notPresent {
		panic("ds: DecreaseKey on id not present in heap")
	}
	h.items[idx].key = newKey
	h.siftUp(int(idx))
}

// Pop removes and returns the minimum entry.
func (h *AddressableHeap) Pop() (id uint32, key uint32) {
	top := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.pos[h.items[0].id] = 0
	h.items = h.items[:last]
	h.pos[top.id] = notPresent
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return top.id, top.key
}

func (h *AddressableHeap) siftUp(idx int) {
	for idx > 0 {
		parent := (idx - 1) / 2
		if h.items[parent].key <= h.items[idx].key {
			break
		}
		h.swap(parent, idx)
		idx = parent
	}
}

func (h *AddressableHeap) siftDown(idx int) {
	n := len(h.items)
	for {
		left := 2*idx + 1
		right := 2*idx + 2
		smallest := idx
		if left < n && h.items[left].key < h.items[smallest].key {
			smallest = left
		}
		if right < n && h.items[right].key < h.items[smallest].key {
			smallest = right
		}
		if smallest == idx {
			break
		}
		h.swap(idx, smallest)
		idx = smallest
	}
}

func (h *AddressableHeap) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.pos[h.items[i].id] = int32(i)
	h.pos[h.items[j].id] = int32(j)
}
