package ds

// TimestampFlags is a visited-set over a dense id range that resets in
// O(1) instead of O(n): every entry carries the generation it was last
// set in, and IsSet compares against the current generation counter.
// ResetAll just bumps the counter, except on the (extremely rare) wraparound
// of the counter itself, when the backing slice is actually cleared.
type TimestampFlags struct {
	gen       []uint32
	current   uint32
}

func NewTimestampFlags(capacity uint32) *TimestampFlags {
	return &TimestampFlags{gen: make([]uint32, capacity), current: 1}
}

func (f *TimestampFlags) Set(id uint32) {
	f.gen[id] = f.current
}

func (f *TimestampFlags) IsSet(id uint32) bool {
	return f.gen[id] == f.current
}

func (f *TimestampFlags) ResetAll() {
	f.current++
	if f.current == 0 {
		for i := range f.gen {
			f.gen[i] = 0
		}
		f.current = 1
	}
}
