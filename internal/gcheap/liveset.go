package gcheap

// LiveSet is the heap index: the set of every currently live payload
// address. Insert/Erase/Contains are the only operations the mark engine
// and sweep need, all expected O(1) via the underlying Go map.
type LiveSet struct {
	addrs map[uintptr]struct{}
}

// NewLiveSet returns an empty heap index.
func NewLiveSet() *LiveSet {
	return &LiveSet{addrs: make(map[uintptr]struct{})}
}

// Insert records addr as live.
func (s *LiveSet) Insert(addr uintptr) {
	s.addrs[addr] = struct{}{}
}

// Erase removes addr. Erasing an address that isn't present is a no-op,
// which is what makes Collector.Free idempotent.
func (s *LiveSet) Erase(addr uintptr) {
	delete(s.addrs, addr)
}

// Contains reports whether addr is a known live payload address.
func (s *LiveSet) Contains(addr uintptr) bool {
	_, ok := s.addrs[addr]
	return ok
}

// Len returns the exact number of live blocks.
func (s *LiveSet) Len() int {
	return len(s.addrs)
}

// Each calls fn once for every live address. fn must not mutate the
// LiveSet; callers that need to remove entries while iterating should
// stage the addresses first (as sweep does) and erase them afterward.
func (s *LiveSet) Each(fn func(addr uintptr)) {
	for addr := range s.addrs {
		fn(addr)
	}
}
