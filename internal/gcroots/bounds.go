package gcroots

// Bounds describes the mutator's scannable stack window: [Limit, Base),
// where Base is the high address (the stack top) and Limit is the low
// address below which the stack pointer must never fall. Limit is 0 when
// the platform offered no way to discover it, in which case callers skip
// the lower-bound sanity check rather than treat every stack pointer as a
// violation.
type Bounds struct {
	Base  uintptr
	Limit uintptr
}

// DiscoverStackBounds asks the OS for the current thread's stack extent.
// sp is the caller's own current stack pointer (from gcarch.Capture),
// used both as a starting point for platforms that must search for the
// containing region and as the fallback high-water mark on platforms with
// no such query at all.
func DiscoverStackBounds(sp uintptr) Bounds {
	low, high, err := stackBoundsFromOS(sp)
	if err != nil || high <= sp {
		return Bounds{Base: sp, Limit: 0}
	}
	return Bounds{Base: high, Limit: low}
}
