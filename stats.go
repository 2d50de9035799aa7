package conservegc

import (
	"time"

	"github.com/conservegc/conservegc/internal/gcheap"
)

// GCStats summarizes a Collector's lifetime activity, named and shaped
// after the runtime/debug.GCStats convention: a plain data snapshot a
// host can poll, not a live handle.
type GCStats struct {
	// LiveObjects is the current heap-index cardinality (ObjectCount).
	LiveObjects int
	// BytesLive is the sum of every currently live block's payload size.
	BytesLive uintptr
	// TotalAllocs is the lifetime count of successful Allocate and
	// AllocateZeroed calls.
	TotalAllocs int64
	// TotalFrees is the lifetime count of explicit Free calls that
	// actually removed a live block (idempotent no-op frees don't
	// count).
	TotalFrees int64

	// NumCycles is the number of completed Collect cycles.
	NumCycles int64
	// LastCycle is how long the most recent Collect took.
	LastCycle time.Duration
	// TotalPauseTime is the cumulative duration spent across every
	// Collect call, the collector's total stop-the-world time.
	TotalPauseTime time.Duration
	// BytesReclaimed is the cumulative payload bytes freed by every
	// completed Collect cycle.
	BytesReclaimed int64
}

// Stats returns a snapshot of c's lifetime activity. BytesLive is
// computed fresh from the current heap index, not cached from the last
// cycle, so it reflects blocks allocated since.
func (c *Collector) Stats() GCStats {
	var bytesLive uintptr
	c.live.Each(func(addr uintptr) { bytesLive += gcheap.Size(addr) })

	return GCStats{
		LiveObjects:    c.live.Len(),
		BytesLive:      bytesLive,
		TotalAllocs:    c.allocs,
		TotalFrees:     c.frees,
		NumCycles:      c.cycles,
		LastCycle:      c.lastCycle,
		TotalPauseTime: c.pauseTotal,
		BytesReclaimed: c.bytesReclaimed,
	}
}
