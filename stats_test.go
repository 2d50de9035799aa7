package conservegc

import "testing"

func TestStatsTracksCyclesAndBytes(t *testing.T) {
	c := newTestCollector(t)
	a, err := c.Allocate(64)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	before := c.Stats()
	if before.LiveObjects != 1 {
		t.Fatalf("LiveObjects = %d, want 1", before.LiveObjects)
	}
	if before.BytesLive < 64 {
		t.Fatalf("BytesLive = %d, want >= 64", before.BytesLive)
	}

	// a has no root, so the cycle below reclaims it.
	if err := c.Collect(); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	after := c.Stats()
	if after.NumCycles != 1 {
		t.Fatalf("NumCycles = %d, want 1", after.NumCycles)
	}
	if after.LiveObjects != 0 {
		t.Fatalf("LiveObjects after reclaiming a = %d, want 0", after.LiveObjects)
	}
	if after.BytesReclaimed < 64 {
		t.Fatalf("BytesReclaimed = %d, want >= 64", after.BytesReclaimed)
	}
	_ = a
}
