package gcheap

import "testing"

func TestFreeAndReallocateReusesSpace(t *testing.T) {
	arena, err := NewArena(1<<12, GrowthDouble, 0)
	if err != nil {
		t.Fatalf("NewArena: %v", err)
	}

	a, err := arena.Allocate(64)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	before := arena.totalSize()

	arena.Free(a)
	b, err := arena.Allocate(64)
	if err != nil {
		t.Fatalf("Allocate after Free: %v", err)
	}
	after := arena.totalSize()

	if after != before {
		t.Fatalf("totalSize changed from %d to %d; Free should make a freed block reusable without growing", before, after)
	}
	if a != b {
		t.Fatalf("reallocation after a single matching Free landed at %#x, want reused address %#x", b, a)
	}
}

func TestArenaGrowsWhenFull(t *testing.T) {
	arena, err := NewArena(alignment, GrowthFixed, 1<<12)
	if err != nil {
		t.Fatalf("NewArena: %v", err)
	}

	before := arena.totalSize()
	// The initial segment is tiny (one alignment unit); this request can
	// only be satisfied by growing.
	addr, err := arena.Allocate(1 << 10)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if arena.totalSize() <= before {
		t.Fatalf("arena did not grow to satisfy an oversized request")
	}
	if Size(addr) < 1<<10 {
		t.Fatalf("Size() = %d, want >= %d", Size(addr), 1<<10)
	}
}

func TestPayloadAddressStableAcrossGrowth(t *testing.T) {
	arena, err := NewArena(alignment, GrowthFixed, 64)
	if err != nil {
		t.Fatalf("NewArena: %v", err)
	}

	first, err := arena.Allocate(16)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	// Force several growths; first's address must never change, since
	// growth only maps new segments and never relocates existing blocks.
	for i := 0; i < 8; i++ {
		if _, err := arena.Allocate(256); err != nil {
			t.Fatalf("Allocate iteration %d: %v", i, err)
		}
	}

	if Size(first) < 16 {
		t.Fatalf("first block's header was corrupted by later growth")
	}
}
