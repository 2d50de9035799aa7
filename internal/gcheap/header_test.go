package gcheap

import "testing"

func TestHeaderSizeAndMark(t *testing.T) {
	arena, err := NewArena(alignment, GrowthDouble, 0)
	if err != nil {
		t.Fatalf("NewArena: %v", err)
	}

	addr, err := arena.Allocate(40)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	if got := Size(addr); got < 40 {
		t.Fatalf("Size() = %d, want >= 40", got)
	}
	if Marked(addr) {
		t.Fatalf("freshly allocated block must be unmarked")
	}

	SetMark(addr)
	if !Marked(addr) {
		t.Fatalf("SetMark did not set the mark bit")
	}
	if got := Size(addr); got < 40 {
		t.Fatalf("Size() after SetMark = %d, want >= 40 (mark bit leaked into size)", got)
	}

	ClearMark(addr)
	if Marked(addr) {
		t.Fatalf("ClearMark did not clear the mark bit")
	}
}

func TestAllocateAlignment(t *testing.T) {
	arena, err := NewArena(1<<16, GrowthDouble, 0)
	if err != nil {
		t.Fatalf("NewArena: %v", err)
	}

	for _, size := range []uintptr{0, 1, 7, 8, 15, 16, 17, 128, 4095} {
		addr, err := arena.Allocate(size)
		if err != nil {
			t.Fatalf("Allocate(%d): %v", size, err)
		}
		if addr%alignment != 0 {
			t.Errorf("Allocate(%d) = %#x, not %d-byte aligned", size, addr, alignment)
		}
		if got := Size(addr); got < size {
			t.Errorf("Size() after Allocate(%d) = %d, want >= %d", size, got, size)
		}
	}
}

func TestOversizedAllocationRejected(t *testing.T) {
	arena, err := NewArena(alignment, GrowthDouble, 0)
	if err != nil {
		t.Fatalf("NewArena: %v", err)
	}
	if _, err := arena.Allocate(MaxPayloadSize + 1); err != ErrOversized {
		t.Fatalf("Allocate(MaxPayloadSize+1) error = %v, want ErrOversized", err)
	}
}
