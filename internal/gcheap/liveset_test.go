package gcheap

import "testing"

func TestLiveSet(t *testing.T) {
	s := NewLiveSet()
	if s.Len() != 0 {
		t.Fatalf("new LiveSet Len() = %d, want 0", s.Len())
	}

	s.Insert(0x1000)
	s.Insert(0x2000)
	if !s.Contains(0x1000) || !s.Contains(0x2000) {
		t.Fatalf("Contains missed an inserted address")
	}
	if s.Contains(0x3000) {
		t.Fatalf("Contains reported an address that was never inserted")
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}

	s.Erase(0x1000)
	if s.Contains(0x1000) {
		t.Fatalf("Erase did not remove the address")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() after Erase = %d, want 1", s.Len())
	}

	// Erasing a non-member is a no-op, not an error.
	s.Erase(0x9999)
	if s.Len() != 1 {
		t.Fatalf("Len() after erasing a non-member = %d, want 1", s.Len())
	}

	seen := map[uintptr]bool{}
	s.Each(func(addr uintptr) { seen[addr] = true })
	if !seen[0x2000] || len(seen) != 1 {
		t.Fatalf("Each visited %v, want exactly {0x2000}", seen)
	}
}
