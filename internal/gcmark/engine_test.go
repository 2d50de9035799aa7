package gcmark

import (
	"unsafe"

	"testing"

	"github.com/conservegc/conservegc/internal/gcheap"
)

// fixture wires a small Arena + LiveSet pair so tests can allocate real
// header-backed blocks and write pointer-shaped words into them exactly
// as the collector would.
type fixture struct {
	arena *gcheap.Arena
	live  *gcheap.LiveSet
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	arena, err := gcheap.NewArena(1<<16, gcheap.GrowthDouble, 0)
	if err != nil {
		t.Fatalf("NewArena: %v", err)
	}
	return &fixture{arena: arena, live: gcheap.NewLiveSet()}
}

func (f *fixture) alloc(t *testing.T, size uintptr) uintptr {
	t.Helper()
	addr, err := f.arena.Allocate(size)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	f.live.Insert(addr)
	return addr
}

func setSlot(addr uintptr, index int, val uintptr) {
	*(*uintptr)(unsafe.Pointer(addr + uintptr(index)*wordSize)) = val
}

func TestMarkFromLinearChain(t *testing.T) {
	f := newFixture(t)
	a := f.alloc(t, wordSize)
	b := f.alloc(t, wordSize)
	c := f.alloc(t, wordSize)
	setSlot(a, 0, b)
	setSlot(b, 0, c)

	NewEngine(f.live).MarkFrom(a)

	for _, addr := range []uintptr{a, b, c} {
		if !gcheap.Marked(addr) {
			t.Errorf("block %#x not marked after MarkFrom(a) through the chain", addr)
		}
	}
}

func TestMarkFromDoesNotFollowUnknownWords(t *testing.T) {
	f := newFixture(t)
	a := f.alloc(t, wordSize)
	setSlot(a, 0, 0xdeadbeef) // not a live address

	NewEngine(f.live).MarkFrom(a)

	if !gcheap.Marked(a) {
		t.Fatalf("a itself must still be marked")
	}
}

func TestMarkFromHandlesCycles(t *testing.T) {
	f := newFixture(t)
	x := f.alloc(t, wordSize)
	y := f.alloc(t, wordSize)
	setSlot(x, 0, y)
	setSlot(y, 0, x)

	NewEngine(f.live).MarkFrom(x) // must terminate despite the cycle

	if !gcheap.Marked(x) || !gcheap.Marked(y) {
		t.Fatalf("cyclic chain not fully marked")
	}
}

func TestMarkRangeFindsConservativeRoot(t *testing.T) {
	f := newFixture(t)
	obj := f.alloc(t, wordSize)

	// Simulate a root range (e.g. a stack slice) containing obj's address
	// among unrelated words.
	var window [4]uintptr
	window[2] = obj
	start := uintptr(unsafe.Pointer(&window[0]))
	end := start + uintptr(len(window))*wordSize

	NewEngine(f.live).MarkRange(start, end)

	if !gcheap.Marked(obj) {
		t.Fatalf("MarkRange did not mark a block whose address appeared in the range")
	}
}

func TestMarkRangeIgnoresInteriorPointers(t *testing.T) {
	f := newFixture(t)
	obj := f.alloc(t, 64)
	interior := obj + wordSize // points inside the payload, not at its start

	var window [1]uintptr
	window[0] = interior
	start := uintptr(unsafe.Pointer(&window[0]))
	end := start + wordSize

	NewEngine(f.live).MarkRange(start, end)

	if gcheap.Marked(obj) {
		t.Fatalf("MarkRange must not treat an interior pointer as a root")
	}
}

func TestMarkIsIdempotent(t *testing.T) {
	f := newFixture(t)
	a := f.alloc(t, wordSize)
	b := f.alloc(t, wordSize)
	setSlot(a, 0, b)

	e := NewEngine(f.live)
	e.MarkFrom(a)
	e.MarkFrom(a) // re-entering an already-marked root must be a cheap no-op

	if !gcheap.Marked(a) || !gcheap.Marked(b) {
		t.Fatalf("expected both blocks still marked after a redundant MarkFrom")
	}
}
