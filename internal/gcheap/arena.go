package gcheap

import (
	"fmt"
	"unsafe"
)

// alignment is the guaranteed payload alignment, matching the default
// malloc-class alignment on a 64-bit platform (spec.md §3).
const alignment = 16

// minFreeBlock is the smallest span worth splitting off into its own free
// node. A carved block with less leftover than this keeps the whole span;
// those few bytes become permanent internal fragmentation rather than a
// free node too small to ever satisfy another request.
const minFreeBlock = headerSize + wordSize

// GrowthPolicy selects how an Arena sizes a new segment when it runs out
// of room.
type GrowthPolicy string

const (
	// GrowthDouble sizes each new segment to match the arena's total size
	// so far (at least enough to satisfy the pending request).
	GrowthDouble GrowthPolicy = "double"
	// GrowthFixed sizes each new segment to a fixed increment (at least
	// enough to satisfy the pending request).
	GrowthFixed GrowthPolicy = "fixed"
)

// freeNode overlays the first two words of every free block. Free blocks
// are never scanned by the mark engine (they're not in the live set), so
// reusing their storage for free-list bookkeeping is safe.
type freeNode struct {
	total uintptr // bytes spanned by this free block, header included
	next  *freeNode
}

// segment is one contiguous range of OS-backed memory.
type segment struct {
	base uintptr
	size uintptr
}

// Arena is the platform allocator: a growable set of OS-backed memory
// segments carved into header-prefixed blocks. A payload address, once
// handed out, never moves — growth always maps a new segment rather than
// relocating one, so the heap index never needs to be rewritten.
type Arena struct {
	segments []segment
	bump     uintptr
	bumpEnd  uintptr
	free     *freeNode

	growth    GrowthPolicy
	increment uintptr
}

// NewArena maps an initial segment of at least initialSize bytes and
// returns an Arena that grows by doubling or by a fixed increment,
// according to growth, whenever it runs out of room.
func NewArena(initialSize uintptr, growth GrowthPolicy, increment uintptr) (*Arena, error) {
	if initialSize < alignment {
		initialSize = alignment
	}
	initialSize = roundUp(initialSize, alignment)

	base, err := mapSegment(initialSize)
	if err != nil {
		return nil, fmt.Errorf("gcheap: map initial segment: %w", err)
	}

	a := &Arena{growth: growth, increment: increment}
	a.addSegment(base, initialSize)
	return a, nil
}

func (a *Arena) addSegment(base, size uintptr) {
	a.segments = append(a.segments, segment{base: base, size: size})
	a.bump = base
	a.bumpEnd = base + size
}

func (a *Arena) totalSize() uintptr {
	var sum uintptr
	for _, s := range a.segments {
		sum += s.size
	}
	return sum
}

// Allocate reserves a block of at least payloadSize payload bytes and
// returns its payload address. The header is initialized with the rounded
// payload size and mark = 0; payload contents are unspecified (see
// AllocateZeroed for a zeroed variant). It returns ErrOutOfMemory if the
// underlying platform allocator cannot satisfy the request even after
// growing, and ErrOversized if payloadSize doesn't fit the header's size
// field.
func (a *Arena) Allocate(payloadSize uintptr) (uintptr, error) {
	if payloadSize > MaxPayloadSize {
		return 0, ErrOversized
	}

	payloadRound := roundUpWord(payloadSize)
	total := roundUp(headerSize+payloadRound, alignment)

	if node, prev := a.findFree(total); node != nil {
		addr := a.carve(node, prev, total)
		headerAt(addr).setSize(payloadRound)
		return addr, nil
	}

	if addr, ok := a.bumpAllocate(total); ok {
		headerAt(addr).setSize(payloadRound)
		return addr, nil
	}

	if err := a.grow(total); err != nil {
		return 0, ErrOutOfMemory
	}

	if addr, ok := a.bumpAllocate(total); ok {
		headerAt(addr).setSize(payloadRound)
		return addr, nil
	}
	return 0, ErrOutOfMemory
}

func (a *Arena) bumpAllocate(total uintptr) (uintptr, bool) {
	if a.bump+total > a.bumpEnd {
		return 0, false
	}
	base := a.bump
	a.bump += total
	return base + headerSize, true
}

func (a *Arena) findFree(total uintptr) (node, prev *freeNode) {
	for n := a.free; n != nil; n = n.next {
		if n.total >= total {
			return n, prev
		}
		prev = n
	}
	return nil, nil
}

func (a *Arena) carve(node, prev *freeNode, total uintptr) uintptr {
	base := uintptr(unsafe.Pointer(node))

	if prev != nil {
		prev.next = node.next
	} else {
		a.free = node.next
	}

	leftover := node.total - total
	if leftover >= minFreeBlock {
		remBase := base + total
		rem := (*freeNode)(unsafe.Pointer(remBase))
		rem.total = leftover
		rem.next = a.free
		a.free = rem
	}
	return base + headerSize
}

func (a *Arena) grow(minSize uintptr) error {
	var newSize uintptr
	switch a.growth {
	case GrowthFixed:
		newSize = a.increment
	default: // GrowthDouble and any unset value
		newSize = a.totalSize()
	}
	if newSize < minSize {
		newSize = minSize
	}
	newSize = roundUp(newSize, alignment)

	base, err := mapSegment(newSize)
	if err != nil {
		return fmt.Errorf("gcheap: grow arena: %w", err)
	}
	a.addSegment(base, newSize)
	return nil
}

// Free returns addr's block to the free list. The caller is responsible
// for having already removed addr from the live set; Free itself performs
// no membership check.
func (a *Arena) Free(addr uintptr) {
	h := headerAt(addr)
	total := roundUp(headerSize+roundUpWord(h.size()), alignment)

	base := addr - headerSize
	node := (*freeNode)(unsafe.Pointer(base))
	node.total = total
	node.next = a.free
	a.free = node
}
