package gcheap

import "unsafe"

// wordSize is the machine word size the mark engine scans in, and the unit
// every payload is rounded up to.
const wordSize = unsafe.Sizeof(uintptr(0))

// headerSize is the number of bytes reserved immediately before every
// payload. Only the first word carries information (size + mark bit); the
// second word is unused padding kept solely so that a 16-byte-aligned
// block start yields a 16-byte-aligned payload, matching the default
// malloc-class alignment spec.md §3 requires.
const headerSize = 2 * wordSize

const (
	markBit  = uint64(1) << 63
	sizeMask = markBit - 1
)

// MaxPayloadSize is the largest payload size a header can encode: 2^63-1
// bytes on a 64-bit platform.
const MaxPayloadSize = uintptr(sizeMask)

// header is the metadata word prepended to every allocation block. It is
// never addressed through a Go pointer type from outside this package: the
// rest of the collector talks about blocks purely in terms of their
// payload address, exactly as spec.md §3 says the payload is the block's
// only visible identity.
type header struct {
	word uint64
	_    uint64 // padding, see headerSize
}

// headerAt returns the header belonging to the block whose payload starts
// at addr. addr must be a live or freshly carved payload address handed
// out by an Arena; the memory it points into is not Go-heap-managed, so
// this conversion never races with a Go GC that might move or reclaim it.
func headerAt(addr uintptr) *header {
	return (*header)(unsafe.Pointer(addr - headerSize))
}

func (h *header) size() uintptr { return uintptr(h.word & sizeMask) }

func (h *header) setSize(n uintptr) {
	h.word = (h.word &^ sizeMask) | (uint64(n) & sizeMask)
}

func (h *header) marked() bool { return h.word&markBit != 0 }

func (h *header) setMark() { h.word |= markBit }

func (h *header) clearMark() { h.word &^= markBit }

// Size returns the payload size recorded in addr's header, in bytes. It is
// always >= the size originally requested at allocation time.
func Size(addr uintptr) uintptr { return headerAt(addr).size() }

// Marked reports whether addr's block is marked reachable in the current
// cycle.
func Marked(addr uintptr) bool { return headerAt(addr).marked() }

// SetMark sets addr's mark bit.
func SetMark(addr uintptr) { headerAt(addr).setMark() }

// ClearMark clears addr's mark bit. Called once per surviving block at the
// end of every sweep so that, between cycles, every header has mark = 0.
func ClearMark(addr uintptr) { headerAt(addr).clearMark() }

func roundUpWord(n uintptr) uintptr {
	return (n + wordSize - 1) &^ (wordSize - 1)
}

func roundUp(n, k uintptr) uintptr {
	return (n + k - 1) &^ (k - 1)
}
