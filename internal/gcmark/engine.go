// Package gcmark implements the mark phase: recursive (in effect; an
// explicit worklist in practice, per spec.md §4.3's recursion-bound note)
// pointer scanning over untyped payloads, seeded either from a single
// known allocation or from a conservatively-scanned memory range.
package gcmark

import (
	"unsafe"

	"github.com/conservegc/conservegc/internal/gcheap"
)

const wordSize = unsafe.Sizeof(uintptr(0))

// Engine marks the transitive closure of the "points to" relation starting
// from whatever roots it's seeded with, against a single heap index.
type Engine struct {
	live *gcheap.LiveSet
	work []uintptr
}

// NewEngine returns a mark engine over the given heap index.
func NewEngine(live *gcheap.LiveSet) *Engine {
	return &Engine{live: live}
}

// MarkFrom marks obj, which the caller already knows to be a live payload
// address (an explicit root, not a mere candidate), and transitively marks
// everything reachable from it.
func (e *Engine) MarkFrom(obj uintptr) {
	if gcheap.Marked(obj) {
		return
	}
	e.push(obj)
	e.drain()
}

// MarkRange conservatively scans the aligned words in [start, end) and
// marks whatever any of them points to. start is aligned up and end
// aligned down to a word boundary first; trailing bytes that can't form a
// whole word are ignored, since they can't be a word-aligned pointer
// anyway.
func (e *Engine) MarkRange(start, end uintptr) {
	start = (start + wordSize - 1) &^ (wordSize - 1)
	end = end &^ (wordSize - 1)

	for addr := start; addr+wordSize <= end; addr += wordSize {
		word := *(*uintptr)(unsafe.Pointer(addr))
		e.considerRoot(word)
	}
	e.drain()
}

// considerRoot treats candidate as a possible payload address: if it names
// a live, unmarked block, that block is marked and queued for scanning. A
// value that isn't in the heap index is ignored even if it points inside a
// payload; this collector has no interior-pointer support.
//
// Membership is checked before the header is ever touched. candidate is an
// arbitrary word pulled off a conservatively-scanned stack, data segment, or
// payload — it is frequently not a pointer at all (a small integer, leftover
// stack garbage, anything), so Marked must not run against it until
// e.live.Contains has confirmed it actually names an allocated block.
func (e *Engine) considerRoot(candidate uintptr) {
	if candidate == 0 || !e.live.Contains(candidate) || gcheap.Marked(candidate) {
		return
	}
	e.push(candidate)
}

func (e *Engine) push(addr uintptr) {
	gcheap.SetMark(addr)
	e.work = append(e.work, addr)
}

// drain scans every block on the worklist until it's empty, discovering
// new blocks to mark as it goes. Using an explicit LIFO worklist instead
// of recursing means mark depth is bounded by available memory rather than
// native call-stack depth, even though the observable result — the full
// transitive closure — is identical.
func (e *Engine) drain() {
	for len(e.work) > 0 {
		n := len(e.work) - 1
		obj := e.work[n]
		e.work = e.work[:n]
		e.scan(obj)
	}
}

// scan treats obj's payload as a sequence of machine words and considers
// each one as a candidate pointer.
func (e *Engine) scan(obj uintptr) {
	size := gcheap.Size(obj)
	words := size / wordSize
	for i := uintptr(0); i < words; i++ {
		word := *(*uintptr)(unsafe.Pointer(obj + i*wordSize))
		e.considerRoot(word)
	}
}
