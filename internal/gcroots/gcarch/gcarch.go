// Package gcarch is the narrow, per-architecture sliver the spec's
// "frame preservation" design note calls for: a function that flushes the
// current callee-saved registers somewhere the mark engine can scan, and
// that reports the current stack pointer so the rest of the root
// collector knows where the live stack window begins. Everything above
// this package is architecture-neutral.
//
// Go gives no portable way to pin a stack frame against inlining,
// tail-calls, and reuse the way the spec's native-toolchain contract
// does, so rather than depend on frame liveness this package flushes
// registers into a package-level buffer — itself just another range the
// mark engine scans — which is stable regardless of what the Go compiler
// does to the calling frame afterward.
package gcarch

import "unsafe"

// RegisterBufferWords is the number of machine words the platform
// trampoline may flush callee-saved registers into.
const RegisterBufferWords = 8

var registerBuffer [RegisterBufferWords]uintptr

// Capture flushes the current callee-saved registers into registerBuffer
// and returns the current stack pointer. It must run before any other Go
// code gets a chance to reuse those registers, so callers should invoke it
// as the very first action of a collection cycle.
//
//go:noinline
func Capture() uintptr {
	return flushRegisters(&registerBuffer)
}

// RegisterRange returns the address range of the buffer Capture flushed
// registers into, for scanning like any other root range.
func RegisterRange() (start, end uintptr) {
	start = uintptr(unsafe.Pointer(&registerBuffer[0]))
	end = start + RegisterBufferWords*unsafe.Sizeof(uintptr(0))
	return start, end
}
