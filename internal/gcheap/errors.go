// Package gcheap implements the allocator and live-object index: the
// header/mark-bit packing, the platform-backed arena that hands out
// 16-byte-aligned payload pointers, and the set of currently live payload
// addresses the mark engine tests membership against.
package gcheap

import "errors"

// ErrOutOfMemory is returned by Arena.Allocate when no free block is large
// enough and the arena could not grow. It is a recoverable, in-band
// condition: callers surface it as a null payload pointer, never a panic.
var ErrOutOfMemory = errors.New("gcheap: out of memory")

// ErrOversized is returned when a requested payload size would not fit in
// the size field of a header word. This is a contract violation the host
// is not expected to trigger in normal use.
var ErrOversized = errors.New("gcheap: payload size exceeds header capacity")
