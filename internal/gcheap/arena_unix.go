//go:build unix

package gcheap

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// mapSegment asks the OS for a fresh, zeroed, anonymous mapping of at
// least size bytes. The mapping is never munmap'd by this package: an
// Arena only grows, and payload addresses handed out of a segment must
// stay valid for the collector's lifetime.
func mapSegment(size uintptr) (uintptr, error) {
	mem, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return 0, fmt.Errorf("mmap: %w", err)
	}
	return uintptr(unsafe.Pointer(&mem[0])), nil
}
