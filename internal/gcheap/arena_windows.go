//go:build windows

package gcheap

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// mapSegment asks the OS for a fresh, zeroed region of at least size
// bytes via VirtualAlloc, committed and reserved in one call.
func mapSegment(size uintptr) (uintptr, error) {
	addr, err := windows.VirtualAlloc(0, size, windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return 0, fmt.Errorf("VirtualAlloc: %w", err)
	}
	return addr, nil
}
