//go:build windows

package gcroots

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// stackBoundsFromOS walks the memory region containing sp with
// VirtualQuery. A Windows thread stack is one contiguous MEM_PRIVATE
// region (plus a guard page below it), so that region's bounds serve the
// same role the Thread Information Block's StackBase/StackLimit fields
// would.
func stackBoundsFromOS(sp uintptr) (low, high uintptr, err error) {
	var mbi windows.MemoryBasicInformation
	e := windows.VirtualQuery(sp, &mbi, unsafe.Sizeof(mbi))
	if e != nil {
		return 0, 0, fmt.Errorf("VirtualQuery: %w", e)
	}
	low = mbi.BaseAddress
	high = mbi.BaseAddress + mbi.RegionSize
	return low, high, nil
}
