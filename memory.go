package conservegc

import "unsafe"

// bytesAt views the size bytes starting at addr as a byte slice. addr
// must be a payload address this Collector currently owns; the backing
// memory lives in arena-mapped, non-Go-GC-managed storage, so this
// conversion is safe from the Go runtime's point of view regardless of
// what this collector's own cycle later does to it.
func bytesAt(addr, size uintptr) []byte {
	if size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(size))
}
