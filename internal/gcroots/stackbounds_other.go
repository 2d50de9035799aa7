//go:build !linux && !windows

package gcroots

import "fmt"

// stackBoundsFromOS has no portable, cgo-free implementation on Darwin or
// other POSIX platforms (it would need pthread_get_stackaddr_np /
// pthread_get_stacksize_np, both of which require cgo). Callers fall back
// to treating the captured stack pointer itself as the high-water mark,
// per DiscoverStackBounds — a documented platform gap, not a silent one.
func stackBoundsFromOS(_ uintptr) (low, high uintptr, err error) {
	return 0, 0, fmt.Errorf("OS stack bounds discovery is not implemented on this platform")
}
