//go:build !amd64 && !arm64

package gcarch

import "unsafe"

// flushRegisters is the portable fallback for architectures without a
// hand-written trampoline. It cannot reach the real register file, so it
// leaves the buffer zeroed (any register-only root on such a platform
// is missed) and approximates the stack pointer with the address of a
// local variable in this frame, which sits at or slightly above the real
// stack pointer and serves as the low end of the scanned stack window.
//
//go:noinline
func flushRegisters(buf *[RegisterBufferWords]uintptr) uintptr {
	for i := range buf {
		buf[i] = 0
	}
	var anchor uintptr
	return uintptr(unsafe.Pointer(&anchor))
}
