//go:build !amd64 && !arm64

package gcarch

// PinForTest has no implementation on architectures without a
// hand-written register trampoline (see regs_other.go): there is no
// real register file this package can reach, so the register-only-root
// scenario cannot be exercised here. It is a deliberate no-op rather
// than a build failure, so portable test suites can call it
// unconditionally and simply not observe retention through it on this
// architecture.
func PinForTest(val uintptr) {}
