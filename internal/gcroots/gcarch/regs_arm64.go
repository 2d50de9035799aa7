//go:build arm64

package gcarch

// flushRegisters is implemented in regs_arm64.s. It stores the current
// callee-saved registers (R19-R26 per AAPCS64) into buf and returns the
// stack pointer at the point of the call.
//
//go:noescape
func flushRegisters(buf *[RegisterBufferWords]uintptr) uintptr
