//go:build !linux

package gcroots

import "fmt"

// SelfModuleBase has no ASLR-aware implementation outside Linux in this
// collector: Darwin offers no /proc, and the Windows TEB/PEB walk needed
// to find a module's load base reliably is out of scope here (see
// DESIGN.md). create() treats a failure from this function as "skip
// auto-registration"; the host can still call RegisterModule directly
// with a base address it obtains some other way.
func SelfModuleBase() (uintptr, error) {
	return 0, fmt.Errorf("self module base discovery is not implemented on this platform")
}
