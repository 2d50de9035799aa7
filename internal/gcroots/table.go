// Package gcroots assembles everything the mark engine must seed a cycle
// from: explicit roots the host registered, cached module data-segment
// ranges, and (via gcarch) the mutator's current stack window and
// register file. It has no notion of which OS it runs on beyond the
// build-tagged files that implement moduleSections and
// stackBoundsFromOS; the rest of the collector never branches on
// platform.
package gcroots

import "fmt"

// Range is a half-open byte range, [Start, End).
type Range struct {
	Start, End uintptr
}

// Table holds one cycle's worth of root sources: the append-only explicit
// root list and the cached data-segment ranges discovered by
// RegisterModule.
type Table struct {
	explicit []uintptr
	segments []Range
}

// NewTable returns an empty root table.
func NewTable() *Table {
	return &Table{}
}

// AddExplicit appends ptr to the root set. Duplicates are allowed and
// harmless; there is no un-registration.
func (t *Table) AddExplicit(ptr uintptr) {
	t.explicit = append(t.explicit, ptr)
}

// Explicit returns every registered explicit root.
func (t *Table) Explicit() []uintptr {
	return t.explicit
}

// DataSegments returns every cached module data-segment range.
func (t *Table) DataSegments() []Range {
	return t.segments
}

// RegisterModule parses the on-disk image of the module loaded at base
// (the running executable, located via os.Executable — see the
// platform-specific moduleSections implementations) and caches any
// writable data segments it finds there. A module with neither a
// .data-equivalent nor a .bss-equivalent section contributes nothing and
// returns no error: the host is allowed to blindly register modules.
func (t *Table) RegisterModule(base uintptr) error {
	ranges, err := moduleSections(base)
	if err != nil {
		return fmt.Errorf("gcroots: register module at %#x: %w", base, err)
	}
	t.segments = append(t.segments, ranges...)
	return nil
}
