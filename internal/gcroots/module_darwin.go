//go:build darwin

package gcroots

import (
	"debug/macho"
	"fmt"
	"os"
)

// moduleSections parses the running executable's Mach-O image and returns
// the writable __DATA segment's range, relocated by base. Mach-O groups
// every writable global (.data- and .bss-equivalent alike) into this one
// segment, so unlike ELF/PE there is only ever a single range here.
func moduleSections(base uintptr) ([]Range, error) {
	path, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}

	f, err := macho.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open Mach-O image: %w", err)
	}
	defer f.Close()

	seg := f.Segment("__DATA")
	if seg == nil {
		return nil, nil
	}
	start := base + uintptr(seg.Addr)
	return []Range{{Start: start, End: start + uintptr(seg.Memsz)}}, nil
}
