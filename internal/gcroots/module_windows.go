//go:build windows

package gcroots

import (
	"debug/pe"
	"fmt"
	"os"
)

// moduleSections parses the running executable's PE/COFF image and
// returns one range per section named ".data" or ".bss", relocated by
// base. The collector doesn't require .bss to be present.
func moduleSections(base uintptr) ([]Range, error) {
	path, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}

	f, err := pe.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open PE image: %w", err)
	}
	defer f.Close()

	var ranges []Range
	for _, sec := range f.Sections {
		if sec.Name != ".data" && sec.Name != ".bss" {
			continue
		}
		size := uintptr(sec.VirtualSize)
		if size == 0 {
			size = uintptr(sec.Size)
		}
		start := base + uintptr(sec.VirtualAddress)
		ranges = append(ranges, Range{Start: start, End: start + size})
	}
	return ranges, nil
}
