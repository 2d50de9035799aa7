package conservegc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/conservegc/conservegc/internal/gcheap"
	"github.com/conservegc/conservegc/internal/gclog"
)

var validGrowthOptions = []string{string(gcheap.GrowthDouble), string(gcheap.GrowthFixed)}

// LogLevel selects how much a Collector traces about its own cycles.
type LogLevel = gclog.Level

const (
	// LogSilent disables tracing.
	LogSilent = gclog.LevelSilent
	// LogDebug traces every phase of every cycle.
	LogDebug = gclog.LevelDebug
)

// Config controls how a Collector sizes and grows its heap. The zero
// Config is not valid on its own; use DefaultConfig as a starting point
// and override only the fields that need to differ.
type Config struct {
	// InitialHeapSize is the size, in bytes, of the first OS segment the
	// arena maps. Rounded up internally to the allocator's alignment.
	InitialHeapSize uintptr

	// Growth selects how the arena sizes a new segment once the current
	// ones are full: "double" (default) or "fixed".
	Growth gcheap.GrowthPolicy

	// GrowthIncrement is the segment size used when Growth is "fixed".
	// Ignored for "double".
	GrowthIncrement uintptr

	// AutoRegisterSelf, when true (the default), attempts to locate and
	// register the running executable's own data segments at Collector
	// construction time, mirroring create()'s auto-registration note.
	AutoRegisterSelf bool

	// LogLevel controls diagnostic tracing. Defaults to LogSilent.
	LogLevel LogLevel

	// LogOutput receives trace lines when LogLevel is LogDebug. Defaults
	// to os.Stderr.
	LogOutput io.Writer
}

// DefaultConfig returns a Config with sensible, conservative defaults: a
// one-megabyte initial heap that doubles on growth, self-registration
// enabled, and logging disabled.
func DefaultConfig() Config {
	return Config{
		InitialHeapSize:  1 << 20,
		Growth:           gcheap.GrowthDouble,
		GrowthIncrement:  1 << 20,
		AutoRegisterSelf: true,
		LogLevel:         LogSilent,
	}
}

// Verify validates c, in the same spirit as the teacher's
// compileopts.Options.Verify: reject nonsensical field combinations
// before they reach the allocator.
func (c *Config) Verify() error {
	if c.InitialHeapSize == 0 {
		return fmt.Errorf("conservegc: InitialHeapSize must be non-zero")
	}
	if c.Growth != "" && !isInArray(validGrowthOptions, string(c.Growth)) {
		return fmt.Errorf("conservegc: invalid growth option %q: valid values are %s",
			c.Growth, strings.Join(validGrowthOptions, ", "))
	}
	if c.Growth == gcheap.GrowthFixed && c.GrowthIncrement == 0 {
		return fmt.Errorf("conservegc: GrowthIncrement must be non-zero when Growth is %q", gcheap.GrowthFixed)
	}
	return nil
}

// withDefaults fills in any zero-valued field of c from DefaultConfig
// except AutoRegisterSelf, whose false is kept as an explicit choice,
// leaving explicit zero-like choices (an empty Growth string meaning
// "use the default policy") to Verify's already-permissive checks.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.InitialHeapSize == 0 {
		c.InitialHeapSize = d.InitialHeapSize
	}
	if c.Growth == "" {
		c.Growth = d.Growth
	}
	if c.GrowthIncrement == 0 {
		c.GrowthIncrement = d.GrowthIncrement
	}
	if c.LogOutput == nil {
		c.LogOutput = os.Stderr
	}
	return c
}

func isInArray(arr []string, item string) bool {
	for _, i := range arr {
		if i == item {
			return true
		}
	}
	return false
}
