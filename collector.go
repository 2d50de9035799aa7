package conservegc

import (
	"fmt"
	"time"

	"github.com/conservegc/conservegc/internal/gcheap"
	"github.com/conservegc/conservegc/internal/gclog"
	"github.com/conservegc/conservegc/internal/gcmark"
	"github.com/conservegc/conservegc/internal/gcroots"
	"github.com/conservegc/conservegc/internal/gcroots/gcarch"
)

// Collector is a single gc_state: one arena, one heap index, one root
// table. It is not safe for concurrent use by multiple goroutines; it
// models a single mutator thread, per the collector's single-threaded
// contract.
type Collector struct {
	cfg   Config
	arena *gcheap.Arena
	live  *gcheap.LiveSet
	roots *gcroots.Table
	log   *gclog.Logger

	stackBase  uintptr
	stackLimit uintptr

	allocs int64
	frees  int64

	cycles         int64
	lastCycle      time.Duration
	pauseTotal     time.Duration
	bytesReclaimed int64
}

// New constructs a Collector from cfg, which is first validated with
// Verify and then completed with DefaultConfig's values for any
// zero-valued field except AutoRegisterSelf, which is used as given.
// If cfg.AutoRegisterSelf is set, New attempts to
// locate and register the running executable's own writable data
// segments; a platform that cannot discover its own load base is not
// treated as an error here (create()'s self-registration is a
// best-effort convenience, not a contract).
func New(cfg Config) (*Collector, error) {
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	arena, err := gcheap.NewArena(cfg.InitialHeapSize, cfg.Growth, cfg.GrowthIncrement)
	if err != nil {
		return nil, fmt.Errorf("conservegc: new collector: %w", err)
	}

	c := &Collector{
		cfg:   cfg,
		arena: arena,
		live:  gcheap.NewLiveSet(),
		roots: gcroots.NewTable(),
		log:   gclog.New(cfg.LogLevel, cfg.LogOutput),
	}

	if cfg.AutoRegisterSelf {
		if base, err := gcroots.SelfModuleBase(); err == nil {
			_ = c.RegisterModule(base)
			c.log.Debugf("self-registered module at %#x", base)
		} else {
			c.log.Debugf("self-registration skipped: %v", err)
		}
	}

	return c, nil
}

// AddRoot registers ptr, which must have been returned by Allocate or
// AllocateZeroed on this Collector, as a permanent explicit root. There
// is no un-registration; a registered root persists for the Collector's
// lifetime.
func (c *Collector) AddRoot(ptr uintptr) {
	c.roots.AddExplicit(ptr)
	c.log.Debugf("added explicit root %#x", ptr)
}

// RegisterModule parses the on-disk image of the running executable,
// relocates its writable data segments by base and caches them, so future
// cycles scan them. The image read is always the running executable's,
// whichever module base names. A module with no recognizable data or bss section
// contributes nothing and returns no error, per contract.
func (c *Collector) RegisterModule(base uintptr) error {
	if err := c.roots.RegisterModule(base); err != nil {
		return err
	}
	c.log.Debugf("registered module at %#x", base)
	return nil
}

// Allocate reserves a block of at least size payload bytes and returns
// its payload address, or an error if the underlying arena could not
// satisfy the request. The payload's initial contents are unspecified.
func (c *Collector) Allocate(size uintptr) (uintptr, error) {
	addr, err := c.arena.Allocate(size)
	if err != nil {
		return 0, err
	}
	c.live.Insert(addr)
	c.allocs++
	return addr, nil
}

// AllocateZeroed is Allocate, but the returned payload is byte-zeroed
// before return.
func (c *Collector) AllocateZeroed(size uintptr) (uintptr, error) {
	addr, err := c.Allocate(size)
	if err != nil {
		return 0, err
	}
	zero(addr, gcheap.Size(addr))
	return addr, nil
}

// Free explicitly releases ptr: it is removed from the heap index and
// its memory returned to the arena's free list. Freeing a pointer not
// currently in the heap index is a silent no-op, which is what makes
// a double free, or a free after collect has already reclaimed the
// block, safe.
func (c *Collector) Free(ptr uintptr) {
	if !c.live.Contains(ptr) {
		return
	}
	c.live.Erase(ptr)
	c.arena.Free(ptr)
	c.frees++
}

// ObjectCount returns the exact number of live blocks: the heap index's
// cardinality.
func (c *Collector) ObjectCount() int {
	return c.live.Len()
}

// IsLive reports whether ptr currently names a live payload address.
func (c *Collector) IsLive(ptr uintptr) bool {
	return c.live.Contains(ptr)
}

// Recalibrate rediscovers the mutator's stack bounds from the caller's
// current stack pointer and stores them in the Collector's cached
// stackBase/stackLimit fields. Go's runtime grows and can relocate
// goroutine stacks between calls, unlike the fixed native thread stack the
// frame-preservation contract assumes. Collect does not read the cached
// fields: it rediscovers the bounds from the stack pointer it captures at
// the start of every cycle, uses them for both the sanity check and the
// scan window, and overwrites the cached fields with them.
func (c *Collector) Recalibrate() {
	sp := gcarch.Capture()
	bounds := gcroots.DiscoverStackBounds(sp)
	c.stackBase, c.stackLimit = bounds.Base, bounds.Limit
}

// Collect performs one full mark-sweep cycle: it flushes the mutator's
// registers, scans the current stack, scans every registered module
// data segment, marks every explicit root, then reclaims every block
// that was not reached from any of those four sources.
//
// Collect must not be called while another goroutine holds or mutates a
// pointer obtained from this Collector; the collector serves a single
// mutator and assumes the world is stopped for the duration of a cycle.
func (c *Collector) Collect() error {
	start := time.Now()
	sp := gcarch.Capture()
	bounds := gcroots.DiscoverStackBounds(sp)
	if bounds.Limit != 0 && (sp < bounds.Limit || sp >= bounds.Base) {
		return fmt.Errorf("conservegc: stack pointer %#x outside discovered bounds [%#x, %#x)", sp, bounds.Limit, bounds.Base)
	}
	c.stackBase, c.stackLimit = bounds.Base, bounds.Limit

	engine := gcmark.NewEngine(c.live)

	regStart, regEnd := gcarch.RegisterRange()
	engine.MarkRange(regStart, regEnd)
	c.log.Debugf("scanned register range [%#x, %#x)", regStart, regEnd)

	engine.MarkRange(sp, bounds.Base)
	c.log.Debugf("scanned stack range [%#x, %#x)", sp, bounds.Base)

	for _, seg := range c.roots.DataSegments() {
		engine.MarkRange(seg.Start, seg.End)
		c.log.Debugf("scanned data segment [%#x, %#x)", seg.Start, seg.End)
	}

	for _, root := range c.roots.Explicit() {
		if c.live.Contains(root) {
			engine.MarkFrom(root)
		}
	}
	c.log.Debugf("marked %d explicit roots", len(c.roots.Explicit()))

	var garbage []uintptr
	var reclaimed int64
	c.live.Each(func(addr uintptr) {
		if gcheap.Marked(addr) {
			gcheap.ClearMark(addr)
		} else {
			garbage = append(garbage, addr)
			reclaimed += int64(gcheap.Size(addr))
		}
	})

	for _, addr := range garbage {
		c.live.Erase(addr)
		c.arena.Free(addr)
	}
	c.log.Debugf("reclaimed %d blocks, %d survive", len(garbage), c.live.Len())

	c.cycles++
	c.lastCycle = time.Since(start)
	c.pauseTotal += c.lastCycle
	c.bytesReclaimed += reclaimed

	return nil
}

func zero(addr, size uintptr) {
	b := bytesAt(addr, size)
	for i := range b {
		b[i] = 0
	}
}
