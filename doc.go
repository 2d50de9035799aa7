// Package conservegc implements a conservative, stop-the-world,
// mark-and-sweep garbage collector for a 64-bit native heap. The
// collector hands out opaque payload pointers backed by platform memory
// it maps itself (outside the Go runtime's own heap), finds every live
// block by scanning the mutator's registers, stack, registered module
// data segments and explicit roots, and reclaims everything else.
//
// A Collector is not safe for concurrent use: it serves a single
// mutator, and Collect assumes the world is stopped for its duration,
// exactly as spec'd for a single-threaded embedded collector rather
// than a general-purpose runtime GC.
package conservegc
