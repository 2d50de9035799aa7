package conservegc

import "sync"

var (
	defaultOnce sync.Once
	defaultC    *Collector
	defaultErr  error
)

// Default returns a process-wide Collector constructed from
// DefaultConfig, built once and reused on every subsequent call. The
// collector core has no process singleton of its own (spec.md §9's
// design note); Default is the de-facto global a host can build on top
// of the explicit-handle API without managing its own *Collector.
func Default() (*Collector, error) {
	defaultOnce.Do(func() {
		defaultC, defaultErr = New(DefaultConfig())
	})
	return defaultC, defaultErr
}
