// Package gclog is a small leveled logger used to trace collection
// cycles, in the same spirit as the teacher's diagnostics package:
// consistent, dependency-free message formatting rather than a general
// logging framework.
package gclog

import (
	"fmt"
	"io"
)

// Level selects how much a Logger prints.
type Level int

const (
	// LevelSilent prints nothing.
	LevelSilent Level = iota
	// LevelDebug prints per-cycle tracing.
	LevelDebug
)

// Logger prints gc-prefixed trace lines at or above its configured level.
// A nil *Logger is valid and silent.
type Logger struct {
	level Level
	out   io.Writer
}

// New returns a Logger that writes to out at the given level.
func New(level Level, out io.Writer) *Logger {
	return &Logger{level: level, out: out}
}

// Debugf prints a trace line if the logger's level is LevelDebug or finer.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l == nil || l.level < LevelDebug {
		return
	}
	fmt.Fprintf(l.out, "gc: "+format+"\n", args...)
}
