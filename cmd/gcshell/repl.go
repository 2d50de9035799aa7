package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/inhies/go-bytesize"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-tty"

	"github.com/conservegc/conservegc"
)

// replCommand opens an interactive session against one Collector,
// reading shlex-tokenized commands line by line from the terminal that
// mattn/go-tty opens. When no terminal can be opened (piped input, CI),
// it reads no input at all: the loop prints its banner and prompt once
// and returns.
func replCommand(args []string) error {
	fs := newReplFlagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := conservegc.DefaultConfig()
	c, err := conservegc.New(cfg)
	if err != nil {
		return fmt.Errorf("repl: new collector: %w", err)
	}

	out := colorable.NewColorableStdout()
	bound := map[string]uintptr{}

	tty, err := tty.Open()
	if err != nil {
		return replLoop(c, bound, bufio.NewScanner(strings.NewReader("")), out, nil)
	}
	defer tty.Close()

	return replLoop(c, bound, bufio.NewScanner(tty.Input()), out, tty)
}

func newReplFlagSet() *replFlagSet {
	return &replFlagSet{}
}

// replFlagSet is a stand-in for flag.FlagSet: the repl subcommand takes
// no flags today but keeps its own parser so adding one later doesn't
// touch the call site in main.go.
type replFlagSet struct{}

func (*replFlagSet) Parse(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("repl: unexpected arguments %v", args)
	}
	return nil
}

func replLoop(c *conservegc.Collector, bound map[string]uintptr, scanner *bufio.Scanner, out io.Writer, t *tty.TTY) error {
	fmt.Fprintln(out, "gcshell repl: alloc <name> <size> | root <name> | set <in> <index> <target|nil> | free <name> | collect | count | stats | alive <name> | quit")
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintln(out, "parse error:", err)
			continue
		}
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		if err := dispatch(c, bound, out, fields); err != nil {
			fmt.Fprintln(out, "error:", err)
		}
	}
}

func dispatch(c *conservegc.Collector, bound map[string]uintptr, out io.Writer, fields []string) error {
	switch fields[0] {
	case "alloc":
		if len(fields) != 3 {
			return fmt.Errorf("usage: alloc <name> <size>")
		}
		size, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid size: %w", err)
		}
		addr, err := c.Allocate(uintptr(size))
		if err != nil {
			return err
		}
		bound[fields[1]] = addr
		fmt.Fprintf(out, "%s = %#x\n", fields[1], addr)

	case "root":
		if len(fields) != 2 {
			return fmt.Errorf("usage: root <name>")
		}
		addr, ok := bound[fields[1]]
		if !ok {
			return fmt.Errorf("unknown block %q", fields[1])
		}
		c.AddRoot(addr)

	case "set":
		if len(fields) != 4 {
			return fmt.Errorf("usage: set <in> <index> <target|nil>")
		}
		in, ok := bound[fields[1]]
		if !ok {
			return fmt.Errorf("unknown block %q", fields[1])
		}
		index, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("invalid index: %w", err)
		}
		var target uintptr
		if fields[3] != "nil" {
			target, ok = bound[fields[3]]
			if !ok {
				return fmt.Errorf("unknown block %q", fields[3])
			}
		}
		setWord(in, index, target)

	case "free":
		if len(fields) != 2 {
			return fmt.Errorf("usage: free <name>")
		}
		addr, ok := bound[fields[1]]
		if !ok {
			return fmt.Errorf("unknown block %q", fields[1])
		}
		c.Free(addr)

	case "collect":
		if err := c.Collect(); err != nil {
			return err
		}
		fmt.Fprintf(out, "collected; %d objects live\n", c.ObjectCount())

	case "count":
		fmt.Fprintf(out, "%d objects live\n", c.ObjectCount())

	case "stats":
		s := c.Stats()
		fmt.Fprintf(out, "%d objects live, %s live, %d cycles, %s total pause, %s reclaimed\n",
			s.LiveObjects, bytesize.New(float64(s.BytesLive)),
			s.NumCycles, s.TotalPauseTime, bytesize.New(float64(s.BytesReclaimed)))

	case "alive":
		if len(fields) != 2 {
			return fmt.Errorf("usage: alive <name>")
		}
		addr, ok := bound[fields[1]]
		if !ok {
			return fmt.Errorf("unknown block %q", fields[1])
		}
		fmt.Fprintf(out, "%v\n", c.IsLive(addr))

	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
	return nil
}
