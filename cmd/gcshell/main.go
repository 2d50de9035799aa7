// Command gcshell drives a conservegc.Collector from the outside: it
// runs recorded YAML scenarios against it for regression testing, and
// offers an interactive REPL for poking at a live collector by hand.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/inhies/go-bytesize"
	"github.com/mattn/go-colorable"

	"github.com/conservegc/conservegc"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "gcshell:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("expected a subcommand: run, repl")
	}

	switch args[0] {
	case "run":
		return runCommand(args[1:])
	case "repl":
		return replCommand(args[1:])
	default:
		return fmt.Errorf("unknown subcommand %q: expected run or repl", args[0])
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	heapSize := fs.String("heap", "1MB", "initial heap size (e.g. 1MB, 64KB)")
	lockPath := fs.String("lock", "", "path to an flock lockfile serializing concurrent gcshell runs (optional)")
	verbose := fs.Bool("v", false, "trace every collection cycle")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("run: expected one or more scenario file paths")
	}

	size, err := bytesize.Parse(*heapSize)
	if err != nil {
		return fmt.Errorf("run: invalid -heap %q: %w", *heapSize, err)
	}

	if *lockPath != "" {
		lock := flock.New(*lockPath)
		locked, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("run: acquire lock %s: %w", *lockPath, err)
		}
		if !locked {
			return fmt.Errorf("run: lock %s is held by another gcshell run", *lockPath)
		}
		defer lock.Unlock()
	}

	out := colorable.NewColorableStdout()

	cfg := conservegc.DefaultConfig()
	cfg.InitialHeapSize = uintptr(size)
	if *verbose {
		cfg.LogLevel = conservegc.LogDebug
		cfg.LogOutput = os.Stderr
	}

	for _, path := range fs.Args() {
		name := filepath.Base(path)
		scn, err := LoadScenario(path)
		if err != nil {
			return err
		}
		if err := Run(scn, cfg); err != nil {
			fmt.Fprintf(out, "FAIL %s: %v\n", name, err)
			return err
		}
		fmt.Fprintf(out, "PASS %s\n", name)
	}
	return nil
}
