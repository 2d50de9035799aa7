package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/conservegc/conservegc"
)

// Scenario is a YAML-described end-to-end test of the collector: a
// sequence of Steps run in order against one Collector, with optional
// expectations checked after each step. Scenario files let reachability
// scenarios live as data rather than as hand-written Go,
// in the same way the teacher's test suite drives compiler behavior
// from testdata fixtures rather than inline literals.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one action in a Scenario. Exactly one of the action fields
// (Alloc, Root, SetSlot, Free, Scrub, Collect) is expected to be set; Expect,
// if present, is checked after the action runs.
type Step struct {
	// Alloc allocates a block of the given size and binds it to a name
	// usable by later steps.
	Alloc *AllocStep `yaml:"alloc,omitempty"`
	// Root registers the named block as an explicit root.
	Root string `yaml:"root,omitempty"`
	// SetSlot writes a named block's address (or null) into word index
	// Index of another named block's payload.
	SetSlot *SetSlotStep `yaml:"set_slot,omitempty"`
	// Scrub runs scrubStack, which zeroes a large local stack buffer so
	// that stale copies of dropped pointers are less likely to be found
	// by the next scan, used to model "the host stops holding a stale
	// stack copy" between steps. It is best-effort and does not clear
	// every slot above the caller's frame.
	Scrub bool `yaml:"scrub,omitempty"`
	// Collect runs one mark-sweep cycle.
	Collect bool `yaml:"collect,omitempty"`
	// Free explicitly frees the named block.
	Free string `yaml:"free,omitempty"`

	// Expect, if non-nil, asserts the collector's object count equals
	// *Expect immediately after this step runs.
	Expect *int `yaml:"expect,omitempty"`
	// ExpectAlive and ExpectDead name blocks that must (not) be tracked
	// by the heap index after this step.
	ExpectAlive []string `yaml:"expect_alive,omitempty"`
	ExpectDead  []string `yaml:"expect_dead,omitempty"`
}

// AllocStep allocates a block and binds it under Name for later steps
// to reference.
type AllocStep struct {
	Name   string `yaml:"name"`
	Size   uintptr `yaml:"size"`
	Zeroed bool    `yaml:"zeroed,omitempty"`
}

// SetSlotStep writes Target's address (or null, when Target is empty)
// into word Index of In's payload.
type SetSlotStep struct {
	In     string `yaml:"in"`
	Index  int    `yaml:"index"`
	Target string `yaml:"target,omitempty"`
}

// LoadScenario parses a scenario YAML file from path.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return &s, nil
}

// Run executes every step of s against a fresh Collector built from
// cfg, returning the first expectation failure encountered, if any.
func Run(s *Scenario, cfg conservegc.Config) error {
	c, err := conservegc.New(cfg)
	if err != nil {
		return fmt.Errorf("scenario %s: new collector: %w", s.Name, err)
	}

	bound := map[string]uintptr{}
	for i, step := range s.Steps {
		if err := runStep(c, bound, step); err != nil {
			return fmt.Errorf("scenario %s: step %d: %w", s.Name, i, err)
		}
		if err := checkExpectations(c, bound, step); err != nil {
			return fmt.Errorf("scenario %s: step %d: %w", s.Name, i, err)
		}
	}
	return nil
}

func runStep(c *conservegc.Collector, bound map[string]uintptr, step Step) error {
	switch {
	case step.Alloc != nil:
		var addr uintptr
		var err error
		if step.Alloc.Zeroed {
			addr, err = c.AllocateZeroed(step.Alloc.Size)
		} else {
			addr, err = c.Allocate(step.Alloc.Size)
		}
		if err != nil {
			return fmt.Errorf("alloc %s: %w", step.Alloc.Name, err)
		}
		bound[step.Alloc.Name] = addr

	case step.Root != "":
		addr, ok := bound[step.Root]
		if !ok {
			return fmt.Errorf("root: unknown block %q", step.Root)
		}
		c.AddRoot(addr)

	case step.SetSlot != nil:
		in, ok := bound[step.SetSlot.In]
		if !ok {
			return fmt.Errorf("set_slot: unknown block %q", step.SetSlot.In)
		}
		var target uintptr
		if step.SetSlot.Target != "" {
			target, ok = bound[step.SetSlot.Target]
			if !ok {
				return fmt.Errorf("set_slot: unknown block %q", step.SetSlot.Target)
			}
		}
		setWord(in, step.SetSlot.Index, target)

	case step.Free != "":
		addr, ok := bound[step.Free]
		if !ok {
			return fmt.Errorf("free: unknown block %q", step.Free)
		}
		c.Free(addr)

	case step.Scrub:
		scrubStack()

	case step.Collect:
		if err := c.Collect(); err != nil {
			return fmt.Errorf("collect: %w", err)
		}
	}
	return nil
}

func checkExpectations(c *conservegc.Collector, bound map[string]uintptr, step Step) error {
	if step.Expect != nil && c.ObjectCount() != *step.Expect {
		return fmt.Errorf("object count = %d, want %d", c.ObjectCount(), *step.Expect)
	}
	for _, name := range step.ExpectAlive {
		addr, ok := bound[name]
		if !ok {
			return fmt.Errorf("expect_alive: unknown block %q", name)
		}
		if !c.IsLive(addr) {
			return fmt.Errorf("expect_alive: block %q was reclaimed", name)
		}
	}
	for _, name := range step.ExpectDead {
		addr, ok := bound[name]
		if !ok {
			return fmt.Errorf("expect_dead: unknown block %q", name)
		}
		if c.IsLive(addr) {
			return fmt.Errorf("expect_dead: block %q survived", name)
		}
	}
	return nil
}
