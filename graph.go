package main

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// task is one pipeline stage. It declares the fields it reads and writes so
// the graph can schedule it after every stage whose output it depends on.
type task struct {
	name   string
	reads  []fieldHandle
	writes []fieldHandle
	run    func() error
}

// taskGraph schedules stages by their declared field accesses. Tasks are
// grouped into levels: a task lands one level below the deepest earlier task
// it conflicts with, and tasks within a level share no fields with
// read/write overlap, so a level can execute fully in parallel.
type taskGraph struct {
	arena *fieldArena
	tasks []task
}

func newTaskGraph(arena *fieldArena) *taskGraph {
	return &taskGraph{arena: arena}
}

func (g *taskGraph) add(t task) {
	g.tasks = append(g.tasks, t)
}

// conflicts reports whether a later task must wait for an earlier one:
// read-after-write, write-after-write, or write-after-read on any field.
func conflicts(earlier, later *task) bool {
	for _, w := range earlier.writes {
		for _, r := range later.reads {
			if w == r {
				return true
			}
		}
		for _, lw := range later.writes {
			if w == lw {
				return true
			}
		}
	}
	for _, r := range earlier.reads {
		for _, lw := range later.writes {
			if r == lw {
				return true
			}
		}
	}
	return false
}

// schedule validates every declared handle and assigns each task to a level.
// The returned slice holds task indices grouped by level in execution order.
func (g *taskGraph) schedule() ([][]int, error) {
	depth := make([]int, len(g.tasks))
	maxDepth := 0
	for i := range g.tasks {
		t := &g.tasks[i]
		for _, h := range append(append([]fieldHandle(nil), t.reads...), t.writes...) {
			if !g.arena.valid(h) {
				return nil, fmt.Errorf("task %q references unknown field handle %d", t.name, h)
			}
		}
		if t.run == nil {
			return nil, fmt.Errorf("task %q has no body", t.name)
		}
		d := 0
		for j := 0; j < i; j++ {
			if conflicts(&g.tasks[j], t) && depth[j]+1 > d {
				d = depth[j] + 1
			}
		}
		depth[i] = d
		if d > maxDepth {
			maxDepth = d
		}
	}
	levels := make([][]int, maxDepth+1)
	for i, d := range depth {
		levels[d] = append(levels[d], i)
	}
	return levels, nil
}

// execute runs the graph level by level. Tasks within a level run
// concurrently; a level does not start until the previous one has fully
// completed, which enforces the read-after-write barriers between stages.
func (g *taskGraph) execute() error {
	levels, err := g.schedule()
	if err != nil {
		return err
	}
	for _, level := range levels {
		var eg errgroup.Group
		for _, idx := range level {
			t := &g.tasks[idx]
			eg.Go(func() error {
				if err := t.run(); err != nil {
					return fmt.Errorf("task %q: %w", t.name, err)
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}
	}
	return nil
}
