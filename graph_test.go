package main

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopTask() func() error {
	return func() error { return nil }
}

func TestGraphLevelsRespectHazards(t *testing.T) {
	arena := newFieldArena(4)
	a := arena.alloc()
	b := arena.alloc()
	c := arena.alloc()

	g := newTaskGraph(arena)
	g.add(task{name: "produce", writes: []fieldHandle{a}, run: noopTask()})
	g.add(task{name: "consume", reads: []fieldHandle{a}, writes: []fieldHandle{b}, run: noopTask()})
	g.add(task{name: "unrelated", writes: []fieldHandle{c}, run: noopTask()})
	g.add(task{name: "rewrite", writes: []fieldHandle{a}, run: noopTask()})

	levels, err := g.schedule()
	require.NoError(t, err)
	require.Len(t, levels, 3)
	// produce and unrelated share no fields, so they share level 0.
	assert.Equal(t, []int{0, 2}, levels[0])
	// consume waits on the write to a.
	assert.Equal(t, []int{1}, levels[1])
	// rewrite must wait for consume to finish reading a.
	assert.Equal(t, []int{3}, levels[2])
}

func TestGraphExecutionOrder(t *testing.T) {
	arena := newFieldArena(4)
	a := arena.alloc()
	b := arena.alloc()

	var mu sync.Mutex
	var order []string
	record := func(name string) func() error {
		return func() error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil
		}
	}

	g := newTaskGraph(arena)
	g.add(task{name: "first", writes: []fieldHandle{a}, run: record("first")})
	g.add(task{name: "second", reads: []fieldHandle{a}, writes: []fieldHandle{b}, run: record("second")})
	g.add(task{name: "third", reads: []fieldHandle{b}, run: record("third")})
	require.NoError(t, g.execute())
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestGraphRejectsUnknownHandle(t *testing.T) {
	arena := newFieldArena(4)
	arena.alloc()

	g := newTaskGraph(arena)
	g.add(task{name: "bogus", reads: []fieldHandle{99}, run: noopTask()})
	err := g.execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field handle 99")
}

func TestGraphRejectsMissingBody(t *testing.T) {
	arena := newFieldArena(4)
	h := arena.alloc()

	g := newTaskGraph(arena)
	g.add(task{name: "empty", writes: []fieldHandle{h}})
	err := g.execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no body")
}

func TestGraphWrapsTaskErrors(t *testing.T) {
	arena := newFieldArena(4)
	h := arena.alloc()
	boom := errors.New("kernel exploded")

	g := newTaskGraph(arena)
	g.add(task{name: "volatile", writes: []fieldHandle{h}, run: func() error { return boom }})
	err := g.execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `task "volatile"`)
}

func TestGraphErrorStopsLaterLevels(t *testing.T) {
	arena := newFieldArena(4)
	h := arena.alloc()

	ran := false
	g := newTaskGraph(arena)
	g.add(task{name: "failing", writes: []fieldHandle{h}, run: func() error { return errors.New("nope") }})
	g.add(task{name: "downstream", reads: []fieldHandle{h}, run: func() error {
		ran = true
		return nil
	}})
	require.Error(t, g.execute())
	assert.False(t, ran)
}
