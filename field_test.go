package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTexFieldPairAccess(t *testing.T) {
	f := newTexField(4)
	f.setPairA(1, 2, complex(0.5, -0.25))
	f.setPairB(1, 2, complex(-1, 2))

	assert.Equal(t, complex(0.5, -0.25), f.pairA(1, 2))
	assert.Equal(t, complex(-1, 2), f.pairB(1, 2))

	i := f.base(1, 2)
	assert.Equal(t, float32(0.5), f.px[i])
	assert.Equal(t, float32(-0.25), f.px[i+1])
	assert.Equal(t, float32(-1), f.px[i+2])
	assert.Equal(t, float32(2), f.px[i+3])
}

func TestTexFieldClear(t *testing.T) {
	f := newTexField(4)
	f.setTexel(3, 3, 1, 2, 3, 4)
	f.clear()
	for _, v := range f.px {
		require.Zero(t, v)
	}
}

func TestFieldArenaHandles(t *testing.T) {
	arena := newFieldArena(8)
	a := arena.alloc()
	b := arena.alloc()
	assert.NotEqual(t, a, b)
	assert.NotSame(t, arena.get(a), arena.get(b))
	assert.Equal(t, 8, arena.get(a).n)

	assert.True(t, arena.valid(a))
	assert.False(t, arena.valid(fieldHandle(2)))
	assert.False(t, arena.valid(fieldHandle(-1)))
	assert.Panics(t, func() { arena.get(fieldHandle(5)) })
}
