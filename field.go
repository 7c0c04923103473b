package main

import "fmt"

// texField is a square 2-D buffer laid out like an RGBA32F texture: four
// float32 channels per cell. A cell stores either one complex value in the
// first two channels or two packed complex values across all four.
type texField struct {
	n  int
	px []float32
}

// newTexField allocates a zeroed n×n field.
func newTexField(n int) *texField {
	return &texField{n: n, px: make([]float32, n*n*4)}
}

func (f *texField) base(x, y int) int {
	return (y*f.n + x) * 4
}

// pairA returns the complex value stored in the first two channels of a cell.
func (f *texField) pairA(x, y int) complex128 {
	i := f.base(x, y)
	return complex(float64(f.px[i]), float64(f.px[i+1]))
}

// pairB returns the complex value stored in the last two channels of a cell.
func (f *texField) pairB(x, y int) complex128 {
	i := f.base(x, y)
	return complex(float64(f.px[i+2]), float64(f.px[i+3]))
}

func (f *texField) setPairA(x, y int, v complex128) {
	i := f.base(x, y)
	f.px[i] = float32(real(v))
	f.px[i+1] = float32(imag(v))
}

func (f *texField) setPairB(x, y int, v complex128) {
	i := f.base(x, y)
	f.px[i+2] = float32(real(v))
	f.px[i+3] = float32(imag(v))
}

// setTexel writes all four channels of a cell at once.
func (f *texField) setTexel(x, y int, r, g, b, a float32) {
	i := f.base(x, y)
	f.px[i] = r
	f.px[i+1] = g
	f.px[i+2] = b
	f.px[i+3] = a
}

func (f *texField) clear() {
	for i := range f.px {
		f.px[i] = 0
	}
}

// fieldHandle identifies an arena-owned field. Stages reference fields only
// by handle so the task graph can check read-after-write ordering.
type fieldHandle int

// fieldArena owns every texture-like buffer used by the simulation. All
// fields share the arena's grid size.
type fieldArena struct {
	n      int
	fields []*texField
}

func newFieldArena(n int) *fieldArena {
	return &fieldArena{n: n}
}

// alloc creates a new zeroed field and returns its handle.
func (a *fieldArena) alloc() fieldHandle {
	a.fields = append(a.fields, newTexField(a.n))
	return fieldHandle(len(a.fields) - 1)
}

// get resolves a handle. Handles are created only by alloc, so an unknown
// handle is a programming error surfaced as one.
func (a *fieldArena) get(h fieldHandle) *texField {
	if !a.valid(h) {
		panic(fmt.Sprintf("field arena: unknown handle %d", h))
	}
	return a.fields[h]
}

func (a *fieldArena) valid(h fieldHandle) bool {
	return h >= 0 && int(h) < len(a.fields)
}
