package main

import (
	"fmt"
	"math"
	"math/bits"
)

// butterfly drives one output element of one stage: the two source indices a
// stage combines and the twiddle factor applied to the result. Entries in
// the top half of a butterfly pair carry a unit twiddle.
type butterfly struct {
	twRe, twIm float32
	srcA, srcB int32
}

// fftTable holds the precomputed butterfly layout and bit-reversal
// permutation for one transform size. It is built once per grid size and
// shared read-only by every transform; it is valid only for that exact size.
type fftTable struct {
	n      int
	stages int
	// entries[s*n+i] drives output element i of stage s.
	entries []butterfly
	rev     []int32
}

// buildFFTTable precomputes the iterative inverse-FFT schedule for size n.
// Stage s combines pairs separated by n >> (s+1); output lands in
// bit-reversed order and is fixed up by the rev permutation.
func buildFFTTable(n int) (*fftTable, error) {
	if !isPowerOfTwo(n) || n < 4 {
		return nil, fmt.Errorf("fft table size %d is not a power of two >= 4", n)
	}
	stages := bits.TrailingZeros(uint(n))
	t := &fftTable{
		n:       n,
		stages:  stages,
		entries: make([]butterfly, stages*n),
		rev:     make([]int32, n),
	}
	for s := 0; s < stages; s++ {
		span := n >> (s + 1)
		for i := 0; i < n; i++ {
			j := i & (span - 1)
			block := i &^ (2*span - 1)
			e := butterfly{
				srcA: int32(block + j),
				srcB: int32(block + j + span),
				twRe: 1,
			}
			if i&span != 0 {
				// Bottom half: difference path, inverse-transform twiddle
				// exp(+2πi · j·2^s / n).
				ang := 2 * math.Pi * float64(j<<s) / float64(n)
				e.twRe = float32(math.Cos(ang))
				e.twIm = float32(math.Sin(ang))
			}
			t.entries[s*n+i] = e
		}
	}
	for i := 0; i < n; i++ {
		t.rev[i] = int32(bits.Reverse32(uint32(i)) >> (32 - stages))
	}
	return t, nil
}

// stageSpan returns the butterfly pair separation at stage s.
func (t *fftTable) stageSpan(s int) int {
	return t.n >> (s + 1)
}
