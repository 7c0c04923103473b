package main

import "fmt"

// The 2-D inverse FFT runs log2(N) horizontal butterfly stages followed by
// log2(N) vertical ones. Every pass reads from one buffer and writes to the
// other ("ping-pong") so a stage never overwrites values it is still
// reading. A bit-reversal pass after each direction restores natural index
// order, and an optional final pass applies the 1/N² inverse normalization.
// Both packed complex pairs of each texel are transformed simultaneously.

// horizontalStage applies butterfly stage s along rows.
func horizontalStage(in, out *texField, t *fftTable, s int) {
	n := t.n
	span := t.stageSpan(s)
	ents := t.entries[s*n : (s+1)*n]
	parallelRows(n, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < n; x++ {
				e := ents[x]
				aA := in.pairA(int(e.srcA), y)
				bA := in.pairA(int(e.srcB), y)
				aB := in.pairB(int(e.srcA), y)
				bB := in.pairB(int(e.srcB), y)
				if x&span != 0 {
					tw := complex(float64(e.twRe), float64(e.twIm))
					out.setPairA(x, y, (aA-bA)*tw)
					out.setPairB(x, y, (aB-bB)*tw)
				} else {
					out.setPairA(x, y, aA+bA)
					out.setPairB(x, y, aB+bB)
				}
			}
		}
	})
}

// verticalStage applies butterfly stage s along columns.
func verticalStage(in, out *texField, t *fftTable, s int) {
	n := t.n
	span := t.stageSpan(s)
	ents := t.entries[s*n : (s+1)*n]
	parallelRows(n, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			e := ents[y]
			bottom := y&span != 0
			tw := complex(float64(e.twRe), float64(e.twIm))
			for x := 0; x < n; x++ {
				aA := in.pairA(x, int(e.srcA))
				bA := in.pairA(x, int(e.srcB))
				aB := in.pairB(x, int(e.srcA))
				bB := in.pairB(x, int(e.srcB))
				if bottom {
					out.setPairA(x, y, (aA-bA)*tw)
					out.setPairB(x, y, (aB-bB)*tw)
				} else {
					out.setPairA(x, y, aA+bA)
					out.setPairB(x, y, aB+bB)
				}
			}
		}
	})
}

// permuteRows reorders each row out of bit-reversed index order.
func permuteRows(in, out *texField, t *fftTable) {
	n := t.n
	parallelRows(n, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < n; x++ {
				src := in.base(int(t.rev[x]), y)
				dst := out.base(x, y)
				copy(out.px[dst:dst+4], in.px[src:src+4])
			}
		}
	})
}

// permuteCols reorders each column out of bit-reversed index order and, when
// scale is nonzero and not one, folds in the amplitude correction.
func permuteCols(in, out *texField, t *fftTable, scale float32) {
	n := t.n
	parallelRows(n, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			srcRow := int(t.rev[y])
			for x := 0; x < n; x++ {
				src := in.base(x, srcRow)
				dst := out.base(x, y)
				out.px[dst] = in.px[src] * scale
				out.px[dst+1] = in.px[src+1] * scale
				out.px[dst+2] = in.px[src+2] * scale
				out.px[dst+3] = in.px[src+3] * scale
			}
		}
	})
}

// ifft2d transforms f from the frequency domain to the spatial domain in
// place, using scratch as the ping-pong partner. When normalize is true the
// result carries the 1/N² inverse scale; the synthesis pipeline leaves it
// off because the spectrum is already expressed in per-bin energy. A table
// built for a different size is a configuration error, not a recoverable
// condition.
func ifft2d(f, scratch *texField, t *fftTable, normalize bool) error {
	if f.n != t.n {
		return fmt.Errorf("fft: table built for size %d, field has size %d", t.n, f.n)
	}
	if scratch.n != t.n {
		return fmt.Errorf("fft: table built for size %d, scratch has size %d", t.n, scratch.n)
	}
	bufs := [2]*texField{f, scratch}
	ping := 0
	for s := 0; s < t.stages; s++ {
		horizontalStage(bufs[ping], bufs[ping^1], t, s)
		ping ^= 1
	}
	permuteRows(bufs[ping], bufs[ping^1], t)
	ping ^= 1
	for s := 0; s < t.stages; s++ {
		verticalStage(bufs[ping], bufs[ping^1], t, s)
		ping ^= 1
	}
	scale := float32(1)
	if normalize {
		scale = 1 / float32(t.n*t.n)
	}
	permuteCols(bufs[ping], bufs[ping^1], t, scale)
	ping ^= 1
	// 2·(stages+1) passes is even, so results normally land back in the
	// primary buffer; copy back if a future pass count changes that.
	if ping != 0 {
		copy(f.px, scratch.px)
	}
	return nil
}
