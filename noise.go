package main

import (
	"math/rand"
	"time"
)

// fillNoise populates dst with independent complex Gaussian samples: the real
// and imaginary parts of each cell are standard-normal draws. The field is
// generated once at initialization and retained read-only; reconfiguring the
// wind reuses it so the surface stays phase-coherent across changes.
func fillNoise(dst *texField, seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < dst.n*dst.n; i++ {
		dst.px[i*4] = float32(rng.NormFloat64())
		dst.px[i*4+1] = float32(rng.NormFloat64())
		dst.px[i*4+2] = 0
		dst.px[i*4+3] = 0
	}
}
