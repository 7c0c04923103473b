package main

import (
	"math"
	"math/cmplx"
)

// Channel indices for the four frequency-domain working fields produced each
// tick. Each channel packs two real-valued spatial results as one complex
// value (A + iB): after the inverse transform of Hermitian-symmetric data
// the real part is the first result and the imaginary part the second.
const (
	// chDxDz carries horizontal displacement x, z.
	chDxDz = iota
	// chDyDxz carries vertical displacement and the cross derivative ∂Dx/∂z.
	chDyDxz
	// chSlope carries the surface slope ∂h/∂x, ∂h/∂z.
	chSlope
	// chDxxDzz carries the horizontal derivatives ∂Dx/∂x, ∂Dz/∂z.
	chDxxDzz
	channelCount
)

// evolveSpectrum advances the packed initial amplitudes to time t under the
// dispersion relation, h(k,t) = h0(k)·e^{iωt} + h0(−k)*·e^{−iωt}, and writes
// the four derived frequency-domain channels. The k=0 bin is forced to zero
// in every channel so the 1/|k| displacement terms stay finite.
func evolveSpectrum(src *texField, chans [channelCount]*texField, p *simParams, t float64) {
	n := src.n
	parallelRows(n, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			kz := waveNumber(y, n, p.lengthScale)
			for x := 0; x < n; x++ {
				kx := waveNumber(x, n, p.lengthScale)
				kLen := math.Hypot(kx, kz)
				if kLen < kEpsilon {
					for _, ch := range chans {
						ch.setTexel(x, y, 0, 0, 0, 0)
					}
					continue
				}
				omega := dispersion(kLen, p.gravity, p.depth)
				phase := cmplx.Exp(complex(0, omega*t))
				h := src.pairA(x, y)*phase + src.pairB(x, y)*cmplx.Conj(phase)
				ih := h * 1i

				dx := ih * complex(kx/kLen, 0)
				dz := ih * complex(kz/kLen, 0)
				dxz := h * complex(-kx*kz/kLen, 0)
				slopeX := ih * complex(kx, 0)
				slopeZ := ih * complex(kz, 0)
				dxx := h * complex(-kx*kx/kLen, 0)
				dzz := h * complex(-kz*kz/kLen, 0)

				chans[chDxDz].setPairA(x, y, dx+dz*1i)
				chans[chDyDxz].setPairA(x, y, h+dxz*1i)
				chans[chSlope].setPairA(x, y, slopeX+slopeZ*1i)
				chans[chDxxDzz].setPairA(x, y, dxx+dzz*1i)
				for _, ch := range chans {
					ch.setPairB(x, y, 0)
				}
			}
		}
	})
}
