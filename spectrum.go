package main

import (
	"math"
	"math/cmplx"
)

// waveNumber maps a grid index to its centered wavenumber component:
// (i − N/2) · 2π/lengthScale.
func waveNumber(i, n int, lengthScale float64) float64 {
	return float64(i-n/2) * (2 * math.Pi / lengthScale)
}

// dispersion returns the angular frequency ω(k) = sqrt(g·k·tanh(k·depth))
// for a wavenumber magnitude k.
func dispersion(k, g, depth float64) float64 {
	return math.Sqrt(g * k * math.Tanh(k*depth))
}

// dispersionDerivative returns dω/dk, used to convert spectral density from
// frequency space to wavenumber space.
func dispersionDerivative(k, g, depth, omega float64) float64 {
	if omega <= 0 {
		return 0
	}
	kh := k * depth
	th := math.Tanh(kh)
	sech2 := 1 - th*th
	return g * (th + kh*sech2) / (2 * omega)
}

// tmaCorrection applies the Kitaigorodskii finite-depth attenuation to the
// deep-water JONSWAP density.
func tmaCorrection(omega, g, depth float64) float64 {
	omegaH := omega * math.Sqrt(depth/g)
	if omegaH <= 1 {
		return 0.5 * omegaH * omegaH
	}
	if omegaH < 2 {
		d := 2 - omegaH
		return 1 - 0.5*d*d
	}
	return 1
}

// jonswap evaluates one band's TMA-corrected JONSWAP energy density at ω.
func jonswap(omega, g, depth float64, b swellBand) float64 {
	if omega <= 0 {
		return 0
	}
	sigma := 0.07
	if omega > b.peakOmega {
		sigma = 0.09
	}
	d := omega - b.peakOmega
	r := math.Exp(-d * d / (2 * sigma * sigma * b.peakOmega * b.peakOmega))
	ratio := b.peakOmega / omega
	ratio2 := ratio * ratio
	return b.scale * tmaCorrection(omega, g, depth) * b.alpha * g * g /
		math.Pow(omega, 5) * math.Exp(-1.25*ratio2*ratio2) * math.Pow(b.gamma, r)
}

// spreadNormalization approximates the normalization constant of the
// cosine-2s directional lobe so it integrates to one over direction.
func spreadNormalization(s float64) float64 {
	s2 := s * s
	s3 := s2 * s
	s4 := s3 * s
	if s < 5 {
		return -0.000564*s4 + 0.00776*s3 - 0.044*s2 + 0.192*s + 0.163
	}
	return -4.80e-8*s4 + 1.07e-5*s3 - 9.53e-4*s2 + 5.90e-2*s + 3.93e-1
}

// spreadPower is Hasselmann's frequency-dependent spreading exponent.
func spreadPower(omega, peakOmega float64) float64 {
	if omega > peakOmega {
		return 9.77 * math.Pow(omega/peakOmega, -2.5)
	}
	return 6.97 * math.Pow(omega/peakOmega, 5)
}

// directionSpectrum blends an isotropic cos² base with the normalized
// cosine-2s lobe centered on the band's direction.
func directionSpectrum(theta, omega float64, b swellBand) float64 {
	s := spreadPower(omega, b.peakOmega) + 16*math.Tanh(math.Min(omega/b.peakOmega, 20))*b.swell*b.swell
	c := math.Cos(theta)
	base := 2 / math.Pi * c * c
	lobe := spreadNormalization(s) * math.Pow(math.Abs(math.Cos(0.5*theta)), 2*s)
	return base + (lobe-base)*b.spreadBlend
}

// shortWaveFade suppresses wavelengths shorter than the band's fade length.
func shortWaveFade(kLen float64, b swellBand) float64 {
	return math.Exp(-b.shortWavesFade * b.shortWavesFade * kLen * kLen)
}

// bandDensity is the full directional spectral density of one band at the
// given wavenumber magnitude and direction.
func bandDensity(kLen, kAngle, g, depth float64, b swellBand) float64 {
	if b.scale <= 0 || b.peakOmega <= 0 {
		return 0
	}
	omega := dispersion(kLen, g, depth)
	if omega <= 0 {
		return 0
	}
	return jonswap(omega, g, depth, b) *
		directionSpectrum(kAngle-b.angle, omega, b) *
		shortWaveFade(kLen, b)
}

// initSpectrum builds the initial complex amplitudes h0(k): the square root
// of the combined band densities, converted to per-bin energy, multiplied by
// the cell's complex Gaussian noise sample. Cells at k=0 or outside the
// wavenumber cutoffs carry exactly zero amplitude.
func initSpectrum(dst, noise *texField, p *simParams) {
	n := dst.n
	deltaK := 2 * math.Pi / p.lengthScale
	parallelRows(n, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < n; x++ {
				kx := waveNumber(x, n, p.lengthScale)
				kz := waveNumber(y, n, p.lengthScale)
				kLen := math.Hypot(kx, kz)
				if kLen == 0 || kLen < p.cutoffLow || kLen > p.cutoffHigh {
					dst.setTexel(x, y, 0, 0, 0, 0)
					continue
				}
				kAngle := math.Atan2(kz, kx)
				omega := dispersion(kLen, p.gravity, p.depth)
				dwdk := dispersionDerivative(kLen, p.gravity, p.depth, omega)
				density := bandDensity(kLen, kAngle, p.gravity, p.depth, p.bands[0]) +
					bandDensity(kLen, kAngle, p.gravity, p.depth, p.bands[1])
				amp := math.Sqrt(2 * density * math.Abs(dwdk) / kLen * deltaK * deltaK)
				nz := noise.pairA(x, y)
				dst.setPairA(x, y, complex(real(nz)*amp, imag(nz)*amp))
				dst.setPairB(x, y, 0)
			}
		}
	})
}

// packConjugate writes the Hermitian pair (h0(k), h0(−k)*) for every cell so
// the time evolver can synthesize a real-valued surface. The mirrored index
// wraps modulo N, which maps the Nyquist rows onto themselves.
func packConjugate(dst, src *texField) {
	n := src.n
	parallelRows(n, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			my := (n - y) % n
			for x := 0; x < n; x++ {
				mx := (n - x) % n
				dst.setPairA(x, y, src.pairA(x, y))
				dst.setPairB(x, y, cmplx.Conj(src.pairA(mx, my)))
			}
		}
	})
}
