package main

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestSpectrum(t *testing.T, p simParams) (spectrum, packed *texField) {
	t.Helper()
	noise := newTexField(p.size)
	fillNoise(noise, p.seed)
	spectrum = newTexField(p.size)
	initSpectrum(spectrum, noise, &p)
	packed = newTexField(p.size)
	packConjugate(packed, spectrum)
	return spectrum, packed
}

func TestDispersionMonotonicInWavenumber(t *testing.T) {
	prev := 0.0
	for k := 0.01; k < 100; k *= 2 {
		omega := dispersion(k, 9.81, 500)
		assert.Greater(t, omega, prev, "k=%g", k)
		prev = omega
	}
}

func TestDispersionShallowWaterLimit(t *testing.T) {
	// For k·depth << 1, ω ≈ k·sqrt(g·depth).
	k, g, depth := 1e-4, 9.81, 500.0
	want := k * math.Sqrt(g*depth)
	assert.InDelta(t, want, dispersion(k, g, depth), want*1e-2)
}

func TestJonswapPeaksNearPeakFrequency(t *testing.T) {
	b := swellBand{scale: 1, alpha: 0.01, peakOmega: 0.85, gamma: 3.3}
	atPeak := jonswap(b.peakOmega, 9.81, 500, b)
	assert.Greater(t, atPeak, jonswap(b.peakOmega/2, 9.81, 500, b))
	assert.Greater(t, atPeak, jonswap(b.peakOmega*2, 9.81, 500, b))
	assert.Zero(t, jonswap(0, 9.81, 500, b))
}

func TestInitSpectrumZeroAtCenterBin(t *testing.T) {
	p := newTestParams(16)
	spectrum, _ := buildTestSpectrum(t, p)
	c := p.size / 2
	assert.Zero(t, spectrum.pairA(c, c))
	assert.Zero(t, spectrum.pairB(c, c))
}

func TestInitSpectrumCutoffsSuppressAllEnergy(t *testing.T) {
	p := newTestParams(16)
	p.cutoffHigh = 1e-6
	p.cutoffLow = 0
	spectrum, _ := buildTestSpectrum(t, p)
	for i, v := range spectrum.px {
		require.Zero(t, v, "px[%d]", i)
	}
}

func TestInitSpectrumScalesWithNoise(t *testing.T) {
	p := newTestParams(16)
	noise := newTexField(p.size)
	fillNoise(noise, p.seed)
	spectrum := newTexField(p.size)
	initSpectrum(spectrum, noise, &p)

	doubled := newTexField(p.size)
	for i := range noise.px {
		doubled.px[i] = noise.px[i] * 2
	}
	spectrum2 := newTexField(p.size)
	initSpectrum(spectrum2, doubled, &p)

	for i := range spectrum.px {
		require.InDelta(t, spectrum.px[i]*2, spectrum2.px[i], 1e-5, "px[%d]", i)
	}
}

func TestPackConjugateIsHermitian(t *testing.T) {
	p := newTestParams(16)
	spectrum, packed := buildTestSpectrum(t, p)
	n := p.size
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			assert.Equal(t, spectrum.pairA(x, y), packed.pairA(x, y), "(%d,%d)", x, y)
			want := cmplx.Conj(spectrum.pairA((n-x)%n, (n-y)%n))
			got := packed.pairB(x, y)
			require.InDelta(t, real(want), real(got), 1e-6, "(%d,%d)", x, y)
			require.InDelta(t, imag(want), imag(got), 1e-6, "(%d,%d)", x, y)
		}
	}
}

func TestDirectionSpectrumFavorsWindDirection(t *testing.T) {
	b := swellBand{scale: 1, spreadBlend: 1, swell: 0.198, peakOmega: 0.85}
	omega := b.peakOmega
	downwind := directionSpectrum(0, omega, b)
	crosswind := directionSpectrum(math.Pi/2, omega, b)
	upwind := directionSpectrum(math.Pi, omega, b)
	assert.Greater(t, downwind, crosswind)
	assert.Greater(t, crosswind, upwind)
}

func TestShortWaveFadeSuppressesHighWavenumbers(t *testing.T) {
	b := swellBand{shortWavesFade: 0.01}
	assert.InDelta(t, 1, shortWaveFade(0, b), 1e-12)
	assert.Greater(t, shortWaveFade(10, b), shortWaveFade(1000, b))
	assert.Less(t, shortWaveFade(1000, b), 1e-6)
}
