package main

import (
	"fmt"
	"math"
)

// swellBand describes one additive component of the directional wave
// spectrum. Two bands let a local wind sea and a distant swell coexist.
type swellBand struct {
	scale          float64 // overall energy multiplier; 0 disables the band
	angle          float64 // dominant direction in radians
	spreadBlend    float64 // 0 = isotropic base lobe, 1 = full cosine-2s lobe
	swell          float64 // sharpens the directional spread for long waves
	alpha          float64 // JONSWAP energy scale
	peakOmega      float64 // JONSWAP peak angular frequency
	gamma          float64 // JONSWAP peak-enhancement factor
	shortWavesFade float64 // Gaussian fade of short wavelengths
}

// simParams is the immutable per-run configuration of the synthesizer. It is
// created once, validated, and shared read-only with every kernel.
type simParams struct {
	size        int
	lengthScale float64
	windSpeed   float64
	windDirX    float64
	windDirY    float64
	fetch       float64
	gravity     float64
	depth       float64
	cutoffLow   float64
	cutoffHigh  float64
	lambda      float64
	seed        int64
	bands       [2]swellBand
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// jonswapPeakOmega derives the fetch-limited peak angular frequency
// ω_p = 22·(g²/(U·F))^(1/3).
func jonswapPeakOmega(g, windSpeed, fetch float64) float64 {
	return 22.0 * math.Cbrt(g*g/(windSpeed*fetch))
}

// jonswapAlpha derives the fetch-limited energy scale
// α = 0.076·(g·F/U²)^(−0.22).
func jonswapAlpha(g, windSpeed, fetch float64) float64 {
	return 0.076 * math.Pow(g*fetch/(windSpeed*windSpeed), -0.22)
}

// defaultParams builds the startup configuration from flags and constants.
// Band 0 is the local wind sea; band 1 is reserved for a secondary swell and
// starts disabled.
func defaultParams() simParams {
	p := simParams{
		size:        *gridSizeFlag,
		lengthScale: *lengthScaleFlag,
		windSpeed:   *windSpeedFlag,
		fetch:       *fetchFlag,
		gravity:     gravity,
		depth:       defaultDepth,
		cutoffLow:   cutoffLow,
		cutoffHigh:  cutoffHigh,
		lambda:      displacementLambda,
		seed:        *noiseSeedFlag,
	}
	p.bands[0] = swellBand{
		scale:          1.0,
		spreadBlend:    defaultSpreadBlend,
		swell:          defaultSwell,
		gamma:          defaultGamma,
		shortWavesFade: defaultShortWavesFade,
	}
	p.bands[1] = swellBand{
		spreadBlend:    1.0,
		swell:          1.0,
		alpha:          0.0081,
		peakOmega:      0.831,
		gamma:          defaultGamma,
		shortWavesFade: defaultShortWavesFade,
	}
	p.applyWind(*windSpeedFlag, *windAngleFlag*math.Pi/180, *fetchFlag)
	return p
}

// applyWind updates the wind parameters and re-derives band 0's spectral
// shape. It touches nothing that depends on the grid size.
func (p *simParams) applyWind(speed, angle, fetch float64) {
	p.windSpeed = speed
	p.windDirX = math.Cos(angle)
	p.windDirY = math.Sin(angle)
	p.fetch = fetch
	p.bands[0].angle = angle
	p.bands[0].alpha = jonswapAlpha(p.gravity, speed, fetch)
	p.bands[0].peakOmega = jonswapPeakOmega(p.gravity, speed, fetch)
}

// validate rejects configurations the pipeline cannot run with. Errors here
// are fatal at startup; nothing is silently corrected.
func (p *simParams) validate() error {
	if !isPowerOfTwo(p.size) || p.size < 4 {
		return fmt.Errorf("grid size %d is not a power of two >= 4", p.size)
	}
	if p.lengthScale <= 0 {
		return fmt.Errorf("length scale %g must be positive", p.lengthScale)
	}
	if p.gravity <= 0 {
		return fmt.Errorf("gravity %g must be positive", p.gravity)
	}
	if p.depth <= 0 {
		return fmt.Errorf("water depth %g must be positive", p.depth)
	}
	if p.cutoffLow < 0 || p.cutoffHigh <= p.cutoffLow {
		return fmt.Errorf("wavenumber cutoffs [%g, %g] are not an increasing non-negative range", p.cutoffLow, p.cutoffHigh)
	}
	if p.fetch <= 0 {
		return fmt.Errorf("fetch %g must be positive", p.fetch)
	}
	if p.windSpeed <= 0 {
		return fmt.Errorf("wind speed must be positive when fetch is %g", p.fetch)
	}
	for i, b := range p.bands {
		if b.scale < 0 {
			return fmt.Errorf("band %d: negative energy scale %g", i, b.scale)
		}
		if b.scale == 0 {
			continue
		}
		// The fetch-limited derivations blow up to Inf/NaN for degenerate
		// wind inputs; those must fail here, not surface as NaN texels.
		if b.alpha < 0 || math.IsInf(b.alpha, 0) || math.IsNaN(b.alpha) {
			return fmt.Errorf("band %d: spectral energy scale %g is not finite and non-negative", i, b.alpha)
		}
		if !(b.peakOmega > 0) || math.IsInf(b.peakOmega, 0) {
			return fmt.Errorf("band %d: peak angular frequency %g must be positive and finite", i, b.peakOmega)
		}
		if b.gamma < 1 {
			return fmt.Errorf("band %d: peak enhancement %g must be >= 1", i, b.gamma)
		}
		if b.spreadBlend < 0 || b.spreadBlend > 1 {
			return fmt.Errorf("band %d: spread blend %g outside [0, 1]", i, b.spreadBlend)
		}
	}
	return nil
}
