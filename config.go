package main

import "time"

// Simulation and viewer configuration constants. These values define the
// default grid resolution, the wind/wave climate, and the foam response of
// the ocean surface synthesizer.
const (
	defaultGridSize = 512
	windowScale     = 2
	defaultTPS      = 60.0

	gravity      = 9.81
	defaultDepth = 500.0

	// defaultLengthScale is the patch size in meters represented by the grid.
	defaultLengthScale = 250.0

	defaultWindSpeed    = 10.0
	defaultWindAngleDeg = -29.81
	defaultFetch        = 100000.0

	// Wavenumber magnitudes outside [cutoffLow, cutoffHigh] carry no energy;
	// the low cutoff removes the k=0 singularity and the high cutoff removes
	// aliased short waves.
	cutoffLow  = 1e-4
	cutoffHigh = 9999.0

	defaultGamma          = 3.3
	defaultSwell          = 0.198
	defaultSpreadBlend    = 1.0
	defaultShortWavesFade = 0.01

	// displacementLambda scales the horizontal (choppy) displacement and the
	// Jacobian terms derived from it.
	displacementLambda = 1.0

	// foamOnset is the Jacobian value below which wave crests fold and foam
	// accumulates. foamDecayRate and foamBias tune the per-second decay and
	// injection of foam intensity.
	foamOnset     = 0.85
	foamDecayRate = 0.8
	foamBias      = 1.75

	// kEpsilon guards divisions by the wavenumber magnitude.
	kEpsilon = 1e-6

	pgoProfilePath    = "default.pgo"
	pgoRecordDuration = 15 * time.Second
)
