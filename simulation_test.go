package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSim(t *testing.T, n int) *oceanSim {
	t.Helper()
	sim, err := newOceanSim(newTestParams(n))
	require.NoError(t, err)
	return sim
}

func requireFiniteField(t *testing.T, f *texField, name string) {
	t.Helper()
	for i, v := range f.px {
		require.False(t, math.IsNaN(float64(v)) || math.IsInf(float64(v), 0),
			"%s px[%d] = %v", name, i, v)
	}
}

func TestNewOceanSimRejectsBadParams(t *testing.T) {
	p := newTestParams(12)
	_, err := newOceanSim(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ocean parameters")
}

func TestStepProducesFiniteMaps(t *testing.T) {
	sim := newTestSim(t, 16)
	for i := 0; i < 3; i++ {
		require.NoError(t, sim.step(1.0/60))
	}
	displacement, derivatives, foam := sim.outputs()
	requireFiniteField(t, displacement, "displacement")
	requireFiniteField(t, derivatives, "derivatives")
	requireFiniteField(t, foam, "foam")

	// A nonzero wind sea must actually move the surface.
	moved := false
	for i := 0; i < 16*16 && !moved; i++ {
		if displacement.px[i*4+1] != 0 {
			moved = true
		}
	}
	assert.True(t, moved, "surface stayed flat after three steps")
}

func TestStepAdvancesTimeCursor(t *testing.T) {
	sim := newTestSim(t, 16)
	require.NoError(t, sim.step(0.25))
	require.NoError(t, sim.step(0.25))
	assert.InDelta(t, 0.5, sim.time, 1e-12)
}

func TestStepIsDeterministicForSeededNoise(t *testing.T) {
	simA := newTestSim(t, 16)
	simB := newTestSim(t, 16)
	require.NoError(t, simA.step(1.0/60))
	require.NoError(t, simB.step(1.0/60))
	dA, _, _ := simA.outputs()
	dB, _, _ := simB.outputs()
	assert.Equal(t, dA.px, dB.px)
}

func TestSetWindKeepsNoiseAndTable(t *testing.T) {
	sim := newTestSim(t, 16)
	noiseBefore := append([]float32(nil), sim.arena.get(sim.noise).px...)
	spectrumBefore := append([]float32(nil), sim.arena.get(sim.spectrum).px...)
	tableBefore := sim.table

	require.NoError(t, sim.setWind(14, 0.8, 90000))

	assert.Equal(t, noiseBefore, sim.arena.get(sim.noise).px,
		"noise must survive wind changes so the surface stays phase-coherent")
	assert.Same(t, tableBefore, sim.table)
	assert.NotEqual(t, spectrumBefore, sim.arena.get(sim.spectrum).px)
	assert.InDelta(t, 14, sim.params.windSpeed, 1e-12)
}

func TestSetWindRejectsBadWind(t *testing.T) {
	sim := newTestSim(t, 16)
	before := sim.params

	err := sim.setWind(-5, 0, 100000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wind reconfiguration")
	assert.Equal(t, before, sim.params)

	// Zero fetch derives non-finite spectral parameters and must be rejected
	// before it can poison the spectrum.
	require.Error(t, sim.setWind(10, 0, 0))
	assert.Equal(t, before, sim.params)
	require.NoError(t, sim.step(1.0/60))
	displacement, _, _ := sim.outputs()
	requireFiniteField(t, displacement, "displacement")
}

func TestNewOceanSimRejectsZeroFetch(t *testing.T) {
	p := newTestParams(16)
	p.applyWind(10, 0, 0)
	_, err := newOceanSim(p)
	require.Error(t, err)
}

func TestSetWindChangesSubsequentSteps(t *testing.T) {
	simA := newTestSim(t, 16)
	simB := newTestSim(t, 16)
	require.NoError(t, simB.setWind(20, 1.2, 150000))

	require.NoError(t, simA.step(1.0/60))
	require.NoError(t, simB.step(1.0/60))
	dA, _, _ := simA.outputs()
	dB, _, _ := simB.outputs()
	assert.NotEqual(t, dA.px, dB.px)
}

func TestPackedSpectrumIsHermitianAfterInit(t *testing.T) {
	sim := newTestSim(t, 16)
	packed := sim.arena.get(sim.packed)
	n := packed.n
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			a := packed.pairA((n-x)%n, (n-y)%n)
			b := packed.pairB(x, y)
			require.InDelta(t, real(a), real(b), 1e-6, "(%d,%d)", x, y)
			require.InDelta(t, -imag(a), imag(b), 1e-6, "(%d,%d)", x, y)
		}
	}
}

func TestCloseWithoutGPUIsNoop(t *testing.T) {
	sim := newTestSim(t, 16)
	sim.close()
	sim.close()
}
