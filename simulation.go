package main

import (
	"fmt"
	"log"
)

// oceanSim owns the spectral pipeline: the retained noise and initial
// spectrum, the FFT schedule, the per-tick working channels, and the three
// maps the renderer samples. All per-tick work flows through a task graph so
// the read-after-write ordering between stages is declared, checked, and
// exploited for parallelism rather than implied.
type oceanSim struct {
	params simParams
	arena  *fieldArena
	table  *fftTable

	noise    fieldHandle
	spectrum fieldHandle // h0(k)
	packed   fieldHandle // (h0(k), h0(−k)*)

	channels [channelCount]fieldHandle
	scratch  [channelCount]fieldHandle

	displacementMap fieldHandle
	derivativeMap   fieldHandle
	foamMap         fieldHandle

	// gpu, when non-nil, runs the inverse transforms on an OpenCL device.
	gpu *openCLFFT

	time float64
}

// newOceanSim validates the parameters, builds the FFT table and noise field
// once, and derives the initial spectrum. The returned simulation is ready
// to step.
func newOceanSim(p simParams) (*oceanSim, error) {
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("ocean parameters: %w", err)
	}
	table, err := buildFFTTable(p.size)
	if err != nil {
		return nil, err
	}
	s := &oceanSim{params: p, table: table, arena: newFieldArena(p.size)}
	s.noise = s.arena.alloc()
	s.spectrum = s.arena.alloc()
	s.packed = s.arena.alloc()
	for i := range s.channels {
		s.channels[i] = s.arena.alloc()
		s.scratch[i] = s.arena.alloc()
	}
	s.displacementMap = s.arena.alloc()
	s.derivativeMap = s.arena.alloc()
	s.foamMap = s.arena.alloc()

	g := newTaskGraph(s.arena)
	g.add(task{
		name:   "gaussian-noise",
		writes: []fieldHandle{s.noise},
		run: func() error {
			fillNoise(s.arena.get(s.noise), p.seed)
			return nil
		},
	})
	s.addSpectrumTasks(g)
	if err := g.execute(); err != nil {
		return nil, err
	}
	return s, nil
}

// addSpectrumTasks appends the two stages that rebuild h0 and its Hermitian
// pair from the retained noise field.
func (s *oceanSim) addSpectrumTasks(g *taskGraph) {
	g.add(task{
		name:   "initial-spectrum",
		reads:  []fieldHandle{s.noise},
		writes: []fieldHandle{s.spectrum},
		run: func() error {
			initSpectrum(s.arena.get(s.spectrum), s.arena.get(s.noise), &s.params)
			return nil
		},
	})
	g.add(task{
		name:   "conjugate-pack",
		reads:  []fieldHandle{s.spectrum},
		writes: []fieldHandle{s.packed},
		run: func() error {
			packConjugate(s.arena.get(s.packed), s.arena.get(s.spectrum))
			return nil
		},
	})
}

// setWind reconfigures the wind without rebuilding the FFT table or
// regenerating noise; only the spectrum stages re-run.
func (s *oceanSim) setWind(speed, angle, fetch float64) error {
	p := s.params
	p.applyWind(speed, angle, fetch)
	if err := p.validate(); err != nil {
		return fmt.Errorf("wind reconfiguration: %w", err)
	}
	s.params = p
	g := newTaskGraph(s.arena)
	s.addSpectrumTasks(g)
	return g.execute()
}

// step advances the simulation time by dt seconds and refreshes the three
// output maps. The maps are written only by the final composite task, so a
// failure in any earlier stage leaves all of them untouched.
func (s *oceanSim) step(dt float64) error {
	t := s.time + dt
	g := newTaskGraph(s.arena)

	writes := make([]fieldHandle, channelCount)
	copy(writes, s.channels[:])
	g.add(task{
		name:   "evolve",
		reads:  []fieldHandle{s.packed},
		writes: writes,
		run: func() error {
			var chans [channelCount]*texField
			for i, h := range s.channels {
				chans[i] = s.arena.get(h)
			}
			evolveSpectrum(s.arena.get(s.packed), chans, &s.params, t)
			return nil
		},
	})
	for i := range s.channels {
		ch := s.channels[i]
		sc := s.scratch[i]
		g.add(task{
			name:   fmt.Sprintf("ifft-%d", i),
			reads:  []fieldHandle{ch},
			writes: []fieldHandle{ch, sc},
			run: func() error {
				if s.gpu != nil {
					return s.gpu.transform(s.arena.get(ch), false)
				}
				return ifft2d(s.arena.get(ch), s.arena.get(sc), s.table, false)
			},
		})
	}
	reads := make([]fieldHandle, 0, channelCount+1)
	reads = append(reads, s.channels[:]...)
	reads = append(reads, s.foamMap)
	g.add(task{
		name:   "composite",
		reads:  reads,
		writes: []fieldHandle{s.displacementMap, s.derivativeMap, s.foamMap},
		run: func() error {
			var chans [channelCount]*texField
			for i, h := range s.channels {
				chans[i] = s.arena.get(h)
			}
			compositeMaps(chans,
				s.arena.get(s.displacementMap),
				s.arena.get(s.derivativeMap),
				s.arena.get(s.foamMap),
				&s.params, dt)
			return nil
		},
	})

	if err := g.execute(); err != nil {
		return err
	}
	s.time = t
	return nil
}

// enableGPU attempts to move the inverse transforms onto an OpenCL device,
// falling back to the CPU path if no device is usable.
func (s *oceanSim) enableGPU() {
	gpu, err := newOpenCLFFT(s.table)
	if err != nil {
		log.Printf("OpenCL unavailable, staying on CPU transforms: %v", err)
		return
	}
	log.Printf("OpenCL transforms enabled (device: %s)", gpu.DeviceName())
	s.gpu = gpu
}

// close releases any device resources held by the simulation.
func (s *oceanSim) close() {
	if s.gpu != nil {
		s.gpu.Close()
		s.gpu = nil
	}
}

// outputs returns the three renderer-facing maps. They are overwritten by
// each step and must not be read concurrently with one.
func (s *oceanSim) outputs() (displacement, derivatives, foam *texField) {
	return s.arena.get(s.displacementMap), s.arena.get(s.derivativeMap), s.arena.get(s.foamMap)
}
