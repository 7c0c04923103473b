package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flag.Parse()

	p := defaultParams()
	sim, err := newOceanSim(p)
	if err != nil {
		log.Fatalf("Simulation setup failed: %v", err)
	}
	defer sim.close()
	if *useOpenCLFlag {
		sim.enableGPU()
	}

	if *recordDefaultPGO {
		stop, err := beginPGOCapture()
		if err != nil {
			log.Fatalf("PGO recording failed: %v", err)
		}
		defer stop()
	}

	g := newGame(sim, *windSpeedFlag, *windAngleFlag, *fetchFlag)
	ebiten.SetWindowSize(p.size*windowScale, p.size*windowScale)
	ebiten.SetWindowTitle("Spectral Ocean Surface")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("Viewer exited with error: %v", err)
	}
}
