package main

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Draw renders the selected output map and the optional debug overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	displacement, derivatives, foam := g.sim.outputs()
	n := displacement.n

	switch g.viewMode {
	case viewHeight:
		for i := 0; i < n*n; i++ {
			v := toneByte(displacement.px[i*4+1], 0.12)
			base := i * 4
			g.pix[base] = v / 3
			g.pix[base+1] = v / 2
			g.pix[base+2] = v
			g.pix[base+3] = 255
		}
	case viewDisplacement:
		for i := 0; i < n*n; i++ {
			base := i * 4
			g.pix[base] = toneByte(displacement.px[base], 0.12)
			g.pix[base+1] = toneByte(displacement.px[base+1], 0.12)
			g.pix[base+2] = toneByte(displacement.px[base+2], 0.12)
			g.pix[base+3] = 255
		}
	case viewSlope:
		for i := 0; i < n*n; i++ {
			base := i * 4
			g.pix[base] = toneByte(derivatives.px[base], 0.5)
			g.pix[base+1] = toneByte(derivatives.px[base+1], 0.5)
			g.pix[base+2] = 128
			g.pix[base+3] = 255
		}
	case viewFoam:
		for i := 0; i < n*n; i++ {
			f := foam.px[i*4]
			if f < 0 {
				f = 0
			} else if f > 1 {
				f = 1
			}
			v := byte(f * 255)
			base := i * 4
			g.pix[base] = v
			g.pix[base+1] = v
			g.pix[base+2] = v
			g.pix[base+3] = 255
		}
	}
	screen.WritePixels(g.pix)

	if *debugFlag {
		fps := ebiten.ActualFPS()
		tps := ebiten.ActualTPS()
		if tps < 0 {
			tps = 0
		}
		simMS := g.lastSimDuration.Seconds() * 1000
		backend := "CPU"
		if g.sim.gpu != nil {
			backend = "OpenCL (" + g.sim.gpu.DeviceName() + ")"
		}
		state := ""
		if g.paused {
			state = " [paused]"
		}
		debugMsg := fmt.Sprintf("FPS: %.1f (%.1f TPS)%s\nView: %s (Tab)\nWind: %.1f m/s @ %.1f deg, fetch %.0f m (WASD, [])\nSim: %.2f ms on %s",
			fps, tps, state, viewModeNames[g.viewMode], g.windSpeed, g.windAngleDeg, g.fetch, simMS, backend)
		ebitenutil.DebugPrint(screen, debugMsg)
	}
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) {
	n := g.sim.params.size
	return n, n
}

// toneByte maps a signed field value to an unsigned byte with a soft knee so
// occasional large excursions do not clip to solid white.
func toneByte(v float32, gain float64) byte {
	t := 0.5 + 0.5*math.Tanh(float64(v)*gain*4)
	return byte(math.Round(t * 255))
}
