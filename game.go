package main

import (
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// View modes cycled with Tab.
const (
	viewHeight = iota
	viewDisplacement
	viewSlope
	viewFoam
	viewModeCount
)

var viewModeNames = [viewModeCount]string{
	viewHeight:       "height",
	viewDisplacement: "displacement",
	viewSlope:        "slope",
	viewFoam:         "foam",
}

const (
	windSpeedStep = 1.0
	windAngleStep = 5.0
	fetchStep     = 10000.0
	minFetch      = 1000.0
)

// Game owns the simulation and the interactive wind controls. The wind keys
// re-derive the spectrum in place; grid size and patch length stay fixed for
// the lifetime of a run.
type Game struct {
	sim *oceanSim

	windSpeed    float64
	windAngleDeg float64
	fetch        float64

	viewMode int
	paused   bool

	lastSimDuration time.Duration

	pix []byte
}

// newGame wraps an initialized simulation with the viewer state.
func newGame(sim *oceanSim, windSpeed, windAngleDeg, fetch float64) *Game {
	n := sim.params.size
	return &Game{
		sim:          sim,
		windSpeed:    windSpeed,
		windAngleDeg: windAngleDeg,
		fetch:        fetch,
		pix:          make([]byte, n*n*4),
	}
}

// Update handles the control keys and advances the surface by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.viewMode = (g.viewMode + 1) % viewModeCount
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	g.handleWindControls()

	if g.paused {
		return nil
	}
	dt := 1.0 / defaultTPS
	if tps := ebiten.ActualTPS(); tps >= 1 {
		dt = 1.0 / tps
	}
	simStart := time.Now()
	if err := g.sim.step(dt); err != nil {
		return err
	}
	g.lastSimDuration = time.Since(simStart)
	return nil
}

// handleWindControls applies discrete wind adjustments. Each change rebuilds
// only the spectrum stages, so it is cheap enough to run on a key press.
func (g *Game) handleWindControls() {
	speed, angle, fetch := g.windSpeed, g.windAngleDeg, g.fetch
	if inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		speed += windSpeedStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) || inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		if speed-windSpeedStep > 0 {
			speed -= windSpeedStep
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) || inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		angle -= windAngleStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) || inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		angle += windAngleStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeftBracket) {
		if fetch-fetchStep >= minFetch {
			fetch -= fetchStep
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRightBracket) {
		fetch += fetchStep
	}
	if speed == g.windSpeed && angle == g.windAngleDeg && fetch == g.fetch {
		return
	}
	if err := g.sim.setWind(speed, angle*math.Pi/180, fetch); err != nil {
		log.Printf("Wind change rejected: %v", err)
		return
	}
	g.windSpeed, g.windAngleDeg, g.fetch = speed, angle, fetch
}
