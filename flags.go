package main

import "flag"

// Command-line flags that control the simulation parameters and optional
// runtime behavior. Values that must stay fixed for the lifetime of a run
// (grid size, patch length) are read once at startup; the wind flags only
// seed the initial state and can be changed live from the viewer.
var (
	// gridSizeFlag selects the simulation resolution; it must be a power of two.
	gridSizeFlag = flag.Int("size", defaultGridSize, "grid resolution per axis (power of two)")

	// lengthScaleFlag sets the physical size in meters covered by the grid.
	lengthScaleFlag = flag.Float64("length-scale", defaultLengthScale, "patch size in meters represented by the grid")

	// windSpeedFlag sets the wind speed in meters per second.
	windSpeedFlag = flag.Float64("wind-speed", defaultWindSpeed, "wind speed in m/s")

	// windAngleFlag sets the wind direction in degrees.
	windAngleFlag = flag.Float64("wind-deg", defaultWindAngleDeg, "wind direction in degrees")

	// fetchFlag sets the fetch distance over which the wind has blown.
	fetchFlag = flag.Float64("fetch", defaultFetch, "wind fetch distance in meters")

	// noiseSeedFlag fixes the Gaussian noise seed; 0 derives one from the clock.
	noiseSeedFlag = flag.Int64("seed", 0, "noise seed (0 = time-based)")

	// useOpenCLFlag routes the inverse transforms through the OpenCL engine
	// when the binary is built with -tags opencl.
	useOpenCLFlag = flag.Bool("opencl", false, "run the inverse FFT on an OpenCL device when available")

	// debugFlag enables the FPS and tick-cost overlay.
	debugFlag = flag.Bool("debug", false, "show FPS, wind, and simulation timing overlay")

	// recordDefaultPGO captures a CPU profile into default.pgo while running.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "capture default.pgo for 15s after startup")
)
