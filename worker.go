package main

import (
	"runtime"
	"sync"
)

// parallelRows splits [0, rows) into per-CPU slabs and runs fn on each slab
// concurrently. Every kernel in the pipeline is data-parallel over grid rows,
// so this is the only dispatch primitive the stages need.
func parallelRows(rows int, fn func(y0, y1 int)) {
	numCPU := runtime.NumCPU()
	if numCPU > rows {
		numCPU = rows
	}
	if numCPU <= 1 {
		fn(0, rows)
		return
	}
	rowsPer := (rows + numCPU - 1) / numCPU
	var wg sync.WaitGroup
	for i := 0; i < numCPU; i++ {
		y0 := i * rowsPer
		if y0 >= rows {
			break
		}
		y1 := y0 + rowsPer
		if y1 > rows {
			y1 = rows
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			fn(y0, y1)
		}(y0, y1)
	}
	wg.Wait()
}
