package main

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"sync"
	"time"
)

// beginPGOCapture records a CPU profile into pgoProfilePath and schedules it
// to stop after pgoRecordDuration, long enough to cover steady-state stepping
// of the pipeline. The returned stop is idempotent so the shutdown path can
// call it even when the timer already fired.
func beginPGOCapture() (func(), error) {
	f, err := os.Create(pgoProfilePath)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("starting CPU profile: %w", err)
	}
	var once sync.Once
	stop := func() {
		once.Do(func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		})
	}
	time.AfterFunc(pgoRecordDuration, stop)
	log.Printf("Recording %s for %s", pgoProfilePath, pgoRecordDuration)
	return stop, nil
}
