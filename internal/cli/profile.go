package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"
)

var (
	// MemorySampleRate How often to dump the memory to a file in HZ. Values of less than 1 are recommended to avoid
	// having to sort through too many dump files
	MemorySampleRate = 0.5
)

type profiler struct {
	cpuProfile *os.File

	memDumpDir string
	heapDumps  [][]byte
	stopMemory chan struct{}
	memoryDone chan struct{}
}

// startProfiling starts whichever profilers have a destination, an empty path leaves that profiler off
func startProfiling(cpuProfilePath, memProfileDir string) (*profiler, error) {
	p := &profiler{memDumpDir: memProfileDir}

	if cpuProfilePath != "" {
		cpuProfileFile, err := os.Create(cpuProfilePath)
		if err != nil {
			return nil, fmt.Errorf("error creating cpu profile: %w", err)
		}
		runtime.SetCPUProfileRate(500)
		if err = pprof.StartCPUProfile(cpuProfileFile); err != nil {
			_ = cpuProfileFile.Close()
			return nil, fmt.Errorf("error starting cpu profiler: %w", err)
		}
		p.cpuProfile = cpuProfileFile
	}

	if memProfileDir != "" && MemorySampleRate > 0 {
		p.stopMemory = make(chan struct{})
		p.memoryDone = make(chan struct{})
		go p.sampleMemory()
	}

	return p, nil
}

func (p *profiler) sampleMemory() {
	defer close(p.memoryDone)

	ticker := time.NewTicker(time.Duration((1/MemorySampleRate)*1000) * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-p.stopMemory:
			return
		case <-ticker.C:
			p.dumpHeap()
		}
	}
}

func (p *profiler) dumpHeap() {
	w := bytes.NewBuffer(nil)
	if err := pprof.WriteHeapProfile(w); err == nil {
		p.heapDumps = append(p.heapDumps, w.Bytes())
	}
}

// Stop flushes the cpu profile and writes every heap dump taken so far, calling it again is a no-op
func (p *profiler) Stop() error {
	var errs []error

	if p.cpuProfile != nil {
		pprof.StopCPUProfile()
		errs = append(errs, p.cpuProfile.Close())
		p.cpuProfile = nil
	}

	if p.stopMemory != nil {
		close(p.stopMemory)
		<-p.memoryDone
		p.stopMemory = nil

		p.dumpHeap()
		if err := os.MkdirAll(p.memDumpDir, 0o755); err != nil {
			return errors.Join(append(errs, err)...)
		}
		for dIdx, dump := range p.heapDumps {
			err := os.WriteFile(filepath.Join(p.memDumpDir, fmt.Sprintf("mem-%d.mprof", dIdx)), dump, 0o644)
			if err != nil {
				errs = append(errs, fmt.Errorf("error writing memory profile to disk: %w", err))
			}
		}
		p.heapDumps = nil
	}

	return errors.Join(errs...)
}
