// Package prof captures optional pprof data for a single lint run.
package prof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Session owns the profilers started for one run. The zero value is inert:
// Stop on it is a no-op, so callers do not have to branch on whether
// profiling was requested.
type Session struct {
	cpu     *os.File
	memPath string
}

// Start enables the profilers selected by the given paths. An empty path
// disables the corresponding profiler.
func Start(cpuPath, memPath string) (*Session, error) {
	s := &Session{memPath: memPath}
	if cpuPath != "" {
		f, err := os.Create(cpuPath)
		if err != nil {
			return nil, fmt.Errorf("create cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("start cpu profile: %w", err)
		}
		s.cpu = f
	}
	return s, nil
}

// Stop finalizes the session: stops the CPU profiler and, if requested,
// snapshots the heap. Safe to call on a nil session and safe to call twice.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	if s.cpu != nil {
		pprof.StopCPUProfile()
		if err := s.cpu.Close(); err != nil {
			return fmt.Errorf("close cpu profile: %w", err)
		}
		s.cpu = nil
	}
	if s.memPath != "" {
		path := s.memPath
		s.memPath = ""
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create heap profile: %w", err)
		}
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("write heap profile: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close heap profile: %w", err)
		}
	}
	return nil
}
