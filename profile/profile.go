package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Profiler runs one profiling session: [Profiler.Start] before the command,
// [Profiler.Stop] after it.
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	cpu   *os.File
	trace *os.File
	Config
}

// Start applies the sampling rate and begins the CPU profile and execution
// trace when enabled. If the trace cannot start, the CPU profile is stopped
// again so no session is left half open.
func (p *Profiler) Start() error {
	if p.MemProfileRate > 0 {
		runtime.MemProfileRate = p.MemProfileRate
	}

	if p.CPUProfile != "" {
		f, err := create("CPU profile", p.CPUProfile)
		if err != nil {
			return err
		}

		err = pprof.StartCPUProfile(f)
		if err != nil {
			must(f.Close())

			return fmt.Errorf("starting CPU profile: %w", err)
		}

		p.cpu = f
	}

	if p.Trace != "" {
		f, err := create("trace", p.Trace)
		if err == nil {
			err = trace.Start(f)
			if err != nil {
				must(f.Close())

				err = fmt.Errorf("starting trace: %w", err)
			}
		}

		if err != nil {
			pprof.StopCPUProfile()
			p.cpu = closeOnce(p.cpu)

			return err
		}

		p.trace = f
	}

	return nil
}

// Stop ends the trace and CPU profile, then writes the snapshot profiles.
// Calling it without a running session only writes the snapshots.
func (p *Profiler) Stop() error {
	var errs []error

	if p.trace != nil {
		trace.Stop()

		errs = append(errs, closeFile("trace", p.trace))
		p.trace = nil
	}

	if p.cpu != nil {
		pprof.StopCPUProfile()

		errs = append(errs, closeFile("CPU profile", p.cpu))
		p.cpu = nil
	}

	for _, s := range p.snapshots() {
		if s.path == "" {
			continue
		}

		errs = append(errs, writeSnapshot(s))
	}

	return errors.Join(errs...)
}

func writeSnapshot(s snapshot) error {
	prof := pprof.Lookup(s.name)
	if prof == nil {
		return fmt.Errorf("unknown profile %q", s.name)
	}

	f, err := create(s.name+" profile", s.path)
	if err != nil {
		return err
	}

	err = prof.WriteTo(f, 0)
	if err != nil {
		must(f.Close())

		return fmt.Errorf("writing %s profile: %w", s.name, err)
	}

	return closeFile(s.name+" profile", f)
}

func create(what, path string) (*os.File, error) {
	f, err := os.Create(path) //nolint:gosec // Path comes from a CLI flag.
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", what, err)
	}

	return f, nil
}

func closeFile(what string, f *os.File) error {
	err := f.Close()
	if err != nil {
		return fmt.Errorf("closing %s: %w", what, err)
	}

	return nil
}

// closeOnce closes f if it is open and returns nil for reassignment.
func closeOnce(f *os.File) *os.File {
	if f != nil {
		must(f.Close())
	}

	return nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
