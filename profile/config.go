package profile

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags names the profiling flags.
type Flags struct {
	CPUProfile       string
	HeapProfile      string
	AllocsProfile    string
	GoroutineProfile string
	Trace            string
	MemProfileRate   string
}

// NewConfig returns a [Config] that registers flags under these names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f}
}

// Config selects which profiles to write. An empty path disables the
// corresponding profile, so the zero value profiles nothing.
type Config struct {
	Flags Flags

	CPUProfile       string
	HeapProfile      string
	AllocsProfile    string
	GoroutineProfile string
	// Trace receives a [runtime/trace] execution trace. It shows how long
	// each frame write blocked, which is where a slow terminal shows up.
	Trace string

	// MemProfileRate is copied to [runtime.MemProfileRate] on start when
	// positive.
	MemProfileRate int
}

// NewConfig returns a [Config] with the default flag names and every
// profile disabled.
func NewConfig() *Config {
	return Flags{
		CPUProfile:       "cpu-profile",
		HeapProfile:      "heap-profile",
		AllocsProfile:    "allocs-profile",
		GoroutineProfile: "goroutine-profile",
		Trace:            "trace",
		MemProfileRate:   "mem-profile-rate",
	}.NewConfig()
}

// RegisterFlags adds the profiling flags to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CPUProfile, c.Flags.CPUProfile, "", "write a CPU profile to file")
	flags.StringVar(&c.HeapProfile, c.Flags.HeapProfile, "", "write a heap profile to file on exit")
	flags.StringVar(&c.AllocsProfile, c.Flags.AllocsProfile, "", "write an allocs profile to file on exit")
	flags.StringVar(&c.GoroutineProfile, c.Flags.GoroutineProfile, "", "write a goroutine profile to file on exit")
	flags.StringVar(&c.Trace, c.Flags.Trace, "", "write an execution trace to file")
	flags.IntVar(&c.MemProfileRate, c.Flags.MemProfileRate, 512*1024,
		"bytes allocated per memory profile sample")
}

// RegisterCompletions disables file completion for the numeric flags on cmd.
// Path flags keep cobra's default file completion.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.MemProfileRate, cobra.NoFileCompletions)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.MemProfileRate, err)
	}

	return nil
}

// NewProfiler returns a [Profiler] for a copy of c.
func (c *Config) NewProfiler() *Profiler {
	return &Profiler{Config: *c}
}

// snapshots lists the profiles written once on [Profiler.Stop], keyed by
// their [runtime/pprof] names.
func (c *Config) snapshots() []snapshot {
	return []snapshot{
		{name: "heap", path: c.HeapProfile},
		{name: "allocs", path: c.AllocsProfile},
		{name: "goroutine", path: c.GoroutineProfile},
	}
}

type snapshot struct {
	name string
	path string
}
