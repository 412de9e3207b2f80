package profile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/asciivid/profile"
)

func TestConfigFlags(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		args  []string
		check func(t *testing.T, cfg *profile.Config)
	}{
		"defaults": {
			check: func(t *testing.T, cfg *profile.Config) {
				t.Helper()

				assert.Empty(t, cfg.CPUProfile)
				assert.Empty(t, cfg.Trace)
				assert.Equal(t, 512*1024, cfg.MemProfileRate)
			},
		},
		"paths": {
			args: []string{
				"--cpu-profile=cpu.prof",
				"--heap-profile=heap.prof",
				"--allocs-profile=allocs.prof",
				"--goroutine-profile=goroutine.prof",
				"--trace=trace.out",
			},
			check: func(t *testing.T, cfg *profile.Config) {
				t.Helper()

				assert.Equal(t, "cpu.prof", cfg.CPUProfile)
				assert.Equal(t, "heap.prof", cfg.HeapProfile)
				assert.Equal(t, "allocs.prof", cfg.AllocsProfile)
				assert.Equal(t, "goroutine.prof", cfg.GoroutineProfile)
				assert.Equal(t, "trace.out", cfg.Trace)
			},
		},
		"rate": {
			args: []string{"--mem-profile-rate=4096"},
			check: func(t *testing.T, cfg *profile.Config) {
				t.Helper()

				assert.Equal(t, 4096, cfg.MemProfileRate)
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := profile.NewConfig()
			flags := pflag.NewFlagSet("asciivid", pflag.ContinueOnError)
			cfg.RegisterFlags(flags)

			require.NoError(t, flags.Parse(tc.args))
			tc.check(t, cfg)
		})
	}
}

func TestZeroConfigProfilesNothing(t *testing.T) {
	t.Parallel()

	var cfg profile.Config

	p := cfg.NewProfiler()
	require.NoError(t, p.Stop())
}

func TestRegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()
	cmd := &cobra.Command{Use: "asciivid"}
	cfg.RegisterFlags(cmd.Flags())
	require.NoError(t, cfg.RegisterCompletions(cmd))

	complete, ok := cmd.GetFlagCompletionFunc("mem-profile-rate")
	require.True(t, ok)

	values, directive := complete(cmd, nil, "")
	assert.Empty(t, values)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	_, ok = cmd.GetFlagCompletionFunc("cpu-profile")
	assert.False(t, ok)
}

// Not parallel: CPU profiling and tracing are process-wide.
func TestProfilerStartStop(t *testing.T) {
	dir := t.TempDir()

	cfg := profile.NewConfig()
	cfg.CPUProfile = filepath.Join(dir, "cpu.prof")
	cfg.HeapProfile = filepath.Join(dir, "heap.prof")
	cfg.GoroutineProfile = filepath.Join(dir, "goroutine.prof")
	cfg.Trace = filepath.Join(dir, "trace.out")

	p := cfg.NewProfiler()
	require.NoError(t, p.Start())
	require.NoError(t, p.Stop())

	for _, name := range []string{"cpu.prof", "heap.prof", "goroutine.prof", "trace.out"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}

	// The session is over, so a second Stop only rewrites the snapshots.
	require.NoError(t, p.Stop())
}

// Not parallel: the failed trace must release the process-wide CPU profile.
func TestProfilerStartTraceFailure(t *testing.T) {
	dir := t.TempDir()

	cfg := profile.NewConfig()
	cfg.CPUProfile = filepath.Join(dir, "cpu.prof")
	cfg.Trace = filepath.Join(dir, "missing", "trace.out")

	p := cfg.NewProfiler()
	require.ErrorContains(t, p.Start(), "creating trace")

	// CPU profiling was released, so a fresh session can start.
	cfg.Trace = ""
	again := cfg.NewProfiler()
	require.NoError(t, again.Start())
	require.NoError(t, again.Stop())
}
