// Package profile writes pprof profiles and an execution trace for one CLI
// run.
//
// The trace is the one to reach for when playback aborts because the
// terminal is too slow: it shows how long each frame write blocked. The heap,
// allocs and goroutine profiles are snapshots taken when the command ends.
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	p := cfg.NewProfiler()
//
//	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
//	    return p.Start()
//	}
//
//	err := rootCmd.ExecuteContext(ctx)
//	stopErr := p.Stop()
package profile
