// Package main provides the CLI entry point for asciivid, which renders
// images, videos and camera input as colored text in the terminal.
//
// # Usage
//
//	asciivid [flags] image <path>
//	asciivid [flags] video <path>
//	asciivid [flags] webcam [index]
//	asciivid [flags] view <path>
//	asciivid schema
//
// Videos and cameras are decoded by ffmpeg, which must be on PATH. Playback
// aborts when the terminal cannot print frames as fast as the video's frame
// rate requires; lower --width/--height or --fps, or write a replay script
// with -o and run it later.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/asciivid/config"
	"go.jacobcolvin.com/asciivid/ffmpeg"
	"go.jacobcolvin.com/asciivid/log"
	"go.jacobcolvin.com/asciivid/profile"
	"go.jacobcolvin.com/asciivid/version"
)

func main() {
	os.Exit(run())
}

// app carries the parsed configuration shared by every subcommand.
type app struct {
	cfg     *config.Config
	logCfg  *log.Config
	runner  *ffmpeg.Runner
	logger  *slog.Logger
	stdout  io.Writer
	stderr  io.Writer
	termFn  config.TermSizeFunc
	cfgPath string
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		cfg:    config.NewConfig(),
		logCfg: log.NewConfig(),
		runner: ffmpeg.NewRunner(),
		stdout: os.Stdout,
		stderr: os.Stderr,
		termFn: terminalSize,
	}

	profCfg := profile.NewConfig()
	prof := profCfg.NewProfiler()

	rootCmd := a.rootCommand(prof)

	a.cfg.RegisterFlags(rootCmd.PersistentFlags())
	a.logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profCfg.RegisterFlags(rootCmd.PersistentFlags())

	for _, register := range []func(*cobra.Command) error{
		a.cfg.RegisterCompletions,
		a.logCfg.RegisterCompletions,
		profCfg.RegisterCompletions,
	} {
		err := register(rootCmd)
		if err != nil {
			printError(a.stderr, fmt.Errorf("register completions: %w", err))
		}
	}

	err := rootCmd.ExecuteContext(ctx)

	stopErr := prof.Stop()
	if stopErr != nil {
		printWarning(a.stderr, fmt.Sprintf("writing profiles: %v", stopErr))
	}

	if err != nil {
		printError(a.stderr, err)

		return 1
	}

	return 0
}

func (a *app) rootCommand(prof *profile.Profiler) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "asciivid",
		Short: "Render images, videos and cameras as text in the terminal",
		Long: `asciivid renders still images, videos and live camera input as truecolor
or monochrome glyphs. Each pixel becomes two characters chosen from a
brightness ramp. Videos play at their own frame rate, or can be exported to a
bash script that replays them.`,
		Version:       version.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, prof)
		},
	}

	rootCmd.AddCommand(
		a.imageCommand(),
		a.videoCommand(),
		a.webcamCommand(),
		a.viewCommand(),
		a.schemaCommand(),
	)

	return rootCmd
}

// setup installs the logger, loads the config file and starts profiling.
func (a *app) setup(_ *cobra.Command, prof *profile.Profiler) error {
	logger, err := a.logCfg.NewLogger(a.stderr)
	if err != nil {
		return err
	}

	a.logger = logger
	slog.SetDefault(a.logger)
	a.runner.Logger = a.logger

	a.cfgPath, err = a.cfg.ApplyFile()
	if err != nil {
		return err
	}

	if a.cfgPath != "" {
		a.logger.Debug("loaded config file", slog.String("path", a.cfgPath))
	}

	return prof.Start()
}

// resolve validates the configuration for mode and reports a terminal size
// fallback as a warning.
func (a *app) resolve(mode config.Mode) (*config.Resolved, error) {
	r, err := a.cfg.Resolve(mode, a.termFn)
	if err != nil {
		return nil, err
	}

	if r.SizeFallback != nil && mode != config.ModeView {
		printWarning(a.stderr, fmt.Sprintf("cannot read terminal size, using %s: %v",
			r.Settings.Size(), r.SizeFallback))
	}

	for _, key := range r.Ignored {
		a.logger.Debug("ignoring config file key",
			slog.String("key", key),
			slog.String("mode", string(mode)),
			slog.String("path", a.cfgPath))
	}

	return r, nil
}

func terminalSize() (int, int, error) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("stdout is not a terminal: %w", err)
	}

	return cols, rows, nil
}

func printError(w io.Writer, err error) {
	color.New(color.FgRed, color.Bold).Fprint(w, "error: ") //nolint:errcheck // Best effort.
	fmt.Fprintln(w, err)                                    //nolint:errcheck // Best effort.
}

func printWarning(w io.Writer, msg string) {
	color.New(color.FgYellow, color.Bold).Fprint(w, "warning: ") //nolint:errcheck // Best effort.
	fmt.Fprintln(w, msg)                                         //nolint:errcheck // Best effort.
}
