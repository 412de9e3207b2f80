package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/asciivid/audio"
	"go.jacobcolvin.com/asciivid/config"
	"go.jacobcolvin.com/asciivid/log"
	"go.jacobcolvin.com/asciivid/pipeline"
	"go.jacobcolvin.com/asciivid/playback"
	"go.jacobcolvin.com/asciivid/script"
	"go.jacobcolvin.com/asciivid/tui"
)

func (a *app) imageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "image <path>",
		Short: "Render a still image",
		Long: `Render a still image to the terminal, or with -o write the rendered text
to a file. PNG, JPEG, GIF, BMP, TIFF and WebP are supported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runImage(args[0])
		},
	}
}

func (a *app) runImage(path string) error {
	r, err := a.resolve(config.ModeImage)
	if err != nil {
		return err
	}

	img, err := pipeline.DecodeImage(path)
	if err != nil {
		return err
	}

	out := pipeline.RenderImage(img, r.Settings)

	if r.Output != "" {
		return config.WriteOutput(r.Output, out)
	}

	_, err = fmt.Fprint(a.stdout, out)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrWriteOutput, err)
	}

	return nil
}

func (a *app) videoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "video <path>",
		Short: "Play a video, or export it as a replay script",
		Long: `Decode a video with ffmpeg, render every frame up front and play it at the
video's frame rate (or --fps). With -a the soundtrack plays alongside on a
best-effort basis. With -o a bash script that replays the video is written
instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runVideo(cmd.Context(), args[0])
		},
	}
}

func (a *app) runVideo(ctx context.Context, path string) error {
	r, err := a.resolve(config.ModeVideo)
	if err != nil {
		return err
	}

	loader := pipeline.NewVideoLoader(a.runner, a.logger)

	v, err := loader.Load(ctx, path, r.Settings, pipeline.LoadOptions{
		WithAudio:   r.Audio,
		FPSOverride: r.FPSOverride,
	})
	if err != nil {
		return err
	}

	if r.Output != "" {
		err = script.WriteFile(r.Output, v.Sequence)
		if err != nil {
			return err
		}

		a.logger.Info("wrote replay script",
			slog.String("path", r.Output),
			slog.Int("frames", v.Sequence.Len()),
		)

		return nil
	}

	sched := playback.NewScheduler(a.stdout, playback.WithLogger(a.logger))

	if r.Audio && v.Audio != nil {
		player := audio.NewPlayer(audio.CodecMP3, a.logger)

		return sched.PlayWith(v.Sequence, func() error {
			return player.Play(v.Audio)
		})
	}

	return sched.Play(v.Sequence)
}

func (a *app) webcamCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "webcam [index]",
		Short: "Render a camera live",
		Long: `Capture a camera through ffmpeg and render frames as fast as they arrive,
until interrupted. The camera index defaults to 0.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index := 0

			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 0 {
					return fmt.Errorf("%w: camera index %q", config.ErrInvalidConfiguration, args[0])
				}

				index = n
			}

			return a.runWebcam(cmd.Context(), index)
		},
	}
}

func (a *app) runWebcam(ctx context.Context, index int) error {
	r, err := a.resolve(config.ModeWebcam)
	if err != nil {
		return err
	}

	wc := &pipeline.Webcam{
		Device: pipeline.FFmpegCameras{Runner: a.runner},
		Logger: a.logger,
	}

	err = wc.Stream(ctx, a.stdout, index, r.Settings)
	if err != nil && ctx.Err() != nil {
		// Interrupted by the user.
		return nil
	}

	return err
}

func (a *app) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view <path>",
		Short: "Open an image or video in the full-screen viewer",
		Long: `Show an image or video in a full-screen viewer. Images are re-fitted when
the window is resized unless --width or --height is given. Videos can be
paused with p or space and looped with --loop. Press q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runView(cmd.Context(), args[0])
		},
	}
}

func (a *app) runView(ctx context.Context, path string) error {
	r, err := a.resolve(config.ModeView)
	if err != nil {
		return err
	}

	// Log records go to the status line while the viewer owns the screen.
	pub := log.NewPublisher()
	defer pub.Close() //nolint:errcheck // Close never fails.

	sub := pub.Subscribe()

	logger, err := a.logCfg.NewRecordLogger(pub)
	if err != nil {
		return err
	}

	opts := []tui.Option{
		tui.WithLogs(sub),
		tui.WithLoop(r.Loop),
		tui.WithAutoSize(a.cfg.Width == 0 && a.cfg.Height == 0),
	}

	img, err := pipeline.DecodeImage(path)
	if err == nil {
		return tui.Run(ctx, tui.NewImage(img, r.Settings, opts...))
	}

	// Only an unrecognized format falls through to ffmpeg. A missing or
	// unreadable file is reported as is.
	if !errors.Is(err, image.ErrFormat) {
		return err
	}

	logger.Debug("not an image, decoding as video", slog.Any("reason", err))

	a.runner.Logger = logger
	loader := pipeline.NewVideoLoader(a.runner, logger)

	v, err := loader.Load(ctx, path, r.Settings, pipeline.LoadOptions{FPSOverride: r.FPSOverride})
	if err != nil {
		return err
	}

	return tui.Run(ctx, tui.NewVideo(v.Sequence, opts...))
}

func (a *app) schemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the config file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			out, err := config.Schema()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(a.stdout, string(out))
			if err != nil {
				return fmt.Errorf("%w: %w", config.ErrWriteOutput, err)
			}

			return nil
		},
	}
}
