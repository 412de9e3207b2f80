package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.jacobcolvin.com/asciivid/ffmpeg"
	"go.jacobcolvin.com/asciivid/playback"
	"go.jacobcolvin.com/asciivid/render"
)

// Capture is an open camera stream.
type Capture interface {
	playback.Source
	Close() error
}

// CameraDevice probes and opens cameras by index.
type CameraDevice interface {
	ProbeCamera(ctx context.Context, index int) (ffmpeg.StreamInfo, error)
	Open(ctx context.Context, index int, size render.Size) (Capture, error)
}

// FFmpegCameras adapts [ffmpeg.Runner] to [CameraDevice].
type FFmpegCameras struct {
	*ffmpeg.Runner
}

// Open implements [CameraDevice].
func (c FFmpegCameras) Open(ctx context.Context, index int, size render.Size) (Capture, error) {
	cam, err := c.OpenCamera(ctx, index, size)
	if err != nil {
		return nil, err
	}

	return cam, nil
}

// Webcam renders a camera live.
type Webcam struct {
	Device CameraDevice
	Logger *slog.Logger
}

// Stream captures camera index at the target size for s and writes each
// frame to w with [playback.Live] until the capture fails or ctx ends.
func (wc *Webcam) Stream(ctx context.Context, w io.Writer, index int, s render.Settings) error {
	logger := wc.Logger
	if logger == nil {
		logger = slog.Default()
	}

	err := s.Validate()
	if err != nil {
		return err
	}

	info, err := wc.Device.ProbeCamera(ctx, index)
	if err != nil {
		return fmt.Errorf("probing camera %d: %w", index, err)
	}

	target := render.TargetSize(s, info.Size)

	cam, err := wc.Device.Open(ctx, index, target)
	if err != nil {
		return fmt.Errorf("opening camera %d: %w", index, err)
	}
	defer cam.Close() //nolint:errcheck // Close only stops the capture.

	logger.Info("streaming camera",
		slog.Int("index", index),
		slog.String("source", info.Size.String()),
		slog.String("target", target.String()),
	)

	return playback.Live(w, cam, s.WithSize(target))
}
