package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"go.jacobcolvin.com/asciivid/ffmpeg"
	"go.jacobcolvin.com/asciivid/frames"
	"go.jacobcolvin.com/asciivid/render"
)

// Prober reports the size and frame rate of a video.
type Prober interface {
	Probe(ctx context.Context, path string) (ffmpeg.StreamInfo, error)
}

// Decoder decodes a video into concatenated RGB24 frames.
type Decoder interface {
	Decode(ctx context.Context, path string, opts ffmpeg.DecodeOptions) ([]byte, error)
}

// AudioExtractor returns the soundtrack of a video as an encoded blob.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, path string) ([]byte, error)
}

// LoadOptions control [VideoLoader.Load].
type LoadOptions struct {
	// WithAudio extracts the soundtrack into [Video.Audio].
	WithAudio bool
	// FPSOverride resamples the video to the settings' FPS instead of
	// keeping the probed rate.
	FPSOverride bool
}

// Video is a fully rendered video.
type Video struct {
	Sequence *frames.Sequence
	// Audio is nil unless requested and available.
	Audio  []byte
	Source ffmpeg.StreamInfo
}

// VideoLoader probes, decodes and renders videos.
//
// Create instances backed by ffmpeg with [NewVideoLoader].
type VideoLoader struct {
	Prober  Prober
	Decoder Decoder
	Audio   AudioExtractor
	Logger  *slog.Logger
}

// NewVideoLoader returns a [VideoLoader] that uses r for every step.
func NewVideoLoader(r *ffmpeg.Runner, logger *slog.Logger) *VideoLoader {
	return &VideoLoader{
		Prober:  r,
		Decoder: r,
		Audio:   r,
		Logger:  logger,
	}
}

// Load renders every frame of path with s.
//
// The frame size is derived from the probed size with [render.TargetSize].
// The sequence runs at the probed rate unless opts.FPSOverride is set. A
// failed audio extraction is logged and leaves [Video.Audio] nil.
func (l *VideoLoader) Load(ctx context.Context, path string, s render.Settings, opts LoadOptions) (*Video, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	err := s.Validate()
	if err != nil {
		return nil, err
	}

	info, err := l.Prober.Probe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("probing %s: %w", path, err)
	}

	target := render.TargetSize(s, info.Size)
	decode := ffmpeg.DecodeOptions{Size: target}

	fps := info.FrameRate.Float()
	if opts.FPSOverride {
		fps = s.FPS
		decode.FPS = s.FPS
	}

	logger.Info("decoding video",
		slog.String("path", path),
		slog.String("source", info.Size.String()),
		slog.String("target", target.String()),
		slog.Float64("fps", fps),
	)

	raw, err := l.Decoder.Decode(ctx, path, decode)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	seq, err := frames.NewBuilder(s.WithSize(target)).Raw(raw).FPS(fps).Build()
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", path, err)
	}

	v := &Video{Sequence: seq, Source: info}

	if opts.WithAudio && l.Audio != nil {
		v.Audio, err = l.Audio.ExtractAudio(ctx, path)
		if err != nil {
			logger.Warn("continuing without audio", slog.Any("error", err))

			v.Audio = nil
		}
	}

	logger.Debug("video ready", slog.Int("frames", seq.Len()), slog.Int("audio_bytes", len(v.Audio)))

	return v, nil
}
