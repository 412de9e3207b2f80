package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"

	"go.jacobcolvin.com/asciivid/render"
)

// Runner executes ffprobe and ffmpeg.
//
// The zero value uses the binaries named "ffmpeg" and "ffprobe" and
// [slog.Default]. Create configured instances with [NewRunner].
type Runner struct {
	Logger  *slog.Logger
	FFmpeg  string
	FFprobe string
}

// NewRunner returns a [Runner] that resolves ffmpeg and ffprobe from PATH.
func NewRunner() *Runner {
	return &Runner{
		FFmpeg:  "ffmpeg",
		FFprobe: "ffprobe",
		Logger:  slog.Default(),
	}
}

// DecodeOptions control [Runner.Decode].
type DecodeOptions struct {
	// Size is the output frame size. Required.
	Size render.Size
	// FPS resamples the video when positive; zero keeps the native rate.
	FPS float64
}

// probeArgs selects the first video stream and prints WIDTHxHEIGHTxRATE.
var probeArgs = []string{
	"-v", "error",
	"-select_streams", "v:0",
	"-show_entries", "stream=width,height,r_frame_rate",
	"-of", "csv=s=x:p=0",
}

// Probe returns the size and frame rate of the first video stream in path.
func (r *Runner) Probe(ctx context.Context, path string) (StreamInfo, error) {
	return r.probe(ctx, append(append([]string{}, probeArgs...), path))
}

// Decode returns every frame of path as concatenated RGB24 bytes scaled to
// opts.Size.
func (r *Runner) Decode(ctx context.Context, path string, opts DecodeOptions) ([]byte, error) {
	args := []string{"-v", "error", "-i", path}
	args = append(args, outputArgs(opts)...)

	return r.run(ctx, r.ffmpeg(), args)
}

// ExtractAudio returns the soundtrack of path encoded as mp3.
func (r *Runner) ExtractAudio(ctx context.Context, path string) ([]byte, error) {
	return r.run(ctx, r.ffmpeg(), []string{"-v", "error", "-i", path, "-vn", "-f", "mp3", "pipe:1"})
}

func (r *Runner) probe(ctx context.Context, args []string) (StreamInfo, error) {
	out, err := r.run(ctx, r.ffprobe(), args)
	if err != nil {
		return StreamInfo{}, err
	}

	info, err := ParseStreamInfo(string(out))
	if err != nil {
		return StreamInfo{}, &ToolError{Tool: r.ffprobe(), Args: args, Err: err}
	}

	r.logger().Debug("probed stream",
		slog.String("size", info.Size.String()),
		slog.String("rate", info.FrameRate.String()),
	)

	return info, nil
}

func (r *Runner) run(ctx context.Context, tool string, args []string) ([]byte, error) {
	bin, err := lookPath(tool)
	if err != nil {
		return nil, &ToolError{Tool: tool, Args: args, Err: err}
	}

	r.logger().Debug("running external tool", slog.String("tool", bin), slog.Any("args", args))

	var stdout, stderr bytes.Buffer

	//nolint:gosec // Paths and sizes come from the local user.
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err != nil {
		if ctx.Err() != nil {
			err = context.Cause(ctx)
		}

		return nil, &ToolError{Tool: tool, Args: args, Stderr: stderr.String(), Err: err}
	}

	return stdout.Bytes(), nil
}

func (r *Runner) ffmpeg() string {
	if r.FFmpeg == "" {
		return "ffmpeg"
	}

	return r.FFmpeg
}

func (r *Runner) ffprobe() string {
	if r.FFprobe == "" {
		return "ffprobe"
	}

	return r.FFprobe
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}

	return r.Logger
}

func lookPath(tool string) (string, error) {
	bin, err := exec.LookPath(tool)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrToolNotFound, err)
	}

	return bin, nil
}

// outputArgs builds the filter and rawvideo output arguments.
func outputArgs(opts DecodeOptions) []string {
	vf := fmt.Sprintf("scale=%d:%d", opts.Size.W, opts.Size.H)
	if opts.FPS > 0 {
		vf = "fps=" + strconv.FormatFloat(opts.FPS, 'f', -1, 64) + "," + vf
	}

	return []string{"-vf", vf, "-pix_fmt", "rgb24", "-f", "rawvideo", "pipe:1"}
}
