package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strconv"
	"sync"

	"go.jacobcolvin.com/asciivid/frames"
	"go.jacobcolvin.com/asciivid/render"
)

// CameraInput returns the ffmpeg input arguments for camera index on goos.
func CameraInput(goos string, index int) []string {
	switch goos {
	case "darwin":
		return []string{"-f", "avfoundation", "-framerate", "30", "-i", strconv.Itoa(index) + ":none"}
	case "windows":
		return []string{"-f", "vfwcap", "-i", strconv.Itoa(index)}
	default:
		return []string{"-f", "v4l2", "-i", "/dev/video" + strconv.Itoa(index)}
	}
}

// ProbeCamera returns the native size and frame rate of camera index.
func (r *Runner) ProbeCamera(ctx context.Context, index int) (StreamInfo, error) {
	args := append(append([]string{}, probeArgs...), CameraInput(runtime.GOOS, index)...)

	return r.probe(ctx, args)
}

// Camera streams RGB24 frames from a running ffmpeg capture.
//
// Create instances with [Runner.OpenCamera].
type Camera struct {
	cmd     *exec.Cmd
	cancel  context.CancelFunc
	reader  *frames.Reader
	stderr  *bytes.Buffer
	waitErr error
	tool    string
	args    []string
	once    sync.Once
}

// OpenCamera starts capturing camera index scaled to size. The capture runs
// until [Camera.Close] is called or ctx is cancelled.
func (r *Runner) OpenCamera(ctx context.Context, index int, size render.Size) (*Camera, error) {
	args := []string{"-v", "error"}
	args = append(args, CameraInput(runtime.GOOS, index)...)
	args = append(args, outputArgs(DecodeOptions{Size: size})...)

	return r.stream(ctx, args, size)
}

func (r *Runner) stream(ctx context.Context, args []string, size render.Size) (*Camera, error) {
	tool := r.ffmpeg()

	bin, err := lookPath(tool)
	if err != nil {
		return nil, &ToolError{Tool: tool, Args: args, Err: err}
	}

	ctx, cancel := context.WithCancel(ctx)

	var stderr bytes.Buffer

	//nolint:gosec // Device index and size come from the local user.
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()

		return nil, fmt.Errorf("creating stdout pipe: %w", err)
	}

	err = cmd.Start()
	if err != nil {
		cancel()

		return nil, &ToolError{Tool: tool, Args: args, Err: err}
	}

	r.logger().Debug("started capture", slog.String("tool", bin), slog.Any("args", args))

	return &Camera{
		cmd:    cmd,
		cancel: cancel,
		reader: frames.NewReader(stdout, size.W, size.H),
		stderr: &stderr,
		tool:   tool,
		args:   args,
	}, nil
}

// Size returns the frame size.
func (c *Camera) Size() render.Size {
	return c.reader.Size()
}

// Next blocks until the next frame is available. When the capture ends it
// returns a [*ToolError] if ffmpeg failed, or else the read error, which is
// [io.EOF] after a clean exit.
func (c *Camera) Next() (render.Grid, error) {
	g, err := c.reader.Next()
	if err == nil {
		return g, nil
	}

	waitErr := c.wait()
	if waitErr != nil {
		return render.Grid{}, &ToolError{Tool: c.tool, Args: c.args, Stderr: c.stderr.String(), Err: waitErr}
	}

	return render.Grid{}, err
}

// Close stops the capture and waits for ffmpeg to exit.
func (c *Camera) Close() error {
	c.cancel()
	// Exit status after cancellation is expected to be non-zero.
	_ = c.wait()

	return nil
}

func (c *Camera) wait() error {
	c.once.Do(func() {
		c.waitErr = c.cmd.Wait()
	})

	return c.waitErr
}
