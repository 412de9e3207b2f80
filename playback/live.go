package playback

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.jacobcolvin.com/asciivid/render"
)

// ErrCaptureEnded wraps the error that stopped a [Live] loop.
var ErrCaptureEnded = errors.New("capture ended")

// Source yields pixel grids, such as frames from a camera.
type Source interface {
	Next() (render.Grid, error)
}

// Live renders every grid from src with s and writes it, prefixed with
// [render.ClearScreen], as soon as it arrives. It runs until src fails and
// returns that failure wrapped in [ErrCaptureEnded], or until a write fails.
func Live(w io.Writer, src Source, s render.Settings) error {
	var sb strings.Builder

	for n := 0; ; n++ {
		g, err := src.Next()
		if err != nil {
			return fmt.Errorf("%w after %d frames: %w", ErrCaptureEnded, n, err)
		}

		sb.Reset()
		sb.WriteString(render.ClearScreen)
		render.RenderTo(&sb, g, s)

		_, err = io.WriteString(w, sb.String())
		if err != nil {
			return fmt.Errorf("%w: frame %d: %w", ErrWriteOutput, n, err)
		}
	}
}
