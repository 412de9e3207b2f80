package frames

import (
	"errors"
	"fmt"
	"math"

	"go.jacobcolvin.com/asciivid/render"
)

// BytesPerPixel is the size of one RGB24 pixel.
const BytesPerPixel = 3

// ErrMalformedFrame indicates bytes that cannot be read as a width x height
// RGB24 grid.
var ErrMalformedFrame = errors.New("malformed frame")

// FrameSize returns the byte length of one width x height RGB24 frame. The
// dimensions are not checked; see [Demux] for the validated form.
func FrameSize(width, height int) int {
	return width * height * BytesPerPixel
}

// frameSize is [FrameSize] for dimensions that must be positive and whose
// frame length must fit in an int.
func frameSize(width, height int) (int, error) {
	if width < 1 || height < 1 {
		return 0, fmt.Errorf("%w: invalid dimensions %dx%d", ErrMalformedFrame, width, height)
	}

	if width > math.MaxInt/height/BytesPerPixel {
		return 0, fmt.Errorf("%w: dimensions %dx%d too large", ErrMalformedFrame, width, height)
	}

	return FrameSize(width, height), nil
}

// Demux splits raw into consecutive width x height grids.
//
// It returns len(raw) / FrameSize(width, height) grids; trailing bytes that
// do not fill a whole frame are dropped. The grids alias raw.
func Demux(raw []byte, width, height int) ([]render.Grid, error) {
	size, err := frameSize(width, height)
	if err != nil {
		return nil, err
	}

	n := len(raw) / size
	grids := make([]render.Grid, 0, n)

	for i := range n {
		g, err := NewGrid(raw[i*size:(i+1)*size:(i+1)*size], width, height)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}

		grids = append(grids, g)
	}

	return grids, nil
}

// NewGrid wraps pix as a width x height grid without copying.
func NewGrid(pix []byte, width, height int) (render.Grid, error) {
	want, err := frameSize(width, height)
	if err != nil {
		return render.Grid{}, err
	}

	if len(pix) != want {
		return render.Grid{}, fmt.Errorf("%w: got %d bytes, want %d for %dx%d",
			ErrMalformedFrame, len(pix), want, width, height)
	}

	return render.Grid{Pix: pix, Width: width, Height: height}, nil
}
