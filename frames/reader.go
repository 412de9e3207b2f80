package frames

import (
	"errors"
	"fmt"
	"io"

	"go.jacobcolvin.com/asciivid/render"
)

// Reader reads width x height RGB24 grids from a stream.
//
// Create instances with [NewReader].
type Reader struct {
	r      io.Reader
	width  int
	height int
}

// NewReader returns a [Reader] for frames of the given size.
func NewReader(r io.Reader, width, height int) *Reader {
	return &Reader{r: r, width: width, height: height}
}

// Next reads the next frame. It returns [io.EOF] when the stream ends on a
// frame boundary, and an error wrapping [ErrMalformedFrame] when it ends
// partway through a frame. Each call allocates a new grid.
func (fr *Reader) Next() (render.Grid, error) {
	size, err := frameSize(fr.width, fr.height)
	if err != nil {
		return render.Grid{}, err
	}

	buf := make([]byte, size)

	_, err = io.ReadFull(fr.r, buf)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return render.Grid{}, fmt.Errorf("%w: %w", ErrMalformedFrame, err)
	}

	if err != nil {
		return render.Grid{}, err
	}

	return NewGrid(buf, fr.width, fr.height)
}

// Size returns the frame size the reader was created with.
func (fr *Reader) Size() render.Size {
	return render.Size{W: fr.width, H: fr.height}
}
