package frames

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"

	"go.jacobcolvin.com/asciivid/render"
)

// ErrIncompleteSequence indicates a [Builder] asked to build before it was
// given any frames.
var ErrIncompleteSequence = errors.New("incomplete sequence")

// Sequence is an ordered list of rendered frames and the frame rate they are
// meant to be played at.
//
// Create instances with [Builder.Build].
type Sequence struct {
	frames []string
	fps    float64
}

// Len returns the number of frames not yet drained.
func (s *Sequence) Len() int {
	return len(s.frames)
}

// FPS returns the playback rate.
func (s *Sequence) FPS() float64 {
	return s.fps
}

// Frames iterates over the frames in order without consuming them.
func (s *Sequence) Frames() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, f := range s.frames {
			if !yield(i, f) {
				return
			}
		}
	}
}

// Drain iterates over the frames in order and releases each one once the
// loop body has run for it. After a complete pass the sequence is empty; an
// early break leaves the remaining frames in place.
func (s *Sequence) Drain() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0

		defer func() {
			s.frames = s.frames[i:]
		}()

		for ; i < len(s.frames); i++ {
			f := s.frames[i]
			s.frames[i] = ""

			if !yield(i, f) {
				i++

				return
			}
		}
	}
}

// Builder assembles a [Sequence]. Frames come from exactly one of
// [Builder.Raw], [Builder.Grids], or [Builder.Frames]; the frame rate
// defaults to the settings' FPS.
//
// Create instances with [NewBuilder].
type Builder struct {
	raw      []byte
	grids    []render.Grid
	frames   []string
	settings render.Settings
	fps      float64
	sources  int
}

// NewBuilder returns a [Builder] that renders with a copy of s.
func NewBuilder(s render.Settings) *Builder {
	return &Builder{settings: s.Clone(), fps: s.FPS}
}

// Raw sets the frame source to a raw RGB24 stream whose frames match the
// builder's settings size.
func (b *Builder) Raw(raw []byte) *Builder {
	b.raw = raw
	b.sources++

	return b
}

// Grids sets the frame source to already decoded grids.
func (b *Builder) Grids(grids ...render.Grid) *Builder {
	b.grids = grids
	b.sources++

	return b
}

// Frames sets the frame source to already rendered frames.
func (b *Builder) Frames(frames ...string) *Builder {
	b.frames = frames
	b.sources++

	return b
}

// FPS overrides the playback rate.
func (b *Builder) FPS(fps float64) *Builder {
	b.fps = fps

	return b
}

// Build renders the frame source and returns the finished [Sequence].
func (b *Builder) Build() (*Sequence, error) {
	switch {
	case b.sources == 0:
		return nil, fmt.Errorf("%w: no frame source", ErrIncompleteSequence)
	case b.sources > 1:
		return nil, fmt.Errorf("%w: more than one frame source", ErrIncompleteSequence)
	}

	if !(b.fps > 0) || math.IsInf(b.fps, 0) {
		return nil, fmt.Errorf("%w: fps must be positive, got %v", render.ErrInvalidSettings, b.fps)
	}

	if b.frames != nil {
		return &Sequence{frames: slices.Clone(b.frames), fps: b.fps}, nil
	}

	s := b.settings
	s.FPS = b.fps

	err := s.Validate()
	if err != nil {
		return nil, err
	}

	grids := b.grids
	if b.raw != nil {
		grids, err = Demux(b.raw, s.Width, s.Height)
		if err != nil {
			return nil, err
		}
	}

	out := make([]string, 0, len(grids))
	for _, g := range grids {
		out = append(out, render.Render(g, s))
	}

	return &Sequence{frames: out, fps: b.fps}, nil
}
