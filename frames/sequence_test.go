package frames_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/asciivid/frames"
	"go.jacobcolvin.com/asciivid/render"
)

func collect(seq *frames.Sequence) []string {
	var out []string
	for _, f := range seq.Frames() {
		out = append(out, f)
	}

	return out
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	s := monoSettings(2, 1)
	white := solid(2, 1, render.RGB{R: 255, G: 255, B: 255})
	black := solid(2, 1, render.RGB{})

	tcs := map[string]struct {
		build   func() (*frames.Sequence, error)
		want    []string
		wantFPS float64
		wantErr error
	}{
		"raw stream": {
			build: func() (*frames.Sequence, error) {
				return frames.NewBuilder(s).Raw(append(append([]byte{}, white...), black...)).FPS(12).Build()
			},
			want:    []string{"◍◍\n\x1b[0m", "..\n\x1b[0m"},
			wantFPS: 12,
		},
		"grids": {
			build: func() (*frames.Sequence, error) {
				g, err := frames.NewGrid(black, 2, 1)
				require.NoError(t, err)

				return frames.NewBuilder(s).Grids(g).Build()
			},
			want:    []string{"..\n\x1b[0m"},
			wantFPS: 30,
		},
		"prerendered frames": {
			build: func() (*frames.Sequence, error) {
				return frames.NewBuilder(s).Frames("a", "b").FPS(2).Build()
			},
			want:    []string{"a", "b"},
			wantFPS: 2,
		},
		"no source": {
			build: func() (*frames.Sequence, error) {
				return frames.NewBuilder(s).FPS(2).Build()
			},
			wantErr: frames.ErrIncompleteSequence,
		},
		"two sources": {
			build: func() (*frames.Sequence, error) {
				return frames.NewBuilder(s).Frames("a").Raw(white).Build()
			},
			wantErr: frames.ErrIncompleteSequence,
		},
		"zero fps": {
			build: func() (*frames.Sequence, error) {
				return frames.NewBuilder(s).Frames("a").FPS(0).Build()
			},
			wantErr: render.ErrInvalidSettings,
		},
		"invalid dimensions": {
			build: func() (*frames.Sequence, error) {
				bad := s
				bad.Width = 0

				return frames.NewBuilder(bad).Raw(white).Build()
			},
			wantErr: render.ErrInvalidSettings,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			seq, err := tc.build()
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, collect(seq))
			assert.InDelta(t, tc.wantFPS, seq.FPS(), 1e-9)
			assert.Equal(t, len(tc.want), seq.Len())
		})
	}
}

func TestBuilderCopiesFrames(t *testing.T) {
	t.Parallel()

	in := []string{"a", "b"}

	seq, err := frames.NewBuilder(render.DefaultSettings()).Frames(in...).Build()
	require.NoError(t, err)

	in[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, collect(seq))
}

func TestSequenceDrain(t *testing.T) {
	t.Parallel()

	t.Run("full pass empties the sequence", func(t *testing.T) {
		t.Parallel()

		seq, err := frames.NewBuilder(render.DefaultSettings()).Frames("a", "b", "c").Build()
		require.NoError(t, err)

		var got []string
		for _, f := range seq.Drain() {
			got = append(got, f)
		}

		assert.Equal(t, []string{"a", "b", "c"}, got)
		assert.Zero(t, seq.Len())
		assert.Empty(t, collect(seq))
	})

	t.Run("break keeps the rest", func(t *testing.T) {
		t.Parallel()

		seq, err := frames.NewBuilder(render.DefaultSettings()).Frames("a", "b", "c").Build()
		require.NoError(t, err)

		for _, f := range seq.Drain() {
			if f == "b" {
				break
			}
		}

		assert.Equal(t, []string{"c"}, collect(seq))
	})
}

func TestBuilderDropsTrailingBytes(t *testing.T) {
	t.Parallel()

	s := monoSettings(2, 2)

	seq, err := frames.NewBuilder(s).Raw(bytes.Repeat([]byte{1}, 13)).Build()
	require.NoError(t, err)
	assert.Equal(t, 1, seq.Len())
}
