package script_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/asciivid/frames"
	"go.jacobcolvin.com/asciivid/render"
	"go.jacobcolvin.com/asciivid/script"
	"go.jacobcolvin.com/asciivid/stringtest"
)

func sequence(t *testing.T, fps float64, fs ...string) *frames.Sequence {
	t.Helper()

	seq, err := frames.NewBuilder(render.DefaultSettings()).Frames(fs...).FPS(fps).Build()
	require.NoError(t, err)

	return seq
}

func TestExport(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		frames []string
		fps    float64
		want   string
	}{
		"two frames at 2 fps": {
			frames: []string{"F1", "F2"},
			fps:    2,
			want: stringtest.JoinLF(
				"echo -e \"\x1b[2JF1\"",
				"sleep 0.5",
				"echo -e \"\x1b[2JF2\"",
				"sleep 0.5",
				"",
			),
		},
		"25 fps interval": {
			frames: []string{"x"},
			fps:    25,
			want: stringtest.JoinLF(
				"echo -e \"\x1b[2Jx\"",
				"sleep 0.04",
				"",
			),
		},
		"multiline frame with reset": {
			frames: []string{"ab\ncd\n\x1b[0m"},
			fps:    1,
			want: stringtest.JoinLF(
				"echo -e \"\x1b[2Jab",
				"cd",
				"\x1b[0m\"",
				"sleep 1",
				"",
			),
		},
		"shell characters are escaped": {
			frames: []string{"$`\"\\"},
			fps:    4,
			want: stringtest.JoinLF(
				"echo -e \"\x1b[2J\\$\\`\\\"\\\\\\\\\"",
				"sleep 0.25",
				"",
			),
		},
		"empty sequence": {
			fps:  30,
			want: "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			seq := sequence(t, tc.fps, tc.frames...)
			assert.Equal(t, tc.want, script.Export(seq))
			assert.Equal(t, len(tc.frames), seq.Len())
		})
	}
}

func TestInterval(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0.5", script.Interval(2))
	assert.Equal(t, "2", script.Interval(0.5))
	assert.Equal(t, "0.1", script.Interval(10))
	assert.Equal(t, "0.3333333333333333", script.Interval(3))
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteError(t *testing.T) {
	t.Parallel()

	err := script.Write(errWriter{}, sequence(t, 2, "a"))
	require.ErrorIs(t, err, script.ErrWriteOutput)
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.sh")
	seq := sequence(t, 2, "F1", "F2")

	require.NoError(t, os.WriteFile(path, []byte("stale contents that are longer than the script"), 0o644))
	require.NoError(t, script.WriteFile(path, seq))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, script.Export(seq), string(got))

	if runtime.GOOS != "windows" {
		fresh := filepath.Join(t.TempDir(), "fresh.sh")
		require.NoError(t, script.WriteFile(fresh, seq))

		info, err := os.Stat(fresh)
		require.NoError(t, err)
		assert.NotZero(t, info.Mode().Perm()&0o100, "owner execute bit")
	}
}

func TestWriteFileMissingDir(t *testing.T) {
	t.Parallel()

	err := script.WriteFile(filepath.Join(t.TempDir(), "missing", "out.sh"), sequence(t, 2, "a"))
	require.ErrorIs(t, err, script.ErrWriteOutput)
}
