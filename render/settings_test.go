package render_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/asciivid/render"
)

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	s := render.DefaultSettings()

	require.NoError(t, s.Validate())
	assert.True(t, s.Color)
	assert.True(t, s.PreserveAspectRatio)
	assert.Equal(t, render.MustPreset(render.PresetMedium), s.Ramp)
	assert.Equal(t, render.Size{W: 30, H: 30}, s.Size())
	assert.InDelta(t, 30.0, s.FPS, 0)
}

func TestSettingsValidate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		mutate  func(*render.Settings)
		wantErr bool
	}{
		"defaults": {
			mutate: func(*render.Settings) {},
		},
		"empty ramp": {
			mutate:  func(s *render.Settings) { s.Ramp = nil },
			wantErr: true,
		},
		"zero width": {
			mutate:  func(s *render.Settings) { s.Width = 0 },
			wantErr: true,
		},
		"negative height": {
			mutate:  func(s *render.Settings) { s.Height = -3 },
			wantErr: true,
		},
		"zero fps": {
			mutate:  func(s *render.Settings) { s.FPS = 0 },
			wantErr: true,
		},
		"nan fps": {
			mutate:  func(s *render.Settings) { s.FPS = math.NaN() },
			wantErr: true,
		},
		"infinite fps": {
			mutate:  func(s *render.Settings) { s.FPS = math.Inf(1) },
			wantErr: true,
		},
		"fractional fps": {
			mutate: func(s *render.Settings) { s.FPS = 29.97 },
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := render.DefaultSettings()
			tc.mutate(&s)

			err := s.Validate()
			if tc.wantErr {
				require.ErrorIs(t, err, render.ErrInvalidSettings)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSettingsClone(t *testing.T) {
	t.Parallel()

	s := render.DefaultSettings()
	c := s.Clone()
	c.Ramp[0] = 'X'

	assert.NotEqual(t, s.Ramp[0], c.Ramp[0])

	resized := s.WithSize(render.Size{W: 7, H: 9})
	assert.Equal(t, 7, resized.Width)
	assert.Equal(t, 9, resized.Height)
	assert.Equal(t, 30, s.Width)
}

func TestPreset(t *testing.T) {
	t.Parallel()

	for _, name := range render.PresetNames() {
		r, err := render.Preset(name)
		require.NoError(t, err)
		assert.NotEmpty(t, r)
	}

	_, err := render.Preset("neon")
	require.ErrorIs(t, err, render.ErrUnknownPreset)

	a := render.MustPreset(render.PresetLight)
	a[0] = 'Z'
	assert.Equal(t, ' ', render.MustPreset(render.PresetLight)[0])

	assert.Equal(t, []string{"filled", "light", "medium"}, render.PresetNames())
}
