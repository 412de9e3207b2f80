package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/asciivid/render"
)

func settings(color bool, preset string) render.Settings {
	s := render.DefaultSettings()
	s.Color = color
	s.Ramp = render.MustPreset(preset)

	return s
}

func TestEncode(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		settings render.Settings
		want     string
		pixel    render.RGB
	}{
		"mono black picks darkest": {
			settings: settings(false, render.PresetMedium),
			pixel:    render.RGB{R: 0, G: 0, B: 0},
			want:     "..",
		},
		"mono white picks lightest": {
			settings: settings(false, render.PresetMedium),
			pixel:    render.RGB{R: 255, G: 255, B: 255},
			want:     "◍◍",
		},
		"mono mid gray": {
			settings: settings(false, render.PresetMedium),
			pixel:    render.RGB{R: 128, G: 128, B: 128},
			want:     "ee",
		},
		"color white carries escape": {
			settings: settings(true, render.PresetMedium),
			pixel:    render.RGB{R: 255, G: 255, B: 255},
			want:     "\x1b[38;2;255;255;255m◍◍",
		},
		"color black carries escape": {
			settings: settings(true, render.PresetFilled),
			pixel:    render.RGB{R: 0, G: 0, B: 0},
			want:     "\x1b[38;2;0;0;0m░░",
		},
		"color profile weights red higher": {
			settings: settings(true, render.PresetLight),
			pixel:    render.RGB{R: 255, G: 0, B: 0},
			want:     "\x1b[38;2;255;0;0m::",
		},
		"mono profile weights red lower": {
			settings: settings(false, render.PresetLight),
			pixel:    render.RGB{R: 255, G: 0, B: 0},
			want:     "..",
		},
		"single character ramp": {
			settings: func() render.Settings {
				s := settings(false, render.PresetMedium)
				s.Ramp = []rune{'#'}

				return s
			}(),
			pixel: render.RGB{R: 200, G: 10, B: 90},
			want:  "##",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, render.Encode(tc.pixel, tc.settings))
		})
	}
}

func TestEncodeIsPure(t *testing.T) {
	t.Parallel()

	s := settings(true, render.PresetLight)

	for v := range 256 {
		p := render.RGB{R: uint8(v), G: uint8(255 - v), B: uint8(v / 2)}
		first := render.Encode(p, s)

		for range 3 {
			assert.Equal(t, first, render.Encode(p, s))
		}
	}
}

func TestEncodeCoversRamp(t *testing.T) {
	t.Parallel()

	s := settings(false, render.PresetLight)
	seen := map[rune]bool{}

	for v := range 256 {
		cell := []rune(render.Encode(render.RGB{R: uint8(v), G: uint8(v), B: uint8(v)}, s))
		assert.Len(t, cell, 2)
		assert.Equal(t, cell[0], cell[1])

		seen[cell[0]] = true
	}

	for _, r := range s.Ramp {
		assert.True(t, seen[r], "ramp character %q never selected", r)
	}
}

func TestEncodeNormalized(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		settings render.Settings
		want     string
		pixel    render.RGBNorm
	}{
		"mono white": {
			settings: settings(false, render.PresetMedium),
			pixel:    render.RGBNorm{R: 1, G: 1, B: 1},
			want:     "◍◍",
		},
		"mono black": {
			settings: settings(false, render.PresetMedium),
			pixel:    render.RGBNorm{},
			want:     "..",
		},
		"color mid gray scales escape": {
			settings: settings(true, render.PresetMedium),
			pixel:    render.RGBNorm{R: 0.5, G: 0.5, B: 0.5},
			want:     "\x1b[38;2;128;128;128mee",
		},
		"out of range channels clamp": {
			settings: settings(true, render.PresetMedium),
			pixel:    render.RGBNorm{R: 2, G: 2, B: 2},
			want:     "\x1b[38;2;255;255;255m◍◍",
		},
		"negative channels clamp": {
			settings: settings(true, render.PresetMedium),
			pixel:    render.RGBNorm{R: -1, G: -1, B: -1},
			want:     "\x1b[38;2;0;0;0m..",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, render.EncodeNormalized(tc.pixel, tc.settings))
		})
	}
}

func TestTruecolor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "\x1b[38;2;1;22;255m", render.Truecolor(1, 22, 255))
}
