package render

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrInvalidSettings indicates a [Settings] value that breaks an invariant.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds rendering parameters.
//
// A Settings value is built once, from [DefaultSettings] plus overrides, and
// is read-only afterwards. Use [Settings.Clone] before handing it to code
// that may outlive the caller's copy; Ramp is a slice and is otherwise shared.
type Settings struct {
	// Ramp is the glyph pool, ordered from dark to light.
	Ramp []rune
	// Width and Height are the target grid size in pixels. Each pixel becomes
	// one glyph cell of two characters.
	Width  int
	Height int
	// FPS is the playback rate for sequences. Single images ignore it.
	FPS float64
	// Color enables truecolor output and the color weighting profile.
	Color bool
	// PreserveAspectRatio selects a uniform fit over a per-axis stretch.
	PreserveAspectRatio bool
}

// DefaultSettings returns color output with the medium ramp, a 30x30 grid,
// aspect ratio preservation, and 30 fps.
func DefaultSettings() Settings {
	return Settings{
		Color:               true,
		Ramp:                MustPreset(PresetMedium),
		Width:               30,
		Height:              30,
		PreserveAspectRatio: true,
		FPS:                 30,
	}
}

// Validate reports whether s satisfies the invariants required by [Render]
// and the playback scheduler.
func (s Settings) Validate() error {
	var errs []error

	if len(s.Ramp) == 0 {
		errs = append(errs, errors.New("ramp must not be empty"))
	}

	if s.Width < 1 {
		errs = append(errs, fmt.Errorf("width must be at least 1, got %d", s.Width))
	}

	if s.Height < 1 {
		errs = append(errs, fmt.Errorf("height must be at least 1, got %d", s.Height))
	}

	if !(s.FPS > 0) || math.IsInf(s.FPS, 0) {
		errs = append(errs, fmt.Errorf("fps must be a positive number, got %v", s.FPS))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, errors.Join(errs...))
	}

	return nil
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	s.Ramp = slices.Clone(s.Ramp)

	return s
}

// Size returns the target grid size.
func (s Settings) Size() Size {
	return Size{W: s.Width, H: s.Height}
}

// WithSize returns a copy of s with the grid size replaced.
func (s Settings) WithSize(size Size) Settings {
	c := s.Clone()
	c.Width = size.W
	c.Height = size.H

	return c
}
