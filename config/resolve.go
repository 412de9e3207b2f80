package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"go.jacobcolvin.com/asciivid/render"
)

var (
	// ErrInvalidConfiguration indicates conflicting or out-of-range options.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrWriteOutput indicates the output file could not be written.
	ErrWriteOutput = errors.New("write output file")
)

// Mode is the command being configured.
type Mode string

// Modes.
const (
	ModeImage  Mode = "image"
	ModeVideo  Mode = "video"
	ModeWebcam Mode = "webcam"
	ModeView   Mode = "view"
)

// TermSizeFunc reports the terminal size in character cells.
type TermSizeFunc func() (cols, rows int, err error)

// Resolved is the validated configuration for one run.
type Resolved struct {
	// SizeFallback is the error that prevented sizing to the terminal, in
	// which case the default size was used. Nil otherwise.
	SizeFallback error
	Output       string
	Settings     render.Settings
	Audio        bool
	Loop         bool
	// FPSOverride is set when the frame rate was chosen by the user rather
	// than left at its default.
	FPSOverride bool
	// Ignored names the config file keys that were dropped, either because a
	// flag selected a conflicting option or because the mode cannot use them.
	Ignored []string
}

// layers holds the options Resolve acts on once config file values that
// give way to flags, or do not apply to the mode, have been dropped.
type layers struct {
	charSet    string
	ramp       string
	ignored    []string
	customRamp bool
	audio      bool
}

// settle drops config file values that conflict with flags or with mode.
// Options set in the same layer still conflict and are left for validate.
func (c *Config) settle(mode Mode) layers {
	l := layers{
		charSet:    c.CharSet,
		ramp:       c.Ramp,
		customRamp: c.Ramp != "" || c.explicit(c.Flags.Ramp),
		audio:      c.Audio,
	}

	if l.charSet != "" && l.customRamp {
		switch {
		case c.fromFile(c.Flags.CharSet) && !c.fromFile(c.Flags.Ramp):
			l.charSet = ""
			l.ignored = append(l.ignored, c.Flags.CharSet)
		case c.fromFile(c.Flags.Ramp) && !c.fromFile(c.Flags.CharSet):
			l.ramp, l.customRamp = "", false
			l.ignored = append(l.ignored, c.Flags.Ramp)
		}
	}

	if l.audio && c.fromFile(c.Flags.Audio) && (mode != ModeVideo || c.Output != "") {
		l.audio = false
		l.ignored = append(l.ignored, c.Flags.Audio)
	}

	return l
}

// Resolve validates c for mode and builds the render settings. termSize is
// consulted only when width or height is zero; it may be nil.
func (c *Config) Resolve(mode Mode, termSize TermSizeFunc) (*Resolved, error) {
	l := c.settle(mode)

	err := c.validate(mode, l)
	if err != nil {
		return nil, err
	}

	ramp, err := c.ramp(l)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	s := render.DefaultSettings()
	s.Color = !c.NoColor
	s.Ramp = ramp
	s.PreserveAspectRatio = !c.NoPreserveAspectRatio
	s.FPS = c.FPS

	r := &Resolved{
		Output:      c.Output,
		Audio:       l.audio,
		Loop:        c.Loop,
		FPSOverride: c.explicit(c.Flags.FPS),
		Ignored:     l.ignored,
	}

	if c.Width == 0 || c.Height == 0 {
		cols, rows, sizeErr := termSizeOf(termSize)
		if sizeErr != nil {
			r.SizeFallback = sizeErr
		} else {
			s.Width = max(1, cols/2)
			s.Height = max(1, rows-1)
		}
	}

	if c.Width > 0 {
		s.Width = c.Width
	}

	if c.Height > 0 {
		s.Height = c.Height
	}

	err = s.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	r.Settings = s

	return r, nil
}

func termSizeOf(fn TermSizeFunc) (int, int, error) {
	if fn == nil {
		return 0, 0, errors.New("terminal size unavailable")
	}

	cols, rows, err := fn()
	if err != nil {
		return 0, 0, err
	}

	if cols < 1 || rows < 1 {
		return 0, 0, fmt.Errorf("terminal reported %dx%d", cols, rows)
	}

	return cols, rows, nil
}

func (c *Config) validate(mode Mode, l layers) error {
	var errs []error

	switch mode {
	case ModeImage, ModeVideo, ModeWebcam, ModeView:
	default:
		errs = append(errs, fmt.Errorf("unknown mode %q", mode))
	}

	if c.Output != "" && l.audio {
		errs = append(errs, fmt.Errorf("--%s cannot be combined with --%s", c.Flags.Output, c.Flags.Audio))
	}

	if l.audio && mode != ModeVideo {
		errs = append(errs, fmt.Errorf("--%s only applies to video, not %s", c.Flags.Audio, mode))
	}

	if c.Output != "" && (mode == ModeWebcam || mode == ModeView) {
		errs = append(errs, fmt.Errorf("--%s is not supported by %s", c.Flags.Output, mode))
	}

	if l.charSet != "" && l.customRamp {
		errs = append(errs, fmt.Errorf("--%s and --%s are mutually exclusive", c.Flags.CharSet, c.Flags.Ramp))
	}

	if c.Width < 0 {
		errs = append(errs, fmt.Errorf("--%s must not be negative, got %d", c.Flags.Width, c.Width))
	}

	if c.Height < 0 {
		errs = append(errs, fmt.Errorf("--%s must not be negative, got %d", c.Flags.Height, c.Height))
	}

	if !(c.FPS > 0) || math.IsInf(c.FPS, 0) {
		errs = append(errs, fmt.Errorf("--%s must be a positive number, got %v", c.Flags.FPS, c.FPS))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, errors.Join(errs...))
	}

	return nil
}

// ramp picks the custom ramp, then the named preset, then light for
// monochrome or medium for color.
func (c *Config) ramp(l layers) ([]rune, error) {
	switch {
	case l.customRamp:
		if l.ramp == "" {
			return nil, fmt.Errorf("--%s must not be empty", c.Flags.Ramp)
		}

		return []rune(l.ramp), nil
	case l.charSet != "":
		return render.Preset(l.charSet)
	case c.NoColor:
		return render.Preset(render.PresetLight)
	}

	return render.Preset(render.PresetMedium)
}

// WriteOutput writes content to path, replacing any existing file.
func WriteOutput(path, content string) error {
	err := os.WriteFile(path, []byte(content), 0o644) //nolint:gosec // Rendered text is not secret.
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}
