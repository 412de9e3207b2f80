package render

import (
	"errors"
	"fmt"
	"slices"
)

// Preset names accepted by [Preset].
const (
	PresetLight  = "light"
	PresetMedium = "medium"
	PresetFilled = "filled"
)

// ErrUnknownPreset indicates an unrecognized ramp preset name.
var ErrUnknownPreset = errors.New("unknown ramp preset")

// Preset returns a fresh copy of the named character ramp, ordered from dark
// to light.
func Preset(name string) ([]rune, error) {
	switch name {
	case PresetLight:
		return []rune{' ', ' ', '.', ':', '!', '+', '*', 'e', '$', '@', '8'}, nil
	case PresetMedium:
		return []rune{'.', '*', 'e', 's', '◍'}, nil
	case PresetFilled:
		return []rune{'░', '▒', '▓', '█'}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// PresetNames returns all preset names in sorted order.
func PresetNames() []string {
	names := []string{PresetLight, PresetMedium, PresetFilled}
	slices.Sort(names)

	return names
}

// MustPreset is like [Preset] but panics on an unknown name. It is meant for
// package-level defaults built from the Preset* constants.
func MustPreset(name string) []rune {
	r, err := Preset(name)
	if err != nil {
		panic(err)
	}

	return r
}
