package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"
)

// DefaultFileName is the config file path relative to the XDG config
// directories.
const DefaultFileName = "asciivid/config.yaml"

// ErrReadConfig indicates a config file that could not be read or parsed.
var ErrReadConfig = errors.New("read config file")

// File is the config file format. Every key is optional; keys mirror the
// long flag names.
type File struct {
	NoColor               *bool    `json:"no-color,omitempty"                 yaml:"no-color"                 jsonschema:"monochrome output"`
	CharSet               *string  `json:"char-set,omitempty"                 yaml:"char-set"                 jsonschema:"ramp preset: light, medium or filled"`
	Ramp                  *string  `json:"ramp,omitempty"                     yaml:"ramp"                     jsonschema:"custom ramp, glyphs ordered from dark to light"`
	Width                 *int     `json:"width,omitempty"                    yaml:"width"                    jsonschema:"grid width in pixels, 0 to fit the terminal"`
	Height                *int     `json:"height,omitempty"                   yaml:"height"                   jsonschema:"grid height in pixels, 0 to fit the terminal"`
	NoPreserveAspectRatio *bool    `json:"no-preserve-aspect-ratio,omitempty" yaml:"no-preserve-aspect-ratio" jsonschema:"stretch instead of fitting"`
	FPS                   *float64 `json:"fps,omitempty"                      yaml:"fps"                      jsonschema:"video frame rate; resamples video when set"`
	Audio                 *bool    `json:"audio,omitempty"                    yaml:"audio"                    jsonschema:"play the video soundtrack"`
	Loop                  *bool    `json:"loop,omitempty"                     yaml:"loop"                     jsonschema:"loop videos in the viewer"`
}

// LoadFile reads and strictly parses the config file at path. Unknown keys
// are errors.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Config path from CLI flag is expected.
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadConfig, err)
	}

	var f File

	err = yaml.UnmarshalWithOptions(data, &f, yaml.DisallowUnknownField())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadConfig, path, err)
	}

	return &f, nil
}

// ApplyFile loads the config file and copies every key it sets into c,
// except where the matching flag was given on the command line. It returns
// the path that was loaded, or "" when no --config was given and no default
// file exists.
func (c *Config) ApplyFile() (string, error) {
	path := c.ConfigFile
	if path == "" {
		found, err := xdg.SearchConfigFile(DefaultFileName)
		if err != nil {
			// No default file.
			return "", nil
		}

		path = found
	}

	f, err := LoadFile(path)
	if err != nil {
		return "", err
	}

	c.apply(f)

	return path, nil
}

func (c *Config) apply(f *File) {
	c.fileSet = map[string]bool{}

	assign(c, &c.NoColor, f.NoColor, c.Flags.NoColor)
	assign(c, &c.CharSet, f.CharSet, c.Flags.CharSet)
	assign(c, &c.Ramp, f.Ramp, c.Flags.Ramp)
	assign(c, &c.Width, f.Width, c.Flags.Width)
	assign(c, &c.Height, f.Height, c.Flags.Height)
	assign(c, &c.NoPreserveAspectRatio, f.NoPreserveAspectRatio, c.Flags.NoPreserveAspectRatio)
	assign(c, &c.FPS, f.FPS, c.Flags.FPS)
	assign(c, &c.Audio, f.Audio, c.Flags.Audio)
	assign(c, &c.Loop, f.Loop, c.Flags.Loop)
}

func assign[T any](c *Config, dst, src *T, name string) {
	if src == nil {
		return
	}

	c.fileSet[name] = true

	if !c.changed(name) {
		*dst = *src
	}
}

// Schema returns the JSON Schema of [File], indented.
func Schema() ([]byte, error) {
	s, err := jsonschema.For[File](nil)
	if err != nil {
		return nil, fmt.Errorf("generating schema: %w", err)
	}

	s.Schema = "https://json-schema.org/draft/2020-12/schema"
	s.Title = "asciivid configuration"
	s.Description = "Defaults for asciivid, overridden by command-line flags."

	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding schema: %w", err)
	}

	return out, nil
}
