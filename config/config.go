package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/asciivid/render"
)

// Flags holds CLI flag names for rendering configuration, allowing callers
// to customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	NoColor               string
	CharSet               string
	Ramp                  string
	Width                 string
	Height                string
	NoPreserveAspectRatio string
	FPS                   string
	Output                string
	Audio                 string
	Loop                  string
	ConfigFile            string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
		FPS:   render.DefaultSettings().FPS,
	}
}

// Config holds CLI flag values for rendering.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. After parsing, call [Config.ApplyFile] and then
// [Config.Resolve].
type Config struct {
	flags *pflag.FlagSet
	// fileSet records fields assigned from the config file.
	fileSet map[string]bool

	Flags      Flags
	CharSet    string
	Ramp       string
	Output     string
	ConfigFile string
	FPS        float64
	Width      int
	Height     int

	NoColor               bool
	NoPreserveAspectRatio bool
	Audio                 bool
	Loop                  bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		NoColor:               "no-color",
		CharSet:               "char-set",
		Ramp:                  "ramp",
		Width:                 "width",
		Height:                "height",
		NoPreserveAspectRatio: "no-preserve-aspect-ratio",
		FPS:                   "fps",
		Output:                "output-file",
		Audio:                 "audio",
		Loop:                  "loop",
		ConfigFile:            "config",
	}

	return f.NewConfig()
}

// RegisterFlags adds rendering flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	c.flags = flags

	flags.BoolVarP(&c.NoColor, c.Flags.NoColor, "n", false,
		"monochrome output; selects the light ramp unless one is given")
	flags.StringVarP(&c.CharSet, c.Flags.CharSet, "c", "",
		fmt.Sprintf("ramp preset, one of: %s (default medium)", render.PresetNames()))
	flags.StringVar(&c.Ramp, c.Flags.Ramp, "",
		"custom ramp, glyphs ordered from dark to light")
	flags.IntVarP(&c.Width, c.Flags.Width, "W", 0,
		"grid width in pixels, 0 to fit the terminal")
	flags.IntVarP(&c.Height, c.Flags.Height, "H", 0,
		"grid height in pixels, 0 to fit the terminal")
	flags.BoolVarP(&c.NoPreserveAspectRatio, c.Flags.NoPreserveAspectRatio, "p", false,
		"stretch to width x height instead of fitting")
	flags.Float64Var(&c.FPS, c.Flags.FPS, c.FPS,
		"video frame rate; when set, video is resampled to it")
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "",
		"write the rendered image, or a replay script for video, to this file")
	flags.BoolVarP(&c.Audio, c.Flags.Audio, "a", false,
		"play the video's soundtrack alongside it")
	flags.BoolVar(&c.Loop, c.Flags.Loop, false,
		"loop videos in the viewer")
	flags.StringVar(&c.ConfigFile, c.Flags.ConfigFile, "",
		"config file (default $XDG_CONFIG_HOME/"+DefaultFileName+")")
}

// RegisterCompletions registers shell completions for rendering flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	err := cmd.RegisterFlagCompletionFunc(c.Flags.CharSet,
		cobra.FixedCompletions(render.PresetNames(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.CharSet, err)
	}

	for _, name := range []string{c.Flags.Ramp, c.Flags.Width, c.Flags.Height, c.Flags.FPS} {
		err = cmd.RegisterFlagCompletionFunc(name, noFileComp)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", name, err)
		}
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.ConfigFile,
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
		})
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.ConfigFile, err)
	}

	return nil
}

// explicit reports whether the named flag was set on the command line or
// the matching key was set in the config file.
func (c *Config) explicit(name string) bool {
	if c.fileSet[name] {
		return true
	}

	return c.changed(name)
}

// fromFile reports whether the current value of the named option came from
// the config file rather than a flag.
func (c *Config) fromFile(name string) bool {
	return c.fileSet[name] && !c.changed(name)
}

func (c *Config) changed(name string) bool {
	if c.flags == nil {
		return false
	}

	return c.flags.Changed(name)
}
