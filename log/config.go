package log

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags names the log flags. The zero value is not useful; start from
// [NewConfig] or fill in both names.
type Flags struct {
	Level  string
	Format string
}

// NewConfig returns a [Config] that registers flags under these names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f}
}

// Config holds the log level and format chosen on the command line.
//
// Frames and log records share the terminal, so the default level is
// [LevelWarn]: only problems interrupt playback unless the user asks for
// more.
type Config struct {
	Level  string
	Format string
	Flags  Flags
}

// NewConfig returns a [Config] using the --log-level and --log-format flags.
func NewConfig() *Config {
	return Flags{
		Level:  "log-level",
		Format: "log-format",
	}.NewConfig()
}

// RegisterFlags adds the log flags to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, c.Flags.Level, string(LevelWarn),
		fmt.Sprintf("log level, one of: %s", GetAllLevelStrings()))
	flags.StringVar(&c.Format, c.Flags.Format, string(FormatText),
		fmt.Sprintf("log format, one of: %s", GetAllFormatStrings()))
}

// RegisterCompletions completes the log flag values on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	completions := map[string][]string{
		c.Flags.Level:  GetAllLevelStrings(),
		c.Flags.Format: GetAllFormatStrings(),
	}

	for _, name := range []string{c.Flags.Level, c.Flags.Format} {
		err := cmd.RegisterFlagCompletionFunc(name,
			cobra.FixedCompletions(completions[name], cobra.ShellCompDirectiveNoFileComp))
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", name, err)
		}
	}

	return nil
}

// NewHandler returns a [Handler] writing to w at the configured level and
// format.
func (c *Config) NewHandler(w io.Writer) (Handler, error) {
	return NewHandlerFromStrings(w, c.Level, c.Format)
}

// NewLogger returns a logger writing to w at the configured level and
// format.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	h, err := c.NewHandler(w)
	if err != nil {
		return nil, err
	}

	return slog.New(h), nil
}

// NewRecordLogger returns a logger that writes one JSON record per call to
// w at the configured level, ignoring the configured format. It feeds a
// [Publisher] whose subscribers decode the records themselves.
func (c *Config) NewRecordLogger(w io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return slog.New(NewHandler(w, lvl, FormatJSON)), nil
}
