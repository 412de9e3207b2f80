// Package log builds [log/slog] handlers from CLI flags.
//
// Three formats are available: [FormatJSON] and [FormatLogfmt] use the
// standard library handlers, and [FormatText] uses the [charm.land/log/v2]
// pretty printer. Levels are [LevelError], [LevelWarn], [LevelInfo] and
// [LevelDebug].
//
// [Config] registers --log-level and --log-format on a [pflag.FlagSet] and
// their cobra completions:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	handler, err := cfg.NewHandler(os.Stderr)
//	slog.SetDefault(slog.New(handler))
//
// While a full-screen viewer owns the terminal, writing log records to stderr
// would corrupt the picture. A [Publisher] takes their place: it fans each
// record out to subscribers, and the viewer renders the latest one in its
// status line.
//
//	pub := log.NewPublisher()
//	logger := slog.New(log.NewHandler(pub, log.LevelInfo, log.FormatJSON))
//
//	sub := pub.Subscribe()
//	for entry := range sub.C() {
//		// Show entry.
//	}
//
// [pflag.FlagSet]: https://pkg.go.dev/github.com/spf13/pflag#FlagSet
package log
