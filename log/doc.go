// Package log is a leveled, structured logger built on [log/slog].
//
// A [Logger] is configured once with functional options and is safe for
// concurrent use. Attributes are always [slog.Attr] values:
//
//	logger := log.Make(os.Stderr, log.WithLevel(log.LevelDebug))
//	logger.Debug("parsed", slog.Int("pos", 12))
//
// # Levels
//
// In addition to the four slog levels there is [LevelTrace], used for
// per-rule grammar tracing. [ParseLevel] and [Level.UnmarshalText] accept
// the level names case-insensitively, so a Level can be bound directly to a
// command-line flag.
//
// # Formats
//
// Output is JSON ([FormatJSON], the default) or key=value text
// ([FormatText]). With [WithPretty] either format is colorized for a
// terminal; JSON becomes an indented object.
//
// # Package logger
//
// The package-level functions ([Info], [Debug], ...) write through a default
// Logger that [Config] reconfigures. Functions without a context argument use
// [DefaultContextProvider].
package log
