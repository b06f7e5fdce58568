package log

import (
	"log/slog"
	"os"
	"strings"
)

// SetupLogger installs a JSON slog handler, wrapped by ErrFmtHandler, as the
// process default. Library records obtained through GetLogger then flow
// through it with stack traces lifted into the stacktrace attribute.
func SetupLogger(level string) {
	opts := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(level),
	}
	handler := slog.NewJSONHandler(os.Stdout, &opts)
	slog.SetDefault(slog.New(WrapByErrFmtHandler(handler)))
}

// ToLogLevel maps a level name to its slog.Level. Unknown names map to Info.
func ToLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Attribute keys shared between ErrFmtHandler and the slog-backed Logger.
const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr wraps an error value for passing as a slog attribute.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
