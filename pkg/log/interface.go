// Package log provides structured logging for random-feature model operations.
//
// The package defines a minimal, slog-compatible Logger interface so that the
// regression engine can emit structured records without committing callers to
// a particular backend. A slog implementation is the default; a zerolog
// adapter is provided for binaries already configured around zerolog, and a
// buffered test logger captures records for assertions.
//
// Attribute keys for the domain (operation tags, sample counts, batch sizes,
// regularization, decomposition choice) live in attributes.go so call sites
// and tests agree on spelling:
//
//	logger := log.GetLoggerWithName("regression.fit")
//	logger.Info("fit complete",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 1000,
//	    log.FeatureCountKey, 500,
//	)
package log

import (
	"context"
)

// Logger is a structured logger with slog-style variadic key-value fields.
//
// Implementations must accept fields as alternating key-value pairs, keys
// being strings. With returns a derived logger that prepends its fields to
// every record; the receiver is not modified.
type Logger interface {
	// Debug logs detailed diagnostic records, such as per-batch shapes
	// during a fit. Usually disabled outside development.
	Debug(msg string, fields ...any)

	// Info logs general operational records.
	Info(msg string, fields ...any)

	// Warn logs conditions that do not fail the operation but deserve
	// attention, such as an accepted zero regularization or an
	// ill-conditioned solve.
	Warn(msg string, fields ...any)

	// Error logs failure records. When the first field is an error value,
	// implementations may extract stack traces from it.
	Error(msg string, fields ...any)

	// With returns a new Logger carrying the given fields on every record.
	With(fields ...any) Logger

	// Enabled reports whether records at the given level would be emitted.
	// Callers can use it to skip building expensive field values.
	Enabled(ctx context.Context, level Level) bool
}

// Level is a logging level. Values match slog.Level so the two can be
// converted without translation.
type Level int

// Standard levels, numerically compatible with slog.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the conventional upper-case label for the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates configured loggers. It exists so tests and
// embedding applications can inject their own logging setup.
type LoggerProvider interface {
	// GetLogger returns the provider's root logger.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum level for loggers from this provider.
	SetLevel(level Level)
}
