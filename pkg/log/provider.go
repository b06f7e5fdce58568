// Package log provides the default logger registry.
//
// This file contains the package-level logger used throughout the library.
// By default log records are forwarded to the process-wide slog default
// logger, so applications that configure slog (for example via SetupLogger)
// automatically receive library logs. SetLogger swaps in any other Logger
// implementation, including the zerolog adapter or a TestLogger.

package log

import (
	"context"
	"log/slog"
	"sync"
)

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger = &slogLogger{}
)

// GetLogger returns the library-wide default logger.
//
// Unless overridden with SetLogger, the returned logger forwards records to
// slog.Default() at emit time, so later slog reconfiguration is picked up
// without re-fetching the logger.
func GetLogger() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// GetLoggerWithName returns the default logger with a component identifier
// pre-populated. This is the conventional entry point for package-internal
// logging:
//
//	logger := log.GetLoggerWithName("regression.fit")
//	logger.Info("accumulation complete", log.SamplesKey, n)
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

// SetLogger replaces the library-wide default logger.
// Passing nil restores the slog-backed default.
func SetLogger(logger Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if logger == nil {
		logger = &slogLogger{}
	}
	defaultLogger = logger
}

// slogLogger adapts log/slog to the Logger interface.
// A nil inner logger means "resolve slog.Default() at emit time".
type slogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps an existing *slog.Logger as a Logger.
func NewSlogLogger(logger *slog.Logger) Logger {
	return &slogLogger{logger: logger}
}

func (s *slogLogger) base() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// Debug implements Logger.Debug.
func (s *slogLogger) Debug(msg string, fields ...any) {
	s.base().Debug(msg, fields...)
}

// Info implements Logger.Info.
func (s *slogLogger) Info(msg string, fields ...any) {
	s.base().Info(msg, fields...)
}

// Warn implements Logger.Warn.
func (s *slogLogger) Warn(msg string, fields ...any) {
	s.base().Warn(msg, fields...)
}

// Error implements Logger.Error.
func (s *slogLogger) Error(msg string, fields ...any) {
	s.base().Error(msg, fields...)
}

// With implements Logger.With.
func (s *slogLogger) With(fields ...any) Logger {
	return &slogLogger{logger: s.base().With(fields...)}
}

// Enabled implements Logger.Enabled.
func (s *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.base().Enabled(ctx, slog.Level(level))
}
