// Package log provides a structured logging interface for logreg's machine
// learning operations.
//
// The package defines a minimal, slog-compatible logging interface backed by
// zerolog, with ML-specific structured attributes (operation types, data
// shapes, training metrics). Loggers support contextual field chaining via
// With and level-based filtering.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("linear").With(
//	    log.ModelNameKey, "LogisticRegression",
//	)
//	logger.Info("Training started",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 1000,
//	    log.FeaturesKey, 5,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// The interface is implementation-agnostic. It supports method chaining
// through With, allowing creation of contextual loggers with pre-populated
// fields.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields,
	// given as key-value pairs.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// If a field value is an error, it is rendered with its message and,
	// where available, stack trace information.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated in all
	// subsequent log messages.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given
	// level. Useful to avoid building expensive fields for suppressed logs.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
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

// LoggerProvider defines an interface for creating and configuring loggers.
// It allows dependency injection and testing with different implementations.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger with a specific component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for loggers from this provider.
	SetLevel(level Level)
}
