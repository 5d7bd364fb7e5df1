// Package logger provides structured logging for the hook and CLI processes.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cockroachdb/errors"
)

// LogFilePermissions defines the file permissions for log files (owner read/write only).
const LogFilePermissions = 0o600

// Logger provides structured logging interface.
type Logger interface {
	// Debug logs debug-level messages with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs info-level messages with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Error logs error-level messages with optional key-value pairs.
	Error(msg string, keysAndValues ...any)

	// With returns a new logger with additional key-value pairs.
	With(keysAndValues ...any) Logger
}

// SlogAdapter implements Logger on top of log/slog.
type SlogAdapter struct {
	logger  *slog.Logger
	handler *lineHandler
}

// NewFileLogger creates a logger appending to filePath. trace enables
// Debug, debugMode enables Info; Error is always written.
func NewFileLogger(filePath string, debugMode, traceMode bool) (*SlogAdapter, error) {
	//nolint:gosec // path comes from config or the XDG state dir
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermissions)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open log file")
	}

	return NewFileLoggerWithWriter(file, debugMode, traceMode), nil
}

// NewFileLoggerWithWriter creates a logger writing to w.
func NewFileLoggerWithWriter(w io.Writer, debugMode, traceMode bool) *SlogAdapter {
	handler := newLineHandler(w, levelFromFlags(debugMode, traceMode))

	return &SlogAdapter{
		logger:  slog.New(handler),
		handler: handler,
	}
}

func levelFromFlags(debugMode, traceMode bool) slog.Level {
	switch {
	case traceMode:
		return slog.LevelDebug
	case debugMode:
		return slog.LevelInfo
	default:
		return slog.LevelError
	}
}

// Debug logs debug-level messages.
func (l *SlogAdapter) Debug(msg string, keysAndValues ...any) {
	l.log(slog.LevelDebug, msg, keysAndValues...)
}

// Info logs info-level messages.
func (l *SlogAdapter) Info(msg string, keysAndValues ...any) {
	l.log(slog.LevelInfo, msg, keysAndValues...)
}

// Error logs error-level messages.
func (l *SlogAdapter) Error(msg string, keysAndValues ...any) {
	l.log(slog.LevelError, msg, keysAndValues...)
}

// With returns a new logger with additional base key-value pairs.
//
//nolint:ireturn // With is intended to return an interface for chaining
func (l *SlogAdapter) With(keysAndValues ...any) Logger {
	return &SlogAdapter{
		logger:  l.logger.With(keysAndValues...),
		handler: l.handler,
	}
}

// Close closes the underlying log file, if any.
func (l *SlogAdapter) Close() error {
	return l.handler.out.close()
}

func (l *SlogAdapter) log(level slog.Level, msg string, keysAndValues ...any) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, level) {
		return
	}

	r := slog.NewRecord(time.Now(), level, msg, 0)
	r.Add(keysAndValues...)

	_ = l.logger.Handler().Handle(ctx, r)
}

// NoOpLogger is a logger that does nothing.
type NoOpLogger struct{}

// NewNoOpLogger creates a new NoOpLogger.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// Debug does nothing.
func (*NoOpLogger) Debug(string, ...any) {}

// Info does nothing.
func (*NoOpLogger) Info(string, ...any) {}

// Error does nothing.
func (*NoOpLogger) Error(string, ...any) {}

// With returns the same NoOpLogger.
//
//nolint:ireturn // With is intended to return an interface for chaining
func (n *NoOpLogger) With(...any) Logger {
	return n
}
