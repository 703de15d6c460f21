package fixedpool

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with fixedpool-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithBlockSize adds a block_size field to the logger.
func (l *Logger) WithBlockSize(size int) *Logger {
	return &Logger{
		Logger: l.Logger.With("block_size", size),
	}
}

// LogGrow logs a block growth.
func (l *Logger) LogGrow(blocks uint64, blockSize int) {
	l.Debug("block mapped",
		"blocks", blocks,
		"block_size", blockSize,
	)
}

// LogClose logs a pool teardown.
func (l *Logger) LogClose(blocks uint64, err error) {
	if err != nil {
		l.Error("pool close failed",
			"blocks", blocks,
			"error", err,
		)
	} else {
		l.Debug("pool closed",
			"blocks", blocks,
		)
	}
}
