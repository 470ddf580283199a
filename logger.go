package maldata

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with maldata-specific context.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithPartition adds a label-partition field ("benign"/"malware") to the
// logger.
func (l *Logger) WithPartition(partition string) *Logger {
	return &Logger{
		Logger: l.Logger.With("partition", partition),
	}
}

// LogDataset logs the composition of an assembled dataset.
func (l *Logger) LogDataset(ctx context.Context, benign, malware int) {
	l.DebugContext(ctx, "dataset assembled",
		"benign", benign,
		"malware", malware,
		"total", benign+malware,
	)
}

// LogSplit logs the sizes of a computed split.
func (l *Logger) LogSplit(ctx context.Context, train, val, test int) {
	l.DebugContext(ctx, "split computed",
		"train", train,
		"val", val,
		"test", test,
	)
}
