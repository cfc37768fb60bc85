package logger

import (
	"log/slog"
	"time"
)

// LogQuery logs database operations
func LogQuery(operation, query string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "db"),
		slog.String("operation", operation),
		slog.String("query", query),
		slog.Duration("took", duration),
	}

	if err != nil {
		slog.Error("Query failed", append(attrs, slog.Any("error", err))...)
	} else {
		slog.Debug("Query executed", attrs...)
	}
}

// LogStorage logs object-storage operations
func LogStorage(operation, key string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "storage"),
		slog.String("operation", operation),
		slog.String("key", key),
		slog.Duration("took", duration),
	}

	if err != nil {
		slog.Error("Storage operation failed", append(attrs, slog.Any("error", err))...)
	} else {
		slog.Debug("Storage operation completed", attrs...)
	}
}

// LogSystem logs system events
func LogSystem(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "sys")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogError logs error events
func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}
