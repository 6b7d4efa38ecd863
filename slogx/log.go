package slogx

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
)

// The package-level helpers below log through slog.Default. They exist for
// code that runs before a loggerx.Logger has been constructed, configuration
// loading in particular.

func Error(ctx context.Context, msg string, err error, kvs ...attribute.KeyValue) {
	logAttrs(ctx, slog.LevelError, msg, append(NewLogFields(kvs...), ErrorAttr(err)))
}

func Warn(ctx context.Context, msg string, kvs ...attribute.KeyValue) {
	logAttrs(ctx, slog.LevelWarn, msg, NewLogFields(kvs...))
}

func Info(ctx context.Context, msg string, kvs ...attribute.KeyValue) {
	logAttrs(ctx, slog.LevelInfo, msg, NewLogFields(kvs...))
}

func Debug(ctx context.Context, msg string, kvs ...attribute.KeyValue) {
	logAttrs(ctx, slog.LevelDebug, msg, NewLogFields(kvs...))
}

func logAttrs(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	slog.Default().LogAttrs(ctx, level, msg, attrs...)
}
