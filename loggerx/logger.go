package loggerx

import (
	"context"
	"log/slog"

	internaltracex "github.com/clinia/kbx/internal/tracex"
	"github.com/clinia/kbx/slogx"
	slogctx "github.com/veqryn/slog-context"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Logger wraps slog.Logger with otel attribute fields and context-driven
// extraction of the index an operation targets.
type Logger struct {
	*slog.Logger
}

// NewLogger returns a Logger emitting through the given handler, with extraction of
// the knowledge base index scope from the context enabled.
func NewLogger(h slog.Handler) *Logger {
	wrapped := slogctx.NewHandler(h, &slogctx.HandlerOptions{
		Appenders: []slogctx.AttrExtractor{
			slogx.NewIndexNameExtractor("index"),
		},
	})
	return &Logger{slog.New(wrapped)}
}

func (l *Logger) WithError(err error) *Logger {
	return &Logger{l.Logger.With(slogx.ErrorAttr(err))}
}

// WithStackTrace annotates the logger with the stack of its caller, rendered
// under the semconv exception.stacktrace key.
func (l *Logger) WithStackTrace() *Logger {
	stackTrace := internaltracex.GetStackTrace(2)
	return l.WithFields(semconv.ExceptionStacktrace(stackTrace))
}

// WithFields returns a logger carrying the given attributes on every record.
// The empty-key group is a workaround until slog grows a WithAttrs method -
// see https://github.com/golang/go/issues/66937#issuecomment-2730350514
func (l *Logger) WithFields(kvs ...attribute.KeyValue) *Logger {
	lfs := slogx.NewLogFields(kvs...)
	return &Logger{l.Logger.With("", slog.GroupValue(lfs...))}
}

func (l *Logger) Panic(ctx context.Context, msg string, kvs ...attribute.KeyValue) *Logger {
	l.Error(ctx, msg, kvs...)
	panic(msg)
}

func (l *Logger) Error(ctx context.Context, msg string, kvs ...attribute.KeyValue) {
	l.log(ctx, slog.LevelError, msg, kvs)
}

func (l *Logger) Warn(ctx context.Context, msg string, kvs ...attribute.KeyValue) {
	l.log(ctx, slog.LevelWarn, msg, kvs)
}

func (l *Logger) Info(ctx context.Context, msg string, kvs ...attribute.KeyValue) {
	l.log(ctx, slog.LevelInfo, msg, kvs)
}

func (l *Logger) Debug(ctx context.Context, msg string, kvs ...attribute.KeyValue) {
	l.log(ctx, slog.LevelDebug, msg, kvs)
}

func (l *Logger) log(ctx context.Context, level slog.Level, msg string, kvs []attribute.KeyValue) {
	l.Logger.LogAttrs(ctx, level, msg, slogx.NewLogFields(kvs...)...)
}
