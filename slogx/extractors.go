package slogx

import (
	"context"
	"log/slog"
	"time"

	slogctx "github.com/veqryn/slog-context"
)

type contextKey int

const indexNameContextKey contextKey = iota

// ContextWithIndexName annotates ctx with the scoped index name an operation targets,
// so that every record logged under that context carries it.
func ContextWithIndexName(ctx context.Context, indexName string) context.Context {
	return context.WithValue(ctx, indexNameContextKey, indexName)
}

// NewIndexNameExtractor returns an extractor appending the scoped index name found in
// the context, if any, under indexFieldKey.
func NewIndexNameExtractor(indexFieldKey string) slogctx.AttrExtractor {
	return NewContextValueExtractor(indexNameContextKey, indexFieldKey)
}

func NewContextValueExtractor(valueContextKey interface{}, fieldKey string) slogctx.AttrExtractor {
	return func(ctx context.Context, recordT time.Time, recordLvl slog.Level, recordMsg string) []slog.Attr {
		defer func() {
			// Nullify panic to prevent having this hook break an operation
			recover()
		}()

		value := ctx.Value(valueContextKey)
		if value == nil {
			return nil
		}
		return []slog.Attr{slog.Any(fieldKey, value)}
	}
}
