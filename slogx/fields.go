package slogx

import (
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
)

func NewLogFields(kvs ...attribute.KeyValue) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(kvs))
	for _, kv := range kvs {
		attrs = append(attrs, newLogField(kv))
	}
	return attrs
}

func newLogField(kv attribute.KeyValue) slog.Attr {
	switch kv.Value.Type() {
	case attribute.BOOL:
		return slog.Bool(string(kv.Key), kv.Value.AsBool())
	case attribute.INT64:
		return slog.Int64(string(kv.Key), kv.Value.AsInt64())
	case attribute.FLOAT64:
		return slog.Float64(string(kv.Key), kv.Value.AsFloat64())
	case attribute.STRING:
		return slog.String(string(kv.Key), kv.Value.AsString())
	default:
		return slog.Any(string(kv.Key), kv.Value.AsInterface())
	}
}

func ErrorAttr(err error) slog.Attr {
	return slog.Any("error", err)
}
