package slogx

import "go.opentelemetry.io/otel/attribute"

var redactionText = "**[REDACTED]**"

// ConfigureRedactionText sets the text used in place of secret values in the logs.
// Default is "**[REDACTED]**"
// Note that this will be applied globally to all loggers using slogx.
func ConfigureRedactionText(text string) {
	redactionText = text
}

// Secret returns an attribute whose value is redacted unless empty, for logging
// credentials such as the engine password without leaking them.
func Secret(key, value string) attribute.KeyValue {
	if value == "" {
		return attribute.String(key, "")
	}
	return attribute.String(key, redactionText)
}
