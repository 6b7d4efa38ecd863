package elasticx

import (
	"encoding/json"

	"github.com/clinia/kbx/loggerx"
)

// ClientOption customizes a Client at construction time.
type ClientOption func(*client)

// WithLogger replaces the client's default logger.
func WithLogger(logger *loggerx.Logger) ClientOption {
	return func(c *client) {
		c.logger = logger
	}
}

// WithTemplate replaces the built-in index template registered before every
// index creation. The body is authored in the modern shape and adapted per
// engine generation at creation time.
func WithTemplate(name string, body json.RawMessage) ClientOption {
	return func(c *client) {
		c.templateName = name
		c.template = body
	}
}
