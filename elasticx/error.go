package elasticx

import (
	"context"
	"io"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.opentelemetry.io/otel/attribute"

	"github.com/clinia/kbx/errorx"
	"github.com/clinia/kbx/stringsx"
)

// connectionError translates a transport failure into a connection failure
// carrying the configured host set. Logged at debug since unreachable engines
// are an expected condition for callers probing availability.
func (c *client) connectionError(ctx context.Context, err error) error {
	c.logger.WithError(err).Debug(ctx, "Unable to connect to Elasticsearch",
		attribute.StringSlice("hosts", c.cfg.hosts()),
	)

	return errorx.ConnectionFailuref(c.cfg.hosts(), "unable to connect to Elasticsearch").WithOriginalError(err)
}

// engineError translates an error response into an engine error. The engine
// was reachable but rejected the request, so the status and body are logged
// at error severity and preserved in the payload.
func (c *client) engineError(ctx context.Context, res *esapi.Response) error {
	body := ""
	if res.Body != nil {
		if b, err := io.ReadAll(res.Body); err == nil {
			body = stringsx.SingleLine(string(b))
		}
	}

	c.logger.Error(ctx, "Unexpected error occurred when sending requests to Elasticsearch",
		attribute.Int("status_code", res.StatusCode),
		attribute.String("body", body),
	)

	return errorx.EngineErrorf(res.StatusCode, "unexpected error occurred when sending requests to Elasticsearch: %s", body)
}
