package elasticx

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.opentelemetry.io/otel/attribute"

	"github.com/clinia/kbx/errorx"
	"github.com/clinia/kbx/loggerx"
	"github.com/clinia/kbx/retryx"
	"github.com/clinia/kbx/slogx"
)

type client struct {
	es     *elasticsearch.Client
	cfg    *Config
	logger *loggerx.Logger

	templateName string
	template     json.RawMessage
}

var _ Client = (*client)(nil)

// NewClient creates a new Client based on the given config, waiting for the
// engine to answer a ping within the connect timeout.
func NewClient(ctx context.Context, cfg *Config, opts ...ClientOption) (Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	es, err := elasticsearch.NewClient(cfg.esConfig())
	if err != nil {
		return nil, errorx.InvalidArgumentErrorf("unable to build Elasticsearch client: %s", err)
	}

	c := &client{
		es:           es,
		cfg:          cfg,
		logger:       loggerx.NewLogger(slog.Default().Handler()),
		templateName: defaultTemplateName,
		template:     defaultTemplate,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.ping(ctx); err != nil {
		return nil, err
	}

	c.logger.Debug(ctx, "Connected to Elasticsearch",
		attribute.StringSlice("hosts", cfg.Addresses),
		attribute.String("username", cfg.Username),
		slogx.Secret("password", cfg.Password),
	)

	return c, nil
}

// ping waits for the engine to become reachable.
func (c *client) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.ConnectTimeout)
	defer cancel()

	err := retryx.ExponentialRetry(func() error {
		res, err := esapi.PingRequest{}.Do(ctx, c.es)
		if err != nil {
			return err
		}
		defer res.Body.Close()

		if res.IsError() {
			return errorx.EngineErrorf(res.StatusCode, "engine ping failed: %s", res.Status())
		}

		return nil
	}, retryx.WithMaxElapsedTime(c.cfg.ConnectTimeout))
	if err != nil {
		if kbErr, ok := errorx.IsKnowledgeBaseError(err); ok {
			return *kbErr
		}
		return c.connectionError(ctx, err)
	}

	return nil
}
