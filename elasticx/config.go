package elasticx

import (
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/inhies/go-bytesize"
	"github.com/samber/lo"

	"github.com/clinia/kbx/configx"
	"github.com/clinia/kbx/errorx"
)

// ConfigKey is the configuration subtree the engine settings live under, so
// e.g. the KB_ES_HOST environment variable maps onto Config.Host.
const ConfigKey = "es"

const (
	DefaultConnectTimeout = 10 * time.Second
	DefaultHealthTimeout  = 2 * time.Second
	DefaultBatchSize      = 50
	DefaultMaxBatchBytes  = 100 * bytesize.MB
)

// Config carries the engine connection and bulk-load settings. Zero values
// fall back to the defaults above.
type Config struct {
	// Host is a convenience for the single-address case and is merged into
	// Addresses.
	Host      string   `koanf:"host"`
	Addresses []string `koanf:"addresses"`
	Username  string   `koanf:"username"`
	Password  string   `koanf:"password"`

	// ConnectTimeout bounds the bootstrap ping performed by NewClient.
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
	// HealthTimeout bounds the cluster-health probe performed before every
	// existence check.
	HealthTimeout time.Duration `koanf:"health_timeout"`

	// BatchSize is the maximum number of documents per bulk batch.
	BatchSize int `koanf:"batch_size"`
	// MaxBatchBytes caps the NDJSON body of a bulk batch. A batch flushes when
	// either limit is reached.
	MaxBatchBytes bytesize.ByteSize `koanf:"max_batch_bytes"`

	// Transport overrides the HTTP round tripper, primarily for tests.
	Transport http.RoundTripper `koanf:"-"`
}

// NewConfigFromProvider unmarshals the "es" configuration subtree.
func NewConfigFromProvider(p *configx.Provider) (*Config, error) {
	cfg := &Config{}
	if err := p.UnmarshalKey(ConfigKey, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize merges Host into Addresses and applies defaults in place.
func (c *Config) normalize() {
	if c.Host != "" && !lo.Contains(c.Addresses, c.Host) {
		c.Addresses = append([]string{c.Host}, c.Addresses...)
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.HealthTimeout <= 0 {
		c.HealthTimeout = DefaultHealthTimeout
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.MaxBatchBytes == 0 {
		c.MaxBatchBytes = DefaultMaxBatchBytes
	}
}

func (c *Config) validate() error {
	if len(c.Addresses) == 0 {
		return errorx.InvalidArgumentErrorf("at least one Elasticsearch address is required")
	}
	return nil
}

// hosts returns the configured address set for connection-failure payloads.
func (c *Config) hosts() []string {
	return c.Addresses
}

func (c *Config) esConfig() elasticsearch.Config {
	return elasticsearch.Config{
		Addresses: c.Addresses,
		Username:  c.Username,
		Password:  c.Password,
		Transport: c.Transport,
	}
}
