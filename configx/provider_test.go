// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package configx

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/inhies/go-bytesize"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinia/kbx/errorx"
	loggerxtest "github.com/clinia/kbx/loggerx/test"
)

func TestProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("should merge sources in order of precedence", func(t *testing.T) {
		dir := t.TempDir()
		fp := filepath.Join(dir, "kb.yaml")
		require.NoError(t, os.WriteFile(fp, []byte("es:\n  host: http://file:9200\n  username: file-user\n"), 0o600))

		t.Setenv("KB_ES_USERNAME", "env-user")

		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("es.password", "", "engine password")
		require.NoError(t, flags.Parse([]string{"--es.password", "flag-pass"}))

		p, err := New(ctx,
			WithBaseValues(map[string]interface{}{"es.host": "http://base:9200", "es.batch_size": 50}),
			WithConfigFiles(fp),
			WithFlags(flags),
			WithValue("es.connect_timeout", "3s"),
		)
		require.NoError(t, err)

		assert.Equal(t, "http://file:9200", p.String("es.host"))
		assert.Equal(t, "env-user", p.String("es.username"))
		assert.Equal(t, "flag-pass", p.String("es.password"))
		assert.Equal(t, 50, p.Int("es.batch_size"))
		assert.Equal(t, "3s", p.String("es.connect_timeout"))
	})

	t.Run("should split comma separated environment values", func(t *testing.T) {
		t.Setenv("KB_ES_ADDRESSES", "http://a:9200,http://b:9200")

		p, err := New(ctx)
		require.NoError(t, err)

		assert.Equal(t, []string{"http://a:9200", "http://b:9200"}, p.Strings("es.addresses"))
	})

	t.Run("should map multi word environment variables to a single section", func(t *testing.T) {
		t.Setenv("KB_ES_CONNECT_TIMEOUT", "4s")

		p, err := New(ctx)
		require.NoError(t, err)

		assert.Equal(t, "4s", p.String("es.connect_timeout"))
	})

	t.Run("should honor a custom environment prefix", func(t *testing.T) {
		t.Setenv("SEARCH_ES_HOST", "http://custom:9200")

		p, err := New(ctx, WithEnvPrefix("SEARCH_"))
		require.NoError(t, err)

		assert.Equal(t, "http://custom:9200", p.String("es.host"))
	})

	t.Run("should load extra providers between files and environment", func(t *testing.T) {
		t.Setenv("KB_ES_USERNAME", "env-user")

		p, err := New(ctx, WithUserProviders(confmap.Provider(map[string]interface{}{
			"es.host":     "http://provider:9200",
			"es.username": "provider-user",
		}, Delimiter)))
		require.NoError(t, err)

		assert.Equal(t, "http://provider:9200", p.String("es.host"))
		assert.Equal(t, "env-user", p.String("es.username"))
	})

	t.Run("should report loaded files through the logger", func(t *testing.T) {
		dir := t.TempDir()
		fp := filepath.Join(dir, "kb.yaml")
		require.NoError(t, os.WriteFile(fp, []byte("es:\n  host: http://file:9200\n"), 0o600))

		logger, buf := loggerxtest.NewTestLoggerWithJSONBuffer(t)
		_, err := New(ctx, DisableEnvLoading(), WithConfigFiles(fp), WithLogger(logger))
		require.NoError(t, err)

		assert.Contains(t, buf.String(), "loaded configuration file")
		assert.Contains(t, buf.String(), "kb.yaml")
	})

	t.Run("should unmarshal durations and byte sizes", func(t *testing.T) {
		type esConf struct {
			Host           string            `koanf:"host"`
			ConnectTimeout time.Duration     `koanf:"connect_timeout"`
			MaxBatchBytes  bytesize.ByteSize `koanf:"max_batch_bytes"`
		}

		p, err := New(ctx, DisableEnvLoading(), WithValues(map[string]interface{}{
			"es.host":            "http://localhost:9200",
			"es.connect_timeout": "2s",
			"es.max_batch_bytes": "100MB",
		}))
		require.NoError(t, err)

		var conf esConf
		require.NoError(t, p.UnmarshalKey("es", &conf))
		assert.Equal(t, "http://localhost:9200", conf.Host)
		assert.Equal(t, 2*time.Second, conf.ConnectTimeout)
		assert.Equal(t, 100*bytesize.MB, conf.MaxBatchBytes)
	})

	t.Run("should reject unsupported configuration file formats", func(t *testing.T) {
		_, err := New(ctx, WithConfigFiles("config.toml"))
		require.Error(t, err)
		assert.True(t, errorx.IsInvalidArgumentError(err))
	})
}
