// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package configx

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel/attribute"

	"github.com/clinia/kbx/errorx"
	"github.com/clinia/kbx/loggerx"
	"github.com/clinia/kbx/slogx"
)

const (
	Delimiter        = "."
	DefaultEnvPrefix = "KB_"
)

type tuple struct {
	Key   string
	Value interface{}
}

// Provider loads and merges configuration from defaults, files, extra koanf
// providers, environment variables, command line flags and overrides, in that
// order of precedence.
type Provider struct {
	*koanf.Koanf

	files             []string
	flags             *pflag.FlagSet
	logger            *loggerx.Logger
	envPrefix         string
	disableEnvLoading bool
	defaults          []tuple
	overrides         []tuple
	extraProviders    []koanf.Provider
}

func New(ctx context.Context, opts ...OptionModifier) (*Provider, error) {
	p := &Provider{
		Koanf:     koanf.New(Delimiter),
		envPrefix: DefaultEnvPrefix,
	}

	for _, opt := range opts {
		opt(p)
	}

	if err := p.load(ctx); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Provider) load(ctx context.Context) error {
	if len(p.defaults) > 0 {
		if err := p.Koanf.Load(confmap.Provider(tuplesToMap(p.defaults), Delimiter), nil); err != nil {
			return errors.WithStack(err)
		}
	}

	for _, fp := range p.files {
		parser, err := parserForFile(fp)
		if err != nil {
			return err
		}
		if err := p.Koanf.Load(file.Provider(fp), parser); err != nil {
			return errors.Wrapf(err, "unable to load configuration file %q", fp)
		}
		p.debug(ctx, "loaded configuration file", attribute.String("file", fp))
	}

	for _, up := range p.extraProviders {
		if err := p.Koanf.Load(up, nil); err != nil {
			return errors.WithStack(err)
		}
	}

	if !p.disableEnvLoading {
		if err := p.Koanf.Load(env.ProviderWithValue(p.envPrefix, Delimiter, p.envToKey), nil); err != nil {
			return errors.WithStack(err)
		}
	}

	if p.flags != nil {
		if err := p.Koanf.Load(posflag.Provider(p.flags, Delimiter, p.Koanf), nil); err != nil {
			return errors.WithStack(err)
		}
	}

	if len(p.overrides) > 0 {
		if err := p.Koanf.Load(confmap.Provider(tuplesToMap(p.overrides), Delimiter), nil); err != nil {
			return errors.WithStack(err)
		}
	}

	return nil
}

// envToKey maps an environment variable to a configuration key. The prefix is
// stripped and the first underscore becomes the section delimiter, so with the
// default prefix KB_ES_CONNECT_TIMEOUT maps to es.connect_timeout.
// Comma separated values map to string slices.
func (p *Provider) envToKey(s string, v string) (string, interface{}) {
	key := strings.Replace(strings.ToLower(strings.TrimPrefix(s, p.envPrefix)), "_", Delimiter, 1)
	if strings.Contains(v, ",") {
		return key, strings.Split(v, ",")
	}
	return key, v
}

// UnmarshalKey decodes the configuration subtree at key into o. Durations may be
// given as strings such as "2s" and types implementing encoding.TextUnmarshaler,
// such as byte sizes, as their textual form.
func (p *Provider) UnmarshalKey(key string, o interface{}) error {
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           o,
			WeaklyTypedInput: true,
		},
	}
	if err := p.Koanf.UnmarshalWithConf(key, o, conf); err != nil {
		return errorx.InvalidArgumentErrorf("unable to decode configuration key %q: %s", key, err).WithOriginalError(err)
	}
	return nil
}

func (p *Provider) debug(ctx context.Context, msg string, kvs ...attribute.KeyValue) {
	if p.logger != nil {
		p.logger.Debug(ctx, msg, kvs...)
		return
	}
	slogx.Debug(ctx, msg, kvs...)
}

func parserForFile(fp string) (koanf.Parser, error) {
	switch e := filepath.Ext(fp); e {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, errorx.InvalidArgumentErrorf("unsupported configuration file format: %s", e)
	}
}

func tuplesToMap(ts []tuple) map[string]interface{} {
	m := make(map[string]interface{}, len(ts))
	for _, t := range ts {
		m[t.Key] = t.Value
	}
	return m
}
