// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package configx

import (
	"github.com/knadh/koanf"
	"github.com/spf13/pflag"

	"github.com/clinia/kbx/loggerx"
)

type (
	OptionModifier func(p *Provider)
)

// WithConfigFiles adds YAML or JSON configuration files. Files are loaded in
// the order given, later files overriding earlier ones.
func WithConfigFiles(files ...string) OptionModifier {
	return func(p *Provider) {
		p.files = append(p.files, files...)
	}
}

// WithFlags adds a parsed pflag set. Flag values override files and
// environment variables.
func WithFlags(flags *pflag.FlagSet) OptionModifier {
	return func(p *Provider) {
		p.flags = flags
	}
}

// WithLogger sets the logger used to report configuration loading. Without it
// the provider falls back to the process-wide slog default.
func WithLogger(l *loggerx.Logger) OptionModifier {
	return func(p *Provider) {
		p.logger = l
	}
}

// WithEnvPrefix overrides the environment variable prefix, KB_ by default.
func WithEnvPrefix(prefix string) OptionModifier {
	return func(p *Provider) {
		p.envPrefix = prefix
	}
}

// DisableEnvLoading skips the environment variable source entirely. Useful in
// tests that must not observe the ambient environment.
func DisableEnvLoading() OptionModifier {
	return func(p *Provider) {
		p.disableEnvLoading = true
	}
}

// WithValue forces a single key to a value, overriding every other source.
func WithValue(key string, value interface{}) OptionModifier {
	return func(p *Provider) {
		p.overrides = append(p.overrides, tuple{Key: key, Value: value})
	}
}

// WithValues forces multiple keys at once, overriding every other source.
func WithValues(values map[string]interface{}) OptionModifier {
	return func(p *Provider) {
		for key, value := range values {
			p.overrides = append(p.overrides, tuple{Key: key, Value: value})
		}
	}
}

// WithBaseValues sets defaults that every other source may override.
func WithBaseValues(values map[string]interface{}) OptionModifier {
	return func(p *Provider) {
		for key, value := range values {
			p.defaults = append(p.defaults, tuple{Key: key, Value: value})
		}
	}
}

// WithUserProviders adds raw koanf providers, loaded after files and before
// environment variables.
func WithUserProviders(providers ...koanf.Provider) OptionModifier {
	return func(p *Provider) {
		p.extraProviders = append(p.extraProviders, providers...)
	}
}
