// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package hclogprovider implements a logging provider writing through hashicorp/go-hclog.
package hclogprovider

import (
	"io"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/mia-platform/logfactory/logging"
)

// Type is the provider type of Provider.
const Type logging.ProviderType = "github.com/mia-platform/logfactory/logging/hclogprovider.Provider"

var _ logging.Provider = &Provider{}

// Options configures a Provider. The yaml fields can be set from the provider
// section of the logging configuration.
type Options struct {
	Output io.Writer `yaml:"-"`
	JSON   bool      `yaml:"json"`
	Color  bool      `yaml:"color"`
}

// Provider creates one named hclog logger per category.
// Levels are filtered by the logger factory, so every hclog logger accepts Trace.
type Provider struct {
	root hclog.Logger
}

// New returns a Provider writing to opts.Output, or to stderr when it is nil.
func New(opts Options) *Provider {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	color := hclog.ColorOff
	if opts.Color && !opts.JSON {
		color = hclog.AutoColor
	}

	return &Provider{
		root: hclog.New(&hclog.LoggerOptions{
			JSONFormat: opts.JSON,
			Output:     output,
			TimeFn:     time.Now,
			Level:      hclog.Trace,
			Color:      color,
		}),
	}
}

func (p *Provider) Type() logging.ProviderType {
	return Type
}

func (p *Provider) CreateLogger(category string) logging.Sink {
	return &sink{log: p.root.ResetNamed(category)}
}

// Close is a no-op: hclog writes synchronously.
func (p *Provider) Close() error {
	return nil
}

// Add registers a Provider built from opts.
func Add(builder *logging.Builder, opts Options) *logging.Builder {
	return builder.AddProvider(New(opts))
}

// AddConfigured registers a Provider starting from defaults and overriding them with the
// options of its provider section, looked up by type or by the alias registered in builder.
func AddConfigured(builder *logging.Builder, section logging.Section, defaults Options) (*logging.Builder, error) {
	opts := defaults
	if providerSection, ok := section.Provider(Type, builder.Aliases()); ok {
		if err := providerSection.Decode(&opts); err != nil {
			return nil, err
		}
	}

	return Add(builder, opts), nil
}

type sink struct {
	log hclog.Logger
}

func (s *sink) Log(level logging.Level, msg string, args ...any) {
	switch level {
	case logging.None:
		return
	case logging.Critical:
		args = slices.Concat(args, []any{"critical", true})
	}

	s.log.Log(convertedLevel(level), msg, args...)
}

func convertedLevel(level logging.Level) hclog.Level {
	switch level {
	case logging.Trace:
		return hclog.Trace
	case logging.Debug:
		return hclog.Debug
	case logging.Information:
		return hclog.Info
	case logging.Warning:
		return hclog.Warn
	case logging.Error, logging.Critical:
		return hclog.Error
	case logging.None:
		return hclog.Off
	default:
		return hclog.Info
	}
}
