// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logging

import (
	"errors"
	"fmt"
	"sync"
)

// LoggerFactory creates loggers writing to a set of providers.
type LoggerFactory interface {
	// CreateLogger returns the logger for category.
	CreateLogger(category string) Logger
	// AddProvider attaches provider to the factory and to the loggers already created.
	AddProvider(provider Provider) error
	// Close closes every provider.
	Close() error
}

// Make sure that Factory is a LoggerFactory.
var _ LoggerFactory = &Factory{}

// Factory is the LoggerFactory registered by AddLogging and ReplaceFactory.
// Providers are filtered with the FilterOptions of its OptionsMonitor, matching
// provider aliases through its AliasContext. It is safe for concurrent use.
type Factory struct {
	monitor      OptionsMonitor
	aliases      *AliasContext
	subscription Subscription

	lock      sync.Mutex
	options   FilterOptions
	providers []Provider
	loggers   map[string]*categoryLogger
	closed    bool
}

// NewFactory returns a Factory for providers. A nil monitor is replaced by a StaticMonitor
// with zero options; a nil aliases resolves no alias.
func NewFactory(providers []Provider, monitor OptionsMonitor, aliases *AliasContext) *Factory {
	if monitor == nil {
		monitor = NewStaticMonitor(FilterOptions{})
	}

	f := &Factory{
		monitor:   monitor,
		aliases:   aliases,
		options:   monitor.Current(),
		providers: make([]Provider, 0, len(providers)),
		loggers:   make(map[string]*categoryLogger),
	}

	for _, provider := range providers {
		if provider != nil {
			f.providers = append(f.providers, provider)
		}
	}

	f.subscription = monitor.OnChange(f.refreshFilters)
	return f
}

// NewFactoryWithOptions returns a Factory using fixed options and no provider aliases.
func NewFactoryWithOptions(options FilterOptions, providers ...Provider) *Factory {
	return NewFactory(providers, NewStaticMonitor(options), nil)
}

// CreateLogger returns the logger for category. Loggers created after Close discard every event.
func (f *Factory) CreateLogger(category string) Logger {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.closed {
		return &logger{core: &categoryLogger{category: category}}
	}

	core, ok := f.loggers[category]
	if !ok {
		core = &categoryLogger{category: category}
		entries := make([]sinkEntry, 0, len(f.providers))
		for _, provider := range f.providers {
			entries = append(entries, f.newEntry(provider, category))
		}
		core.sinks.Store(&entries)
		f.loggers[category] = core
	}

	return &logger{core: core}
}

func (f *Factory) AddProvider(provider Provider) error {
	if provider == nil {
		return newArgumentError("provider")
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	if f.closed {
		return ErrFactoryClosed
	}

	f.providers = append(f.providers, provider)
	for category, core := range f.loggers {
		entries := append(append([]sinkEntry{}, core.entries()...), f.newEntry(provider, category))
		core.sinks.Store(&entries)
	}

	return nil
}

// Options returns the options currently applied by the factory.
func (f *Factory) Options() FilterOptions {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.options.Clone()
}

// ProviderTypes returns the types of the attached providers, in attachment order.
func (f *Factory) ProviderTypes() []ProviderType {
	f.lock.Lock()
	defer f.lock.Unlock()

	types := make([]ProviderType, 0, len(f.providers))
	for _, provider := range f.providers {
		types = append(types, provider.Type())
	}

	return types
}

// Alias returns the alias of providerType according to the factory AliasContext.
func (f *Factory) Alias(providerType ProviderType) (string, bool) {
	return f.aliases.Alias(providerType)
}

// Close closes every provider, joining their errors. Calling Close again is a no-op.
func (f *Factory) Close() error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	var errs []error
	if err := f.subscription.Close(); err != nil {
		errs = append(errs, err)
	}

	for _, provider := range f.providers {
		if err := provider.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing provider %s: %w", provider.Type(), err))
		}
	}

	for _, core := range f.loggers {
		core.sinks.Store(nil)
	}

	return errors.Join(errs...)
}

// refreshFilters recomputes the minimum levels of every logger with the new options.
func (f *Factory) refreshFilters(options FilterOptions, _ string) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.closed {
		return
	}

	f.options = options.Clone()
	for category, core := range f.loggers {
		entries := make([]sinkEntry, 0, len(core.entries()))
		for _, entry := range core.entries() {
			entry.minLevel = f.minimumLevel(entry.provider, category)
			entries = append(entries, entry)
		}
		core.sinks.Store(&entries)
	}
}

func (f *Factory) newEntry(provider Provider, category string) sinkEntry {
	return sinkEntry{
		provider: provider,
		sink:     provider.CreateLogger(category),
		minLevel: f.minimumLevel(provider, category),
	}
}

func (f *Factory) minimumLevel(provider Provider, category string) Level {
	providerType := provider.Type()
	alias, _ := f.aliases.Alias(providerType)
	return f.options.MinimumLevel(providerType, alias, category)
}
