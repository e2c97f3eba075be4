// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logging_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/logfactory/logging"
	"github.com/mia-platform/logfactory/logging/fake"
)

func TestFactoryFiltersEachProvider(t *testing.T) {
	t.Parallel()

	console := fake.NewProviderWithType("github.com/acme/sinks.Console")
	file := fake.NewProviderWithType("github.com/acme/sinks.File")
	aliases := logging.NewAliasContext(logging.AliasesFromMap(map[logging.ProviderType]string{
		console.Type(): "console",
	}))

	factory := logging.NewFactory([]logging.Provider{console, nil, file}, logging.NewStaticMonitor(logging.FilterOptions{
		MinLevel: logging.Information,
		Rules: []logging.FilterRule{
			{ProviderName: "console", Level: logging.Trace},
			{CategoryName: "app.db", Level: logging.Error},
		},
	}), aliases)

	log := factory.CreateLogger("app.db")
	assert.Equal(t, "app.db", log.Category())
	log.Trace("trace")
	log.Debug("debug")
	log.Info("info")
	log.Warn("warn")
	log.Error("error")
	log.Critical("critical")

	assert.Equal(t, []string{"trace", "debug", "info", "warn", "error", "critical"}, console.Messages())
	assert.Equal(t, []string{"error", "critical"}, file.Messages())

	other := factory.CreateLogger("app.http")
	other.Debug("debug")
	other.Info("info")
	assert.Equal(t, []string{"info"}, file.Messages()[2:])

	assert.True(t, other.IsEnabled(logging.Trace))
	assert.False(t, other.IsEnabled(logging.None))
	assert.Equal(t, []logging.ProviderType{console.Type(), file.Type()}, factory.ProviderTypes())

	alias, ok := factory.Alias(console.Type())
	assert.True(t, ok)
	assert.Equal(t, "console", alias)
}

func TestFactoryWithOptions(t *testing.T) {
	t.Parallel()

	provider := fake.NewProvider()
	factory := logging.NewFactoryWithOptions(logging.FilterOptions{MinLevel: logging.Warning}, provider)

	log := factory.CreateLogger("app")
	log.Info("dropped")
	log.Warn("kept", "key", "value")
	assert.False(t, log.IsEnabled(logging.Information))

	assert.Equal(t, []fake.Entry{
		{Category: "app", Level: logging.Warning, Message: "kept", Args: []any{"key", "value"}},
	}, provider.Entries())
	assert.Equal(t, logging.FilterOptions{MinLevel: logging.Warning}, factory.Options())
}

func TestFactoryWithoutMonitor(t *testing.T) {
	t.Parallel()

	provider := fake.NewProvider()
	factory := logging.NewFactory([]logging.Provider{provider}, nil, nil)
	factory.CreateLogger("app").Trace("trace")

	assert.Equal(t, []string{"trace"}, provider.Messages())
}

func TestLoggerWith(t *testing.T) {
	t.Parallel()

	provider := fake.NewProvider()
	factory := logging.NewFactoryWithOptions(logging.FilterOptions{}, provider)

	base := factory.CreateLogger("app")
	scoped := base.With("reqId", "42")
	scoped.With("user", "jane").Info("first", "extra", true)
	base.Info("second")

	entries := provider.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, []any{"reqId", "42", "user", "jane", "extra", true}, entries[0].Args)
	assert.Empty(t, entries[1].Args)
	assert.Equal(t, "app", scoped.Category())
}

func TestFactoryAddProvider(t *testing.T) {
	t.Parallel()

	first := fake.NewProvider()
	factory := logging.NewFactoryWithOptions(logging.FilterOptions{MinLevel: logging.Information}, first)
	log := factory.CreateLogger("app")

	second := fake.NewProviderWithType("second")
	require.NoError(t, factory.AddProvider(second))
	log.Info("after add")
	factory.CreateLogger("other").Info("new logger")

	assert.Equal(t, []string{"after add", "new logger"}, first.Messages())
	assert.Equal(t, []string{"after add", "new logger"}, second.Messages())

	err := factory.AddProvider(nil)
	assert.ErrorIs(t, err, logging.ErrInvalidArgument)
	assert.EqualError(t, err, "invalid argument: provider is required")
}

func TestFactoryClose(t *testing.T) {
	t.Parallel()

	closeErr := errors.New("close error")
	healthy := fake.NewProvider()
	failing := fake.NewFailingProvider(closeErr)
	factory := logging.NewFactoryWithOptions(logging.FilterOptions{}, healthy, failing)
	log := factory.CreateLogger("app")

	err := factory.Close()
	assert.ErrorIs(t, err, closeErr)
	assert.Equal(t, 1, healthy.Closed())
	assert.Equal(t, 1, failing.Closed())

	require.NoError(t, factory.Close())
	assert.Equal(t, 1, healthy.Closed())

	log.Info("dropped")
	factory.CreateLogger("late").Info("dropped")
	assert.Empty(t, healthy.Messages())
	assert.ErrorIs(t, factory.AddProvider(fake.NewProvider()), logging.ErrFactoryClosed)
}

// changingMonitor is an OptionsMonitor whose value can be changed by tests.
type changingMonitor struct {
	lock      sync.Mutex
	current   logging.FilterOptions
	listeners []func(logging.FilterOptions, string)
	closed    int
}

func (m *changingMonitor) Current() logging.FilterOptions {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.current
}

func (m *changingMonitor) Get(string) logging.FilterOptions {
	return m.Current()
}

func (m *changingMonitor) OnChange(listener func(logging.FilterOptions, string)) logging.Subscription {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.listeners = append(m.listeners, listener)
	return m
}

func (m *changingMonitor) Close() error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.closed++
	return nil
}

func (m *changingMonitor) set(options logging.FilterOptions) {
	m.lock.Lock()
	m.current = options
	listeners := m.listeners
	m.lock.Unlock()

	for _, listener := range listeners {
		listener(options, "")
	}
}

func TestFactoryFollowsOptionsChanges(t *testing.T) {
	t.Parallel()

	monitor := &changingMonitor{current: logging.FilterOptions{MinLevel: logging.Error}}
	provider := fake.NewProvider()
	factory := logging.NewFactory([]logging.Provider{provider}, monitor, nil)

	log := factory.CreateLogger("app")
	log.Info("dropped")
	monitor.set(logging.FilterOptions{MinLevel: logging.Debug})
	log.Info("kept")

	assert.Equal(t, []string{"kept"}, provider.Messages())
	assert.Equal(t, logging.Debug, factory.Options().MinLevel)

	require.NoError(t, factory.Close())
	assert.Equal(t, 1, monitor.closed)
}

func TestLoggersCachePerCategory(t *testing.T) {
	t.Parallel()

	provider := fake.NewProvider()
	loggers := logging.NewLoggers(logging.NewFactoryWithOptions(logging.FilterOptions{}, provider))

	first := loggers.For("app")
	assert.Same(t, first, loggers.For("app"))
	assert.NotSame(t, first, loggers.For("other"))
}
