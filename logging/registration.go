// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logging

import (
	"github.com/mia-platform/logfactory/registry"
)

// Registry keys of the logging services.
const (
	FactoryKey          registry.Key = "logging.LoggerFactory"
	LoggersKey          registry.Key = "logging.Loggers"
	OptionsMonitorKey   registry.Key = "logging.OptionsMonitor"
	ConfigureOptionsKey registry.Key = "logging.ConfigureOptions"
	ProviderKey         registry.Key = "logging.Provider"
	AliasContextKey     registry.Key = "logging.AliasContext"
)

const (
	factoryImplementation      = "logging.Factory"
	loggersImplementation      = "logging.Loggers"
	monitorImplementation      = "logging.StaticMonitor"
	aliasContextImplementation = "logging.AliasContext"
	defaultMinimumLevel        = Information
)

// ReplaceFactory registers resolver and replaces the logger factory registered in reg
// with Factory. Arguments are validated before reg is modified.
func ReplaceFactory(reg *registry.Registry, resolver AliasResolver) (*registry.Registry, error) {
	if resolver == nil {
		return nil, newArgumentError("resolver")
	}

	if reg == nil {
		return nil, newArgumentError("registry")
	}

	registerAliases(reg, resolver)
	reg.Replace(factoryDescriptor())
	return reg, nil
}

// AddLogging registers the logging services into reg without overwriting the existing ones,
// then calls configure once with a Builder bound to reg.
// Arguments are validated before reg is modified; reg is returned for chaining.
func AddLogging(reg *registry.Registry, configure func(*Builder), resolver AliasResolver) (*registry.Registry, error) {
	if reg == nil {
		return nil, newArgumentError("registry")
	}

	if configure == nil {
		return nil, newArgumentError("configure")
	}

	if resolver == nil {
		return nil, newArgumentError("resolver")
	}

	AddOptions(reg)
	registerAliases(reg, resolver)

	reg.TryAdd(factoryDescriptor())
	reg.TryAdd(registry.NewSingleton(LoggersKey, loggersImplementation, func(scope registry.Scope) (any, error) {
		factory, err := registry.Get[LoggerFactory](scope, FactoryKey)
		if err != nil {
			return nil, err
		}
		return NewLoggers(factory), nil
	}))
	reg.TryAddEnumerable(registry.NewInstance(ConfigureOptionsKey, defaultLevelImplementation, DefaultLevel(defaultMinimumLevel)))

	configure(&Builder{Registry: reg})
	return reg, nil
}

// AddOptions registers, if absent, the options monitor built from every ConfigureOptions
// unit registered under ConfigureOptionsKey, applied in registration order.
func AddOptions(reg *registry.Registry) *registry.Registry {
	reg.TryAdd(registry.NewSingleton(OptionsMonitorKey, monitorImplementation, func(scope registry.Scope) (any, error) {
		units, err := registry.GetAll[ConfigureOptions](scope, ConfigureOptionsKey)
		if err != nil {
			return nil, err
		}
		return NewStaticMonitor(Apply(units...)), nil
	}))
	return reg
}

func factoryDescriptor() registry.Descriptor {
	return registry.NewSingleton(FactoryKey, factoryImplementation, func(scope registry.Scope) (any, error) {
		monitor, err := optionalMonitor(scope)
		if err != nil {
			return nil, err
		}

		providers, err := registry.GetAll[Provider](scope, ProviderKey)
		if err != nil {
			return nil, err
		}

		aliases, err := aliasesFromScope(scope)
		if err != nil {
			return nil, err
		}

		return NewFactory(providers, monitor, aliases), nil
	})
}

// optionalMonitor returns the registered OptionsMonitor, or nil when ReplaceFactory has
// been used without AddOptions.
func optionalMonitor(scope registry.Scope) (OptionsMonitor, error) {
	monitors, err := registry.GetAll[OptionsMonitor](scope, OptionsMonitorKey)
	if err != nil || len(monitors) == 0 {
		return nil, err
	}

	return monitors[len(monitors)-1], nil
}
