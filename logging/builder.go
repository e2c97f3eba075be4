// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logging

import (
	"github.com/mia-platform/logfactory/registry"
)

// Builder registers providers and filter settings into the registry it is bound to.
type Builder struct {
	Registry *registry.Registry
}

// Aliases returns the alias context currently registered in the bound registry, so a
// resolver registered with RegisterAliasResolver during configuration is visible at once.
func (b *Builder) Aliases() *AliasContext {
	descriptors := b.Registry.Descriptors(AliasContextKey)
	if len(descriptors) == 0 {
		return nil
	}

	aliases, _ := descriptors[len(descriptors)-1].Instance.(*AliasContext)
	return aliases
}

// AddProvider registers provider; every registered provider is attached to the factory.
func (b *Builder) AddProvider(provider Provider) *Builder {
	b.Registry.Add(registry.NewInstance(ProviderKey, string(provider.Type()), provider))
	return b
}

// ClearProviders removes every provider registered so far.
func (b *Builder) ClearProviders() *Builder {
	b.Registry.RemoveAll(ProviderKey)
	return b
}

// SetMinimumLevel overrides the default minimum level.
func (b *Builder) SetMinimumLevel(level Level) *Builder {
	b.Registry.Add(registry.NewInstance(ConfigureOptionsKey, "logging.MinimumLevel", DefaultLevel(level)))
	return b
}

// AddFilter adds a rule for provider and category. Empty values match everything.
func (b *Builder) AddFilter(provider, category string, level Level) *Builder {
	rule := FilterRule{ProviderName: provider, CategoryName: category, Level: level}
	b.Registry.Add(registry.NewInstance(ConfigureOptionsKey, "logging.Filter", ConfigureFunc(func(options *FilterOptions) {
		options.Rules = append(options.Rules, rule)
	})))
	return b
}

// AddConfiguration adds the rules described by section.
func (b *Builder) AddConfiguration(section Section) *Builder {
	b.Registry.Add(registry.NewInstance(ConfigureOptionsKey, "logging.Section", section))
	return b
}
