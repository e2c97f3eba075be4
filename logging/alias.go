// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logging

import (
	"strings"

	"github.com/mia-platform/logfactory/registry"
)

// ProviderType is the identity of a provider implementation, usually its fully
// qualified type name such as "github.com/acme/app/sinks.Provider".
type ProviderType string

// AliasResolver maps a provider type to its short alias.
// It returns false when the provider has no alias.
type AliasResolver func(providerType ProviderType) (alias string, ok bool)

// NoAlias is an AliasResolver for hosts that do not use provider aliases.
func NoAlias(ProviderType) (string, bool) {
	return "", false
}

// AliasesFromMap returns an AliasResolver looking up aliases in a copy of aliases.
func AliasesFromMap(aliases map[ProviderType]string) AliasResolver {
	lookup := make(map[ProviderType]string, len(aliases))
	for providerType, alias := range aliases {
		lookup[providerType] = alias
	}

	return func(providerType ProviderType) (string, bool) {
		alias, ok := lookup[providerType]
		return alias, ok
	}
}

// AliasContext carries the alias resolver of a registry to the components that need it.
// It is shared by reference.
type AliasContext struct {
	resolver AliasResolver
}

// NewAliasContext returns an AliasContext for resolver; a nil resolver resolves no alias.
func NewAliasContext(resolver AliasResolver) *AliasContext {
	return &AliasContext{resolver: resolver}
}

// Alias returns the alias of providerType. It is safe to call on a nil AliasContext.
func (c *AliasContext) Alias(providerType ProviderType) (string, bool) {
	if c == nil || c.resolver == nil {
		return "", false
	}

	alias, ok := c.resolver(providerType)
	if !ok || strings.TrimSpace(alias) == "" {
		return "", false
	}

	return alias, true
}

// RegisterAliasResolver stores resolver in reg, replacing the one registered before.
// Containers already built from reg keep the resolver they were built with.
func RegisterAliasResolver(reg *registry.Registry, resolver AliasResolver) error {
	if reg == nil {
		return newArgumentError("registry")
	}

	if resolver == nil {
		return newArgumentError("resolver")
	}

	registerAliases(reg, resolver)
	return nil
}

func registerAliases(reg *registry.Registry, resolver AliasResolver) {
	reg.Replace(registry.NewInstance(AliasContextKey, aliasContextImplementation, NewAliasContext(resolver)))
}

// aliasesFromScope returns the AliasContext registered in scope, or nil if there is none.
func aliasesFromScope(scope registry.Scope) (*AliasContext, error) {
	services, err := registry.GetAll[*AliasContext](scope, AliasContextKey)
	if err != nil || len(services) == 0 {
		return nil, err
	}

	return services[len(services)-1], nil
}
