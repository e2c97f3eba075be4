// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package logging provides a logger factory that can be registered into a service registry,
// together with the filter options it consumes and a pluggable provider alias resolver.
//
// Provider aliases are normally short display names used to key configuration sections.
// Instead of discovering them through type introspection, the host supplies an
// AliasResolver when registering the factory with AddLogging or ReplaceFactory.
// The resolver is owned by the registry it is registered into.
package logging
