// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package registry implements a minimal service registry used as the composition root
// of an application.
// Services are identified by string keys instead of runtime type information, so the
// registry can be used where reflection is limited or undesirable.
// A Registry is mutated only during startup; Build freezes a snapshot of its descriptors
// into a Container that resolves and caches the registered services.
package registry
