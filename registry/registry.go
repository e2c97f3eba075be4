// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package registry

import (
	"slices"
)

// Key identifies a service inside a Registry.
type Key string

// Lifetime controls how many instances of a service a Container creates.
type Lifetime int

const (
	// Singleton services are created once per Container and cached.
	Singleton Lifetime = iota
	// Transient services are created on every resolution.
	Transient
)

// FactoryFunc builds a service instance, resolving its dependencies from scope.
type FactoryFunc func(scope Scope) (any, error)

// Descriptor describes a single service registration.
type Descriptor struct {
	Key      Key
	Lifetime Lifetime

	// Instance is returned as is when set; Factory is ignored in that case.
	Instance any
	Factory  FactoryFunc

	// Implementation names the concrete implementation behind the registration.
	// TryAddEnumerable uses it to detect duplicates.
	Implementation string
}

// NewInstance returns a singleton descriptor for an already built instance.
func NewInstance(key Key, implementation string, instance any) Descriptor {
	return Descriptor{
		Key:            key,
		Lifetime:       Singleton,
		Instance:       instance,
		Implementation: implementation,
	}
}

// NewSingleton returns a descriptor for a service built once by factory.
func NewSingleton(key Key, implementation string, factory FactoryFunc) Descriptor {
	return Descriptor{
		Key:            key,
		Lifetime:       Singleton,
		Factory:        factory,
		Implementation: implementation,
	}
}

// NewTransient returns a descriptor for a service built by factory on every resolution.
func NewTransient(key Key, implementation string, factory FactoryFunc) Descriptor {
	return Descriptor{
		Key:            key,
		Lifetime:       Transient,
		Factory:        factory,
		Implementation: implementation,
	}
}

// Registry holds an ordered list of service descriptors.
// It is not safe for concurrent mutation.
type Registry struct {
	descriptors []Descriptor
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Add appends d even if other descriptors with the same key already exist.
func (r *Registry) Add(d Descriptor) *Registry {
	r.descriptors = append(r.descriptors, d)
	return r
}

// TryAdd appends d only if no descriptor with the same key is registered.
// It reports whether d has been added.
func (r *Registry) TryAdd(d Descriptor) bool {
	if r.Contains(d.Key) {
		return false
	}

	r.descriptors = append(r.descriptors, d)
	return true
}

// TryAddEnumerable appends d unless a descriptor with the same key and the same
// implementation is already registered. It reports whether d has been added.
func (r *Registry) TryAddEnumerable(d Descriptor) bool {
	duplicated := slices.ContainsFunc(r.descriptors, func(existing Descriptor) bool {
		return existing.Key == d.Key && existing.Implementation == d.Implementation
	})
	if duplicated {
		return false
	}

	r.descriptors = append(r.descriptors, d)
	return true
}

// Replace removes the first descriptor registered with the same key of d, then appends d.
func (r *Registry) Replace(d Descriptor) *Registry {
	if idx := slices.IndexFunc(r.descriptors, func(existing Descriptor) bool {
		return existing.Key == d.Key
	}); idx >= 0 {
		r.descriptors = slices.Delete(r.descriptors, idx, idx+1)
	}

	r.descriptors = append(r.descriptors, d)
	return r
}

// RemoveAll removes every descriptor registered with key.
func (r *Registry) RemoveAll(key Key) *Registry {
	r.descriptors = slices.DeleteFunc(r.descriptors, func(existing Descriptor) bool {
		return existing.Key == key
	})
	return r
}

// Contains reports whether at least one descriptor is registered with key.
func (r *Registry) Contains(key Key) bool {
	return slices.ContainsFunc(r.descriptors, func(existing Descriptor) bool {
		return existing.Key == key
	})
}

// Descriptors returns a copy of the descriptors registered with key, in registration order.
func (r *Registry) Descriptors(key Key) []Descriptor {
	found := make([]Descriptor, 0)
	for _, d := range r.descriptors {
		if d.Key == key {
			found = append(found, d)
		}
	}

	return found
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	return len(r.descriptors)
}

// Build returns a Container resolving services from a snapshot of the current descriptors.
// Later changes to the Registry are not visible to the returned Container.
func (r *Registry) Build() *Container {
	return newContainer(slices.Clone(r.descriptors))
}
