// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package registry

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
)

var (
	// ErrServiceNotRegistered is returned when no descriptor exists for the requested key.
	ErrServiceNotRegistered = errors.New("service not registered")
	// ErrServiceType is returned when a resolved service does not have the requested type.
	ErrServiceType = errors.New("service has unexpected type")
	// ErrCircularDependency is returned when a factory depends, directly or not, on itself.
	ErrCircularDependency = errors.New("circular dependency")
	// ErrMissingFactory is returned for descriptors without an instance and without a factory.
	ErrMissingFactory = errors.New("descriptor has no instance and no factory")
	// ErrContainerClosed is returned when resolving from a closed Container.
	ErrContainerClosed = errors.New("container closed")
)

// Scope resolves services. Factories receive the Scope of the ongoing resolution.
type Scope interface {
	// Resolve returns the service registered last with key.
	Resolve(key Key) (any, error)
	// ResolveAll returns every service registered with key, in registration order.
	ResolveAll(key Key) ([]any, error)
}

// Make sure that Container is a Scope.
var _ Scope = &Container{}

// Container resolves services from a frozen list of descriptors.
// It is safe for concurrent use.
type Container struct {
	descriptors []Descriptor

	lock      sync.Mutex
	instances map[int]any
	created   []int
	closed    bool
}

func newContainer(descriptors []Descriptor) *Container {
	return &Container{
		descriptors: descriptors,
		instances:   make(map[int]any),
	}
}

// Resolve returns the service registered last with key.
func (c *Container) Resolve(key Key) (any, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.closed {
		return nil, ErrContainerClosed
	}

	return (&resolution{container: c}).Resolve(key)
}

// ResolveAll returns every service registered with key, in registration order.
// An empty slice is returned when nothing is registered with key.
func (c *Container) ResolveAll(key Key) ([]any, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.closed {
		return nil, ErrContainerClosed
	}

	return (&resolution{container: c}).ResolveAll(key)
}

// Close closes, in reverse creation order, every singleton created by a factory
// that implements io.Closer. Instances registered with NewInstance are never closed by
// the container itself, but a service it built may close the instances it was given,
// as the logger factory does with its providers. Calling Close again is a no-op.
func (c *Container) Close() error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	for _, idx := range slices.Backward(c.created) {
		if closer, ok := c.instances[idx].(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing %s: %w", c.descriptors[idx].Key, err))
			}
		}
	}

	clear(c.instances)
	c.created = nil
	return errors.Join(errs...)
}

// resolution tracks the factories being executed while the container lock is held.
type resolution struct {
	container *Container
	stack     []int
}

func (r *resolution) Resolve(key Key) (any, error) {
	idx := -1
	for i, d := range r.container.descriptors {
		if d.Key == key {
			idx = i
		}
	}

	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotRegistered, key)
	}

	return r.instance(idx)
}

func (r *resolution) ResolveAll(key Key) ([]any, error) {
	services := make([]any, 0)
	for idx, d := range r.container.descriptors {
		if d.Key != key {
			continue
		}

		service, err := r.instance(idx)
		if err != nil {
			return nil, err
		}
		services = append(services, service)
	}

	return services, nil
}

func (r *resolution) instance(idx int) (any, error) {
	c := r.container
	d := c.descriptors[idx]
	if d.Instance != nil {
		return d.Instance, nil
	}

	if d.Lifetime == Singleton {
		if service, ok := c.instances[idx]; ok {
			return service, nil
		}
	}

	if d.Factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingFactory, d.Key)
	}

	if slices.Contains(r.stack, idx) {
		return nil, fmt.Errorf("%w: %s", ErrCircularDependency, d.Key)
	}

	r.stack = append(r.stack, idx)
	service, err := d.Factory(r)
	r.stack = r.stack[:len(r.stack)-1]
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", d.Key, err)
	}

	if d.Lifetime == Singleton {
		c.instances[idx] = service
		c.created = append(c.created, idx)
	}

	return service, nil
}

// Get resolves key from scope and asserts the result to T.
func Get[T any](scope Scope, key Key) (T, error) {
	var zero T
	service, err := scope.Resolve(key)
	if err != nil {
		return zero, err
	}

	typed, ok := service.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %T", ErrServiceType, key, service)
	}

	return typed, nil
}

// GetAll resolves every service registered with key and asserts each of them to T.
func GetAll[T any](scope Scope, key Key) ([]T, error) {
	services, err := scope.ResolveAll(key)
	if err != nil {
		return nil, err
	}

	typed := make([]T, 0, len(services))
	for _, service := range services {
		t, ok := service.(T)
		if !ok {
			return nil, fmt.Errorf("%w: %s is %T", ErrServiceType, key, service)
		}
		typed = append(typed, t)
	}

	return typed, nil
}
