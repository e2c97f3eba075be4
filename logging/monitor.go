// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logging

// OptionsMonitor exposes the current FilterOptions and notifies their changes.
type OptionsMonitor interface {
	// Current returns the current options.
	Current() FilterOptions
	// Get returns the options registered with name.
	Get(name string) FilterOptions
	// OnChange registers listener for options changes; closing the returned
	// Subscription unregisters it.
	OnChange(listener func(options FilterOptions, name string)) Subscription
}

// Subscription is returned by OptionsMonitor.OnChange.
type Subscription interface {
	Close() error
}

// Make sure that StaticMonitor is an OptionsMonitor.
var _ OptionsMonitor = &StaticMonitor{}

// StaticMonitor is an OptionsMonitor holding a fixed value that never changes.
type StaticMonitor struct {
	current FilterOptions
}

// NewStaticMonitor returns a StaticMonitor for a private copy of options.
func NewStaticMonitor(options FilterOptions) *StaticMonitor {
	return &StaticMonitor{current: options.Clone()}
}

// Current returns a copy of the fixed options.
func (m *StaticMonitor) Current() FilterOptions {
	return m.current.Clone()
}

// Get ignores name and returns the fixed options.
func (m *StaticMonitor) Get(string) FilterOptions {
	return m.Current()
}

// OnChange never invokes listener.
func (m *StaticMonitor) OnChange(func(FilterOptions, string)) Subscription {
	return nopSubscription{}
}

type nopSubscription struct{}

func (nopSubscription) Close() error { return nil }
