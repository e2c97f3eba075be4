// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logging

// ConfigureOptions is a configuration unit applied to FilterOptions when the
// options monitor is built.
type ConfigureOptions interface {
	Configure(options *FilterOptions)
}

// ConfigureFunc adapts a function to ConfigureOptions.
type ConfigureFunc func(options *FilterOptions)

func (f ConfigureFunc) Configure(options *FilterOptions) {
	f(options)
}

// defaultLevelImplementation identifies DefaultLevel units in the registry.
const defaultLevelImplementation = "logging.DefaultLevel"

type defaultLevel struct {
	level Level
}

// DefaultLevel returns a unit setting the MinLevel of the options to level.
func DefaultLevel(level Level) ConfigureOptions {
	return defaultLevel{level: level}
}

func (d defaultLevel) Configure(options *FilterOptions) {
	options.MinLevel = d.level
}

// Apply runs every unit on a zero FilterOptions, in order, and returns the result.
func Apply(units ...ConfigureOptions) FilterOptions {
	options := FilterOptions{}
	for _, unit := range units {
		unit.Configure(&options)
	}

	return options
}
