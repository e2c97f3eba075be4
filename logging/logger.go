// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logging

import (
	"slices"
	"sync/atomic"
)

// Sink receives the events of one category from a provider.
type Sink interface {
	// Log writes msg and its key/value pairs at level.
	Log(level Level, msg string, args ...any)
}

// Provider creates sinks for logger categories, e.g. a console or a file writer.
type Provider interface {
	// Type returns the identity of the provider implementation.
	Type() ProviderType
	// CreateLogger returns the sink used for category.
	CreateLogger(category string) Sink
	// Close flushes and releases the provider resources.
	Close() error
}

// Logger describes the interface that must be implemented by all loggers
type Logger interface {
	// Category returns the category the logger has been created for.
	Category() string

	// With returns a Logger adding the key/value pairs in args to every event.
	With(args ...any) Logger

	// IsEnabled reports whether at least one provider accepts events at level.
	IsEnabled(level Level) bool

	// Log emit a message and key/value pairs at level.
	Log(level Level, msg string, args ...any)

	// Trace emit a message and key/value pairs at the Trace level.
	Trace(msg string, args ...any)

	// Debug emit a message and key/value pairs at the Debug level.
	Debug(msg string, args ...any)

	// Info emit a message and key/value pairs at the Information level.
	Info(msg string, args ...any)

	// Warn emit a message and key/value pairs at the Warning level.
	Warn(msg string, args ...any)

	// Error emit a message and key/value pairs at the Error level.
	Error(msg string, args ...any)

	// Critical emit a message and key/value pairs at the Critical level.
	Critical(msg string, args ...any)
}

// sinkEntry binds a provider sink to the minimum level selected for its category.
type sinkEntry struct {
	provider Provider
	sink     Sink
	minLevel Level
}

// categoryLogger is shared by every Logger of a category so that provider and filter
// changes made by the factory reach loggers created before them.
type categoryLogger struct {
	category string
	sinks    atomic.Pointer[[]sinkEntry]
}

func (c *categoryLogger) entries() []sinkEntry {
	if sinks := c.sinks.Load(); sinks != nil {
		return *sinks
	}

	return nil
}

// Make sure that logger is a Logger.
var _ Logger = &logger{}

type logger struct {
	core *categoryLogger
	args []any
}

var (
	// nullLogger is a logger that discards all log messages.
	nullLogger Logger = &logger{core: &categoryLogger{}}
)

func (l *logger) Category() string {
	return l.core.category
}

func (l *logger) With(args ...any) Logger {
	return &logger{
		core: l.core,
		args: slices.Concat(l.args, args),
	}
}

func (l *logger) IsEnabled(level Level) bool {
	for _, entry := range l.core.entries() {
		if entry.minLevel.Enabled(level) {
			return true
		}
	}

	return false
}

func (l *logger) Log(level Level, msg string, args ...any) {
	entries := l.core.entries()
	if len(entries) == 0 {
		return
	}

	if len(l.args) > 0 {
		args = slices.Concat(l.args, args)
	}

	for _, entry := range entries {
		if entry.minLevel.Enabled(level) {
			entry.sink.Log(level, msg, args...)
		}
	}
}

func (l *logger) Trace(msg string, args ...any) {
	l.Log(Trace, msg, args...)
}

func (l *logger) Debug(msg string, args ...any) {
	l.Log(Debug, msg, args...)
}

func (l *logger) Info(msg string, args ...any) {
	l.Log(Information, msg, args...)
}

func (l *logger) Warn(msg string, args ...any) {
	l.Log(Warning, msg, args...)
}

func (l *logger) Error(msg string, args ...any) {
	l.Log(Error, msg, args...)
}

func (l *logger) Critical(msg string, args ...any) {
	l.Log(Critical, msg, args...)
}
