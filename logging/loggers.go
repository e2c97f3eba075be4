// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logging

import (
	"sync"
)

// Loggers hands out one cached Logger per category.
type Loggers struct {
	factory LoggerFactory

	lock  sync.Mutex
	cache map[string]Logger
}

// NewLoggers returns Loggers backed by factory.
func NewLoggers(factory LoggerFactory) *Loggers {
	return &Loggers{
		factory: factory,
		cache:   make(map[string]Logger),
	}
}

// For returns the Logger of category, creating it on first use.
func (l *Loggers) For(category string) Logger {
	l.lock.Lock()
	defer l.lock.Unlock()

	if log, ok := l.cache[category]; ok {
		return log
	}

	log := l.factory.CreateLogger(category)
	l.cache[category] = log
	return log
}
