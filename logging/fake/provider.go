// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package fake implements a logging provider recording every event it receives,
// to be used in tests.
package fake

import (
	"slices"
	"sync"

	"github.com/mia-platform/logfactory/logging"
)

// Type is the provider type of Provider.
const Type logging.ProviderType = "github.com/mia-platform/logfactory/logging/fake.Provider"

var _ logging.Provider = &Provider{}

// Entry is a recorded log event.
type Entry struct {
	Category string
	Level    logging.Level
	Message  string
	Args     []any
}

// Provider records the events of every category in memory.
type Provider struct {
	providerType logging.ProviderType
	closeErr     error

	lock    sync.Mutex
	entries []Entry
	closed  int
}

// NewProvider returns a recording Provider of type Type.
func NewProvider() *Provider {
	return &Provider{providerType: Type}
}

// NewProviderWithType returns a recording Provider reporting providerType as its type.
func NewProviderWithType(providerType logging.ProviderType) *Provider {
	return &Provider{providerType: providerType}
}

// NewFailingProvider returns a recording Provider whose Close returns err.
func NewFailingProvider(err error) *Provider {
	return &Provider{providerType: Type, closeErr: err}
}

func (p *Provider) Type() logging.ProviderType {
	return p.providerType
}

func (p *Provider) CreateLogger(category string) logging.Sink {
	return &sink{provider: p, category: category}
}

func (p *Provider) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.closed++
	return p.closeErr
}

// Entries returns a copy of the recorded events.
func (p *Provider) Entries() []Entry {
	p.lock.Lock()
	defer p.lock.Unlock()

	return slices.Clone(p.entries)
}

// Messages returns the recorded messages, in order.
func (p *Provider) Messages() []string {
	p.lock.Lock()
	defer p.lock.Unlock()

	messages := make([]string, 0, len(p.entries))
	for _, entry := range p.entries {
		messages = append(messages, entry.Message)
	}

	return messages
}

// Closed returns how many times Close has been called.
func (p *Provider) Closed() int {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.closed
}

type sink struct {
	provider *Provider
	category string
}

func (s *sink) Log(level logging.Level, msg string, args ...any) {
	s.provider.lock.Lock()
	defer s.provider.lock.Unlock()

	s.provider.entries = append(s.provider.entries, Entry{
		Category: s.category,
		Level:    level,
		Message:  msg,
		Args:     slices.Clone(args),
	})
}
