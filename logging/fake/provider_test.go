// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mia-platform/logfactory/logging"
)

func TestProviderRecordsEntries(t *testing.T) {
	t.Parallel()

	provider := NewProvider()
	assert.Equal(t, Type, provider.Type())

	provider.CreateLogger("first").Log(logging.Information, "hello", "key", "value")
	provider.CreateLogger("second").Log(logging.Error, "world")

	assert.Equal(t, []Entry{
		{Category: "first", Level: logging.Information, Message: "hello", Args: []any{"key", "value"}},
		{Category: "second", Level: logging.Error, Message: "world"},
	}, provider.Entries())
	assert.Equal(t, []string{"hello", "world"}, provider.Messages())
}

func TestProviderClose(t *testing.T) {
	t.Parallel()

	closeErr := errors.New("close error")
	provider := NewFailingProvider(closeErr)
	assert.ErrorIs(t, provider.Close(), closeErr)
	assert.Equal(t, 1, provider.Closed())

	custom := NewProviderWithType("custom")
	assert.NoError(t, custom.Close())
	assert.Equal(t, logging.ProviderType("custom"), custom.Type())
}
