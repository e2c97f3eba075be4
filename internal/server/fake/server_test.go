// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAndStop(t *testing.T) {
	t.Parallel()

	server := NewFakeServer(t)

	go func() {
		assert.NoError(t, server.Start())
	}()

	<-server.StartedServer()
	require.NoError(t, server.Stop())
	require.NoError(t, server.Stop())
	<-server.StoppedServer()
}

func TestStartAsyncSignalsStarted(t *testing.T) {
	t.Parallel()

	server := NewFakeServer(t)
	server.StartAsync(t.Context())

	<-server.StartedServer()
	require.NoError(t, server.Stop())
}
