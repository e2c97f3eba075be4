// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/logfactory/internal/config"
	"github.com/mia-platform/logfactory/internal/server"
	"github.com/mia-platform/logfactory/internal/server/fake"
)

func TestServeCmd(t *testing.T) {
	fakeServer := fake.NewFakeServer(t)
	var receivedFactory server.LoggingFactory
	var receivedConfig *config.Server

	originalGetter := serverGetter
	serverGetter = func(cfg *config.Server, factory server.LoggingFactory) server.Server {
		receivedConfig = cfg
		receivedFactory = factory
		return fakeServer
	}
	t.Cleanup(func() { serverGetter = originalGetter })

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	go func() {
		<-fakeServer.StartedServer()
		cancel()
	}()

	_, _, err := executeCmd(ctx, ServeCmd(), "")
	require.NoError(t, err)
	<-fakeServer.StoppedServer()

	require.NotNil(t, receivedFactory)
	require.NotNil(t, receivedConfig)
	assert.Equal(t, 3000, receivedConfig.HTTPPort)
}

func TestServeOptionsWithoutHost(t *testing.T) {
	t.Parallel()

	opts := &serveOptions{config: &config.Server{HTTPPort: 3000}}
	assert.ErrorIs(t, opts.execute(t.Context()), errNoHost)
}
