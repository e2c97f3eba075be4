// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package main

import (
	"bytes"
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/logfactory/internal/info"
	"github.com/mia-platform/logfactory/logging"
)

func TestRootCommand(t *testing.T) {
	Version = "test"
	BuildDate = "2024-06-01"

	cmd := rootCmd()
	buffer := new(bytes.Buffer)
	errBuffer := new(bytes.Buffer)
	cmd.SetOut(buffer)
	cmd.SetErr(errBuffer)

	cmd.SetArgs([]string{"--log-level", "Trace", "version"})
	err := cmd.ExecuteContext(t.Context())
	require.NoError(t, err)

	lines := strings.Split(buffer.String(), "\n")
	assert.Len(t, lines, 2) // version output + empty line
	assert.Equal(t, info.VersionString(Version, BuildDate, runtime.Version())+"\n", buffer.String())

	var event map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(errBuffer.String())), &event))
	assert.Equal(t, "printing version", event["@message"])
	assert.Equal(t, info.AppName, event["@module"])

	buffer.Reset()
	errBuffer.Reset()
	BuildDate = ""
	cmd.SetArgs([]string{"--log-level", "WARN", "version"})
	err = cmd.ExecuteContext(t.Context())
	require.NoError(t, err)
	assert.Equal(t, info.VersionString(Version, "", runtime.Version())+"\n", buffer.String())
	assert.Empty(t, errBuffer.String())
}

func TestRootCommandInvalidLevel(t *testing.T) {
	cmd := rootCmd()
	errBuffer := new(bytes.Buffer)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(errBuffer)

	cmd.SetArgs([]string{"--log-level", "Loud", "version"})
	err := cmd.ExecuteContext(t.Context())
	assert.ErrorIs(t, err, logging.ErrInvalidLevel)
	assert.Contains(t, errBuffer.String(), "Loud")
}
