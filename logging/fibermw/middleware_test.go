// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fibermw

import (
	netHTTP "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/logfactory/logging"
	"github.com/mia-platform/logfactory/logging/fake"
)

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	provider := fake.NewProvider()
	factory := logging.NewFactoryWithOptions(logging.FilterOptions{MinLevel: logging.Trace}, provider)

	app := fiber.New(fiber.Config{})
	require.NotNil(t, app)

	middleware := RequestLogger(factory, []string{"/-/healthz"})
	require.NotNil(t, middleware)

	app.Use(middleware)
	handlerLoggerCategory := ""
	app.Get("/foo", func(c *fiber.Ctx) error {
		handlerLoggerCategory = logging.FromContext(c.UserContext()).Category()
		return c.SendString("hello")
	})
	app.Get("/-/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(netHTTP.StatusOK)
	})

	req := httptest.NewRequest(netHTTP.MethodGet, "http://example.com/foo", nil)
	req.Header.Set("User-Agent", "UnitTestAgent/1.0")
	req.Header.Set(requestIDHeaderName, "request-42")
	req.RemoteAddr = "127.0.0.1:12345"

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	healthz, err := app.Test(httptest.NewRequest(netHTTP.MethodGet, "/-/healthz", nil))
	require.NoError(t, err)
	defer healthz.Body.Close()

	entries := provider.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, Category, handlerLoggerCategory)

	assert.Equal(t, logging.Trace, entries[0].Level)
	assert.Equal(t, IncomingRequestMessage, entries[0].Message)
	assert.Equal(t, []any{"reqId", "request-42"}, entries[0].Args[:2])

	assert.Equal(t, logging.Information, entries[1].Level)
	assert.Equal(t, RequestCompletedMessage, entries[1].Message)
	require.Len(t, entries[1].Args, 10)
	fields, ok := entries[1].Args[3].(http)
	require.True(t, ok)
	assert.Equal(t, netHTTP.StatusOK, fields.Response.StatusCode)
	assert.Equal(t, len("hello"), fields.Response.Body.Bytes)
	assert.Equal(t, "UnitTestAgent/1.0", fields.Request.UserAgent.Original)
	assert.Equal(t, url{Path: "/foo"}, entries[1].Args[5])
	assert.Equal(t, host{Hostname: "example.com"}, entries[1].Args[7])
}

func TestRequestLoggerFiberError(t *testing.T) {
	t.Parallel()

	provider := fake.NewProvider()
	factory := logging.NewFactoryWithOptions(logging.FilterOptions{MinLevel: logging.Information}, provider)

	app := fiber.New(fiber.Config{})
	app.Use(RequestLogger(factory, nil))
	app.Get("/missing", func(*fiber.Ctx) error {
		return fiber.NewError(netHTTP.StatusNotFound, "not here")
	})

	resp, err := app.Test(httptest.NewRequest(netHTTP.MethodGet, "/missing", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	entries := provider.Entries()
	require.Len(t, entries, 1)
	requestID, ok := entries[0].Args[1].(string)
	require.True(t, ok)
	assert.Len(t, requestID, 36)

	fields, ok := entries[0].Args[3].(http)
	require.True(t, ok)
	assert.Equal(t, netHTTP.StatusNotFound, fields.Response.StatusCode)
	assert.Equal(t, len("not here"), fields.Response.Body.Bytes)
}

func TestRemovePort(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "example.com", removePort("example.com:8080"))
	assert.Equal(t, "example.com", removePort("example.com"))
}
