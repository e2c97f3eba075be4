// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package fibermw provides a fiber middleware logging every request through a logger factory.
package fibermw

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mia-platform/logfactory/logging"
)

const (
	// Category is the logger category used by the middleware.
	Category = "http.request"

	IncomingRequestMessage  = "incoming request"
	RequestCompletedMessage = "request completed"

	requestIDKey = "reqId"

	forwardedHostHeaderKey = "x-forwarded-host"
	forwardedForHeaderKey  = "x-forwarded-for"
	requestIDHeaderName    = "x-request-id"
	userAgentHeaderKey     = "user-agent"
)

// http groups the request and response fields of a log line.
type http struct {
	Request  *request  `json:"request,omitempty"`
	Response *response `json:"response,omitempty"`
}

type userAgent struct {
	Original string `json:"original,omitempty"`
}

type request struct {
	Method    string    `json:"method,omitempty"`
	UserAgent userAgent `json:"userAgent"`
}

type responseBody struct {
	Bytes int `json:"bytes,omitempty"`
}

type response struct {
	StatusCode int          `json:"statusCode,omitempty"`
	Body       responseBody `json:"body"`
}

type host struct {
	Hostname      string `json:"hostname,omitempty"`
	ForwardedHost string `json:"forwardedHost,omitempty"`
	IP            string `json:"ip,omitempty"`
}

type url struct {
	Path string `json:"path,omitempty"`
}

// exchange collects what the middleware logs about a single request.
type exchange struct {
	c     *fiber.Ctx
	start time.Time
}

func removePort(host string) string {
	hostname, _, _ := strings.Cut(host, ":")
	return hostname
}

// GetReqID returns the x-request-id header of c, or a new random id when the header is missing.
func GetReqID(c *fiber.Ctx) string {
	if requestID := c.Get(requestIDHeaderName); requestID != "" {
		return requestID
	}

	requestID, err := uuid.NewRandom()
	if err != nil {
		panic(fmt.Errorf("error generating request id: %w", err))
	}
	return requestID.String()
}

func (e exchange) path() url {
	return url{Path: string(e.c.Request().URI().RequestURI())}
}

func (e exchange) request() *request {
	return &request{
		Method:    e.c.Method(),
		UserAgent: userAgent{Original: e.c.Get(userAgentHeaderKey)},
	}
}

func (e exchange) host() host {
	return host{
		Hostname:      removePort(string(e.c.Request().Host())),
		ForwardedHost: e.c.Get(forwardedHostHeaderKey),
		IP:            e.c.Get(forwardedForHeaderKey),
	}
}

// response reports the status and size of the response, preferring the ones of a
// *fiber.Error returned by the handlers.
func (e exchange) response(handlerErr error) *response {
	var fiberErr *fiber.Error
	if errors.As(handlerErr, &fiberErr) {
		return &response{
			StatusCode: fiberErr.Code,
			Body:       responseBody{Bytes: len(fiberErr.Message)},
		}
	}

	size := len(e.c.Response().Body())
	if length, err := strconv.Atoi(e.c.GetRespHeader(fiber.HeaderContentLength)); err == nil {
		size = length
	}

	return &response{
		StatusCode: e.c.Response().StatusCode(),
		Body:       responseBody{Bytes: size},
	}
}

func (e exchange) logIncoming(log logging.Logger) {
	log.Trace(IncomingRequestMessage,
		"http", http{Request: e.request()},
		"url", e.path(),
		"host", e.host(),
	)
}

func (e exchange) logCompleted(log logging.Logger, handlerErr error) {
	log.Info(RequestCompletedMessage,
		"http", http{Request: e.request(), Response: e.response(handlerErr)},
		"url", e.path(),
		"host", e.host(),
		"responseTime", float64(time.Since(e.start).Milliseconds()),
	)
}

// RequestLogger is a fiber middleware to log all requests with a logger of Category
// created by factory. Paths starting with one of excludedPrefix are not logged.
// The request logger, carrying the request id, is stored in the user context of the request.
func RequestLogger(factory logging.LoggerFactory, excludedPrefix []string) func(*fiber.Ctx) error {
	log := factory.CreateLogger(Category)
	return func(c *fiber.Ctx) error {
		e := exchange{c: c, start: time.Now()}

		path := e.path().Path
		for _, prefix := range excludedPrefix {
			if strings.HasPrefix(path, prefix) {
				return c.Next()
			}
		}

		requestLog := log.With(requestIDKey, GetReqID(c))
		c.SetUserContext(logging.WithContext(c.UserContext(), requestLog))

		e.logIncoming(requestLog)
		err := c.Next()
		e.logCompleted(requestLog, err)

		return err
	}
}
