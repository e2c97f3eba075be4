// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/mia-platform/logfactory/internal/config"
	"github.com/mia-platform/logfactory/internal/info"
	"github.com/mia-platform/logfactory/logging"
	"github.com/mia-platform/logfactory/logging/fibermw"
)

const (
	loggerName = "logfactory.server"

	healthzPath = "/-/healthz"
	readyPath   = "/-/ready"
	loggingPath = "/-/logging"
)

type Server interface {
	Start() error
	Stop() error
	StartAsync(ctx context.Context)
}

// LoggingFactory is a logger factory that can report its filter configuration.
type LoggingFactory interface {
	logging.LoggerFactory
	Options() logging.FilterOptions
	ProviderTypes() []logging.ProviderType
	Alias(providerType logging.ProviderType) (string, bool)
}

type impServer struct {
	config.Server

	app *fiber.App
	log logging.Logger
}

var (
	ErrServerListen   = errors.New("server listen error")
	ErrServerShutdown = errors.New("server shutdown error")
)

// statusResponse is the body of the health routes.
type statusResponse struct {
	Status  string `json:"status"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// providerResponse describes a provider attached to the logger factory.
type providerResponse struct {
	Type  logging.ProviderType `json:"type"`
	Alias string               `json:"alias,omitempty"`
}

// loggingResponse is the body of the logging route.
type loggingResponse struct {
	Options   logging.FilterOptions `json:"options"`
	Providers []providerResponse    `json:"providers"`
}

func NewServer(cfg *config.Server, factory LoggingFactory) Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: cfg.DisableStartupMessage,
	})
	app.Use(fibermw.RequestLogger(factory, []string{healthzPath, readyPath}))

	statusRoutes(app, info.AppName, info.Version)
	loggingRoutes(app, factory)

	return &impServer{
		Server: *cfg,
		app:    app,
		log:    factory.CreateLogger(loggerName),
	}
}

func statusRoutes(app *fiber.App, name, version string) {
	handler := func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(statusResponse{
			Status:  "OK",
			Name:    name,
			Version: version,
		})
	}

	app.Get(healthzPath, handler)
	app.Get(readyPath, handler)
}

func loggingRoutes(app *fiber.App, factory LoggingFactory) {
	app.Get(loggingPath, func(c *fiber.Ctx) error {
		providers := make([]providerResponse, 0)
		for _, providerType := range factory.ProviderTypes() {
			alias, _ := factory.Alias(providerType)
			providers = append(providers, providerResponse{Type: providerType, Alias: alias})
		}

		logging.FromContext(c.UserContext()).Debug("logging configuration requested", "providers", len(providers))
		return c.Status(http.StatusOK).JSON(loggingResponse{
			Options:   factory.Options(),
			Providers: providers,
		})
	})
}

func (s *impServer) Start() error {
	s.log.Info("starting server", "host", s.HTTPHost, "port", s.HTTPPort)
	if err := s.app.Listen(fmt.Sprintf("%s:%d", s.HTTPHost, s.HTTPPort)); err != nil {
		return fmt.Errorf("%w: %w", ErrServerListen, err)
	}
	return nil
}

func (s *impServer) Stop() error {
	if err := s.app.Shutdown(); err != nil {
		return fmt.Errorf("%w: %w", ErrServerShutdown, err)
	}
	return nil
}

func (s *impServer) StartAsync(ctx context.Context) {
	log := logging.FromContext(ctx)
	go func() {
		if err := s.Start(); err != nil {
			log.Error(err.Error())
		}
	}()
}
