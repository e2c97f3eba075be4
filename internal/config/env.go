// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/mia-platform/logfactory/logging"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

var (
	ErrEnvVariablesNotValid = errors.New("environment variables not valid")
)

// Logging holds the logging settings of the command.
type Logging struct {
	Level      string `env:"LOG_LEVEL" envDefault:"Information"`
	Format     string `env:"LOG_FORMAT" envDefault:"json"`
	Color      bool   `env:"LOG_COLOR" envDefault:"false"`
	ConfigPath string `env:"LOGGING_CONFIG_PATH"`
}

// Server holds the settings of the HTTP server started by the serve command.
type Server struct {
	HTTPHost              string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	HTTPPort              int    `env:"HTTP_PORT" envDefault:"3000"`
	DisableStartupMessage bool   `env:"DISABLE_STARTUP_MESSAGE" envDefault:"true"`
}

// LoadLogging parses and validates the logging environment variables.
func LoadLogging() (*Logging, error) {
	var envVars Logging
	if err := env.Parse(&envVars); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, err.Error())
	}

	if err := validateLogging(&envVars); err != nil {
		return nil, err
	}
	return &envVars, nil
}

// LoadServer parses and validates the server environment variables.
func LoadServer() (*Server, error) {
	var envVars Server
	if err := env.Parse(&envVars); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, err.Error())
	}

	if err := validateServer(&envVars); err != nil {
		return nil, err
	}
	return &envVars, nil
}

// JSON reports whether the configured format is json.
func (l *Logging) JSON() bool {
	return strings.EqualFold(l.Format, FormatJSON)
}

// MinimumLevel returns the configured level.
func (l *Logging) MinimumLevel() logging.Level {
	return logging.LevelFromString(l.Level)
}

func validateLogging(envVars *Logging) error {
	envError := make([]string, 0)

	if _, err := logging.ParseLevel(envVars.Level); err != nil {
		envError = append(envError, "LOG_LEVEL is not a valid level")
	}

	switch strings.ToLower(envVars.Format) {
	case FormatJSON, FormatText:
	default:
		envError = append(envError, "LOG_FORMAT must be one of json, text")
	}

	if len(envError) > 0 {
		return fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, strings.Join(envError, ", "))
	}
	return nil
}

func validateServer(envVars *Server) error {
	if envVars.HTTPPort < 1 || envVars.HTTPPort > 65535 {
		return fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, "HTTP_PORT is out of valid range (1-65535)")
	}
	return nil
}
