// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mia-platform/logfactory/internal/config"
	"github.com/mia-platform/logfactory/internal/info"
	"github.com/mia-platform/logfactory/logging"
	"github.com/mia-platform/logfactory/logging/hclogprovider"
	"github.com/mia-platform/logfactory/registry"
)

// ConsoleAlias is the alias of the console provider in logging configuration files.
const ConsoleAlias = "console"

var (
	errNoArguments      = errors.New("no arguments provided")
	errInvalidArguments = errors.New("invalid arguments")
	errNoHost           = errors.New("logging services not initialized")

	// aliasResolver resolves the aliases of the providers known to the command.
	aliasResolver = logging.AliasesFromMap(map[logging.ProviderType]string{
		hclogprovider.Type: ConsoleAlias,
	})
)

// host holds the logging services built for a command execution.
type host struct {
	container *registry.Container
	factory   *logging.Factory
	loggers   *logging.Loggers
}

// newHost registers the logging services described by settings and builds them.
// The console provider writes to output.
func newHost(settings *config.Logging, output io.Writer) (*host, error) {
	section := logging.Section{}
	if settings.ConfigPath != "" {
		var err error
		if section, err = logging.LoadSectionFromPath(settings.ConfigPath); err != nil {
			return nil, err
		}
	}

	var configureErr error
	reg, err := logging.AddLogging(registry.New(), func(builder *logging.Builder) {
		builder.
			SetMinimumLevel(settings.MinimumLevel()).
			AddConfiguration(section)

		_, configureErr = hclogprovider.AddConfigured(builder, section, hclogprovider.Options{
			Output: output,
			JSON:   settings.JSON(),
			Color:  settings.Color,
		})
	}, aliasResolver)
	if err != nil {
		return nil, err
	}

	if configureErr != nil {
		return nil, fmt.Errorf("console provider: %w", configureErr)
	}

	container := reg.Build()
	factory, err := registry.Get[*logging.Factory](container, logging.FactoryKey)
	if err != nil {
		return nil, err
	}

	loggers, err := registry.Get[*logging.Loggers](container, logging.LoggersKey)
	if err != nil {
		return nil, err
	}

	return &host{
		container: container,
		factory:   factory,
		loggers:   loggers,
	}, nil
}

func (h *host) Close() error {
	return h.container.Close()
}

// Setup builds the logging services for the execution of cmd and stores them, together with
// the application logger, in the command context. Non empty level and configPath override
// the environment configuration.
func Setup(cmd *cobra.Command, level, configPath string) error {
	settings, err := config.LoadLogging()
	if err != nil {
		return err
	}

	if level != "" {
		if _, err := logging.ParseLevel(level); err != nil {
			return fmt.Errorf("%w: %w", errInvalidArguments, err)
		}
		settings.Level = level
	}

	if configPath != "" {
		settings.ConfigPath = configPath
	}

	h, err := newHost(settings, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx := withHost(cmd.Context(), h)
	cmd.SetContext(logging.WithContext(ctx, h.loggers.For(info.AppName)))
	return nil
}

// Teardown closes the logging services stored in the cmd context by Setup.
// Calling it again is a no-op.
func Teardown(cmd *cobra.Command) error {
	h, err := hostFromContext(cmd.Context())
	if err != nil {
		return nil
	}

	return h.Close()
}

// closingHost wraps run so that the logging services stored in the context by Setup are
// closed when run returns, also on error paths where cobra skips the post-run hooks.
func closingHost(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if closeErr := Teardown(cmd); closeErr != nil {
			return errors.Join(err, closeErr)
		}

		return err
	}
}

// handleError will do custom print error handling based on the type of error received.
// it will return nil if the command must return 0 exit code, otherwise it will return
// the original error.
func handleError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, errNoArguments):
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return nil
	case errors.Is(err, errInvalidArguments):
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return err
	default:
		cmd.PrintErrln(err)
		return err
	}
}

// parseKeyValues converts KEY=VALUE arguments into key/value pairs for a logger.
func parseKeyValues(args []string) ([]any, error) {
	pairs := make([]any, 0, len(args)*2)
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q is not in the KEY=VALUE form", errInvalidArguments, arg)
		}
		pairs = append(pairs, key, value)
	}

	return pairs, nil
}

// Unexported new type so that our context key never collides with another.
type hostContextKeyType struct{}

var hostContextKey = hostContextKeyType{}

func withHost(ctx context.Context, h *host) context.Context {
	return context.WithValue(ctx, hostContextKey, h)
}

func hostFromContext(ctx context.Context) (*host, error) {
	if ctx != nil {
		if h, ok := ctx.Value(hostContextKey).(*host); ok {
			return h, nil
		}
	}

	return nil, errNoHost
}
