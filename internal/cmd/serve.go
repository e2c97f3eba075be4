// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mia-platform/logfactory/internal/config"
	"github.com/mia-platform/logfactory/internal/server"
	"github.com/mia-platform/logfactory/logging"
)

const (
	serveCmdUsage = "serve"
	serveCmdShort = "start the http server"
	serveCmdLong  = `Start the http server.
	Every request is logged through the logger factory, and the effective logging
	configuration is exposed on the /-/logging route. The server is configured with
	the HTTP_HOST, HTTP_PORT and DISABLE_STARTUP_MESSAGE environment variables and
	runs until an interrupt or termination signal is received.`

	serveCmdExample = `# Start the server on port 8080
	HTTP_PORT=8080 logfactory serve`
)

var (
	serverGetter = func(cfg *config.Server, factory server.LoggingFactory) server.Server {
		return server.NewServer(cfg, factory)
	}
)

// serveOptions holds the options set for the current serve function.
type serveOptions struct {
	config *config.Server

	lock sync.Mutex
}

// execute runs the server until ctx is done.
func (o *serveOptions) execute(ctx context.Context) error {
	if !o.lock.TryLock() {
		return nil
	}
	defer o.lock.Unlock()

	h, err := hostFromContext(ctx)
	if err != nil {
		return err
	}

	srv := serverGetter(o.config, h.factory)
	srv.StartAsync(ctx)

	<-ctx.Done()
	logging.FromContext(ctx).Info("stopping server")
	return srv.Stop()
}

// ServeCmd return the "serve" cli command for starting the http server.
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     serveCmdUsage,
		Short:   heredoc.Doc(serveCmdShort),
		Long:    heredoc.Doc(serveCmdLong),
		Example: heredoc.Doc(serveCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: closingHost(func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadServer()
			if err != nil {
				return handleError(cmd, err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			opts := &serveOptions{config: cfg}
			if err := opts.execute(ctx); err != nil {
				return handleError(cmd, err)
			}

			return nil
		}),
	}
}
