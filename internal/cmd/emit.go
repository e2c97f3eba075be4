// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mia-platform/logfactory/logging"
)

const (
	emitCmdUsage = "emit CATEGORY MESSAGE [KEY=VALUE...]"
	emitCmdShort = "write a log event through the logger factory"
	emitCmdLong  = `Write a log event through the logger factory.
	The event is created by a logger of the given category and is written by every
	provider whose filter rules enable the requested level for that category.`

	emitCmdExample = `# Write a warning for the app.db category
	logfactory emit app.db "connection lost" --level Warning retry=3`

	levelFlagName  = "level"
	levelFlagShort = "l"
	levelFlagUsage = "level of the emitted event"
)

// emitFlags holds the flags for the "emit" command.
type emitFlags struct {
	level string
}

// addFlags adds the cli flags to the cobra command.
func (f *emitFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.level, levelFlagName, levelFlagShort, logging.Information.String(), levelFlagUsage)
}

// toOptions converts the emit flags to emitOptions enriching it with the passed arguments.
func (f *emitFlags) toOptions(args []string) (*emitOptions, error) {
	if len(args) == 0 {
		return nil, errNoArguments
	}

	if len(args) < 2 {
		return nil, fmt.Errorf("%w: a category and a message are required", errInvalidArguments)
	}

	level, err := logging.ParseLevel(f.level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidArguments, err)
	}

	pairs, err := parseKeyValues(args[2:])
	if err != nil {
		return nil, err
	}

	return &emitOptions{
		category: args[0],
		message:  args[1],
		level:    level,
		pairs:    pairs,
	}, nil
}

// emitOptions holds the event written by the emit command.
type emitOptions struct {
	category string
	message  string
	level    logging.Level
	pairs    []any
}

// execute writes the event with a logger created by the factory stored in ctx.
func (o *emitOptions) execute(ctx context.Context) error {
	h, err := hostFromContext(ctx)
	if err != nil {
		return err
	}

	ctx = logging.WithArgs(ctx, "category", o.category)
	log := h.factory.CreateLogger(o.category)
	if !log.IsEnabled(o.level) {
		logging.FromContext(ctx).Debug("event filtered", "level", o.level.String())
		return nil
	}

	log.Log(o.level, o.message, o.pairs...)
	return nil
}

// EmitCmd return the "emit" cli command for writing a single log event.
func EmitCmd() *cobra.Command {
	flags := &emitFlags{}
	cmd := &cobra.Command{
		Use:     emitCmdUsage,
		Short:   heredoc.Doc(emitCmdShort),
		Long:    heredoc.Doc(emitCmdLong),
		Example: heredoc.Doc(emitCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: closingHost(func(cmd *cobra.Command, args []string) error {
			opts, err := flags.toOptions(args)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		}),
	}

	flags.addFlags(cmd)
	return cmd
}
