// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	internalcmd "github.com/mia-platform/logfactory/internal/cmd"
	"github.com/mia-platform/logfactory/internal/info"
	"github.com/mia-platform/logfactory/logging"
)

var (
	// Version is injected at build time via the Makefile.
	Version = info.Version
	// BuildDate is injected at build time via the Makefile.
	BuildDate = info.BuildDate

	appName      = info.AppName
	versionShort = "Display the " + appName + " version"
)

const (
	appShort = "logfactory builds leveled, filtered loggers from a dependency registry"

	logLevelFlagName      = "log-level"
	logLevelShortFlagName = "v"

	loggingConfigFlagName      = "logging-config"
	loggingConfigShortFlagName = "f"
	loggingConfigFlagUsage     = "path to a yaml file with the logging configuration, overrides LOGGING_CONFIG_PATH"

	versionCmdName = "version"
)

var (
	allLoggerLevels = []string{
		logging.Trace.String(),
		logging.Debug.String(),
		logging.Information.String(),
		logging.Warning.String(),
		logging.Error.String(),
		logging.Critical.String(),
		logging.None.String(),
	}
	logLevelFlagUsage = "set the minimum logging level, overrides LOG_LEVEL (possible values: " + strings.Join(allLoggerLevels, ", ") + ")"
)

// rootFlags holds the persistent flags shared across the command tree.
type rootFlags struct {
	logLevel      string
	loggingConfig string
}

// addFlags registers the persistent CLI flags on cmd.
func (f *rootFlags) addFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&f.logLevel, logLevelFlagName, logLevelShortFlagName, "", heredoc.Doc(logLevelFlagUsage))
	flags.StringVarP(&f.loggingConfig, loggingConfigFlagName, loggingConfigShortFlagName, "", loggingConfigFlagUsage)
}

func main() {
	cmd := rootCmd()

	exitCode := 0
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		exitCode = 1
	}

	os.Exit(exitCode)
}

// rootCmd constructs the root Cobra command with shared configuration.
func rootCmd() *cobra.Command {
	flag := &rootFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: heredoc.Doc(appShort),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := internalcmd.Setup(cmd, flag.logLevel, flag.loggingConfig); err != nil {
				cmd.PrintErrln(err)
				return err
			}

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return internalcmd.Teardown(cmd)
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(err)
		_ = c.Usage()
		return err
	})

	flag.addFlags(cmd)
	cmd.AddCommand(
		internalcmd.ConfigCmd(),
		internalcmd.EmitCmd(),
		internalcmd.ServeCmd(),
		versionCmd(),
	)

	return cmd
}

// versionCmd constructs the Cobra command that prints version information.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   versionCmdName,
		Short: heredoc.Doc(versionShort),

		Args: func(cmd *cobra.Command, args []string) error {
			err := cobra.NoArgs(cmd, args)
			if err != nil {
				cmd.PrintErrln(err)
				_ = cmd.Usage()
			}

			return err
		},
		ValidArgsFunction: cobra.NoFileCompletions,
		Run: func(cmd *cobra.Command, _ []string) {
			logging.FromContext(cmd.Context()).Debug("printing version")
			fmt.Fprintln(cmd.OutOrStdout(), info.VersionString(Version, BuildDate, runtime.Version()))
		},
	}
}
