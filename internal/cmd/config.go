// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mia-platform/logfactory/logging"
)

const (
	configCmdUsage = "config"
	configCmdShort = "print the effective logging configuration"
	configCmdLong  = `Print the effective logging configuration.
	The output contains the minimum level and the filter rules obtained by merging
	the environment, the command line flags and the logging configuration file,
	together with every provider attached to the logger factory.`

	configCmdExample = `# Print the configuration loaded from a file
	logfactory config --logging-config logging.yaml`
)

// providerView describes a provider attached to the logger factory.
type providerView struct {
	Type  logging.ProviderType `yaml:"type"`
	Alias string               `yaml:"alias,omitempty"`
}

// configView is the document printed by the config command.
type configView struct {
	Options   logging.FilterOptions `yaml:"options"`
	Providers []providerView        `yaml:"providers"`
}

// ConfigCmd return the "config" cli command for printing the logging configuration.
func ConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:     configCmdUsage,
		Short:   heredoc.Doc(configCmdShort),
		Long:    heredoc.Doc(configCmdLong),
		Example: heredoc.Doc(configCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: closingHost(func(cmd *cobra.Command, _ []string) error {
			h, err := hostFromContext(cmd.Context())
			if err != nil {
				return handleError(cmd, err)
			}

			if err := printConfig(cmd, h.factory); err != nil {
				return handleError(cmd, err)
			}

			return nil
		}),
	}
}

func newConfigView(factory *logging.Factory) configView {
	view := configView{
		Options:   factory.Options(),
		Providers: make([]providerView, 0),
	}

	for _, providerType := range factory.ProviderTypes() {
		alias, _ := factory.Alias(providerType)
		view.Providers = append(view.Providers, providerView{Type: providerType, Alias: alias})
	}

	return view
}

func printConfig(cmd *cobra.Command, factory *logging.Factory) error {
	encoder := yaml.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent(2)

	if err := encoder.Encode(newConfigView(factory)); err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}

	return encoder.Close()
}
