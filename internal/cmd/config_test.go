// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mia-platform/logfactory/logging"
	"github.com/mia-platform/logfactory/logging/hclogprovider"
)

func TestConfigCmd(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		configPath    string
		args          []string
		expectedView  configView
		expectedError error
	}{
		"configuration from file": {
			configPath: filepath.Join("testdata", "logging.yaml"),
			expectedView: configView{
				Options: logging.FilterOptions{
					MinLevel: logging.Information,
					Rules: []logging.FilterRule{
						{CategoryName: "app.db", Level: logging.Debug},
						{CategoryName: "", Level: logging.Warning},
					},
				},
				Providers: []providerView{{Type: hclogprovider.Type, Alias: ConsoleAlias}},
			},
		},
		"configuration from environment": {
			expectedView: configView{
				Options:   logging.FilterOptions{MinLevel: logging.Information},
				Providers: []providerView{{Type: hclogprovider.Type, Alias: ConsoleAlias}},
			},
		},
		"invalid configuration file": {
			configPath:    filepath.Join("testdata", "invalid-level.yaml"),
			expectedError: logging.ErrInvalidLevel,
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			out, _, err := executeCmd(t.Context(), ConfigCmd(), test.configPath, test.args...)
			if test.expectedError != nil {
				assert.ErrorIs(t, err, test.expectedError)
				return
			}
			require.NoError(t, err)

			var view configView
			require.NoError(t, yaml.Unmarshal([]byte(out), &view))
			assert.Equal(t, test.expectedView.Options.MinLevel, view.Options.MinLevel)
			assert.ElementsMatch(t, test.expectedView.Options.Rules, view.Options.Rules)
			assert.Equal(t, test.expectedView.Providers, view.Providers)
		})
	}
}
