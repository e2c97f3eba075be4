// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package info

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionString(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		version   string
		buildDate string
		expected  string
	}{
		"development build": {
			version:  "DEV",
			expected: "DEV, Go Version: go1.25.0",
		},
		"release without build date": {
			version:  "1.0.0",
			expected: "1.0.0, Go Version: go1.25.0",
		},
		"release with build date": {
			version:   "1.0.0",
			buildDate: "2026-10-18",
			expected:  "1.0.0 (2026-10-18), Go Version: go1.25.0",
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expected, VersionString(test.version, test.buildDate, "go1.25.0"))
		})
	}
}

func TestServiceVersionInformation(t *testing.T) {
	assert.Equal(t, VersionString(Version, BuildDate, runtime.Version()), ServiceVersionInformation())
}
