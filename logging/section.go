// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logging

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultCategoryKey is the logLevel key applying to every category.
const defaultCategoryKey = "default"

// Section is the logging configuration document of an application.
//
//	logLevel:
//	  default: Information
//	  app.db: Warning
//	providers:
//	  console:
//	    logLevel:
//	      default: Debug
//	    options:
//	      json: true
//
// Provider sections are keyed by provider alias or by full provider type.
type Section struct {
	LogLevel  map[string]Level           `yaml:"logLevel,omitempty"`
	Providers map[string]ProviderSection `yaml:"providers,omitempty"`
}

// ProviderSection holds the settings of a single provider.
type ProviderSection struct {
	LogLevel map[string]Level `yaml:"logLevel,omitempty"`
	// Options is left undecoded; providers decode it into their own option types.
	Options yaml.Node `yaml:"options,omitempty"`
}

// LoadSection decodes a Section from r. An empty document yields an empty Section.
func LoadSection(r io.Reader) (Section, error) {
	var section Section
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&section); err != nil && !errors.Is(err, io.EOF) {
		return Section{}, fmt.Errorf("%w: %w", ErrParsing, err)
	}

	return section, nil
}

// LoadSectionFromPath decodes the Section stored in the file at path.
func LoadSectionFromPath(path string) (Section, error) {
	file, err := os.Open(path)
	if err != nil {
		return Section{}, err
	}
	defer file.Close()

	section, err := LoadSection(file)
	if err != nil {
		return Section{}, fmt.Errorf("logging configuration %q: %w", path, err)
	}

	return section, nil
}

// Rules returns the filter rules described by the section. Root rules come first,
// followed by provider rules ordered by provider key.
func (s Section) Rules() []FilterRule {
	rules := levelRules("", s.LogLevel)
	for _, provider := range slices.Sorted(maps.Keys(s.Providers)) {
		rules = append(rules, levelRules(provider, s.Providers[provider].LogLevel)...)
	}

	return rules
}

// Configure appends the section rules to options.
func (s Section) Configure(options *FilterOptions) {
	options.Rules = append(options.Rules, s.Rules()...)
}

// Provider returns the section of the provider identified by providerType, looking it up
// by full type first and then by the alias resolved through aliases.
func (s Section) Provider(providerType ProviderType, aliases *AliasContext) (ProviderSection, bool) {
	if section, ok := lookupFold(s.Providers, string(providerType)); ok {
		return section, true
	}

	if alias, ok := aliases.Alias(providerType); ok {
		return lookupFold(s.Providers, alias)
	}

	return ProviderSection{}, false
}

// Decode decodes the provider options into out, rejecting fields unknown to out.
// Absent options leave out untouched.
func (p ProviderSection) Decode(out any) error {
	if p.Options.IsZero() {
		return nil
	}

	raw, err := yaml.Marshal(&p.Options)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrParsing, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrParsing, err)
	}

	return nil
}

func levelRules(provider string, levels map[string]Level) []FilterRule {
	rules := make([]FilterRule, 0, len(levels))
	for _, category := range slices.Sorted(maps.Keys(levels)) {
		ruleCategory := category
		if strings.EqualFold(category, defaultCategoryKey) {
			ruleCategory = ""
		}

		rules = append(rules, FilterRule{
			ProviderName: provider,
			CategoryName: ruleCategory,
			Level:        levels[category],
		})
	}

	return rules
}

func lookupFold[V any](values map[string]V, key string) (V, bool) {
	if value, ok := values[key]; ok {
		return value, true
	}

	for candidate, value := range values {
		if strings.EqualFold(candidate, key) {
			return value, true
		}
	}

	var zero V
	return zero, false
}
