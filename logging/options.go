// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logging

import (
	"slices"
	"strings"
)

// FilterRule sets the minimum level for the loggers of a provider and a category prefix.
// An empty ProviderName matches every provider, an empty CategoryName every category.
// CategoryName may contain a single '*' wildcard.
type FilterRule struct {
	ProviderName string `json:"provider,omitempty" yaml:"provider,omitempty"`
	CategoryName string `json:"category,omitempty" yaml:"category,omitempty"`
	Level        Level  `json:"level" yaml:"level"`
}

func (r FilterRule) String() string {
	provider := r.ProviderName
	if provider == "" {
		provider = "*"
	}

	category := r.CategoryName
	if category == "" {
		category = "*"
	}

	return "provider=" + provider + " category=" + category + " level=" + r.Level.String()
}

// FilterOptions describes the minimum severities applied by a logger factory.
type FilterOptions struct {
	// MinLevel applies when no rule matches a provider and category.
	MinLevel Level        `json:"minLevel" yaml:"minLevel"`
	Rules    []FilterRule `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Clone returns a deep copy of o.
func (o FilterOptions) Clone() FilterOptions {
	return FilterOptions{
		MinLevel: o.MinLevel,
		Rules:    slices.Clone(o.Rules),
	}
}

// CategoryLevels returns the category prefix to level mapping of the rules that apply
// to every provider. When more rules share a prefix the last one wins.
// The empty prefix reports the rule applying to all categories, if any.
func (o FilterOptions) CategoryLevels() map[string]Level {
	levels := make(map[string]Level)
	for _, rule := range o.Rules {
		if rule.ProviderName != "" {
			continue
		}
		levels[rule.CategoryName] = rule.Level
	}

	return levels
}

// MinimumLevel returns the minimum level applied to the loggers of category
// created by the provider identified by providerType and alias.
// Pass an empty alias when the provider has none.
func (o FilterOptions) MinimumLevel(providerType ProviderType, alias, category string) Level {
	if rule, ok := o.selectRule(providerType, alias, category); ok {
		return rule.Level
	}

	return o.MinLevel
}

// selectRule picks the rule for a provider and category: rules naming the provider
// beat generic ones, then the longest category prefix wins, then the last rule wins.
func (o FilterOptions) selectRule(providerType ProviderType, alias, category string) (FilterRule, bool) {
	var best *FilterRule
	for idx := range o.Rules {
		rule := &o.Rules[idx]
		if !providerMatches(rule.ProviderName, providerType, alias) {
			continue
		}

		if !categoryMatches(rule.CategoryName, category) {
			continue
		}

		if best == nil || !isBetterRule(best, rule) {
			best = rule
		}
	}

	if best == nil {
		return FilterRule{}, false
	}

	return *best, true
}

func providerMatches(ruleProvider string, providerType ProviderType, alias string) bool {
	if ruleProvider == "" {
		return true
	}

	if strings.EqualFold(ruleProvider, string(providerType)) {
		return true
	}

	return alias != "" && strings.EqualFold(ruleProvider, alias)
}

func categoryMatches(ruleCategory, category string) bool {
	if ruleCategory == "" {
		return true
	}

	prefix, suffix, wildcard := strings.Cut(ruleCategory, "*")
	if !wildcard {
		return hasPrefixFold(category, ruleCategory)
	}

	if strings.Contains(suffix, "*") {
		return false
	}

	return len(category) >= len(prefix)+len(suffix) &&
		hasPrefixFold(category, prefix) &&
		hasSuffixFold(category, suffix)
}

// isBetterRule reports whether current must be kept over candidate.
func isBetterRule(current, candidate *FilterRule) bool {
	if (current.ProviderName != "") != (candidate.ProviderName != "") {
		return current.ProviderName != ""
	}

	return categoryWeight(current.CategoryName) > categoryWeight(candidate.CategoryName)
}

func categoryWeight(category string) int {
	return len(strings.Replace(category, "*", "", 1))
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
