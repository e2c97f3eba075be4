// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logging

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Level is the severity of a log event.
type Level int

const (
	Trace Level = iota
	Debug
	Information
	Warning
	Error
	Critical
	// None disables logging when used as a minimum level.
	None
)

var levelNames = [...]string{
	Trace:       "Trace",
	Debug:       "Debug",
	Information: "Information",
	Warning:     "Warning",
	Error:       "Error",
	Critical:    "Critical",
	None:        "None",
}

func (l Level) String() string {
	if l < Trace || l > None {
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}

	return levelNames[l]
}

// ParseLevel returns the Level matching name, ignoring case.
// Short forms like INFO, WARN and CRIT are accepted too.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return Trace, nil
	case "DEBUG":
		return Debug, nil
	case "INFORMATION", "INFO":
		return Information, nil
	case "WARNING", "WARN":
		return Warning, nil
	case "ERROR":
		return Error, nil
	case "CRITICAL", "CRIT":
		return Critical, nil
	case "NONE":
		return None, nil
	default:
		return Information, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
	}
}

// LevelFromString works like ParseLevel but falls back to Information for unknown names.
func LevelFromString(name string) Level {
	level, err := ParseLevel(name)
	if err != nil {
		return Information
	}

	return level
}

// Enabled reports whether an event at level passes the minimum l.
func (l Level) Enabled(level Level) bool {
	return level != None && l != None && level >= l
}

func (l Level) MarshalText() ([]byte, error) {
	if l < Trace || l > None {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, int(l))
	}

	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	level, err := ParseLevel(string(text))
	if err != nil {
		return err
	}

	*l = level
	return nil
}

// UnmarshalYAML decodes a level from its name.
func (l *Level) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: level must be a scalar", ErrInvalidLevel, value.Line)
	}

	return l.UnmarshalText([]byte(value.Value))
}
