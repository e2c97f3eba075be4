// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logging

import (
	"errors"
)

var (
	// ErrInvalidArgument reports a missing required argument.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidLevel reports an unknown level name.
	ErrInvalidLevel = errors.New("invalid level")
	// ErrParsing reports failures that occur while decoding logging configuration.
	ErrParsing = errors.New("error parsing logging configuration")
	// ErrFactoryClosed is returned when adding providers to a closed factory.
	ErrFactoryClosed = errors.New("logger factory closed")
)

// Ensure ArgumentError implements the error interface.
var _ error = &ArgumentError{}

// ArgumentError carries the name of the argument that was missing.
type ArgumentError struct {
	Name string
}

func newArgumentError(name string) *ArgumentError {
	return &ArgumentError{Name: name}
}

func (e *ArgumentError) Error() string {
	return ErrInvalidArgument.Error() + ": " + e.Name + " is required"
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func (e *ArgumentError) Is(target error) bool {
	if e == nil || target == nil {
		return e == target
	}

	if t, ok := target.(*ArgumentError); ok {
		return e.Name == t.Name
	}

	return false
}
