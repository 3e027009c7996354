// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure of a pipeline step is returned as an *E carrying a machine-readable
// Kind, so the CLI can decide how to present it while keeping the session alive.
//
// The package supports wrapping underlying errors while maintaining error kind information.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// MissingDatabase indicates that no database file is available to work on.
	MissingDatabase Kind = "missing_database"
	// EmptyQuestion indicates the user submitted a blank question.
	EmptyQuestion Kind = "empty_question"
	// GenerationFailed indicates the remote model call failed or returned no content.
	GenerationFailed Kind = "generation_failed"
	// ExecutionFailed indicates the extracted SQL could not be executed.
	ExecutionFailed Kind = "execution_failed"
	// ConfigInvalid indicates missing or malformed configuration, such as an absent API key.
	ConfigInvalid Kind = "config_invalid"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the Kind of the first *E in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Detail returns the user-facing part of err: the message plus the underlying
// cause for *E values, or err.Error() otherwise.
func Detail(err error) string {
	var e *E
	if !stderrors.As(err, &e) {
		return err.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}
