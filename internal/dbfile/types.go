// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package dbfile locates, validates, loads and opens the SQLite database file a
// session works on.
package dbfile

import "fmt"

// Source tells where the chosen database path came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceLoaded  Source = "loaded"
	SourceDefault Source = "default"
)

// Location is a resolved database file.
type Location struct {
	Path   string
	Source Source
}

// FileError represents a file that exists but cannot be used as a database.
type FileError struct {
	Path   string
	Reason string
	Hint   string
}

func (e *FileError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("invalid database file %s: %s\nHint: %s", e.Path, e.Reason, e.Hint)
	}
	return fmt.Sprintf("invalid database file %s: %s", e.Path, e.Reason)
}

// NewFileError creates a new FileError
func NewFileError(path, reason, hint string) *FileError {
	return &FileError{
		Path:   path,
		Reason: reason,
		Hint:   hint,
	}
}
