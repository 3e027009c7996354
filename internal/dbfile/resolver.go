// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dbfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "asksql/cli/internal/errors"
	"asksql/cli/internal/xdg"
)

// WorkspaceFile is the name of the loaded copy inside the state directory.
const WorkspaceFile = "uploaded.db"

// WorkspacePath returns where `asksql load` stores the loaded database.
func WorkspacePath() (string, error) {
	dir, err := xdg.StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, WorkspaceFile), nil
}

// Resolve picks the database for this session: an explicit path wins, then a
// previously loaded workspace copy, then the configured default. An explicit path
// that does not exist is an error; it never falls through to the others.
func Resolve(explicit, workspace, fallback string) (Location, error) {
	if p := strings.TrimSpace(explicit); p != "" {
		if !isFile(p) {
			return Location{}, missing(p)
		}
		return Location{Path: p, Source: SourceFlag}, nil
	}
	if workspace != "" && isFile(workspace) {
		return Location{Path: workspace, Source: SourceLoaded}, nil
	}
	if p := strings.TrimSpace(fallback); p != "" && isFile(p) {
		return Location{Path: p, Source: SourceDefault}, nil
	}
	return Location{}, missing(fallback)
}

func missing(path string) error {
	return apperrors.New(apperrors.MissingDatabase,
		fmt.Sprintf("database file %q was not found; load one with 'asksql load <file>' or pass --db", path))
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
