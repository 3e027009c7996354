// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dbfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Load copies the SQLite file at src to dest, replacing any previous copy.
// The copy is written next to dest and renamed into place while holding
// dest+".lock", so concurrent sessions never observe a half-written file.
func Load(src, dest string) (int64, error) {
	if err := Validate(src); err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o700); err != nil {
		return 0, fmt.Errorf("failed to create workspace directory: %w", err)
	}

	lock := flock.New(dest + ".lock")
	if err := lock.Lock(); err != nil {
		return 0, fmt.Errorf("failed to acquire load lock: %w", err)
	}
	defer lock.Unlock()

	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".load-*.db")
	if err != nil {
		return 0, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	n, err := io.Copy(tmp, in)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("failed to copy database: %w", err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		return 0, fmt.Errorf("failed to move database into place: %w", err)
	}
	return n, nil
}
