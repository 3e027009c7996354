// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

//go:build darwin

package keychain

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pterm/pterm"
)

const notFoundMarker = "could not be found"

// securityBackend stores generic passwords through the macOS security command.
// Entries use ServiceName as the account and the key as the service.
type securityBackend struct{}

func newSecurityBackend() (*securityBackend, error) {
	if _, err := exec.LookPath("security"); err != nil {
		return nil, fmt.Errorf("security command not found: %w", err)
	}
	return &securityBackend{}, nil
}

// run executes security with the given arguments and returns trimmed stdout.
func (s *securityBackend) run(args ...string) (string, string, error) {
	cmd := exec.Command("security", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if os.Getenv("ASKSQL_VERBOSE") == "1" {
		pterm.Debug.Printf("keychain: security %s -> err=%v\n", args[0], err)
	}
	return strings.TrimSpace(stdout.String()), stderr.String(), err
}

func (s *securityBackend) Set(key, value string) error {
	_ = s.Delete(key)
	_, stderr, err := s.run("add-generic-password", "-a", ServiceName, "-s", key, "-w", value, "-U")
	if err != nil {
		return fmt.Errorf("failed to store '%s' in keychain: %s: %w", key, stderr, err)
	}
	return nil
}

func (s *securityBackend) Get(key string) (string, error) {
	out, stderr, err := s.run("find-generic-password", "-a", ServiceName, "-s", key, "-w")
	if err != nil {
		if strings.Contains(stderr, notFoundMarker) {
			return "", errors.New("key not found")
		}
		return "", fmt.Errorf("failed to retrieve from keychain: %s: %w", stderr, err)
	}
	return out, nil
}

func (s *securityBackend) Delete(key string) error {
	_, stderr, err := s.run("delete-generic-password", "-a", ServiceName, "-s", key)
	if err != nil && !strings.Contains(stderr, notFoundMarker) {
		return fmt.Errorf("failed to delete from keychain: %s: %w", stderr, err)
	}
	return nil
}
