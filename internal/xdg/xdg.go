// Package xdg provides helpers to resolve XDG Base Directory paths for asksql.
// Configuration lives under the config directory; databases loaded by the user
// are copied into the state directory so they survive between sessions.
package xdg

import (
	"os"
	"path/filepath"
)

const appDir = "asksql"

// ConfigDir returns the XDG config directory for asksql.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/asksql when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	return resolve("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for asksql.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.local/state/asksql when XDG_STATE_HOME is unset.
func StateDir() (string, error) {
	return resolve("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func resolve(envKey, homeFallback string) (string, error) {
	base := os.Getenv(envKey)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, homeFallback)
	}
	dir := filepath.Join(base, appDir)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
