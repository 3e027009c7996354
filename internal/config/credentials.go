// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package config

import (
	"strings"

	apperrors "asksql/cli/internal/errors"
)

// KeyLoader is the subset of the keychain manager used to look up a stored API key.
type KeyLoader interface {
	LoadAPIKey() (string, error)
}

// Source names where an API key was found.
type Source string

const (
	SourceGroqEnv   Source = EnvGroqKey
	SourceAPIKeyEnv Source = EnvAPIKey
	SourceKeychain  Source = "keychain"
)

// ResolveAPIKey returns the model API key, trying GROQ_API_KEY, ASKSQL_API_KEY and
// finally the keychain. keys may be nil when secure storage is unavailable.
func ResolveAPIKey(getenv func(string) string, keys KeyLoader) (string, Source, error) {
	if v := strings.TrimSpace(getenv(EnvGroqKey)); v != "" {
		return v, SourceGroqEnv, nil
	}
	if v := strings.TrimSpace(getenv(EnvAPIKey)); v != "" {
		return v, SourceAPIKeyEnv, nil
	}
	if keys != nil {
		if v, err := keys.LoadAPIKey(); err == nil && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), SourceKeychain, nil
		}
	}
	return "", "", apperrors.New(apperrors.ConfigInvalid,
		"no API key configured; set GROQ_API_KEY or run 'asksql key set'")
}
