// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the model API key comes from the
// environment or the OS keychain and is never written to disk.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"asksql/cli/internal/xdg"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	// DefaultModel is the model identifier sent with every completion request.
	DefaultModel = "llama3-70b-8192"
	// DefaultDBPath is used when nothing was loaded and no --db flag is given.
	DefaultDBPath = "transacoes.db"
)

// Environment variables consulted by Load and ResolveAPIKey.
const (
	EnvModel   = "ASKSQL_MODEL"
	EnvBaseURL = "ASKSQL_BASE_URL"
	EnvDB      = "ASKSQL_DB"
	EnvGroqKey = "GROQ_API_KEY"
	EnvAPIKey  = "ASKSQL_API_KEY"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	LogLevel string    `json:"log_level"`
	LLM      LLMConfig `json:"llm"`
	DB       DBConfig  `json:"db"`
}

// LLMConfig describes the completion endpoint.
type LLMConfig struct {
	BaseURL     string  `json:"base_url"`
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
}

// DBConfig holds database file settings.
type DBConfig struct {
	DefaultPath string `json:"default_path"`
}

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		LogLevel: "info",
		LLM: LLMConfig{
			BaseURL: DefaultBaseURL,
			Model:   DefaultModel,
		},
		DB: DBConfig{DefaultPath: DefaultDBPath},
	}
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; missing file returns defaults. Environment
// overrides are applied last.
func Load() (Config, error) {
	c := Defaults()
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.applyEnv(os.Getenv)
			return c, nil
		}
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, err
	}
	c.fillDefaults()
	c.applyEnv(os.Getenv)
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// fillDefaults restores defaults for fields a partial config file left empty.
func (c *Config) fillDefaults() {
	d := Defaults()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = d.LLM.BaseURL
	}
	if c.LLM.Model == "" {
		c.LLM.Model = d.LLM.Model
	}
	if c.DB.DefaultPath == "" {
		c.DB.DefaultPath = d.DB.DefaultPath
	}
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvModel)); v != "" {
		c.LLM.Model = v
	}
	if v := strings.TrimSpace(getenv(EnvBaseURL)); v != "" {
		c.LLM.BaseURL = v
	}
	if v := strings.TrimSpace(getenv(EnvDB)); v != "" {
		c.DB.DefaultPath = v
	}
}
