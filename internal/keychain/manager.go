// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain stores the language-model API key in the OS credential store
// so users do not have to export it in every shell.
//
// macOS Keychain (through the security command or the keyring library) and Windows
// Credential Manager are supported. Other platforms rely on environment variables.
package keychain

import (
	"errors"
	"runtime"
	"sync"

	"github.com/99designs/keyring"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "asksql"

// KeyAPIKey is the keychain entry holding the completion endpoint credential.
const KeyAPIKey = "llm_api_key"

// ErrEmptyAPIKey is returned for empty keys on save and empty entries on load.
var ErrEmptyAPIKey = errors.New("empty API key")

var (
	sharedMu      sync.Mutex
	sharedManager *Manager
)

// store is a string key/value credential backend.
type store interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// ringStore adapts a keyring.Keyring to store.
type ringStore struct {
	ring keyring.Keyring
}

func (r ringStore) Set(key, value string) error {
	return r.ring.Set(keyring.Item{Key: key, Data: []byte(value), Label: ServiceName + " " + key})
}

func (r ringStore) Get(key string) (string, error) {
	it, err := r.ring.Get(key)
	if err != nil {
		return "", err
	}
	return string(it.Data), nil
}

func (r ringStore) Delete(key string) error {
	if err := r.ring.Remove(key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}

// Manager guards access to the credential store. It is safe for concurrent use.
type Manager struct {
	mu    sync.RWMutex
	store store
}

// NewManager opens the platform credential store. On macOS the security
// command is preferred, with the keyring library as fallback.
func NewManager() (*Manager, error) {
	if runtime.GOOS == "darwin" {
		if sec, err := newSecurityBackend(); err == nil {
			return &Manager{store: sec}, nil
		}
	}

	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return newManagerWithRing(ring), nil
}

func newManagerWithRing(ring keyring.Keyring) *Manager {
	return &Manager{store: ringStore{ring: ring}}
}

// GetManager returns the process-wide Manager, opening it on first use.
// A failed open is retried on the next call.
func GetManager() (*Manager, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedManager == nil {
		m, err := NewManager()
		if err != nil {
			return nil, err
		}
		sharedManager = m
	}
	return sharedManager, nil
}

func openRing() (keyring.Keyring, error) {
	cfg := keyring.Config{ServiceName: ServiceName}
	switch runtime.GOOS {
	case "darwin":
		cfg.AllowedBackends = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
		cfg.PassPrefix = ServiceName
	case "windows":
		cfg.AllowedBackends = []keyring.BackendType{keyring.WinCredBackend}
		cfg.WinCredPrefix = ServiceName
	default:
		return nil, errors.New("secure storage not supported on this OS (macOS/Windows only)")
	}

	ring, err := keyring.Open(cfg)
	if err != nil && runtime.GOOS == "darwin" {
		return nil, errors.New("macOS Keychain unavailable; install 'pass' (brew install pass gnupg) or export GROQ_API_KEY")
	}
	return ring, err
}

// SaveAPIKey stores the model API key.
func (m *Manager) SaveAPIKey(key string) error {
	if key == "" {
		return ErrEmptyAPIKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Set(KeyAPIKey, key)
}

// LoadAPIKey returns the stored model API key.
func (m *Manager) LoadAPIKey() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key, err := m.store.Get(KeyAPIKey)
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", ErrEmptyAPIKey
	}
	return key, nil
}

// ClearAPIKey removes the stored API key. A missing entry is not an error.
func (m *Manager) ClearAPIKey() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Delete(KeyAPIKey)
}
