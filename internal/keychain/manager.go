// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides thread-safe durable storage for dataweb secrets.
// It manages all interactions with the OS keychain/credential store through
// github.com/99designs/keyring and satisfies session.Storage, so the session
// store can persist the bearer token without knowing where it ends up.
//
// On macOS the login Keychain is used, on Windows the Credential Manager, on
// Linux the Secret Service, KWallet or kernel keyctl. When none of these is
// available an encrypted file keyring in the XDG data directory is used.
package keychain

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"dataweb/cli/internal/session"
	"dataweb/cli/internal/xdg"

	"github.com/99designs/keyring"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "dataweb"

// EnvFilePassword names the environment variable holding the passphrase for
// the encrypted file backend. Without it the passphrase is prompted for.
const EnvFilePassword = "DATAWEB_KEYRING_PASSWORD"

// Manager provides thread-safe key/value operations on a keyring.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

var _ session.Storage = (*Manager)(nil)

// Options tune how the OS keyring is opened.
type Options struct {
	// Backend restricts the keyring to one backend type, e.g. "file".
	Backend string
	// FileDir overrides the directory of the file backend.
	FileDir string
}

// NewManager opens the OS keyring and wraps it in a Manager.
func NewManager(opts Options) (*Manager, error) {
	ring, err := openRing(opts)
	if err != nil {
		return nil, err
	}
	return &Manager{ring: ring}, nil
}

// NewManagerWithRing wraps an already opened keyring.
// Tests pass a keyring.NewArrayKeyring here.
func NewManagerWithRing(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// openRing opens the OS keyring, falling back to the encrypted file backend.
func openRing(opts Options) (keyring.Keyring, error) {
	fileDir := opts.FileDir
	if fileDir == "" {
		dir, err := xdg.DataDir()
		if err != nil {
			return nil, err
		}
		fileDir = filepath.Join(dir, "keyring")
	}

	cfg := keyring.Config{
		ServiceName:              ServiceName,
		KeychainTrustApplication: true,
		KeyCtlScope:              "user",
		LibSecretCollectionName:  ServiceName,
		KWalletAppID:             ServiceName,
		KWalletFolder:            ServiceName,
		PassPrefix:               ServiceName,
		WinCredPrefix:            ServiceName,
		FileDir:                  fileDir,
		FilePasswordFunc:         filePassword,
	}
	if opts.Backend != "" {
		cfg.AllowedBackends = []keyring.BackendType{keyring.BackendType(opts.Backend)}
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	return ring, nil
}

// filePassword returns the file backend passphrase from the environment,
// prompting on the terminal when it is unset.
func filePassword(prompt string) (string, error) {
	if pw := os.Getenv(EnvFilePassword); pw != "" {
		return pw, nil
	}
	return keyring.TerminalPrompt(prompt)
}

// Get returns the value stored under key, or session.ErrNotFound.
// This method is thread-safe.
func (m *Manager) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", session.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if len(it.Data) == 0 {
		return "", session.ErrNotFound
	}
	return string(it.Data), nil
}

// Set stores value under key, replacing any previous value.
// This method is thread-safe.
func (m *Manager) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ring.Set(keyring.Item{
		Key:         key,
		Data:        []byte(value),
		Label:       ServiceName + " " + key,
		Description: "dataweb API credential",
	})
}

// Delete removes key. Deleting a missing key is not an error.
// This method is thread-safe.
func (m *Manager) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ring.Remove(key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Keys lists every key held for the dataweb service.
func (m *Manager) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ring.Keys()
}
