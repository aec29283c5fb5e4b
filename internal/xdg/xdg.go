// Package xdg provides helpers to resolve XDG Base Directory paths for dataweb.
// It implements the XDG Base Directory specification for determining appropriate
// locations for configuration files and the encrypted file keyring.
//
// The package falls back to traditional locations when XDG environment
// variables are not set and creates directories with private permissions.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under every XDG base directory.
const AppName = "dataweb"

// ConfigDir returns the XDG config directory for dataweb.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/dataweb when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	return ensure("XDG_CONFIG_HOME", ".config")
}

// DataDir returns the XDG data directory for dataweb, home of the file keyring.
// It falls back to ~/.local/share/dataweb when XDG_DATA_HOME is unset.
func DataDir() (string, error) {
	return ensure("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func ensure(env, fallback string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, fallback)
	}
	dir := filepath.Join(base, AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
