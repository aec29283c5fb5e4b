// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the bearer token goes to the OS keychain.
//
// Precedence, lowest first: built-in defaults, config.json, a .env file in the
// working directory, the process environment, then command-line flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dataweb/cli/internal/xdg"

	"github.com/joho/godotenv"
)

// EnvAPIURL names the environment variable carrying the API base URL.
const EnvAPIURL = "DATAWEB_API_URL"

// EnvTimeout names the environment variable carrying the request timeout.
const EnvTimeout = "DATAWEB_TIMEOUT"

// DefaultAPIURL is the development backend address.
const DefaultAPIURL = "http://127.0.0.1:8000/api"

// Config holds non-sensitive CLI settings.
type Config struct {
	APIURL   string        `json:"api_url"`
	LogLevel string        `json:"log_level"`
	Keyring  KeyringConfig `json:"keyring"`
	// Timeout bounds every API request, as a Go duration such as "30s".
	// Empty keeps the client default.
	Timeout   string          `json:"timeout,omitempty"`
	Endpoints EndpointsConfig `json:"endpoints"`
}

// EndpointsConfig overrides API paths relative to the base URL. Empty fields
// keep the built-in paths.
type EndpointsConfig struct {
	Login       string `json:"login,omitempty"`
	Register    string `json:"register,omitempty"`
	DatasetInfo string `json:"dataset_info,omitempty"`
	Download    string `json:"download,omitempty"`
}

// KeyringConfig selects where the token is persisted.
type KeyringConfig struct {
	// Backend forces a single keyring backend (e.g. "file", "keychain",
	// "wincred", "secret-service"). Empty means the OS default.
	Backend string `json:"backend"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		LogLevel: "info",
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration from the XDG config dir, then applies .env and
// environment overrides. A missing file yields defaults.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Default(), err
	}
	c, err := LoadFile(p)
	if err != nil {
		return c, err
	}

	// .env is optional; a missing file is not an error.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, fmt.Errorf("load .env: %w", err)
	}
	return ApplyEnv(c, os.Getenv), nil
}

// LoadFile reads configuration from p; missing file returns defaults.
func LoadFile(p string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse %s: %w", p, err)
	}
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	return c, nil
}

// ApplyEnv overrides c with values found through getenv.
func ApplyEnv(c Config, getenv func(string) string) Config {
	if v := strings.TrimSpace(getenv(EnvAPIURL)); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(getenv(EnvTimeout)); v != "" {
		c.Timeout = v
	}
	return c
}

// Validate checks that the API base URL is fully qualified and the timeout,
// if set, parses.
func (c Config) Validate() error {
	if err := ValidateAPIURL(c.APIURL); err != nil {
		return err
	}
	_, err := c.RequestTimeout()
	return err
}

// RequestTimeout returns the configured timeout, zero when unset.
func (c Config) RequestTimeout() (time.Duration, error) {
	if strings.TrimSpace(c.Timeout) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(c.Timeout))
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q: must be positive", c.Timeout)
	}
	return d, nil
}

// Keys lists the settings accepted by Set.
var Keys = []string{
	"api-url",
	"log-level",
	"keyring-backend",
	"timeout",
	"endpoints.login",
	"endpoints.register",
	"endpoints.dataset-info",
	"endpoints.download",
}

// Set assigns value to the setting named key. An empty value resets it.
func Set(c *Config, key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "api-url":
		if value == "" {
			value = DefaultAPIURL
		}
		c.APIURL = value
	case "log-level":
		c.LogLevel = value
	case "keyring-backend":
		c.Keyring.Backend = value
	case "timeout":
		c.Timeout = value
	case "endpoints.login":
		c.Endpoints.Login = value
	case "endpoints.register":
		c.Endpoints.Register = value
	case "endpoints.dataset-info":
		c.Endpoints.DatasetInfo = value
	case "endpoints.download":
		c.Endpoints.Download = value
	default:
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys, ", "))
	}
	return c.Validate()
}

// Get returns the value of the setting named key, using the names in Keys.
func Get(c Config, key string) (string, error) {
	switch key {
	case "api-url":
		return c.APIURL, nil
	case "log-level":
		return c.LogLevel, nil
	case "keyring-backend":
		return c.Keyring.Backend, nil
	case "timeout":
		return c.Timeout, nil
	case "endpoints.login":
		return c.Endpoints.Login, nil
	case "endpoints.register":
		return c.Endpoints.Register, nil
	case "endpoints.dataset-info":
		return c.Endpoints.DatasetInfo, nil
	case "endpoints.download":
		return c.Endpoints.Download, nil
	}
	return "", fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys, ", "))
}

// ValidateAPIURL requires an absolute http(s) URL with a host.
func ValidateAPIURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid API URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid API URL %q: missing host", raw)
	}
	return nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
