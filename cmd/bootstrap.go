// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"dataweb/cli/internal/apiclient"
	"dataweb/cli/internal/app"
	"dataweb/cli/internal/config"
	"dataweb/cli/internal/httperrors"
	"dataweb/cli/internal/keychain"
	"dataweb/cli/internal/logging"

	"github.com/pterm/pterm"
)

const (
	envHint = config.EnvAPIURL
	// envVerbose enables debug diagnostics like --verbose.
	envVerbose = "DATAWEB_VERBOSE"
)

// loadConfig resolves configuration and applies command-line flags on top.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if strings.TrimSpace(apiURL) != "" {
		cfg.APIURL = strings.TrimSpace(apiURL)
	}
	if strings.TrimSpace(timeout) != "" {
		cfg.Timeout = strings.TrimSpace(timeout)
	}
	if verbose || os.Getenv(envVerbose) == "1" {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *pterm.Logger {
	return logging.New(logging.Options{
		Writer: os.Stderr,
		Level:  cfg.LogLevel,
		JSON:   jsonLogs,
	})
}

// openApp builds the composed client over the OS keychain. Callers must Close it.
func openApp() (*app.App, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	log := newLogger(cfg)

	km, err := keychain.NewManager(keychain.Options{Backend: cfg.Keyring.Backend})
	if err != nil {
		return nil, cfg, fmt.Errorf("open secure storage: %w", err)
	}
	a, err := app.New(cfg, km,
		app.WithLogger(log),
		app.WithClientOptions(apiclient.WithUserAgent("dataweb-cli/"+Version)),
	)
	if err != nil {
		return nil, cfg, err
	}
	log.Debug("client ready", log.Args("api_url", cfg.APIURL, "authenticated", a.Store().IsAuthenticated()))
	return a, cfg, nil
}

// host returns the API host for error messages.
func host(cfg config.Config) string {
	return httperrors.ExtractHostFromURL(cfg.APIURL)
}
