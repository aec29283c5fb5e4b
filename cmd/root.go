// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the dataweb CLI.
// It implements subcommands for authentication and for browsing and downloading
// the dataset using the Cobra CLI framework. Every command builds the same
// composed client from internal/app and renders the page it navigates to.
package cmd

import (
	"fmt"
	"os"

	"dataweb/cli/internal/config"
	"dataweb/cli/internal/logging"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
	apiURL      string
	timeout     string
	verbose     bool
	jsonLogs    bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "dataweb",
	Short:         "dataweb CLI for the Dataset Sharing Platform",
	Long:          `dataweb is a command-line client for the Dataset Sharing Platform. It logs you in, keeps your session in the OS keychain and downloads the dataset.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			return printVersion(cmd)
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dataweb: "+logging.ErrorLine(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version and server status")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (overrides config and "+envHint+")")
	rootCmd.PersistentFlags().StringVar(&timeout, "timeout", "", "Request timeout such as 30s (overrides config and "+config.EnvTimeout+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "log-json", false, "Write diagnostics as JSON lines")
}
