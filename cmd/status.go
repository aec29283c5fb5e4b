// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"time"

	"dataweb/cli/internal/httperrors"

	"github.com/spf13/cobra"
)

// statusCmd checks that the server answers and reports the session state.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the server connection and login state",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cfg, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		var msg string
		err = withSpinner("Contacting server", func() error {
			var err error
			msg, err = a.Ping(ctx)
			return err
		})
		if err != nil {
			return httperrors.FormatRequestError(err, "contacting the server", host(cfg))
		}

		fmt.Printf("🟢 %s is up", a.Client().BaseURL())
		if msg != "" {
			fmt.Printf(": %s", msg)
		}
		fmt.Println()
		if a.Store().IsAuthenticated() {
			fmt.Println("🔓 Logged in")
		} else {
			fmt.Println("🔒 Not logged in")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
