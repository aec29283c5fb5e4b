// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// logoutCmd removes the saved token. The server keeps no session, so there
// is nothing to revoke remotely.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved session",
	Long: `The logout command clears the access token from memory and from the OS
keychain. Logging out always succeeds locally; a keychain that cannot be
written is reported in the diagnostics only.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.Logout(); err != nil {
			return err
		}
		fmt.Println("✅ You have been logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
