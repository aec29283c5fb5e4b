// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"os"

	"dataweb/cli/internal/httperrors"
	"dataweb/cli/internal/router"

	"github.com/spf13/cobra"
)

// openCmd navigates to a page and renders it. Protected pages lead to the
// login page while logged out.
var openCmd = &cobra.Command{
	Use:   "open [path]",
	Short: "Show a page: /, /login, /register or /dataset",
	Args:  cobra.MaximumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		target := "/"
		if len(args) == 1 {
			target = args[0]
		}

		a, cfg, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		rt, err := a.Open(target)
		if errors.Is(err, router.ErrNotFound) {
			fmt.Printf("❌ No page at %s\n", target)
			for _, r := range a.Router().Routes() {
				fmt.Printf("   %s\n", r.Path)
			}
			return err
		}
		if err != nil {
			return err
		}
		if err := a.Render(cmd.Context(), os.Stdout); err != nil {
			return httperrors.FormatRequestError(err, "loading "+rt.Path, host(cfg))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
