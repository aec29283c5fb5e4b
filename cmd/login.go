// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"

	"dataweb/cli/internal/httperrors"
	"dataweb/cli/internal/router"
	"dataweb/cli/internal/session"
	"dataweb/cli/internal/terminal"

	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginForce    bool
)

// loginCmd exchanges a username and password for a bearer token, stores it
// in the OS keychain and shows the dataset page.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"signin"},
	Short:   "Log in with your username and password",
	Long: `The login command asks for your username and password and exchanges them
for an access token. The token is kept in the OS keychain so later commands
stay logged in until you run 'dataweb logout'.

The password is read without echo. When input is piped, one line is read for
each prompt.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, cfg, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if a.Store().IsAuthenticated() && !loginForce {
			name := displayName(a.Store().Session())
			if name == "" {
				name = "your saved account"
			}
			fmt.Printf("Already logged in as %s\n", name)
			fmt.Println("   Run 'dataweb login --force' to switch accounts.")
			return nil
		}

		p := terminal.NewPrompter(os.Stdin, os.Stdout)
		username := loginUsername
		if username == "" {
			if username, err = p.Line("Username: "); err != nil {
				return fmt.Errorf("username: %w", err)
			}
		}
		password, err := p.Secret("Password: ")
		if err != nil {
			return fmt.Errorf("password: %w", err)
		}

		var rt *router.Route
		err = withSpinner("Signing in", func() error {
			var err error
			rt, err = a.Login(cmd.Context(), session.Credentials{Username: username, Password: password})
			return err
		})
		if err != nil {
			return httperrors.FormatRequestError(err, "logging in", host(cfg))
		}

		fmt.Println(loginGreeting(displayName(a.Store().Session())))
		fmt.Println()
		if err := a.Render(cmd.Context(), os.Stdout); err != nil {
			return httperrors.FormatRequestError(err, "loading "+rt.Path, host(cfg))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username (prompted when empty)")
	loginCmd.Flags().BoolVar(&loginForce, "force", false, "Log in again even if a session is saved")
}
