// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"

	"dataweb/cli/internal/httperrors"
	"dataweb/cli/internal/session"
	"dataweb/cli/internal/terminal"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/spf13/cobra"
)

var (
	registerUsername string
	registerEmail    string
)

// registerCmd creates an account and leaves the user on the login page.
var registerCmd = &cobra.Command{
	Use:     "register",
	Aliases: []string{"signup"},
	Short:   "Create an account on the platform",
	Long: `The register command creates a new account. Usernames are 3 to 50
characters, the email must be valid and the password at least 6 characters.
Registering does not log you in; run 'dataweb login' afterwards.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, cfg, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		p := terminal.NewPrompter(os.Stdin, os.Stdout)
		reg := session.Registration{Username: registerUsername, Email: registerEmail}
		if reg.Username == "" {
			if reg.Username, err = p.Line("Username: "); err != nil {
				return fmt.Errorf("username: %w", err)
			}
		}
		if reg.Email == "" {
			if reg.Email, err = p.Line("Email: "); err != nil {
				return fmt.Errorf("email: %w", err)
			}
		}
		if reg.Password, err = p.Secret("Password: "); err != nil {
			return fmt.Errorf("password: %w", err)
		}

		if err := validateRegistration(reg); err != nil {
			fmt.Println("❌ " + err.Error())
			return err
		}

		err = withSpinner("Creating account", func() error {
			_, err := a.Register(cmd.Context(), reg)
			return err
		})
		if err != nil {
			return httperrors.FormatRequestError(err, "registering", host(cfg))
		}

		fmt.Printf("✅ Account %s created.\n\n", reg.Username)
		return a.Render(cmd.Context(), os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "Username (prompted when empty)")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Email address (prompted when empty)")
}

// validateRegistration applies the platform's account rules before any request is sent.
func validateRegistration(reg session.Registration) error {
	return validation.ValidateStruct(&reg,
		validation.Field(&reg.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&reg.Email, validation.Required, is.Email),
		validation.Field(&reg.Password, validation.Required, validation.Length(6, 0)),
	)
}
