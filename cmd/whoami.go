package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// whoamiCmd shows the account the saved token belongs to. The token is read
// locally; its claims are shown as stored and are not verified.
var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"me"},
	Short:   "Show current authenticated account",

	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		sess := a.Store().Session()
		if !sess.IsAuthenticated() {
			fmt.Println("🔒 You're not logged in yet!")
			fmt.Println("   Run 'dataweb login' to get started.")
			return nil
		}

		name := displayName(sess)
		if name == "" {
			fmt.Println("👤 Logged in (the saved token does not name its account)")
			return nil
		}
		fmt.Printf("👤 Current user: %s\n", name)
		if exp := sess.User.ExpiresAt; !exp.IsZero() {
			if time.Now().After(exp) {
				fmt.Printf("   Token expired %s; the server will ask you to log in again.\n", exp.Local().Format(time.RFC1123))
			} else {
				fmt.Printf("   Token valid until %s\n", exp.Local().Format(time.RFC1123))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
