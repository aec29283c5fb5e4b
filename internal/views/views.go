// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package views renders the pages the router can display.
// Views only render; they never log in, log out or navigate.
package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"dataweb/cli/internal/apiclient"
	"dataweb/cli/internal/router"
	"dataweb/cli/internal/session"

	"github.com/pterm/pterm"
)

// SessionReader exposes the read side of the session.
type SessionReader interface {
	IsAuthenticated() bool
	Session() session.Session
}

// InfoSource fetches the public dataset description.
type InfoSource interface {
	DatasetInfo(ctx context.Context) (*apiclient.DatasetInfo, error)
}

var (
	titleStyle = pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)
	hintStyle  = pterm.NewStyle(pterm.FgGray)
)

// Home is the landing page.
func Home(sess SessionReader) router.View {
	return router.ViewFunc(func(_ context.Context, w io.Writer) error {
		fmt.Fprintln(w, titleStyle.Sprint("Dataset Sharing Platform"))
		fmt.Fprintln(w)
		if sess.IsAuthenticated() {
			fmt.Fprintf(w, "👤 Logged in as %s\n", displayName(sess.Session()))
			fmt.Fprintln(w, hintStyle.Sprint("   Run 'dataweb open /dataset' to browse the dataset."))
		} else {
			fmt.Fprintln(w, "🔒 You're not logged in yet!")
			fmt.Fprintln(w, hintStyle.Sprint("   Run 'dataweb login' or 'dataweb register' to get started."))
		}
		fmt.Fprintln(w, hintStyle.Sprint("   Run 'dataweb status' to check the server."))
		return nil
	})
}

// Login tells the user how to authenticate.
func Login() router.View {
	return router.ViewFunc(func(_ context.Context, w io.Writer) error {
		fmt.Fprintln(w, titleStyle.Sprint("Log in"))
		fmt.Fprintln(w)
		fmt.Fprintln(w, "This page requires an account.")
		fmt.Fprintln(w, hintStyle.Sprint("   Run 'dataweb login' to sign in."))
		fmt.Fprintln(w, hintStyle.Sprint("   No account yet? Run 'dataweb register'."))
		return nil
	})
}

// Register explains the registration rules.
func Register() router.View {
	return router.ViewFunc(func(_ context.Context, w io.Writer) error {
		fmt.Fprintln(w, titleStyle.Sprint("Create an account"))
		fmt.Fprintln(w)
		items := []pterm.BulletListItem{
			{Level: 0, Text: "Username: 3 to 50 characters"},
			{Level: 0, Text: "Email: a valid address"},
			{Level: 0, Text: "Password: at least 6 characters"},
		}
		list, err := pterm.DefaultBulletList.WithItems(items).Srender()
		if err != nil {
			return err
		}
		fmt.Fprint(w, list)
		fmt.Fprintln(w, hintStyle.Sprint("   Run 'dataweb register' to sign up, then 'dataweb login'."))
		return nil
	})
}

// Dataset shows the dataset description and how to download it.
func Dataset(src InfoSource) router.View {
	return router.ViewFunc(func(ctx context.Context, w io.Writer) error {
		info, err := src.DatasetInfo(ctx)
		if err != nil {
			return err
		}

		var details strings.Builder
		if info.Description != "" {
			details.WriteString(info.Description)
			details.WriteString("\n\n")
		}
		fmt.Fprintf(&details, "Version: %s", orUnknown(info.Version))
		if info.Author != "" {
			fmt.Fprintf(&details, "\nAuthor: %s", info.Author)
		}
		if info.Citation != "" {
			fmt.Fprintf(&details, "\nCitation: %s", info.Citation)
		}

		box := pterm.DefaultBox.
			WithTitle(titleStyle.Sprint(orUnknown(info.Title))).
			WithPadding(1).
			Sprint(details.String())
		fmt.Fprintln(w, box)

		if len(info.FileTypes) > 0 {
			fmt.Fprintln(w, pterm.Bold.Sprint("Contents"))
			var items []pterm.BulletListItem
			for _, ft := range info.FileTypes {
				items = append(items, pterm.BulletListItem{Level: 0, Text: ft})
			}
			list, err := pterm.DefaultBulletList.WithItems(items).Srender()
			if err != nil {
				return err
			}
			fmt.Fprint(w, list)
		}
		fmt.Fprintln(w, hintStyle.Sprint("   Run 'dataweb dataset download' to fetch the archive."))
		return nil
	})
}

func displayName(s session.Session) string {
	if s.User != nil && s.User.Username != "" {
		return s.User.Username
	}
	return "an unnamed account"
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
