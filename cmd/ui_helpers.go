// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"sync"
	"time"

	"dataweb/cli/internal/session"

	"atomicgo.dev/cursor"
	"golang.org/x/term"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// startInlineSpinner draws frames followed by text on a single line of w
// until the returned function is called. The line is cleared on stop.
func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", frames[i%len(frames)], text)
				i++
			}
		}
	}()
	return func() {
		close(stop)
		wg.Wait()
	}
}

// withSpinner runs fn while a spinner is shown on an interactive stdout.
func withSpinner(text string, fn func() error) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fn()
	}
	cursor.Hide()
	defer cursor.Show()
	stop := startInlineSpinner(os.Stdout, text, spinnerFrames, 120*time.Millisecond)
	err := fn()
	stop()
	return err
}

// displayName returns the username carried by the session token, if any.
func displayName(s session.Session) string {
	if s.User != nil && s.User.Username != "" {
		return s.User.Username
	}
	return ""
}

// loginGreeting returns a random greeting for name.
func loginGreeting(name string) string {
	if name == "" {
		return "✅ Login successful!"
	}
	greetings := []string{
		"🎉 Welcome back, %s!",
		"✨ Great to see you, %s!",
		"🚀 You're all set, %s!",
		"🔓 Access granted! Welcome %s!",
	}
	return fmt.Sprintf(greetings[rand.Intn(len(greetings))], name)
}
