// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors provides user-friendly error handling for HTTP requests.
package httperrors

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"

	"dataweb/cli/internal/apiclient"
	"dataweb/cli/internal/logging"

	"github.com/pterm/pterm"
)

// Category classifies a failed request for display.
type Category int

const (
	Generic Category = iota
	Timeout
	DNS
	ConnectionRefused
	SSL
	Unauthorized
	Rejected
	Server
)

// Classify inspects err, including a wrapped *apiclient.StatusError, and
// returns its category.
func Classify(err error) Category {
	var se *apiclient.StatusError
	if errors.As(err, &se) {
		switch {
		case se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden:
			return Unauthorized
		case se.Code >= 500:
			return Server
		default:
			return Rejected
		}
	}

	switch {
	case isTimeoutError(err):
		return Timeout
	case isDNSError(err):
		return DNS
	case isConnectionRefusedError(err):
		return ConnectionRefused
	case isSSLError(err):
		return SSL
	}
	return Generic
}

// FormatRequestError prints a user-friendly explanation of err to stderr and
// returns err wrapped with the action. action reads like "logging in";
// host names the server for connection problems.
func FormatRequestError(err error, action, host string) error {
	if err == nil {
		return nil
	}
	Print(os.Stderr, err, action, host)
	return fmt.Errorf("%s: %w", action, err)
}

// Print writes the explanation of err to w.
func Print(w io.Writer, err error, action, host string) {
	if w == nil {
		w = io.Discard
	}
	switch Classify(err) {
	case Timeout:
		showTimeoutError(w, action)
	case DNS:
		showDNSError(w, action, host)
	case ConnectionRefused:
		showConnectionRefusedError(w, action, host)
	case SSL:
		showSSLError(w, action)
	case Unauthorized:
		showUnauthorizedError(w, action, detail(err))
	case Rejected:
		showRejectedError(w, action, detail(err))
	case Server:
		showServerError(w, action)
	default:
		showGenericError(w, action, host, err.Error())
	}
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}

	// Check for timeout in error message
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	if err == nil {
		return false
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

func detail(err error) string {
	var se *apiclient.StatusError
	if errors.As(err, &se) {
		return se.Detail
	}
	return ""
}

func showTimeoutError(w io.Writer, action string) {
	pterm.Fprintln(w, fmt.Sprintf("⏱️  Connection timeout while %s", action))
	pterm.Fprintln(w)
	pterm.Fprintln(w, "The server took too long to respond. This could mean:")
	pterm.Fprintln(w, "  • Slow network connection")
	pterm.Fprintln(w, "  • Server is under heavy load")
	pterm.Fprintln(w)
	pterm.Fprintln(w, "Please try again in a few moments.")
}

func showDNSError(w io.Writer, action, host string) {
	pterm.Fprintln(w, fmt.Sprintf("🌐 Cannot resolve server address while %s", action))
	pterm.Fprintln(w)
	pterm.Fprintln(w, fmt.Sprintf("Unable to look up %s. Please check:", host))
	pterm.Fprintln(w, "  • Your network connection is working")
	pterm.Fprintln(w, "  • The API URL is spelled correctly (--api-url or DATAWEB_API_URL)")
}

func showConnectionRefusedError(w io.Writer, action, host string) {
	pterm.Fprintln(w, fmt.Sprintf("🚫 Connection refused while %s", action))
	pterm.Fprintln(w)
	pterm.Fprintln(w, fmt.Sprintf("Nothing is accepting connections at %s. This could mean:", host))
	pterm.Fprintln(w, "  • The platform backend is not running")
	pterm.Fprintln(w, "  • Wrong server address or port")
}

func showSSLError(w io.Writer, action string) {
	pterm.Fprintln(w, fmt.Sprintf("🔒 Secure connection failed while %s", action))
	pterm.Fprintln(w)
	pterm.Fprintln(w, "Cannot establish a secure HTTPS connection. Try:")
	pterm.Fprintln(w, "  • Check your system date and time")
	pterm.Fprintln(w, "  • Verify network proxy settings")
}

func showUnauthorizedError(w io.Writer, action, detail string) {
	if detail == "" {
		detail = "Not authenticated"
	}
	pterm.Fprintln(w, fmt.Sprintf("🔑 %s while %s", detail, action))
	pterm.Fprintln(w, "   Run 'dataweb login' to sign in again.")
}

func showRejectedError(w io.Writer, action, detail string) {
	if detail == "" {
		detail = "The request was rejected"
	}
	pterm.Fprintln(w, fmt.Sprintf("❌ %s while %s", detail, action))
}

func showServerError(w io.Writer, action string) {
	pterm.Fprintln(w, fmt.Sprintf("⚠️  Server error while %s", action))
	pterm.Fprintln(w)
	pterm.Fprintln(w, "The platform backend encountered an internal error.")
	pterm.Fprintln(w, "This is not a problem with your setup. Please try again in a few minutes.")
}

func showGenericError(w io.Writer, action, host, errDetails string) {
	pterm.Fprintln(w, fmt.Sprintf("❌ Cannot reach %s while %s", host, action))

	// Abbreviated details for debugging
	if errDetails != "" {
		shortErr := logging.Mask(errDetails)
		if len(shortErr) > 100 {
			shortErr = shortErr[:100] + "..."
		}
		pterm.Fprintln(w, pterm.Gray("Technical details: "+shortErr))
	}
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
