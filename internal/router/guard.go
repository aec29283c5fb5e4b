// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package router

// Navigation is a pending transition. From is nil on the first navigation.
type Navigation struct {
	From *Route
	To   *Route
}

// Decision is a guard's verdict on a Navigation.
type Decision struct {
	redirect string
}

// Proceed lets the navigation continue.
func Proceed() Decision { return Decision{} }

// Redirect abandons the navigation in favour of path.
func Redirect(path string) Decision { return Decision{redirect: path} }

// IsRedirect reports whether the navigation was redirected.
func (d Decision) IsRedirect() bool { return d.redirect != "" }

// Target returns the redirect path, empty when proceeding.
func (d Decision) Target() string { return d.redirect }

// A Guard runs before every navigation commits. Guards run while the router
// is locked and must not navigate themselves.
type Guard func(nav Navigation) Decision

// AuthChecker reports whether the user is logged in.
type AuthChecker interface {
	IsAuthenticated() bool
}

// RequireAuth redirects navigations to routes flagged RequiresAuth to
// loginPath while checker reports unauthenticated. The intended target is
// not remembered.
func RequireAuth(checker AuthChecker, loginPath string) Guard {
	return func(nav Navigation) Decision {
		if nav.To.RequiresAuth && !checker.IsAuthenticated() {
			return Redirect(loginPath)
		}
		return Proceed()
	}
}
