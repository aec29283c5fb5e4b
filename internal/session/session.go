// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session is the single source of truth for the current bearer token.
//
// State holds the token and the user derived from it, persists the token
// through a Storage and notifies subscribers on every change. Store layers the
// login, registration and logout operations on top of a State and a Backend.
// Neither type navigates: operations return an Outcome naming the page the
// caller should show next.
package session

import (
	"context"
	"errors"
	"time"
)

// TokenKey is the storage key holding the bearer token.
const TokenKey = "token"

// ErrNotFound is returned by a Storage when a key is absent.
var ErrNotFound = errors.New("session: key not found")

// Storage is durable key/value storage with synchronous, last-write-wins writes.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Backend performs the remote authentication calls.
type Backend interface {
	// Login exchanges credentials for an access token.
	Login(ctx context.Context, creds Credentials) (accessToken string, err error)
	// Register creates an account; the response body is ignored.
	Register(ctx context.Context, reg Registration) error
}

// Credentials are sent form-url-encoded to the login endpoint.
type Credentials struct {
	Username string
	Password string
}

// Registration is sent as JSON to the register endpoint.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the profile decoded from the token's claims.
// The claims are read without signature verification and are informational only.
type User struct {
	Username  string
	ExpiresAt time.Time
}

// Session is a snapshot of the authentication state.
type Session struct {
	Token string
	User  *User
}

// IsAuthenticated reports whether a token is present.
func (s Session) IsAuthenticated() bool { return s.Token != "" }

// Outcome tells the caller where to go after an operation completed.
type Outcome struct {
	Next string
}
