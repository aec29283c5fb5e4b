// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"context"
	"io"

	"dataweb/cli/internal/logging"

	"github.com/pterm/pterm"
)

const (
	// DefaultLandingPath is where a successful login leads.
	DefaultLandingPath = "/dataset"
	// DefaultLoginPath is where registration and logout lead.
	DefaultLoginPath = "/login"
)

// Store exposes login, registration and logout over a State.
// Overlapping Login calls are not deduplicated; the last response to arrive
// wins in both memory and storage.
type Store struct {
	*State

	backend     Backend
	log         *pterm.Logger
	landingPath string
	loginPath   string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report failed remote calls.
func WithLogger(l *pterm.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPaths overrides the pages returned in outcomes.
func WithPaths(landing, login string) Option {
	return func(s *Store) {
		s.landingPath = landing
		s.loginPath = login
	}
}

// NewStore builds a Store on top of state, calling backend for remote operations.
func NewStore(state *State, backend Backend, opts ...Option) *Store {
	s := &Store{
		State:       state,
		backend:     backend,
		log:         logging.Discard(),
		landingPath: DefaultLandingPath,
		loginPath:   DefaultLoginPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login exchanges creds for a token, stores it and returns the landing page.
// Any error is reported and returned unchanged; the token is then untouched.
func (s *Store) Login(ctx context.Context, creds Credentials) (Outcome, error) {
	token, err := s.backend.Login(ctx, creds)
	if err != nil {
		s.log.Error("login failed", s.log.Args("username", creds.Username, "error", logging.Mask(err.Error())))
		return Outcome{}, err
	}
	if err := s.setToken(token); err != nil {
		s.log.Error("login succeeded but token could not be stored", s.log.Args("error", err.Error()))
		return Outcome{}, err
	}
	s.log.Debug("logged in", s.log.Args("username", creds.Username))
	return Outcome{Next: s.landingPath}, nil
}

// Register creates an account and returns the login page.
// Any error is reported and returned unchanged.
func (s *Store) Register(ctx context.Context, reg Registration) (Outcome, error) {
	if err := s.backend.Register(ctx, reg); err != nil {
		s.log.Error("registration failed", s.log.Args("username", reg.Username, "error", logging.Mask(err.Error())))
		return Outcome{}, err
	}
	s.log.Debug("registered", s.log.Args("username", reg.Username))
	return Outcome{Next: s.loginPath}, nil
}

// Logout clears the token and user from memory and storage and returns the
// login page. It cannot fail; a storage error is only reported.
func (s *Store) Logout() Outcome {
	if err := s.clear(); err != nil {
		s.log.Warn("could not remove persisted token", s.log.Args("error", err.Error()))
	}
	s.log.Debug("logged out")
	return Outcome{Next: s.loginPath}
}

var _ io.Closer = (*Store)(nil)

// Close drops all subscriptions at shutdown. The persisted token is kept so
// the next start restores the session.
func (s *Store) Close() error {
	s.subMu.Lock()
	s.subs = nil
	s.subMu.Unlock()
	return nil
}
