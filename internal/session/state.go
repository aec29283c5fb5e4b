// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"errors"
	"fmt"
	"sync"
)

// State keeps the in-memory session and the persisted token in agreement.
// It is safe for concurrent use.
type State struct {
	mu      sync.RWMutex
	sess    Session
	storage Storage

	subMu sync.Mutex
	subs  []*subscriber
}

type subscriber struct {
	fn func(Session)
}

// Load restores the session from storage. A missing token yields an
// unauthenticated State.
func Load(storage Storage) (*State, error) {
	st := &State{storage: storage}
	token, err := storage.Get(TokenKey)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("load token: %w", err)
	}
	st.sess = newSession(token)
	return st, nil
}

// Token returns the current bearer token, empty when logged out.
func (s *State) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess.Token, nil
}

// IsAuthenticated reports whether a token is present. It is recomputed on
// every call; use Subscribe to react to changes.
func (s *State) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess.IsAuthenticated()
}

// Session returns a copy of the current session.
func (s *State) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess.clone()
}

// Subscribe registers fn to be called with the new session after every
// change. Listeners run in registration order on the mutating goroutine.
// The returned func cancels the subscription.
func (s *State) Subscribe(fn func(Session)) (cancel func()) {
	sub := &subscriber{fn: fn}
	s.subMu.Lock()
	s.subs = append(s.subs, sub)
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			for i, v := range s.subs {
				if v == sub {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// setToken persists token and then updates memory. Memory is left untouched
// when the write fails.
func (s *State) setToken(token string) error {
	s.mu.Lock()
	if err := s.storage.Set(TokenKey, token); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persist token: %w", err)
	}
	s.sess = newSession(token)
	snap := s.sess.clone()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// clear empties memory and removes the persisted token. When the key cannot
// be deleted it is overwritten with an empty token, which Load reads as logged
// out. An error is returned only when both writes fail; memory is cleared
// regardless.
func (s *State) clear() error {
	s.mu.Lock()
	err := s.storage.Delete(TokenKey)
	if err != nil {
		if serr := s.storage.Set(TokenKey, ""); serr != nil {
			err = fmt.Errorf("remove token: %w", errors.Join(err, serr))
		} else {
			err = nil
		}
	}
	s.sess = Session{}
	snap := s.sess.clone()
	s.mu.Unlock()

	s.notify(snap)
	return err
}

func (s *State) notify(snap Session) {
	s.subMu.Lock()
	subs := make([]*subscriber, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(snap)
	}
}

func (s Session) clone() Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

func newSession(token string) Session {
	return Session{Token: token, User: userFromToken(token)}
}
