// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type memStorage struct {
	mu        sync.Mutex
	data      map[string]string
	setErr    error
	deleteErr error
	getErr    error
}

func newMemStorage() *memStorage { return &memStorage{data: map[string]string{}} }

func (m *memStorage) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *memStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.data, key)
	return nil
}

func (m *memStorage) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

type fakeBackend struct {
	mu       sync.Mutex
	token    string
	loginErr error
	regErr   error

	gotCreds Credentials
	gotReg   Registration
}

func (f *fakeBackend) Login(_ context.Context, creds Credentials) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotCreds = creds
	return f.token, f.loginErr
}

func (f *fakeBackend) Register(_ context.Context, reg Registration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotReg = reg
	return f.regErr
}

func newTestStore(t *testing.T, storage *memStorage, be Backend) *Store {
	t.Helper()
	st, err := Load(storage)
	require.NoError(t, err)
	return NewStore(st, be)
}

func TestIsAuthenticatedTracksToken(t *testing.T) {
	for _, token := range []string{"", "abc", " "} {
		storage := newMemStorage()
		if token != "" {
			storage.data[TokenKey] = token
		}
		st, err := Load(storage)
		require.NoError(t, err)
		require.Equal(t, token != "", st.IsAuthenticated(), "token %q", token)
		require.Equal(t, token != "", st.Session().IsAuthenticated())
	}
}

func TestLoginStoresTokenAndReturnsLanding(t *testing.T) {
	storage := newMemStorage()
	be := &fakeBackend{token: "abc"}
	s := newTestStore(t, storage, be)

	out, err := s.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, Outcome{Next: DefaultLandingPath}, out)
	require.Equal(t, Credentials{Username: "alice", Password: "pw"}, be.gotCreds)

	tok, err := s.Token()
	require.NoError(t, err)
	require.Equal(t, "abc", tok)
	require.Equal(t, "abc", storage.data[TokenKey])
	require.True(t, s.IsAuthenticated())
}

func TestLoginFailureLeavesTokenUnchanged(t *testing.T) {
	storage := newMemStorage()
	storage.data[TokenKey] = "old"
	boom := errors.New("request failed")
	s := newTestStore(t, storage, &fakeBackend{loginErr: boom})

	out, err := s.Login(context.Background(), Credentials{Username: "alice"})
	require.Same(t, boom, err)
	require.Equal(t, Outcome{}, out)

	tok, _ := s.Token()
	require.Equal(t, "old", tok)
	require.Equal(t, "old", storage.data[TokenKey])
}

func TestLoginStorageFailureKeepsMemoryInAgreement(t *testing.T) {
	storage := newMemStorage()
	storage.setErr = errors.New("keyring locked")
	s := newTestStore(t, storage, &fakeBackend{token: "abc"})

	_, err := s.Login(context.Background(), Credentials{})
	require.Error(t, err)
	require.False(t, s.IsAuthenticated())
	require.False(t, storage.has(TokenKey))
}

func TestRegister(t *testing.T) {
	be := &fakeBackend{}
	s := newTestStore(t, newMemStorage(), be)
	reg := Registration{Username: "alice", Email: "alice@example.com", Password: "secret1"}

	out, err := s.Register(context.Background(), reg)
	require.NoError(t, err)
	require.Equal(t, Outcome{Next: DefaultLoginPath}, out)
	require.Equal(t, reg, be.gotReg)
	require.False(t, s.IsAuthenticated())

	boom := errors.New("request failed")
	be.regErr = boom
	out, err = s.Register(context.Background(), reg)
	require.Same(t, boom, err)
	require.Equal(t, Outcome{}, out)
}

func TestLogoutClearsEverything(t *testing.T) {
	storage := newMemStorage()
	storage.data[TokenKey] = "abc"
	s := newTestStore(t, storage, &fakeBackend{})
	require.True(t, s.IsAuthenticated())

	out := s.Logout()
	require.Equal(t, Outcome{Next: DefaultLoginPath}, out)
	require.False(t, s.IsAuthenticated())
	require.Nil(t, s.Session().User)
	require.False(t, storage.has(TokenKey))
}

func TestLogoutOverwritesTokenWhenDeleteFails(t *testing.T) {
	storage := newMemStorage()
	storage.data[TokenKey] = "abc"
	storage.deleteErr = errors.New("keyring gone")
	s := newTestStore(t, storage, &fakeBackend{})

	out := s.Logout()
	require.Equal(t, DefaultLoginPath, out.Next)
	require.False(t, s.IsAuthenticated())

	restored, err := Load(storage)
	require.NoError(t, err)
	require.False(t, restored.IsAuthenticated())
}

func TestLogoutSucceedsWhenStorageIsReadOnly(t *testing.T) {
	storage := newMemStorage()
	storage.data[TokenKey] = "abc"
	storage.deleteErr = errors.New("keyring gone")
	storage.setErr = errors.New("keyring read-only")
	s := newTestStore(t, storage, &fakeBackend{})

	require.Error(t, s.clear())
	out := s.Logout()
	require.Equal(t, DefaultLoginPath, out.Next)
	require.False(t, s.IsAuthenticated())
}

func TestLoadPropagatesStorageError(t *testing.T) {
	storage := newMemStorage()
	storage.getErr = errors.New("keyring locked")

	_, err := Load(storage)
	require.Error(t, err)
}

func TestSubscribeObservesChanges(t *testing.T) {
	s := newTestStore(t, newMemStorage(), &fakeBackend{token: "abc"})

	var seen []bool
	cancel := s.Subscribe(func(sess Session) { seen = append(seen, sess.IsAuthenticated()) })

	_, err := s.Login(context.Background(), Credentials{})
	require.NoError(t, err)
	s.Logout()
	require.Equal(t, []bool{true, false}, seen)

	cancel()
	cancel()
	_, err = s.Login(context.Background(), Credentials{})
	require.NoError(t, err)
	require.Equal(t, []bool{true, false}, seen)
}

func TestSubscribersRunInOrder(t *testing.T) {
	s := newTestStore(t, newMemStorage(), &fakeBackend{token: "abc"})

	var order []int
	s.Subscribe(func(Session) { order = append(order, 1) })
	cancel := s.Subscribe(func(Session) { order = append(order, 2) })
	s.Subscribe(func(Session) { order = append(order, 3) })
	cancel()

	s.Logout()
	require.Equal(t, []int{1, 3}, order)
}

func TestUserFromJWTClaims(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("not-the-server-key"))
	require.NoError(t, err)

	s := newTestStore(t, newMemStorage(), &fakeBackend{token: signed})
	_, err = s.Login(context.Background(), Credentials{})
	require.NoError(t, err)

	u := s.Session().User
	require.NotNil(t, u)
	require.Equal(t, "alice", u.Username)
	require.True(t, exp.Equal(u.ExpiresAt))
}

func TestOpaqueTokenHasNoUser(t *testing.T) {
	require.Nil(t, userFromToken("abc"))
	require.Nil(t, userFromToken(""))
}

func TestRestartRestoresSession(t *testing.T) {
	storage := newMemStorage()
	first := newTestStore(t, storage, &fakeBackend{token: "abc"})
	_, err := first.Login(context.Background(), Credentials{})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := newTestStore(t, storage, &fakeBackend{})
	require.True(t, second.IsAuthenticated())
	tok, _ := second.Token()
	require.Equal(t, "abc", tok)
}

func TestConcurrentLoginsLastWriteWins(t *testing.T) {
	storage := newMemStorage()
	s := newTestStore(t, storage, &fakeBackend{token: "abc"})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Login(context.Background(), Credentials{})
		}()
	}
	wg.Wait()

	tok, _ := s.Token()
	require.Equal(t, storage.data[TokenKey], tok)
}

func TestWithPathsChangesOutcomes(t *testing.T) {
	st, err := Load(newMemStorage())
	require.NoError(t, err)
	s := NewStore(st, &fakeBackend{token: "abc"}, WithPaths("/home", "/signin"))

	out, err := s.Login(context.Background(), Credentials{})
	require.NoError(t, err)
	require.Equal(t, "/home", out.Next)
	require.Equal(t, "/signin", s.Logout().Next)

	out, err = s.Register(context.Background(), Registration{})
	require.NoError(t, err)
	require.Equal(t, "/signin", out.Next)
}
