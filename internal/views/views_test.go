// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package views

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"dataweb/cli/internal/apiclient"
	"dataweb/cli/internal/session"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

type fakeSession struct{ sess session.Session }

func (f fakeSession) IsAuthenticated() bool    { return f.sess.IsAuthenticated() }
func (f fakeSession) Session() session.Session { return f.sess }

type fakeInfo struct {
	info *apiclient.DatasetInfo
	err  error
}

func (f fakeInfo) DatasetInfo(context.Context) (*apiclient.DatasetInfo, error) { return f.info, f.err }

func TestHome(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Home(fakeSession{}).Render(context.Background(), &buf))
	require.Contains(t, buf.String(), "not logged in")

	buf.Reset()
	sess := session.Session{Token: "abc", User: &session.User{Username: "alice"}}
	require.NoError(t, Home(fakeSession{sess: sess}).Render(context.Background(), &buf))
	require.Contains(t, buf.String(), "Logged in as alice")

	buf.Reset()
	require.NoError(t, Home(fakeSession{sess: session.Session{Token: "opaque"}}).Render(context.Background(), &buf))
	require.Contains(t, buf.String(), "an unnamed account")
}

func TestLoginAndRegister(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Login().Render(context.Background(), &buf))
	require.Contains(t, buf.String(), "dataweb login")

	buf.Reset()
	require.NoError(t, Register().Render(context.Background(), &buf))
	require.Contains(t, buf.String(), "at least 6 characters")
}

func TestDatasetRendersInfo(t *testing.T) {
	src := fakeInfo{info: &apiclient.DatasetInfo{
		Title:       "Road Damage",
		Description: "Surface defect images.",
		Version:     "1.0.0",
		FileTypes:   []string{"JPG Images", "JSON Metadata"},
	}}

	var buf bytes.Buffer
	require.NoError(t, Dataset(src).Render(context.Background(), &buf))
	out := buf.String()
	require.Contains(t, out, "Road Damage")
	require.Contains(t, out, "Surface defect images.")
	require.Contains(t, out, "Version: 1.0.0")
	require.Contains(t, out, "JSON Metadata")
	require.NotContains(t, out, "Author:")
}

func TestDatasetPropagatesError(t *testing.T) {
	boom := errors.New("request failed")
	var buf bytes.Buffer
	err := Dataset(fakeInfo{err: boom}).Render(context.Background(), &buf)
	require.Same(t, boom, err)
	require.Empty(t, buf.String())
}
