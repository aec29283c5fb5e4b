// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package errors

import (
	stderrors "errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestE(t *testing.T) {
	tests := []struct {
		name string
		err  *E
		want string
	}{
		{
			name: "with cause",
			err:  Wrap(RequestFailed, "POST /auth/login", io.ErrUnexpectedEOF),
			want: "request_failed: POST /auth/login: unexpected EOF",
		},
		{
			name: "without cause",
			err:  New(RequestFailed, "empty access token"),
			want: "request_failed: empty access token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestUnwrapAndKind(t *testing.T) {
	err := Wrap(RequestFailed, "GET /dataset/info", io.EOF)

	require.True(t, stderrors.Is(err, io.EOF))
	require.True(t, stderrors.Is(err, New(RequestFailed, "")))
	require.Equal(t, RequestFailed, KindOf(err))
	require.Equal(t, Kind(""), KindOf(io.EOF))
}
