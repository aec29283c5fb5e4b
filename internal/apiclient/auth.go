// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	apierrors "dataweb/cli/internal/errors"
	"dataweb/cli/internal/session"
)

var _ session.Backend = (*Client)(nil)

// Login posts form-url-encoded credentials to the login endpoint and returns
// the access token. A 2xx response without a token is a failed request.
func (c *Client) Login(ctx context.Context, creds session.Credentials) (string, error) {
	op := "POST " + c.endpoints.Login
	form := url.Values{}
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)

	req, err := c.newRequest(ctx, http.MethodPost, c.endpoints.Login, strings.NewReader(form.Encode()))
	if err != nil {
		return "", apierrors.Wrap(apierrors.RequestFailed, op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var raw map[string]any
	if err := c.doJSON(req, &raw); err != nil {
		return "", err
	}
	token := extractAccessToken(raw)
	if token == "" {
		return "", apierrors.New(apierrors.RequestFailed, op+": no access_token in response")
	}
	return token, nil
}

// Register posts the registration as JSON. The response body is ignored.
func (c *Client) Register(ctx context.Context, reg session.Registration) error {
	return c.postJSON(ctx, c.endpoints.Register, reg, nil)
}

// extractAccessToken returns the first non-blank token field of the response
// payload exactly as the server sent it.
func extractAccessToken(result map[string]any) string {
	for _, k := range []string{"access_token", "accessToken", "token"} {
		if v, ok := result[k].(string); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
