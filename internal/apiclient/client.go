// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package apiclient is the single HTTP client used to talk to the Dataset
// Sharing Platform API. Every outgoing request passes through a transport that
// attaches the current bearer token, so callers never set Authorization by hand.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apierrors "dataweb/cli/internal/errors"
)

// Endpoints contains REST API endpoint paths relative to the base URL.
type Endpoints struct {
	Login       string
	Register    string
	DatasetInfo string
	Download    string
}

// DefaultEndpoints are the paths served by the platform backend.
var DefaultEndpoints = Endpoints{
	Login:       "/auth/login",
	Register:    "/auth/register",
	DatasetInfo: "/dataset/info",
	Download:    "/dataset/download",
}

// Client implements the platform API over REST endpoints.
type Client struct {
	// baseURL is the base URL for all HTTP requests (e.g., "http://127.0.0.1:8000/api")
	baseURL *url.URL
	// endpoints contains the URL paths for various API endpoints
	endpoints Endpoints
	// http is the underlying client whose transport injects the bearer token
	http *http.Client
	// base is the transport wrapped by the bearer transport
	base    http.RoundTripper
	timeout time.Duration
	// userAgent is sent on every request
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithTransport replaces the base transport wrapped by the bearer transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.base = rt }
}

// WithTimeout sets the overall request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithEndpoints overrides the endpoint paths.
func WithEndpoints(e Endpoints) Option {
	return func(c *Client) { c.endpoints = e }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a Client for baseURL. baseURL must be absolute, including
// scheme and host. tokens is consulted before every request.
func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must include scheme and host", baseURL)
	}
	if tokens == nil {
		tokens = TokenSourceFunc(func() (string, error) { return "", nil })
	}

	c := &Client{
		baseURL:   u,
		endpoints: DefaultEndpoints,
		base:      http.DefaultTransport,
		timeout:   30 * time.Second,
		userAgent: "dataweb-cli",
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http = &http.Client{
		Timeout:   c.timeout,
		Transport: &bearerTransport{base: c.base, tokens: tokens},
	}
	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// url joins the base URL and an endpoint path.
func (c *Client) url(p string) string {
	return c.baseURL.String() + "/" + strings.TrimLeft(p, "/")
}

// newRequest builds a request with JSON defaults. Callers override
// Content-Type for non-JSON bodies.
func (c *Client) newRequest(ctx context.Context, method, p string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(p), body)
	if err != nil {
		return nil, err
	}
	c.setStandardHeaders(req)
	return req, nil
}

// setStandardHeaders adds the default headers sent on every request.
func (c *Client) setStandardHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}

// do sends req and returns the response when the status is 2xx. Every other
// outcome becomes a RequestFailed error naming the call.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	op := req.Method + " " + req.URL.Path
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apierrors.Wrap(apierrors.RequestFailed, op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, apierrors.Wrap(apierrors.RequestFailed, op, newStatusError(resp))
	}
	return resp, nil
}

// doJSON sends req and decodes a 2xx JSON body into out. A nil out discards the body.
func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apierrors.Wrap(apierrors.RequestFailed, req.Method+" "+req.URL.Path, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// postJSON marshals body and posts it to p.
func (c *Client) postJSON(ctx context.Context, p string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return apierrors.Wrap(apierrors.RequestFailed, "POST "+p, err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, p, bytes.NewReader(b))
	if err != nil {
		return apierrors.Wrap(apierrors.RequestFailed, "POST "+p, err)
	}
	return c.doJSON(req, out)
}
