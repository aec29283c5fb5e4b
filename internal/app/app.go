// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package app wires the session store, the API client and the router together.
// It is built once per process; commands call its methods and never construct
// those parts themselves.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"dataweb/cli/internal/apiclient"
	"dataweb/cli/internal/config"
	"dataweb/cli/internal/logging"
	"dataweb/cli/internal/router"
	"dataweb/cli/internal/session"

	"github.com/pterm/pterm"
)

// ErrLoginRequired is returned when a protected action is attempted while
// logged out.
var ErrLoginRequired = errors.New("login required")

// App is the composed client.
type App struct {
	store  *session.Store
	client *apiclient.Client
	router *router.Router
	log    *pterm.Logger
	cancel func()
}

type options struct {
	log        *pterm.Logger
	clientOpts []apiclient.Option
}

// Option configures New.
type Option func(*options)

// WithLogger sets the diagnostic logger shared by every part.
func WithLogger(l *pterm.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTransport sets the HTTP transport under the bearer transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.clientOpts = append(o.clientOpts, apiclient.WithTransport(rt)) }
}

// WithClientOptions passes extra options to the API client.
func WithClientOptions(opts ...apiclient.Option) Option {
	return func(o *options) { o.clientOpts = append(o.clientOpts, opts...) }
}

// New restores the session from storage and builds the client and router.
func New(cfg config.Config, storage session.Storage, opts ...Option) (*App, error) {
	o := options{log: logging.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	state, err := session.Load(storage)
	if err != nil {
		return nil, err
	}
	clientOpts, err := clientOptions(cfg)
	if err != nil {
		return nil, err
	}
	client, err := apiclient.New(cfg.APIURL, state, append(clientOpts, o.clientOpts...)...)
	if err != nil {
		return nil, err
	}

	rt, err := router.New(Routes(state, client))
	if err != nil {
		return nil, err
	}
	landing, err := rt.URL(RouteDataset)
	if err != nil {
		return nil, err
	}
	login, err := rt.URL(RouteLogin)
	if err != nil {
		return nil, err
	}
	store := session.NewStore(state, client,
		session.WithLogger(o.log),
		session.WithPaths(landing, login),
	)

	rt.Use(router.RequireAuth(state, login))
	rt.OnNavigate(func(nav router.Navigation) {
		from := ""
		if nav.From != nil {
			from = nav.From.Path
		}
		o.log.Debug("navigated", o.log.Args("from", from, "to", nav.To.Path))
	})

	a := &App{store: store, client: client, router: rt, log: o.log}
	a.cancel = store.Subscribe(func(s session.Session) {
		o.log.Debug("session changed", o.log.Args("authenticated", s.IsAuthenticated()))
	})
	return a, nil
}

// Store returns the session store.
func (a *App) Store() *session.Store { return a.store }

// Client returns the API client.
func (a *App) Client() *apiclient.Client { return a.client }

// Router returns the router.
func (a *App) Router() *router.Router { return a.router }

// Login authenticates and navigates to the landing page.
func (a *App) Login(ctx context.Context, creds session.Credentials) (*router.Route, error) {
	out, err := a.store.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	return a.apply(out)
}

// Register creates an account and navigates to the login page.
func (a *App) Register(ctx context.Context, reg session.Registration) (*router.Route, error) {
	out, err := a.store.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	return a.apply(out)
}

// Logout clears the session and navigates to the login page.
func (a *App) Logout() (*router.Route, error) {
	return a.apply(a.store.Logout())
}

// Open navigates to p, subject to the auth guard.
func (a *App) Open(p string) (*router.Route, error) {
	return a.router.Push(p)
}

// Render writes the current page to w.
func (a *App) Render(ctx context.Context, w io.Writer) error {
	v, err := a.router.View()
	if err != nil {
		return err
	}
	return v.Render(ctx, w)
}

// Download streams the dataset archive into w. It navigates to the dataset
// page first so the auth guard decides whether the download may proceed.
func (a *App) Download(ctx context.Context, w io.Writer) (*apiclient.Download, error) {
	rt, err := a.router.PushNamed(RouteDataset)
	if err != nil {
		return nil, err
	}
	if rt.Name != RouteDataset {
		return nil, ErrLoginRequired
	}
	return a.client.DownloadDataset(ctx, w)
}

// Ping checks connectivity with the server.
func (a *App) Ping(ctx context.Context) (string, error) {
	return a.client.Ping(ctx)
}

// Close releases subscriptions. The persisted token is kept.
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	if err := a.store.Close(); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}

// clientOptions maps the configured timeout and endpoint overrides to
// client options.
func clientOptions(cfg config.Config) ([]apiclient.Option, error) {
	var opts []apiclient.Option
	d, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}
	if d > 0 {
		opts = append(opts, apiclient.WithTimeout(d))
	}

	eps := apiclient.DefaultEndpoints
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&eps.Login, cfg.Endpoints.Login)
	override(&eps.Register, cfg.Endpoints.Register)
	override(&eps.DatasetInfo, cfg.Endpoints.DatasetInfo)
	override(&eps.Download, cfg.Endpoints.Download)
	if eps != apiclient.DefaultEndpoints {
		opts = append(opts, apiclient.WithEndpoints(eps))
	}
	return opts, nil
}

func (a *App) apply(out session.Outcome) (*router.Route, error) {
	if out.Next == "" {
		return a.router.Current(), nil
	}
	return a.router.Push(out.Next)
}
