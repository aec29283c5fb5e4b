// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package router maps paths to views and decides every navigation.
//
// Routes are matched through a gorilla/mux route table, which also resolves
// route names back to paths. Guards registered with Use run before each
// navigation commits, whether it comes from Push, Replace, Back or Forward.
package router

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"sync"

	"github.com/gorilla/mux"
)

var (
	// ErrNotFound is returned for paths and names no route matches.
	ErrNotFound = errors.New("router: no route matches")
	// ErrRedirectLoop is returned when guards keep redirecting.
	ErrRedirectLoop = errors.New("router: too many redirects")
	// ErrNoHistory is returned by Back and Forward at either end of the history.
	ErrNoHistory = errors.New("router: no history entry")
)

// maxRedirects bounds redirect chains within a single navigation.
const maxRedirects = 8

// Router holds the route table and the navigation history.
// It is safe for concurrent use.
type Router struct {
	mu        sync.Mutex
	routes    []*Route
	byName    map[string]*Route
	table     *mux.Router
	guards    []Guard
	observers []func(Navigation)

	history []*Route
	pos     int
}

// New builds a Router. Route names and paths must be unique.
func New(routes []Route) (*Router, error) {
	r := &Router{
		byName: make(map[string]*Route, len(routes)),
		table:  mux.NewRouter(),
		pos:    -1,
	}
	paths := make(map[string]bool, len(routes))
	for i := range routes {
		rt := routes[i]
		if rt.Name == "" || rt.Path == "" {
			return nil, fmt.Errorf("router: route %d needs a name and a path", i)
		}
		if _, dup := r.byName[rt.Name]; dup {
			return nil, fmt.Errorf("router: duplicate route name %q", rt.Name)
		}
		if paths[rt.Path] {
			return nil, fmt.Errorf("router: duplicate route path %q", rt.Path)
		}
		if rt.Component == nil {
			return nil, fmt.Errorf("router: route %q has no component", rt.Name)
		}
		paths[rt.Path] = true

		route := &rt
		if err := r.table.NewRoute().Path(rt.Path).Name(rt.Name).GetError(); err != nil {
			return nil, fmt.Errorf("router: route %q: %w", rt.Name, err)
		}
		r.routes = append(r.routes, route)
		r.byName[rt.Name] = route
	}
	return r, nil
}

// Use appends a guard. Guards run in the order they were added; the first
// redirect wins.
func (r *Router) Use(g Guard) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guards = append(r.guards, g)
}

// OnNavigate registers fn to be called after each committed navigation.
func (r *Router) OnNavigate(fn func(Navigation)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, fn)
}

// Routes returns the route table.
func (r *Router) Routes() []*Route {
	out := make([]*Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// Resolve returns the route matching p. Query strings and fragments are ignored.
func (r *Router) Resolve(p string) (*Route, error) {
	u, err := url.Parse(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, p)
	}
	clean := path.Clean("/" + u.Path)

	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: clean}}
	var match mux.RouteMatch
	if !r.table.Match(req, &match) || match.Route == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, p)
	}
	return r.byName[match.Route.GetName()], nil
}

// URL returns the path of the route called name.
func (r *Router) URL(name string) (string, error) {
	mr := r.table.Get(name)
	if mr == nil {
		return "", fmt.Errorf("%w: name %q", ErrNotFound, name)
	}
	u, err := mr.URLPath()
	if err != nil {
		return "", err
	}
	return u.Path, nil
}

// Current returns the committed route, nil before the first navigation.
func (r *Router) Current() *Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current()
}

// View loads the current route's view.
func (r *Router) View() (View, error) {
	cur := r.Current()
	if cur == nil {
		return nil, ErrNoHistory
	}
	return cur.Component.Load()
}

// Push navigates to p, adding a history entry.
func (r *Router) Push(p string) (*Route, error) {
	return r.navigate(p, false)
}

// Replace navigates to p, replacing the current history entry.
func (r *Router) Replace(p string) (*Route, error) {
	return r.navigate(p, true)
}

// PushNamed navigates to the route called name.
func (r *Router) PushNamed(name string) (*Route, error) {
	p, err := r.URL(name)
	if err != nil {
		return nil, err
	}
	return r.Push(p)
}

// Back moves one entry back in the history, subject to the guards.
func (r *Router) Back() (*Route, error) {
	return r.step(-1)
}

// Forward moves one entry forward in the history, subject to the guards.
func (r *Router) Forward() (*Route, error) {
	return r.step(1)
}

func (r *Router) step(delta int) (*Route, error) {
	r.mu.Lock()
	idx := r.pos + delta
	if r.pos < 0 || idx < 0 || idx >= len(r.history) {
		r.mu.Unlock()
		return nil, ErrNoHistory
	}
	from := r.current()
	target := r.history[idx]
	to, redirected, err := r.decide(from, target)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	if redirected {
		r.pushLocked(to)
	} else {
		r.pos = idx
	}
	nav, observers := Navigation{From: from, To: to}, r.observers
	r.mu.Unlock()

	notify(observers, nav)
	return to, nil
}

func (r *Router) navigate(p string, replace bool) (*Route, error) {
	target, err := r.Resolve(p)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	from := r.current()
	to, _, err := r.decide(from, target)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	if replace && r.pos >= 0 {
		r.history[r.pos] = to
	} else {
		r.pushLocked(to)
	}
	nav, observers := Navigation{From: from, To: to}, r.observers
	r.mu.Unlock()

	notify(observers, nav)
	return to, nil
}

// decide runs the guards until one navigation target is accepted.
// r.mu must be held.
func (r *Router) decide(from, to *Route) (*Route, bool, error) {
	redirected := false
	for hops := 0; ; hops++ {
		d := r.runGuards(Navigation{From: from, To: to})
		if !d.IsRedirect() {
			return to, redirected, nil
		}
		if hops >= maxRedirects {
			return nil, false, ErrRedirectLoop
		}
		next, err := r.Resolve(d.Target())
		if err != nil {
			return nil, false, err
		}
		to, redirected = next, true
	}
}

func (r *Router) runGuards(nav Navigation) Decision {
	for _, g := range r.guards {
		if d := g(nav); d.IsRedirect() {
			return d
		}
	}
	return Proceed()
}

// pushLocked drops forward entries and appends to. r.mu must be held.
func (r *Router) pushLocked(to *Route) {
	r.history = append(r.history[:r.pos+1], to)
	r.pos = len(r.history) - 1
}

func (r *Router) current() *Route {
	if r.pos < 0 {
		return nil
	}
	return r.history[r.pos]
}

func notify(observers []func(Navigation), nav Navigation) {
	for _, fn := range observers {
		fn(nav)
	}
}
