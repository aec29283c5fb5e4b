// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package router

import (
	"context"
	"io"
	"sync"
)

// View is what a route displays.
type View interface {
	Render(ctx context.Context, w io.Writer) error
}

// ViewFunc adapts a function to View.
type ViewFunc func(ctx context.Context, w io.Writer) error

// Render calls f.
func (f ViewFunc) Render(ctx context.Context, w io.Writer) error { return f(ctx, w) }

// Loader produces a route's view.
type Loader interface {
	Load() (View, error)
}

// A Route maps a path to a view. Routes are static configuration: build
// them once and never modify them after passing them to New.
type Route struct {
	Path         string
	Name         string
	Component    Loader
	RequiresAuth bool
}

// Eager wraps a view that is built up front.
func Eager(v View) Loader { return eager{v} }

type eager struct{ v View }

func (e eager) Load() (View, error) { return e.v, nil }

// Lazy defers building a view until the route is first displayed. A failed
// build is retried on the next Load.
func Lazy(fn func() (View, error)) Loader { return &lazy{fn: fn} }

type lazy struct {
	mu sync.Mutex
	fn func() (View, error)
	v  View
}

func (l *lazy) Load() (View, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.v != nil {
		return l.v, nil
	}
	v, err := l.fn()
	if err != nil {
		return nil, err
	}
	l.v = v
	return v, nil
}
