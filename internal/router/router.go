// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router resolves admin panel paths to view handlers. Patterns
// may contain :param segments ("/blog/edit/:id"); literal paths win over
// patterns, and patterns match in registration order. Handlers may block
// on I/O, so each navigation carries a generation number: when a newer
// navigation starts before an older one finishes, the older result is
// discarded instead of clobbering the current route.
package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrNoRoute is returned when a path matches nothing and no default
// route is configured.
var ErrNoRoute = errors.New("router: no matching route")

// Params holds the values bound to :param segments, keyed by name.
type Params map[string]string

// HandlerFunc runs a view for a resolved route. A non-nil error triggers
// the router's error callback and recovery to the default route.
type HandlerFunc func(ctx context.Context, p Params) error

type route struct {
	pattern  string
	segments []string
	literal  bool
	handler  HandlerFunc
}

// Router dispatches paths to handlers and tracks the current route.
type Router struct {
	mu          sync.Mutex
	literals    map[string]*route
	patterns    []*route
	defaultPath string
	current     string

	gen atomic.Int64

	changeFns []func(path string, p Params)
	errFn     func(path string, err error)
}

// New creates an empty router.
func New() *Router {
	return &Router{literals: make(map[string]*route)}
}

// AddRoute registers a handler for a path pattern. Later registrations
// of the same literal path replace earlier ones; patterns keep their
// registration order for matching.
func (r *Router) AddRoute(pattern string, h HandlerFunc) {
	pattern = normalize(pattern)
	segs := split(pattern)

	rt := &route{pattern: pattern, segments: segs, literal: true, handler: h}
	for _, s := range segs {
		if strings.HasPrefix(s, ":") {
			rt.literal = false
			break
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if rt.literal {
		r.literals[pattern] = rt
	} else {
		r.patterns = append(r.patterns, rt)
	}
}

// SetDefault sets the route used at startup and as the redirect target
// for unknown paths and failed handlers.
func (r *Router) SetDefault(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultPath = normalize(path)
}

// OnRouteChange registers a callback fired after each committed
// navigation. Callbacks run in registration order.
func (r *Router) OnRouteChange(fn func(path string, p Params)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changeFns = append(r.changeFns, fn)
}

// OnError registers the callback fired when a handler fails. Only one
// error callback is kept; later calls replace it.
func (r *Router) OnError(fn func(path string, err error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errFn = fn
}

// Current returns the committed route path, or "" before Start.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Start navigates to the default route.
func (r *Router) Start(ctx context.Context) error {
	r.mu.Lock()
	def := r.defaultPath
	r.mu.Unlock()
	if def == "" {
		return fmt.Errorf("router: no default route configured")
	}
	return r.Navigate(ctx, def)
}

// Reload re-runs the current route's handler.
func (r *Router) Reload(ctx context.Context) error {
	r.mu.Lock()
	cur := r.current
	r.mu.Unlock()
	if cur == "" {
		return r.Start(ctx)
	}
	return r.Navigate(ctx, cur)
}

// Navigate resolves a path and runs its handler. Unknown paths redirect
// to the default route; a failing handler reports through OnError and
// then recovers to the default route. If a newer navigation began while
// the handler ran, the result is discarded and the newer navigation owns
// the current route.
func (r *Router) Navigate(ctx context.Context, path string) error {
	path = normalize(path)

	r.mu.Lock()
	rt, params := r.resolveLocked(path)
	def := r.defaultPath
	r.mu.Unlock()

	if rt == nil {
		if def != "" && path != def {
			return r.Navigate(ctx, def)
		}
		return fmt.Errorf("%w: %s", ErrNoRoute, path)
	}

	gen := r.gen.Add(1)

	err := rt.handler(ctx, params)
	if err != nil {
		r.mu.Lock()
		errFn := r.errFn
		r.mu.Unlock()
		if errFn != nil {
			errFn(path, err)
		}
		// Recover to the default route rather than leaving the panel on
		// a broken view. The default itself gets no recovery retry.
		if def != "" && path != def {
			if nerr := r.Navigate(ctx, def); nerr != nil {
				return errors.Join(err, nerr)
			}
		}
		return err
	}

	// Commit only if no newer navigation superseded this one.
	if r.gen.Load() != gen {
		return nil
	}

	r.mu.Lock()
	r.current = path
	changeFns := make([]func(string, Params), len(r.changeFns))
	copy(changeFns, r.changeFns)
	r.mu.Unlock()

	for _, fn := range changeFns {
		fn(path, params)
	}
	return nil
}

// resolveLocked finds the route for a path: literal match first, then
// patterns in registration order. Pattern matches require equal segment
// counts.
func (r *Router) resolveLocked(path string) (*route, Params) {
	if rt, ok := r.literals[path]; ok {
		return rt, Params{}
	}

	segs := split(path)
	for _, rt := range r.patterns {
		if len(rt.segments) != len(segs) {
			continue
		}
		params := Params{}
		matched := true
		for i, ps := range rt.segments {
			if name, ok := strings.CutPrefix(ps, ":"); ok {
				params[name] = segs[i]
				continue
			}
			if ps != segs[i] {
				matched = false
				break
			}
		}
		if matched {
			return rt, params
		}
	}
	return nil, nil
}

// normalize strips a hash prefix and guarantees a single leading slash.
func normalize(path string) string {
	path = strings.TrimPrefix(path, "#")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

func split(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}
