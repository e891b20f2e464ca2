// Package router maps client-side paths onto screens and keeps a navigation
// history.
package router

import (
	"path"
	"strconv"
	"strings"
	"sync"
)

// Screen identifies which view a path mounts.
type Screen int

const (
	ScreenList Screen = iota
	ScreenDetail
	ScreenNotFound
)

func (s Screen) String() string {
	switch s {
	case ScreenList:
		return "list"
	case ScreenDetail:
		return "detail"
	default:
		return "not-found"
	}
}

// Well-known paths.
const (
	RootPath     = "/"
	NotFoundPath = "/404"
	taskPrefix   = "/task/"
)

// Route is a resolved path.
type Route struct {
	Screen Screen
	Path   string
	// Param holds the raw :id segment for ScreenDetail.
	Param string
}

// TaskPath returns the detail path for id.
func TaskPath(id int) string {
	return taskPrefix + strconv.Itoa(id)
}

// Match resolves p without redirects. ok is false for paths no route claims.
func Match(p string) (Route, bool) {
	clean := normalize(p)
	switch {
	case clean == RootPath:
		return Route{Screen: ScreenList, Path: clean}, true
	case clean == NotFoundPath:
		return Route{Screen: ScreenNotFound, Path: clean}, true
	case strings.HasPrefix(clean, taskPrefix):
		param := strings.TrimPrefix(clean, taskPrefix)
		if param == "" || strings.Contains(param, "/") {
			return Route{}, false
		}
		return Route{Screen: ScreenDetail, Path: clean, Param: param}, true
	default:
		return Route{}, false
	}
}

// Resolve is Match with the catch-all: unmatched paths resolve to /404.
// redirected reports whether the catch-all fired.
func Resolve(p string) (route Route, redirected bool) {
	if r, ok := Match(p); ok {
		return r, false
	}
	return Route{Screen: ScreenNotFound, Path: NotFoundPath}, true
}

func normalize(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return RootPath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Router is a history stack of resolved routes. It is safe for concurrent use.
type Router struct {
	mu      sync.RWMutex
	history []Route
}

// New returns a Router positioned at start (resolved with the catch-all).
func New(start string) *Router {
	r, _ := Resolve(start)
	return &Router{history: []Route{r}}
}

// Current returns the route at the top of the history.
func (r *Router) Current() Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.history[len(r.history)-1]
}

// Navigate pushes p. An unmatched path pushes /404 instead, as a redirect
// replaces the entry it was redirected from.
func (r *Router) Navigate(p string) Route {
	route, _ := Resolve(p)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, route)
	return route
}

// Replace swaps the top of the history for p.
func (r *Router) Replace(p string) Route {
	route, _ := Resolve(p)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history[len(r.history)-1] = route
	return route
}

// Back pops one entry. At the first entry it does nothing and reports false.
func (r *Router) Back() (Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) <= 1 {
		return r.history[0], false
	}
	r.history = r.history[:len(r.history)-1]
	return r.history[len(r.history)-1], true
}
