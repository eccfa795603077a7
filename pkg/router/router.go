/*
router maps navigation targets to views.

The table is static and ordered: each route binds one absolute path to
one view, and a target such as "/result?symptom=..." resolves by exact
match on its path. There are no path parameters, guards or nested routes.
*/
package router

import (
	"context"
	"io"
	"net/url"
	"slices"
	"strings"

	// Packages
	species "github.com/mutablelogic/go-species"
	log "github.com/rs/zerolog/log"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// View renders a page to w. The query holds any parameters from the
// navigation target.
type View interface {
	Render(ctx context.Context, w io.Writer, query url.Values) error
}

// ViewFunc adapts a function to the View interface
type ViewFunc func(ctx context.Context, w io.Writer, query url.Values) error

// Route binds a path to a view
type Route struct {
	Name string
	Path string
	View View
}

// Match is the result of resolving a navigation target
type Match struct {
	Route
	Query url.Values
}

// Router is an ordered, read-only route table
type Router struct {
	routes []Route
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	HomeName   = "home"
	HomePath   = "/"
	ResultName = "result"
	ResultPath = "/result"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a router from routes, keeping their order. Every path must
// be absolute and unique.
func New(routes ...Route) (*Router, error) {
	seen := make(map[string]bool, len(routes))
	for _, route := range routes {
		if route.Path == "" || !strings.HasPrefix(route.Path, "/") {
			return nil, species.ErrBadParameter.Withf("route %q: path %q is not absolute", route.Name, route.Path)
		}
		if seen[route.Path] {
			return nil, species.ErrBadParameter.Withf("route %q: duplicate path %q", route.Name, route.Path)
		}
		if route.View == nil {
			return nil, species.ErrBadParameter.Withf("route %q: missing view", route.Name)
		}
		seen[route.Path] = true
	}
	return &Router{routes: slices.Clone(routes)}, nil
}

// Default creates the application route table: the home view at "/"
// and the result view at "/result"
func Default(home, result View) (*Router, error) {
	return New(
		Route{Name: HomeName, Path: HomePath, View: home},
		Route{Name: ResultName, Path: ResultPath, View: result},
	)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Routes returns the route table in order
func (r *Router) Routes() []Route {
	return slices.Clone(r.routes)
}

// Resolve returns the route for a navigation target, which may carry a
// query string. Returns ErrNotFound if no route has the same path.
func (r *Router) Resolve(target string) (*Match, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, species.ErrBadParameter.Withf("target %q: %v", target, err)
	}
	path := u.Path
	if path == "" {
		path = HomePath
	}
	for _, route := range r.routes {
		if route.Path == path {
			return &Match{Route: route, Query: u.Query()}, nil
		}
	}
	return nil, species.ErrNotFound.Withf("no route for %q", path)
}

// Navigate resolves target and renders the matching view to w
func (r *Router) Navigate(ctx context.Context, w io.Writer, target string) error {
	match, err := r.Resolve(target)
	if err != nil {
		return err
	}
	log.Debug().Str("route", match.Name).Str("path", match.Path).Msg("navigate")
	return match.View.Render(ctx, w, match.Query)
}

// Render calls the function
func (fn ViewFunc) Render(ctx context.Context, w io.Writer, query url.Values) error {
	return fn(ctx, w, query)
}
