package domain

import (
	"strconv"
	"strings"
)

// CatchAllPath marks the not-found route in a RouteConfig. Exactly one route
// may use it; the matcher falls back to it when nothing else matches.
const CatchAllPath = "*"

// Route maps a path pattern to a page. Path is either an exact path
// ("/login"), a pattern with ":param" segments ("/product/:id"), or the
// catch-all "*". Title overrides the default document title; RequiresAuth
// gates the route behind a persisted session; Redirect makes the route an
// alias that forwards to another path ("/" → "/home").
type Route struct {
	Path         string
	Name         string
	Title        string
	Redirect     string
	RequiresAuth bool
}

// RouteParams holds values bound to ":param" segments of the matched path.
type RouteParams map[string]string

// RouteConfig is the full route table plus the default document title used
// when the matched route carries none.
type RouteConfig struct {
	Routes       []Route
	DefaultTitle string
}

// ValidateRouteConfig validates the route table: every path is non-empty and
// starts with "/" (except the single allowed catch-all "*"), paths are unique,
// ":param" segments are named, and every redirect target is a route path in
// the table and is not itself a redirect (so alias resolution always
// terminates in one hop).
//
// Parameter cfg — route table (usually from YAML via cmd config loading).
//
// Returns: nil when the table is valid; *RouteConfigError with Index (0-based
// route index) and Reason on the first error found.
//
// Called from service.NewRouteMatcher and cmd config loading before use.
func ValidateRouteConfig(cfg RouteConfig) error {
	seen := make(map[string]Route, len(cfg.Routes))
	catchAlls := 0
	for i, r := range cfg.Routes {
		if r.Path == "" {
			return &RouteConfigError{Index: i, Reason: "path must be non-empty"}
		}
		if r.Path == CatchAllPath {
			catchAlls++
			if catchAlls > 1 {
				return &RouteConfigError{Index: i, Reason: "at most one catch-all route is allowed"}
			}
		} else if r.Path[0] != '/' {
			return &RouteConfigError{Index: i, Reason: "path must start with /"}
		}
		if _, dup := seen[r.Path]; dup {
			return &RouteConfigError{Index: i, Reason: "duplicate path " + r.Path}
		}
		seen[r.Path] = r
		for _, seg := range strings.Split(r.Path, "/") {
			if seg == ":" {
				return &RouteConfigError{Index: i, Reason: "param segment must have a name"}
			}
		}
		if r.Redirect != "" && r.RequiresAuth {
			return &RouteConfigError{Index: i, Reason: "redirect route cannot require auth"}
		}
	}
	for i, r := range cfg.Routes {
		if r.Redirect == "" {
			continue
		}
		target, ok := seen[r.Redirect]
		if !ok {
			return &RouteConfigError{Index: i, Reason: "redirect target " + r.Redirect + " is not a route"}
		}
		// Chained redirects would make alias resolution unbounded (and a
		// two-route cycle would never terminate).
		if target.Redirect != "" {
			return &RouteConfigError{Index: i, Reason: "redirect target " + r.Redirect + " is itself a redirect"}
		}
	}
	return nil
}

// RouteConfigError is returned by ValidateRouteConfig when a route entry is
// invalid. Index is the route index (0-based); Reason is a human-readable
// message.
type RouteConfigError struct {
	Index  int
	Reason string
}

// Error implements error; returns a string like "route[0]: path must be
// non-empty" for logging and user output.
func (e *RouteConfigError) Error() string {
	return "route[" + strconv.Itoa(e.Index) + "]: " + e.Reason
}
