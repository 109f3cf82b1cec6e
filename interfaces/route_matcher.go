package interfaces

import "mystorefront/domain"

// RouteMatcher resolves a requested path to a route table entry. Used by the
// navigator to obtain the route (title, auth requirement, redirect) before
// the guard runs. Implemented by service.routeMatcher. Called from
// service.Navigator on every navigation attempt.
//
//go:generate moq -stub -out mock/route_matcher.go -pkg mock . RouteMatcher
type RouteMatcher interface {
	// Match returns the route for path: exact match first, then ":param"
	// pattern match (with params bound), then the catch-all. ok is false only
	// when the path fell through to the catch-all; the returned route is
	// still usable (the not-found page).
	Match(path string) (domain.Route, domain.RouteParams, bool)
}
