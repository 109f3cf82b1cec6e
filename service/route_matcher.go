package service

import (
	"strings"

	"mystorefront/domain"
)

// routeMatcher implements interfaces.RouteMatcher. It resolves a requested
// path against the route table: exact paths first, then ":param" patterns
// (segment count must match, ":xxx" segments bind params), then the single
// catch-all. Holds a copy of the routes split by kind. Built from
// domain.RouteConfig in cmd/storefront.
type routeMatcher struct {
	exact    map[string]domain.Route
	patterns []domain.Route
	catchAll domain.Route
}

// NewRouteMatcher validates the table via domain.ValidateRouteConfig, splits
// routes into exact paths, ":param" patterns and the catch-all, and creates
// the matcher. The login route must not require auth: the guard redirects
// there, so a guarded login page would send every unauthenticated navigation
// back into the guard forever. When the table has no catch-all, unmatched
// paths return a zero-value not-found route.
//
// Parameter cfg — route table (from YAML via cmd config loading).
//
// Returns: (*routeMatcher, nil) on success; (nil, error) on
// ValidateRouteConfig error (*domain.RouteConfigError).
//
// Called from cmd/storefront at startup.
func NewRouteMatcher(cfg domain.RouteConfig) (*routeMatcher, error) {
	if err := domain.ValidateRouteConfig(cfg); err != nil {
		return nil, err
	}
	for i, r := range cfg.Routes {
		if r.Path == LoginPath && r.RequiresAuth {
			return nil, &domain.RouteConfigError{Index: i, Reason: "login route cannot require auth"}
		}
	}
	m := &routeMatcher{
		exact:    make(map[string]domain.Route, len(cfg.Routes)),
		catchAll: domain.Route{Path: domain.CatchAllPath, Name: "NotFound"},
	}
	for _, r := range cfg.Routes {
		switch {
		case r.Path == domain.CatchAllPath:
			m.catchAll = r
		case strings.Contains(r.Path, "/:"):
			m.patterns = append(m.patterns, r)
		default:
			m.exact[r.Path] = r
		}
	}
	return m, nil
}

// Match returns the route for path. Exact match wins over pattern match; a
// pattern matches when segment counts are equal and every literal segment is
// identical, with ":param" segments binding into domain.RouteParams. When
// nothing matches, the catch-all route is returned with ok=false.
//
// Parameter path — requested path, e.g. "/product/42". Trailing slashes are
// not normalized; "/cart/" does not match "/cart".
//
// Returns: (route, params, true) on an exact or pattern match (params nil for
// exact); (catch-all route, nil, false) otherwise.
//
// Called from service.Navigator at the start of every navigation.
func (m *routeMatcher) Match(path string) (domain.Route, domain.RouteParams, bool) {
	if r, ok := m.exact[path]; ok {
		return r, nil, true
	}
	segs := strings.Split(path, "/")
	for _, r := range m.patterns {
		if params, ok := matchPattern(r.Path, segs); ok {
			return r, params, true
		}
	}
	return m.catchAll, nil, false
}

// matchPattern matches the already-split path segments against one ":param"
// pattern, binding param values. Empty param values do not match ("/product/"
// is not "/product/:id").
func matchPattern(pattern string, segs []string) (domain.RouteParams, bool) {
	psegs := strings.Split(pattern, "/")
	if len(psegs) != len(segs) {
		return nil, false
	}
	var params domain.RouteParams
	for i, ps := range psegs {
		if strings.HasPrefix(ps, ":") {
			if segs[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(domain.RouteParams, 1)
			}
			params[ps[1:]] = segs[i]
			continue
		}
		if ps != segs[i] {
			return nil, false
		}
	}
	return params, true
}
