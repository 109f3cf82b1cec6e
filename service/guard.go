package service

import "mystorefront/domain"

// LoginPath is where the guard sends unauthenticated navigation attempts.
const LoginPath = "/login"

// GuardAction is the guard's verdict on a navigation attempt.
type GuardAction string

const (
	// GuardAllowed lets the transition proceed to the target route.
	GuardAllowed GuardAction = "allowed"
	// GuardRedirected replaces the transition with one to Decision.RedirectTo.
	GuardRedirected GuardAction = "redirected"
)

// Decision is the guard's explicit two-state result: either the transition
// is allowed, or it is redirected to another path (the login page).
type Decision struct {
	Action     GuardAction
	RedirectTo string
}

// Guard decides whether a navigation to route may proceed given whether a
// persisted session was found. Pure function: the durable-storage re-check
// that produces sessionPresent happens in the navigator, so the policy is
// testable on its own.
//
// Parameters: route — the matched target route; sessionPresent — true when a
// persisted user was found in durable storage.
//
// Returns: Decision{GuardAllowed} for unguarded routes or a present session;
// Decision{GuardRedirected, LoginPath} when the route requires auth and no
// session is persisted.
//
// Called from service.Navigator on every transition.
func Guard(route domain.Route, sessionPresent bool) Decision {
	if route.RequiresAuth && !sessionPresent {
		return Decision{Action: GuardRedirected, RedirectTo: LoginPath}
	}
	return Decision{Action: GuardAllowed}
}
