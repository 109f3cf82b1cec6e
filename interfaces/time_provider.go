package interfaces

import "time"

// TimeProvider supplies the current time for token issuance and logging.
// Injected so tests can use a fixed clock instead of time.Now().
//
// Used by the mock backend's login handler to stamp issued_at/expires_at on
// auth tokens. Constructed in cmd/backend as
// service.NewTimeProvider(func() time.Time { return time.Now().UTC() }).
//
//go:generate moq -stub -out mock/time_provider.go -pkg mock . TimeProvider
type TimeProvider interface {
	// Now returns current time (UTC in prod; in tests — fixed time for
	// deterministic token expiry).
	Now() time.Time
}
