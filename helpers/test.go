package helpers

import (
	"time"
)

// TestNow returns a fixed time (2026-08-20 09:30:00 UTC) for deterministic
// tests (token expiry, logging).
//
// Called from tests (e.g. auth/token_test, cmd/backend handler tests) when a
// fixed "current" time is needed.
func TestNow() time.Time {
	return time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
}
