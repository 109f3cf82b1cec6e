package helpers

import (
	"context"
	"encoding/json"
	"fmt"

	"mystorefront/interfaces"
)

// GetBool reads a "true"/"false" flag from storage. Absent keys and any value
// other than exactly "true" read as false — the flags only ever persist those
// two strings, so a missing or mangled value degrades to the safe default.
//
// Parameters: s — storage tier; key — flag key (e.g. domain.KeyRememberMe).
//
// Returns: (true, true) when the stored value is "true"; (false, true) for
// any other stored value; (false, false) when the key is absent or the read
// failed.
//
// Called from service.SessionStore.Initialize and service.NewCartStore when
// rehydrating persisted flags.
func GetBool(ctx context.Context, s interfaces.Storage, key string) (bool, bool) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return false, false
	}
	return raw == "true", true
}

// SetBool persists a flag as the string "true" or "false".
func SetBool(ctx context.Context, s interfaces.Storage, key string, v bool) error {
	if v {
		return s.Set(ctx, key, "true")
	}
	return s.Set(ctx, key, "false")
}

// GetJSON reads key from storage and unmarshals it into T.
//
// Parameters: s — storage tier; key — storage key holding a JSON document.
//
// Returns: (value, nil) on success; (zero, err) when the key is absent
// (entity_not_found from the adapter) or the stored JSON is malformed.
// Callers treat both as "no usable record" and discard.
//
// Called from service.SessionStore (user rehydrate, guard re-check via the
// navigator) and service.CartStore (cart rehydrate).
func GetJSON[T any](ctx context.Context, s interfaces.Storage, key string) (T, error) {
	var zero T
	raw, err := s.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return zero, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return v, nil
}

// SetJSON marshals v and stores it under key.
func SetJSON[T any](ctx context.Context, s interfaces.Storage, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.Set(ctx, key, string(data))
}
