package interfaces

import "context"

// Storage is a flat string key-value store modelling one browser storage
// tier. The durable tier survives restarts (JSON file or redis); the
// tab-scoped tier is an in-memory map that dies with the process. The session
// store and cart store own disjoint key namespaces and never contend.
//
// Get returns the stored value or an entity_not_found error (see
// service.IsEntityNotFound) when the key is absent. Set overwrites
// unconditionally; Delete of an absent key is a no-op. Implementations must
// be safe for concurrent use.
//
// Implemented by adapters/storage.Memory, adapters/storage.File and
// adapters/storage.Redis. Called from service.SessionStore, service.CartStore
// and service.Navigator (the guard's direct durable re-check).
type Storage interface {
	// Get returns the value for key; entity_not_found error when absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key; removing an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
