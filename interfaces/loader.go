package interfaces

import (
	"context"

	"mystorefront/domain"
)

// ComponentLoader loads the page component for a route before the navigation
// commits. A loader that
// cannot fetch the component because the deployed build went stale must
// return an error wrapping service.ErrStaleModule so the navigator can
// trigger a full reload; any other error only aborts the single navigation.
//
// Implemented by the storefront shell's loader func. Called from
// service.Navigator after the guard allows the transition.
//
//go:generate moq -stub -out mock/loader.go -pkg mock . ComponentLoader
type ComponentLoader interface {
	Load(ctx context.Context, route domain.Route) error
}

// Reloader restarts the whole application from scratch, rebuilding every
// store from persisted state. Invoked only when a
// component load fails with service.ErrStaleModule; there is no retry or
// backoff because a fresh start re-fetches current assets.
//
//go:generate moq -stub -out mock/reloader.go -pkg mock . Reloader
type Reloader interface {
	Reload()
}
