package interfaces

import (
	"context"

	"mystorefront/domain"
)

// Requester performs a JSON request against the storefront backend and
// returns the decoded response envelope. The implementation owns the base
// URL, the fixed timeout and content type, request/response logging, and
// raising an error notification on any failure; callers still receive the
// failure as a returned error and may branch on it.
//
// Request(ctx, method, path, body): path is relative to the base URL; body is
// any JSON-serializable value or nil. Returns (envelope, nil) on a 2xx
// response; (zero, error) on transport failure, timeout or non-2xx status
// (error code request_failed, message taken from the error payload when
// present).
//
// Implemented by adapters/httpapi.Client. Called from service.SessionStore
// (login) and the storefront shell (product listing).
//
//go:generate moq -stub -out mock/requester.go -pkg mock . Requester
type Requester interface {
	Request(ctx context.Context, method, path string, body any) (domain.APIResponse, error)
}
