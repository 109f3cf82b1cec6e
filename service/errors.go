package service

import (
	"errors"
	"fmt"
)

const (
	ErrInternalServerError = "internal_server_error"
	ErrBadParameter        = "bad_parameter"
	ErrEntityNotFound      = "entity_not_found"
	ErrRequestFailed       = "request_failed"
)

// ErrStaleModule marks a component load that failed because the deployed
// build went stale (the asset the route points at no longer exists). Loaders
// wrap it; the navigator reacts with a full reload instead of surfacing a
// broken page.
var ErrStaleModule = errors.New("stale route module")

// StoreError carries a machine-readable code, a human-readable message and a
// wrapped inner error that is never shown to the user.
type StoreError struct {
	Code    string
	Message string
	Inner   error
}

func (e StoreError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Inner)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e StoreError) Unwrap() error { return e.Inner }

func NewEntityNotFoundError(message string, inner error) StoreError {
	return StoreError{Code: ErrEntityNotFound, Message: message, Inner: inner}
}

func IsEntityNotFound(err error) bool {
	var e StoreError
	return errors.As(err, &e) && e.Code == ErrEntityNotFound
}

func NewRequestFailedError(message string, inner error) StoreError {
	return StoreError{Code: ErrRequestFailed, Message: message, Inner: inner}
}

func IsRequestFailed(err error) bool {
	var e StoreError
	return errors.As(err, &e) && e.Code == ErrRequestFailed
}

func NewInternalServerError(message string, inner error) StoreError {
	return StoreError{Code: ErrInternalServerError, Message: message, Inner: inner}
}

func IsInternalServerError(err error) bool {
	var e StoreError
	return errors.As(err, &e) && e.Code == ErrInternalServerError
}

func NewBadParameterError(message string, inner error) StoreError {
	return StoreError{Code: ErrBadParameter, Message: message, Inner: inner}
}

func IsBadParameter(err error) bool {
	var e StoreError
	return errors.As(err, &e) && e.Code == ErrBadParameter
}

// ErrorMessage returns the user-facing message of a StoreError, or the
// fallback for any other error. The wrapped inner error is never exposed.
func ErrorMessage(err error, fallback string) string {
	var e StoreError
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
