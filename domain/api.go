package domain

import "encoding/json"

// APIResponse is the backend's JSON envelope: a human-readable message plus
// an operation-specific payload. The HTTP client wrapper returns it with the
// transport detail (status, headers) already stripped; callers branch on
// Message and decode Data themselves.
type APIResponse struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}
