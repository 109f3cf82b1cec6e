package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"mystorefront/domain"
	"mystorefront/helpers"
	"mystorefront/interfaces"
	"mystorefront/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
)

// msgRequestFailed is the fallback user-facing message when the error payload
// carries none.
const msgRequestFailed = "request failed"

// NewClient creates an interfaces.Requester that talks to the storefront
// backend: JSON in and out against a fixed base URL, every exchange logged,
// every failure surfaced on the notifier and re-signalled to the caller as a
// request_failed error. The timeout is owned by the injected http.Client
// (cmd config sets 5000 ms). Panics on empty baseURL or any nil dependency.
//
// Parameters: baseURL — backend base URL (e.g. http://localhost:9000/api), no
// trailing slash; client — HTTP client with the fixed timeout; notifier —
// global notification surface; logger — diagnostic log sink.
//
// Returns: interfaces.Requester (*client).
//
// Called from cmd/storefront when building the app.
func NewClient(baseURL string, httpClient *http.Client, notifier interfaces.Notifier, logger log.Logger) interfaces.Requester {
	return &client{
		baseURL:  helpers.StrPanic(baseURL, "adapters.httpapi.client.go: baseURL is required"),
		client:   helpers.NilPanic(httpClient, "adapters.httpapi.client.go: http client is required"),
		notifier: helpers.NilPanic(notifier, "adapters.httpapi.client.go: notifier is required"),
		logger:   log.WithPrefix(helpers.NilPanic(logger, "adapters.httpapi.client.go: logger is required"), "component", "APIClient"),
	}
}

// client implements interfaces.Requester. Holds the base URL, the timeout-
// bearing http.Client, the notifier and the log sink.
type client struct {
	baseURL  string
	client   *http.Client
	notifier interfaces.Notifier
	logger   log.Logger
}

// Request performs method path against the base URL with an optional JSON
// body and returns the decoded {message, data} envelope. On transport failure
// or a non-2xx status the human-readable message is extracted from the error
// payload when present (fallback "request failed"), raised on the notifier,
// and returned to the caller as a request_failed error so it can still branch
// on the outcome.
func (c *client) Request(ctx context.Context, method, path string, body any) (domain.APIResponse, error) {
	var zero domain.APIResponse
	requestID := uuid.NewString()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return zero, service.NewInternalServerError(msgRequestFailed, fmt.Errorf("marshal request body: %w", err))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return zero, service.NewInternalServerError(msgRequestFailed, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	level.Info(c.logger).Log("msg", "request", "request_id", requestID, "method", method, "path", path)

	resp, err := c.client.Do(req)
	if err != nil {
		level.Error(c.logger).Log("msg", "request error", "request_id", requestID, "err", err)
		c.notifier.Error(msgRequestFailed)
		return zero, service.NewRequestFailedError(msgRequestFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		level.Error(c.logger).Log("msg", "read response", "request_id", requestID, "err", err)
		c.notifier.Error(msgRequestFailed)
		return zero, service.NewRequestFailedError(msgRequestFailed, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := errorMessage(raw)
		level.Error(c.logger).Log("msg", "response error", "request_id", requestID, "status", resp.StatusCode, "message", msg)
		c.notifier.Error(msg)
		return zero, service.NewRequestFailedError(msg, fmt.Errorf("backend returned %d", resp.StatusCode))
	}

	var envelope domain.APIResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		level.Error(c.logger).Log("msg", "undecodable response", "request_id", requestID, "err", err)
		c.notifier.Error(msgRequestFailed)
		return zero, service.NewRequestFailedError(msgRequestFailed, err)
	}

	level.Info(c.logger).Log("msg", "response", "request_id", requestID, "status", resp.StatusCode, "message", envelope.Message)
	return envelope, nil
}

// errorMessage extracts the human-readable message from an error payload, or
// falls back to the generic string when the body is not the usual envelope.
func errorMessage(raw []byte) string {
	var envelope domain.APIResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return msgRequestFailed
}
