package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mystorefront/domain"
	"mystorefront/service"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	errs []string
}

func (n *recordingNotifier) Success(message string) {}
func (n *recordingNotifier) Warning(message string) {}
func (n *recordingNotifier) Error(message string)   { n.errs = append(n.errs, message) }

func TestNewClient_Panics(t *testing.T) {
	httpClient := &http.Client{}
	notifier := &recordingNotifier{}
	logger := log.NewNopLogger()

	assert.PanicsWithValue(t, "adapters.httpapi.client.go: baseURL is required", func() {
		NewClient("", httpClient, notifier, logger)
	})
	assert.PanicsWithValue(t, "adapters.httpapi.client.go: http client is required", func() {
		NewClient("http://localhost", nil, notifier, logger)
	})
	assert.PanicsWithValue(t, "adapters.httpapi.client.go: notifier is required", func() {
		NewClient("http://localhost", httpClient, nil, logger)
	})
	assert.PanicsWithValue(t, "adapters.httpapi.client.go: logger is required", func() {
		NewClient("http://localhost", httpClient, notifier, nil)
	})
}

func TestClient_Request(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes_success_envelope", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/products", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"message":"ok","data":[{"id":1}]}`))
		}))
		defer srv.Close()

		notifier := &recordingNotifier{}
		c := NewClient(srv.URL, srv.Client(), notifier, log.NewNopLogger())

		resp, err := c.Request(ctx, http.MethodGet, "/products", nil)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Message)
		assert.JSONEq(t, `[{"id":1}]`, string(resp.Data))
		assert.Empty(t, notifier.errs)
	})

	t.Run("sends_json_body_with_content_type", func(t *testing.T) {
		var gotContentType string
		var gotBody domain.LoginRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotContentType = r.Header.Get("Content-Type")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_, _ = w.Write([]byte(`{"message":"ok"}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, srv.Client(), &recordingNotifier{}, log.NewNopLogger())
		_, err := c.Request(ctx, http.MethodPost, "/auth/login", domain.LoginRequest{Phone: "13800138000", Password: "123456"})
		require.NoError(t, err)

		assert.Equal(t, "application/json", gotContentType)
		assert.Equal(t, "13800138000", gotBody.Phone)
	})

	t.Run("non_2xx_raises_payload_message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"invalid phone or password"}`))
		}))
		defer srv.Close()

		notifier := &recordingNotifier{}
		c := NewClient(srv.URL, srv.Client(), notifier, log.NewNopLogger())

		_, err := c.Request(ctx, http.MethodPost, "/auth/login", nil)
		require.Error(t, err)
		assert.True(t, service.IsRequestFailed(err))
		assert.Equal(t, "invalid phone or password", service.ErrorMessage(err, ""))
		assert.Equal(t, []string{"invalid phone or password"}, notifier.errs)
	})

	t.Run("non_2xx_without_message_uses_fallback", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("<html>panic</html>"))
		}))
		defer srv.Close()

		notifier := &recordingNotifier{}
		c := NewClient(srv.URL, srv.Client(), notifier, log.NewNopLogger())

		_, err := c.Request(ctx, http.MethodGet, "/products", nil)
		require.Error(t, err)
		assert.True(t, service.IsRequestFailed(err))
		assert.Equal(t, []string{"request failed"}, notifier.errs)
	})

	t.Run("transport_error_notifies_and_returns_request_failed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // shut down immediately so the dial fails

		notifier := &recordingNotifier{}
		c := NewClient(srv.URL, &http.Client{}, notifier, log.NewNopLogger())

		_, err := c.Request(ctx, http.MethodGet, "/products", nil)
		require.Error(t, err)
		assert.True(t, service.IsRequestFailed(err))
		assert.Equal(t, []string{"request failed"}, notifier.errs)
	})

	t.Run("undecodable_success_body_is_request_failed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer srv.Close()

		notifier := &recordingNotifier{}
		c := NewClient(srv.URL, srv.Client(), notifier, log.NewNopLogger())

		_, err := c.Request(ctx, http.MethodGet, "/products", nil)
		require.Error(t, err)
		assert.True(t, service.IsRequestFailed(err))
		assert.Equal(t, []string{"request failed"}, notifier.errs)
	})

	t.Run("unmarshalable_body_is_internal_error_without_notification", func(t *testing.T) {
		notifier := &recordingNotifier{}
		c := NewClient("http://localhost:1", &http.Client{}, notifier, log.NewNopLogger())

		_, err := c.Request(ctx, http.MethodPost, "/auth/login", func() {})
		require.Error(t, err)
		assert.True(t, service.IsInternalServerError(err))
		assert.Empty(t, notifier.errs)
	})
}
