package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"mystorefront/domain"
	"mystorefront/helpers"
	"mystorefront/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const loginPath = "/auth/login"

// SessionStore owns the authenticated user. The user is persisted to the
// durable tier when "remember me" is set and to the tab-scoped tier
// otherwise; switching a session from remembered to not-remembered erases the
// durable copy. Login talks to the backend through the Requester and never
// lets an error escape: every outcome becomes a notification plus a bool.
type SessionStore struct {
	durable   interfaces.Storage
	tab       interfaces.Storage
	requester interfaces.Requester
	notifier  interfaces.Notifier
	logger    log.Logger

	mu         sync.Mutex
	user       *domain.User
	rememberMe bool
}

// NewSessionStore creates the store. Panics on any nil dependency. The store
// starts empty; call Initialize to rehydrate a remembered session.
//
// Called from cmd/storefront when building the app.
func NewSessionStore(
	durable interfaces.Storage,
	tab interfaces.Storage,
	requester interfaces.Requester,
	notifier interfaces.Notifier,
	logger log.Logger,
) *SessionStore {
	return &SessionStore{
		durable:   helpers.NilPanic(durable, "service.session.go: durable storage is required"),
		tab:       helpers.NilPanic(tab, "service.session.go: tab storage is required"),
		requester: helpers.NilPanic(requester, "service.session.go: requester is required"),
		notifier:  helpers.NilPanic(notifier, "service.session.go: notifier is required"),
		logger:    log.WithPrefix(helpers.NilPanic(logger, "service.session.go: logger is required"), "component", "SessionStore"),
	}
}

// Initialize rehydrates a remembered session from durable storage: the user
// is restored only when the rememberMe flag was durably set to "true". A
// malformed stored user is discarded and its key deleted — corrupt persisted
// state never blocks startup, so Initialize has no error return.
//
// Called once from cmd/storefront right after construction.
func (s *SessionStore) Initialize(ctx context.Context) {
	remembered, _ := helpers.GetBool(ctx, s.durable, domain.KeyRememberMe)
	if !remembered {
		return
	}
	user, err := helpers.GetJSON[domain.User](ctx, s.durable, domain.KeyUser)
	if err != nil {
		if !IsEntityNotFound(err) {
			level.Error(s.logger).Log("msg", "discarding corrupt persisted user", "err", err)
			if delErr := s.durable.Delete(ctx, domain.KeyUser); delErr != nil {
				level.Error(s.logger).Log("msg", "delete corrupt persisted user", "err", delErr)
			}
		}
		return
	}
	s.mu.Lock()
	s.user = &user
	s.rememberMe = true
	s.mu.Unlock()
}

// Login authenticates against POST /auth/login with the given credentials.
// Success is the envelope message equalling domain.LoginSuccessMessage: the
// response data becomes the User (role defaulted to "customer"), SetUser
// persists it per remember, a success notification carries the server
// message, and true is returned. Any other outcome — failure message,
// undecodable data, transport error — emits an error notification and
// returns false. Never returns an error past this boundary.
func (s *SessionStore) Login(ctx context.Context, phone, password string, remember bool) bool {
	resp, err := s.requester.Request(ctx, http.MethodPost, loginPath, domain.LoginRequest{
		Phone:    phone,
		Password: password,
	})
	if err != nil {
		level.Error(s.logger).Log("msg", "login request failed", "err", err)
		s.notifier.Error("login failed: " + ErrorMessage(err, "unknown error"))
		return false
	}
	if resp.Message != domain.LoginSuccessMessage {
		msg := resp.Message
		if msg == "" {
			msg = "login failed"
		}
		s.notifier.Error(msg)
		return false
	}
	var user domain.User
	if err := json.Unmarshal(resp.Data, &user); err != nil {
		level.Error(s.logger).Log("msg", "undecodable login response data", "err", err)
		s.notifier.Error("login failed")
		return false
	}
	if user.Role == "" {
		user.Role = domain.DefaultRole
	}
	s.SetUser(ctx, user, remember)
	s.notifier.Success(resp.Message)
	return true
}

// SetUser replaces the current user and persists it. remember=true writes the
// user and the rememberMe flag to the durable tier; remember=false writes the
// user to the tab-scoped tier and erases any prior durable record. Storage
// write failures are logged, not surfaced — persistence is write-through and
// best-effort, the in-memory state is authoritative for this run.
func (s *SessionStore) SetUser(ctx context.Context, user domain.User, remember bool) {
	s.mu.Lock()
	s.user = &user
	s.rememberMe = remember
	s.mu.Unlock()

	if remember {
		if err := helpers.SetJSON(ctx, s.durable, domain.KeyUser, user); err != nil {
			level.Error(s.logger).Log("msg", "persist user", "err", err)
		}
		if err := s.durable.Set(ctx, domain.KeyRememberMe, "true"); err != nil {
			level.Error(s.logger).Log("msg", "persist rememberMe", "err", err)
		}
		return
	}
	if err := helpers.SetJSON(ctx, s.tab, domain.KeyUser, user); err != nil {
		level.Error(s.logger).Log("msg", "persist tab user", "err", err)
	}
	if err := s.durable.Delete(ctx, domain.KeyUser); err != nil {
		level.Error(s.logger).Log("msg", "erase durable user", "err", err)
	}
	if err := s.durable.Delete(ctx, domain.KeyRememberMe); err != nil {
		level.Error(s.logger).Log("msg", "erase rememberMe", "err", err)
	}
}

// Logout clears the user and every persisted copy, durable and tab-scoped,
// unconditionally.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.rememberMe = false
	s.mu.Unlock()

	for _, key := range []string{domain.KeyUser, domain.KeyRememberMe} {
		if err := s.durable.Delete(ctx, key); err != nil {
			level.Error(s.logger).Log("msg", "erase durable session", "key", key, "err", err)
		}
	}
	if err := s.tab.Delete(ctx, domain.KeyUser); err != nil {
		level.Error(s.logger).Log("msg", "erase tab session", "err", err)
	}
}

// CurrentUser returns a copy of the logged-in user, or ok=false when nobody
// is logged in.
func (s *SessionStore) CurrentUser() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// RememberMe reports whether the current session is durably remembered.
func (s *SessionStore) RememberMe() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rememberMe
}
