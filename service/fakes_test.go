package service

import (
	"context"

	"mystorefront/domain"
)

// fakeStorage is a map-backed storage tier for tests. getErr/setErr force
// failures on every read/write when set.
type fakeStorage struct {
	m      map[string]string
	getErr error
	setErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{m: map[string]string{}}
}

func (s *fakeStorage) Get(_ context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	v, ok := s.m[key]
	if !ok {
		return "", NewEntityNotFoundError("key "+key+" not found", nil)
	}
	return v, nil
}

func (s *fakeStorage) Set(_ context.Context, key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.m[key] = value
	return nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	delete(s.m, key)
	return nil
}

// recordingNotifier captures every notification per severity.
type recordingNotifier struct {
	successes []string
	warnings  []string
	errs      []string
}

func (n *recordingNotifier) Success(message string) { n.successes = append(n.successes, message) }
func (n *recordingNotifier) Warning(message string) { n.warnings = append(n.warnings, message) }
func (n *recordingNotifier) Error(message string)   { n.errs = append(n.errs, message) }

// fakeRequester delegates to fn so each test scripts the backend response.
type fakeRequester struct {
	fn func(ctx context.Context, method, path string, body any) (domain.APIResponse, error)
}

func (r *fakeRequester) Request(ctx context.Context, method, path string, body any) (domain.APIResponse, error) {
	return r.fn(ctx, method, path, body)
}

// fakeLoader records loaded route paths and fails with err when set.
type fakeLoader struct {
	err    error
	loaded []string
}

func (l *fakeLoader) Load(_ context.Context, route domain.Route) error {
	l.loaded = append(l.loaded, route.Path)
	return l.err
}

// fakeReloader counts reload requests.
type fakeReloader struct {
	count int
}

func (r *fakeReloader) Reload() { r.count++ }
