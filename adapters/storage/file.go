package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"mystorefront/helpers"
	"mystorefront/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// File is a JSON-file-backed interfaces.Storage: the durable tier of a local
// install. The whole key space is one flat map, loaded once at open and
// rewritten on every mutation — the store holds four small keys, so a full
// rewrite is cheaper than being clever.
type File struct {
	path   string
	logger log.Logger

	mu sync.Mutex
	m  map[string]string
}

// NewFile opens (or creates) the storage file at path. A missing file starts
// empty; an unreadable or malformed file is discarded and the store starts
// empty — corrupt persisted state never blocks startup. Panics on empty path
// or nil logger.
//
// Called from cmd/storefront when REDIS_ADDR is not configured.
func NewFile(path string, logger log.Logger) (*File, error) {
	s := &File{
		path:   helpers.StrPanic(path, "adapters.storage.file.go: path is required"),
		logger: log.WithPrefix(helpers.NilPanic(logger, "adapters.storage.file.go: logger is required"), "component", "FileStorage"),
		m:      make(map[string]string),
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read storage file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.m); err != nil {
		level.Error(s.logger).Log("msg", "discarding corrupt storage file", "path", path, "err", err)
		s.m = make(map[string]string)
	}
	return s, nil
}

func (s *File) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	if !ok {
		return "", service.NewEntityNotFoundError("key "+key+" not found", nil)
	}
	return v, nil
}

func (s *File) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return s.flush()
}

func (s *File) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[key]; !ok {
		return nil
	}
	delete(s.m, key)
	return s.flush()
}

// flush rewrites the whole file. Callers hold s.mu.
func (s *File) flush() error {
	data, err := json.MarshalIndent(s.m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal storage map: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write storage file %s: %w", s.path, err)
	}
	return nil
}
