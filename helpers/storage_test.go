package helpers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapStorage is a minimal map-backed storage for these tests. It returns a
// plain error for missing keys; the helpers only branch on err != nil.
type mapStorage struct {
	m      map[string]string
	setErr error
}

func newMapStorage() *mapStorage { return &mapStorage{m: map[string]string{}} }

func (s *mapStorage) Get(_ context.Context, key string) (string, error) {
	v, ok := s.m[key]
	if !ok {
		return "", errors.New("key " + key + " not found")
	}
	return v, nil
}

func (s *mapStorage) Set(_ context.Context, key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.m[key] = value
	return nil
}

func (s *mapStorage) Delete(_ context.Context, key string) error {
	delete(s.m, key)
	return nil
}

func TestGetBool(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		stored    string
		hasKey    bool
		wantValue bool
		wantFound bool
	}{
		{"stored_true", "true", true, true, true},
		{"stored_false", "false", true, false, true},
		{"stored_garbage_reads_false", "yes", true, false, true},
		{"absent_key", "", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMapStorage()
			if tt.hasKey {
				s.m["flag"] = tt.stored
			}
			value, found := GetBool(ctx, s, "flag")
			assert.Equal(t, tt.wantValue, value)
			assert.Equal(t, tt.wantFound, found)
		})
	}
}

func TestSetBool(t *testing.T) {
	ctx := context.Background()
	s := newMapStorage()

	require.NoError(t, SetBool(ctx, s, "flag", true))
	assert.Equal(t, "true", s.m["flag"])

	require.NoError(t, SetBool(ctx, s, "flag", false))
	assert.Equal(t, "false", s.m["flag"])
}

func TestGetJSON(t *testing.T) {
	ctx := context.Background()

	type record struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	t.Run("round_trip", func(t *testing.T) {
		s := newMapStorage()
		require.NoError(t, SetJSON(ctx, s, "record", record{ID: 7, Name: "alice"}))

		got, err := GetJSON[record](ctx, s, "record")
		require.NoError(t, err)
		assert.Equal(t, record{ID: 7, Name: "alice"}, got)
	})

	t.Run("absent_key_returns_error_and_zero", func(t *testing.T) {
		s := newMapStorage()
		got, err := GetJSON[record](ctx, s, "record")
		require.Error(t, err)
		assert.Zero(t, got)
	})

	t.Run("malformed_json_returns_error", func(t *testing.T) {
		s := newMapStorage()
		s.m["record"] = "{not json"
		_, err := GetJSON[record](ctx, s, "record")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unmarshal record")
	})

	t.Run("set_surfaces_storage_error", func(t *testing.T) {
		s := newMapStorage()
		s.setErr = errors.New("disk full")
		err := SetJSON(ctx, s, "record", record{ID: 1})
		assert.ErrorIs(t, err, s.setErr)
	})
}
