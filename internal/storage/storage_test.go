package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(LocalConfig{BasePath: t.TempDir()}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s
}

func TestRosterExportKey(t *testing.T) {
	id := uuid.MustParse("3f2b8c1e-7d4a-4b5e-9c6f-1a2b3c4d5e6f")
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "rosters/2025-01-01_2025-01-31/3f2b8c1e-7d4a-4b5e-9c6f-1a2b3c4d5e6f.json", RosterExportKey(start, end, id))
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"rosters/a/b.json", false},
		{"file..json", false},
		{"", true},
		{"/etc/passwd", true},
		{"../secret", true},
		{"rosters/../../secret", true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := validateKey(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLocalStorage_PutGet(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "rosters/x/v.json", strings.NewReader(`{"ok":true}`), PutOptions{}))

	exists, err := s.Exists(ctx, "rosters/x/v.json")
	require.NoError(t, err)
	assert.True(t, exists)

	rc, info, err := s.Get(ctx, "rosters/x/v.json")
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)

	assert.Equal(t, `{"ok":true}`, string(body))
	assert.Equal(t, int64(11), info.Size)
	assert.Equal(t, "application/json", info.ContentType)
}

func TestLocalStorage_PutRespectsOverwrite(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a.json", strings.NewReader("1"), PutOptions{}))

	err := s.Put(ctx, "a.json", strings.NewReader("2"), PutOptions{})
	assert.ErrorIs(t, err, ErrKeyExists)

	require.NoError(t, s.Put(ctx, "a.json", strings.NewReader("3"), PutOptions{Overwrite: true}))
	rc, _, err := s.Get(ctx, "a.json")
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "3", string(body))
}

func TestLocalStorage_PutMaxSize(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()

	err := s.Put(ctx, "big.json", strings.NewReader("0123456789"), PutOptions{MaxSize: 4})
	assert.ErrorIs(t, err, ErrTooLarge)

	exists, err := s.Exists(ctx, "big.json")
	require.NoError(t, err)
	assert.False(t, exists, "oversized object must not be left behind")
}

func TestLocalStorage_GetMissing(t *testing.T) {
	s := newTestLocal(t)

	_, _, err := s.Get(context.Background(), "missing.json")
	assert.True(t, IsNotFound(err))
}

func TestLocalStorage_DeleteIsIdempotent(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "d.json", strings.NewReader("x"), PutOptions{}))
	require.NoError(t, s.Delete(ctx, "d.json"))
	require.NoError(t, s.Delete(ctx, "d.json"))
}
