package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cenovnik/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, logger.Discard())
	require.NoError(t, err)
	ctx := context.Background()

	created := time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)
	s := &Session{Username: "admin", CreatedAt: created, ExpiresAt: created.Add(DefaultTTL)}
	require.NoError(t, store.Save(ctx, "abc123", s))

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Contains(t, loaded, "abc123")
	assert.Equal(t, "admin", loaded["abc123"].Username)
	assert.True(t, created.Equal(loaded["abc123"].CreatedAt))
}

func TestFileStore_ReadsISOTimestamps(t *testing.T) {
	dir := t.TempDir()
	raw := `{"username":"admin","createdAt":"2026-10-19T08:30:00.000Z","expiresAt":"2026-10-20T08:30:00.000Z"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "feed.json"), []byte(raw), 0o600))

	store, err := NewFileStore(dir, logger.Discard())
	require.NoError(t, err)

	loaded, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	require.Contains(t, loaded, "feed")
	assert.Equal(t, 2026, loaded["feed"].ExpiresAt.Year())
}

func TestFileStore_LoadSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o700))

	store, err := NewFileStore(dir, logger.Discard())
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "good", &Session{Username: "admin"}))

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
	assert.Contains(t, loaded, "good")
}

func TestFileStore_DeleteMissingIsNotError(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), logger.Discard())
	require.NoError(t, err)
	assert.NoError(t, store.Delete(context.Background(), "missing"))
}

func TestFileStore_RejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), logger.Discard())
	require.NoError(t, err)
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, "../escape", &Session{}))
	assert.Error(t, store.Delete(ctx, "a/b"))
	assert.Error(t, store.Save(ctx, "", &Session{}))
}
