package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	store := NewLocalStorage()
	dir := filepath.Join(t.TempDir(), "Radio", "愛的加油站")

	require.NoError(t, store.EnsureDir(dir))
	assert.DirExists(t, dir)

	path := filepath.Join(dir, "2021.0911.愛的加油站.mp3")
	assert.False(t, store.Exists(path))

	require.NoError(t, os.WriteFile(path, []byte("audio"), 0o644))
	assert.True(t, store.Exists(path))

	assert.NoError(t, store.Archive(context.Background(), path))
	assert.NoError(t, store.Close())
}

func TestNewDefaultsToLocal(t *testing.T) {
	store, err := New(context.Background(), "local", "", "", "")
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, store)

	store, err = New(context.Background(), "", "", "", "")
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, store)
}
