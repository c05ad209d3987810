package uangku

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirStore(t *testing.T) {
	store := NewDirStore(t.TempDir())

	_, err := store.Load(KeyAccounts)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "missing key must report fs.ErrNotExist, got %v", err)

	content := []byte(`{"id":"a1"}` + "\n")
	require.NoError(t, store.Save(KeyAccounts, content))

	got, err := store.Load(KeyAccounts)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestDirStore_CreatesDirectoryLazily(t *testing.T) {
	store := NewDirStore(t.TempDir() + "/nested/data")
	require.NoError(t, store.Save(KeyPlatforms, []byte("{}\n")))

	got, err := store.Load(KeyPlatforms)
	require.NoError(t, err)
	assert.Equal(t, []byte("{}\n"), got)
}

func TestMemStore(t *testing.T) {
	store := MemStore{}

	_, err := store.Load(KeyReceivables)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	require.NoError(t, store.Save(KeyReceivables, []byte("x")))
	got, err := store.Load(KeyReceivables)
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), got)
}
