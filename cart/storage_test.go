package cart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	storage := NewFileStorage(path)

	state := State{Items: []Item{{Slug: "shirt", Quantity: 1}}}
	require.NoError(t, storage.Save(state))

	loaded, ok := storage.Load()
	require.True(t, ok)
	assert.Equal(t, "shirt", loaded.Items[0].Slug)
}

func TestFileStorage_MissingFile(t *testing.T) {
	storage := NewFileStorage(filepath.Join(t.TempDir(), "cart.json"))

	_, ok := storage.Load()
	assert.False(t, ok)
}

func TestFileStorage_CorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0644))

	_, ok := NewFileStorage(path).Load()
	assert.False(t, ok)
}

func TestFileStorage_ClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	storage := NewFileStorage(path)
	require.NoError(t, storage.Save(State{}))

	require.NoError(t, storage.Clear())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-empty slot is fine.
	assert.NoError(t, storage.Clear())
}
