package cartstorage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := NewFileStorage(filepath.Join(t.TempDir(), "nested", "cart.json"))

	require.NoError(t, storage.Save(ctx, []byte(`{"version":1,"items":[]}`)))

	data, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"version":1,"items":[]}`, string(data))
}

func TestFileStorageLoadMissingFile(t *testing.T) {
	storage := NewFileStorage(filepath.Join(t.TempDir(), "cart.json"))

	data, err := storage.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFileStorageSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	storage := NewFileStorage(filepath.Join(t.TempDir(), "cart.json"))

	require.NoError(t, storage.Save(ctx, []byte("first")))
	require.NoError(t, storage.Save(ctx, []byte("second")))

	data, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}
