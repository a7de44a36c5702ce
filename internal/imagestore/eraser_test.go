package imagestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imagevault/imagevault/internal/blobstore"
	"github.com/imagevault/imagevault/internal/errors"
)

func newTestEraser(blobs *memBlobStore) *VariantEraser {
	settings := testSettings()
	return NewVariantEraser(blobs, NewSizeConfig(settings), NewResolver(settings.Storage.BasePath), nil)
}

func TestEraseRemovesAllVariants(t *testing.T) {
	t.Parallel()

	blobs := newMemBlobStore()
	require.NoError(t, newTestWriter(blobs).Write([]byte("fileA"), "user", "avatar", "a.webp"))

	require.NoError(t, newTestEraser(blobs).Erase("user", "avatar", "a.webp"))
	assert.Empty(t, blobs.objects)
}

func TestEraseToleratesMissingPaths(t *testing.T) {
	t.Parallel()

	blobs := newMemBlobStore()
	// Only the original exists; thumbnail and medium were never written.
	require.NoError(t, blobs.Put("uploads/user/avatar/original/a.webp", []byte("x"), blobstore.Private))

	require.NoError(t, newTestEraser(blobs).Erase("user", "avatar", "a.webp"))
	assert.Empty(t, blobs.objects)
}

func TestEraseOnNothingAtAll(t *testing.T) {
	t.Parallel()

	blobs := newMemBlobStore()
	require.NoError(t, newTestEraser(blobs).Erase("user", "avatar", "gone.webp"))
}

func TestEraseSurfacesBackendFailure(t *testing.T) {
	t.Parallel()

	blobs := newMemBlobStore()
	require.NoError(t, newTestWriter(blobs).Write([]byte("fileA"), "user", "avatar", "a.webp"))
	blobs.failDelOn = "medium"

	err := newTestEraser(blobs).Erase("user", "avatar", "a.webp")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryStorageDelete))
}

func TestEraseUndeclaredCategory(t *testing.T) {
	t.Parallel()

	blobs := newMemBlobStore()
	err := newTestEraser(blobs).Erase("user", "banner", "a.webp")
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
}
