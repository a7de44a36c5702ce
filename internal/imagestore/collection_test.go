package imagestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollection(store *mockMetadataStore, blobs *memBlobStore) *Collection {
	return NewCollection(newTestManager(store, blobs))
}

func TestStoreMany(t *testing.T) {
	t.Parallel()

	store := newMockMetadataStore()
	blobs := newMemBlobStore()
	collection := newTestCollection(store, blobs)
	owner := OwnerRef{Type: "user", ID: 1}

	records, ok := collection.StoreMany(owner, []Upload{
		{Name: "a.png", Data: []byte("fileA")},
		{Name: "b.png", Data: []byte("fileB")},
	}, "avatar")

	assert.True(t, ok)
	require.Len(t, records, 2)
	assert.Len(t, store.records, 2)
	assert.Len(t, blobs.objects, 6)
}

func TestStoreManySkipsNonFileInputs(t *testing.T) {
	t.Parallel()

	store := newMockMetadataStore()
	blobs := newMemBlobStore()
	collection := newTestCollection(store, blobs)
	owner := OwnerRef{Type: "user", ID: 1}

	records, ok := collection.StoreMany(owner, []Upload{
		{Name: "a.png", Data: []byte("fileA")},
		{Name: "empty.png"}, // no data, not a file
		{Name: "b.png", Data: []byte("fileB")},
	}, "avatar")

	assert.True(t, ok, "non-file inputs are skipped, not an error")
	require.Len(t, records, 2)

	// Result order matches the order of the valid inputs.
	assert.Equal(t, "fileA|source|webp|q90",
		string(blobs.objects["uploads/user/avatar/original/"+records[0].Name]))
	assert.Equal(t, "fileB|source|webp|q90",
		string(blobs.objects["uploads/user/avatar/original/"+records[1].Name]))
}

func TestStoreManyReportsFailure(t *testing.T) {
	t.Parallel()

	store := newMockMetadataStore()
	blobs := newMemBlobStore()
	blobs.failPutNth = 4 // second upload's first write fails
	collection := newTestCollection(store, blobs)
	owner := OwnerRef{Type: "user", ID: 1}

	records, ok := collection.StoreMany(owner, []Upload{
		{Name: "a.png", Data: []byte("fileA")},
		{Name: "b.png", Data: []byte("fileB")},
	}, "avatar")

	assert.False(t, ok)
	assert.Len(t, records, 1, "records stored before the failure are reported")
	assert.Len(t, store.records, 1)
}

func TestReplace(t *testing.T) {
	t.Parallel()

	store := newMockMetadataStore()
	blobs := newMemBlobStore()
	collection := newTestCollection(store, blobs)
	owner := OwnerRef{Type: "user", ID: 1}

	_, ok := collection.StoreMany(owner, []Upload{
		{Data: []byte("old1")}, {Data: []byte("old2")}, {Data: []byte("old3")},
	}, "avatar")
	require.True(t, ok)

	records, ok := collection.Replace(owner, []Upload{{Data: []byte("new1")}}, "avatar")
	assert.True(t, ok)
	require.Len(t, records, 1)
	assert.Len(t, store.records, 1)
	assert.Len(t, blobs.objects, 3, "only the replacement's variants remain")
}

func TestSyncScenario(t *testing.T) {
	t.Parallel()

	store := newMockMetadataStore()
	blobs := newMemBlobStore()
	collection := newTestCollection(store, blobs)
	owner := OwnerRef{Type: "user", ID: 1}

	existing, ok := collection.StoreMany(owner, []Upload{
		{Data: []byte("old1")}, {Data: []byte("old2")}, {Data: []byte("old3")},
	}, "gallery")
	require.True(t, ok)
	require.Len(t, existing, 3)

	ok = collection.Sync(owner, []Upload{
		{Data: []byte("fileA")}, {Data: []byte("fileB")},
	}, "gallery")
	require.True(t, ok)

	// Positions 0 and 1 updated in place, position 2 deleted.
	require.Len(t, store.records, 2)
	first, err := store.GetImageRecord(existing[0].ID)
	require.NoError(t, err)
	second, err := store.GetImageRecord(existing[1].ID)
	require.NoError(t, err)
	_, err = store.GetImageRecord(existing[2].ID)
	require.Error(t, err, "third record deleted")

	assert.Equal(t, "fileA|source|webp|q90",
		string(blobs.objects["uploads/user/gallery/original/"+first.Name]))
	assert.Equal(t, "fileB|source|webp|q90",
		string(blobs.objects["uploads/user/gallery/original/"+second.Name]))
	assert.Len(t, blobs.objects, 4, "two images, original plus preview each")
}

func TestSyncCreatesBeyondExisting(t *testing.T) {
	t.Parallel()

	store := newMockMetadataStore()
	blobs := newMemBlobStore()
	collection := newTestCollection(store, blobs)
	owner := OwnerRef{Type: "user", ID: 1}

	existing, ok := collection.StoreMany(owner, []Upload{{Data: []byte("old1")}}, "gallery")
	require.True(t, ok)
	require.Len(t, existing, 1)

	ok = collection.Sync(owner, []Upload{
		{Data: []byte("fileA")}, {Data: []byte("fileB")}, {Data: []byte("fileC")},
	}, "gallery")
	require.True(t, ok)

	assert.Len(t, store.records, 3, "position 0 updated, positions 1 and 2 created")
}

func TestSyncWithEmptyInputDeletesEverything(t *testing.T) {
	t.Parallel()

	store := newMockMetadataStore()
	blobs := newMemBlobStore()
	collection := newTestCollection(store, blobs)
	owner := OwnerRef{Type: "user", ID: 1}

	_, ok := collection.StoreMany(owner, []Upload{
		{Data: []byte("old1")}, {Data: []byte("old2")},
	}, "gallery")
	require.True(t, ok)

	require.True(t, collection.Sync(owner, nil, "gallery"))
	assert.Empty(t, store.records)
	assert.Empty(t, blobs.objects)
}
