// Package blobstore defines the byte storage capability the image lifecycle
// manager writes variants through, plus a local filesystem implementation.
package blobstore

// Visibility controls who may read a stored object.
type Visibility int

const (
	Private Visibility = iota
	Public
)

// String returns the visibility as a config-style label.
func (v Visibility) String() string {
	if v == Public {
		return "public"
	}
	return "private"
}

// Store is the byte storage backend. Paths are storage-relative, forward
// slash separated.
type Store interface {
	// Put writes data at path, creating parent directories or prefixes as
	// needed. Visibility applies to the written object only.
	Put(path string, data []byte, visibility Visibility) error
	// Exists reports whether an object is present at path.
	Exists(path string) bool
	// Delete removes the object at path. Deleting a missing path returns an
	// error satisfying errors.IsNotFound.
	Delete(path string) error
	// URL returns the public URL for path.
	URL(path string) string
}
