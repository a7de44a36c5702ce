package blobstore

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/imagevault/imagevault/internal/conf"
	"github.com/imagevault/imagevault/internal/errors"
)

// DiskStore stores objects on the local filesystem under a root directory and
// serves them from a base URL. It backs the "public" and "local" disk
// selectors of the storage configuration.
type DiskStore struct {
	root    string
	baseURL string
}

// NewDiskStore creates a disk-backed store rooted at root, serving URLs under
// baseURL.
func NewDiskStore(root, baseURL string) *DiskStore {
	return &DiskStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// NewFromSettings builds the configured blob store. Only disk-backed
// selectors are recognized.
func NewFromSettings(settings *conf.Settings) (Store, error) {
	switch settings.Storage.Disk {
	case "public", "local", "":
		return NewDiskStore(settings.Storage.Root, settings.Storage.BaseURL), nil
	default:
		return nil, errors.Newf("unknown storage disk %q", settings.Storage.Disk).
			Component("blobstore").
			Category(errors.CategoryConfiguration).
			Build()
	}
}

// fullPath maps a storage-relative path onto the filesystem.
func (s *DiskStore) fullPath(p string) string {
	return filepath.Join(s.root, filepath.FromSlash(p))
}

// Put writes data at path, creating parent directories as needed. Public
// objects are world-readable, private objects are owner-only.
func (s *DiskStore) Put(p string, data []byte, visibility Visibility) error {
	full := s.fullPath(p)

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return errors.New(fmt.Errorf("creating directory for %s: %w", p, err)).
			Component("blobstore").
			Category(errors.CategoryFileIO).
			PathContext(p).
			Build()
	}

	mode := fs.FileMode(0o600)
	if visibility == Public {
		mode = 0o644
	}

	if err := os.WriteFile(full, data, mode); err != nil {
		return errors.New(fmt.Errorf("writing %s: %w", p, err)).
			Component("blobstore").
			Category(errors.CategoryFileIO).
			PathContext(p).
			Build()
	}
	return nil
}

// Exists reports whether a regular file is present at path.
func (s *DiskStore) Exists(p string) bool {
	info, err := os.Stat(s.fullPath(p))
	return err == nil && info.Mode().IsRegular()
}

// Delete removes the object at path. A missing path yields a not-found error
// so callers can distinguish it from a genuine I/O failure.
func (s *DiskStore) Delete(p string) error {
	err := os.Remove(s.fullPath(p))
	if err == nil {
		return nil
	}
	if os.IsNotExist(err) {
		return errors.New(fmt.Errorf("deleting %s: %w", p, err)).
			Component("blobstore").
			Category(errors.CategoryNotFound).
			PathContext(p).
			Build()
	}
	return errors.New(fmt.Errorf("deleting %s: %w", p, err)).
		Component("blobstore").
		Category(errors.CategoryFileIO).
		PathContext(p).
		Build()
}

// URL returns the public URL for path.
func (s *DiskStore) URL(p string) string {
	return s.baseURL + "/" + path.Clean(p)
}
