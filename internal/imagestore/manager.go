package imagestore

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/imagevault/imagevault/internal/blobstore"
	"github.com/imagevault/imagevault/internal/conf"
	"github.com/imagevault/imagevault/internal/datastore"
	"github.com/imagevault/imagevault/internal/errors"
	"github.com/imagevault/imagevault/internal/imagecodec"
	"github.com/imagevault/imagevault/internal/logging"
)

// pageSize bounds how many records a batch delete touches per fetch, so
// owners with very large image counts never pull everything into memory at
// once. A page boundary is not a unit-of-atomicity boundary.
const pageSize = 100

// Manager orchestrates the image record lifecycle: it coordinates the variant
// writer and eraser with metadata row operations, with defined behavior for
// partial failures.
type Manager struct {
	store    datastore.Interface
	writer   *VariantWriter
	eraser   *VariantEraser
	blobs    blobstore.Store
	sizes    SizeConfig
	resolver *Resolver
	format   string
	log      *slog.Logger
}

// NewManager wires a manager from explicit collaborators. All dependencies
// are injected; nothing is looked up through globals.
func NewManager(settings *conf.Settings, store datastore.Interface, blobs blobstore.Store, codec imagecodec.Codec) *Manager {
	log := logging.ForService("imagestore")
	sizes := NewSizeConfig(settings)
	resolver := NewResolver(settings.Storage.BasePath)

	return &Manager{
		store:    store,
		writer:   NewVariantWriter(codec, blobs, sizes, resolver, settings.Storage.Format, settings.Storage.Quality, log),
		eraser:   NewVariantEraser(blobs, sizes, resolver, log),
		blobs:    blobs,
		sizes:    sizes,
		resolver: resolver,
		format:   settings.Storage.Format,
		log:      log,
	}
}

// newName generates a fresh collision-free filename stem with the output
// extension. Uniqueness rests on the randomness of the identifier, not on an
// existence check.
func (m *Manager) newName(src []byte) (string, error) {
	sourceFormat := ""
	if m.format == conf.FormatOriginal {
		detected, err := imagecodec.DetectFormat(src)
		if err != nil {
			return "", err
		}
		sourceFormat = detected
	}
	return uuid.NewString() + imagecodec.Extension(m.format, sourceFormat), nil
}

// cleanupVariants removes variants left behind by a failed operation. It is
// best-effort: a cleanup failure is logged and never masks the original error.
func (m *Manager) cleanupVariants(ownerType, category, name string) {
	if err := m.eraser.Erase(ownerType, category, name); err != nil {
		m.log.Error("cleanup of partial variants failed",
			"owner_type", ownerType,
			"category", category,
			"name", name,
			"error", err)
	}
}

// Create writes all variants for src under a fresh name and records the
// metadata row. If any variant write fails, no row is created and any
// variants already written are cleaned up best-effort.
func (m *Manager) Create(src []byte, owner Owner, category string) (*datastore.ImageRecord, error) {
	if category == "" {
		category = conf.DefaultCategory
	}
	ownerType := NormalizeOwnerType(owner.OwnerType())

	name, err := m.newName(src)
	if err != nil {
		return nil, err
	}

	if err := m.writer.Write(src, ownerType, category, name); err != nil {
		m.cleanupVariants(ownerType, category, name)
		return nil, err
	}

	record := &datastore.ImageRecord{
		Name:      name,
		Category:  category,
		OwnerType: ownerType,
		OwnerID:   owner.OwnerID(),
	}
	if err := m.store.SaveImageRecord(record); err != nil {
		m.cleanupVariants(ownerType, category, name)
		return nil, err
	}

	m.log.Debug("created image record",
		"id", record.ID,
		"owner_type", ownerType,
		"owner_id", record.OwnerID,
		"category", category,
		"name", name)
	return record, nil
}

// UpdateInPlace replaces the stored variants of an existing record with fresh
// encodings of src. Identifier, category and owner are preserved; only the
// name changes. New variants are written and the row is swapped before the
// old variants are erased, so a mid-operation failure never leaves the row
// pointing at missing files. Erasing the old variants is best-effort once the
// swap has committed.
func (m *Manager) UpdateInPlace(src []byte, record *datastore.ImageRecord) (*datastore.ImageRecord, error) {
	oldName := record.Name

	newName, err := m.newName(src)
	if err != nil {
		return nil, err
	}

	if err := m.writer.Write(src, record.OwnerType, record.Category, newName); err != nil {
		m.cleanupVariants(record.OwnerType, record.Category, newName)
		return nil, err
	}

	// The swap re-reads the row inside the transaction so the erase targets
	// the name the row actually pointed at, not a stale caller copy.
	err = m.store.Transaction(func(tx datastore.Interface) error {
		current, err := tx.GetImageRecord(record.ID)
		if err != nil {
			return err
		}
		oldName = current.Name
		return tx.UpdateImageRecordName(record.ID, newName)
	})
	if err != nil {
		m.cleanupVariants(record.OwnerType, record.Category, newName)
		return nil, err
	}
	record.Name = newName

	if err := m.eraser.Erase(record.OwnerType, record.Category, oldName); err != nil {
		// The swap has committed; old variants are orphaned, not referenced.
		m.log.Error("erasing superseded variants failed",
			"id", record.ID,
			"old_name", oldName,
			"error", err)
	}

	m.log.Debug("updated image record in place",
		"id", record.ID,
		"old_name", oldName,
		"name", newName)
	return record, nil
}

// Delete erases all variants for the record and then removes the metadata
// row. Variants go first so that a mid-operation failure leaves the row
// intact and the delete retryable.
func (m *Manager) Delete(record *datastore.ImageRecord) error {
	if err := m.eraser.Erase(record.OwnerType, record.Category, record.Name); err != nil {
		return err
	}
	if err := m.store.DeleteImageRecord(record.ID); err != nil {
		return err
	}

	m.log.Debug("deleted image record",
		"id", record.ID,
		"owner_type", record.OwnerType,
		"owner_id", record.OwnerID,
		"name", record.Name)
	return nil
}

// DeleteByCategory deletes every image of one category for the owner.
func (m *Manager) DeleteByCategory(owner Owner, category string) error {
	return m.DeleteByCategories(owner, []string{category})
}

// DeleteAll deletes every image the owner has, regardless of category.
func (m *Manager) DeleteAll(owner Owner) error {
	return m.DeleteByCategories(owner, nil)
}

// DeleteByCategories deletes matching images page by page. Pages already
// deleted stay deleted if a later page fails; the error reports the point of
// failure without rolling back committed pages.
func (m *Manager) DeleteByCategories(owner Owner, categories []string) error {
	ownerType := NormalizeOwnerType(owner.OwnerType())

	for {
		page, err := m.store.GetImageRecords(ownerType, owner.OwnerID(), categories, nil, pageSize, 0)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			return nil
		}
		for i := range page {
			if err := m.Delete(&page[i]); err != nil {
				return err
			}
		}
	}
}

// DeleteByName deletes the owner's images whose names appear in names,
// limited to the given categories. The name filter is part of the fetch, so
// an empty first fetch means nothing matched anywhere and fails with a
// not-found error; this is caller-input validation, not a storage failure.
func (m *Manager) DeleteByName(owner Owner, categories, names []string) error {
	ownerType := NormalizeOwnerType(owner.OwnerType())

	deleted := false
	for {
		page, err := m.store.GetImageRecords(ownerType, owner.OwnerID(), categories, names, pageSize, 0)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			if !deleted {
				return errors.Newf("no image records named %v for owner %s/%d", names, ownerType, owner.OwnerID()).
					Component("imagestore").
					Category(errors.CategoryNotFound).
					OwnerContext(ownerType, owner.OwnerID()).
					Build()
			}
			return nil
		}

		for i := range page {
			if err := m.Delete(&page[i]); err != nil {
				return err
			}
		}
		deleted = true
	}
}

// OwnerDeletionHook is the cascade an owner's deletion lifecycle attaches to:
// a hard delete removes every image the owner has, a soft delete retains them.
func (m *Manager) OwnerDeletionHook(owner Owner, soft bool) error {
	if soft {
		m.log.Debug("owner soft-deleted, retaining images",
			"owner_type", NormalizeOwnerType(owner.OwnerType()),
			"owner_id", owner.OwnerID())
		return nil
	}
	return m.DeleteAll(owner)
}
