package imagestore

import (
	"log/slog"

	"github.com/imagevault/imagevault/internal/datastore"
	"github.com/imagevault/imagevault/internal/logging"
)

// Upload is one file in a batch operation. An upload with no data is not a
// file and is silently skipped by the batch helpers.
type Upload struct {
	Name string
	Data []byte
}

func (u Upload) isFile() bool {
	return len(u.Data) > 0
}

// Collection provides batch helpers composed purely from Manager calls.
// Batch failures are caught here, logged, and reported as an overall boolean
// outcome; callers needing per-item detail use the Manager directly.
type Collection struct {
	manager *Manager
	log     *slog.Logger
}

// NewCollection wraps a manager with batch helpers.
func NewCollection(manager *Manager) *Collection {
	return &Collection{
		manager: manager,
		log:     logging.ForService("imagestore.collection"),
	}
}

// StoreMany applies Create once per well-formed upload. Non-file inputs are
// skipped without error. The returned records match the order of the valid
// inputs; ok is false if any create failed, with the records stored so far.
func (c *Collection) StoreMany(owner Owner, uploads []Upload, category string) ([]*datastore.ImageRecord, bool) {
	var records []*datastore.ImageRecord

	for i := range uploads {
		if !uploads[i].isFile() {
			c.log.Debug("skipping non-file input", "index", i, "name", uploads[i].Name)
			continue
		}
		record, err := c.manager.Create(uploads[i].Data, owner, category)
		if err != nil {
			c.log.Error("batch store failed",
				"index", i,
				"category", category,
				"error", err)
			return records, false
		}
		records = append(records, record)
	}
	return records, true
}

// Replace deletes every image of the category and stores the uploads in their
// place. The two phases are not atomic: a failure in the store phase leaves
// the owner with fewer images of that category than it had.
func (c *Collection) Replace(owner Owner, uploads []Upload, category string) ([]*datastore.ImageRecord, bool) {
	if err := c.manager.DeleteByCategory(owner, category); err != nil {
		c.log.Error("replace failed during delete phase",
			"category", category,
			"error", err)
		return nil, false
	}
	return c.StoreMany(owner, uploads, category)
}

// Sync pairs uploads positionally with the owner's existing records of the
// category, in fetch order: paired positions are updated in place, extra
// uploads are created, extra records are deleted. The pairing has no identity
// semantics beyond the index.
func (c *Collection) Sync(owner Owner, uploads []Upload, category string) bool {
	files := make([]Upload, 0, len(uploads))
	for i := range uploads {
		if uploads[i].isFile() {
			files = append(files, uploads[i])
		}
	}

	existing, err := c.fetchAll(owner, category)
	if err != nil {
		c.log.Error("sync failed fetching existing records",
			"category", category,
			"error", err)
		return false
	}

	for i := range files {
		if i < len(existing) {
			if _, err := c.manager.UpdateInPlace(files[i].Data, &existing[i]); err != nil {
				c.log.Error("sync failed updating record",
					"index", i,
					"id", existing[i].ID,
					"error", err)
				return false
			}
			continue
		}
		if _, err := c.manager.Create(files[i].Data, owner, category); err != nil {
			c.log.Error("sync failed creating record",
				"index", i,
				"error", err)
			return false
		}
	}

	for i := len(files); i < len(existing); i++ {
		if err := c.manager.Delete(&existing[i]); err != nil {
			c.log.Error("sync failed deleting surplus record",
				"index", i,
				"id", existing[i].ID,
				"error", err)
			return false
		}
	}
	return true
}

// fetchAll collects every record of the category in stable fetch order.
func (c *Collection) fetchAll(owner Owner, category string) ([]datastore.ImageRecord, error) {
	ownerType := NormalizeOwnerType(owner.OwnerType())

	count, err := c.manager.store.CountImageRecords(ownerType, owner.OwnerID(), []string{category})
	if err != nil {
		return nil, err
	}

	all := make([]datastore.ImageRecord, 0, count)
	for offset := 0; ; offset += pageSize {
		page, err := c.manager.store.GetImageRecords(ownerType, owner.OwnerID(), []string{category}, nil, pageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}
