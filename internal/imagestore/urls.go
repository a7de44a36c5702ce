package imagestore

import (
	"github.com/imagevault/imagevault/internal/datastore"
)

// URLs returns the full URL map for a record: its name, the original variant
// and one entry per configured size label.
func (m *Manager) URLs(record *datastore.ImageRecord) (map[string]string, error) {
	sizes, err := m.sizes.SizesFor(record.OwnerType, record.Category)
	if err != nil {
		return nil, err
	}

	urls := make(map[string]string, len(sizes)+2)
	urls["name"] = record.Name
	urls[OriginalLabel] = m.blobs.URL(m.resolver.Resolve(record.OwnerType, record.Category, OriginalLabel, record.Name))
	for _, size := range sizes {
		urls[size.Label] = m.blobs.URL(m.resolver.Resolve(record.OwnerType, record.Category, size.Label, record.Name))
	}
	return urls, nil
}

// URL returns the URL for a single size label, or false if the label is not
// configured for the record's owner type and category. The "original" label
// is always available.
func (m *Manager) URL(record *datastore.ImageRecord, label string) (string, bool) {
	if label != OriginalLabel {
		sizes, err := m.sizes.SizesFor(record.OwnerType, record.Category)
		if err != nil {
			return "", false
		}
		found := false
		for _, size := range sizes {
			if size.Label == label {
				found = true
				break
			}
		}
		if !found {
			return "", false
		}
	}
	return m.blobs.URL(m.resolver.Resolve(record.OwnerType, record.Category, label, record.Name)), true
}
