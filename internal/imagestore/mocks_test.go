package imagestore

import (
	"fmt"
	"sort"
	"strings"

	"github.com/imagevault/imagevault/internal/blobstore"
	"github.com/imagevault/imagevault/internal/datastore"
	"github.com/imagevault/imagevault/internal/errors"
	"github.com/imagevault/imagevault/internal/imagecodec"
)

// mockCodec is a deterministic stand-in for the image codec. Encoded output
// embeds the derivation chain so tests can assert what was stored where.
type mockCodec struct {
	decodeErr error
	decodes   int
}

func (c *mockCodec) Decode(data []byte) (imagecodec.Image, error) {
	if c.decodeErr != nil {
		return nil, c.decodeErr
	}
	c.decodes++
	return &mockImage{source: string(data), chain: "source"}, nil
}

type mockImage struct {
	source string
	chain  string
}

func (i *mockImage) Cover(w, h int) imagecodec.Image {
	return &mockImage{source: i.source, chain: fmt.Sprintf("cover(%dx%d)", w, h)}
}

func (i *mockImage) Scale(w, h int) imagecodec.Image {
	return &mockImage{source: i.source, chain: fmt.Sprintf("scale(%dx%d)", w, h)}
}

func (i *mockImage) SourceFormat() string { return "png" }

func (i *mockImage) Encode(format string, quality int) ([]byte, error) {
	return []byte(fmt.Sprintf("%s|%s|%s|q%d", i.source, i.chain, format, quality)), nil
}

// memBlobStore is an in-memory blob store recording the order of operations
// and supporting failure injection by path substring or call count.
type memBlobStore struct {
	objects    map[string][]byte
	visibility map[string]blobstore.Visibility
	ops        []string
	failPutOn  string // substring of path that fails Put
	failPutNth int    // fail the nth Put (1-based), 0 disables
	failDelOn  string // substring of path that fails Delete with an I/O error
	putCalls   int
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{
		objects:    make(map[string][]byte),
		visibility: make(map[string]blobstore.Visibility),
	}
}

func (s *memBlobStore) Put(path string, data []byte, visibility blobstore.Visibility) error {
	s.putCalls++
	s.ops = append(s.ops, "put "+path)
	if s.failPutNth > 0 && s.putCalls == s.failPutNth {
		return errors.Newf("injected put failure at %s", path).Category(errors.CategoryFileIO).Build()
	}
	if s.failPutOn != "" && strings.Contains(path, s.failPutOn) {
		return errors.Newf("injected put failure at %s", path).Category(errors.CategoryFileIO).Build()
	}
	s.objects[path] = data
	s.visibility[path] = visibility
	return nil
}

func (s *memBlobStore) Exists(path string) bool {
	_, ok := s.objects[path]
	return ok
}

func (s *memBlobStore) Delete(path string) error {
	s.ops = append(s.ops, "delete "+path)
	if s.failDelOn != "" && strings.Contains(path, s.failDelOn) {
		return errors.Newf("injected delete failure at %s", path).Category(errors.CategoryFileIO).Build()
	}
	if _, ok := s.objects[path]; !ok {
		return errors.Newf("%s does not exist", path).Category(errors.CategoryNotFound).Build()
	}
	delete(s.objects, path)
	delete(s.visibility, path)
	return nil
}

func (s *memBlobStore) URL(path string) string {
	return "http://cdn.test/" + path
}

func (s *memBlobStore) paths() []string {
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// mockMetadataStore is an in-memory datastore.Interface with failure switches.
type mockMetadataStore struct {
	records   map[uint]datastore.ImageRecord
	nextID    uint
	saveErr   error
	updateErr error
	deleteErr error
	getErr    error
}

func newMockMetadataStore() *mockMetadataStore {
	return &mockMetadataStore{
		records: make(map[uint]datastore.ImageRecord),
		nextID:  1,
	}
}

func (m *mockMetadataStore) Open() error  { return nil }
func (m *mockMetadataStore) Close() error { return nil }

func (m *mockMetadataStore) SaveImageRecord(record *datastore.ImageRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	record.ID = m.nextID
	m.nextID++
	m.records[record.ID] = *record
	return nil
}

func (m *mockMetadataStore) GetImageRecord(id uint) (datastore.ImageRecord, error) {
	record, ok := m.records[id]
	if !ok {
		return datastore.ImageRecord{}, errors.Newf("image record %d not found", id).
			Category(errors.CategoryNotFound).Build()
	}
	return record, nil
}

func (m *mockMetadataStore) UpdateImageRecordName(id uint, name string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	record, ok := m.records[id]
	if !ok {
		return errors.Newf("image record %d not found", id).
			Category(errors.CategoryNotFound).Build()
	}
	record.Name = name
	m.records[id] = record
	return nil
}

func (m *mockMetadataStore) DeleteImageRecord(id uint) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.records, id)
	return nil
}

func (m *mockMetadataStore) matching(ownerType string, ownerID uint, categories, names []string) []datastore.ImageRecord {
	var out []datastore.ImageRecord
	for _, record := range m.records {
		if record.OwnerType != ownerType || record.OwnerID != ownerID {
			continue
		}
		if len(categories) > 0 && !containsString(categories, record.Category) {
			continue
		}
		if len(names) > 0 && !containsString(names, record.Name) {
			continue
		}
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func (m *mockMetadataStore) GetImageRecords(ownerType string, ownerID uint, categories, names []string, limit, offset int) ([]datastore.ImageRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	all := m.matching(ownerType, ownerID, categories, names)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *mockMetadataStore) CountImageRecords(ownerType string, ownerID uint, categories []string) (int64, error) {
	return int64(len(m.matching(ownerType, ownerID, categories, nil))), nil
}

func (m *mockMetadataStore) Transaction(fn func(tx datastore.Interface) error) error {
	return fn(m)
}
