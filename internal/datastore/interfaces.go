// interfaces.go: this code defines the interface for the metadata store operations
package datastore

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/imagevault/imagevault/internal/conf"
	"github.com/imagevault/imagevault/internal/errors"
)

// Interface abstracts the underlying database implementation and defines the
// operations the image lifecycle manager needs from the metadata store.
type Interface interface {
	Open() error
	Close() error
	SaveImageRecord(record *ImageRecord) error
	GetImageRecord(id uint) (ImageRecord, error)
	UpdateImageRecordName(id uint, name string) error
	DeleteImageRecord(id uint) error
	GetImageRecords(ownerType string, ownerID uint, categories, names []string, limit, offset int) ([]ImageRecord, error)
	CountImageRecords(ownerType string, ownerID uint, categories []string) (int64, error)
	Transaction(fn func(tx Interface) error) error
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a new datastore instance based on the provided configuration.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			Settings: settings,
		}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{
			Settings: settings,
		}
	default:
		return nil
	}
}

// SaveImageRecord inserts a new image record row.
func (ds *DataStore) SaveImageRecord(record *ImageRecord) error {
	if record.Category == "" {
		record.Category = conf.DefaultCategory
	}
	if err := ds.DB.Create(record).Error; err != nil {
		return errors.New(fmt.Errorf("saving image record: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			OwnerContext(record.OwnerType, record.OwnerID).
			Build()
	}
	return nil
}

// GetImageRecord retrieves an image record by its ID.
func (ds *DataStore) GetImageRecord(id uint) (ImageRecord, error) {
	var record ImageRecord
	if err := ds.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ImageRecord{}, errors.Newf("image record %d not found", id).
				Component("datastore").
				Category(errors.CategoryNotFound).
				Build()
		}
		return ImageRecord{}, errors.New(fmt.Errorf("getting image record %d: %w", id, err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return record, nil
}

// UpdateImageRecordName replaces the name of an existing image record, leaving
// identifier, category and owner untouched.
func (ds *DataStore) UpdateImageRecordName(id uint, name string) error {
	result := ds.DB.Model(&ImageRecord{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return errors.New(fmt.Errorf("updating image record %d: %w", id, result.Error)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	if result.RowsAffected == 0 {
		return errors.Newf("image record %d not found", id).
			Component("datastore").
			Category(errors.CategoryNotFound).
			Build()
	}
	return nil
}

// DeleteImageRecord removes an image record row.
func (ds *DataStore) DeleteImageRecord(id uint) error {
	if err := ds.DB.Delete(&ImageRecord{}, id).Error; err != nil {
		return errors.New(fmt.Errorf("deleting image record %d: %w", id, err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return nil
}

// GetImageRecords retrieves image records for an owner, optionally filtered by
// category and by exact name, ordered by ID for stable pagination.
func (ds *DataStore) GetImageRecords(ownerType string, ownerID uint, categories, names []string, limit, offset int) ([]ImageRecord, error) {
	var records []ImageRecord

	query := ds.DB.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID)
	if len(categories) > 0 {
		query = query.Where("category IN ?", categories)
	}
	if len(names) > 0 {
		query = query.Where("name IN ?", names)
	}

	err := query.Order("id ASC").Limit(limit).Offset(offset).Find(&records).Error
	if err != nil {
		return nil, errors.New(fmt.Errorf("getting image records: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			OwnerContext(ownerType, ownerID).
			Build()
	}
	return records, nil
}

// CountImageRecords counts image records for an owner, optionally filtered by category.
func (ds *DataStore) CountImageRecords(ownerType string, ownerID uint, categories []string) (int64, error) {
	var count int64

	query := ds.DB.Model(&ImageRecord{}).Where("owner_type = ? AND owner_id = ?", ownerType, ownerID)
	if len(categories) > 0 {
		query = query.Where("category IN ?", categories)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, errors.New(fmt.Errorf("counting image records: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			OwnerContext(ownerType, ownerID).
			Build()
	}
	return count, nil
}

// txStore is a transaction-scoped view of the store. Its lifecycle belongs to
// the enclosing transaction, so Open and Close are no-ops.
type txStore struct {
	DataStore
}

func (t *txStore) Open() error  { return nil }
func (t *txStore) Close() error { return nil }

// Transaction runs fn against a store bound to a database transaction. The
// transaction commits if fn returns nil and rolls back otherwise.
func (ds *DataStore) Transaction(fn func(tx Interface) error) error {
	return ds.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&txStore{DataStore{DB: tx}})
	})
}

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)
}

// performAutoMigration runs gorm auto-migration for the image record table.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(&ImageRecord{}); err != nil {
		return fmt.Errorf("failed to auto-migrate %s database: %w", dbType, err)
	}

	if debug {
		log.Printf("%s database connection initialized: %s", dbType, connectionInfo)
	}
	return nil
}
