// model.go this code defines the data model for the metadata store
package datastore

import "time"

// ImageRecord represents the persisted metadata row for one logical image.
// The physical variant paths are derived from Name, OwnerType and Category,
// they are not stored.
type ImageRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"index:idx_image_records_name;not null"` // generated unique filename stem, includes extension
	Category  string `gorm:"index:idx_image_records_owner;not null;default:default"`
	OwnerType string `gorm:"index:idx_image_records_owner;not null"`
	OwnerID   uint   `gorm:"index:idx_image_records_owner;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
