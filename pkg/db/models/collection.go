package models

import (
	"time"

	"github.com/google/uuid"
)

// Collection mirrors a HandCash item collection. The vendor-assigned id
// carries a unique constraint so concurrent first-mint requests collapse to
// a single row via insert-or-fetch.
type Collection struct {
	ID                   uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	HandcashCollectionID string    `gorm:"column:handcash_collection_id;type:text;not null;uniqueIndex:idx_collections_handcash_id"`
	Name                 string    `gorm:"column:name;type:text;not null"`
	Description          *string   `gorm:"column:description;type:text"`
	ImageURL             *string   `gorm:"column:image_url;type:text"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
