package models

import (
	"time"

	"github.com/google/uuid"
)

// Item is a minted collectible. Rows exist only for creation orders that
// reached a finalized state, so Origin is populated whenever the vendor
// reported one.
type Item struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	CollectionID   uuid.UUID `gorm:"column:collection_id;type:uuid;not null"`
	HandcashItemID string    `gorm:"column:handcash_item_id;type:text;not null;uniqueIndex"`
	Origin         *string   `gorm:"column:origin;type:text"`
	Name           string    `gorm:"column:name;type:text;not null"`
	Description    *string   `gorm:"column:description;type:text"`
	ImageURL       string    `gorm:"column:image_url;type:text;not null"`
	TokenSupply    int       `gorm:"column:token_supply;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
