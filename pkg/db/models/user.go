package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a wallet holder who connected through HandCash. The auth
// token is the sole credential and is replaced on every re-login.
type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Handle    string    `gorm:"column:handle;type:text;not null;uniqueIndex"`
	AuthToken string    `gorm:"column:auth_token;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
