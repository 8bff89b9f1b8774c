package models

import (
	"time"

	"github.com/google/uuid"
)

// Seed is a pending-mint placeholder written just before an item creation
// order is submitted. Active seeds correspond to orders still in flight.
type Seed struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Seed        int       `gorm:"column:seed;not null"`
	ImageURL    string    `gorm:"column:image_url;type:text;not null"`
	InitTime    time.Time `gorm:"column:init_time;autoCreateTime"`
	Active      bool      `gorm:"column:active;not null;default:false"`
	TokenSupply int       `gorm:"column:token_supply;not null;default:1"`
}
