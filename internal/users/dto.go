package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/big-riz/HandcashIntegration/pkg/db/models"
)

// UserDTO is the transport shape that omits the auth token.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Handle    string    `json:"handle"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID,
		Handle:    u.Handle,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
