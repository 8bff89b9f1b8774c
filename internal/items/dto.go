package items

import (
	"time"

	"github.com/google/uuid"

	"github.com/big-riz/HandcashIntegration/pkg/db/models"
)

// ItemDTO is the transport shape of a minted item.
type ItemDTO struct {
	ID             uuid.UUID `json:"id"`
	CollectionID   uuid.UUID `json:"collection_id"`
	HandcashItemID string    `json:"handcash_item_id"`
	Origin         *string   `json:"origin,omitempty"`
	Name           string    `json:"name"`
	Description    *string   `json:"description,omitempty"`
	ImageURL       string    `json:"image_url"`
	TokenSupply    int       `json:"token_supply"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromModel(i *models.Item) *ItemDTO {
	if i == nil {
		return nil
	}
	return &ItemDTO{
		ID:             i.ID,
		CollectionID:   i.CollectionID,
		HandcashItemID: i.HandcashItemID,
		Origin:         i.Origin,
		Name:           i.Name,
		Description:    i.Description,
		ImageURL:       i.ImageURL,
		TokenSupply:    i.TokenSupply,
		CreatedAt:      i.CreatedAt,
	}
}

func FromModels(models []models.Item) []ItemDTO {
	out := make([]ItemDTO, 0, len(models))
	for i := range models {
		out = append(out, *FromModel(&models[i]))
	}
	return out
}
